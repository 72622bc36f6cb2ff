package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/ukydev/workshop-analytics/internal/analytics"
)

// FormatMoney renders an amount with two decimals and thousands separators.
func FormatMoney(amount float64) string {
	s := decimal.NewFromFloat(amount).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(1) + "%"
}

// FormatQuantity drops trailing zeros from a quantity.
func FormatQuantity(q float64) string {
	return decimal.NewFromFloat(q).String()
}

// Render writes the workshop report as plain text.
func Render(w io.Writer, r *analytics.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Workshop report %s\n", r.Period)
	if r.TechnicianID != "" && r.TechnicianID != analytics.AllTechnicians {
		fmt.Fprintf(tw, "Technician filter:\t%s\n", r.TechnicianID)
	}
	if len(r.JobTypes) > 0 {
		types := make([]string, len(r.JobTypes))
		for i, t := range r.JobTypes {
			types[i] = string(t)
		}
		fmt.Fprintf(tw, "Job types:\t%s\n", strings.Join(types, ", "))
	}
	fmt.Fprintf(tw, "\nRevenue collected:\t%s\n", FormatMoney(r.TotalRevenue))
	fmt.Fprintf(tw, "Jobs in period:\t%d\n", r.FilteredJobs)
	fmt.Fprintf(tw, "Completed:\t%d (%s of all jobs)\n", r.CompletedCount, FormatPercent(r.TargetPercentage))
	fmt.Fprintf(tw, "Inventory value:\t%s (%d low on stock)\n", FormatMoney(r.InventoryValue), r.LowStockItems)

	fmt.Fprintln(tw, "\nTECHNICIAN\tASSIGNED\tCOMPLETED\tRATE\tREVENUE")
	for _, s := range r.Leaderboard {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", s.Name, s.TotalAssigned, s.CompletedJobs, FormatPercent(s.CompletionRate), FormatMoney(s.Revenue))
	}

	writeRanking(tw, "TOP ISSUES", "JOBS", r.TopIssuesByVolume, func(e analytics.Ranked) string { return FormatQuantity(e.Count) })
	writeRanking(tw, "TOP ISSUES BY REVENUE", "REVENUE", r.TopIssuesByRevenue, func(e analytics.Ranked) string { return FormatMoney(e.Revenue) })
	writeRanking(tw, "TOP BRANDS", "JOBS", r.TopBrands, func(e analytics.Ranked) string { return FormatQuantity(e.Count) })
	writeRanking(tw, "TOP PARTS", "QTY", r.TopPartsByQuantity, func(e analytics.Ranked) string { return FormatQuantity(e.Count) })
	writeRanking(tw, "TOP PARTS BY REVENUE", "REVENUE", r.TopPartsByRevenue, func(e analytics.Ranked) string { return FormatMoney(e.Revenue) })

	return tw.Flush()
}

func writeRanking(w io.Writer, title, column string, entries []analytics.Ranked, value func(analytics.Ranked) string) {
	fmt.Fprintf(w, "\n%s\t%s\n", title, column)
	if len(entries) == 0 {
		fmt.Fprintln(w, "(none)\t")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Label, value(e))
	}
}

// RenderTechnician writes a technician drill-down as plain text.
func RenderTechnician(w io.Writer, r *analytics.TechnicianReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s (%s) %s\n", r.Name, r.TechnicianID, r.Period)
	fmt.Fprintf(tw, "Revenue share:\t%s\n", FormatMoney(r.Revenue))
	fmt.Fprintf(tw, "Completed jobs:\t%d\n", r.TotalJobs)
	fmt.Fprintf(tw, "Active jobs:\t%d\n", r.ActiveJobs)

	fmt.Fprintln(tw, "\nJOB\tTYPE\tSTATUS\tISSUES\tSHARE")
	for _, j := range r.Jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.JobID, j.Type, j.Status, strings.Join(j.Issues, ", "), FormatMoney(j.Share))
	}
	return tw.Flush()
}
