package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukydev/workshop-analytics/internal/analytics"
	"github.com/ukydev/workshop-analytics/internal/handlers"
	"github.com/ukydev/workshop-analytics/internal/report"
)

// serviceFactory opens a report service; the returned func releases it.
type serviceFactory func(ctx context.Context) (handlers.ReportService, func(), error)

type rootOptions struct {
	workshopID string
	from       string
	to         string
	timeout    time.Duration
	open       serviceFactory
	now        func() time.Time
}

func newRootCmd(open serviceFactory) *cobra.Command {
	opts := &rootOptions{open: open, now: time.Now}
	cmd := &cobra.Command{
		Use:           "workshopctl",
		Short:         "Workshop analytics reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.workshopID, "workshop", "", "Workshop ID")
	cmd.PersistentFlags().StringVar(&opts.from, "from", "", "Period start (YYYY-MM-DD), defaults to the first of this month")
	cmd.PersistentFlags().StringVar(&opts.to, "to", "", "Period end (YYYY-MM-DD), defaults to today")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "Time allowed for loading the workshop")
	_ = cmd.MarkPersistentFlagRequired("workshop")

	cmd.AddCommand(newReportCmd(opts), newTechnicianCmd(opts))
	return cmd
}

type ReportCmd struct {
	*rootOptions
	technician string
	types      string
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	rc := &ReportCmd{rootOptions: opts}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the workshop dashboard for a period",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.technician, "technician", "", "Technician ID, or \"all\"")
	cmd.Flags().StringVar(&rc.types, "types", "", "Comma separated job types (e.g. service,repair)")
	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	q, err := analytics.ParseQuery(rc.from, rc.to, rc.technician, rc.types, rc.now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rc.timeout)
	defer cancel()

	service, closeFn, err := rc.open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	r, err := service.ComputeReport(ctx, rc.workshopID, q)
	if err != nil {
		return fmt.Errorf("failed to compute report: %w", err)
	}
	return report.Render(cmd.OutOrStdout(), r)
}

type TechnicianCmd struct {
	*rootOptions
}

func newTechnicianCmd(opts *rootOptions) *cobra.Command {
	tc := &TechnicianCmd{rootOptions: opts}
	return &cobra.Command{
		Use:   "technician ID",
		Short: "Print one technician's drill-down for a period",
		Args:  cobra.ExactArgs(1),
		RunE:  tc.run,
	}
}

func (tc *TechnicianCmd) run(cmd *cobra.Command, args []string) error {
	q, err := analytics.ParseQuery(tc.from, tc.to, "", "", tc.now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), tc.timeout)
	defer cancel()

	service, closeFn, err := tc.open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	r, err := service.ComputeTechnicianReport(ctx, tc.workshopID, args[0], q)
	if err != nil {
		return fmt.Errorf("failed to compute technician report: %w", err)
	}
	return report.RenderTechnician(cmd.OutOrStdout(), r)
}
