package models

import (
	"strings"
	"time"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "draft"
	InvoiceStatusApproved InvoiceStatus = "approved"
	InvoiceStatusSettled  InvoiceStatus = "settled"
	InvoiceStatusVoid     InvoiceStatus = "void"
	InvoiceStatusRejected InvoiceStatus = "rejected"
)

// InvoiceItem is a single billed line.
type InvoiceItem struct {
	Description string  `bson:"description" json:"description"`
	Quantity    float64 `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
	Total       float64 `bson:"total" json:"total"`
}

// LineTotal returns Total, or Quantity x UnitPrice when no total was stored.
func (i InvoiceItem) LineTotal() float64 {
	if i.Total != 0 {
		return i.Total
	}
	return i.Quantity * i.UnitPrice
}

// IsLabour reports whether the line bills labour rather than a part.
func (i InvoiceItem) IsLabour() bool {
	key := strings.ToUpper(strings.TrimSpace(i.Description))
	return strings.Contains(key, "LABOUR") || key == "SERVICE"
}

// Payment is a single amount collected against an invoice. The payment date,
// not the invoice date, places revenue in time.
type Payment struct {
	Amount       float64   `bson:"amount" json:"amount"`
	Date         time.Time `bson:"date" json:"date"`
	Method       string    `bson:"method" json:"method"` // "cash", "card", "transfer", "mobile_money"
	RecordedByID string    `bson:"recorded_by_id,omitempty" json:"recorded_by_id,omitempty"`
	RecordedBy   string    `bson:"recorded_by,omitempty" json:"recorded_by,omitempty"`
}

// Invoice represents a bill, optionally linked to a job.
type Invoice struct {
	ID             string        `bson:"_id,omitempty" json:"id"`
	WorkshopID     string        `bson:"workshop_id" json:"workshop_id"`
	JobID          string        `bson:"job_id,omitempty" json:"job_id,omitempty"`
	Items          []InvoiceItem `bson:"items" json:"items"`
	PaymentHistory []Payment     `bson:"payment_history" json:"payment_history"`
	Total          float64       `bson:"total" json:"total"`
	Status         InvoiceStatus `bson:"status,omitempty" json:"status,omitempty"`
	InvoiceStatus  InvoiceStatus `bson:"invoice_status,omitempty" json:"invoice_status,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}

// EffectiveStatus prefers Status and falls back to the older InvoiceStatus field.
func (inv *Invoice) EffectiveStatus() InvoiceStatus {
	if inv.Status != "" {
		return inv.Status
	}
	if inv.InvoiceStatus != "" {
		return inv.InvoiceStatus
	}
	return InvoiceStatusDraft
}

// AmountPaid sums every recorded payment regardless of date.
func (inv *Invoice) AmountPaid() float64 {
	var paid float64
	for _, p := range inv.PaymentHistory {
		paid += p.Amount
	}
	return paid
}

// Balance is what remains outstanding on the invoice.
func (inv *Invoice) Balance() float64 {
	return inv.Total - inv.AmountPaid()
}
