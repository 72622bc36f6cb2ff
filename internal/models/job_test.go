package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJob_Technicians(t *testing.T) {
	tests := []struct {
		name     string
		job      Job
		expected []string
	}{
		{"multi field wins", Job{AssignedTechnicianIDs: []string{"t1", "t2"}, AssignedTechnicianID: "t9"}, []string{"t1", "t2"}},
		{"legacy fallback", Job{AssignedTechnicianID: "t9"}, []string{"t9"}},
		{"empty multi falls back", Job{AssignedTechnicianIDs: []string{}, AssignedTechnicianID: "t9"}, []string{"t9"}},
		{"deduplicated", Job{AssignedTechnicianIDs: []string{"t1", "t1", " t2 ", ""}}, []string{"t1", "t2"}},
		{"unassigned", Job{}, nil},
		{"only blanks", Job{AssignedTechnicianIDs: []string{"", " "}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.job.Technicians())
		})
	}
}

func TestJob_IsAssignedTo(t *testing.T) {
	job := Job{AssignedTechnicianID: "legacy"}
	assert.True(t, job.IsAssignedTo("legacy"))
	assert.False(t, job.IsAssignedTo("other"))
}

func TestJob_IssueLabels(t *testing.T) {
	assert.Equal(t, []string{GeneralIssueLabel}, (&Job{}).IssueLabels())
	assert.Equal(t, []string{GeneralIssueLabel}, (&Job{Issues: []string{" ", ""}}).IssueLabels())
	assert.Equal(t, []string{"Brakes", "Noise"}, (&Job{Issues: []string{" Brakes", "", "Noise"}}).IssueLabels())
}

func TestJob_CreatedOr(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, now, (&Job{}).CreatedOr(now))
	assert.Equal(t, created, (&Job{CreatedAt: created}).CreatedOr(now))
}

func TestIsValidJobType(t *testing.T) {
	assert.True(t, IsValidJobType(JobTypeServiceAndRepair))
	assert.True(t, IsValidJobType(JobTypeTow))
	assert.False(t, IsValidJobType("detailing"))
}

func TestInvoiceItem(t *testing.T) {
	tests := []struct {
		name   string
		item   InvoiceItem
		labour bool
		total  float64
	}{
		{"labour fee", InvoiceItem{Description: "Labour Fee", Quantity: 1, Total: 5000}, true, 5000},
		{"service", InvoiceItem{Description: " service ", Quantity: 1, Total: 1500}, true, 1500},
		{"service kit is a part", InvoiceItem{Description: "Service Kit", Quantity: 1, Total: 800}, false, 800},
		{"part without total", InvoiceItem{Description: "Brake Pad", Quantity: 2, UnitPrice: 3000}, false, 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.labour, tt.item.IsLabour())
			assert.InDelta(t, tt.total, tt.item.LineTotal(), 1e-9)
		})
	}
}

func TestInvoice_StatusAndBalance(t *testing.T) {
	inv := Invoice{
		InvoiceStatus: InvoiceStatusApproved,
		Total:         10000,
		PaymentHistory: []Payment{
			{Amount: 2500},
			{Amount: 5000},
		},
	}
	assert.Equal(t, InvoiceStatusApproved, inv.EffectiveStatus())
	assert.InDelta(t, 7500, inv.AmountPaid(), 1e-9)
	assert.InDelta(t, 2500, inv.Balance(), 1e-9)

	inv.Status = InvoiceStatusSettled
	assert.Equal(t, InvoiceStatusSettled, inv.EffectiveStatus())
	assert.Equal(t, InvoiceStatusDraft, (&Invoice{}).EffectiveStatus())
}

func TestInventoryItem(t *testing.T) {
	item := InventoryItem{Quantity: 4, UnitPrice: 100, SellingPrice: 150, MinStockLevel: 5}
	assert.InDelta(t, 150, item.Price(), 1e-9)
	assert.InDelta(t, 600, item.StockValue(), 1e-9)
	assert.True(t, item.IsLowStock())

	item.SellingPrice = 0
	assert.InDelta(t, 400, item.StockValue(), 1e-9)

	assert.False(t, (&InventoryItem{Quantity: 0}).IsLowStock())
}
