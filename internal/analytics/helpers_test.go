package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ukydev/workshop-analytics/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func mustPeriod(t *testing.T, start, end time.Time) Period {
	t.Helper()
	p, err := NewPeriod(start, end)
	require.NoError(t, err)
	return p
}

// january is an unfiltered query over January 2025 with a fixed AsOf.
func january(t *testing.T) Query {
	t.Helper()
	return NewQuery(mustPeriod(t, day(2025, 1, 1), day(2025, 1, 31))).WithAsOf(day(2025, 2, 15))
}

func invoice(id, jobID string, payments ...models.Payment) models.Invoice {
	return models.Invoice{ID: id, JobID: jobID, PaymentHistory: payments}
}

func pay(amount float64, at time.Time) models.Payment {
	return models.Payment{Amount: amount, Date: at, Method: "cash"}
}
