package aggregation

import (
	"testing"
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inv(clientID string, status domain.InvoiceStatus, total string, issue time.Time) domain.Invoice {
	return domain.Invoice{
		ClientID:  clientID,
		Status:    status,
		Total:     decimal.RequireFromString(total),
		IssueDate: issue,
	}
}

func TestSumByStatus(t *testing.T) {
	now := time.Now()
	invoices := []domain.Invoice{
		inv("c1", domain.InvoicePaid, "100", now),
		inv("c1", domain.InvoicePaid, "50", now),
		inv("c2", domain.InvoiceSent, "30", now),
		inv("c2", domain.InvoiceOverdue, "20", now),
		inv("c3", domain.InvoiceDraft, "999", now),
	}

	totals := SumByStatus(invoices)
	assert.True(t, totals.Earned.Equal(decimal.RequireFromString("150")))
	assert.True(t, totals.Pending.Equal(decimal.RequireFromString("30")))
	assert.True(t, totals.Overdue.Equal(decimal.RequireFromString("20")))
}

func TestMonthlyTrend_EmptyInput(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	trend := MonthlyTrend(nil, now)

	require.Len(t, trend, 6)
	assert.Equal(t, "2025-01", trend[0].Month)
	assert.Equal(t, "2025-06", trend[5].Month)
	assert.Equal(t, "Jan", trend[0].Label)
	for _, b := range trend {
		assert.True(t, b.Earned.IsZero())
		assert.True(t, b.Pending.IsZero())
	}
}

func TestMonthlyTrend_Buckets(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC)
	invoices := []domain.Invoice{
		inv("c1", domain.InvoicePaid, "100", may),
		inv("c1", domain.InvoiceSent, "40", may),
		inv("c1", domain.InvoiceDraft, "10", may),
		// outside the six-month window
		inv("c1", domain.InvoicePaid, "500", time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)),
	}

	trend := MonthlyTrend(invoices, now)

	require.Len(t, trend, 6)
	mayBucket := trend[4]
	assert.Equal(t, "2025-05", mayBucket.Month)
	assert.True(t, mayBucket.Earned.Equal(decimal.RequireFromString("100")))
	assert.True(t, mayBucket.Pending.Equal(decimal.RequireFromString("50")))
	assert.True(t, trend[0].Earned.IsZero())
}

func TestMonthlyTrend_YearBoundary(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	trend := MonthlyTrend(nil, now)

	require.Len(t, trend, 6)
	assert.Equal(t, "2024-09", trend[0].Month)
	assert.Equal(t, "2025-02", trend[5].Month)
}

func TestMonthlyTrend_FallsBackToCreatedAt(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	i := inv("c1", domain.InvoicePaid, "75", time.Time{})
	i.CreatedAt = time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC)

	trend := MonthlyTrend([]domain.Invoice{i}, now)

	assert.Equal(t, "2025-04", trend[3].Month)
	assert.True(t, trend[3].Earned.Equal(decimal.RequireFromString("75")))
}

func TestRevenueByClient_PaidOnlySortedDesc(t *testing.T) {
	now := time.Now()
	invoices := []domain.Invoice{
		inv("a", domain.InvoicePaid, "100", now),
		inv("b", domain.InvoicePaid, "300", now),
		inv("a", domain.InvoicePaid, "50", now),
		inv("c", domain.InvoiceSent, "9999", now),
		inv("d", domain.InvoiceDraft, "9999", now),
	}

	ranked := RevenueByClient(invoices)

	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].ClientID)
	assert.True(t, ranked[0].Total.Equal(decimal.RequireFromString("300")))
	assert.Equal(t, "a", ranked[1].ClientID)
	assert.True(t, ranked[1].Total.Equal(decimal.RequireFromString("150")))
}

func TestRevenueByClient_TieBreaksOnClientID(t *testing.T) {
	now := time.Now()
	invoices := []domain.Invoice{
		inv("b", domain.InvoicePaid, "100", now),
		inv("a", domain.InvoicePaid, "100", now),
	}

	ranked := RevenueByClient(invoices)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ClientID)
	assert.Equal(t, "b", ranked[1].ClientID)
}

func TestTopClients_Truncates(t *testing.T) {
	now := time.Now()
	invoices := []domain.Invoice{
		inv("a", domain.InvoicePaid, "1", now),
		inv("b", domain.InvoicePaid, "2", now),
		inv("c", domain.InvoicePaid, "3", now),
	}

	top := TopClients(invoices, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "c", top[0].ClientID)
	assert.Equal(t, "b", top[1].ClientID)
}

func TestCountByStatus(t *testing.T) {
	now := time.Now()
	invoices := []domain.Invoice{
		inv("a", domain.InvoicePaid, "1", now),
		inv("a", domain.InvoicePaid, "1", now),
		inv("a", domain.InvoiceDraft, "1", now),
	}

	dist := CountByStatus(invoices)

	assert.Equal(t, 2, dist.Counts[domain.InvoicePaid])
	assert.Equal(t, 1, dist.Counts[domain.InvoiceDraft])
	assert.Equal(t, 3, dist.Total)
	assert.False(t, dist.Empty)
}

func TestCountByStatus_EmptyKeepsNonZeroTotal(t *testing.T) {
	dist := CountByStatus(nil)

	assert.Equal(t, 1, dist.Total)
	assert.True(t, dist.Empty)
	assert.Equal(t, 0, dist.Counts[domain.InvoicePaid])
}

func TestBudgetUtilization(t *testing.T) {
	tests := []struct {
		name   string
		spent  string
		budget string
		want   int
	}{
		{"half", "50", "100", 50},
		{"exact", "100", "100", 100},
		{"overspent clamps", "150", "100", 100},
		{"zero budget", "50", "0", 0},
		{"rounds", "333", "1000", 33},
		{"rounds up", "666", "1000", 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BudgetUtilization(decimal.RequireFromString(tt.spent), decimal.RequireFromString(tt.budget))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, DaysOverdue(time.Date(2025, time.June, 5, 12, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, DaysOverdue(time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC), now))
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, DaysUntilDue(time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, DaysUntilDue(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), now))
}
