// Package aggregation computes derived financial figures from in-memory
// invoice, client and project collections. Every function is pure:
// identical inputs always yield identical outputs.
package aggregation

import (
	"sort"
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

const monthKeyFormat = "2006-01"

// StatusTotals sums invoice totals for the three dashboard figures.
type StatusTotals struct {
	Earned  decimal.Decimal // paid
	Pending decimal.Decimal // sent
	Overdue decimal.Decimal // overdue
}

// SumByStatus computes the earned/pending/overdue totals for a set of
// invoices. Draft invoices contribute to none of the figures.
func SumByStatus(invoices []domain.Invoice) StatusTotals {
	totals := StatusTotals{
		Earned:  decimal.Zero,
		Pending: decimal.Zero,
		Overdue: decimal.Zero,
	}
	for _, inv := range invoices {
		switch inv.Status {
		case domain.InvoicePaid:
			totals.Earned = totals.Earned.Add(inv.Total)
		case domain.InvoiceSent:
			totals.Pending = totals.Pending.Add(inv.Total)
		case domain.InvoiceOverdue:
			totals.Overdue = totals.Overdue.Add(inv.Total)
		}
	}
	return totals
}

// MonthBucket is one month of the revenue trend.
type MonthBucket struct {
	Month   string // YYYY-MM
	Label   string // short month name, e.g. "Jun"
	Earned  decimal.Decimal
	Pending decimal.Decimal
}

// MonthlyTrend buckets invoices into the trailing six calendar months by
// issue date (falling back to creation time). The result always has
// exactly six entries in chronological order; months with no invoices
// carry zero values. Paid invoices count as earned, everything else as
// pending.
func MonthlyTrend(invoices []domain.Invoice, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 0, 6)
	index := make(map[string]int, 6)
	for i := 5; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		key := m.Format(monthKeyFormat)
		index[key] = len(buckets)
		buckets = append(buckets, MonthBucket{
			Month:   key,
			Label:   m.Format("Jan"),
			Earned:  decimal.Zero,
			Pending: decimal.Zero,
		})
	}

	for _, inv := range invoices {
		d := inv.IssueDate
		if d.IsZero() {
			d = inv.CreatedAt
		}
		if d.IsZero() {
			continue
		}
		i, ok := index[d.Format(monthKeyFormat)]
		if !ok {
			continue
		}
		if inv.Status == domain.InvoicePaid {
			buckets[i].Earned = buckets[i].Earned.Add(inv.Total)
		} else {
			buckets[i].Pending = buckets[i].Pending.Add(inv.Total)
		}
	}
	return buckets
}

// ClientRevenue is one client's paid-invoice total.
type ClientRevenue struct {
	ClientID string
	Total    decimal.Decimal
}

// RevenueByClient sums paid invoice totals per client, sorted by total
// descending (client ID ascending on ties, for determinism). Invoices
// with no client reference are skipped.
func RevenueByClient(invoices []domain.Invoice) []ClientRevenue {
	byClient := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		if inv.Status != domain.InvoicePaid || inv.ClientID == "" {
			continue
		}
		byClient[inv.ClientID] = byClient[inv.ClientID].Add(inv.Total)
	}

	ranked := make([]ClientRevenue, 0, len(byClient))
	for id, total := range byClient {
		ranked = append(ranked, ClientRevenue{ClientID: id, Total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Total.Equal(ranked[j].Total) {
			return ranked[i].Total.GreaterThan(ranked[j].Total)
		}
		return ranked[i].ClientID < ranked[j].ClientID
	})
	return ranked
}

// TopClients returns at most n entries of RevenueByClient.
func TopClients(invoices []domain.Invoice, n int) []ClientRevenue {
	ranked := RevenueByClient(invoices)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// StatusDistribution holds invoice counts per status for the donut chart.
// Total is never zero so proportional rendering cannot divide by zero;
// Empty flags the no-data case explicitly.
type StatusDistribution struct {
	Counts map[domain.InvoiceStatus]int
	Total  int
	Empty  bool
}

// CountByStatus tallies invoices per status. Unknown status values are
// ignored.
func CountByStatus(invoices []domain.Invoice) StatusDistribution {
	counts := map[domain.InvoiceStatus]int{
		domain.InvoicePaid:    0,
		domain.InvoiceSent:    0,
		domain.InvoiceOverdue: 0,
		domain.InvoiceDraft:   0,
	}
	total := 0
	for _, inv := range invoices {
		if _, ok := counts[inv.Status]; ok {
			counts[inv.Status]++
			total++
		}
	}
	dist := StatusDistribution{Counts: counts, Total: total, Empty: total == 0}
	if dist.Total == 0 {
		dist.Total = 1
	}
	return dist
}

// BudgetUtilization returns round(min(spent/budget, 1) * 100) as a whole
// percentage. A zero budget yields 0, never a division error.
func BudgetUtilization(spent, budget decimal.Decimal) int {
	if budget.IsZero() {
		return 0
	}
	ratio := spent.Div(budget)
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		ratio = decimal.NewFromInt(1)
	}
	return int(ratio.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// DaysOverdue returns how many whole days past due a date is, floored at
// zero.
func DaysOverdue(dueDate time.Time, now time.Time) int {
	days := int(now.Sub(dueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DaysUntilDue returns how many whole days remain before a due date,
// floored at zero once the date has passed.
func DaysUntilDue(dueDate time.Time, now time.Time) int {
	days := int(dueDate.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
