// Package csvexport renders invoices, clients, projects and the financial
// summary report as downloadable CSV documents.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/freelanceflow/ff_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// utf8BOM prefixes every export so spreadsheet tools detect the encoding.
const utf8BOM = "\uFEFF"

const monthKeyFormat = "2006-01"

func filename(kind string, now time.Time) string {
	return fmt.Sprintf("freelanceflow-%s-%s.csv", kind, now.Format(domain.DateOnly))
}

func render(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	w.UseCRLF = false
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

func clientNames(clients []domain.Client) map[string]string {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ClientID] = c.Name
	}
	return names
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateOnly)
}

// Invoices renders one row per invoice with the linked client's name
// resolved inline ("N/A" when no client is linked).
func Invoices(invoices []domain.Invoice, clients []domain.Client, now time.Time) ([]byte, string, error) {
	names := clientNames(clients)
	rows := [][]string{
		{"Invoice #", "Client", "Status", "Issue Date", "Due Date", "Subtotal", "Tax", "Total", "Notes"},
	}
	for _, inv := range invoices {
		name, ok := names[inv.ClientID]
		if !ok {
			name = "N/A"
		}
		issue := ""
		if !inv.IssueDate.IsZero() {
			issue = inv.IssueDate.Format(domain.DateOnly)
		}
		rows = append(rows, []string{
			inv.InvoiceNumber,
			name,
			string(inv.Status),
			issue,
			dateOrEmpty(inv.DueDate),
			utils.FormatMoney(inv.Subtotal),
			utils.FormatMoney(inv.Tax),
			utils.FormatMoney(inv.Total),
			inv.Notes,
		})
	}

	data, err := render(rows)
	if err != nil {
		return nil, "", err
	}
	return data, filename("invoices", now), nil
}

// Clients renders one row per client.
func Clients(clients []domain.Client, now time.Time) ([]byte, string, error) {
	rows := [][]string{
		{"Name", "Email", "Phone", "Company", "Created"},
	}
	for _, c := range clients {
		created := ""
		if !c.CreatedAt.IsZero() {
			created = c.CreatedAt.Format(domain.DateOnly)
		}
		rows = append(rows, []string{c.Name, c.Email, c.Phone, c.Company, created})
	}

	data, err := render(rows)
	if err != nil {
		return nil, "", err
	}
	return data, filename("clients", now), nil
}

// Projects renders one row per project with the linked client's name
// resolved inline.
func Projects(projects []domain.Project, clients []domain.Client, now time.Time) ([]byte, string, error) {
	names := clientNames(clients)
	rows := [][]string{
		{"Name", "Client", "Status", "Budget", "Deadline", "Description"},
	}
	for _, p := range projects {
		name, ok := names[p.ClientID]
		if !ok {
			name = "N/A"
		}
		rows = append(rows, []string{
			p.Name,
			name,
			string(p.Status),
			utils.FormatMoney(p.Budget),
			dateOrEmpty(p.DueDate),
			p.Description,
		})
	}

	data, err := render(rows)
	if err != nil {
		return nil, "", err
	}
	return data, filename("projects", now), nil
}

type clientSummary struct {
	name    string
	paid    decimal.Decimal
	pending decimal.Decimal
	count   int
}

type monthSummary struct {
	earned  decimal.Decimal
	pending decimal.Decimal
}

// Summary renders the multi-section financial report: an OVERVIEW of
// invoice counts and totals per status, REVENUE BY CLIENT, and a sorted
// MONTHLY REVENUE breakdown.
func Summary(invoices []domain.Invoice, clients []domain.Client, now time.Time) ([]byte, string, error) {
	names := clientNames(clients)

	counts := map[domain.InvoiceStatus]int{}
	totals := map[domain.InvoiceStatus]decimal.Decimal{
		domain.InvoicePaid:    decimal.Zero,
		domain.InvoiceSent:    decimal.Zero,
		domain.InvoiceOverdue: decimal.Zero,
	}
	for _, inv := range invoices {
		counts[inv.Status]++
		if t, ok := totals[inv.Status]; ok {
			totals[inv.Status] = t.Add(inv.Total)
		}
	}

	rows := [][]string{
		{"FreelanceFlow Financial Summary"},
		{"Generated", now.Format(domain.DateOnly)},
		{},
		{"OVERVIEW"},
		{"Total Invoices", strconv.Itoa(len(invoices))},
		{"Paid", strconv.Itoa(counts[domain.InvoicePaid]), utils.FormatMoney(totals[domain.InvoicePaid])},
		{"Pending", strconv.Itoa(counts[domain.InvoiceSent]), utils.FormatMoney(totals[domain.InvoiceSent])},
		{"Overdue", strconv.Itoa(counts[domain.InvoiceOverdue]), utils.FormatMoney(totals[domain.InvoiceOverdue])},
		{"Draft", strconv.Itoa(counts[domain.InvoiceDraft])},
		{},
		{"REVENUE BY CLIENT"},
		{"Client", "Paid Amount", "Pending Amount", "Total Invoices"},
	}

	byClient := map[string]*clientSummary{}
	clientOrder := []string{}
	for _, inv := range invoices {
		cid := inv.ClientID
		if cid == "" {
			cid = "unknown"
		}
		s, ok := byClient[cid]
		if !ok {
			name, found := names[cid]
			if !found {
				name = "Unknown"
			}
			s = &clientSummary{name: name, paid: decimal.Zero, pending: decimal.Zero}
			byClient[cid] = s
			clientOrder = append(clientOrder, cid)
		}
		s.count++
		switch inv.Status {
		case domain.InvoicePaid:
			s.paid = s.paid.Add(inv.Total)
		case domain.InvoiceSent:
			s.pending = s.pending.Add(inv.Total)
		}
	}
	for _, cid := range clientOrder {
		s := byClient[cid]
		rows = append(rows, []string{s.name, utils.FormatMoney(s.paid), utils.FormatMoney(s.pending), strconv.Itoa(s.count)})
	}
	rows = append(rows, []string{})

	rows = append(rows,
		[]string{"MONTHLY REVENUE"},
		[]string{"Month", "Earned", "Pending"},
	)
	byMonth := map[string]*monthSummary{}
	for _, inv := range invoices {
		d := inv.IssueDate
		if d.IsZero() {
			d = inv.CreatedAt
		}
		if d.IsZero() {
			continue
		}
		key := d.Format(monthKeyFormat)
		m, ok := byMonth[key]
		if !ok {
			m = &monthSummary{earned: decimal.Zero, pending: decimal.Zero}
			byMonth[key] = m
		}
		switch inv.Status {
		case domain.InvoicePaid:
			m.earned = m.earned.Add(inv.Total)
		case domain.InvoiceSent:
			m.pending = m.pending.Add(inv.Total)
		}
	}
	months := make([]string, 0, len(byMonth))
	for key := range byMonth {
		months = append(months, key)
	}
	sort.Strings(months)
	for _, key := range months {
		m := byMonth[key]
		rows = append(rows, []string{key, utils.FormatMoney(m.earned), utils.FormatMoney(m.pending)})
	}

	data, err := render(rows)
	if err != nil {
		return nil, "", err
	}
	return data, filename("summary", now), nil
}
