package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// SequencePrefix is the prefix of human-facing invoice numbers (INV-001).
const SequencePrefix = "INV"

// IsValid reports whether s is one of the four known statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// CanTransitionTo reports whether a generic edit may move an invoice from s
// to target. Transitions into and out of `paid` are reserved for the
// dedicated mark-paid operation, so a stray edit cannot silently undo a
// payment record.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if s == target {
		return true
	}
	switch s {
	case InvoiceDraft:
		return target == InvoiceSent
	case InvoiceSent:
		return target == InvoiceOverdue
	case InvoiceOverdue:
		return target == InvoiceSent
	case InvoicePaid:
		return false
	}
	return false
}

// LineItem is one billable entry on an invoice. Amount is always derived
// as Quantity * Rate; it is never trusted from the caller.
type LineItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice represents a billable document issued to a client.
// Subtotal, Tax and Total obey: Subtotal == sum(item amounts) and
// Total == Subtotal + Tax after every mutation.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	UserID        string          `json:"userID"`
	ClientID      string          `json:"clientID"`  // empty when no client is linked
	ProjectID     string          `json:"projectID"` // empty when no project is linked
	InvoiceNumber string          `json:"invoiceNumber"`
	Status        InvoiceStatus   `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       *time.Time      `json:"dueDate"`
	PaidDate      *time.Time      `json:"paidDate"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"` // flat amount, not a rate
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes"`
	Items         []LineItem      `json:"items"`
	AuditFields
}

// Recompute rederives per-item amounts, the subtotal and the total from the
// current line items and tax. Caller-supplied aggregates are discarded.
func (inv *Invoice) Recompute() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Amount = inv.Items[i].Quantity.Mul(inv.Items[i].Rate)
		subtotal = subtotal.Add(inv.Items[i].Amount)
	}
	inv.Subtotal = subtotal
	inv.Total = subtotal.Add(inv.Tax)
}

// IsPastDue reports whether the invoice's due date falls strictly before
// today, comparing calendar dates only.
func (inv *Invoice) IsPastDue(today time.Time) bool {
	if inv.DueDate == nil {
		return false
	}
	return inv.DueDate.Format(DateOnly) < today.Format(DateOnly)
}
