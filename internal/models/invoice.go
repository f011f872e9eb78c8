package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors domain.InvoiceStatus at the storage layer.
type InvoiceStatus string

// Invoice is the database representation of an invoice row. Line items
// live in their own relation (invoice_items) and are merged in by the
// repository.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	UserID        string          `db:"user_id"`
	ClientID      string          `db:"client_id"`
	ProjectID     string          `db:"project_id"`
	InvoiceNumber string          `db:"invoice_number"`
	Status        InvoiceStatus   `db:"status"`
	IssueDate     time.Time       `db:"issue_date"`
	DueDate       *time.Time      `db:"due_date"`
	PaidDate      *time.Time      `db:"paid_date"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	Tax           decimal.Decimal `db:"tax"`
	Total         decimal.Decimal `db:"total"`
	Notes         string          `db:"notes"`
	AuditFields
}

// InvoiceItem is the database representation of one line item.
// SortOrder preserves the position within the invoice's item list.
type InvoiceItem struct {
	ItemID      string          `db:"item_id"`
	InvoiceID   string          `db:"invoice_id"`
	SortOrder   int             `db:"sort_order"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	Rate        decimal.Decimal `db:"rate"`
	Amount      decimal.Decimal `db:"amount"`
	CreatedAt   time.Time       `db:"created_at"`
}
