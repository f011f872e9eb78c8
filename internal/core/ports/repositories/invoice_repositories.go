package repositories

import (
	"context"
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
)

// ListInvoicesFilter narrows an invoice listing.
type ListInvoicesFilter struct {
	Status domain.InvoiceStatus // zero value means no status filter
	Limit  int                  // <= 0 means no limit
	// Cursor fields from the previous page's last row; both zero on the
	// first page.
	AfterIssueDate time.Time
	AfterCreatedAt time.Time
}

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its line items.
	FindInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices with items, ordered by issue date
	// then creation time descending.
	ListInvoices(ctx context.Context, userID string, filter ListInvoicesFilter) ([]domain.Invoice, error)

	// FindInvoicesByStatus retrieves all invoices in the given status,
	// items included.
	FindInvoicesByStatus(ctx context.Context, userID string, status domain.InvoiceStatus) ([]domain.Invoice, error)

	// MaxInvoiceSequence returns the highest numeric suffix among the
	// user's invoice numbers, 0 when none exist.
	MaxInvoiceSequence(ctx context.Context, userID string) (int, error)

	// ListUserIDsWithStatus returns the distinct owners of invoices in
	// the given status. Used by the background overdue sweep.
	ListUserIDsWithStatus(ctx context.Context, status domain.InvoiceStatus) ([]string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its line items atomically.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice updates an invoice; when replaceItems is true the
	// stored line items are replaced with invoice.Items in the same
	// transaction.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, replaceItems bool) error

	// DeleteInvoice removes an invoice and its line items.
	DeleteInvoice(ctx context.Context, userID string, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
