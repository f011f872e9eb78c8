package services

import (
	"context"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/freelanceflow/ff_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its line items.
	GetInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a page of invoices plus the cursor for the
	// next page (empty when exhausted).
	ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, string, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new invoice with a server-assigned
	// sequential invoice number and derived totals.
	CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// UpdateInvoice applies a partial update; a non-nil item set replaces
	// all stored line items and totals are rederived.
	UpdateInvoice(ctx context.Context, userID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice and records a deletion activity.
	DeleteInvoice(ctx context.Context, userID string, invoiceID string) error
}

// InvoiceLifecycleSvc defines the status transitions with side effects.
type InvoiceLifecycleSvc interface {
	// SendInvoice moves a draft invoice to sent and records an activity.
	SendInvoice(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error)

	// MarkInvoicePaid moves a sent or overdue invoice to paid, stamps the
	// paid date and records a payment activity.
	MarkInvoicePaid(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error)
}

// OverdueSvc runs the overdue detection sweep.
type OverdueSvc interface {
	// RunOverduePass flips sent invoices whose due date has passed to
	// overdue and returns how many were flipped.
	RunOverduePass(ctx context.Context, userID string) (int, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceLifecycleSvc
	OverdueSvc
}
