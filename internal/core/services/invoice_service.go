package services

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/freelanceflow/ff_backend/internal/apperrors"
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/dto"
	"github.com/freelanceflow/ff_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	activity    portssvc.ActivitySvcFacade
	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewInvoiceService creates the invoice lifecycle service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, activity portssvc.ActivitySvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{invoiceRepo: invoiceRepo, activity: activity, now: time.Now}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func validateItems(items []dto.LineItemRequest) error {
	for _, item := range items {
		if item.Quantity.IsNegative() {
			return fmt.Errorf("%w: line item quantity cannot be negative", apperrors.ErrValidation)
		}
		if item.Rate.IsNegative() {
			return fmt.Errorf("%w: line item rate cannot be negative", apperrors.ErrValidation)
		}
	}
	return nil
}

func (s *invoiceService) buildItems(invoiceID string, reqs []dto.LineItemRequest) []domain.LineItem {
	items := make([]domain.LineItem, len(reqs))
	for i, r := range reqs {
		items[i] = domain.LineItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: r.Description,
			Quantity:    r.Quantity,
			Rate:        r.Rate,
		}
	}
	return items
}

func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}
	tax := decimal.Zero
	if req.Tax != nil {
		tax = *req.Tax
	}
	if tax.IsNegative() {
		return nil, fmt.Errorf("%w: tax cannot be negative", apperrors.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = domain.InvoiceDraft
	}

	// Next number in the user's sequence: highest suffix so far plus one.
	maxSeq, err := s.invoiceRepo.MaxInvoiceSequence(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to determine next invoice number")
		return nil, err
	}
	invoiceNumber := fmt.Sprintf("%s-%03d", domain.SequencePrefix, maxSeq+1)

	now := s.now()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		UserID:        userID,
		ClientID:      req.ClientID,
		ProjectID:     req.ProjectID,
		InvoiceNumber: invoiceNumber,
		Status:        status,
		IssueDate:     issueDate,
		DueDate:       req.DueDate,
		Tax:           tax,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	invoice.Items = s.buildItems(invoice.InvoiceID, req.Items)
	invoice.Recompute()

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_id", invoice.InvoiceID))
		return nil, err
	}

	_ = s.activity.LogActivity(ctx, userID, domain.ActivityInvoice, fmt.Sprintf("Invoice %s created", invoiceNumber), invoice.Total)

	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoiceNumber))
	return &invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := portsrepo.ListInvoicesFilter{
		Status: domain.InvoiceStatus(params.Status),
		Limit:  limit + 1, // one extra row to detect another page
	}
	if params.NextToken != "" {
		issueDate, createdAt, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.AfterIssueDate = issueDate
		filter.AfterCreatedAt = createdAt
	}

	invoices, err := s.invoiceRepo.ListInvoices(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, "", err
	}

	nextToken := ""
	if len(invoices) > limit {
		invoices = invoices[:limit]
		last := invoices[len(invoices)-1]
		nextToken = pagination.EncodeToken(last.IssueDate, last.CreatedAt)
	}
	return invoices, nextToken, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, userID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != invoice.Status {
		if !invoice.Status.CanTransitionTo(*req.Status) {
			return nil, fmt.Errorf("%w: invoice cannot move from %s to %s", apperrors.ErrValidation, invoice.Status, *req.Status)
		}
		invoice.Status = *req.Status
	}
	if req.ClientID != nil {
		invoice.ClientID = *req.ClientID
	}
	if req.ProjectID != nil {
		invoice.ProjectID = *req.ProjectID
	}
	if req.IssueDate != nil {
		invoice.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.Tax != nil {
		if req.Tax.IsNegative() {
			return nil, fmt.Errorf("%w: tax cannot be negative", apperrors.ErrValidation)
		}
		invoice.Tax = *req.Tax
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}

	replaceItems := req.Items != nil
	if replaceItems {
		if err := validateItems(req.Items); err != nil {
			return nil, err
		}
		invoice.Items = s.buildItems(invoice.InvoiceID, req.Items)
	}
	invoice.Recompute()
	invoice.LastUpdatedAt = s.now()

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice, replaceItems); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, userID string, invoiceID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, userID, invoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return err
	}

	_ = s.activity.LogActivity(ctx, userID, domain.ActivityDeletion, fmt.Sprintf("Invoice %s deleted", invoice.InvoiceNumber), decimal.Zero)

	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: only draft invoices can be sent", apperrors.ErrValidation)
	}

	invoice.Status = domain.InvoiceSent
	invoice.LastUpdatedAt = s.now()
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice, false); err != nil {
		s.LogError(ctx, err, "Failed to send invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	_ = s.activity.LogActivity(ctx, userID, domain.ActivityInvoice, fmt.Sprintf("Invoice %s sent", invoice.InvoiceNumber), invoice.Total)

	s.LogInfo(ctx, "Invoice sent", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

func (s *invoiceService) MarkInvoicePaid(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceSent && invoice.Status != domain.InvoiceOverdue {
		return nil, fmt.Errorf("%w: only sent or overdue invoices can be marked paid", apperrors.ErrValidation)
	}

	now := s.now()
	invoice.Status = domain.InvoicePaid
	invoice.PaidDate = &now
	invoice.LastUpdatedAt = now
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice, false); err != nil {
		s.LogError(ctx, err, "Failed to mark invoice paid", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	_ = s.activity.LogActivity(ctx, userID, domain.ActivityPayment, fmt.Sprintf("Invoice %s marked as paid", invoice.InvoiceNumber), invoice.Total)

	s.LogInfo(ctx, "Invoice marked paid", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// RunOverduePass flips past-due sent invoices to overdue. Each invoice is
// written independently; one failure never blocks the rest of the sweep.
func (s *invoiceService) RunOverduePass(ctx context.Context, userID string) (int, error) {
	sent, err := s.invoiceRepo.FindInvoicesByStatus(ctx, userID, domain.InvoiceSent)
	if err != nil {
		s.LogError(ctx, err, "Failed to load sent invoices for overdue pass")
		return 0, err
	}

	today := s.now()
	marked := 0
	for i := range sent {
		inv := sent[i]
		if !inv.IsPastDue(today) {
			continue
		}

		inv.Status = domain.InvoiceOverdue
		inv.LastUpdatedAt = today
		if err := s.invoiceRepo.UpdateInvoice(ctx, inv, false); err != nil {
			s.LogError(ctx, err, "Failed to mark invoice overdue", slog.String("invoice_id", inv.InvoiceID))
			continue
		}

		_ = s.activity.LogActivity(ctx, userID, domain.ActivityOverdue, fmt.Sprintf("Overdue reminder sent for invoice %s", inv.InvoiceNumber), inv.Total)
		marked++
	}

	if marked > 0 {
		s.LogInfo(ctx, "Overdue pass completed", slog.Int("marked", marked))
	}
	return marked, nil
}
