package dto

import (
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/freelanceflow/ff_backend/internal/utils/aggregation"
	"github.com/shopspring/decimal"
)

// LineItemRequest defines one line item on an invoice create/update request.
// Amount is absent: it is always derived as quantity * rate. Quantity and
// rate accept zero and default to it when omitted.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// CreateInvoiceRequest defines the data needed to create a new invoice.
// InvoiceNumber is server-assigned and cannot be supplied.
type CreateInvoiceRequest struct {
	ClientID  string               `json:"clientID"`
	ProjectID string               `json:"projectID"`
	Status    domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=draft sent"`
	IssueDate *time.Time           `json:"issueDate"`
	DueDate   *time.Time           `json:"dueDate"`
	Tax       *decimal.Decimal     `json:"tax"`
	Notes     string               `json:"notes"`
	Items     []LineItemRequest    `json:"items"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
// A non-nil Items replaces the full line item set.
type UpdateInvoiceRequest struct {
	ClientID  *string               `json:"clientID"`
	ProjectID *string               `json:"projectID"`
	Status    *domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	IssueDate *time.Time            `json:"issueDate"`
	DueDate   *time.Time            `json:"dueDate"`
	Tax       *decimal.Decimal      `json:"tax"`
	Notes     *string               `json:"notes"`
	Items     []LineItemRequest     `json:"items"`
}

// LineItemResponse defines one line item on an invoice response.
type LineItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	ClientID      string               `json:"clientID"`
	ProjectID     string               `json:"projectID"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Status        domain.InvoiceStatus `json:"status"`
	IssueDate     time.Time            `json:"issueDate"`
	DueDate       *time.Time           `json:"dueDate"`
	PaidDate      *time.Time           `json:"paidDate"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Tax           decimal.Decimal      `json:"tax"`
	Total         decimal.Decimal      `json:"total"`
	Notes         string               `json:"notes"`
	Items         []LineItemResponse   `json:"items"`
	DaysOverdue   int                  `json:"daysOverdue"`
	DaysUntilDue  int                  `json:"daysUntilDue"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = LineItemResponse{
			ItemID:      item.ItemID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
		}
	}
	var daysOverdue, daysUntilDue int
	if inv.DueDate != nil && inv.Status != domain.InvoicePaid {
		now := time.Now()
		daysOverdue = aggregation.DaysOverdue(*inv.DueDate, now)
		daysUntilDue = aggregation.DaysUntilDue(*inv.DueDate, now)
	}
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		ClientID:      inv.ClientID,
		ProjectID:     inv.ProjectID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        inv.Status,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		PaidDate:      inv.PaidDate,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Notes:         inv.Notes,
		Items:         items,
		DaysOverdue:   daysOverdue,
		DaysUntilDue:  daysUntilDue,
		CreatedAt:     inv.CreatedAt,
		LastUpdatedAt: inv.LastUpdatedAt,
	}
}

// ToListInvoiceResponse converts a slice of domain.Invoice to response DTOs
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
	Status    string `form:"status" binding:"omitempty,oneof=draft sent paid overdue"`
}

// ListInvoicesResponse wraps the list of invoices with the pagination cursor.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken string            `json:"nextToken,omitempty"`
}

// OverdueCheckResponse reports the outcome of an overdue sweep.
type OverdueCheckResponse struct {
	MarkedOverdue int `json:"markedOverdue"`
}
