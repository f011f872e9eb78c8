package pdfexport

import (
	"testing"
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoice(t *testing.T) {
	due := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	inv := domain.Invoice{
		InvoiceNumber: "INV-007",
		Status:        domain.InvoiceSent,
		IssueDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       &due,
		Subtotal:      decimal.RequireFromString("1250"),
		Tax:           decimal.RequireFromString("125"),
		Total:         decimal.RequireFromString("1375"),
		Notes:         "Payment due within 30 days.",
		Items: []domain.LineItem{
			{Description: "Design work", Quantity: decimal.NewFromInt(10), Rate: decimal.RequireFromString("125"), Amount: decimal.RequireFromString("1250")},
		},
	}
	client := domain.Client{Name: "Acme", Company: "Acme Inc.", Email: "billing@acme.test"}
	profile := domain.User{FullName: "Jane Doe", Company: "JD Studio", Email: "jane@jd.test"}

	data, name, err := Invoice(inv, client, profile)
	require.NoError(t, err)

	assert.Equal(t, "INV-007.pdf", name)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestInvoice_EmptyNumberFallsBack(t *testing.T) {
	data, name, err := Invoice(domain.Invoice{}, domain.Client{}, domain.User{})
	require.NoError(t, err)

	assert.Equal(t, "invoice.pdf", name)
	assert.NotEmpty(t, data)
}

func TestFmtCurrency(t *testing.T) {
	assert.Equal(t, "$1,250.00", fmtCurrency(decimal.RequireFromString("1250")))
	assert.Equal(t, "$0.00", fmtCurrency(decimal.Zero))
	assert.Equal(t, "$1,234,567.89", fmtCurrency(decimal.RequireFromString("1234567.89")))
	assert.Equal(t, "-$45.50", fmtCurrency(decimal.RequireFromString("-45.5")))
}
