package pgsql

import (
	"testing"
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelItems_StampsSortOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	invoice := domain.Invoice{
		InvoiceID: uuid.NewString(),
		Items: []domain.LineItem{
			{ItemID: uuid.NewString(), Description: "Discovery", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(500)},
			{ItemID: uuid.NewString(), Description: "Design", Quantity: decimal.NewFromInt(4), Rate: decimal.NewFromInt(120)},
			{ItemID: uuid.NewString(), Description: "Build", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(90)},
		},
	}
	invoice.LastUpdatedAt = now

	rows := toModelItems(invoice)

	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i, row.SortOrder)
		assert.Equal(t, invoice.Items[i].ItemID, row.ItemID)
		assert.Equal(t, invoice.Items[i].Description, row.Description)
		assert.Equal(t, invoice.InvoiceID, row.InvoiceID)
		assert.Equal(t, now, row.CreatedAt)
	}
}

func TestToModelItems_Empty(t *testing.T) {
	rows := toModelItems(domain.Invoice{InvoiceID: uuid.NewString()})
	assert.Empty(t, rows)
}
