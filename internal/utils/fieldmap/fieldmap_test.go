package fieldmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToStorage(t *testing.T) {
	record := map[string]any{
		"id":        "local-123",
		"clientId":  "c-1",
		"dueDate":   "2025-06-01",
		"notes":     "net 30",
		"items":     []any{map[string]any{"description": "work"}},
		"customTag": "kept-as-is",
	}

	row := ToStorage(record)

	assert.Equal(t, "c-1", row["client_id"])
	assert.Equal(t, "2025-06-01", row["due_date"])
	assert.Equal(t, "net 30", row["notes"])
	// Unmapped fields pass through verbatim.
	assert.Equal(t, "kept-as-is", row["customTag"])
	// Locally generated id and nested items are persisted elsewhere.
	assert.NotContains(t, row, "id")
	assert.NotContains(t, row, "items")
	assert.NotContains(t, row, "clientId")
}

func TestToAPI(t *testing.T) {
	row := map[string]any{
		"invoice_number": "INV-004",
		"issue_date":     "2025-05-01",
		"status":         "sent",
		"custom_col":     42,
	}

	record := ToAPI(row)

	assert.Equal(t, "INV-004", record["invoiceNumber"])
	assert.Equal(t, "2025-05-01", record["issueDate"])
	assert.Equal(t, "sent", record["status"])
	assert.Equal(t, 42, record["custom_col"])
}

func TestRoundTrip(t *testing.T) {
	record := map[string]any{
		"clientId":  "c-9",
		"paidDate":  "2025-04-15",
		"avatarUrl": "https://example.com/a.png",
		"company":   "Acme",
	}

	back := ToAPI(ToStorage(record))
	assert.Equal(t, record, back)
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "start_date", StorageKey("startDate"))
	assert.Equal(t, "budget", StorageKey("budget"))
}
