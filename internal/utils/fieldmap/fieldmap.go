// Package fieldmap translates record field names between the API's
// camelCase convention and the storage layer's snake_case columns.
// The mapping is a fixed symmetric table; names outside the table pass
// through verbatim so unanticipated fields keep working in both
// directions.
package fieldmap

// toStorage maps API field names to storage column names. toAPI is its
// inverse, built once at init.
var toStorage = map[string]string{
	"clientId":      "client_id",
	"projectId":     "project_id",
	"userId":        "user_id",
	"invoiceNumber": "invoice_number",
	"issueDate":     "issue_date",
	"dueDate":       "due_date",
	"paidDate":      "paid_date",
	"startDate":     "start_date",
	"avatarUrl":     "avatar_url",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

var toAPI = invert(toStorage)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// ToStorage translates record keys to storage column names. The locally
// generated "id" field and the nested "items" collection are dropped:
// identities are assigned by the store and line items are persisted
// through their own relation.
func ToStorage(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		if k == "id" || k == "items" {
			continue
		}
		out[StorageKey(k)] = v
	}
	return out
}

// ToAPI translates storage column names back to API field names.
func ToAPI(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		if mapped, ok := toAPI[k]; ok {
			out[mapped] = v
		} else {
			out[k] = v
		}
	}
	return out
}

// StorageKey translates a single API field name to its storage column
// name, passing unmapped names through unchanged.
func StorageKey(field string) string {
	if mapped, ok := toStorage[field]; ok {
		return mapped
	}
	return field
}
