package dto

import (
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/freelanceflow/ff_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// ActivityResponse defines one entry in the activity feed.
// DisplayAmount is empty for entries with no monetary value.
type ActivityResponse struct {
	ActivityID    string              `json:"activityID"`
	Type          domain.ActivityType `json:"type"`
	Icon          string              `json:"icon"`
	Message       string              `json:"message"`
	Amount        decimal.Decimal     `json:"amount"`
	DisplayAmount string              `json:"displayAmount,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// ToActivityResponse converts a domain.ActivityLog to ActivityResponse DTO
func ToActivityResponse(a *domain.ActivityLog) ActivityResponse {
	displayAmount := ""
	if !a.Amount.IsZero() {
		displayAmount = utils.FormatMoneyWithSymbol("$", a.Amount)
	}
	return ActivityResponse{
		ActivityID:    a.ActivityID,
		Type:          a.Type,
		Icon:          a.Icon(),
		Message:       a.Message,
		Amount:        a.Amount,
		DisplayAmount: displayAmount,
		CreatedAt:     a.CreatedAt,
	}
}

// ToListActivityResponse converts a slice of domain.ActivityLog to response DTOs
func ToListActivityResponse(logs []domain.ActivityLog) []ActivityResponse {
	res := make([]ActivityResponse, len(logs))
	for i := range logs {
		res[i] = ToActivityResponse(&logs[i])
	}
	return res
}

// ListActivityResponse wraps the activity feed.
type ListActivityResponse struct {
	Activities []ActivityResponse `json:"activities"`
}
