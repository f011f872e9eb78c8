package dto

import (
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthBucketResponse is one month of the dashboard revenue trend.
type MonthBucketResponse struct {
	Month   string          `json:"month"` // YYYY-MM
	Label   string          `json:"label"` // short month name
	Earned  decimal.Decimal `json:"earned"`
	Pending decimal.Decimal `json:"pending"`
}

// ClientRevenueResponse is one client's paid revenue on the dashboard.
type ClientRevenueResponse struct {
	ClientID   string          `json:"clientID"`
	ClientName string          `json:"clientName"`
	Total      decimal.Decimal `json:"total"`
}

// StatusDistributionResponse holds invoice counts per status. Total is
// floored at 1 so clients can divide without guarding; Empty marks the
// no-invoices case.
type StatusDistributionResponse struct {
	Counts map[domain.InvoiceStatus]int `json:"counts"`
	Total  int                          `json:"total"`
	Empty  bool                         `json:"empty"`
}

// DashboardResponse aggregates everything the dashboard page renders in a
// single payload.
type DashboardResponse struct {
	TotalEarned        decimal.Decimal            `json:"totalEarned"`
	TotalPending       decimal.Decimal            `json:"totalPending"`
	TotalOverdue       decimal.Decimal            `json:"totalOverdue"`
	ClientCount        int                        `json:"clientCount"`
	ProjectCount       int                        `json:"projectCount"`
	ActiveProjectCount int                        `json:"activeProjectCount"`
	InvoiceCount       int                        `json:"invoiceCount"`
	MonthlyTrend       []MonthBucketResponse      `json:"monthlyTrend"`
	TopClients         []ClientRevenueResponse    `json:"topClients"`
	StatusDistribution StatusDistributionResponse `json:"statusDistribution"`
	RecentActivity     []ActivityResponse         `json:"recentActivity"`
}
