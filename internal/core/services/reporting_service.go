package services

import (
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/dto"
	"github.com/freelanceflow/ff_backend/internal/utils/aggregation"
)

// topClientCount caps the revenue-by-client list on the dashboard.
const topClientCount = 5

type reportingService struct {
	now func() time.Time
}

// NewReportingService creates the dashboard aggregation service.
func NewReportingService() portssvc.ReportingSvcFacade {
	return &reportingService{now: time.Now}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) BuildDashboard(clients []domain.Client, projects []domain.Project, invoices []domain.Invoice, logs []domain.ActivityLog) *dto.DashboardResponse {
	now := s.now()
	totals := aggregation.SumByStatus(invoices)
	trend := aggregation.MonthlyTrend(invoices, now)
	top := aggregation.TopClients(invoices, topClientCount)
	dist := aggregation.CountByStatus(invoices)

	clientNames := make(map[string]string, len(clients))
	for _, c := range clients {
		clientNames[c.ClientID] = c.Name
	}

	trendRes := make([]dto.MonthBucketResponse, len(trend))
	for i, b := range trend {
		trendRes[i] = dto.MonthBucketResponse{Month: b.Month, Label: b.Label, Earned: b.Earned, Pending: b.Pending}
	}

	topRes := make([]dto.ClientRevenueResponse, len(top))
	for i, t := range top {
		name, ok := clientNames[t.ClientID]
		if !ok {
			name = "Unknown"
		}
		topRes[i] = dto.ClientRevenueResponse{ClientID: t.ClientID, ClientName: name, Total: t.Total}
	}

	activeProjects := 0
	for _, p := range projects {
		if p.Status == domain.ProjectInProgress {
			activeProjects++
		}
	}

	return &dto.DashboardResponse{
		TotalEarned:        totals.Earned,
		TotalPending:       totals.Pending,
		TotalOverdue:       totals.Overdue,
		ClientCount:        len(clients),
		ProjectCount:       len(projects),
		ActiveProjectCount: activeProjects,
		InvoiceCount:       len(invoices),
		MonthlyTrend:       trendRes,
		TopClients:         topRes,
		StatusDistribution: dto.StatusDistributionResponse{
			Counts: dist.Counts,
			Total:  dist.Total,
			Empty:  dist.Empty,
		},
		RecentActivity: dto.ToListActivityResponse(logs),
	}
}
