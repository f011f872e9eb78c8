package services

import (
	"context"
	"time"

	"log/slog"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
)

// OverdueSweeper periodically runs the overdue pass for every account
// that has sent invoices, so statuses stay current even for users who
// never hit the API between due dates.
type OverdueSweeper struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	overdue     portssvc.OverdueSvc
	interval    time.Duration
	logger      *slog.Logger
}

// NewOverdueSweeper creates a sweeper. interval <= 0 disables it.
func NewOverdueSweeper(invoiceRepo portsrepo.InvoiceRepositoryFacade, overdue portssvc.OverdueSvc, interval time.Duration, logger *slog.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		invoiceRepo: invoiceRepo,
		overdue:     overdue,
		interval:    interval,
		logger:      logger,
	}
}

// Start runs the sweep loop until ctx is cancelled. An immediate first
// sweep runs before the ticker starts.
func (s *OverdueSweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	go func() {
		s.Sweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Sweep runs one pass over every account with sent invoices. Per-user
// failures are logged and skipped.
func (s *OverdueSweeper) Sweep(ctx context.Context) {
	userIDs, err := s.invoiceRepo.ListUserIDsWithStatus(ctx, domain.InvoiceSent)
	if err != nil {
		s.logger.Error("Overdue sweep failed to list accounts", slog.String("error", err.Error()))
		return
	}

	total := 0
	for _, userID := range userIDs {
		marked, err := s.overdue.RunOverduePass(ctx, userID)
		if err != nil {
			s.logger.Error("Overdue sweep failed for account", slog.String("user_id", userID), slog.String("error", err.Error()))
			continue
		}
		total += marked
	}

	if total > 0 {
		s.logger.Info("Overdue sweep flipped invoices", slog.Int("count", total), slog.Int("accounts", len(userIDs)))
	}
}
