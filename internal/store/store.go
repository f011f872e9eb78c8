// Package store keeps a per-session in-memory snapshot of an account's
// data. Every mutation is written through the services first; the
// snapshot only changes after the remote write succeeds, so a failed
// call leaves the cached view untouched.
package store

import (
	"context"
	"sync"

	"log/slog"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/dto"
	"github.com/freelanceflow/ff_backend/internal/middleware"
)

// Store is the synchronized snapshot for a single user session.
type Store struct {
	mu     sync.RWMutex
	userID string
	svc    *portssvc.ServiceContainer

	clients  []domain.Client
	projects []domain.Project
	invoices []domain.Invoice
	activity []domain.ActivityLog

	loaded bool
}

// NewStore creates an empty store bound to one account. Call Load
// before reading from it.
func NewStore(userID string, svc *portssvc.ServiceContainer) *Store {
	return &Store{userID: userID, svc: svc}
}

// Load pulls the full snapshot. The overdue sweep runs first so the
// session starts with current invoice statuses; when it flips anything
// the invoice list is fetched after the flip and already reflects it.
func (s *Store) Load(ctx context.Context) error {
	flipped, err := s.svc.Invoice.RunOverduePass(ctx, s.userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Overdue pass failed during load", slog.String("error", err.Error()))
	} else if flipped > 0 {
		middleware.GetLoggerFromCtx(ctx).Info("Overdue pass flipped invoices", slog.Int("count", flipped))
	}

	clients, err := s.svc.Client.ListClients(ctx, s.userID)
	if err != nil {
		return err
	}
	projects, err := s.svc.Project.ListProjects(ctx, s.userID)
	if err != nil {
		return err
	}
	invoices, err := s.loadAllInvoices(ctx)
	if err != nil {
		return err
	}
	activity, err := s.svc.Activity.ListRecentActivity(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = clients
	s.projects = projects
	s.invoices = invoices
	s.activity = capActivity(activity)
	s.loaded = true
	return nil
}

// Loaded reports whether Load has completed successfully.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Clients returns a copy of the cached client list.
func (s *Store) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Projects returns a copy of the cached project list.
func (s *Store) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Invoices returns a copy of the cached invoice list.
func (s *Store) Invoices() []domain.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// Client returns the cached client with the given ID.
func (s *Store) Client(clientID string) (*domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.clients {
		if s.clients[i].ClientID == clientID {
			c := s.clients[i]
			return &c, true
		}
	}
	return nil, false
}

// Invoice returns the cached invoice with the given ID.
func (s *Store) Invoice(invoiceID string) (*domain.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.invoices {
		if s.invoices[i].InvoiceID == invoiceID {
			inv := s.invoices[i]
			return &inv, true
		}
	}
	return nil, false
}

// Activity returns a copy of the cached activity feed, newest first.
func (s *Store) Activity() []domain.ActivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ActivityLog, len(s.activity))
	copy(out, s.activity)
	return out
}

// CreateClient writes through to the service and, on success, adds the
// new client to the snapshot and refreshes the activity feed.
func (s *Store) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	client, err := s.svc.Client.CreateClient(ctx, s.userID, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.clients = append(s.clients, *client)
	s.mu.Unlock()
	s.refreshActivity(ctx)
	return client, nil
}

// UpdateClient writes through and swaps the cached entry. Plain updates
// do not touch the activity feed.
func (s *Store) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.svc.Client.UpdateClient(ctx, s.userID, clientID, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.clients {
		if s.clients[i].ClientID == clientID {
			s.clients[i] = *client
			break
		}
	}
	s.mu.Unlock()
	return client, nil
}

// DeleteClient writes through and drops the cached entry.
func (s *Store) DeleteClient(ctx context.Context, clientID string) error {
	if err := s.svc.Client.DeleteClient(ctx, s.userID, clientID); err != nil {
		return err
	}
	s.mu.Lock()
	s.clients = removeClient(s.clients, clientID)
	s.mu.Unlock()
	s.refreshActivity(ctx)
	return nil
}

// CreateProject writes through and appends on success.
func (s *Store) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error) {
	project, err := s.svc.Project.CreateProject(ctx, s.userID, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.projects = append(s.projects, *project)
	s.mu.Unlock()
	s.refreshActivity(ctx)
	return project, nil
}

// UpdateProject writes through and swaps the cached entry.
func (s *Store) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.svc.Project.UpdateProject(ctx, s.userID, projectID, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ProjectID == projectID {
			s.projects[i] = *project
			break
		}
	}
	s.mu.Unlock()
	return project, nil
}

// DeleteProject writes through and drops the cached entry.
func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.svc.Project.DeleteProject(ctx, s.userID, projectID); err != nil {
		return err
	}
	s.mu.Lock()
	s.projects = removeProject(s.projects, projectID)
	s.mu.Unlock()
	s.refreshActivity(ctx)
	return nil
}

// CreateInvoice writes through and appends on success.
func (s *Store) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.svc.Invoice.CreateInvoice(ctx, s.userID, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.invoices = append(s.invoices, *invoice)
	s.mu.Unlock()
	s.refreshActivity(ctx)
	return invoice, nil
}

// UpdateInvoice writes through and swaps the cached entry.
func (s *Store) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.svc.Invoice.UpdateInvoice(ctx, s.userID, invoiceID, req)
	if err != nil {
		return nil, err
	}
	s.replaceInvoice(invoice)
	return invoice, nil
}

// DeleteInvoice writes through and drops the cached entry.
func (s *Store) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if err := s.svc.Invoice.DeleteInvoice(ctx, s.userID, invoiceID); err != nil {
		return err
	}
	s.mu.Lock()
	s.invoices = removeInvoice(s.invoices, invoiceID)
	s.mu.Unlock()
	s.refreshActivity(ctx)
	return nil
}

// SendInvoice writes the draft→sent transition through.
func (s *Store) SendInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.svc.Invoice.SendInvoice(ctx, s.userID, invoiceID)
	if err != nil {
		return nil, err
	}
	s.replaceInvoice(invoice)
	return invoice, nil
}

// MarkInvoicePaid writes the paid transition through and refreshes the
// feed so the payment entry shows up.
func (s *Store) MarkInvoicePaid(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.svc.Invoice.MarkInvoicePaid(ctx, s.userID, invoiceID)
	if err != nil {
		return nil, err
	}
	s.replaceInvoice(invoice)
	s.refreshActivity(ctx)
	return invoice, nil
}

// RunOverduePass sweeps the account's sent invoices and reloads the
// invoice snapshot when anything flipped.
func (s *Store) RunOverduePass(ctx context.Context) (int, error) {
	flipped, err := s.svc.Invoice.RunOverduePass(ctx, s.userID)
	if err != nil {
		return 0, err
	}
	if flipped > 0 {
		invoices, err := s.loadAllInvoices(ctx)
		if err == nil {
			s.mu.Lock()
			s.invoices = invoices
			s.mu.Unlock()
		}
		s.refreshActivity(ctx)
	}
	return flipped, nil
}

// loadAllInvoices follows the pagination cursor until the account's
// whole invoice list is in hand.
func (s *Store) loadAllInvoices(ctx context.Context) ([]domain.Invoice, error) {
	var all []domain.Invoice
	var token string
	for {
		page, next, err := s.svc.Invoice.ListInvoices(ctx, s.userID, dto.ListInvoicesParams{NextToken: token})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if next == "" {
			return all, nil
		}
		token = next
	}
}

func (s *Store) replaceInvoice(invoice *domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].InvoiceID == invoice.InvoiceID {
			s.invoices[i] = *invoice
			return
		}
	}
}

// refreshActivity re-reads the feed after a mutation that logged an
// entry. Best effort: a fetch failure keeps the previous feed.
func (s *Store) refreshActivity(ctx context.Context) {
	activity, err := s.svc.Activity.ListRecentActivity(ctx, s.userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to refresh activity feed", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	s.activity = capActivity(activity)
	s.mu.Unlock()
}

func capActivity(entries []domain.ActivityLog) []domain.ActivityLog {
	if len(entries) > domain.ActivityFeedLimit {
		return entries[:domain.ActivityFeedLimit]
	}
	return entries
}

func removeClient(clients []domain.Client, clientID string) []domain.Client {
	out := clients[:0]
	for _, c := range clients {
		if c.ClientID != clientID {
			out = append(out, c)
		}
	}
	return out
}

func removeProject(projects []domain.Project, projectID string) []domain.Project {
	out := projects[:0]
	for _, p := range projects {
		if p.ProjectID != projectID {
			out = append(out, p)
		}
	}
	return out
}

func removeInvoice(invoices []domain.Invoice, invoiceID string) []domain.Invoice {
	out := invoices[:0]
	for _, inv := range invoices {
		if inv.InvoiceID != invoiceID {
			out = append(out, inv)
		}
	}
	return out
}
