package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/freelanceflow/ff_backend/internal/apperrors"
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	"github.com/freelanceflow/ff_backend/internal/models"
	"github.com/freelanceflow/ff_backend/internal/utils/fieldmap"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func toModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:  d.ClientID,
		UserID:    d.UserID,
		Name:      d.Name,
		Email:     d.Email,
		Company:   d.Company,
		Phone:     d.Phone,
		AvatarURL: d.AvatarURL,
		Notes:     d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:  m.ClientID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Company:   m.Company,
		Phone:     m.Phone,
		AvatarURL: m.AvatarURL,
		Notes:     m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const clientColumns = `client_id, user_id, name, email, company, phone, avatar_url, notes, created_at, updated_at`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.Company,
		&m.Phone,
		&m.AvatarURL,
		&m.Notes,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.UserID,
		m.Name,
		m.Email,
		m.Company,
		m.Phone,
		m.AvatarURL,
		m.Notes,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: client with ID %s already exists", apperrors.ErrDuplicate, m.ClientID)
		}
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves one client owned by userID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE client_id = $1 AND user_id = $2;
	`
	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	d := toDomainClient(m)
	return &d, nil
}

// ListClients retrieves all clients owned by userID, newest first.
func (r *PgxClientRepository) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, toDomainClient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

// UpdateClientFields applies a partial update built from API field names.
// The SET clause is assembled dynamically so untouched columns keep
// their values.
func (r *PgxClientRepository) UpdateClientFields(ctx context.Context, userID string, clientID string, fields map[string]any) (*domain.Client, error) {
	columns := fieldmap.ToStorage(fields)
	if len(columns) == 0 {
		return r.FindClientByID(ctx, userID, clientID)
	}

	setClauses, args := buildSetClauses(columns, 3)
	args = append([]any{clientID, userID}, args...)

	query := fmt.Sprintf(`
		UPDATE clients
		SET %s, updated_at = NOW()
		WHERE client_id = $1 AND user_id = $2
		RETURNING `+clientColumns+`;
	`, strings.Join(setClauses, ", "))

	m, err := scanClient(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, err)
	}
	d := toDomainClient(m)
	return &d, nil
}

// DeleteClient removes a client permanently.
func (r *PgxClientRepository) DeleteClient(ctx context.Context, userID string, clientID string) error {
	query := `DELETE FROM clients WHERE client_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, clientID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// buildSetClauses turns a column→value map into ordered "col = $n"
// fragments starting at placeholder firstArg. Iteration order is made
// deterministic so queries are stable across calls.
func buildSetClauses(columns map[string]any, firstArg int) ([]string, []any) {
	keys := make([]string, 0, len(columns))
	for k := range columns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", k, firstArg+i))
		args = append(args, normalizeArg(columns[k]))
	}
	return clauses, args
}

// normalizeArg maps empty strings on nullable foreign keys and zero
// times to NULL-friendly values where callers pass Go zero values.
func normalizeArg(v any) any {
	switch t := v.(type) {
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	default:
		return v
	}
}
