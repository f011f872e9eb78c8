package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/freelanceflow/ff_backend/internal/apperrors"
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	"github.com/freelanceflow/ff_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func toModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		UserID:        d.UserID,
		ClientID:      d.ClientID,
		ProjectID:     d.ProjectID,
		InvoiceNumber: d.InvoiceNumber,
		Status:        models.InvoiceStatus(d.Status),
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		PaidDate:      d.PaidDate,
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		Total:         d.Total,
		Notes:         d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		UserID:        m.UserID,
		ClientID:      m.ClientID,
		ProjectID:     m.ProjectID,
		InvoiceNumber: m.InvoiceNumber,
		Status:        domain.InvoiceStatus(m.Status),
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		PaidDate:      m.PaidDate,
		Subtotal:      m.Subtotal,
		Tax:           m.Tax,
		Total:         m.Total,
		Notes:         m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func toDomainItem(m models.InvoiceItem) domain.LineItem {
	return domain.LineItem{
		ItemID:      m.ItemID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		Rate:        m.Rate,
		Amount:      m.Amount,
	}
}

const invoiceColumns = `invoice_id, user_id, client_id, project_id, invoice_number, status, issue_date, due_date, paid_date, subtotal, tax, total, notes, created_at, updated_at`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	var clientID, projectID sql.NullString
	err := row.Scan(
		&m.InvoiceID,
		&m.UserID,
		&clientID,
		&projectID,
		&m.InvoiceNumber,
		&m.Status,
		&m.IssueDate,
		&m.DueDate,
		&m.PaidDate,
		&m.Subtotal,
		&m.Tax,
		&m.Total,
		&m.Notes,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if clientID.Valid {
		m.ClientID = clientID.String
	}
	if projectID.Valid {
		m.ProjectID = projectID.String
	}
	return m, err
}

// nullIfEmpty maps empty foreign keys to SQL NULL.
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SaveInvoice inserts the invoice and its line items atomically.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := toModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin invoice save: %w", err)
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.UserID,
		nullIfEmpty(m.ClientID),
		nullIfEmpty(m.ProjectID),
		m.InvoiceNumber,
		m.Status,
		m.IssueDate,
		m.DueDate,
		m.PaidDate,
		m.Subtotal,
		m.Tax,
		m.Total,
		m.Notes,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, m.InvoiceNumber)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}

	if err := insertItems(ctx, tx, invoice); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit invoice save: %w", err)
	}
	return nil
}

// UpdateInvoice updates the invoice row; when replaceItems is set the
// stored line items are swapped for invoice.Items in the same
// transaction, so a failed item write never leaves a half-edited set.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, replaceItems bool) error {
	m := toModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin invoice update: %w", err)
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE invoices
		SET client_id = $3, project_id = $4, status = $5, issue_date = $6, due_date = $7, paid_date = $8,
			subtotal = $9, tax = $10, total = $11, notes = $12, updated_at = $13
		WHERE invoice_id = $1 AND user_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.UserID,
		nullIfEmpty(m.ClientID),
		nullIfEmpty(m.ProjectID),
		m.Status,
		m.IssueDate,
		m.DueDate,
		m.PaidDate,
		m.Subtotal,
		m.Tax,
		m.Total,
		m.Notes,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if replaceItems {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, m.InvoiceID); err != nil {
			return fmt.Errorf("failed to clear line items for invoice %s: %w", m.InvoiceID, err)
		}
		if err := insertItems(ctx, tx, invoice); err != nil {
			return err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit invoice update: %w", err)
	}
	return nil
}

// toModelItems maps the invoice's items to rows, stamping each row's
// sort_order with its slot so reads restore the original item order.
func toModelItems(invoice domain.Invoice) []models.InvoiceItem {
	items := make([]models.InvoiceItem, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = models.InvoiceItem{
			ItemID:      item.ItemID,
			InvoiceID:   invoice.InvoiceID,
			SortOrder:   i,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
			CreatedAt:   invoice.LastUpdatedAt,
		}
	}
	return items
}

func insertItems(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	if len(invoice.Items) == 0 {
		return nil
	}

	query := `
		INSERT INTO invoice_items (item_id, invoice_id, sort_order, description, quantity, rate, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, m := range toModelItems(invoice) {
		batch.Queue(query, m.ItemID, m.InvoiceID, m.SortOrder, m.Description, m.Quantity, m.Rate, m.Amount, m.CreatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert line item for invoice %s: %w", invoice.InvoiceID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close line item batch: %w", err)
	}
	return batchErr
}

// DeleteInvoice removes an invoice and its line items.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, userID string, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin invoice delete: %w", err)
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return fmt.Errorf("failed to delete line items for invoice %s: %w", invoiceID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1 AND user_id = $2;`, invoiceID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit invoice delete: %w", err)
	}
	return nil
}

// FindInvoiceByID retrieves one invoice with its line items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_id = $1 AND user_id = $2;
	`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	d := toDomainInvoice(m)
	itemsByInvoice, err := r.loadItems(ctx, []string{d.InvoiceID})
	if err != nil {
		return nil, err
	}
	d.Items = itemsByInvoice[d.InvoiceID]
	return &d, nil
}

// ListInvoices retrieves invoices ordered by issue date then creation
// time, newest first, honoring the status filter and cursor.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, userID string, filter portsrepo.ListInvoicesFilter) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE user_id = $1
	`
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !filter.AfterIssueDate.IsZero() {
		// Rows strictly older than the cursor in the listing order.
		args = append(args, filter.AfterIssueDate, filter.AfterCreatedAt)
		query += fmt.Sprintf(" AND (issue_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	query += " ORDER BY issue_date DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	query += ";"

	invoices, err := r.queryInvoices(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, invoices)
}

// FindInvoicesByStatus retrieves all invoices in the given status.
func (r *PgxInvoiceRepository) FindInvoicesByStatus(ctx context.Context, userID string, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE user_id = $1 AND status = $2
		ORDER BY issue_date DESC, created_at DESC;
	`
	invoices, err := r.queryInvoices(ctx, query, userID, string(status))
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, invoices)
}

// MaxInvoiceSequence returns the highest numeric suffix among the user's
// INV-prefixed invoice numbers, 0 when none exist. Numbers that do not
// match the pattern are ignored, so imports with foreign formats never
// break the sequence.
func (r *PgxInvoiceRepository) MaxInvoiceSequence(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COALESCE(MAX((substring(invoice_number from '^INV-(\d+)$'))::int), 0)
		FROM invoices
		WHERE user_id = $1 AND invoice_number ~ '^INV-\d+$';
	`
	var maxSeq int
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("failed to read max invoice sequence: %w", err)
	}
	return maxSeq, nil
}

// ListUserIDsWithStatus returns the distinct owners of invoices in the
// given status.
func (r *PgxInvoiceRepository) ListUserIDsWithStatus(ctx context.Context, status domain.InvoiceStatus) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM invoices
		WHERE status = $1;
	`
	rows, err := r.Pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice owners: %w", err)
	}
	defer rows.Close()

	userIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan invoice owner row: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice owner rows: %w", err)
	}
	return userIDs, nil
}

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, toDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// attachItems fetches the line items for a page of invoices in one
// query and merges them in.
func (r *PgxInvoiceRepository) attachItems(ctx context.Context, invoices []domain.Invoice) ([]domain.Invoice, error) {
	if len(invoices) == 0 {
		return invoices, nil
	}

	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.InvoiceID
	}

	itemsByInvoice, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].Items = itemsByInvoice[invoices[i].InvoiceID]
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) loadItems(ctx context.Context, invoiceIDs []string) (map[string][]domain.LineItem, error) {
	query := `
		SELECT item_id, invoice_id, description, quantity, rate, amount, created_at
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY sort_order, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	itemsByInvoice := make(map[string][]domain.LineItem)
	for rows.Next() {
		var m models.InvoiceItem
		err := rows.Scan(
			&m.ItemID,
			&m.InvoiceID,
			&m.Description,
			&m.Quantity,
			&m.Rate,
			&m.Amount,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		itemsByInvoice[m.InvoiceID] = append(itemsByInvoice[m.InvoiceID], toDomainItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}
	return itemsByInvoice, nil
}
