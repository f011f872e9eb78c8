package pgsql

import (
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:   newPgxClientRepository(dbPool),
		ProjectRepo:  newPgxProjectRepository(dbPool),
		InvoiceRepo:  newPgxInvoiceRepository(dbPool),
		ActivityRepo: newPgxActivityRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
