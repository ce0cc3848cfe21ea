package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
)

type PgxContractorRepository struct {
	BaseRepository
}

// newPgxContractorRepository creates the repository that resolves
// polymorphic counter-party references against the three entity tables.
func newPgxContractorRepository(pool *pgxpool.Pool) portsrepo.ContractorRepository {
	return &PgxContractorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ContractorRepository = (*PgxContractorRepository)(nil)

func contractorQuery(kind domain.EntityKind) (string, error) {
	switch kind {
	case domain.EntityOffice:
		return `SELECT office_id, name FROM offices WHERE office_id = $1;`, nil
	case domain.EntityCustomer:
		return `SELECT customer_id, name FROM customers WHERE customer_id = $1;`, nil
	case domain.EntityUser:
		return `SELECT user_id, name FROM users WHERE user_id = $1;`, nil
	default:
		return "", fmt.Errorf("%w: unknown entity kind %q", apperrors.ErrValidation, kind)
	}
}

func (r *PgxContractorRepository) FindContractor(ctx context.Context, ref domain.EntityRef) (*domain.Contractor, error) {
	query, err := contractorQuery(ref.Kind)
	if err != nil {
		return nil, err
	}

	var id, name string
	if err := r.Pool.QueryRow(ctx, query, ref.ID).Scan(&id, &name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to resolve contractor", err)
	}
	return &domain.Contractor{
		Ref:  domain.EntityRef{Kind: ref.Kind, ID: id},
		Name: name,
	}, nil
}

func (r *PgxContractorRepository) ListContractors(ctx context.Context, kind domain.EntityKind) ([]domain.Contractor, error) {
	var query string
	switch kind {
	case domain.EntityOffice:
		query = `SELECT office_id, name FROM offices ORDER BY name;`
	case domain.EntityCustomer:
		query = `SELECT customer_id, name FROM customers ORDER BY name;`
	case domain.EntityUser:
		query = `SELECT user_id, name FROM users ORDER BY name;`
	default:
		return nil, fmt.Errorf("%w: unknown entity kind %q", apperrors.ErrValidation, kind)
	}

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contractors", err)
	}
	defer rows.Close()

	var contractors []domain.Contractor
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contractor row", err)
		}
		contractors = append(contractors, domain.Contractor{
			Ref:  domain.EntityRef{Kind: kind, ID: id},
			Name: name,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating contractor rows", err)
	}
	return contractors, nil
}
