package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/besco/backend-go/internal/domain"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type customerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) *customerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := r.db.SelectContext(ctx, &customers,
		`SELECT id, name, created_at FROM customers ORDER BY name`)
	return customers, err
}

func (r *customerRepository) GetByName(ctx context.Context, name string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c,
		`SELECT id, name, created_at FROM customers WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("customer %q", name)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, name string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c,
		`INSERT INTO customers (name) VALUES ($1) RETURNING id, name, created_at`, name)
	if isUniqueViolation(err) {
		return nil, domain.Conflictf("customer %q", name)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) DeleteByName(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE name = $1`, name)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("customer %q", name)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
