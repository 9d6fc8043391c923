// internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, customer_name, material_id, material_name, quantity,
	price_per_kg, total_price, order_date, created_at`

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}

	if filter.CustomerName != "" {
		args = append(args, filter.CustomerName)
		query += ` AND customer_name = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND order_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND order_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY order_date DESC`

	orders := []domain.Order{}
	err := r.db.SelectContext(ctx, &orders, query, args...)
	return orders, err
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.GetContext(ctx, &o,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("order %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create writes the order row, the requirement snapshot and the inventory
// decrements as one atomic unit. A stock rejection on any requirement rolls
// back everything, including the order row itself.
func (r *orderRepository) Create(ctx context.Context, o *domain.Order, requirements []domain.MaterialRequirement) (*domain.Order, error) {
	var created domain.Order
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &created,
			`INSERT INTO orders
				(customer_name, material_id, material_name, quantity, price_per_kg,
				 total_price, order_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING `+orderColumns,
			o.CustomerName, o.MaterialID, o.MaterialName, o.Quantity, o.PricePerKg,
			o.TotalPrice, o.OrderDate); err != nil {
			return err
		}

		// Snapshot the expansion so deletion can restore exactly what was
		// consumed, even if the material's type changes later.
		for _, req := range requirements {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO order_requirements (order_id, material_id, quantity)
				 VALUES ($1, $2, $3)`,
				created.ID, req.MaterialID, req.Quantity); err != nil {
				return err
			}
		}

		return applyDelta(ctx, tx, requirements, -1)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) Requirements(ctx context.Context, orderID int64) ([]domain.MaterialRequirement, error) {
	reqs := []domain.MaterialRequirement{}
	err := r.db.SelectContext(ctx, &reqs,
		`SELECT material_id, quantity FROM order_requirements WHERE order_id = $1 ORDER BY id`,
		orderID)
	return reqs, err
}

// Delete restores inventory by the given requirements and removes the order
// (the snapshot rows go with it via FK cascade).
func (r *orderRepository) Delete(ctx context.Context, id int64, restore []domain.MaterialRequirement) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := applyDelta(ctx, tx, restore, +1); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.NotFoundf("order %d", id)
		}
		return nil
	})
}
