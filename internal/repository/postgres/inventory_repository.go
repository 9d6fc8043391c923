// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/besco/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.Inventory, error) {
	rows := []domain.Inventory{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT i.id, i.material_id, m.name AS material_name, i.quantity,
		        i.safety_stock, i.created_at, i.updated_at
		 FROM inventory i JOIN materials m ON m.id = i.material_id
		 ORDER BY i.material_id`)
	return rows, err
}

func (r *inventoryRepository) GetByMaterial(ctx context.Context, materialID int64) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := r.db.GetContext(ctx, &inv,
		`SELECT i.id, i.material_id, m.name AS material_name, i.quantity,
		        i.safety_stock, i.created_at, i.updated_at
		 FROM inventory i JOIN materials m ON m.id = i.material_id
		 WHERE i.material_id = $1`, materialID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("inventory record missing for material %d", materialID)
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepository) SetQuantity(ctx context.Context, inventoryID int64, quantity float64) error {
	if quantity < 0 {
		return domain.Validationf("quantity must not be negative")
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE inventory SET quantity = $1, updated_at = NOW() WHERE id = $2`,
		quantity, inventoryID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("inventory %d", inventoryID)
	}
	return nil
}

// applyDelta mutates stock for a batch of material requirements inside the
// caller's transaction. The conditional UPDATE is the whole point: the
// sufficiency check and the write are one statement, so there is no
// read-then-write window for a concurrent request to race through. The first
// failing entry aborts the transaction, which undoes any entries already
// applied.
func applyDelta(ctx context.Context, tx *sqlx.Tx, requirements []domain.MaterialRequirement, sign float64) error {
	for _, req := range requirements {
		delta := sign * req.Quantity
		var newQty float64
		err := tx.QueryRowxContext(ctx,
			`UPDATE inventory
			 SET quantity = quantity + $1, updated_at = NOW()
			 WHERE material_id = $2 AND quantity + $1 >= 0
			 RETURNING quantity`,
			delta, req.MaterialID).Scan(&newQty)
		if errors.Is(err, sql.ErrNoRows) {
			return stockRejection(ctx, tx, req)
		}
		if err != nil {
			return fmt.Errorf("update inventory for material %d: %w", req.MaterialID, err)
		}
	}
	return nil
}

// stockRejection distinguishes a missing inventory row (hard error) from an
// update that would drive stock negative.
func stockRejection(ctx context.Context, tx *sqlx.Tx, req domain.MaterialRequirement) error {
	var row struct {
		Quantity float64 `db:"quantity"`
		Name     string  `db:"name"`
	}
	err := tx.GetContext(ctx, &row,
		`SELECT i.quantity, m.name
		 FROM inventory i JOIN materials m ON m.id = i.material_id
		 WHERE i.material_id = $1`, req.MaterialID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("inventory record missing for material %d", req.MaterialID)
	}
	if err != nil {
		return err
	}
	return &domain.InsufficientStockError{
		MaterialID:   req.MaterialID,
		MaterialName: row.Name,
		Required:     req.Quantity,
		Available:    row.Quantity,
	}
}
