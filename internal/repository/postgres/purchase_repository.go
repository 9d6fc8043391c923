// internal/repository/postgres/purchase_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/besco/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type purchaseRepository struct {
	db *DB
}

func NewPurchaseRepository(db *DB) *purchaseRepository {
	return &purchaseRepository{db: db}
}

const purchaseColumns = `id, material_id, material_name, quantity_kg, price_per_kg,
	total_price, purchase_date, supplier, note, created_at`

func (r *purchaseRepository) List(ctx context.Context) ([]domain.MaterialPurchase, error) {
	purchases := []domain.MaterialPurchase{}
	err := r.db.SelectContext(ctx, &purchases,
		`SELECT `+purchaseColumns+` FROM material_purchases ORDER BY purchase_date DESC`)
	return purchases, err
}

func (r *purchaseRepository) Get(ctx context.Context, id int64) (*domain.MaterialPurchase, error) {
	var p domain.MaterialPurchase
	err := r.db.GetContext(ctx, &p,
		`SELECT `+purchaseColumns+` FROM material_purchases WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("material purchase %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the purchase and increases inventory in the same
// transaction. A material created before inventory tracking gets its row
// upserted here.
func (r *purchaseRepository) Create(ctx context.Context, p *domain.MaterialPurchase) (*domain.MaterialPurchase, error) {
	var created domain.MaterialPurchase
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &created,
			`INSERT INTO material_purchases
				(material_id, material_name, quantity_kg, price_per_kg, total_price,
				 purchase_date, supplier, note)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING `+purchaseColumns,
			p.MaterialID, p.MaterialName, p.QuantityKg, p.PricePerKg, p.TotalPrice,
			p.PurchaseDate, p.Supplier, p.Note); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (material_id, quantity, safety_stock)
			 VALUES ($1, $2, 0)
			 ON CONFLICT (material_id)
			 DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity, updated_at = NOW()`,
			p.MaterialID, p.QuantityKg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete reverses the purchase's inventory effect and removes the row. When
// current stock is below the purchased quantity the whole operation is
// rejected and nothing changes.
func (r *purchaseRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var p domain.MaterialPurchase
		err := tx.GetContext(ctx, &p,
			`SELECT `+purchaseColumns+` FROM material_purchases WHERE id = $1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("material purchase %d", id)
		}
		if err != nil {
			return err
		}

		reversal := []domain.MaterialRequirement{{MaterialID: p.MaterialID, Quantity: p.QuantityKg}}
		if err := applyDelta(ctx, tx, reversal, -1); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM material_purchases WHERE id = $1`, id)
		return err
	})
}
