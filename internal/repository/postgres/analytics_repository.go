// internal/repository/postgres/analytics_repository.go
package postgres

import (
	"context"
	"time"

	"github.com/besco/backend-go/internal/domain"
)

// analyticsRepository serves the raw rows the in-process profit computation
// runs over. Reports never read ledger state, only orders and purchase
// history.
type analyticsRepository struct {
	db *DB
}

func NewAnalyticsRepository(db *DB) *analyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) OrdersInRange(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := r.db.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+`
		 FROM orders
		 WHERE order_date BETWEEN $1 AND $2
		 ORDER BY order_date`, start, end)
	return orders, err
}

// PurchasesThrough loads the full purchase history up to the period end. The
// as-of lookup needs purchases from before the window, so no lower bound.
func (r *analyticsRepository) PurchasesThrough(ctx context.Context, end time.Time) ([]domain.MaterialPurchase, error) {
	purchases := []domain.MaterialPurchase{}
	err := r.db.SelectContext(ctx, &purchases,
		`SELECT `+purchaseColumns+`
		 FROM material_purchases
		 WHERE purchase_date <= $1
		 ORDER BY material_id, purchase_date`, end)
	return purchases, err
}

func (r *analyticsRepository) Materials(ctx context.Context) ([]domain.Material, error) {
	materials := []domain.Material{}
	err := r.db.SelectContext(ctx, &materials,
		`SELECT `+materialColumns+` FROM materials`)
	return materials, err
}

func (r *analyticsRepository) BlendComponents(ctx context.Context) ([]domain.BlendComponent, error) {
	components := []domain.BlendComponent{}
	err := r.db.SelectContext(ctx, &components,
		`SELECT id, blend_id, component_id, ratio FROM blend_components`)
	return components, err
}
