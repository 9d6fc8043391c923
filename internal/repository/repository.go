// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/besco/backend-go/internal/domain"
)

type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByName(ctx context.Context, name string) (*domain.Customer, error)
	Create(ctx context.Context, name string) (*domain.Customer, error)
	// DeleteByName removes the customer and, via FK cascade, its orders.
	DeleteByName(ctx context.Context, name string) error
}

type MaterialRepository interface {
	List(ctx context.Context) ([]domain.Material, error)
	Get(ctx context.Context, id int64) (*domain.Material, error)
	GetByName(ctx context.Context, name string) (*domain.Material, error)
	// Create inserts the material, its blend components (if any) and a zero
	// inventory row in one transaction.
	Create(ctx context.Context, m *domain.Material, components []domain.BlendComponent) (*domain.Material, error)
	Update(ctx context.Context, id int64, materialType *domain.MaterialType, processingRatio *float64) (*domain.Material, error)
	GetComponents(ctx context.Context, blendID int64) ([]domain.BlendComponent, error)
	// ReplaceComponents deletes all component rows for the blend and inserts
	// the given set; components are never patched individually.
	ReplaceComponents(ctx context.Context, blendID int64, components []domain.BlendComponent) error
}

type PurchaseRepository interface {
	List(ctx context.Context) ([]domain.MaterialPurchase, error)
	Get(ctx context.Context, id int64) (*domain.MaterialPurchase, error)
	// Create inserts the purchase and increases (or creates) the material's
	// inventory row in one transaction.
	Create(ctx context.Context, p *domain.MaterialPurchase) (*domain.MaterialPurchase, error)
	// Delete removes the purchase and decreases inventory, rejecting with
	// InsufficientStockError when stock already fell below the purchased
	// quantity. Nothing is applied on rejection.
	Delete(ctx context.Context, id int64) error
}

type InventoryRepository interface {
	List(ctx context.Context) ([]domain.Inventory, error)
	GetByMaterial(ctx context.Context, materialID int64) (*domain.Inventory, error)
	SetQuantity(ctx context.Context, inventoryID int64, quantity float64) error
}

type OrderFilter struct {
	CustomerName string
	StartDate    *time.Time
	EndDate      *time.Time
}

type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	// Create inserts the order, snapshots the expanded raw-material
	// requirements for exact reversal, and applies the inventory decrements
	// in one transaction, all-or-nothing.
	Create(ctx context.Context, o *domain.Order, requirements []domain.MaterialRequirement) (*domain.Order, error)
	// Requirements returns the snapshot taken at creation time; empty for
	// rows that predate snapshotting.
	Requirements(ctx context.Context, orderID int64) ([]domain.MaterialRequirement, error)
	// Delete removes the order and restores inventory by the given
	// requirements in one transaction.
	Delete(ctx context.Context, id int64, restore []domain.MaterialRequirement) error
}

// AnalyticsRepository feeds the in-process profit computation. Reports are
// derived from raw rows, never from ledger state.
type AnalyticsRepository interface {
	OrdersInRange(ctx context.Context, start, end time.Time) ([]domain.Order, error)
	// PurchasesThrough returns every purchase dated at or before end; the
	// price book needs the full history up to the period end, not just the
	// period itself.
	PurchasesThrough(ctx context.Context, end time.Time) ([]domain.MaterialPurchase, error)
	Materials(ctx context.Context) ([]domain.Material, error)
	BlendComponents(ctx context.Context) ([]domain.BlendComponent, error)
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}
