// internal/domain/models.go
package domain

import "time"

// MaterialType classifies how a material is costed and consumed.
type MaterialType string

const (
	MaterialRegular      MaterialType = "regular"
	MaterialSingleOrigin MaterialType = "single_origin"
	MaterialBlend        MaterialType = "blend"
)

func (t MaterialType) Valid() bool {
	switch t {
	case MaterialRegular, MaterialSingleOrigin, MaterialBlend:
		return true
	}
	return false
}

// Customer is a wholesale buyer. Deleting a customer cascades to its orders.
type Customer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Material is a sellable or raw good. A blend owns BlendComponent rows.
type Material struct {
	ID              int64        `json:"id" db:"id"`
	Name            string       `json:"name" db:"name"`
	Type            MaterialType `json:"type" db:"type"`
	Unit            string       `json:"unit" db:"unit"`
	ProcessingRatio float64      `json:"processing_ratio" db:"processing_ratio"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`

	// Populated only for blend materials on detail reads.
	Components []BlendComponent `json:"blend_components,omitempty" db:"-"`
}

// BlendComponent is one weighted ingredient of a blend. Ratios conventionally
// sum to 1 but are not required to.
type BlendComponent struct {
	ID          int64   `json:"id" db:"id"`
	BlendID     int64   `json:"blend_id" db:"blend_id"`
	ComponentID int64   `json:"component_id" db:"component_id"`
	Ratio       float64 `json:"ratio" db:"ratio"`
}

// MaterialPurchase is an immutable acquisition event. material_name is a
// snapshot taken at purchase time.
type MaterialPurchase struct {
	ID           int64     `json:"id" db:"id"`
	MaterialID   int64     `json:"material_id" db:"material_id"`
	MaterialName string    `json:"material_name" db:"material_name"`
	QuantityKg   float64   `json:"quantity_kg" db:"quantity_kg"`
	PricePerKg   float64   `json:"price_per_kg" db:"price_per_kg"`
	TotalPrice   float64   `json:"total_price" db:"total_price"`
	PurchaseDate time.Time `json:"purchase_date" db:"purchase_date"`
	Supplier     *string   `json:"supplier,omitempty" db:"supplier"`
	Note         *string   `json:"note,omitempty" db:"note"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Inventory is the single mutable stock row per material.
type Inventory struct {
	ID           int64     `json:"id" db:"id"`
	MaterialID   int64     `json:"material_id" db:"material_id"`
	MaterialName string    `json:"material_name" db:"material_name"`
	Quantity     float64   `json:"quantity" db:"quantity"`
	SafetyStock  float64   `json:"safety_stock" db:"safety_stock"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Order is a sale event. material_name is a snapshot so the row survives a
// later material rename or deletion.
type Order struct {
	ID           int64     `json:"id" db:"id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	MaterialID   int64     `json:"material_id" db:"material_id"`
	MaterialName string    `json:"material_name" db:"material_name"`
	Quantity     float64   `json:"quantity" db:"quantity"`
	PricePerKg   float64   `json:"price_per_kg" db:"price_per_kg"`
	TotalPrice   float64   `json:"total_price" db:"total_price"`
	OrderDate    time.Time `json:"order_date" db:"order_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// MaterialRequirement is one raw-material draw computed for an order.
type MaterialRequirement struct {
	MaterialID int64   `json:"material_id" db:"material_id"`
	Quantity   float64 `json:"quantity" db:"quantity"`
}

// User backs token issuance. The analytics core never touches it beyond the
// authorization predicate in the API layer.
type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Email          *string   `json:"email,omitempty" db:"email"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
