// internal/analytics/costing.go
package analytics

import (
	"sort"
	"time"

	"github.com/besco/backend-go/internal/domain"
)

// PricePoint is one purchase-price observation for a material.
type PricePoint struct {
	Date       time.Time
	PricePerKg float64
}

// PriceBook answers as-of price lookups over the purchase history. The as-of
// lookup is evaluated per order row: there is no single "current price", every
// order carries the price in effect on its own date.
type PriceBook struct {
	byMaterial map[int64][]PricePoint
}

// NewPriceBook indexes purchases by material, sorted by purchase date.
func NewPriceBook(purchases []domain.MaterialPurchase) *PriceBook {
	book := &PriceBook{byMaterial: make(map[int64][]PricePoint)}
	for _, p := range purchases {
		book.byMaterial[p.MaterialID] = append(book.byMaterial[p.MaterialID], PricePoint{
			Date:       p.PurchaseDate,
			PricePerKg: p.PricePerKg,
		})
	}
	for id := range book.byMaterial {
		points := book.byMaterial[id]
		sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	}
	return book
}

// UnitCostAsOf returns the price of the most recent purchase at or before the
// given date. An order that predates every purchase costs 0; that is the
// documented fallback, not an error.
func (b *PriceBook) UnitCostAsOf(materialID int64, asOf time.Time) float64 {
	points := b.byMaterial[materialID]
	// first point strictly after asOf; the one before it applies
	idx := sort.Search(len(points), func(i int) bool { return points[i].Date.After(asOf) })
	if idx == 0 {
		return 0
	}
	return points[idx-1].PricePerKg
}

// CostResolver resolves the applicable unit cost for a material on a date,
// delegating blends to the weighted component calculation.
type CostResolver struct {
	prices     *PriceBook
	types      map[int64]domain.MaterialType
	components map[int64][]domain.BlendComponent
}

// NewCostResolver builds a resolver from purchase history, the material type
// map and the blend composition rows.
func NewCostResolver(purchases []domain.MaterialPurchase, materials []domain.Material, components []domain.BlendComponent) *CostResolver {
	types := make(map[int64]domain.MaterialType, len(materials))
	for _, m := range materials {
		types[m.ID] = m.Type
	}
	byBlend := make(map[int64][]domain.BlendComponent)
	for _, c := range components {
		byBlend[c.BlendID] = append(byBlend[c.BlendID], c)
	}
	return &CostResolver{
		prices:     NewPriceBook(purchases),
		types:      types,
		components: byBlend,
	}
}

// IsBlend reports whether the material is costed at the blended period rate.
func (r *CostResolver) IsBlend(materialID int64) bool {
	return r.types[materialID] == domain.MaterialBlend
}

// BlendCost derives a single per-kg rate for a blend: each component is priced
// at its latest purchase at or before asOf and weighted by its ratio. An
// unpriced component contributes 0, same as the as-of fallback. The yield
// factor is not applied here; it belongs to requirement expansion.
func (r *CostResolver) BlendCost(blendID int64, asOf time.Time) float64 {
	var cost float64
	for _, c := range r.components[blendID] {
		cost += r.prices.UnitCostAsOf(c.ComponentID, asOf) * c.Ratio
	}
	return cost
}

// UnitCost resolves the cost basis for one order row: blends use the single
// blended rate for the report period (asOf = period end), everything else uses
// the per-order as-of purchase price.
func (r *CostResolver) UnitCost(materialID int64, orderDate, periodEnd time.Time) float64 {
	if r.IsBlend(materialID) {
		return r.BlendCost(materialID, periodEnd)
	}
	return r.prices.UnitCostAsOf(materialID, orderDate)
}
