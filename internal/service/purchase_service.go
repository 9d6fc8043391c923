// backend-go/internal/service/purchase_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/besco/backend-go/internal/cache"
	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository"
)

type PurchaseInput struct {
	MaterialName string
	QuantityKg   float64
	PricePerKg   float64
	PurchaseDate time.Time
	Supplier     *string
	Note         *string
}

type PurchaseService struct {
	purchases repository.PurchaseRepository
	materials repository.MaterialRepository
	profit    cache.ProfitReportCache
}

func NewPurchaseService(purchases repository.PurchaseRepository, materials repository.MaterialRepository, profit cache.ProfitReportCache) *PurchaseService {
	return &PurchaseService{
		purchases: purchases,
		materials: materials,
		profit:    profit,
	}
}

func (s *PurchaseService) List(ctx context.Context) ([]domain.MaterialPurchase, error) {
	return s.purchases.List(ctx)
}

// Create records a purchase and adds the quantity to the material's
// inventory. The material name is snapshotted on the row so reports survive
// later renames.
func (s *PurchaseService) Create(ctx context.Context, in PurchaseInput) (*domain.MaterialPurchase, error) {
	if in.QuantityKg <= 0 {
		return nil, domain.Validationf("purchase quantity must be positive")
	}
	if in.PricePerKg < 0 {
		return nil, domain.Validationf("price per kg cannot be negative")
	}
	if in.PurchaseDate.IsZero() {
		return nil, domain.Validationf("purchase date is required")
	}

	material, err := s.materials.GetByName(ctx, in.MaterialName)
	if err != nil {
		return nil, err
	}

	p := &domain.MaterialPurchase{
		MaterialID:   material.ID,
		MaterialName: material.Name,
		QuantityKg:   in.QuantityKg,
		PricePerKg:   in.PricePerKg,
		TotalPrice:   in.QuantityKg * in.PricePerKg,
		PurchaseDate: in.PurchaseDate,
		Supplier:     in.Supplier,
		Note:         in.Note,
	}

	created, err := s.purchases.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidateProfit(ctx)
	return created, nil
}

// Delete reverses the purchase: the row goes away and inventory drops by the
// purchased quantity. When the stock has already been consumed below that
// quantity the deletion is rejected and nothing changes.
func (s *PurchaseService) Delete(ctx context.Context, id int64) error {
	if err := s.purchases.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateProfit(ctx)
	return nil
}

func (s *PurchaseService) invalidateProfit(ctx context.Context) {
	if err := s.profit.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate profit cache")
	}
}
