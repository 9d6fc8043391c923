// backend-go/internal/service/order_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/besco/backend-go/internal/cache"
	"github.com/besco/backend-go/internal/config"
	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository"
)

type OrderInput struct {
	CustomerName string
	MaterialName string
	Quantity     float64
	PricePerKg   float64
	OrderDate    time.Time
}

type OrderService struct {
	orders    repository.OrderRepository
	materials repository.MaterialRepository
	customers repository.CustomerRepository
	profit    cache.ProfitReportCache
	costs     config.CostConfig
}

func NewOrderService(
	orders repository.OrderRepository,
	materials repository.MaterialRepository,
	customers repository.CustomerRepository,
	profit cache.ProfitReportCache,
	costs config.CostConfig,
) *OrderService {
	return &OrderService{
		orders:    orders,
		materials: materials,
		customers: customers,
		profit:    profit,
		costs:     costs,
	}
}

func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

// Create records the order and draws the expanded raw-material requirements
// from inventory atomically. The expansion is snapshotted with the order so a
// later deletion restores exactly what was drawn, even if the material's type
// or recipe changed in between.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	if in.Quantity <= 0 {
		return nil, domain.Validationf("order quantity must be positive")
	}
	if in.PricePerKg < 0 {
		return nil, domain.Validationf("price per kg cannot be negative")
	}
	if in.OrderDate.IsZero() {
		return nil, domain.Validationf("order date is required")
	}

	if _, err := s.customers.GetByName(ctx, in.CustomerName); err != nil {
		return nil, err
	}
	material, err := s.materials.GetByName(ctx, in.MaterialName)
	if err != nil {
		return nil, err
	}

	requirements, err := s.expand(ctx, material, in.Quantity)
	if err != nil {
		return nil, err
	}

	o := &domain.Order{
		CustomerName: in.CustomerName,
		MaterialID:   material.ID,
		MaterialName: material.Name,
		Quantity:     in.Quantity,
		PricePerKg:   in.PricePerKg,
		TotalPrice:   in.Quantity * in.PricePerKg,
		OrderDate:    in.OrderDate,
	}

	created, err := s.orders.Create(ctx, o, requirements)
	if err != nil {
		return nil, err
	}
	s.invalidateProfit(ctx)
	return created, nil
}

// Delete removes the order and returns its raw-material draw to inventory.
// The creation-time snapshot is preferred; orders that predate snapshotting
// fall back to re-expanding against the material's current recipe.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}

	restore, err := s.orders.Requirements(ctx, id)
	if err != nil {
		return err
	}
	if len(restore) == 0 {
		material, err := s.materials.Get(ctx, o.MaterialID)
		if err != nil {
			return err
		}
		restore, err = s.expand(ctx, material, o.Quantity)
		if err != nil {
			return err
		}
	}

	if err := s.orders.Delete(ctx, id, restore); err != nil {
		return err
	}
	s.invalidateProfit(ctx)
	return nil
}

func (s *OrderService) expand(ctx context.Context, material *domain.Material, quantity float64) ([]domain.MaterialRequirement, error) {
	var components []domain.BlendComponent
	if material.Type == domain.MaterialBlend {
		var err error
		components, err = s.blendComponents(ctx, material)
		if err != nil {
			return nil, err
		}
	}

	yield := domain.Yield{
		Blend:        s.costs.BlendYieldFactor,
		SingleOrigin: s.costs.SingleOriginYield,
	}
	return domain.ExpandRequirements(material, components, quantity, yield)
}

// blendComponents resolves the blend's recipe. With legacy ratios enabled
// every blend splits by the fixed historical table instead of its own
// component rows.
func (s *OrderService) blendComponents(ctx context.Context, material *domain.Material) ([]domain.BlendComponent, error) {
	if !s.costs.LegacyBlendRatios {
		return s.materials.GetComponents(ctx, material.ID)
	}

	legacy := domain.LegacyBlendRatios()
	components := make([]domain.BlendComponent, 0, len(legacy))
	for _, entry := range legacy {
		origin, err := s.materials.GetByName(ctx, entry.Name)
		if err != nil {
			return nil, err
		}
		components = append(components, domain.BlendComponent{
			BlendID:     material.ID,
			ComponentID: origin.ID,
			Ratio:       entry.Ratio,
		})
	}
	return components, nil
}

func (s *OrderService) invalidateProfit(ctx context.Context) {
	if err := s.profit.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate profit cache")
	}
}
