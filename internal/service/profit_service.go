// backend-go/internal/service/profit_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/besco/backend-go/internal/analytics"
	"github.com/besco/backend-go/internal/cache"
	"github.com/besco/backend-go/internal/config"
	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository"
)

const (
	reportSummary    = "summary"
	reportByProduct  = "by_product"
	reportByCustomer = "by_customer"
	reportMonthly    = "monthly"
)

// ProfitService computes profit reports from raw order and purchase rows.
// Every report rebuilds the price book for its own window so a backdated
// purchase or a deleted order is reflected on the next read.
type ProfitService struct {
	analytics repository.AnalyticsRepository
	cache     cache.ProfitReportCache
	costs     config.CostConfig
}

func NewProfitService(repo repository.AnalyticsRepository, reportCache cache.ProfitReportCache, costs config.CostConfig) *ProfitService {
	return &ProfitService{
		analytics: repo,
		cache:     reportCache,
		costs:     costs,
	}
}

func (s *ProfitService) Summary(ctx context.Context, r analytics.DateRange) (*analytics.ProfitSummary, error) {
	var cached analytics.ProfitSummary
	if hit := s.cacheGet(ctx, reportSummary, r, &cached); hit {
		return &cached, nil
	}

	agg, orders, err := s.aggregator(ctx, r)
	if err != nil {
		return nil, err
	}
	summary := agg.Summary(orders, r)
	s.cacheSet(ctx, reportSummary, r, summary)
	return &summary, nil
}

func (s *ProfitService) ByProduct(ctx context.Context, r analytics.DateRange) ([]analytics.ProductProfit, error) {
	var cached []analytics.ProductProfit
	if hit := s.cacheGet(ctx, reportByProduct, r, &cached); hit {
		return cached, nil
	}

	agg, orders, err := s.aggregator(ctx, r)
	if err != nil {
		return nil, err
	}
	rows := agg.ByProduct(orders, r)
	s.cacheSet(ctx, reportByProduct, r, rows)
	return rows, nil
}

func (s *ProfitService) ByCustomer(ctx context.Context, r analytics.DateRange) ([]analytics.CustomerProfit, error) {
	var cached []analytics.CustomerProfit
	if hit := s.cacheGet(ctx, reportByCustomer, r, &cached); hit {
		return cached, nil
	}

	agg, orders, err := s.aggregator(ctx, r)
	if err != nil {
		return nil, err
	}
	rows := agg.ByCustomer(orders, r)
	s.cacheSet(ctx, reportByCustomer, r, rows)
	return rows, nil
}

func (s *ProfitService) Monthly(ctx context.Context, r analytics.DateRange) ([]analytics.MonthlyProfit, error) {
	var cached []analytics.MonthlyProfit
	if hit := s.cacheGet(ctx, reportMonthly, r, &cached); hit {
		return cached, nil
	}

	agg, orders, err := s.aggregator(ctx, r)
	if err != nil {
		return nil, err
	}
	rows := agg.Monthly(orders, r)
	s.cacheSet(ctx, reportMonthly, r, rows)
	return rows, nil
}

// aggregator loads the window's orders plus every purchase dated at or before
// the window end, then wires them into a cost resolver.
func (s *ProfitService) aggregator(ctx context.Context, r analytics.DateRange) (*analytics.Aggregator, []domain.Order, error) {
	orders, err := s.analytics.OrdersInRange(ctx, r.Start, r.End)
	if err != nil {
		return nil, nil, err
	}
	purchases, err := s.analytics.PurchasesThrough(ctx, r.End)
	if err != nil {
		return nil, nil, err
	}
	materials, err := s.analytics.Materials(ctx)
	if err != nil {
		return nil, nil, err
	}
	components, err := s.analytics.BlendComponents(ctx)
	if err != nil {
		return nil, nil, err
	}

	resolver := analytics.NewCostResolver(purchases, materials, components)
	return analytics.NewAggregator(resolver, s.costs), orders, nil
}

func (s *ProfitService) cacheGet(ctx context.Context, report string, r analytics.DateRange, dest any) bool {
	hit, err := s.cache.Get(ctx, report, r, dest)
	if err != nil {
		log.Warn().Err(err).Str("report", report).Msg("profit cache read failed")
		return false
	}
	return hit
}

func (s *ProfitService) cacheSet(ctx context.Context, report string, r analytics.DateRange, payload any) {
	if err := s.cache.Set(ctx, report, r, payload); err != nil {
		log.Warn().Err(err).Str("report", report).Msg("profit cache write failed")
	}
}
