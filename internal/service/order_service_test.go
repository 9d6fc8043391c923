package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/besco/backend-go/internal/cache"
	"github.com/besco/backend-go/internal/config"
	"github.com/besco/backend-go/internal/domain"
)

func testCostConfig() config.CostConfig {
	return config.CostConfig{
		BlendYieldFactor:  1.2,
		SingleOriginYield: 1.23,
	}
}

func seedMaterials(repo *fakeMaterialRepo) {
	repo.add(domain.Material{ID: 1, Name: "브라질", Type: domain.MaterialRegular})
	repo.add(domain.Material{ID: 2, Name: "콜롬비아", Type: domain.MaterialRegular})
	repo.add(domain.Material{ID: 3, Name: "과테말라", Type: domain.MaterialRegular})
	repo.add(domain.Material{ID: 4, Name: "시다모", Type: domain.MaterialRegular})
	repo.add(domain.Material{ID: 10, Name: "블렌딩원두", Type: domain.MaterialBlend})
	repo.components[10] = []domain.BlendComponent{
		{BlendID: 10, ComponentID: 1, Ratio: 0.55},
		{BlendID: 10, ComponentID: 2, Ratio: 0.20},
		{BlendID: 10, ComponentID: 3, Ratio: 0.15},
		{BlendID: 10, ComponentID: 4, Ratio: 0.10},
	}
}

func newOrderFixture(costs config.CostConfig, stock map[int64]float64) (*OrderService, *fakeOrderRepo, *fakeMaterialRepo) {
	materials := newFakeMaterialRepo()
	seedMaterials(materials)
	orders := newFakeOrderRepo(stock)
	customers := newFakeCustomerRepo("노원베스코", "더블브이")
	svc := NewOrderService(orders, materials, customers, cache.NewNoopProfitCache(), costs)
	return svc, orders, materials
}

func TestOrderCreateDrawsExpandedRequirements(t *testing.T) {
	svc, orders, _ := newOrderFixture(testCostConfig(), map[int64]float64{1: 100, 2: 100, 3: 100, 4: 100})

	created, err := svc.Create(context.Background(), OrderInput{
		CustomerName: "노원베스코",
		MaterialName: "블렌딩원두",
		Quantity:     30,
		PricePerKg:   23000,
		OrderDate:    day("2024-01-03"),
	})
	require.NoError(t, err)
	assert.Equal(t, 30*23000.0, created.TotalPrice)
	assert.Equal(t, int64(10), created.MaterialID)

	// 36kg of raw beans drawn at 55/20/15/10
	assert.InDelta(t, 100-19.8, orders.inventory[1], 1e-9)
	assert.InDelta(t, 100-7.2, orders.inventory[2], 1e-9)
	assert.InDelta(t, 100-5.4, orders.inventory[3], 1e-9)
	assert.InDelta(t, 100-3.6, orders.inventory[4], 1e-9)

	snapshot, err := orders.Requirements(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, snapshot, 4)
}

func TestOrderCreateInsufficientStock(t *testing.T) {
	svc, orders, _ := newOrderFixture(testCostConfig(), map[int64]float64{1: 5, 2: 100, 3: 100, 4: 100})

	_, err := svc.Create(context.Background(), OrderInput{
		CustomerName: "노원베스코",
		MaterialName: "블렌딩원두",
		Quantity:     30,
		PricePerKg:   23000,
		OrderDate:    day("2024-01-03"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsInsufficientStock(err))

	// nothing drawn, nothing stored
	assert.Equal(t, 5.0, orders.inventory[1])
	assert.Equal(t, 100.0, orders.inventory[2])
	assert.Empty(t, orders.orders)
}

func TestOrderCreateUnknownCustomer(t *testing.T) {
	svc, _, _ := newOrderFixture(testCostConfig(), map[int64]float64{1: 100, 2: 100, 3: 100, 4: 100})

	_, err := svc.Create(context.Background(), OrderInput{
		CustomerName: "없는거래처",
		MaterialName: "블렌딩원두",
		Quantity:     30,
		PricePerKg:   23000,
		OrderDate:    day("2024-01-03"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderDeleteRestoresSnapshotAfterRecipeChange(t *testing.T) {
	svc, orders, materials := newOrderFixture(testCostConfig(), map[int64]float64{1: 100, 2: 100, 3: 100, 4: 100})

	created, err := svc.Create(context.Background(), OrderInput{
		CustomerName: "더블브이",
		MaterialName: "블렌딩원두",
		Quantity:     30,
		PricePerKg:   23000,
		OrderDate:    day("2024-01-09"),
	})
	require.NoError(t, err)

	// recipe changes after the sale; the reversal must not care
	materials.components[10] = []domain.BlendComponent{
		{BlendID: 10, ComponentID: 2, Ratio: 1.0},
	}

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	for id := int64(1); id <= 4; id++ {
		assert.InDelta(t, 100.0, orders.inventory[id], 1e-9, "material %d back to its opening level", id)
	}
	assert.Empty(t, orders.orders)
}

func TestOrderDeleteFallsBackToRecompute(t *testing.T) {
	svc, orders, _ := newOrderFixture(testCostConfig(), map[int64]float64{2: 50})

	created, err := svc.Create(context.Background(), OrderInput{
		CustomerName: "노원베스코",
		MaterialName: "콜롬비아",
		Quantity:     10,
		PricePerKg:   15000,
		OrderDate:    day("2024-02-03"),
	})
	require.NoError(t, err)

	// simulate a row that predates requirement snapshotting
	delete(orders.snapshots, created.ID)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.InDelta(t, 50.0, orders.inventory[2], 1e-9)
}

func TestOrderCreateLegacyBlendRatios(t *testing.T) {
	costs := testCostConfig()
	costs.LegacyBlendRatios = true
	svc, orders, materials := newOrderFixture(costs, map[int64]float64{1: 100, 2: 100, 3: 100, 4: 100})

	// live recipe disagrees with the historical table; the flag wins
	materials.components[10] = []domain.BlendComponent{
		{BlendID: 10, ComponentID: 2, Ratio: 1.0},
	}

	_, err := svc.Create(context.Background(), OrderInput{
		CustomerName: "노원베스코",
		MaterialName: "블렌딩원두",
		Quantity:     30,
		PricePerKg:   23000,
		OrderDate:    day("2024-01-03"),
	})
	require.NoError(t, err)

	assert.InDelta(t, 100-19.8, orders.inventory[1], 1e-9)
	assert.InDelta(t, 100-7.2, orders.inventory[2], 1e-9)
	assert.InDelta(t, 100-5.4, orders.inventory[3], 1e-9)
	assert.InDelta(t, 100-3.6, orders.inventory[4], 1e-9)
}

func TestOrderCreateRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := newOrderFixture(testCostConfig(), map[int64]float64{})

	_, err := svc.Create(context.Background(), OrderInput{
		CustomerName: "노원베스코",
		MaterialName: "블렌딩원두",
		Quantity:     0,
		PricePerKg:   23000,
		OrderDate:    day("2024-01-03"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
