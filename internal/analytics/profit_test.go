package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/besco/backend-go/internal/config"
	"github.com/besco/backend-go/internal/domain"
)

func testCosts() config.CostConfig {
	return config.CostConfig{
		PackagingPerKg: 1000,
		ShippingPerBox: 6000,
		ShippingBoxKg:  15,
		BoxPerOrder:    1000,
		RentPerMonth:   650000,
	}
}

func order(customer string, materialID int64, materialName, date string, qty, price float64) domain.Order {
	return domain.Order{
		CustomerName: customer,
		MaterialID:   materialID,
		MaterialName: materialName,
		Quantity:     qty,
		PricePerKg:   price,
		TotalPrice:   qty * price,
		OrderDate:    day(date),
	}
}

func testAggregator() *Aggregator {
	resolver := NewCostResolver(testPurchases(), testMaterials(), testComponents())
	return NewAggregator(resolver, testCosts())
}

func TestSummary(t *testing.T) {
	agg := testAggregator()
	r := DateRange{Start: day("2024-01-01"), End: day("2024-01-31")}
	orders := []domain.Order{
		order("노원베스코", 10, "블렌딩원두", "2024-01-03", 30, 23000),
	}

	s := agg.Summary(orders, r)

	assert.Equal(t, 690000.0, s.TotalSales)
	assert.InDelta(t, 30*8425.0, s.TotalCost, 1e-9)
	assert.InDelta(t, 690000.0-252750.0, s.TotalProfit, 1e-9)
	assert.InDelta(t, (690000.0-252750.0)/690000.0*100, s.ProfitRate, 1e-9)
	assert.Equal(t, 30.0, s.TotalQuantity)
	assert.Equal(t, 1, s.TotalOrders)
	assert.Equal(t, 30.0, s.BlendedQuantity)

	assert.InDelta(t, 30000.0, s.ExtraCosts.Packaging, 1e-9)
	assert.InDelta(t, 12000.0, s.ExtraCosts.Shipping, 1e-9)
	assert.InDelta(t, 1000.0, s.ExtraCosts.OrderBoxes, 1e-9)
	assert.InDelta(t, 650000.0, s.ExtraCosts.Rent, 1e-9, "January window allocates one month of rent")
	assert.InDelta(t, 693000.0, s.ExtraCosts.Total, 1e-9)
	assert.InDelta(t, s.TotalProfit-693000.0, s.NetProfit, 1e-9)
}

func TestSummaryZeroSales(t *testing.T) {
	agg := testAggregator()
	r := DateRange{Start: day("2024-01-01"), End: day("2024-01-31")}

	s := agg.Summary(nil, r)

	assert.Equal(t, 0.0, s.ProfitRate)
	assert.Equal(t, 0.0, s.NetProfitRate)
	assert.Equal(t, 0.0, s.BlendedQuantity)
}

func TestSummaryCountsOnlyBlendedQuantity(t *testing.T) {
	agg := testAggregator()
	r := DateRange{Start: day("2024-01-01"), End: day("2024-03-31")}
	orders := []domain.Order{
		order("노원베스코", 10, "블렌딩원두", "2024-01-03", 30, 23000),
		order("노원베스코", 2, "콜롬비아", "2024-02-03", 10, 15000),
	}

	s := agg.Summary(orders, r)

	assert.Equal(t, 30.0, s.BlendedQuantity)
	assert.Equal(t, 40.0, s.TotalQuantity)
	assert.InDelta(t, 3*650000.0, s.ExtraCosts.Rent, 1e-9, "Jan..Mar allocates three months")
}

func TestByProductSortedByProfit(t *testing.T) {
	agg := testAggregator()
	r := DateRange{Start: day("2024-01-01"), End: day("2024-03-31")}
	orders := []domain.Order{
		order("노원베스코", 2, "콜롬비아", "2024-01-10", 10, 11000),
		order("더블브이", 10, "블렌딩원두", "2024-01-03", 30, 23000),
		order("원스토리", 2, "콜롬비아", "2024-02-10", 5, 11000),
	}

	rows := agg.ByProduct(orders, r)

	require.Len(t, rows, 2)
	assert.Equal(t, "블렌딩원두", rows[0].MaterialName)
	assert.Equal(t, "콜롬비아", rows[1].MaterialName)
	assert.Equal(t, 15.0, rows[1].Quantity)
	assert.InDelta(t, 15*11000.0-15*10000.0, rows[1].Profit, 1e-9)
	assert.Greater(t, rows[0].Profit, rows[1].Profit)
}

func TestByCustomerSortedByProfit(t *testing.T) {
	agg := testAggregator()
	r := DateRange{Start: day("2024-01-01"), End: day("2024-03-31")}
	orders := []domain.Order{
		order("가우디안경", 10, "블렌딩원두", "2024-02-13", 4, 23000),
		order("더블브이", 10, "블렌딩원두", "2024-01-09", 30, 23000),
		order("더블브이", 10, "블렌딩원두", "2024-02-19", 30, 23000),
	}

	rows := agg.ByCustomer(orders, r)

	require.Len(t, rows, 2)
	assert.Equal(t, "더블브이", rows[0].CustomerName)
	assert.Equal(t, 2*30*23000.0, rows[0].Sales)
	assert.Equal(t, "가우디안경", rows[1].CustomerName)
}

func TestMonthlyChronological(t *testing.T) {
	agg := testAggregator()
	r := DateRange{Start: day("2024-11-01"), End: day("2025-02-28")}
	orders := []domain.Order{
		order("노원베스코", 10, "블렌딩원두", "2025-01-06", 30, 25000),
		order("더블브이", 10, "블렌딩원두", "2024-11-04", 30, 23000),
		order("죽암리", 10, "블렌딩원두", "2024-11-25", 4, 23000),
		order("동부엔텍", 10, "블렌딩원두", "2025-02-04", 3, 25000),
	}

	rows := agg.Monthly(orders, r)

	require.Len(t, rows, 3)
	assert.Equal(t, 2024, rows[0].Year)
	assert.Equal(t, 11, rows[0].Month)
	assert.Equal(t, 34.0, rows[0].Quantity, "same-month orders fold into one row")
	assert.Equal(t, 2025, rows[1].Year)
	assert.Equal(t, 1, rows[1].Month)
	assert.Equal(t, 2025, rows[2].Year)
	assert.Equal(t, 2, rows[2].Month)
}

func TestMonthsInclusive(t *testing.T) {
	assert.Equal(t, 1, DateRange{Start: day("2024-01-05"), End: day("2024-01-20")}.MonthsInclusive())
	assert.Equal(t, 3, DateRange{Start: day("2024-01-15"), End: day("2024-03-02")}.MonthsInclusive())
	assert.Equal(t, 13, DateRange{Start: day("2024-02-01"), End: day("2025-02-28")}.MonthsInclusive())
}

func TestDefaultDateRange(t *testing.T) {
	now := day("2025-02-28")
	r := DefaultDateRange(now)
	assert.Equal(t, now, r.End)
	assert.Equal(t, now.AddDate(0, 0, -365), r.Start)
	assert.True(t, r.Contains(day("2024-06-01")))
	assert.False(t, r.Contains(day("2023-06-01")))
}
