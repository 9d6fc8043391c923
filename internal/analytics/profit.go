// internal/analytics/profit.go
package analytics

import (
	"sort"

	"github.com/besco/backend-go/internal/config"
	"github.com/besco/backend-go/internal/domain"
)

// Aggregator folds order rows and resolved costs into the four profit report
// shapes. It is pure: all inputs are passed in, fixed-cost rates come from the
// injected config.
type Aggregator struct {
	resolver *CostResolver
	costs    config.CostConfig
}

func NewAggregator(resolver *CostResolver, costs config.CostConfig) *Aggregator {
	return &Aggregator{resolver: resolver, costs: costs}
}

// orderCost is the cost basis of one order under the period's resolver.
func (a *Aggregator) orderCost(o domain.Order, r DateRange) float64 {
	return o.Quantity * a.resolver.UnitCost(o.MaterialID, o.OrderDate, r.End)
}

// Summary computes totals, gross profit and net profit after fixed overhead.
func (a *Aggregator) Summary(orders []domain.Order, r DateRange) ProfitSummary {
	var s ProfitSummary
	for _, o := range orders {
		s.TotalSales += o.TotalPrice
		s.TotalQuantity += o.Quantity
		s.TotalCost += a.orderCost(o, r)
		s.TotalOrders++
		if a.resolver.IsBlend(o.MaterialID) {
			s.BlendedQuantity += o.Quantity
		}
	}
	s.TotalProfit = s.TotalSales - s.TotalCost
	s.ProfitRate = profitRate(s.TotalProfit, s.TotalSales)

	s.ExtraCosts = ExtraCosts{
		Packaging:  s.BlendedQuantity * a.costs.PackagingPerKg,
		Shipping:   s.BlendedQuantity / a.costs.ShippingBoxKg * a.costs.ShippingPerBox,
		OrderBoxes: float64(s.TotalOrders) * a.costs.BoxPerOrder,
		Rent:       float64(r.MonthsInclusive()) * a.costs.RentPerMonth,
	}
	s.ExtraCosts.Total = s.ExtraCosts.Packaging + s.ExtraCosts.Shipping +
		s.ExtraCosts.OrderBoxes + s.ExtraCosts.Rent

	s.NetProfit = s.TotalProfit - s.ExtraCosts.Total
	s.NetProfitRate = profitRate(s.NetProfit, s.TotalSales)
	return s
}

// ByProduct groups by material id+name, sorted by profit descending.
func (a *Aggregator) ByProduct(orders []domain.Order, r DateRange) []ProductProfit {
	type key struct {
		id   int64
		name string
	}
	groups := make(map[key]*ProductProfit)
	for _, o := range orders {
		k := key{id: o.MaterialID, name: o.MaterialName}
		row, ok := groups[k]
		if !ok {
			row = &ProductProfit{MaterialID: o.MaterialID, MaterialName: o.MaterialName}
			groups[k] = row
		}
		row.Quantity += o.Quantity
		row.Sales += o.TotalPrice
		row.Cost += a.orderCost(o, r)
	}

	rows := make([]ProductProfit, 0, len(groups))
	for _, row := range groups {
		row.Profit = row.Sales - row.Cost
		row.ProfitRate = profitRate(row.Profit, row.Sales)
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Profit > rows[j].Profit })
	return rows
}

// ByCustomer groups by customer name, sorted by profit descending.
func (a *Aggregator) ByCustomer(orders []domain.Order, r DateRange) []CustomerProfit {
	groups := make(map[string]*CustomerProfit)
	for _, o := range orders {
		row, ok := groups[o.CustomerName]
		if !ok {
			row = &CustomerProfit{CustomerName: o.CustomerName}
			groups[o.CustomerName] = row
		}
		row.Sales += o.TotalPrice
		row.Cost += a.orderCost(o, r)
	}

	rows := make([]CustomerProfit, 0, len(groups))
	for _, row := range groups {
		row.Profit = row.Sales - row.Cost
		row.ProfitRate = profitRate(row.Profit, row.Sales)
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Profit > rows[j].Profit })
	return rows
}

// Monthly groups by (year, month) of the order date, one entry per month
// present in the data, sorted chronologically ascending.
func (a *Aggregator) Monthly(orders []domain.Order, r DateRange) []MonthlyProfit {
	type key struct {
		year  int
		month int
	}
	groups := make(map[key]*MonthlyProfit)
	for _, o := range orders {
		k := key{year: o.OrderDate.Year(), month: int(o.OrderDate.Month())}
		row, ok := groups[k]
		if !ok {
			row = &MonthlyProfit{Year: k.year, Month: k.month}
			groups[k] = row
		}
		row.Quantity += o.Quantity
		row.Sales += o.TotalPrice
		row.Cost += a.orderCost(o, r)
	}

	rows := make([]MonthlyProfit, 0, len(groups))
	for _, row := range groups {
		row.Profit = row.Sales - row.Cost
		row.ProfitRate = profitRate(row.Profit, row.Sales)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}
