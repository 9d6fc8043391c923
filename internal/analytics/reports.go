// internal/analytics/reports.go
package analytics

import "time"

// DateRange is an inclusive [Start, End] reporting window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DefaultDateRange is the trailing 365 days ending today.
func DefaultDateRange(now time.Time) DateRange {
	return DateRange{Start: now.AddDate(0, 0, -365), End: now}
}

// Contains reports whether t falls inside the window, date-inclusive on both
// ends.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// MonthsInclusive counts calendar months touched by the range, e.g.
// Jan 15 .. Mar 2 spans 3 months. Used for rent allocation.
func (r DateRange) MonthsInclusive() int {
	months := (r.End.Year()-r.Start.Year())*12 + int(r.End.Month()) - int(r.Start.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

// ExtraCosts is the fixed overhead block on the summary report.
type ExtraCosts struct {
	Packaging  float64 `json:"packaging"`
	Shipping   float64 `json:"shipping"`
	OrderBoxes float64 `json:"order_boxes"`
	Rent       float64 `json:"rent"`
	Total      float64 `json:"total"`
}

// ProfitSummary is the summary-cards payload.
type ProfitSummary struct {
	TotalSales      float64    `json:"total_sales"`
	TotalCost       float64    `json:"total_cost"`
	TotalProfit     float64    `json:"total_profit"`
	ProfitRate      float64    `json:"profit_rate"`
	TotalQuantity   float64    `json:"total_quantity"`
	TotalOrders     int        `json:"total_orders"`
	BlendedQuantity float64    `json:"blended_quantity"`
	ExtraCosts      ExtraCosts `json:"extra_costs"`
	NetProfit       float64    `json:"net_profit"`
	NetProfitRate   float64    `json:"net_profit_rate"`
}

// ProductProfit is one row of the by-product report.
type ProductProfit struct {
	MaterialID   int64   `json:"material_id"`
	MaterialName string  `json:"material_name"`
	Quantity     float64 `json:"quantity"`
	Sales        float64 `json:"sales"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
	ProfitRate   float64 `json:"profit_rate"`
}

// CustomerProfit is one row of the by-customer report.
type CustomerProfit struct {
	CustomerName string  `json:"customer_name"`
	Sales        float64 `json:"sales"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
	ProfitRate   float64 `json:"profit_rate"`
}

// MonthlyProfit is one row of the chronological monthly report.
type MonthlyProfit struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Quantity   float64 `json:"quantity"`
	Sales      float64 `json:"sales"`
	Cost       float64 `json:"cost"`
	Profit     float64 `json:"profit"`
	ProfitRate float64 `json:"profit_rate"`
}

// profitRate guards the sales=0 case so no report shape can divide by zero.
func profitRate(profit, sales float64) float64 {
	if sales <= 0 {
		return 0
	}
	return profit / sales * 100
}
