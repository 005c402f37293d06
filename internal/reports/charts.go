// Package reports reshapes the core API's sales summary rows into the
// structures the dashboard charts and KPI cards render from. All aggregation
// happens upstream; this is display plumbing only.
package reports

import "github.com/storekeep/adminapi/internal/domain"

// KPI exposes headline metrics for the dashboard cards.
type KPI struct {
	TotalRevenue float64 `json:"total_revenue"`
	SalesCount   int     `json:"sales_count"`
	AverageSale  float64 `json:"average_sale"`
}

// Series is a label-aligned value sequence for a single chart line or bar
// group.
type Series struct {
	Labels  []string  `json:"labels"`
	Revenue []float64 `json:"revenue"`
	Counts  []int     `json:"counts"`
}

// Summarize folds report rows into headline KPI numbers.
func Summarize(rows []domain.SummaryRow) KPI {
	var kpi KPI
	for _, row := range rows {
		kpi.TotalRevenue += row.Revenue
		kpi.SalesCount += row.SalesCount
	}
	if kpi.SalesCount > 0 {
		kpi.AverageSale = kpi.TotalRevenue / float64(kpi.SalesCount)
	}
	return kpi
}

// Reshape turns report rows into a chart series, preserving row order. Rows
// arrive already bucketed and sorted by the core API.
func Reshape(rows []domain.SummaryRow) Series {
	series := Series{
		Labels:  make([]string, len(rows)),
		Revenue: make([]float64, len(rows)),
		Counts:  make([]int, len(rows)),
	}
	for i, row := range rows {
		series.Labels[i] = row.Date
		series.Revenue[i] = row.Revenue
		series.Counts[i] = row.SalesCount
	}
	return series
}
