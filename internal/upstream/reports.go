package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/storekeep/adminapi/internal/domain"
)

type summaryRowDTO struct {
	Date       string  `json:"date"`
	Revenue    float64 `json:"revenue"`
	SalesCount int     `json:"salesCount"`
}

type summaryResponse struct {
	Data []summaryRowDTO `json:"data"`
}

// SalesSummary fetches the aggregated sales report for a date range. The
// aggregation itself happens upstream; the gateway only reshapes the rows
// for display.
func (c *Client) SalesSummary(ctx context.Context, token, from, to string) ([]domain.SummaryRow, error) {
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}

	var resp summaryResponse
	if err := c.do(ctx, http.MethodGet, "/reports/sales-summary", token, query, nil, &resp); err != nil {
		return nil, err
	}

	rows := make([]domain.SummaryRow, len(resp.Data))
	for i, r := range resp.Data {
		rows[i] = domain.SummaryRow{
			Date:       r.Date,
			Revenue:    r.Revenue,
			SalesCount: r.SalesCount,
		}
	}
	return rows, nil
}
