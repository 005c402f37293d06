package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/storekeep/adminapi/internal/domain"
	"github.com/storekeep/adminapi/internal/sale"
)

type saleDTO struct {
	ID            string    `json:"_id"`
	SaleNumber    string    `json:"saleNumber"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Status        string    `json:"status"`
	Subtotal      float64   `json:"subtotal"`
	TaxAmount     float64   `json:"taxAmount"`
	TotalAmount   float64   `json:"totalAmount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (s saleDTO) toDomain() domain.SaleRecord {
	return domain.SaleRecord{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		CustomerName:  s.CustomerName,
		CustomerEmail: s.CustomerEmail,
		Status:        domain.SaleStatus(s.Status),
		Subtotal:      s.Subtotal,
		TaxAmount:     s.TaxAmount,
		TotalAmount:   s.TotalAmount,
		CreatedAt:     s.CreatedAt,
	}
}

type saleListResponse struct {
	Data []saleDTO `json:"data"`
}

// CreateSale posts a submission payload. The core API recomputes all totals
// and performs the stock deduction; a rejection (duplicate, insufficient
// stock) comes back as a Failure carrying the backend's message.
func (c *Client) CreateSale(ctx context.Context, token string, payload sale.SubmissionPayload) error {
	return c.do(ctx, http.MethodPost, "/sales", token, nil, payload, nil)
}

// ListSales fetches persisted sales, optionally filtered by status.
func (c *Client) ListSales(ctx context.Context, token string, status domain.SaleStatus, page int) ([]domain.SaleRecord, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var resp saleListResponse
	if err := c.do(ctx, http.MethodGet, "/sales", token, query, nil, &resp); err != nil {
		return nil, err
	}

	sales := make([]domain.SaleRecord, len(resp.Data))
	for i, s := range resp.Data {
		sales[i] = s.toDomain()
	}
	return sales, nil
}

// UpdateSaleStatus asks the core API to move a sale to a new status.
func (c *Client) UpdateSaleStatus(ctx context.Context, token, saleID string, status domain.SaleStatus) error {
	path := fmt.Sprintf("/sales/%s/status", url.PathEscape(saleID))
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPatch, path, token, nil, body, nil)
}
