package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/storekeep/adminapi/internal/domain"
)

type productDTO struct {
	ID    string  `json:"_id"`
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type productListResponse struct {
	Data []productDTO `json:"data"`
}

// ListProducts fetches the purchasable catalog, optionally filtered by a
// search term. Prices in the result are default-fill values for the sale
// form, not authoritative.
func (c *Client) ListProducts(ctx context.Context, token, search string) ([]domain.Product, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}

	var resp productListResponse
	if err := c.do(ctx, http.MethodGet, "/products", token, query, nil, &resp); err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(resp.Data))
	for i, p := range resp.Data {
		products[i] = domain.Product{
			ID:    p.ID,
			SKU:   p.SKU,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
		}
	}
	return products, nil
}
