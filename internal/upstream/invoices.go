package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/storekeep/adminapi/internal/domain"
)

type invoiceDTO struct {
	ID            string     `json:"_id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	SaleID        string     `json:"saleId"`
	CustomerName  string     `json:"customerName"`
	TotalAmount   float64    `json:"totalAmount"`
	Status        string     `json:"status"`
	IssuedAt      time.Time  `json:"issuedAt"`
	DueAt         *time.Time `json:"dueAt"`
}

func (i invoiceDTO) toDomain() domain.Invoice {
	return domain.Invoice{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		SaleID:        i.SaleID,
		CustomerName:  i.CustomerName,
		TotalAmount:   i.TotalAmount,
		Status:        domain.InvoiceStatus(i.Status),
		IssuedAt:      i.IssuedAt,
		DueAt:         i.DueAt,
	}
}

type invoiceListResponse struct {
	Data []invoiceDTO `json:"data"`
}

// ListInvoices fetches generated invoices, optionally filtered by status.
func (c *Client) ListInvoices(ctx context.Context, token string, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	var resp invoiceListResponse
	if err := c.do(ctx, http.MethodGet, "/invoices", token, query, nil, &resp); err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, len(resp.Data))
	for i, inv := range resp.Data {
		invoices[i] = inv.toDomain()
	}
	return invoices, nil
}

// UpdateInvoiceStatus asks the core API to move an invoice to a new status.
func (c *Client) UpdateInvoiceStatus(ctx context.Context, token, invoiceID string, status domain.InvoiceStatus) error {
	path := fmt.Sprintf("/invoices/%s/status", url.PathEscape(invoiceID))
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPatch, path, token, nil, body, nil)
}

// DownloadInvoicePDF streams the invoice PDF rendered by the core API. The
// gateway never generates documents itself; the caller must close the reader.
func (c *Client) DownloadInvoicePDF(ctx context.Context, token, invoiceID string) (io.ReadCloser, string, error) {
	path := fmt.Sprintf("/invoices/%s/pdf", url.PathEscape(invoiceID))
	body, contentType, err := c.stream(ctx, path, token)
	if err != nil {
		return nil, "", err
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return body, contentType, nil
}
