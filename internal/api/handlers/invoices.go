package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/api/middleware"
	"github.com/storekeep/adminapi/internal/domain"
)

// InvoicesAPI is the slice of the core API used by the invoice pages.
type InvoicesAPI interface {
	ListInvoices(ctx context.Context, token string, status domain.InvoiceStatus) ([]domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, token, invoiceID string, status domain.InvoiceStatus) error
	DownloadInvoicePDF(ctx context.Context, token, invoiceID string) (io.ReadCloser, string, error)
}

// UpdateInvoiceStatusRequest mirrors UpdateSaleStatusRequest for invoices.
type UpdateInvoiceStatusRequest struct {
	Status        domain.InvoiceStatus `json:"status" binding:"required"`
	CurrentStatus domain.InvoiceStatus `json:"current_status"`
}

// HandleListInvoices handles GET /v1/invoices
func HandleListInvoices(invoices InvoicesAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		status := domain.InvoiceStatus(c.Query("status"))
		if status != "" && !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice status"})
			return
		}

		records, err := invoices.ListInvoices(c.Request.Context(), cred.Token, status)
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": records})
	}
}

// HandleUpdateInvoiceStatus handles PATCH /v1/invoices/:id/status
func HandleUpdateInvoiceStatus(invoices InvoicesAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		invoiceID := c.Param("id")
		if invoiceID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
			return
		}

		var req UpdateInvoiceStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice status"})
			return
		}
		if req.CurrentStatus != "" && !req.CurrentStatus.CanTransitionTo(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status transition"})
			return
		}

		if err := invoices.UpdateInvoiceStatus(c.Request.Context(), cred.Token, invoiceID, req.Status); err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": invoiceID, "status": req.Status})
	}
}

// HandleDownloadInvoicePDF handles GET /v1/invoices/:id/pdf. The PDF is
// rendered upstream and streamed through unchanged.
func HandleDownloadInvoicePDF(invoices InvoicesAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		invoiceID := c.Param("id")
		if invoiceID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
			return
		}

		body, contentType, err := invoices.DownloadInvoicePDF(c.Request.Context(), cred.Token, invoiceID)
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		defer body.Close()

		disposition := fmt.Sprintf("attachment; filename=%q", "invoice-"+invoiceID+".pdf")
		c.DataFromReader(http.StatusOK, -1, contentType, body, map[string]string{
			"Content-Disposition": disposition,
		})
	}
}
