package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/api/middleware"
	"github.com/storekeep/adminapi/internal/domain"
)

// SalesAPI is the slice of the core API used by the sales pages.
type SalesAPI interface {
	ListSales(ctx context.Context, token string, status domain.SaleStatus, page int) ([]domain.SaleRecord, error)
	UpdateSaleStatus(ctx context.Context, token, saleID string, status domain.SaleStatus) error
}

// UpdateSaleStatusRequest represents a status change. CurrentStatus is the
// status the row showed when the user acted; when given, obviously invalid
// transitions are refused without a round trip. The core API re-checks
// authoritatively either way.
type UpdateSaleStatusRequest struct {
	Status        domain.SaleStatus `json:"status" binding:"required"`
	CurrentStatus domain.SaleStatus `json:"current_status"`
}

// HandleListSales handles GET /v1/sales
func HandleListSales(sales SalesAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		status := domain.SaleStatus(c.Query("status"))
		if status != "" && !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale status"})
			return
		}

		page := 0
		if raw := c.Query("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
				return
			}
			page = parsed
		}

		records, err := sales.ListSales(c.Request.Context(), cred.Token, status, page)
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": records})
	}
}

// HandleUpdateSaleStatus handles PATCH /v1/sales/:id/status
func HandleUpdateSaleStatus(sales SalesAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		saleID := c.Param("id")
		if saleID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale ID"})
			return
		}

		var req UpdateSaleStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale status"})
			return
		}
		if req.CurrentStatus != "" && !req.CurrentStatus.CanTransitionTo(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status transition"})
			return
		}

		if err := sales.UpdateSaleStatus(c.Request.Context(), cred.Token, saleID, req.Status); err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": saleID, "status": req.Status})
	}
}
