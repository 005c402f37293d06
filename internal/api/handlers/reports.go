package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/api/middleware"
	"github.com/storekeep/adminapi/internal/domain"
	"github.com/storekeep/adminapi/internal/reports"
)

// ReportsAPI is the slice of the core API used by the dashboard reports.
type ReportsAPI interface {
	SalesSummary(ctx context.Context, token, from, to string) ([]domain.SummaryRow, error)
}

// HandleSummary handles GET /v1/reports/summary
func HandleSummary(api ReportsAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		rows, err := api.SalesSummary(c.Request.Context(), cred.Token, c.Query("from"), c.Query("to"))
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"kpi":  reports.Summarize(rows),
			"rows": rows,
		})
	}
}

// HandleChart handles GET /v1/reports/chart
func HandleChart(api ReportsAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		rows, err := api.SalesSummary(c.Request.Context(), cred.Token, c.Query("from"), c.Query("to"))
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"series": reports.Reshape(rows)})
	}
}
