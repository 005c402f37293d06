package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/api/middleware"
	"github.com/storekeep/adminapi/internal/domain"
)

// CatalogService serves the purchasable product list.
type CatalogService interface {
	Products(ctx context.Context, token, search string) ([]domain.Product, error)
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(catalog CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		products, err := catalog.Products(c.Request.Context(), cred.Token, c.Query("search"))
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}
