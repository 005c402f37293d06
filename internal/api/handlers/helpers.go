package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/upstream"
)

// respondUpstreamError translates a collaborator failure into a user-facing
// response. Structured rejections keep the backend's status and message;
// everything else becomes a generic 502 so no transport detail leaks out.
func respondUpstreamError(c *gin.Context, logger *zap.Logger, err error) {
	failure, ok := upstream.AsFailure(err)
	if !ok {
		logger.Error("Unexpected upstream error", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.FallbackMessage})
		return
	}

	if failure.Kind == upstream.KindRejection && failure.StatusCode >= 400 && failure.StatusCode < 500 {
		c.JSON(failure.StatusCode, gin.H{"error": failure.UserMessage()})
		return
	}

	logger.Warn("Upstream call failed", zap.Error(failure))
	c.JSON(http.StatusBadGateway, gin.H{"error": failure.UserMessage()})
}
