package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/domain"
	"github.com/storekeep/adminapi/internal/session"
)

const (
	contextKeySessionID  = "session_id"
	contextKeyCredential = "credential"
)

// SessionAuth resolves the session cookie to a stored upstream credential
// and aborts unauthenticated requests. The credential itself never leaves
// the gateway; handlers read it from the context to sign outbound calls.
func SessionAuth(store session.Store, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		cred, ok, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			c.Abort()
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			c.Abort()
			return
		}

		c.Set(contextKeySessionID, sessionID)
		c.Set(contextKeyCredential, cred)
		c.Next()
	}
}

// GetSessionID extracts the session ID from the Gin context.
func GetSessionID(c *gin.Context) (string, bool) {
	val, exists := c.Get(contextKeySessionID)
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}

// GetCredential extracts the upstream credential from the Gin context.
func GetCredential(c *gin.Context) (domain.Credential, bool) {
	val, exists := c.Get(contextKeyCredential)
	if !exists {
		return domain.Credential{}, false
	}
	cred, ok := val.(domain.Credential)
	return cred, ok
}
