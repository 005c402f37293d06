package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/api/middleware"
	"github.com/storekeep/adminapi/internal/config"
	"github.com/storekeep/adminapi/internal/domain"
	"github.com/storekeep/adminapi/internal/sale"
	"github.com/storekeep/adminapi/internal/session"
)

// AuthAPI is the slice of the core API used by the auth handlers.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.Credential, error)
	Register(ctx context.Context, name, email, password string) (domain.Credential, error)
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// HandleLogin handles POST /v1/auth/login
func HandleLogin(auth AuthAPI, store session.Store, cfg config.SessionConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cred, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}

		if err := openSession(c, store, cfg, cred); err != nil {
			if errors.Is(err, errExpiredCredential) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
				return
			}
			logger.Error("Failed to store session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": cred.User})
	}
}

// HandleRegister handles POST /v1/auth/register
func HandleRegister(auth AuthAPI, store session.Store, cfg config.SessionConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cred, err := auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}

		if err := openSession(c, store, cfg, cred); err != nil {
			if errors.Is(err, errExpiredCredential) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
				return
			}
			logger.Error("Failed to store session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"user": cred.User})
	}
}

// HandleLogout handles POST /v1/auth/logout
func HandleLogout(store session.Store, drafts *sale.Manager, cfg config.SessionConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := store.Clear(c.Request.Context(), sessionID); err != nil {
			logger.Error("Failed to clear session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		drafts.Close(sessionID)

		c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.CookieSecure, true)
		c.Status(http.StatusNoContent)
	}
}

// HandleMe handles GET /v1/auth/me
func HandleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": cred.User})
	}
}

// errExpiredCredential means the upstream token was already expired when it
// arrived; a session built on it could never make a successful call.
var errExpiredCredential = errors.New("upstream token is already expired")

// openSession stores the upstream credential under a fresh session ID and
// hands the ID to the browser as an HTTP-only cookie. The session lifetime
// never exceeds the token's own expiry; a token that has none falls back to
// the configured TTL, and one that already lapsed fails the login.
func openSession(c *gin.Context, store session.Store, cfg config.SessionConfig, cred domain.Credential) error {
	ttl := session.TTLFromToken(cred.Token, cfg.TTL, time.Now())
	if ttl <= 0 {
		return errExpiredCredential
	}

	sessionID := uuid.NewString()
	if err := store.Set(c.Request.Context(), sessionID, cred, ttl); err != nil {
		return err
	}

	c.SetCookie(cfg.CookieName, sessionID, int(ttl.Seconds()), "/", "", cfg.CookieSecure, true)
	return nil
}
