package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/api/middleware"
	"github.com/storekeep/adminapi/internal/sale"
)

// UpdateCustomerRequest carries the sale form's customer fields. Values are
// raw form strings on purpose: a half-filled form must be storable without
// tripping validation, which only runs on submit.
type UpdateCustomerRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	TaxPercentage string `json:"taxPercentage"`
}

// UpdateItemRequest replaces one field of one line item.
type UpdateItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// draftView is the draft as the form renders it, with the preview totals
// recomputed from the current state on every response.
func draftView(draft *sale.Draft, state sale.State) gin.H {
	return gin.H{
		"draft":        draft,
		"state":        state,
		"totals":       sale.ComputeTotals(draft),
		"totalsSource": "preview", // authoritative totals are computed at save time
	}
}

// HandleOpenDraft handles POST /v1/drafts
func HandleOpenDraft(drafts *sale.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		draft := drafts.Open(sessionID)
		c.JSON(http.StatusCreated, draftView(draft, sale.StateEditing))
	}
}

// HandleGetDraft handles GET /v1/drafts/current
func HandleGetDraft(drafts *sale.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		draft, state, err := drafts.Current(sessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active draft"})
			return
		}
		c.JSON(http.StatusOK, draftView(draft, state))
	}
}

// HandleUpdateCustomer handles PUT /v1/drafts/current/customer
func HandleUpdateCustomer(drafts *sale.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req UpdateCustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		draft, err := drafts.UpdateCustomer(sessionID,
			req.CustomerName, req.CustomerEmail, req.CustomerPhone, req.TaxPercentage)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active draft"})
			return
		}
		c.JSON(http.StatusOK, draftView(draft, sale.StateEditing))
	}
}

// HandleAddItem handles POST /v1/drafts/current/items
func HandleAddItem(drafts *sale.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		draft, err := drafts.AddItem(sessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active draft"})
			return
		}
		c.JSON(http.StatusOK, draftView(draft, sale.StateEditing))
	}
}

// HandleRemoveItem handles DELETE /v1/drafts/current/items/:index. Removing
// the last remaining row is silently refused; the response simply shows the
// unchanged draft, matching the form hiding its remove affordance.
func HandleRemoveItem(drafts *sale.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
			return
		}

		draft, err := drafts.RemoveItem(sessionID, index)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active draft"})
			return
		}
		c.JSON(http.StatusOK, draftView(draft, sale.StateEditing))
	}
}

// HandleUpdateItem handles PATCH /v1/drafts/current/items/:index
func HandleUpdateItem(drafts *sale.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
			return
		}

		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		draft, err := drafts.UpdateItem(sessionID, index, req.Field, req.Value)
		if err != nil {
			if errors.Is(err, sale.ErrNoDraft) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no active draft"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, draftView(draft, sale.StateEditing))
	}
}

// HandleTotals handles GET /v1/drafts/current/totals
func HandleTotals(drafts *sale.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		totals, err := drafts.Totals(sessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active draft"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"totals": totals, "totalsSource": "preview"})
	}
}

// HandleSubmit handles POST /v1/drafts/current/submit
func HandleSubmit(drafts *sale.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		cred, ok := middleware.GetCredential(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		outcome, err := drafts.Submit(c.Request.Context(), sessionID, cred.Token)
		if err != nil {
			switch {
			case errors.Is(err, sale.ErrSubmitInFlight):
				c.JSON(http.StatusConflict, gin.H{"error": "a submission is already in flight"})
			case errors.Is(err, sale.ErrNoDraft):
				c.JSON(http.StatusNotFound, gin.H{"error": "no active draft"})
			default:
				logger.Error("Failed to submit sale", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		switch {
		case outcome.Validation != nil:
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"fields": outcome.Validation,
			})
		case outcome.Failure != nil:
			respondUpstreamError(c, logger, outcome.Failure)
		default:
			draft, state, _ := drafts.Current(sessionID)
			c.JSON(http.StatusCreated, gin.H{
				"message": "Sale recorded",
				"draft":   draft,
				"state":   state,
			})
		}
	}
}
