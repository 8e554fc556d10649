package handlers

import (
	"errors"
	"net/http"

	"voltpath/services/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler exposes the downstream checkout hand-off.
type CheckoutHandler struct {
	Service checkout.Service
}

// NewCheckoutHandler creates a CheckoutHandler.
func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{Service: svc}
}

// CreateSessionHandler handles POST /api/checkout/session. It consumes the
// plan/price staged by a completed onboarding flow and returns the hosted
// checkout URL.
func (h *CheckoutHandler) CreateSessionHandler(c *gin.Context) {
	logger := getLogger(c)
	sessionID := c.GetString("sessionID")

	url, err := h.Service.CreateSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, checkout.ErrNoStagedSelection) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No checkout selection found. Please complete signup first."})
			return
		}
		logger.Error("Failed to create checkout session", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start checkout. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
