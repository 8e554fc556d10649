package handlers

import (
	"errors"
	"net/http"

	"voltpath/models"
	"voltpath/services/onboarding"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OnboardingHandler exposes the signup wizard over HTTP.
type OnboardingHandler struct {
	Service onboarding.OnboardingService
}

// NewOnboardingHandler creates an OnboardingHandler.
func NewOnboardingHandler(svc onboarding.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{Service: svc}
}

// sessionResponse is the wire view of a session. Credentials never leave the
// server.
type sessionResponse struct {
	ID        string                 `json:"id"`
	Step      models.OnboardingStep  `json:"step"`
	Email     string                 `json:"email,omitempty"`
	FullName  string                 `json:"fullName,omitempty"`
	Role      models.Role            `json:"role,omitempty"`
	Consent   *models.ConsentDetails `json:"consent,omitempty"`
	OfferCode string                 `json:"offerCode,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func toSessionResponse(s *models.OnboardingSession) sessionResponse {
	resp := sessionResponse{
		ID:        s.ID,
		Step:      s.Step,
		Role:      s.Role,
		Consent:   s.Consent,
		OfferCode: s.OfferCode,
		Error:     s.Error,
	}
	if s.Account != nil {
		resp.Email = s.Account.Email
		resp.FullName = s.Account.FullName
	}
	return resp
}

// respondFlowError maps service flow errors to HTTP statuses.
func respondFlowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, onboarding.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Onboarding session not found or expired. Please start again."})
	case errors.Is(err, onboarding.ErrInvalidStep):
		c.JSON(http.StatusConflict, gin.H{"error": "That action is not available at this step."})
	case errors.Is(err, onboarding.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A submission is already in progress. Please wait."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}

// respondStep returns the session as 200 on a clean transition and 400 when
// the step recorded a validation error.
func respondStep(c *gin.Context, session *models.OnboardingSession) {
	if session.Error != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": session.Error, "session": toSessionResponse(session)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": toSessionResponse(session)})
}

// StartHandler handles POST /api/onboarding/start. An optional "offer" query
// parameter is captured once and staged for checkout.
func (h *OnboardingHandler) StartHandler(c *gin.Context) {
	logger := getLogger(c)

	offerCode := c.Query("offer")
	session, token, err := h.Service.Start(offerCode)
	if err != nil {
		logger.Error("Failed to start onboarding session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start onboarding. Please try again."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session": toSessionResponse(session),
		"token":   token,
	})
}

// GetSessionHandler handles GET /api/onboarding/session.
func (h *OnboardingHandler) GetSessionHandler(c *gin.Context) {
	sessionID := c.GetString("sessionID")

	session, err := h.Service.GetSession(sessionID)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": toSessionResponse(session)})
}

// SubmitAccountHandler handles POST /api/onboarding/account.
func (h *OnboardingHandler) SubmitAccountHandler(c *gin.Context) {
	logger := getLogger(c)
	sessionID := c.GetString("sessionID")

	var req models.AccountDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid account step request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := h.Service.SubmitAccount(sessionID, req)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	respondStep(c, session)
}

// SubmitProfileHandler handles POST /api/onboarding/profile.
func (h *OnboardingHandler) SubmitProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	sessionID := c.GetString("sessionID")

	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid profile step request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := h.Service.SubmitProfile(sessionID, req.Role)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	respondStep(c, session)
}

// BackHandler handles POST /api/onboarding/back.
func (h *OnboardingHandler) BackHandler(c *gin.Context) {
	sessionID := c.GetString("sessionID")

	session, err := h.Service.Back(sessionID)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": toSessionResponse(session)})
}

// SubmitHandler handles POST /api/onboarding/submit, the terminal action of
// the flow. On success the client navigates to the returned checkout route.
func (h *OnboardingHandler) SubmitHandler(c *gin.Context) {
	logger := getLogger(c)
	sessionID := c.GetString("sessionID")

	var req models.ConsentDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid consent step request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, result, err := h.Service.Submit(c.Request.Context(), sessionID, req)
	if err != nil {
		logger.Error("Onboarding submission failed", zap.String("sessionID", sessionID), zap.Error(err))
		respondFlowError(c, err)
		return
	}
	if result == nil {
		respondStep(c, session)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":        result.UserID,
		"planId":        result.Selection.PlanID,
		"priceId":       result.Selection.PriceID,
		"checkoutRoute": result.CheckoutRoute,
	})
}
