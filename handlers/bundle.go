package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle gathers every endpoint handler for route registration.
type HandlerBundle struct {
	// Onboarding endpoints.
	StartOnboardingHandler      gin.HandlerFunc
	GetOnboardingSessionHandler gin.HandlerFunc
	SubmitAccountHandler        gin.HandlerFunc
	SubmitProfileHandler        gin.HandlerFunc
	BackHandler                 gin.HandlerFunc
	SubmitHandler               gin.HandlerFunc

	// Checkout endpoints.
	CreateCheckoutSessionHandler gin.HandlerFunc

	// Profile endpoints.
	GetProfileByIDHandler gin.HandlerFunc
}
