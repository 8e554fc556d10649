package routes

import (
	"net/http"
	"time"

	"voltpath/handlers"
	"voltpath/middleware"
	"voltpath/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterOnboardingRoutes registers the signup wizard endpoints.
func RegisterOnboardingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/onboarding")
	{
		api.POST("/start", hb.StartOnboardingHandler)

		// Everything after /start requires the session token.
		api.Use(middleware.OnboardingSessionMiddleware())
		api.GET("/session", hb.GetOnboardingSessionHandler)
		api.POST("/account", hb.SubmitAccountHandler)
		api.POST("/profile", hb.SubmitProfileHandler)
		api.POST("/back", hb.BackHandler)
		api.POST("/submit", hb.SubmitHandler)
	}
}

// RegisterCheckoutRoutes registers the checkout hand-off endpoint.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/checkout")
	{
		api.Use(middleware.OnboardingSessionMiddleware())
		api.POST("/session", hb.CreateCheckoutSessionHandler)
	}
}

// RegisterProfileRoutes registers profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profiles")
	{
		api.GET("/:id", hb.GetProfileByIDHandler)
	}
}

// RegisterHealthRoute exposes the stored health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterOnboardingRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterHealthRoute(r)
}
