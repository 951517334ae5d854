package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"freightbook/config"
	"freightbook/handlers"
	"freightbook/middleware"
	"freightbook/utils"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateRequest)
		api.GET("", hb.History)
		api.GET("/:id", hb.GetStatus)
		api.GET("/:id/audit", hb.AuditTrail)
		api.POST("/:id/search", hb.SearchCandidates)
		api.POST("/:id/select", hb.SelectCandidate)
		api.POST("/:id/details", hb.SubmitDetails)
		api.POST("/:id/documents", hb.UploadDocument)
		api.POST("/:id/transit", hb.StartTransit)
		api.POST("/:id/deliver", hb.CompleteDelivery)
		api.DELETE("/:id", hb.CancelRequest)
	}
}

// RegisterToolRoutes exposes the tool invocation surface.
func RegisterToolRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	tools := r.Group("/tools")
	{
		tools.Use(middleware.JWTAuthMiddleware())
		tools.POST("/:name", hb.ToolInvoke)
	}
}

// RegisterDevRoutes registers endpoints that only exist outside production.
// The token mint lets local clients obtain a bearer token without a separate
// identity provider.
func RegisterDevRoutes(r *gin.Engine) {
	if config.IsProduction() {
		return
	}
	r.POST("/auth/dev-token", func(c *gin.Context) {
		var input struct {
			UserID string `json:"userId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}
		token, err := utils.GenerateToken(input.UserID, 24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	})
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Freightbook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterDevRoutes(r)
	RegisterBookingRoutes(r, hb)
	RegisterToolRoutes(r, hb)
}
