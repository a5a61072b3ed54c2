package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/fee_management_app/internal/core/ports/services"
	"github.com/SscSPs/fee_management_app/internal/middleware"
	"github.com/SscSPs/fee_management_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterValidators()

	// CORS runs on the engine so preflight requests are answered before routing
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.Auth)

	// Bank-facing endpoints, authenticated by 1Link headers
	setupOneLinkRoutes(r, cfg, services)

	// Back-office API with JWT auth
	setupAPIV1Routes(r, cfg, services)
}

// setupOneLinkRoutes mounts /api/bill-inquiry and /api/bill-payment behind a
// per-IP rate limit and header auth. The limiter runs first so rejected
// credentials count against the caller.
func setupOneLinkRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	limit := middleware.RateLimit(middleware.NewMemoryLimiter(cfg.OneLinkRateLimit), func(c *gin.Context) {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
	})
	api := r.Group("/api", limit, middleware.OneLinkAuth(cfg.OneLinkUsername, cfg.OneLinkPassword))
	registerOneLinkRoutes(api, services.Challan)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	registerChallanRoutes(v1, service.Challan)
}
