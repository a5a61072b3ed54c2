package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	portssvc "github.com/SscSPs/fee_management_app/internal/core/ports/services"
	"github.com/SscSPs/fee_management_app/internal/dto"
	"github.com/SscSPs/fee_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// loginRate limits password guessing per client IP.
const loginRate = "5-M"

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvc) *AuthHandler {
	return &AuthHandler{authService: as}
}

// ErrorResponse is the generic error body of the back-office API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc) {
	h := NewAuthHandler(authService)

	rate, _ := limiter.NewRateFromFormatted(loginRate)
	limit := middleware.RateLimit(middleware.NewMemoryLimiter(rate), nil)

	auth := r.Group("/auth")
	{
		auth.POST("/login", limit, h.Login)
	}
}

// Login godoc
// @Summary Operator login
// @Description Authenticates the back-office operator and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind login request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	token, expiresAt, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
