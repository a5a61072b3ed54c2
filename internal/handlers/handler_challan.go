package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/fee_management_app/internal/core/ports/services"
	"github.com/SscSPs/fee_management_app/internal/core/services"
	"github.com/SscSPs/fee_management_app/internal/dto"
	"github.com/SscSPs/fee_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// challanHandler handles back-office challan requests.
type challanHandler struct {
	challanService portssvc.ChallanSvcFacade
}

// newChallanHandler creates a new challanHandler.
func newChallanHandler(cs portssvc.ChallanSvcFacade) *challanHandler {
	return &challanHandler{challanService: cs}
}

// registerChallanRoutes registers the admin challan routes.
func registerChallanRoutes(rg *gin.RouterGroup, challanService portssvc.ChallanSvcFacade) {
	h := newChallanHandler(challanService)

	admin := rg.Group("/admin")
	{
		admin.GET("/dashboard", h.getDashboard)
		admin.GET("/challans", h.searchChallans)
		admin.POST("/challans/generate", h.generateChallans)
	}
}

// generateChallans godoc
// @Summary Generate monthly challans
// @Description Creates one challan per eligible active consumer for the current month. All or nothing.
// @Tags challans
// @Produce json
// @Success 200 {object} dto.GenerateChallansResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} dto.GenerateChallansResponse
// @Security BearerAuth
// @Router /admin/challans/generate [post]
func (h *challanHandler) generateChallans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operator, _ := middleware.GetOperatorFromContext(c)
	logger.Info("Received request to generate challans", slog.String("operator", operator))

	report, err := h.challanService.GenerateBulkChallans(c.Request.Context())
	if err != nil {
		cause := err
		var genErr *services.GenerationError
		if errors.As(err, &genErr) {
			cause = genErr.Cause
		}
		c.JSON(http.StatusInternalServerError, dto.GenerateChallansResponse{
			Success: false,
			Message: "Bulk challan generation failed: " + cause.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ToGenerateChallansResponse(report))
}

// getDashboard godoc
// @Summary Dashboard totals
// @Description Consumer and challan counts with the total collected.
// @Tags challans
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load dashboard"
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *challanHandler) getDashboard(c *gin.Context) {
	stats, err := h.challanService.GetDashboardStats(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to load dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// searchChallans godoc
// @Summary Search challans
// @Description Matches challan numbers and consumer numbers, newest first.
// @Tags challans
// @Produce json
// @Param query query string false "Challan or consumer number fragment"
// @Success 200 {array} dto.ChallanResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to search challans"
// @Security BearerAuth
// @Router /admin/challans [get]
func (h *challanHandler) searchChallans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.SearchChallansQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Invalid challan search", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	items, err := h.challanService.SearchChallans(c.Request.Context(), strings.TrimSpace(q.Query))
	if err != nil {
		logger.Error("Failed to search challans", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search challans"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListChallanResponse(items))
}
