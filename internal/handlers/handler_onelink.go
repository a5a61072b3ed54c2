package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/fee_management_app/internal/core/ports/services"
	"github.com/SscSPs/fee_management_app/internal/dto"
	"github.com/SscSPs/fee_management_app/internal/middleware"
	"github.com/SscSPs/fee_management_app/internal/utils/onelink"
	"github.com/gin-gonic/gin"
)

const (
	msgValidationFailed = "Validation failed"
	msgUnexpected       = "An unexpected error occurred"
	msgConsumerNotFound = "Consumer not found or is inactive"
	msgAlreadyPaid      = "Challan is already paid for the month"
	msgNoUnpaidChallan  = "No unpaid challan found for this consumer"
)

// oneLinkHandler serves the bank-facing bill inquiry and payment endpoints.
type oneLinkHandler struct {
	inquiry portssvc.BillInquirySvc
	payment portssvc.BillPaymentSvc
	now     func() time.Time
}

func newOneLinkHandler(inquiry portssvc.BillInquirySvc, payment portssvc.BillPaymentSvc) *oneLinkHandler {
	return &oneLinkHandler{inquiry: inquiry, payment: payment, now: time.Now}
}

// registerOneLinkRoutes mounts the 1Link endpoints on rg. Authentication and
// rate limiting are applied by the caller.
func registerOneLinkRoutes(rg *gin.RouterGroup, svc portssvc.ChallanSvcFacade) {
	h := newOneLinkHandler(svc, svc)
	rg.POST("/bill-inquiry", h.billInquiry)
	rg.POST("/bill-payment", h.billPayment)
}

// billInquiry godoc
// @Summary 1Link bill inquiry
// @Description Returns the outstanding bill of a consumer in 1Link format.
// @Tags onelink
// @Accept json
// @Produce json
// @Param username header string true "1Link username"
// @Param password header string true "1Link password"
// @Param inquiry body dto.BillInquiryRequest true "Consumer number"
// @Success 200 {object} onelink.InquiryResponse
// @Failure 401 {object} onelink.ErrorResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 500 {object} map[string]string
// @Router /bill-inquiry [post]
func (h *oneLinkHandler) billInquiry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BillInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid bill inquiry", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Message: msgValidationFailed, Errors: validationErrors(err)})
		return
	}

	inquiry, err := h.inquiry.InquireBill(c.Request.Context(), req.ConsumerNumber)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ch := inquiry.Challan
	due := ch.DueDate
	c.JSON(http.StatusOK, onelink.BuildInquiryResponse(onelink.InquiryParams{
		ConsumerDetail:      inquiry.DisplayName,
		BillStatus:          string(ch.Status),
		DueDate:             &due,
		AmountWithinDueDate: ch.AmountWithinDueDate,
		AmountAfterDueDate:  ch.AmountAfterDueDate,
		AsOf:                h.now(),
		DatePaid:            ch.DatePaid,
		TranAuthID:          ch.TranAuthID,
		Reserved:            ch.Reserved,
	}))
}

// billPayment godoc
// @Summary 1Link bill payment
// @Description Marks the consumer's outstanding challan as paid.
// @Tags onelink
// @Accept json
// @Produce json
// @Param username header string true "1Link username"
// @Param password header string true "1Link password"
// @Param payment body dto.BillPaymentRequest true "Payment details"
// @Success 200 {object} onelink.PaymentResponse
// @Failure 401 {object} onelink.ErrorResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 500 {object} map[string]string
// @Router /bill-payment [post]
func (h *oneLinkHandler) billPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BillPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid bill payment", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Message: msgValidationFailed, Errors: validationErrors(err)})
		return
	}

	challan, err := h.payment.PayBill(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, onelink.BuildPaymentResponse(challan.TranAuthID, challan.Reserved))
}

func (h *oneLinkHandler) writeError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, domain.ErrConsumerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msgConsumerNotFound})
	case errors.Is(err, domain.ErrAlreadyPaidForMonth):
		c.JSON(http.StatusOK, gin.H{"message": msgAlreadyPaid})
	case errors.Is(err, domain.ErrNoUnpaidChallan):
		c.JSON(http.StatusNotFound, gin.H{"message": msgNoUnpaidChallan})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Message: msgValidationFailed,
			Errors:  map[string]string{"request": err.Error()},
		})
	default:
		logger.Error("1Link request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgUnexpected})
	}
}
