package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/fee_management_app/internal/core/ports/services"
	"github.com/SscSPs/fee_management_app/internal/core/services"
	"github.com/SscSPs/fee_management_app/internal/dto"
	"github.com/SscSPs/fee_management_app/internal/handlers"
	"github.com/SscSPs/fee_management_app/internal/middleware"
	"github.com/SscSPs/fee_management_app/internal/platform/config"
	"github.com/SscSPs/fee_management_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
)

// --- Mock ChallanService ---
type MockChallanService struct {
	mock.Mock
}

func (m *MockChallanService) InquireBill(ctx context.Context, consumerNumber string) (*domain.BillInquiry, error) {
	args := m.Called(ctx, consumerNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillInquiry), args.Error(1)
}

func (m *MockChallanService) PayBill(ctx context.Context, req dto.BillPaymentRequest) (*domain.Challan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challan), args.Error(1)
}

func (m *MockChallanService) GenerateBulkChallans(ctx context.Context) (*domain.GenerationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationReport), args.Error(1)
}

func (m *MockChallanService) SearchChallans(ctx context.Context, query string) ([]domain.ChallanListItem, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChallanListItem), args.Error(1)
}

func (m *MockChallanService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

var _ portssvc.ChallanSvcFacade = (*MockChallanService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

// --- Test Suite Setup ---

type HandlersTestSuite struct {
	suite.Suite
	router      *gin.Engine
	cfg         *config.Config
	challanSvc  *MockChallanService
	authSvc     *MockAuthService
	bearerToken string
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	rate, err := limiter.NewRateFromFormatted("1000-M")
	suite.Require().NoError(err)

	suite.cfg = &config.Config{
		JWTSecret:          "handler-test-secret",
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "fee-backend",
		OneLinkUsername:    "onelink",
		OneLinkPassword:    "p4ss",
		OneLinkRateLimit:   rate,
		CORSAllowedOrigins: []string{"https://backoffice.example.com"},
	}
	suite.challanSvc = new(MockChallanService)
	suite.authSvc = new(MockAuthService)
	suite.router = suite.newRouter(suite.cfg)

	token, _, err := utils.GenerateJWT("admin", suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer, time.Now())
	suite.Require().NoError(err)
	suite.bearerToken = "Bearer " + token
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.challanSvc.AssertExpectations(suite.T())
	suite.authSvc.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) newRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slogDiscard()))
	handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{Challan: suite.challanSvc, Auth: suite.authSvc})
	return r
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) oneLinkRequest(path string, body any) *httptest.ResponseRecorder {
	return suite.oneLinkRequestTo(suite.router, path, body)
}

func (suite *HandlersTestSuite) oneLinkRequestTo(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("username", "onelink")
	req.Header.Set("password", "p4ss")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) adminRequest(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", suite.bearerToken)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decodeMap(suite *HandlersTestSuite, w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func sampleInquiry() *domain.BillInquiry {
	return &domain.BillInquiry{
		Consumer:    domain.Consumer{ConsumerID: 7, ConsumerNumber: "100000000007"},
		DisplayName: "Ayesha Khan",
		Challan: domain.Challan{
			ChallanNo:           "00000000000000000042",
			Status:              domain.ChallanUnpaid,
			DueDate:             time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
			AmountWithinDueDate: decimal.RequireFromString("1500.00"),
			AmountAfterDueDate:  decimal.RequireFromString("1500.00"),
			Reserved:            "Bulk Challan | March 2025",
		},
	}
}

// --- 1Link ---

func (suite *HandlersTestSuite) TestOneLink_RejectsBadCredentials() {
	for _, creds := range [][2]string{{"", ""}, {"onelink", "wrong"}, {"other", "p4ss"}} {
		req := httptest.NewRequest(http.MethodPost, "/api/bill-inquiry", bytes.NewBufferString(`{"consumer_number":"1"}`))
		req.Header.Set("username", creds[0])
		req.Header.Set("password", creds[1])
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		suite.Equal(http.StatusUnauthorized, w.Code)
		suite.JSONEq(`{"response_Code":"401","message":"Invalid authentication credentials"}`, w.Body.String())
	}
}

func (suite *HandlersTestSuite) TestBillInquiry_Success() {
	suite.challanSvc.On("InquireBill", mock.Anything, "100000000007").Return(sampleInquiry(), nil).Once()

	w := suite.oneLinkRequest("/api/bill-inquiry", map[string]string{"consumer_number": "100000000007"})

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{
		"response_Code": "00",
		"consumer_Detail": "Ayesha Khan",
		"bill_status": "U",
		"due_date": "20250320",
		"amount_within_dueDate": "+0000000150000",
		"amount_after_dueDate": "+0000000150000",
		"billing_month": "250301",
		"date_paid": "        ",
		"amount_paid": "000000000000",
		"tran_auth_Id": "",
		"reserved": "Bulk Challan | March 2025"
	}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestBillInquiry_ValidationFailed() {
	w := suite.oneLinkRequest("/api/bill-inquiry", map[string]string{})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	body := decodeMap(suite, w)
	suite.Equal("Validation failed", body["message"])
	suite.Equal("The consumer number field is required.", body["errors"].(map[string]any)["consumer_number"])
}

func (suite *HandlersTestSuite) TestBillInquiry_ErrorMapping() {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"consumer not found", domain.ErrConsumerNotFound, http.StatusNotFound, "Consumer not found or is inactive"},
		{"already paid", domain.ErrAlreadyPaidForMonth, http.StatusOK, "Challan is already paid for the month"},
		{"no unpaid challan", domain.ErrNoUnpaidChallan, http.StatusNotFound, "No unpaid challan found for this consumer"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "An unexpected error occurred"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.challanSvc.On("InquireBill", mock.Anything, "100000000007").Return(nil, tt.err).Once()

			w := suite.oneLinkRequest("/api/bill-inquiry", map[string]string{"consumer_number": "100000000007"})

			suite.Equal(tt.status, w.Code)
			suite.Equal(tt.message, decodeMap(suite, w)["message"])
		})
	}
}

func validPayment() map[string]any {
	return map[string]any{
		"consumer_number":    "100000000007",
		"tran_auth_id":       "123456",
		"transaction_amount": "1500.00",
		"tran_date":          "20250310",
		"tran_time":          "143000",
		"bank_mnemonic":      "HBL",
		"reserved":           "collected at branch",
	}
}

func (suite *HandlersTestSuite) TestBillPayment_Success() {
	paidOn := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	suite.challanSvc.On("PayBill", mock.Anything, mock.MatchedBy(func(req dto.BillPaymentRequest) bool {
		return req.ConsumerNumber == "100000000007" &&
			req.TransactionAmount.Equal(decimal.NewFromInt(1500)) &&
			req.Reserved != nil && *req.Reserved == "collected at branch"
	})).Return(&domain.Challan{
		Status:     domain.ChallanPaid,
		TranAuthID: "123456",
		DatePaid:   &paidOn,
		Reserved:   "collected at branch",
	}, nil).Once()

	w := suite.oneLinkRequest("/api/bill-payment", validPayment())

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"response_Code":"00","consumer_Detail":"123456","reserved":"collected at branch"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestBillPayment_ValidationFailed() {
	body := validPayment()
	body["tran_date"] = "2025-03-10"
	body["tran_time"] = "256100"
	body["transaction_amount"] = "0"
	body["tran_auth_id"] = "1234567"
	delete(body, "bank_mnemonic")

	w := suite.oneLinkRequest("/api/bill-payment", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	errs := decodeMap(suite, w)["errors"].(map[string]any)
	suite.Contains(errs, "tran_date")
	suite.Contains(errs, "tran_time")
	suite.Contains(errs, "transaction_amount")
	suite.Contains(errs, "tran_auth_id")
	suite.Contains(errs, "bank_mnemonic")
	suite.challanSvc.AssertNotCalled(suite.T(), "PayBill", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestBillPayment_ServiceValidationError() {
	suite.challanSvc.On("PayBill", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.oneLinkRequest("/api/bill-payment", validPayment())

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("Validation failed", decodeMap(suite, w)["message"])
}

func (suite *HandlersTestSuite) TestOneLink_RateLimited() {
	cfg := *suite.cfg
	rate, err := limiter.NewRateFromFormatted("2-M")
	suite.Require().NoError(err)
	cfg.OneLinkRateLimit = rate
	r := suite.newRouter(&cfg)

	suite.challanSvc.On("InquireBill", mock.Anything, "100000000007").Return(sampleInquiry(), nil).Twice()
	body := map[string]string{"consumer_number": "100000000007"}

	suite.Equal(http.StatusOK, suite.oneLinkRequestTo(r, "/api/bill-inquiry", body).Code)
	suite.Equal(http.StatusOK, suite.oneLinkRequestTo(r, "/api/bill-inquiry", body).Code)
	suite.Equal(http.StatusTooManyRequests, suite.oneLinkRequestTo(r, "/api/bill-inquiry", body).Code)
}

func (suite *HandlersTestSuite) TestOneLink_RateLimitCountsRejectedCredentials() {
	cfg := *suite.cfg
	rate, err := limiter.NewRateFromFormatted("2-M")
	suite.Require().NoError(err)
	cfg.OneLinkRateLimit = rate
	r := suite.newRouter(&cfg)

	codes := map[int]int{}
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/bill-inquiry", strings.NewReader(`{"consumer_number":"100000000007"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("username", "onelink")
		req.Header.Set("password", "guess")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes[w.Code]++
	}

	suite.Equal(2, codes[http.StatusUnauthorized])
	suite.Equal(8, codes[http.StatusTooManyRequests])
	suite.challanSvc.AssertNotCalled(suite.T(), "InquireBill", mock.Anything, mock.Anything)
}

// --- Admin ---

func (suite *HandlersTestSuite) TestAdmin_RequiresToken() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/challans/generate", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.challanSvc.AssertNotCalled(suite.T(), "GenerateBulkChallans", mock.Anything)
}

func (suite *HandlersTestSuite) TestGenerateChallans_Success() {
	report := domain.NewGenerationReport("March 2025")
	report.Generated = 2
	report.RecordSkip(domain.SkipNoProfile, "Consumer #3 (100000000003): No active profile found")
	report.Message = "2 challans generated, 1 skipped for March 2025."
	suite.challanSvc.On("GenerateBulkChallans", mock.Anything).Return(report, nil).Once()

	w := suite.adminRequest(http.MethodPost, "/api/v1/admin/challans/generate")

	suite.Equal(http.StatusOK, w.Code)
	body := decodeMap(suite, w)
	suite.Equal(true, body["success"])
	suite.Equal(float64(2), body["generated"])
	suite.Equal(float64(1), body["skipped"])
	suite.Equal(report.Message, body["message"])
	suite.Equal(float64(1), body["skip_reasons"].(map[string]any)["no_profile"])
}

func (suite *HandlersTestSuite) TestGenerateChallans_Failure() {
	suite.challanSvc.On("GenerateBulkChallans", mock.Anything).
		Return(nil, &services.GenerationError{Cause: errors.New("could not generate a unique challan number")}).Once()

	w := suite.adminRequest(http.MethodPost, "/api/v1/admin/challans/generate")

	suite.Equal(http.StatusInternalServerError, w.Code)
	body := decodeMap(suite, w)
	suite.Equal(false, body["success"])
	suite.Equal("Bulk challan generation failed: could not generate a unique challan number", body["message"])
}

func (suite *HandlersTestSuite) TestDashboard() {
	suite.challanSvc.On("GetDashboardStats", mock.Anything).Return(&domain.DashboardStats{
		TotalConsumers:  42,
		TotalChallans:   10,
		PaidChallans:    4,
		TotalCollection: decimal.NewFromInt(6000),
	}, nil).Once()

	w := suite.adminRequest(http.MethodGet, "/api/v1/admin/dashboard")

	suite.Equal(http.StatusOK, w.Code)
	body := decodeMap(suite, w)
	suite.Equal(float64(42), body["totalConsumers"])
	suite.Equal("6000", body["totalCollection"])
}

func (suite *HandlersTestSuite) TestSearchChallans() {
	items := []domain.ChallanListItem{{
		Challan:        sampleInquiry().Challan,
		ConsumerNumber: "100000000007",
	}}
	suite.challanSvc.On("SearchChallans", mock.Anything, "0042").Return(items, nil).Once()

	w := suite.adminRequest(http.MethodGet, "/api/v1/admin/challans?query=0042")

	suite.Equal(http.StatusOK, w.Code)
	var got []dto.ChallanResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got, 1)
	suite.Equal("00000000000000000042", got[0].ChallanNo)
	suite.Equal("2025-03-20", got[0].DueDate)
	suite.Nil(got[0].DatePaid)
}

// --- Auth ---

func (suite *HandlersTestSuite) TestLogin() {
	expires := time.Date(2025, time.March, 5, 11, 0, 0, 0, time.UTC)
	suite.authSvc.On("Login", mock.Anything, "admin", "secret").Return("tok", expires, nil).Once()
	suite.authSvc.On("Login", mock.Anything, "admin", "nope").Return("", time.Time{}, apperrors.ErrUnauthorized).Once()

	ok := suite.postJSON("/auth/login", `{"username":"admin","password":"secret"}`)
	suite.Equal(http.StatusOK, ok.Code)
	suite.Equal("tok", decodeMap(suite, ok)["token"])

	denied := suite.postJSON("/auth/login", `{"username":"admin","password":"nope"}`)
	suite.Equal(http.StatusUnauthorized, denied.Code)

	malformed := suite.postJSON("/auth/login", `{"username":`)
	suite.Equal(http.StatusBadRequest, malformed.Code)
}

func (suite *HandlersTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/admin/dashboard", nil)
	req.Header.Set("Origin", "https://backoffice.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Equal("https://backoffice.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *HandlersTestSuite) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}
