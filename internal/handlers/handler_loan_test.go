package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/authz"
	"github.com/microcred/loan_management_app/internal/core/domain"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/microcred/loan_management_app/internal/middleware"
	"github.com/microcred/loan_management_app/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListLoans(ctx context.Context, params dto.ListLoansParams) ([]domain.Loan, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListLoansByClientID(ctx context.Context, clientID string) ([]domain.Loan, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListLoanEvents(ctx context.Context, loanID string) ([]domain.WorkflowEvent, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkflowEvent), args.Error(1)
}
func (m *MockLoanService) AllowedActions(ctx context.Context, loanID string, role domain.Role) ([]authz.Action, error) {
	args := m.Called(ctx, loanID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]authz.Action), args.Error(1)
}
func (m *MockLoanService) CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actor domain.User) (*domain.Loan, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) UpdateLoan(ctx context.Context, loanID string, req dto.UpdateLoanRequest, actor domain.User) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) DeleteLoan(ctx context.Context, loanID string, actor domain.User) error {
	args := m.Called(ctx, loanID, actor)
	return args.Error(0)
}
func (m *MockLoanService) ApproveLoan(ctx context.Context, loanID string, note string, actor domain.User) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, note, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) RejectLoan(ctx context.Context, loanID string, note string, actor domain.User) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, note, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) DisburseLoan(ctx context.Context, loanID string, actor domain.User) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) MarkOverdueLoans(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ListPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentService) GetTrackingSnapshot(ctx context.Context, loanID string) (*domain.TrackingSnapshot, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingSnapshot), args.Error(1)
}
func (m *MockPaymentService) PreviewPenalty(ctx context.Context, loanID string, req dto.PenaltyPreviewRequest) (*dto.PenaltyPreviewResponse, error) {
	args := m.Called(ctx, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PenaltyPreviewResponse), args.Error(1)
}
func (m *MockPaymentService) RecordPayment(ctx context.Context, loanID string, req dto.RecordPaymentRequest, actor domain.User) (*domain.Payment, error) {
	args := m.Called(ctx, loanID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ReversePayment(ctx context.Context, paymentID string, note string, actor domain.User) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, note, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Test Suite ---
type LoanHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockLoanService    *MockLoanService
	mockPaymentService *MockPaymentService
	jwtSecret          string
}

// generateTestToken creates a signed access token carrying the given role.
func (suite *LoanHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "lma-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerValidations()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLoanService = new(MockLoanService)
	suite.mockPaymentService = new(MockPaymentService)

	v1 := suite.router.Group("/api/v1")
	registerLoanRoutes(v1, suite.mockLoanService, suite.mockPaymentService)
	registerPaymentRoutes(v1, suite.mockPaymentService)
}

func (suite *LoanHandlerTestSuite) doRequest(method, url string, body any, userID string, role domain.Role) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, role))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LoanHandlerTestSuite) TestGetLoan_Success() {
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:         loanID,
		ClientID:       uuid.NewString(),
		ProductID:      uuid.NewString(),
		Principal:      decimal.NewFromInt(100000),
		InterestRate:   decimal.NewFromInt(24),
		TermMonths:     12,
		WorkflowStatus: domain.WorkflowDisbursed,
		LoanStatus:     domain.LoanOverdue,
		Outstanding:    decimal.NewFromInt(80000),
	}

	suite.mockLoanService.On("GetLoanByID", mock.Anything, loanID).Return(loan, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/loans/"+loanID, nil, uuid.NewString(), domain.RoleViewer)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.LoanResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(loanID, body.LoanID)
	suite.Equal("DISBURSED", body.WorkflowStatus)
	suite.Equal("OVERDUE", body.LoanStatus)
	suite.Equal("Overdue", body.LoanStatusBadge.Label)

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestGetLoan_NotFound() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("GetLoanByID", mock.Anything, loanID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/loans/"+loanID, nil, uuid.NewString(), domain.RoleViewer)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LoanHandlerTestSuite) TestCreateLoan_PassesActorFromToken() {
	userID := uuid.NewString()
	req := dto.CreateLoanRequest{
		ClientID:  uuid.NewString(),
		ProductID: uuid.NewString(),
		Principal: decimal.NewFromInt(50000),
	}
	created := &domain.Loan{
		LoanID:         uuid.NewString(),
		ClientID:       req.ClientID,
		ProductID:      req.ProductID,
		Principal:      req.Principal,
		WorkflowStatus: domain.WorkflowPendingApproval,
		LoanStatus:     domain.LoanOpen,
		Outstanding:    req.Principal,
	}

	suite.mockLoanService.On("CreateLoan", mock.Anything, mock.AnythingOfType("dto.CreateLoanRequest"),
		mock.MatchedBy(func(actor domain.User) bool {
			return actor.UserID == userID && actor.Role == domain.RoleLoanOfficer
		}),
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/loans", req, userID, domain.RoleLoanOfficer)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestCreateLoan_RejectsNonPositivePrincipal() {
	req := dto.CreateLoanRequest{
		ClientID:  uuid.NewString(),
		ProductID: uuid.NewString(),
		Principal: decimal.Zero,
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/loans", req, uuid.NewString(), domain.RoleLoanOfficer)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoanService.AssertNotCalled(suite.T(), "CreateLoan")
}

func (suite *LoanHandlerTestSuite) TestApproveLoan_ForbiddenMapsTo403() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("ApproveLoan", mock.Anything, loanID, "", mock.AnythingOfType("domain.User")).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/loans/"+loanID+"/approve", nil, uuid.NewString(), domain.RoleCashier)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *LoanHandlerTestSuite) TestApproveLoan_WithNote() {
	loanID := uuid.NewString()
	approved := &domain.Loan{
		LoanID:         loanID,
		Principal:      decimal.NewFromInt(50000),
		WorkflowStatus: domain.WorkflowApproved,
		LoanStatus:     domain.LoanOpen,
		Outstanding:    decimal.NewFromInt(50000),
	}

	suite.mockLoanService.On("ApproveLoan", mock.Anything, loanID, "looks good", mock.AnythingOfType("domain.User")).
		Return(approved, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/loans/"+loanID+"/approve",
		dto.DecisionRequest{Note: "looks good"}, uuid.NewString(), domain.RoleManager)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.LoanResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("APPROVED", body.WorkflowStatus)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestDisburseLoan_ConflictMapsTo409() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("DisburseLoan", mock.Anything, loanID, mock.AnythingOfType("domain.User")).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/loans/"+loanID+"/disburse", nil, uuid.NewString(), domain.RoleCashier)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LoanHandlerTestSuite) TestAllowedActions_ReturnsOrderedList() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("AllowedActions", mock.Anything, loanID, domain.RoleManager).
		Return([]authz.Action{authz.ActionView, authz.ActionApprove, authz.ActionReject}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/loans/"+loanID+"/allowed-actions", nil, uuid.NewString(), domain.RoleManager)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.AllowedActionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal([]string{"view", "approve", "reject"}, body.Actions)
}

func (suite *LoanHandlerTestSuite) TestRecordPayment_Success() {
	loanID := uuid.NewString()
	payment := &domain.Payment{
		PaymentID:      uuid.NewString(),
		LoanID:         loanID,
		Amount:         decimal.NewFromInt(10000),
		PenaltyPortion: decimal.NewFromInt(600),
		Method:         "CASH",
		PaidAt:         time.Now(),
	}

	suite.mockPaymentService.On("RecordPayment", mock.Anything, loanID, mock.AnythingOfType("dto.RecordPaymentRequest"),
		mock.AnythingOfType("domain.User")).Return(payment, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/loans/"+loanID+"/payments",
		dto.RecordPaymentRequest{Amount: decimal.NewFromInt(10000), Method: "CASH"},
		uuid.NewString(), domain.RoleCashier)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.PaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.PenaltyPortion.Equal(decimal.NewFromInt(600)))
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestRecordPayment_RejectsUnknownMethod() {
	loanID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, "/api/v1/loans/"+loanID+"/payments",
		dto.RecordPaymentRequest{Amount: decimal.NewFromInt(10000), Method: "BARTER"},
		uuid.NewString(), domain.RoleCashier)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "RecordPayment")
}

func (suite *LoanHandlerTestSuite) TestMissingToken_Returns401() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/loans", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestLoanHandler(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}
