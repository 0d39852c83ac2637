package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/core/penalty"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/core/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPaymentRepository is a mock type for the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, loan domain.Loan) error {
	args := m.Called(ctx, payment, loan)
	return args.Error(0)
}

func (m *MockPaymentRepository) ReversePayment(ctx context.Context, payment domain.Payment, loan domain.Loan) error {
	args := m.Called(ctx, payment, loan)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockLoanRepo    *MockLoanRepository
	mockProductRepo *MockLoanProductRepository
	service         portssvc.PaymentSvcFacade
	now             time.Time
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockProductRepo = new(MockLoanProductRepository)
	suite.now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockLoanRepo,
		suite.mockProductRepo,
		services.WithPaymentClock(func() time.Time { return suite.now }),
	)
}

func (suite *PaymentServiceTestSuite) cashier() domain.User {
	return domain.User{UserID: uuid.NewString(), Role: domain.RoleCashier}
}

func (suite *PaymentServiceTestSuite) admin() domain.User {
	return domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

func (suite *PaymentServiceTestSuite) disbursedLoan() *domain.Loan {
	disbursedAt := suite.now.AddDate(0, -2, 0)
	nextDue := suite.now.AddDate(0, 0, 5)
	maturity := disbursedAt.AddDate(0, 12, 0)
	return &domain.Loan{
		LoanID:         uuid.NewString(),
		ClientID:       uuid.NewString(),
		ProductID:      uuid.NewString(),
		Principal:      decimal.NewFromInt(100000),
		InterestRate:   decimal.NewFromInt(24),
		TermMonths:     12,
		WorkflowStatus: domain.WorkflowDisbursed,
		LoanStatus:     domain.LoanInProgress,
		Outstanding:    decimal.NewFromInt(100000),
		DisbursedAt:    &disbursedAt,
		NextDueDate:    &nextDue,
		MaturityDate:   &maturity,
	}
}

func (suite *PaymentServiceTestSuite) product(loan *domain.Loan) *domain.LoanProduct {
	return &domain.LoanProduct{
		ProductID:    loan.ProductID,
		Name:         "Group Loan 12M",
		InterestRate: decimal.NewFromInt(24),
		TermMonths:   12,
		LatePenaltyRule: penalty.Rule{
			Type:  penalty.PercentPerDay,
			Value: decimal.NewFromFloat(0.2),
		},
		LateGraceDays: 2,
		MaturityRule: penalty.Rule{
			Type:  penalty.FixedPerDay,
			Value: decimal.NewFromInt(50),
		},
		IsActive: true,
	}
}

// --- RecordPayment ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_OnTimeHasNoPenalty() {
	ctx := context.Background()
	actor := suite.cashier()
	loan := suite.disbursedLoan()
	product := suite.product(loan)

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockProductRepo.On("FindLoanProductByID", ctx, loan.ProductID).Return(product, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), mock.MatchedBy(func(l domain.Loan) bool {
		// 100000 - 10000 = 90000 remaining, loan moves to IN_PROGRESS.
		return l.Outstanding.Equal(decimal.NewFromInt(90000)) && l.LoanStatus == domain.LoanInProgress
	})).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, loan.LoanID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(10000),
		Method: "CASH",
	}, actor)

	suite.Require().NoError(err)
	suite.True(payment.PenaltyPortion.IsZero())
	suite.True(payment.Amount.Equal(decimal.NewFromInt(10000)))
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_LateAccruesPenalty() {
	ctx := context.Background()
	actor := suite.cashier()
	loan := suite.disbursedLoan()
	product := suite.product(loan)

	// Due 5 days ago with 2 grace days leaves 3 chargeable days:
	// 100000 * 0.2% * 3 = 600.00.
	pastDue := suite.now.AddDate(0, 0, -5)
	loan.NextDueDate = &pastDue

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockProductRepo.On("FindLoanProductByID", ctx, loan.ProductID).Return(product, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.PenaltyPortion.Equal(decimal.NewFromInt(600))
	}), mock.MatchedBy(func(l domain.Loan) bool {
		// Only the principal portion reduces the balance: 100000 - (10000-600).
		return l.Outstanding.Equal(decimal.NewFromInt(90600))
	})).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, loan.LoanID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(10000),
		Method: "MOBILE_MONEY",
	}, actor)

	suite.Require().NoError(err)
	suite.True(payment.PenaltyPortion.Equal(decimal.NewFromInt(600)))
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_FinalPaymentClosesLoan() {
	ctx := context.Background()
	actor := suite.cashier()
	loan := suite.disbursedLoan()
	loan.Outstanding = decimal.NewFromInt(5000)
	product := suite.product(loan)

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockProductRepo.On("FindLoanProductByID", ctx, loan.ProductID).Return(product, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), mock.MatchedBy(func(l domain.Loan) bool {
		return l.Outstanding.IsZero() && l.LoanStatus == domain.LoanClosed && l.NextDueDate == nil
	})).Return(nil).Once()

	_, err := suite.service.RecordPayment(ctx, loan.LoanID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(5000),
		Method: "CASH",
	}, actor)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ForbiddenForViewer() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, uuid.NewString(), dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: "CASH",
	}, domain.User{UserID: uuid.NewString(), Role: domain.RoleViewer})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ConflictWhenNotDisbursed() {
	ctx := context.Background()
	loan := suite.disbursedLoan()
	loan.WorkflowStatus = domain.WorkflowApproved
	loan.LoanStatus = domain.LoanOpen

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	_, err := suite.service.RecordPayment(ctx, loan.LoanID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: "CASH",
	}, suite.cashier())

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, uuid.NewString(), dto.RecordPaymentRequest{
		Amount: decimal.Zero,
		Method: "CASH",
	}, suite.cashier())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

// --- ReversePayment ---

func (suite *PaymentServiceTestSuite) TestReversePayment_RestoresBalance() {
	ctx := context.Background()
	actor := suite.admin()
	loan := suite.disbursedLoan()
	loan.Outstanding = decimal.NewFromInt(90600)

	payment := &domain.Payment{
		PaymentID:      uuid.NewString(),
		LoanID:         loan.LoanID,
		Amount:         decimal.NewFromInt(10000),
		PenaltyPortion: decimal.NewFromInt(600),
		Method:         "CASH",
		PaidAt:         suite.now.AddDate(0, 0, -1),
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockPaymentRepo.On("ReversePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.IsReversed && p.ReversedBy == actor.UserID && p.ReversalNote == "cash count error"
	}), mock.MatchedBy(func(l domain.Loan) bool {
		// Only the principal portion (9400) is restored.
		return l.Outstanding.Equal(decimal.NewFromInt(100000))
	})).Return(nil).Once()

	reversed, err := suite.service.ReversePayment(ctx, payment.PaymentID, "cash count error", actor)

	suite.Require().NoError(err)
	suite.True(reversed.IsReversed)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestReversePayment_ConflictWhenAlreadyReversed() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID:  uuid.NewString(),
		LoanID:     uuid.NewString(),
		Amount:     decimal.NewFromInt(1000),
		IsReversed: true,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.ReversePayment(ctx, payment.PaymentID, "again", suite.admin())

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ReversePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestReversePayment_ForbiddenForCashier() {
	ctx := context.Background()

	_, err := suite.service.ReversePayment(ctx, uuid.NewString(), "oops", suite.cashier())

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

// --- Tracking snapshot ---

func (suite *PaymentServiceTestSuite) TestGetTrackingSnapshot_IgnoresReversedPayments() {
	ctx := context.Background()
	loan := suite.disbursedLoan()
	loan.Outstanding = decimal.NewFromInt(80000)

	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), LoanID: loan.LoanID, Amount: decimal.NewFromInt(10000), PenaltyPortion: decimal.Zero},
		{PaymentID: uuid.NewString(), LoanID: loan.LoanID, Amount: decimal.NewFromInt(10000), PenaltyPortion: decimal.NewFromInt(600)},
		{PaymentID: uuid.NewString(), LoanID: loan.LoanID, Amount: decimal.NewFromInt(5000), IsReversed: true},
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByLoanID", ctx, loan.LoanID).Return(payments, nil).Once()

	snapshot, err := suite.service.GetTrackingSnapshot(ctx, loan.LoanID)

	suite.Require().NoError(err)
	suite.Equal(2, snapshot.InstallmentsPaid)
	suite.Equal(12, snapshot.TotalInstallments)
	suite.True(snapshot.AmountPaid.Equal(decimal.NewFromInt(20000)))
	suite.True(snapshot.Penalty.Equal(decimal.NewFromInt(600)))
	suite.True(snapshot.Balance.Equal(decimal.NewFromInt(80000)))
	// 80000 over the 10 remaining installments.
	suite.True(snapshot.NextPaymentAmount.Equal(decimal.NewFromInt(8000)))
	suite.Equal("In Progress", snapshot.Status)
}

// --- Penalty preview ---

func (suite *PaymentServiceTestSuite) TestPreviewPenalty_ReportsBothCalculators() {
	ctx := context.Background()
	loan := suite.disbursedLoan()
	product := suite.product(loan)

	pastDue := suite.now.AddDate(0, 0, -5)
	pastMaturity := suite.now.AddDate(0, 0, -4)
	loan.NextDueDate = &pastDue
	loan.MaturityDate = &pastMaturity

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockProductRepo.On("FindLoanProductByID", ctx, loan.ProductID).Return(product, nil).Once()

	resp, err := suite.service.PreviewPenalty(ctx, loan.LoanID, dto.PenaltyPreviewRequest{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Late)
	suite.Require().NotNil(resp.AfterMaturity)
	// Late: 5 days late, 2 grace, 3 chargeable at 0.2% of 100000 = 600.
	suite.Equal(5, resp.Late.DaysLate)
	suite.True(resp.Late.Penalty.Equal(decimal.NewFromInt(600)))
	// After maturity: no grace, 4 days at 50 fixed = 200.
	suite.Equal(4, resp.AfterMaturity.DaysLate)
	suite.True(resp.AfterMaturity.Penalty.Equal(decimal.NewFromInt(200)))
}

func (suite *PaymentServiceTestSuite) TestPreviewPenalty_PendingLoanHasNoFigures() {
	ctx := context.Background()
	loan := suite.disbursedLoan()
	loan.WorkflowStatus = domain.WorkflowPendingApproval
	loan.NextDueDate = nil
	loan.MaturityDate = nil
	loan.DisbursedAt = nil
	product := suite.product(loan)

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockProductRepo.On("FindLoanProductByID", ctx, loan.ProductID).Return(product, nil).Once()

	resp, err := suite.service.PreviewPenalty(ctx, loan.LoanID, dto.PenaltyPreviewRequest{})

	suite.Require().NoError(err)
	suite.Nil(resp.Late)
	suite.Nil(resp.AfterMaturity)
	suite.True(resp.Outstanding.Equal(loan.Outstanding))
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
