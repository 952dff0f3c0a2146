package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dafterhq/fulus/internal/apperrors"
	"github.com/dafterhq/fulus/internal/core/domain"
	portssvc "github.com/dafterhq/fulus/internal/core/ports/services"
	"github.com/dafterhq/fulus/internal/dto"
	"github.com/dafterhq/fulus/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerSvc ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

func (m *MockLedgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) CreateTransaction(ctx context.Context, data domain.ParsedTransaction) (*domain.Transaction, bool, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Bool(1), args.Error(2)
}

func (m *MockLedgerService) GetAccountSummary(ctx context.Context, accountNumber string) (*domain.AccountSummary, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}

func (m *MockLedgerService) GetTransactionsByDateRange(ctx context.Context, accountNumber string, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountNumber, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListAccountSummaries(ctx context.Context) ([]domain.AccountSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountSummary), args.Error(1)
}

func (m *MockLedgerService) DeleteAccount(ctx context.Context, accountNumber string) error {
	args := m.Called(ctx, accountNumber)
	return args.Error(0)
}

// --- Mock ParserSvc ---

type MockParserService struct {
	mock.Mock
}

var _ portssvc.ParserSvc = (*MockParserService)(nil)

func (m *MockParserService) Parse(rec domain.EmailRecord) (*domain.ParsedTransaction, error) {
	args := m.Called(rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedTransaction), args.Error(1)
}

// --- Mock IngestSvc ---

type MockIngestService struct {
	mock.Mock
}

var _ portssvc.IngestSvc = (*MockIngestService)(nil)

func (m *MockIngestService) IngestRecords(ctx context.Context, records []domain.EmailRecord, persist bool) domain.BatchResult {
	args := m.Called(ctx, records, persist)
	return args.Get(0).(domain.BatchResult)
}

func (m *MockIngestService) FetchAndIngest(ctx context.Context, source portssvc.EmailSource, persist bool) (domain.BatchResult, error) {
	args := m.Called(ctx, source, persist)
	return args.Get(0).(domain.BatchResult), args.Error(1)
}

// --- Test Suite Setup ---

type AccountHandlerTestSuite struct {
	suite.Suite
	mockLedger *MockLedgerService
	mockParser *MockParserService
	mockIngest *MockIngestService
	router     *gin.Engine
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockLedger = new(MockLedgerService)
	suite.mockParser = new(MockParserService)
	suite.mockIngest = new(MockIngestService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Ledger: suite.mockLedger,
		Parser: suite.mockParser,
		Ingest: suite.mockIngest,
	})
}

func (suite *AccountHandlerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	account := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "XXXX1234",
		BankName:      "Bank Muscat",
		CurrencyCode:  "OMR",
		Balance:       decimal.Zero,
	}
	suite.mockLedger.On("CreateAccount", mock.Anything, dto.CreateAccountRequest{
		AccountNumber: "XXXX1234",
		BankName:      "Bank Muscat",
	}).Return(account, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/accounts", gin.H{
		"account_number": "XXXX1234",
		"bank_name":      "Bank Muscat",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("XXXX1234", resp.AccountNumber)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingNumber() {
	w := suite.perform(http.MethodPost, "/api/v1/accounts", gin.H{"bank_name": "Bank Muscat"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccountSummary_NotFound() {
	suite.mockLedger.On("GetAccountSummary", mock.Anything, "MISSING").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.perform(http.MethodGet, "/api/v1/accounts/MISSING", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetTransactionsByDateRange() {
	txns := []domain.Transaction{{TransactionID: uuid.NewString(), TransactionType: domain.TypeIncome}}
	suite.mockLedger.On("GetTransactionsByDateRange", mock.Anything, "XXXX1234",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	).Return(txns, nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/accounts/XXXX1234/transactions?start=2026-01-01&end=2026-01-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateTransaction_InvalidType() {
	w := suite.perform(http.MethodPost, "/api/v1/transactions", gin.H{
		"account_number":   "XXXX1234",
		"transaction_type": "withdrawal",
		"amount":           "10.000",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateTransaction_Duplicate() {
	prior := &domain.Transaction{TransactionID: uuid.NewString(), ExternalID: "FT1"}
	suite.mockLedger.On("CreateTransaction", mock.Anything, mock.AnythingOfType("domain.ParsedTransaction")).
		Return(prior, false, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/transactions", gin.H{
		"account_number":   "XXXX1234",
		"transaction_type": "expense",
		"amount":           "10.000",
		"transaction_id":   "FT1",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestParseEmail_SaveToDB() {
	parsed := &domain.ParsedTransaction{
		AccountNumber:   "XXXX1234",
		TransactionType: "expense",
		Amount:          decimal.RequireFromString("125.750"),
	}
	suite.mockParser.On("Parse", mock.AnythingOfType("domain.EmailRecord")).Return(parsed, nil).Once()
	suite.mockLedger.On("CreateTransaction", mock.Anything, *parsed).
		Return(&domain.Transaction{TransactionID: uuid.NewString()}, true, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/parse", gin.H{
		"subject":    "Transaction Alert",
		"from_email": "alerts@bankmuscat.com",
		"body":       "Amount: OMR 125.750 debited",
		"save_to_db": true,
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ParseEmailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Saved)
	suite.False(resp.Duplicate)
	suite.mockParser.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestParseEmail_Unparseable() {
	suite.mockParser.On("Parse", mock.AnythingOfType("domain.EmailRecord")).
		Return(nil, apperrors.ErrParseFailure).Once()

	w := suite.perform(http.MethodPost, "/api/v1/parse", gin.H{
		"body": "Dear Customer, welcome to our bank.",
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
