package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dafterhq/fulus/internal/apperrors"
	"github.com/dafterhq/fulus/internal/core/domain"
	portssvc "github.com/dafterhq/fulus/internal/core/ports/services"
	"github.com/dafterhq/fulus/internal/core/services"
	"github.com/dafterhq/fulus/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockParserSvc is a mock type for the ParserSvc interface
type MockParserSvc struct {
	mock.Mock
}

var _ portssvc.ParserSvc = (*MockParserSvc)(nil)

func (m *MockParserSvc) Parse(rec domain.EmailRecord) (*domain.ParsedTransaction, error) {
	args := m.Called(rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedTransaction), args.Error(1)
}

// MockLedgerSvc is a mock type for the LedgerSvc interface
type MockLedgerSvc struct {
	mock.Mock
}

var _ portssvc.LedgerSvc = (*MockLedgerSvc)(nil)

func (m *MockLedgerSvc) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerSvc) CreateTransaction(ctx context.Context, data domain.ParsedTransaction) (*domain.Transaction, bool, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Bool(1), args.Error(2)
}

func (m *MockLedgerSvc) GetAccountSummary(ctx context.Context, accountNumber string) (*domain.AccountSummary, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}

func (m *MockLedgerSvc) GetTransactionsByDateRange(ctx context.Context, accountNumber string, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountNumber, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerSvc) ListAccountSummaries(ctx context.Context) ([]domain.AccountSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountSummary), args.Error(1)
}

func (m *MockLedgerSvc) DeleteAccount(ctx context.Context, accountNumber string) error {
	args := m.Called(ctx, accountNumber)
	return args.Error(0)
}

// stubSource returns a fixed record set or a fixed error.
type stubSource struct {
	records []domain.EmailRecord
	err     error
}

func (s *stubSource) Fetch(ctx context.Context) ([]domain.EmailRecord, error) {
	return s.records, s.err
}

// --- Test Suite Setup ---

type IngestServiceTestSuite struct {
	suite.Suite
	mockParser *MockParserSvc
	mockLedger *MockLedgerSvc
	service    *services.IngestService
}

func (suite *IngestServiceTestSuite) SetupTest() {
	suite.mockParser = new(MockParserSvc)
	suite.mockLedger = new(MockLedgerSvc)
	suite.service = services.NewIngestService(suite.mockParser, suite.mockLedger)
}

func parsedFor(rec domain.EmailRecord) *domain.ParsedTransaction {
	return &domain.ParsedTransaction{
		AccountNumber:   "XXXX1234",
		TransactionType: "expense",
		Amount:          decimal.RequireFromString("10.000"),
		EmailID:         rec.ID,
	}
}

// --- Test Cases ---

func (suite *IngestServiceTestSuite) TestIngestRecords_MixedBatch() {
	ctx := context.Background()
	recs := []domain.EmailRecord{
		{ID: "m1", Body: "ok"},
		{ID: "m2", Body: "duplicate"},
		{ID: "m3", Body: "garbage"},
		{ID: "m4", Body: "db-broken"},
	}
	p1, p2, p4 := parsedFor(recs[0]), parsedFor(recs[1]), parsedFor(recs[3])

	suite.mockParser.On("Parse", recs[0]).Return(p1, nil).Once()
	suite.mockParser.On("Parse", recs[1]).Return(p2, nil).Once()
	suite.mockParser.On("Parse", recs[2]).Return(nil, fmt.Errorf("%w: no amount", apperrors.ErrParseFailure)).Once()
	suite.mockParser.On("Parse", recs[3]).Return(p4, nil).Once()

	suite.mockLedger.On("CreateTransaction", ctx, *p1).Return(&domain.Transaction{TransactionID: "t1"}, true, nil).Once()
	suite.mockLedger.On("CreateTransaction", ctx, *p2).Return(&domain.Transaction{TransactionID: "t2"}, false, nil).Once()
	suite.mockLedger.On("CreateTransaction", ctx, *p4).Return(nil, false, fmt.Errorf("%w: db down", apperrors.ErrNotCreated)).Once()

	result := suite.service.IngestRecords(ctx, recs, true)

	suite.Equal(4, result.Fetched)
	suite.Equal(3, result.Parsed)
	suite.Equal(1, result.Saved)
	suite.Equal(1, result.Duplicates)
	suite.Equal(1, result.ParseFailures)
	suite.Equal(1, result.PersistFailures)

	suite.Require().Len(result.Outcomes, 4)
	suite.Equal(domain.IngestSaved, result.Outcomes[0].Status)
	suite.Equal(domain.IngestDuplicate, result.Outcomes[1].Status)
	suite.Equal(domain.IngestParseFailed, result.Outcomes[2].Status)
	suite.Equal(domain.IngestPersistFailed, result.Outcomes[3].Status)
	suite.Equal("m3", result.Outcomes[2].EmailID)

	suite.mockParser.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *IngestServiceTestSuite) TestIngestRecords_ParseOnly() {
	ctx := context.Background()
	recs := []domain.EmailRecord{{ID: "m1", Body: "ok"}}
	p1 := parsedFor(recs[0])

	suite.mockParser.On("Parse", recs[0]).Return(p1, nil).Once()

	result := suite.service.IngestRecords(ctx, recs, false)

	suite.Equal(1, result.Parsed)
	suite.Equal(0, result.Saved)
	suite.Require().Len(result.Outcomes, 1)
	suite.Equal(domain.IngestParsed, result.Outcomes[0].Status)
	suite.Equal(p1, result.Outcomes[0].Transaction)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *IngestServiceTestSuite) TestFetchAndIngest_SourceFailure() {
	_, err := suite.service.FetchAndIngest(context.Background(), &stubSource{err: fmt.Errorf("connection refused")}, true)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "failed to fetch emails")
}

func (suite *IngestServiceTestSuite) TestFetchAndIngest_EmptyMailbox() {
	result, err := suite.service.FetchAndIngest(context.Background(), &stubSource{}, true)

	suite.Require().NoError(err)
	suite.Equal(0, result.Fetched)
	suite.Empty(result.Outcomes)
}

func TestIngestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IngestServiceTestSuite))
}
