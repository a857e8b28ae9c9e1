package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) MarkPending(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}
func (m *MockSyncService) MarkSynced(ctx context.Context, transactionID string, remoteVersion string) error {
	args := m.Called(ctx, transactionID, remoteVersion)
	return args.Error(0)
}
func (m *MockSyncService) MarkConflict(ctx context.Context, transactionID string, remote dto.RemoteTransaction) error {
	args := m.Called(ctx, transactionID, remote)
	return args.Error(0)
}
func (m *MockSyncService) ResolveConflict(ctx context.Context, transactionID string, resolution domain.ConflictResolution) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockSyncService) ApplyRemoteChange(ctx context.Context, remote dto.RemoteTransaction) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}
func (m *MockSyncService) SyncOnce(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.SyncSvcFacade = (*MockSyncService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

type SyncHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockSyncService *MockSyncService
	mockTxnService  *MockTransactionService
}

func (suite *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockSyncService = new(MockSyncService)
	suite.mockTxnService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	registerSyncRoutes(v1, suite.mockSyncService, suite.mockTxnService)
}

// A rejected status transition is a state problem on the caller's side,
// not a server failure.
func (suite *SyncHandlerTestSuite) TestQueueTransaction_InvalidTransitionIsConflict() {
	suite.mockSyncService.On("MarkPending", mock.Anything, "txn-1").
		Return(fmt.Errorf("%w: QUEUED on SYNCED", domain.ErrInvalidSyncTransition)).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sync/transactions/txn-1/queue", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSyncService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestResolveConflict_InvalidTransitionIsConflict() {
	suite.mockSyncService.On("ResolveConflict", mock.Anything, "txn-1", domain.ResolveLocalWins).
		Return(nil, fmt.Errorf("%w: RESOLVE_LOCAL on SYNCED", domain.ErrInvalidSyncTransition)).Once()

	body := strings.NewReader(`{"resolution":"LOCAL_WINS"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sync/transactions/txn-1/resolve", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSyncService.AssertExpectations(suite.T())
}

func TestSyncHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}
