package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/partnerdesk/inventory_ingest_app/internal/apperrors"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	portsrepo "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/repositories"
	portssvc "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/services"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/services"
)

// --- Mocks ---

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	item, _ := args.Get(0).(*domain.InventoryItem)
	return item, args.Error(1)
}

func (m *MockInventoryRepository) FindItemByCompanyAndName(ctx context.Context, companyID string, name string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, companyID, name)
	item, _ := args.Get(0).(*domain.InventoryItem)
	return item, args.Error(1)
}

func (m *MockInventoryRepository) ListTransactionsByItemID(ctx context.Context, itemID string, limit int, nextToken *string) ([]domain.InventoryTransaction, *string, error) {
	args := m.Called(ctx, itemID, limit, nextToken)
	txns, _ := args.Get(0).([]domain.InventoryTransaction)
	token, _ := args.Get(1).(*string)
	return txns, token, args.Error(2)
}

func (m *MockInventoryRepository) ApplyTransaction(ctx context.Context, companyID string, itemName string, txn domain.InventoryTransaction, newItem *domain.InventoryItem) (*domain.InventoryItem, *domain.InventoryTransaction, error) {
	args := m.Called(ctx, companyID, itemName, txn, newItem)
	item, _ := args.Get(0).(*domain.InventoryItem)
	committed, _ := args.Get(1).(*domain.InventoryTransaction)
	return item, committed, args.Error(2)
}

// Ensure MockInventoryRepository implements the facade interface
var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

type MockLowStockNotifier struct {
	mock.Mock
}

func (m *MockLowStockNotifier) NotifyLowStock(ctx context.Context, item domain.InventoryItem) {
	m.Called(ctx, item)
}

var _ portssvc.LowStockNotifier = (*MockLowStockNotifier)(nil)

// --- Test Suite ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockInventoryRepository
	mockNotifier *MockLowStockNotifier
	service      portssvc.LedgerSvc
	ctx          context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockInventoryRepository)
	s.mockNotifier = new(MockLowStockNotifier)
	s.service = services.NewLedgerService(s.mockRepo, s.mockNotifier, services.LedgerConfig{
		DefaultMinStockLevel: 10,
		DefaultMaxStockLevel: 1000,
	})
	s.ctx = context.Background()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func resolvedMatch(companyID string) domain.CompanyMatch {
	return domain.CompanyMatch{
		OriginalName: "Acme Corp",
		CompanyID:    &companyID,
		Confidence:   1.0,
	}
}

func purchaseCandidate() domain.CandidateRecord {
	price := decimal.RequireFromString("2.50")
	return domain.CandidateRecord{
		Kind:        domain.RecordPurchase,
		CompanyName: "Acme Corp",
		ItemName:    "Widget",
		Quantity:    5,
		UnitPrice:   price,
		Total:       price.Mul(decimal.NewFromInt(5)),
		RowIndex:    3,
	}
}

func saleCandidate() domain.CandidateRecord {
	c := purchaseCandidate()
	c.Kind = domain.RecordSale
	return c
}

func (s *LedgerServiceTestSuite) TestCommitRecord_PurchasePassesNewItemTemplate() {
	candidate := purchaseCandidate()

	item := &domain.InventoryItem{ItemID: "item-1", CompanyID: "comp-1", Name: "Widget", Quantity: 105, MinStockLevel: 10}
	s.mockRepo.On("ApplyTransaction", s.ctx, "comp-1", "Widget",
		mock.MatchedBy(func(txn domain.InventoryTransaction) bool {
			return txn.Type == domain.TxnPurchase &&
				txn.Quantity == 5 &&
				txn.UploadJobID != nil && *txn.UploadJobID == "job-1" &&
				txn.SourceRowIndex != nil && *txn.SourceRowIndex == 3 &&
				txn.CreatedBy == "user-1"
		}),
		mock.MatchedBy(func(newItem *domain.InventoryItem) bool {
			return newItem != nil &&
				newItem.CompanyID == "comp-1" &&
				newItem.Name == "Widget" &&
				newItem.Quantity == 0 &&
				newItem.MinStockLevel == 10 &&
				newItem.MaxStockLevel == 1000 &&
				newItem.Status == domain.ItemActive
		})).Return(item, &domain.InventoryTransaction{TransactionID: "txn-1", ItemID: "item-1", NewQuantity: 105}, nil).Once()

	committed, err := s.service.CommitRecord(s.ctx, candidate, resolvedMatch("comp-1"), "job-1", "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(committed)
	s.Equal("txn-1", committed.TransactionID)
	s.mockRepo.AssertExpectations(s.T())
	s.mockNotifier.AssertNotCalled(s.T(), "NotifyLowStock", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCommitRecord_SaleNeverCreatesItem() {
	candidate := saleCandidate()

	item := &domain.InventoryItem{ItemID: "item-1", Quantity: 95, MinStockLevel: 10}
	s.mockRepo.On("ApplyTransaction", s.ctx, "comp-1", "Widget",
		mock.MatchedBy(func(txn domain.InventoryTransaction) bool { return txn.Type == domain.TxnSale }),
		(*domain.InventoryItem)(nil)).
		Return(item, &domain.InventoryTransaction{TransactionID: "txn-2"}, nil).Once()

	committed, err := s.service.CommitRecord(s.ctx, candidate, resolvedMatch("comp-1"), "job-1", "user-1")

	s.Require().NoError(err)
	s.Equal("txn-2", committed.TransactionID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCommitRecord_UnresolvedMatchNeverTouchesRepo() {
	match := domain.CompanyMatch{OriginalName: "Unknown Traders", Confidence: 0.42}

	committed, err := s.service.CommitRecord(s.ctx, purchaseCandidate(), match, "job-1", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnresolvedCompany)
	s.Nil(committed)
	s.mockRepo.AssertNotCalled(s.T(), "ApplyTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCommitRecord_SaleAgainstUnknownItem() {
	s.mockRepo.On("ApplyTransaction", s.ctx, "comp-1", "Widget", mock.Anything, (*domain.InventoryItem)(nil)).
		Return(nil, nil, apperrors.ErrNotFound).Once()

	committed, err := s.service.CommitRecord(s.ctx, saleCandidate(), resolvedMatch("comp-1"), "job-1", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnknownItem)
	s.Nil(committed)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCommitRecord_InsufficientStock() {
	s.mockRepo.On("ApplyTransaction", s.ctx, "comp-1", "Widget", mock.Anything, (*domain.InventoryItem)(nil)).
		Return(nil, nil, apperrors.ErrInsufficientStock).Once()

	committed, err := s.service.CommitRecord(s.ctx, saleCandidate(), resolvedMatch("comp-1"), "job-1", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInsufficientStock)
	s.Nil(committed)
	s.mockNotifier.AssertNotCalled(s.T(), "NotifyLowStock", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCommitRecord_UnknownKindRejected() {
	candidate := purchaseCandidate()
	candidate.Kind = domain.RecordKind("TRANSFER")

	_, err := s.service.CommitRecord(s.ctx, candidate, resolvedMatch("comp-1"), "job-1", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "ApplyTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCommitRecord_LowStockSignalFires() {
	item := &domain.InventoryItem{ItemID: "item-1", Name: "Widget", Quantity: 8, MinStockLevel: 10}
	s.mockRepo.On("ApplyTransaction", s.ctx, "comp-1", "Widget", mock.Anything, (*domain.InventoryItem)(nil)).
		Return(item, &domain.InventoryTransaction{TransactionID: "txn-3"}, nil).Once()
	s.mockNotifier.On("NotifyLowStock", s.ctx, *item).Once()

	_, err := s.service.CommitRecord(s.ctx, saleCandidate(), resolvedMatch("comp-1"), "job-1", "user-1")

	s.Require().NoError(err)
	s.mockNotifier.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCommitRecord_NoSignalWithoutMinStockLevel() {
	item := &domain.InventoryItem{ItemID: "item-1", Name: "Widget", Quantity: 0, MinStockLevel: 0}
	s.mockRepo.On("ApplyTransaction", s.ctx, "comp-1", "Widget", mock.Anything, (*domain.InventoryItem)(nil)).
		Return(item, &domain.InventoryTransaction{TransactionID: "txn-4"}, nil).Once()

	_, err := s.service.CommitRecord(s.ctx, saleCandidate(), resolvedMatch("comp-1"), "job-1", "user-1")

	s.Require().NoError(err)
	s.mockNotifier.AssertNotCalled(s.T(), "NotifyLowStock", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCommitRecord_NilNotifierIsSafe() {
	service := services.NewLedgerService(s.mockRepo, nil, services.LedgerConfig{})

	item := &domain.InventoryItem{ItemID: "item-1", Quantity: 1, MinStockLevel: 10}
	s.mockRepo.On("ApplyTransaction", s.ctx, "comp-1", "Widget", mock.Anything, (*domain.InventoryItem)(nil)).
		Return(item, &domain.InventoryTransaction{TransactionID: "txn-5"}, nil).Once()

	_, err := service.CommitRecord(s.ctx, saleCandidate(), resolvedMatch("comp-1"), "job-1", "user-1")

	s.Require().NoError(err)
}
