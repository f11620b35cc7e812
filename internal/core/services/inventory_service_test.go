package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/partnerdesk/inventory_ingest_app/internal/apperrors"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	portssvc "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/services"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/services"
	"github.com/partnerdesk/inventory_ingest_app/internal/dto"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInventoryRepository
	service  portssvc.InventorySvcFacade
	ctx      context.Context
}

func (s *InventoryServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockInventoryRepository)
	s.service = services.NewInventoryService(s.mockRepo)
	s.ctx = context.Background()
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

func (s *InventoryServiceTestSuite) TestGetItemByID_Success() {
	item := &domain.InventoryItem{ItemID: "item-1", Name: "Widget", Quantity: 10}
	s.mockRepo.On("FindItemByID", s.ctx, "item-1").Return(item, nil).Once()

	got, err := s.service.GetItemByID(s.ctx, "item-1")

	s.Require().NoError(err)
	s.Equal(item, got)
}

func (s *InventoryServiceTestSuite) TestGetItemByID_NotFound() {
	s.mockRepo.On("FindItemByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	got, err := s.service.GetItemByID(s.ctx, "missing")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(got)
}

func (s *InventoryServiceTestSuite) TestListTransactionsByItem_DefaultsLimit() {
	item := &domain.InventoryItem{ItemID: "item-1"}
	txns := []domain.InventoryTransaction{{TransactionID: "txn-1", ItemID: "item-1"}}
	next := "next-token"

	s.mockRepo.On("FindItemByID", s.ctx, "item-1").Return(item, nil).Once()
	s.mockRepo.On("ListTransactionsByItemID", s.ctx, "item-1", 50, (*string)(nil)).Return(txns, &next, nil).Once()

	resp, err := s.service.ListTransactionsByItem(s.ctx, "item-1", dto.ListTransactionsParams{})

	s.Require().NoError(err)
	s.Require().Len(resp.Transactions, 1)
	s.Equal("txn-1", resp.Transactions[0].TransactionID)
	s.Require().NotNil(resp.NextToken)
	s.Equal("next-token", *resp.NextToken)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *InventoryServiceTestSuite) TestListTransactionsByItem_UnknownItemIsNotFound() {
	s.mockRepo.On("FindItemByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := s.service.ListTransactionsByItem(s.ctx, "missing", dto.ListTransactionsParams{Limit: 10})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(resp)
	s.mockRepo.AssertNotCalled(s.T(), "ListTransactionsByItemID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
