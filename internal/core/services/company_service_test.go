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

type CompanyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCompanyRepository
	service  portssvc.CompanySvcFacade
	ctx      context.Context
}

func (s *CompanyServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockCompanyRepository)
	s.service = services.NewCompanyService(s.mockRepo)
	s.ctx = context.Background()
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}

func (s *CompanyServiceTestSuite) TestListCompanies() {
	companies := []domain.Company{{CompanyID: "c-1", CanonicalName: "Acme Corporation", IsActive: true}}
	s.mockRepo.On("ListActiveCompanies", s.ctx).Return(companies, nil).Once()

	got, err := s.service.ListCompanies(s.ctx)

	s.Require().NoError(err)
	s.Equal(companies, got)
}

func (s *CompanyServiceTestSuite) TestCreateCompany_Success() {
	s.mockRepo.On("SaveCompany", s.ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.CompanyID != "" && c.CanonicalName == "Acme Corporation" && c.IsActive && c.CreatedBy == "admin-1"
	})).Return(nil).Once()

	company, err := s.service.CreateCompany(s.ctx, dto.CreateCompanyRequest{CanonicalName: "  Acme Corporation "}, "admin-1")

	s.Require().NoError(err)
	s.Equal("Acme Corporation", company.CanonicalName)
	s.True(company.IsActive)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CompanyServiceTestSuite) TestCreateCompany_EmptyNameRejected() {
	company, err := s.service.CreateCompany(s.ctx, dto.CreateCompanyRequest{CanonicalName: "   "}, "admin-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(company)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCompany", mock.Anything, mock.Anything)
}

func (s *CompanyServiceTestSuite) TestCreateCompany_DuplicatePropagates() {
	s.mockRepo.On("SaveCompany", s.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	company, err := s.service.CreateCompany(s.ctx, dto.CreateCompanyRequest{CanonicalName: "Acme Corporation"}, "admin-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(company)
}
