package dto

import (
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to register a company.
type CreateCompanyRequest struct {
	CanonicalName string `json:"canonicalName" binding:"required"`
}

// CompanyResponse defines the data returned for a registry company.
type CompanyResponse struct {
	CompanyID     string `json:"companyID"`
	CanonicalName string `json:"canonicalName"`
	IsActive      bool   `json:"isActive"`
}

// ListCompaniesResponse wraps the registry snapshot.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:     c.CompanyID,
		CanonicalName: c.CanonicalName,
		IsActive:      c.IsActive,
	}
}

// ToListCompaniesResponse converts a slice of domain.Company to the list DTO
func ToListCompaniesResponse(companies []domain.Company) ListCompaniesResponse {
	res := make([]CompanyResponse, len(companies))
	for i := range companies {
		res[i] = ToCompanyResponse(&companies[i])
	}
	return ListCompaniesResponse{Companies: res}
}
