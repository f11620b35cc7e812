package mapping

import (
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/partnerdesk/inventory_ingest_app/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:     d.CompanyID,
		CanonicalName: d.CanonicalName,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:     m.CompanyID,
		CanonicalName: m.CanonicalName,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCompanyMatch converts a domain CompanyMatch to a model CompanyMatch
func ToModelCompanyMatch(d domain.CompanyMatch) models.CompanyMatch {
	return models.CompanyMatch{
		MatchID:       d.MatchID,
		UploadJobID:   d.UploadJobID,
		OriginalName:  d.OriginalName,
		CompanyID:     d.CompanyID,
		Confidence:    d.Confidence,
		IsManualMatch: d.IsManualMatch,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompanyMatch converts a model CompanyMatch to a domain CompanyMatch
func ToDomainCompanyMatch(m models.CompanyMatch) domain.CompanyMatch {
	return domain.CompanyMatch{
		MatchID:       m.MatchID,
		UploadJobID:   m.UploadJobID,
		OriginalName:  m.OriginalName,
		CompanyID:     m.CompanyID,
		Confidence:    m.Confidence,
		IsManualMatch: m.IsManualMatch,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanyMatchSlice converts a slice of model CompanyMatches to domain CompanyMatches
func ToDomainCompanyMatchSlice(ms []models.CompanyMatch) []domain.CompanyMatch {
	ds := make([]domain.CompanyMatch, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompanyMatch(m)
	}
	return ds
}
