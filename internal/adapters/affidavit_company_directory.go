package adapters

import (
	"context"

	affidavitdomain "serveportal_backend/internal/affidavits/domain"
	affidavitservice "serveportal_backend/internal/affidavits/service"
	companyrepo "serveportal_backend/internal/company/repository"

	"github.com/google/uuid"
)

type profileReader interface {
	Profile(ctx context.Context, tenantID uuid.UUID) (companyrepo.Profile, error)
}

// AffidavitCompanyDirectory adapts the company profile for affidavit letterheads.
type AffidavitCompanyDirectory struct {
	company profileReader
}

func NewAffidavitCompanyDirectory(company profileReader) *AffidavitCompanyDirectory {
	return &AffidavitCompanyDirectory{company: company}
}

func (a *AffidavitCompanyDirectory) Company(ctx context.Context, tenantID uuid.UUID) (affidavitservice.Company, error) {
	p, err := a.company.Profile(ctx, tenantID)
	if err != nil {
		return affidavitservice.Company{}, err
	}
	c := affidavitservice.Company{
		Profile: affidavitdomain.CompanyProfile{
			Name:    p.Name,
			Address: p.Address,
			Phone:   p.Phone,
			Email:   p.Email,
			License: p.License,
			Website: p.Website,
		},
		Timezone: p.Timezone,
	}
	if p.LogoKey != nil {
		c.LogoKey = *p.LogoKey
	}
	return c, nil
}

var _ affidavitservice.CompanyDirectory = (*AffidavitCompanyDirectory)(nil)
