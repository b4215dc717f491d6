package adapters

import (
	"context"

	affidavitdomain "serveportal_backend/internal/affidavits/domain"
	affidavitservice "serveportal_backend/internal/affidavits/service"
	emprepo "serveportal_backend/internal/employees/repository"

	"github.com/google/uuid"
)

type employeeLister interface {
	All(ctx context.Context, tenantID uuid.UUID) ([]emprepo.Employee, error)
}

// AffidavitStaffDirectory exposes the employees module to affidavit assembly.
// It implements the affidavits/service.StaffDirectory interface.
type AffidavitStaffDirectory struct {
	employees employeeLister
}

func NewAffidavitStaffDirectory(employees employeeLister) *AffidavitStaffDirectory {
	return &AffidavitStaffDirectory{employees: employees}
}

// Employees includes inactive servers; old attempts still name them.
func (a *AffidavitStaffDirectory) Employees(ctx context.Context, tenantID uuid.UUID) ([]affidavitdomain.Employee, error) {
	rows, err := a.employees.All(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]affidavitdomain.Employee, 0, len(rows))
	for _, e := range rows {
		out = append(out, affidavitdomain.Employee{
			ID:            e.ID,
			FirstName:     e.FirstName,
			LastName:      e.LastName,
			Email:         e.Email,
			LicenseNumber: e.LicenseNumber,
			Address:       e.Address,
		})
	}
	return out, nil
}

var _ affidavitservice.StaffDirectory = (*AffidavitStaffDirectory)(nil)
