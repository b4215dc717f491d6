package adapters

import (
	"context"
	"errors"
	"testing"

	companyrepo "serveportal_backend/internal/company/repository"
	emprepo "serveportal_backend/internal/employees/repository"

	"github.com/google/uuid"
)

type stubEmployees struct {
	rows []emprepo.Employee
	err  error
}

func (s stubEmployees) All(context.Context, uuid.UUID) ([]emprepo.Employee, error) {
	return s.rows, s.err
}

type stubProfile struct {
	profile companyrepo.Profile
}

func (s stubProfile) Profile(context.Context, uuid.UUID) (companyrepo.Profile, error) {
	return s.profile, nil
}

func TestStaffDirectoryKeepsInactiveServers(t *testing.T) {
	id := uuid.New()
	dir := NewAffidavitStaffDirectory(stubEmployees{rows: []emprepo.Employee{
		{ID: id, FirstName: "Sam", LastName: "Server", LicenseNumber: "117-001234", IsActive: false},
	}})

	got, err := dir.Employees(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("employees: %v", err)
	}
	if len(got) != 1 || got[0].ID != id || got[0].FullName() != "Sam Server" || got[0].LicenseNumber != "117-001234" {
		t.Fatalf("unexpected employees %+v", got)
	}
}

func TestStaffDirectoryPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	dir := NewAffidavitStaffDirectory(stubEmployees{err: boom})
	if _, err := dir.Employees(context.Background(), uuid.New()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestCompanyDirectoryMapsLogoAndTimezone(t *testing.T) {
	logo := "tenant/logo/logo_ab12cd34.png"
	dir := NewAffidavitCompanyDirectory(stubProfile{profile: companyrepo.Profile{
		Name: "Prairie Process", License: "CO-LIC", LogoKey: &logo, Timezone: "America/Chicago",
	}})

	got, err := dir.Company(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("company: %v", err)
	}
	if got.Profile.Name != "Prairie Process" || got.Profile.License != "CO-LIC" {
		t.Fatalf("unexpected profile %+v", got.Profile)
	}
	if got.LogoKey != logo || got.Timezone != "America/Chicago" {
		t.Fatalf("unexpected logo/timezone %q %q", got.LogoKey, got.Timezone)
	}
}
