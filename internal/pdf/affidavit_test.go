package pdf

import (
	"bytes"
	"testing"

	"serveportal_backend/internal/affidavits/domain"
	jobdomain "serveportal_backend/internal/jobs/domain"
)

func markupTemplate() domain.Template {
	return domain.Template{ID: "t1", Name: "Markup", Mode: domain.ModeMarkup, Body: "<p>{{.CaseNumber}}</p>"}
}

func TestGenerateAffidavitPDFServed(t *testing.T) {
	qr, err := VerificationQR("https://app.example.com/verify/ABCD", 128)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	tmpl := domain.Template{ID: "starter:x", Name: "Cook County Affidavit of Service", Mode: domain.ModeStructured, County: "Cook"}
	data := servedData()
	data.IncludeNotary = true
	data.ServerLicense = "129.000123"

	out, err := GenerateAffidavitPDF(tmpl, data, Assets{VerificationCode: "ABCD-EFGH-JKLM", QRCode: qr})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF output")
	}
}

func TestGenerateAffidavitPDFDueDiligence(t *testing.T) {
	data := domain.AffidavitData{
		Title:         domain.TitleNotServed,
		ServiceStatus: jobdomain.OutcomeNotServed,
		CaseNumber:    "2026-CV-0042",
		ServerName:    "Sam Server",
		AttemptHistory: []domain.AttemptLine{
			{Date: "2026-03-01", Time: "8:00 AM", Status: "no_answer", Address: "12 Elm St"},
			{Date: "2026-03-02", Time: "6:30 PM", Status: "bad_address", Address: "12 Elm St", Notes: "vacant"},
		},
	}

	out, err := GenerateAffidavitPDF(domain.Template{Name: "Universal", Mode: domain.ModeStructured}, data, Assets{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF output")
	}
}

func TestHumanize(t *testing.T) {
	if got := humanize("no_answer"); got != "No answer" {
		t.Fatalf("humanize = %q", got)
	}
}
