package pdf

import (
	"strings"
	"testing"

	"serveportal_backend/internal/affidavits/domain"
	jobdomain "serveportal_backend/internal/jobs/domain"
)

func servedData() domain.AffidavitData {
	return domain.AffidavitData{
		Title:           domain.TitleServed,
		ServiceStatus:   jobdomain.OutcomeServed,
		CaseNumber:      "2026-CV-0042",
		CourtName:       "Circuit Court of Cook County",
		CourtCounty:     "Cook",
		CourtState:      "IL",
		CaseCaption:     "Acme v. Doe",
		RecipientName:   "Jane Doe",
		ServerName:      "Sam Server",
		ServiceDate:     "2026-03-02",
		ServiceTime:     "9:15 AM",
		ServiceAddress:  "12 Elm St, Chicago, IL 60601",
		ServiceMethod:   jobdomain.MethodPersonal,
		PersonServed:    jobdomain.PersonServed{Name: "Jane Doe"},
		DocumentsServed: []string{"Summons", "Complaint"},
	}
}

func TestRenderMarkupHTMLFillsTemplate(t *testing.T) {
	body := `<p>{{upper .CourtName}}</p><p>{{.RecipientName}}</p><p>{{join .DocumentsServed ", "}}</p>`

	html, files, err := RenderMarkupHTML(body, servedData(), Assets{VerificationCode: "AAAA-BBBB-CCCC", QRCode: []byte("png")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	for _, want := range []string{"CIRCUIT COURT OF COOK COUNTY", "Jane Doe", "Summons, Complaint", "AAAA-BBBB-CCCC", `src="qr.png"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
	if _, ok := files["qr.png"]; !ok {
		t.Fatalf("expected qr.png asset")
	}
}

func TestRenderMarkupHTMLEscapesData(t *testing.T) {
	data := servedData()
	data.RecipientName = "<script>alert(1)</script>"

	html, _, err := RenderMarkupHTML(`<p>{{.RecipientName}}</p>`, data, Assets{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), "<script>alert") {
		t.Fatalf("expected recipient name to be escaped")
	}
}

func TestRenderMarkupHTMLUsesEditedMarkup(t *testing.T) {
	data := servedData()
	data.EditedMarkup = `<p onclick="x()">Edited by hand {{.CaseNumber}}</p><script>bad()</script>`

	html, _, err := RenderMarkupHTML(`<p>{{.CaseNumber}}</p>`, data, Assets{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "Edited by hand {{.CaseNumber}}") {
		t.Fatalf("expected edited markup to be used verbatim, got %s", out)
	}
	if strings.Contains(out, "bad()") || strings.Contains(out, "onclick") {
		t.Fatalf("expected active content to be stripped")
	}
}

func TestRenderMarkupHTMLPlacesSignature(t *testing.T) {
	data := servedData()
	data.PlacedSignature = &domain.SignaturePlacement{Page: 2, X: 72, Y: 100, Width: 144, Height: 36}

	html, files, err := RenderMarkupHTML(`<p>body</p>`, data, Assets{Signature: Image{Data: []byte("sig"), ContentType: "image/png"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, ok := files["signature.png"]; !ok {
		t.Fatalf("expected signature asset")
	}
	if !strings.Contains(string(html), "top:748.0pt") {
		t.Fatalf("expected second page offset in signature style, got %s", html)
	}
}

func TestParseMarkupRejectsBrokenTemplate(t *testing.T) {
	if _, err := ParseMarkup(`{{if .CaseNumber}}`); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestStarterMarkupTemplatesRender(t *testing.T) {
	starters, err := domain.StarterTemplates()
	if err != nil {
		t.Fatalf("starter templates: %v", err)
	}
	for _, tmpl := range starters {
		if tmpl.Mode != domain.ModeMarkup {
			continue
		}
		if _, _, err := RenderMarkupHTML(tmpl.Body, servedData(), Assets{}); err != nil {
			t.Fatalf("%s: %v", tmpl.Name, err)
		}
	}
}
