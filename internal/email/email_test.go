package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderAffidavitTemplateEscapesMessage(t *testing.T) {
	html, err := renderEmailTemplate("affidavit_delivery.html", affidavitEmailData{
		baseEmailData: baseEmailData{Title: "Affidavit of Service", Heading: "Affidavit of Service"},
		AffidavitEmail: AffidavitEmail{
			ToName:        "Law Firm LLP",
			CompanyName:   "Prairie Process",
			CaseNumber:    "2024-L-000123",
			RecipientName: "John Roe",
			Title:         "Affidavit of Service",
			Message:       "<script>alert(1)</script>",
		},
		HasAttachment: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Prairie Process has completed", "case 2024-L-000123", "attached as a PDF"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %s", want, html)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("message must be escaped")
	}
}

func TestRenderJobAssignedTemplate(t *testing.T) {
	html, err := renderEmailTemplate("job_assigned.html", jobAssignedEmailData{
		baseEmailData:    baseEmailData{Title: "New job assigned", Heading: "You have a new job", CTALabel: "Open job", CTAURL: "https://app.example.com/jobs/1"},
		JobAssignedEmail: JobAssignedEmail{ServerName: "Sam", JobNumber: "J-1001", RecipientName: "John Roe", DueDate: "2024-03-15"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "J-1001") || !strings.Contains(html, "https://app.example.com/jobs/1") {
		t.Fatalf("unexpected body %s", html)
	}
}

func TestSubjects(t *testing.T) {
	if got := affidavitSubject(AffidavitEmail{Title: "Affidavit of Service", CaseNumber: "2024-L-1"}); got != "Affidavit of Service: 2024-L-1" {
		t.Fatalf("unexpected subject %q", got)
	}
	if got := affidavitSubject(AffidavitEmail{}); got != "Affidavit" {
		t.Fatalf("unexpected subject %q", got)
	}
	if got := jobAssignedSubject(JobAssignedEmail{RecipientName: "John Roe"}); got != "New job assigned: John Roe" {
		t.Fatalf("unexpected subject %q", got)
	}
}

func TestBrevoSenderPostsAttachment(t *testing.T) {
	var got brevoEmailRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sender := NewBrevoSender("key-123", "office@prairie.example", "Prairie Process")
	sender.endpoint = srv.URL

	pdf := []byte("%PDF-1.7")
	err := sender.SendAffidavitEmail(context.Background(), "clerk@lawfirm.example", AffidavitEmail{
		Title:      "Affidavit of Service",
		Attachment: Attachment{Content: pdf, FileName: "affidavit.pdf", MIMEType: "application/pdf"},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if apiKey != "key-123" {
		t.Fatalf("expected api key header, got %q", apiKey)
	}
	if len(got.To) != 1 || got.To[0].Email != "clerk@lawfirm.example" {
		t.Fatalf("unexpected recipients %+v", got.To)
	}
	if len(got.Attachment) != 1 || got.Attachment[0].Content != base64.StdEncoding.EncodeToString(pdf) {
		t.Fatalf("unexpected attachment %+v", got.Attachment)
	}
}

func TestBrevoSenderReportsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	sender := NewBrevoSender("key", "from@example.com", "From")
	sender.endpoint = srv.URL
	err := sender.SendCustomEmail(context.Background(), "to@example.com", "subject", "<p>hi</p>")
	if err == nil || !strings.Contains(err.Error(), "402") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestSMTPMessageCarriesAttachment(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "u", "p", "office@prairie.example", "Prairie Process")
	msg, err := s.buildMessage("clerk@lawfirm.example", "Affidavit", "<p>hi</p>", Attachment{Content: []byte("%PDF"), FileName: "a.pdf", MIMEType: "application/pdf"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(msg.GetAttachments()) != 1 {
		t.Fatalf("expected one attachment, got %d", len(msg.GetAttachments()))
	}
}
