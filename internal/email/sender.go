// Package email renders and delivers transactional email: server assignment
// notices and affidavit delivery with the PDF attached.
package email

import (
	"context"

	"serveportal_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes (base64-encoded for Brevo)
	FileName string // e.g. "affidavit-of-service-2024-L-000123.pdf"
	MIMEType string // e.g. "application/pdf"
}

// JobAssignedEmail tells a server about a newly assigned job.
type JobAssignedEmail struct {
	ServerName     string
	CompanyName    string
	JobNumber      string
	RecipientName  string
	ServiceAddress string
	DueDate        string
	JobURL         string
}

// AffidavitEmail delivers a generated affidavit to a client.
type AffidavitEmail struct {
	ToName        string
	CompanyName   string
	CaseNumber    string
	RecipientName string
	Title         string
	Message       string
	VerifyURL     string
	Attachment    Attachment
}

type Sender interface {
	SendJobAssignedEmail(ctx context.Context, toEmail string, data JobAssignedEmail) error
	SendAffidavitEmail(ctx context.Context, toEmail string, data AffidavitEmail) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

type NoopSender struct{}

func (NoopSender) SendJobAssignedEmail(ctx context.Context, toEmail string, data JobAssignedEmail) error {
	return nil
}

func (NoopSender) SendAffidavitEmail(ctx context.Context, toEmail string, data AffidavitEmail) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender picks the delivery channel: a configured SMTP relay wins over the
// Brevo API. Disabled email yields a NoopSender.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	if cfg.GetSMTPHost() != "" {
		return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetSMTPUsername(), cfg.GetSMTPPassword(), cfg.GetEmailFromAddress(), cfg.GetEmailFromName()), nil
	}
	return NewBrevoSender(cfg.GetBrevoAPIKey(), cfg.GetEmailFromAddress(), cfg.GetEmailFromName()), nil
}

// messenger is the transport-specific half of a Sender.
type messenger interface {
	send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error
}

func sendJobAssigned(ctx context.Context, m messenger, toEmail string, data JobAssignedEmail) error {
	content, err := renderEmailTemplate("job_assigned.html", jobAssignedEmailData{
		baseEmailData: baseEmailData{
			Title:    "New job assigned",
			Heading:  "You have a new job",
			CTALabel: "Open job",
			CTAURL:   data.JobURL,
		},
		JobAssignedEmail: data,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, toEmail, jobAssignedSubject(data), content)
}

func sendAffidavit(ctx context.Context, m messenger, toEmail string, data AffidavitEmail) error {
	content, err := renderEmailTemplate("affidavit_delivery.html", affidavitEmailData{
		baseEmailData: baseEmailData{
			Title:    data.Title,
			Heading:  data.Title,
			CTALabel: "Verify this affidavit",
			CTAURL:   data.VerifyURL,
		},
		AffidavitEmail: data,
		HasAttachment:  len(data.Attachment.Content) > 0,
	})
	if err != nil {
		return err
	}
	var attachments []Attachment
	if len(data.Attachment.Content) > 0 {
		attachments = append(attachments, data.Attachment)
	}
	return m.send(ctx, toEmail, affidavitSubject(data), content, attachments...)
}
