package adapters

import (
	"context"

	affidavitservice "serveportal_backend/internal/affidavits/service"
	"serveportal_backend/internal/email"
)

// AffidavitMailer delivers affidavits through the email sender.
// It implements the affidavits/service.Mailer interface.
type AffidavitMailer struct {
	sender email.Sender
}

func NewAffidavitMailer(sender email.Sender) *AffidavitMailer {
	return &AffidavitMailer{sender: sender}
}

func (m *AffidavitMailer) SendAffidavitEmail(ctx context.Context, msg affidavitservice.AffidavitMail) error {
	return m.sender.SendAffidavitEmail(ctx, msg.ToEmail, email.AffidavitEmail{
		ToName:        msg.ToName,
		CompanyName:   msg.CompanyName,
		CaseNumber:    msg.CaseNumber,
		RecipientName: msg.RecipientName,
		Title:         msg.Title,
		Message:       msg.Message,
		VerifyURL:     msg.VerifyURL,
		Attachment: email.Attachment{
			Content:  msg.PDF,
			FileName: msg.FileName,
			MIMEType: "application/pdf",
		},
	})
}

var _ affidavitservice.Mailer = (*AffidavitMailer)(nil)
