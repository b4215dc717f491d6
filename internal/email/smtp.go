package email

import (
	"bytes"
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

const smtpTimeout = 20 * time.Second

// SMTPSender delivers through the company's own relay.
type SMTPSender struct {
	host      string
	options   []gomail.Option
	fromName  string
	fromEmail string
}

func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(smtpTimeout),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}
	return &SMTPSender{host: host, options: opts, fromName: fromName, fromEmail: fromEmail}
}

func (s *SMTPSender) SendJobAssignedEmail(ctx context.Context, toEmail string, data JobAssignedEmail) error {
	return sendJobAssigned(ctx, s, toEmail, data)
}

func (s *SMTPSender) SendAffidavitEmail(ctx context.Context, toEmail string, data AffidavitEmail) error {
	return sendAffidavit(ctx, s, toEmail, data)
}

func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return s.send(ctx, toEmail, subject, htmlContent)
}

func (s *SMTPSender) buildMessage(toEmail, subject, htmlContent string, attachments ...Attachment) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromEmail); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := m.To(toEmail); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, a := range attachments {
		var fileOpts []gomail.FileOption
		if a.MIMEType != "" {
			fileOpts = append(fileOpts, gomail.WithFileContentType(gomail.ContentType(a.MIMEType)))
		}
		if err := m.AttachReader(a.FileName, bytes.NewReader(a.Content), fileOpts...); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.FileName, err)
		}
	}
	return m, nil
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	m, err := s.buildMessage(toEmail, subject, htmlContent, attachments...)
	if err != nil {
		return err
	}
	c, err := gomail.NewClient(s.host, s.options...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
