package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	brevoEndpoint      = "https://api.brevo.com/v3/smtp/email"
	brevoErrorBodySize = 2 << 10
)

// BrevoSender delivers through the Brevo transactional email API.
type BrevoSender struct {
	apiKey   string
	from     brevoContact
	endpoint string
	client   *http.Client
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type brevoEmailRequest struct {
	Sender      brevoContact      `json:"sender"`
	To          []brevoContact    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

func NewBrevoSender(apiKey, fromEmail, fromName string) *BrevoSender {
	return &BrevoSender{
		apiKey:   apiKey,
		from:     brevoContact{Name: fromName, Email: fromEmail},
		endpoint: brevoEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (b *BrevoSender) SendJobAssignedEmail(ctx context.Context, toEmail string, data JobAssignedEmail) error {
	return sendJobAssigned(ctx, b, toEmail, data)
}

func (b *BrevoSender) SendAffidavitEmail(ctx context.Context, toEmail string, data AffidavitEmail) error {
	return sendAffidavit(ctx, b, toEmail, data)
}

func (b *BrevoSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return b.send(ctx, toEmail, subject, htmlContent)
}

func (b *BrevoSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	body, err := json.Marshal(brevoEmailRequest{
		Sender:      b.from,
		To:          []brevoContact{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: htmlContent,
		Attachment:  encodeAttachments(attachments),
	})
	if err != nil {
		return fmt.Errorf("brevo payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("brevo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, brevoErrorBodySize))
		return fmt.Errorf("brevo send: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func encodeAttachments(in []Attachment) []brevoAttachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]brevoAttachment, 0, len(in))
	for _, a := range in {
		out = append(out, brevoAttachment{
			Name:    a.FileName,
			Content: base64.StdEncoding.EncodeToString(a.Content),
		})
	}
	return out
}
