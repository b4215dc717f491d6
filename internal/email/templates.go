package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

// layout is base.html; every message template defines "content" for it.
var layout = template.Must(template.New("base.html").ParseFS(templateFS, "templates/base.html"))

var (
	parsedMu sync.Mutex
	parsed   = map[string]*template.Template{}
)

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type jobAssignedEmailData struct {
	baseEmailData
	JobAssignedEmail
}

type affidavitEmailData struct {
	baseEmailData
	AffidavitEmail
	HasAttachment bool
}

func messageTemplate(name string) (*template.Template, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if t, ok := parsed[name]; ok {
		return t, nil
	}

	clone, err := layout.Clone()
	if err != nil {
		return nil, err
	}
	t, err := clone.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse email template %s: %w", name, err)
	}
	parsed[name] = t
	return t, nil
}

func renderEmailTemplate(name string, data any) (string, error) {
	tmpl, err := messageTemplate(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("render email %s: %w", name, err)
	}
	return buf.String(), nil
}
