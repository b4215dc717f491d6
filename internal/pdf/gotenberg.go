package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"slices"
	"strings"
	"time"
)

const (
	gotenbergTimeout  = 60 * time.Second
	maxGotenbergError = 4 << 10
	maxPDFBytes       = 64 << 20
)

// GotenbergClient talks to a Gotenberg instance: Chromium HTML conversion for
// markup templates and PDF merging for served documents.
type GotenbergClient struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// NewGotenbergClient sends Basic Auth when both username and password are set.
func NewGotenbergClient(baseURL, username, password string) *GotenbergClient {
	return &GotenbergClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: gotenbergTimeout},
	}
}

// ConvertOpts shapes the printed page. Margins are in inches.
type ConvertOpts struct {
	MarginTop    string
	MarginBottom string
	MarginLeft   string
	MarginRight  string
	FooterHTML   []byte
	// PDFA requests an archival variant such as "PDF/A-2b"; some e-filing
	// portals require it.
	PDFA string
}

// AffidavitOpts prints on US letter with one inch margins.
func AffidavitOpts() ConvertOpts {
	return ConvertOpts{MarginTop: "1", MarginBottom: "1", MarginLeft: "1", MarginRight: "1"}
}

// ConvertHTML renders index.html with its assets, which the HTML references
// by file name.
func (g *GotenbergClient) ConvertHTML(ctx context.Context, indexHTML []byte, assets map[string][]byte, opts ConvertOpts) ([]byte, error) {
	f := newForm()
	f.field("paperWidth", "8.5")
	f.field("paperHeight", "11")
	f.field("marginTop", opts.MarginTop)
	f.field("marginBottom", opts.MarginBottom)
	f.field("marginLeft", opts.MarginLeft)
	f.field("marginRight", opts.MarginRight)
	f.field("printBackground", "true")
	f.field("pdfa", opts.PDFA)

	f.file("index.html", "text/html", indexHTML)
	if len(opts.FooterHTML) > 0 {
		f.file("footer.html", "text/html", opts.FooterHTML)
	}
	for _, name := range slices.Sorted(maps.Keys(assets)) {
		f.file(name, http.DetectContentType(assets[name]), assets[name])
	}
	return g.post(ctx, "/forms/chromium/convert/html", f)
}

// MergePDFs concatenates the documents in order. Gotenberg merges in file
// name order, so parts are numbered.
func (g *GotenbergClient) MergePDFs(ctx context.Context, pdfs [][]byte) ([]byte, error) {
	if len(pdfs) == 1 {
		return pdfs[0], nil
	}
	f := newForm()
	for i, data := range pdfs {
		f.file(fmt.Sprintf("%03d.pdf", i+1), "application/pdf", data)
	}
	return g.post(ctx, "/forms/pdfengines/merge", f)
}

func (g *GotenbergClient) post(ctx context.Context, route string, f *form) ([]byte, error) {
	body, contentType, err := f.close()
	if err != nil {
		return nil, fmt.Errorf("gotenberg %s: %w", route, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+route, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if g.username != "" && g.password != "" {
		req.SetBasicAuth(g.username, g.password)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotenberg %s: %w", route, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxGotenbergError))
		return nil, fmt.Errorf("gotenberg %s: status %d: %s", route, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	out, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes))
	if err != nil {
		return nil, fmt.Errorf("gotenberg %s: read body: %w", route, err)
	}
	return out, nil
}

// form accumulates a multipart body; the first write error sticks and is
// reported by close.
type form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *form {
	f := &form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// field skips empty values so Gotenberg applies its own defaults.
func (f *form) field(name, value string) {
	if f.err != nil || value == "" {
		return
	}
	f.err = f.w.WriteField(name, value)
}

func (f *form) file(name, contentType string, data []byte) {
	if f.err != nil {
		return
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
	h.Set("Content-Type", contentType)
	part, err := f.w.CreatePart(h)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = part.Write(data)
}

func (f *form) close() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.w.Close(); err != nil {
		return nil, "", err
	}
	return &f.buf, f.w.FormDataContentType(), nil
}
