package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/platform/sanitize"
)

// contentHeightPt is the printable height of one letter page at AffidavitOpts margins.
const contentHeightPt = 648.0

var markupFuncs = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// ParseMarkup compiles a template body so broken templates are rejected when saved.
func ParseMarkup(body string) (*template.Template, error) {
	t, err := template.New("body").Funcs(markupFuncs).Option("missingkey=zero").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse affidavit markup: %w", err)
	}
	return t, nil
}

var pageShell = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Times New Roman", serif; font-size: 12pt; line-height: 1.5; position: relative; }
.verification { margin-top: 32px; font-size: 9pt; color: #444; }
.verification img { width: 72px; height: 72px; vertical-align: middle; margin-right: 8px; }
.photos img { max-width: 48%; margin: 4px; }
.signature { position: absolute; }
.notary { margin-top: 40px; border-top: 1px solid #000; padding-top: 12px; }
</style>
</head>
<body>
{{if .Logo}}<p><img src="{{.Logo}}" style="max-height:60px"></p>{{end}}
{{.Body}}
{{if .IncludeNotary}}<div class="notary">
<p>Subscribed and sworn to before me on ____________________.</p>
<p>______________________________<br>Notary Public</p>
</div>{{end}}
{{if .Photos}}<div class="photos" style="page-break-before: always">{{range .Photos}}<img src="{{.}}">{{end}}</div>{{end}}
{{if .Signature}}<img class="signature" src="{{.Signature}}" style="{{.SignatureStyle}}">{{end}}
<div class="verification">{{if .QR}}<img src="{{.QR}}">{{end}}Verification code {{.Code}}</div>
</body>
</html>`))

type pageData struct {
	Title          string
	Body           template.HTML
	IncludeNotary  bool
	Logo           string
	Photos         []string
	Signature      string
	SignatureStyle template.CSS
	QR             string
	Code           string
}

// RenderMarkupHTML fills a markup template with data and wraps it in a
// printable page. It returns index.html and the image files it references.
// User-edited markup replaces the template body and is not executed.
func RenderMarkupHTML(body string, data domain.AffidavitData, assets Assets) ([]byte, map[string][]byte, error) {
	var content template.HTML
	if strings.TrimSpace(data.EditedMarkup) != "" {
		content = template.HTML(sanitize.Markup(data.EditedMarkup))
	} else {
		t, err := ParseMarkup(body)
		if err != nil {
			return nil, nil, err
		}
		var buf bytes.Buffer
		if err := t.Execute(&buf, data); err != nil {
			return nil, nil, fmt.Errorf("execute affidavit markup: %w", err)
		}
		content = template.HTML(buf.String())
	}

	files := make(map[string][]byte)
	page := pageData{
		Title:         data.Title,
		Body:          content,
		IncludeNotary: data.IncludeNotary,
		Code:          assets.VerificationCode,
	}
	if len(assets.QRCode) > 0 {
		files["qr.png"] = assets.QRCode
		page.QR = "qr.png"
	}
	if assets.Logo.present() {
		name := "logo" + assets.Logo.fileExt()
		files[name] = assets.Logo.Data
		page.Logo = name
	}
	for i, photo := range assets.Photos {
		if !photo.present() {
			continue
		}
		name := fmt.Sprintf("photo-%02d%s", i+1, photo.fileExt())
		files[name] = photo.Data
		page.Photos = append(page.Photos, name)
	}
	if assets.Signature.present() && data.PlacedSignature != nil {
		name := "signature" + assets.Signature.fileExt()
		files[name] = assets.Signature.Data
		page.Signature = name
		page.SignatureStyle = signatureStyle(*data.PlacedSignature)
	}

	var out bytes.Buffer
	if err := pageShell.Execute(&out, page); err != nil {
		return nil, nil, fmt.Errorf("execute page shell: %w", err)
	}
	return out.Bytes(), files, nil
}

// signatureStyle converts a placement in points on a 1-based page into
// absolute CSS offsets from the top of the document.
func signatureStyle(p domain.SignaturePlacement) template.CSS {
	page := p.Page
	if page < 1 {
		page = 1
	}
	top := p.Y + float64(page-1)*contentHeightPt
	return template.CSS(fmt.Sprintf("left:%.1fpt;top:%.1fpt;width:%.1fpt;height:%.1fpt", p.X, top, p.Width, p.Height))
}
