package pdf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"serveportal_backend/internal/affidavits/domain"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
)

// ErrGotenbergUnavailable is returned when markup rendering or merging is
// requested without a configured Gotenberg instance.
var ErrGotenbergUnavailable = errors.New("gotenberg is not configured")

// Image is an embedded picture and its MIME type.
type Image struct {
	Data        []byte
	ContentType string
}

func (i Image) present() bool { return len(i.Data) > 0 }

func (i Image) contentType() string {
	if ct := strings.TrimSpace(i.ContentType); ct != "" {
		return strings.ToLower(ct)
	}
	return http.DetectContentType(i.Data)
}

func (i Image) fileExt() string {
	if strings.Contains(i.contentType(), "png") {
		return ".png"
	}
	return ".jpg"
}

// extension maps the image to a maroto type; ok is false for formats maroto cannot embed.
func (i Image) extension() (extension.Type, bool) {
	switch ct := i.contentType(); {
	case strings.Contains(ct, "png"):
		return extension.Png, true
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return extension.Jpg, true
	default:
		return "", false
	}
}

// Assets are the binary inputs printed alongside the affidavit text.
type Assets struct {
	VerificationCode string
	VerificationURL  string
	QRCode           []byte
	Logo             Image
	Signature        Image
	Photos           []Image
}

// Renderer turns an assembled affidavit into PDF bytes with the pipeline the
// template's mode asks for.
type Renderer struct {
	gotenberg *GotenbergClient
}

// NewRenderer creates a renderer. gotenberg may be nil, in which case only
// structured templates render.
func NewRenderer(gotenberg *GotenbergClient) *Renderer {
	return &Renderer{gotenberg: gotenberg}
}

// Render produces the affidavit PDF.
func (r *Renderer) Render(ctx context.Context, tmpl domain.Template, data domain.AffidavitData, assets Assets) ([]byte, error) {
	switch tmpl.Mode {
	case domain.ModeMarkup:
		if r.gotenberg == nil {
			return nil, ErrGotenbergUnavailable
		}
		index, files, err := RenderMarkupHTML(tmpl.Body, data, assets)
		if err != nil {
			return nil, err
		}
		out, err := r.gotenberg.ConvertHTML(ctx, index, files, AffidavitOpts())
		if err != nil {
			return nil, fmt.Errorf("convert affidavit markup: %w", err)
		}
		return out, nil
	default:
		return GenerateAffidavitPDF(tmpl, data, assets)
	}
}

// Merge appends served documents after the affidavit.
func (r *Renderer) Merge(ctx context.Context, parts [][]byte) ([]byte, error) {
	if len(parts) == 0 {
		return nil, errors.New("nothing to merge")
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	if r.gotenberg == nil {
		return nil, ErrGotenbergUnavailable
	}
	return r.gotenberg.MergePDFs(ctx, parts)
}

// CanMerge reports whether Merge can combine more than one document.
func (r *Renderer) CanMerge() bool { return r.gotenberg != nil }
