// Package pdf renders affidavits of service. Structured templates are laid
// out with maroto/v2; markup templates are filled with html/template and
// printed by Gotenberg, which also merges served documents into the result.
package pdf

import (
	"fmt"
	"strings"

	"serveportal_backend/internal/affidavits/domain"
	jobdomain "serveportal_backend/internal/jobs/domain"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Colour palette ──────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}
	colorSecondary = &props.Color{Red: 75, Green: 85, Blue: 99}
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249}
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251}
	colorBorder    = &props.Color{Red: 203, Green: 213, Blue: 225}
)

var methodLabels = map[jobdomain.ServiceMethod]string{
	jobdomain.MethodPersonal:     "personal delivery to the recipient",
	jobdomain.MethodResidence:    "substitute service at the recipient's usual place of abode",
	jobdomain.MethodOrganization: "delivery to a person authorized to accept service for the organization",
	jobdomain.MethodOther:        "other means",
}

// GenerateAffidavitPDF lays out a structured affidavit.
func GenerateAffidavitPDF(tmpl domain.Template, data domain.AffidavitData, assets Assets) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(22).
		WithTopMargin(18).
		WithRightMargin(22).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(buildFooter(data, assets)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(buildHeader(tmpl, data, assets)...)
	m.AddRows(buildCaption(data)...)
	m.AddRows(row.New(6))

	m.AddRows(buildDeclarant(tmpl, data)...)
	m.AddRows(row.New(4))

	if data.ServiceStatus == jobdomain.OutcomeServed {
		m.AddRows(buildServiceStatement(data)...)
	} else {
		m.AddRows(buildDueDiligence(data)...)
	}

	if len(data.DocumentsServed) > 0 {
		m.AddRows(row.New(4))
		m.AddRows(buildDocumentsBlock(data.DocumentsServed)...)
	}

	m.AddRows(row.New(8))
	m.AddRows(buildSignatureBlock(data, assets)...)

	if data.IncludeNotary {
		m.AddRows(row.New(8))
		m.AddRows(buildNotaryBlock(data)...)
	}

	if rows := buildPhotoRows(assets.Photos); len(rows) > 0 {
		m.AddRows(row.New(8))
		m.AddRows(rows...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Header ──────────────────────────────────────────────────────────────

func buildHeader(tmpl domain.Template, data domain.AffidavitData, assets Assets) []core.Row {
	var rows []core.Row

	if data.IncludeCompanyInfo {
		left := col.New(4)
		if ext, ok := assets.Logo.extension(); ok && assets.Logo.present() {
			left.Add(image.NewFromBytes(assets.Logo.Data, ext, props.Rect{Percent: 85}))
		} else {
			left.Add(text.New(data.CompanyName, props.Text{Size: 11, Style: fontstyle.Bold, Color: colorPrimary, Top: 2}))
		}
		right := col.New(8).Add(
			text.New(data.CompanyName, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary}),
			text.New(data.CompanyAddress, props.Text{Size: 8, Align: align.Right, Color: colorSecondary, Top: 4}),
			text.New(joinParts([]string{data.CompanyPhone, data.CompanyEmail}, "  |  "), props.Text{Size: 8, Align: align.Right, Color: colorSecondary, Top: 8}),
		)
		rows = append(rows, row.New(16).Add(left, right), row.New(4))
	}

	rows = append(rows,
		row.New(9).Add(col.New(12).Add(text.New(data.Title, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Center,
			Color: colorPrimary,
		}))),
		row.New(6).Add(col.New(12).Add(text.New(tmpl.Name, props.Text{
			Size:  8,
			Align: align.Center,
			Color: colorSecondary,
		}))),
	)
	return rows
}

// ── Caption ─────────────────────────────────────────────────────────────

func buildCaption(data domain.AffidavitData) []core.Row {
	venue := joinParts([]string{upper(data.CourtName), countyLine(data)}, ", ")
	return []core.Row{
		row.New(1).WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorBorder}),
		row.New(3),
		row.New(6).Add(col.New(12).Add(text.New(venue, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center, Color: colorPrimary}))),
		row.New(12).Add(
			col.New(8).Add(
				text.New(data.Plaintiff+", Plaintiff,", props.Text{Size: 9, Color: colorPrimary}),
				text.New("v. "+data.Defendant+", Defendant.", props.Text{Size: 9, Color: colorPrimary, Top: 5}),
			),
			col.New(4).Add(
				text.New("Case No.", props.Text{Size: 8, Align: align.Right, Color: colorSecondary}),
				text.New(data.CaseNumber, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary, Top: 4}),
			),
		),
		row.New(1).WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorBorder}),
	}
}

func countyLine(data domain.AffidavitData) string {
	county := strings.TrimSpace(data.CourtCounty)
	if county != "" && !strings.HasSuffix(strings.ToLower(county), "county") {
		county += " County"
	}
	return joinParts([]string{upper(county), upper(data.CourtState)}, ", ")
}

// ── Declarant ───────────────────────────────────────────────────────────

func buildDeclarant(tmpl domain.Template, data domain.AffidavitData) []core.Row {
	intro := fmt.Sprintf("I, %s, being duly sworn, state that I am over the age of eighteen and not a party to this action.", data.ServerName)
	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(text.New(intro, props.Text{Size: 10, Color: colorPrimary}))),
	}
	if data.ServerLicense != "" {
		label := "License No. "
		if strings.EqualFold(tmpl.County, "Cook") {
			label = "Special Process Server License No. "
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(text.New(label+data.ServerLicense, props.Text{Size: 9, Color: colorSecondary}))))
	}
	return rows
}

// ── Service statement ───────────────────────────────────────────────────

func buildServiceStatement(data domain.AffidavitData) []core.Row {
	method := methodLabels[data.ServiceMethod]
	if data.ServiceMethod == jobdomain.MethodOther && data.ServiceTypeDetail != "" {
		method = data.ServiceTypeDetail
	}
	statement := fmt.Sprintf("On %s at %s, at %s, I served %s by %s.",
		data.ServiceDate, data.ServiceTime, data.ServiceAddress, recipientLabel(data), method)

	rows := []core.Row{
		sectionTitle("SERVICE"),
		row.New(12).Add(col.New(12).Add(text.New(statement, props.Text{Size: 10, Color: colorPrimary}))),
	}

	ps := data.PersonServed
	if ps.Name != "" {
		rows = append(rows, labelValue("Person served", joinParts([]string{ps.Name, ps.Relationship}, ", ")))
	}
	if desc := joinParts([]string{prefixed("Sex: ", ps.Sex), prefixed("Age: ", ps.Age), prefixed("Height: ", ps.Height), prefixed("Weight: ", ps.Weight), prefixed("Hair: ", ps.Hair)}, "   "); desc != "" {
		rows = append(rows, labelValue("Description", desc))
	}
	if ps.Description != "" {
		rows = append(rows, labelValue("Notes", ps.Description))
	}
	if data.GPS != nil {
		rows = append(rows, labelValue("GPS", fmt.Sprintf("%.6f, %.6f", data.GPS.Latitude, data.GPS.Longitude)))
	}
	return rows
}

func recipientLabel(data domain.AffidavitData) string {
	if data.RecipientName == "" {
		return "the recipient"
	}
	return data.RecipientName
}

// ── Due diligence ───────────────────────────────────────────────────────

func buildDueDiligence(data domain.AffidavitData) []core.Row {
	intro := fmt.Sprintf("After due search, careful inquiry and diligent attempts, I was unable to serve %s. My attempts were:", recipientLabel(data))
	rows := []core.Row{
		sectionTitle("DUE DILIGENCE"),
		row.New(10).Add(col.New(12).Add(text.New(intro, props.Text{Size: 10, Color: colorPrimary}))),
	}

	head := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	rows = append(rows, row.New(7).Add(
		col.New(2).Add(text.New("Date", head)),
		col.New(2).Add(text.New("Time", head)),
		col.New(4).Add(text.New("Address", head)),
		col.New(4).Add(text.New("Result", head)),
	).WithStyle(&props.Cell{BackgroundColor: colorTableHead, BorderType: border.Bottom, BorderColor: colorBorder}))

	cell := props.Text{Size: 8, Color: colorPrimary, Top: 1}
	for i, a := range data.AttemptHistory {
		result := humanize(a.Status)
		if a.Notes != "" {
			result += ": " + a.Notes
		}
		r := row.New(8).Add(
			col.New(2).Add(text.New(a.Date, cell)),
			col.New(2).Add(text.New(a.Time, cell)),
			col.New(4).Add(text.New(a.Address, cell)),
			col.New(4).Add(text.New(result, cell)),
		)
		if i%2 == 0 {
			r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
		}
		rows = append(rows, r)
	}
	return rows
}

// ── Documents ───────────────────────────────────────────────────────────

func buildDocumentsBlock(titles []string) []core.Row {
	rows := []core.Row{sectionTitle("DOCUMENTS")}
	for _, t := range titles {
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New("•  "+t, props.Text{Size: 9, Color: colorPrimary, Left: 2}))))
	}
	return rows
}

// ── Signature ───────────────────────────────────────────────────────────

func buildSignatureBlock(data domain.AffidavitData, assets Assets) []core.Row {
	declaration := "I declare under penalty of perjury under the laws of the State of " +
		firstOr(data.CourtState, "the forum") + " that the foregoing is true and correct."
	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(text.New(declaration, props.Text{Size: 9, Color: colorPrimary}))),
	}

	if ext, ok := assets.Signature.extension(); ok && assets.Signature.present() {
		rows = append(rows, row.New(20).Add(
			col.New(5).Add(image.NewFromBytes(assets.Signature.Data, ext, props.Rect{Percent: 90})),
			col.New(7),
		))
	} else {
		rows = append(rows, row.New(14))
	}

	rows = append(rows,
		row.New(1).Add(col.New(5).WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorPrimary}), col.New(7)),
		row.New(5).Add(col.New(12).Add(text.New(data.ServerName, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary, Top: 1}))),
	)
	if data.ServerAddress != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(data.ServerAddress, props.Text{Size: 8, Color: colorSecondary}))))
	}
	return rows
}

func buildNotaryBlock(data domain.AffidavitData) []core.Row {
	venue := joinParts([]string{"State of " + firstOr(data.CourtState, "____________"), "County of " + firstOr(data.CourtCounty, "____________")}, ", ")
	return []core.Row{
		row.New(1).WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorBorder}),
		row.New(3),
		row.New(6).Add(col.New(12).Add(text.New(venue, props.Text{Size: 9, Color: colorPrimary}))),
		row.New(8).Add(col.New(12).Add(text.New("Subscribed and sworn to before me on ____________________ by "+data.ServerName+".", props.Text{Size: 9, Color: colorPrimary}))),
		row.New(14),
		row.New(1).Add(col.New(5).WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorPrimary}), col.New(7)),
		row.New(5).Add(col.New(12).Add(text.New("Notary Public", props.Text{Size: 8, Color: colorSecondary, Top: 1}))),
	}
}

// ── Photos ──────────────────────────────────────────────────────────────

func buildPhotoRows(photos []Image) []core.Row {
	var cols []core.Col
	for _, p := range photos {
		ext, ok := p.extension()
		if !ok || !p.present() {
			continue
		}
		cols = append(cols, col.New(6).Add(image.NewFromBytes(p.Data, ext, props.Rect{Percent: 95, Center: true})))
	}
	if len(cols) == 0 {
		return nil
	}

	rows := []core.Row{sectionTitle("PHOTOGRAPHS")}
	for i := 0; i < len(cols); i += 2 {
		end := min(i+2, len(cols))
		rows = append(rows, row.New(70).Add(cols[i:end]...))
	}
	return rows
}

// ── Footer (registered, repeats on every page) ──────────────────────────

func buildFooter(data domain.AffidavitData, assets Assets) core.Row {
	label := joinParts([]string{data.CaseNumber, prefixed("Verification ", assets.VerificationCode), assets.VerificationURL}, "  ·  ")

	r := row.New(14)
	if len(assets.QRCode) > 0 {
		r.Add(
			col.New(10).Add(text.New(label, props.Text{Size: 6.5, Color: colorSecondary, Top: 6})),
			col.New(2).Add(image.NewFromBytes(assets.QRCode, extension.Png, props.Rect{Percent: 100, Center: true})),
		)
	} else {
		r.Add(col.New(12).Add(text.New(label, props.Text{Size: 6.5, Color: colorSecondary, Align: align.Center, Top: 6})))
	}
	return r.WithStyle(&props.Cell{BorderType: border.Top, BorderColor: colorBorder})
}

// ── Helpers ─────────────────────────────────────────────────────────────

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(title, props.Text{Size: 8, Style: fontstyle.Bold, Color: colorSecondary, Top: 1})))
}

func labelValue(label, value string) core.Row {
	return row.New(6).Add(
		col.New(3).Add(text.New(label, props.Text{Size: 8, Color: colorSecondary})),
		col.New(9).Add(text.New(value, props.Text{Size: 9, Color: colorPrimary})),
	)
}

func humanize(status string) string {
	s := strings.ReplaceAll(status, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func prefixed(prefix, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return prefix + strings.TrimSpace(value)
}

func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func firstOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func joinParts(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}
