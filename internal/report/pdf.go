// Package report renders comparison tables as downloadable PDF documents.
package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sicurlav/vdtcheck/internal/service"
)

// Scope labels the subject of a report, in the language of the checklist.
type Scope string

const (
	ScopeWorker     Scope = "lavoratore"
	ScopeDepartment Scope = "reparto"
	ScopeSite       Scope = "sede"
	ScopeCompany    Scope = "azienda"
)

const (
	pageLeft    = 14.0
	pageRight   = 196.0
	labelWidth  = 80.0
	lineHeight  = 4.5
	pageBreakAt = 275.0
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Filename builds the download name for a report, e.g.
// report_sede_Sede_Milano_2026-03-10.pdf.
func Filename(scope Scope, identifier string, now time.Time) string {
	id := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(identifier), "_")
	return fmt.Sprintf("report_%s_%s_%s.pdf", scope, id, now.Format("2006-01-02"))
}

// Build renders the table as an A4 portrait PDF. Section rows are grey
// separators, rows whose answers differ between columns get a yellow
// highlight, photo cells are replaced by a marker.
func Build(table *service.ComparisonTable, scope Scope, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(pageLeft, 20)
	pdf.CellFormat(pageRight-pageLeft, 8, tr(fmt.Sprintf("Report %s: %s", scope, table.Title)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetX(pageLeft)
	pdf.CellFormat(pageRight-pageLeft, 6, tr(fmt.Sprintf("Documento generato il %s", generatedAt.Format(service.SubmissionTimeFormat))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	colWidth := (pageRight - pageLeft - labelWidth) / float64(max(len(table.Columns), 1))
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(50, 50, 50)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetX(pageLeft)
		pdf.CellFormat(labelWidth, 6, tr("Domanda"), "1", 0, "L", true, 0, "")
		for _, c := range table.Columns {
			pdf.CellFormat(colWidth, 6, tr(c), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(6)
		pdf.SetTextColor(0, 0, 0)
	}
	writeHeader()

	pdf.SetFont("Helvetica", "", 8)
	stripe := false
	for _, row := range table.Rows {
		if row.SectionTitle != "" {
			if pdf.GetY()+6 > pageBreakAt {
				pdf.AddPage()
				writeHeader()
				pdf.SetFont("Helvetica", "", 8)
			}
			pdf.SetFont("Helvetica", "B", 8)
			pdf.SetFillColor(230, 230, 230)
			pdf.SetX(pageLeft)
			pdf.CellFormat(pageRight-pageLeft, 6, tr(row.SectionTitle), "1", 1, "L", true, 0, "")
			pdf.SetFont("Helvetica", "", 8)
			stripe = false
			continue
		}

		label := tr(row.Label)
		cells := make([]string, len(row.Cells))
		lines := lineCount(pdf, label, labelWidth-2)
		for i, c := range row.Cells {
			v := c.Value
			if c.Image {
				v = "[foto allegata]"
			}
			cells[i] = tr(v)
			if n := lineCount(pdf, cells[i], colWidth-2); n > lines {
				lines = n
			}
		}
		rowHeight := float64(lines)*lineHeight + 1

		if pdf.GetY()+rowHeight > pageBreakAt {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 8)
			stripe = false
		}

		switch {
		case row.Changed:
			pdf.SetFillColor(255, 255, 180)
		case stripe:
			pdf.SetFillColor(245, 245, 245)
		default:
			pdf.SetFillColor(255, 255, 255)
		}
		stripe = !stripe

		x, y := pageLeft, pdf.GetY()
		pdf.Rect(x, y, pageRight-pageLeft, rowHeight, "F")
		pdf.SetXY(x, y)
		pdf.MultiCell(labelWidth, lineHeight, label, "1", "L", false)
		for i, cell := range cells {
			pdf.SetXY(x+labelWidth+float64(i)*colWidth, y)
			pdf.MultiCell(colWidth, lineHeight, cell, "1", "L", false)
		}
		pdf.SetXY(pageLeft, y+rowHeight)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetXY(pageLeft, 290)
	pdf.CellFormat(pageRight-pageLeft, 5, tr(fmt.Sprintf("Generato il %s", generatedAt.Format(service.SubmissionTimeFormat))), "", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lineCount predicts how many lines MultiCell will wrap s onto. The strings
// here are already cp1252-encoded, so measurement goes through
// GetStringWidth, which walks bytes for the core fonts; SplitText would
// decode them as UTF-8 and choke on anything past ASCII.
func lineCount(pdf *fpdf.Fpdf, s string, width float64) int {
	lines := 1
	line := ""
	for _, word := range strings.Split(s, " ") {
		joined := word
		if line != "" {
			joined = line + " " + word
		}
		if pdf.GetStringWidth(joined) <= width {
			line = joined
			continue
		}
		if line != "" {
			lines++
		}
		for pdf.GetStringWidth(word) > width && len(word) > 1 {
			cut := len(word)
			for cut > 1 && pdf.GetStringWidth(word[:cut]) > width {
				cut--
			}
			word = word[cut:]
			lines++
		}
		line = word
	}
	return lines
}
