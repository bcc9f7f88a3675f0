package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Column widths in millimetres on a landscape A4 page (277mm usable).
var pdfColumns = []float64{42, 34, 28, 24, 24, 24, 27, 74}

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 7.0
)

// WritePDF renders doc as a single table, repeating the header row on every
// page.
func WritePDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(139, 92, 246)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range Headers {
			pdf.CellFormat(pdfColumns[i], pdfLineHeight, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(pdfFont, "", 9)
	}
	pdf.SetHeaderFuncMode(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	}, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.Cell(0, 10, tr(doc.Title))
	pdf.Ln(9)
	pdf.SetFont(pdfFont, "", 10)
	if doc.Subtitle != "" {
		pdf.Cell(0, 6, tr(doc.Subtitle))
		pdf.Ln(6)
	}
	if !doc.GeneratedAt.IsZero() {
		pdf.Cell(0, 6, "Generated "+doc.GeneratedAt.Format("2006-01-02 15:04 MST"))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	header()
	if len(doc.Rows) == 0 {
		pdf.CellFormat(0, pdfLineHeight, "No approved leave in this period.", "1", 1, "C", false, 0, "")
	}
	for i, r := range doc.Rows {
		fill := i%2 == 1
		pdf.SetFillColor(243, 240, 255)
		for c, cell := range r.cells() {
			align := "L"
			if c == 6 {
				align = "R"
			}
			pdf.CellFormat(pdfColumns[c], pdfLineHeight, tr(fit(pdf, cell, pdfColumns[c]-2)), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// fit truncates s with an ellipsis so it renders within width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
