package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 10.0
	pdfBottom     = 15.0
	pdfHeadHeight = 8.0
	pdfRowHeight  = 7.0
	ellipsis      = "..."
)

// PDFExporter renders datasets as a landscape A4 table. The heading row is
// repeated on every page and each page carries a numbered footer.
type PDFExporter struct {
	now func() time.Time
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{now: time.Now}
}

// Render lays data out under title.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("pdf export needs at least one column")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfBottom)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, pageHeight := pdf.GetPageSize()
	usable := pageWidth - 2*pdfMargin
	widths := columnWidths(data.Columns, usable)

	generated := e.now().UTC().Format("2006-01-02 15:04 MST")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfBottom + 3)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(usable/2, 6, "Generated "+generated, "", 0, "L", false, 0, "")
		pdf.CellFormat(usable/2, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	heading := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(235, 235, 235)
		for i, col := range data.Columns {
			pdf.CellFormat(widths[i], pdfHeadHeight, tr(col.heading()), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}

	pdf.AddPage()
	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d record(s)", len(data.Rows)), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}
	heading()

	for _, row := range data.Rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfBottom {
			pdf.AddPage()
			heading()
		}
		for i, col := range data.Columns {
			cell := fitText(pdf, tr(row[col.Key]), widths[i]-2)
			pdf.CellFormat(widths[i], pdfRowHeight, cell, "1", 0, col.Align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(columns []Column, total float64) []float64 {
	sum := 0.0
	weights := make([]float64, len(columns))
	for i, col := range columns {
		weights[i] = col.Weight
		if weights[i] <= 0 {
			weights[i] = 1
		}
		sum += weights[i]
	}
	widths := make([]float64, len(columns))
	for i, w := range weights {
		widths[i] = total * w / sum
	}
	return widths
}

// fitText shortens text with a trailing ellipsis until it fits width in the
// current font.
func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}
