package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth    = 277.0
	minColWidth  = 18.0
	headerHeight = 8.0
	rowHeight    = 7.0
)

// PDFExporter renders datasets into a landscape A4 table.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body. Columns
// are sized in proportion to their longest value.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	widths := columnWidths(data)
	writeHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], headerHeight, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	writeHeader()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range data.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottom {
			pdf.AddPage()
			writeHeader()
		}
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], rowHeight, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(data Dataset) []float64 {
	longest := make([]int, len(data.Headers))
	total := 0
	for i, header := range data.Headers {
		longest[i] = len(header)
		for _, row := range data.Rows {
			if n := len(row[header]); n > longest[i] {
				longest[i] = n
			}
		}
		total += longest[i]
	}

	widths := make([]float64, len(data.Headers))
	flexible := pageWidth - minColWidth*float64(len(widths))
	if flexible < 0 || total == 0 {
		for i := range widths {
			widths[i] = pageWidth / float64(len(widths))
		}
		return widths
	}
	for i := range widths {
		widths[i] = minColWidth + flexible*float64(longest[i])/float64(total)
	}
	return widths
}
