package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"studylog/internal/modules/export/domain"
	exportout "studylog/internal/modules/export/port/out"
)

var columnWidths = []float64{24, 36, 16, 16, 20, 78}

const notesWidth = 60

type FPDFWriter struct {
	dir string
}

func NewFPDFWriter(dir string) exportout.DocumentWriter {
	return &FPDFWriter{dir: dir}
}

func (w *FPDFWriter) WritePDF(_ context.Context, path string, doc domain.Document) error {
	if !filepath.IsAbs(path) && w.dir != "" {
		path = filepath.Join(w.dir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	loc := doc.Location
	if loc == nil {
		loc = time.Local
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("studylog", true)
	pdf.SetCreationDate(doc.ExportedAt)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(doc.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr("User: "+doc.UserName))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Exported: "+doc.ExportedAt.Format("2006-01-02 15:04"))
	pdf.Ln(6)
	for _, line := range doc.Metrics {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Summary:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range doc.Report {
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 240)
	for i, head := range domain.TableHeader() {
		pdf.CellFormat(columnWidths[i], 7, head, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range doc.Rows {
		cells := row.Cells(loc)
		cells[len(cells)-1] = truncate(cells[len(cells)-1], notesWidth)
		for i, cell := range cells {
			align := "L"
			if i == 4 {
				align = "R"
			}
			pdf.CellFormat(columnWidths[i], 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
