package domain

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const DocumentTitle = "studylog - History and Statistics"

var (
	csvHeader      = []string{"Date", "Subject", "StartTime", "EndTime", "Duration", "Notes"}
	tableHeader    = []string{"Date", "Subject", "Start", "End", "Duration", "Notes"}
	ownerHeaderCol = "OwnerId"
)

type Row struct {
	OwnerID       string
	Subject       string
	Date          time.Time
	StartTime     string
	EndTime       string
	DurationHours float64
	Notes         string
}

// Cells returns the table cells of r with the date in loc.
func (r Row) Cells(loc *time.Location) []string {
	return []string{
		r.Date.In(loc).Format("2006-01-02"),
		r.Subject,
		r.StartTime,
		r.EndTime,
		fmt.Sprintf("%.2f", r.DurationHours),
		r.Notes,
	}
}

func TableHeader() []string {
	return append([]string(nil), tableHeader...)
}

// WriteCSV writes one line per row. Notes are always quoted; the other
// fields only when they contain a separator, quote or line break.
func WriteCSV(w io.Writer, rows []Row, withOwner bool, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	header := csvHeader
	if withOwner {
		header = append([]string{ownerHeaderCol}, csvHeader...)
	}
	if _, err := io.WriteString(w, strings.Join(header, ",")+"\n"); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		cells := row.Cells(loc)
		fields := make([]string, 0, len(cells)+1)
		if withOwner {
			fields = append(fields, quoteIfNeeded(row.OwnerID))
		}
		for i, cell := range cells {
			if i == len(cells)-1 {
				fields = append(fields, quote(cell))
				continue
			}
			fields = append(fields, quoteIfNeeded(cell))
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsAny(s, ",\"\r\n") || s[0] == ' ' {
		return quote(s)
	}
	return s
}

// CSVFileName appends the .csv extension unless present.
func CSVFileName(base string) string {
	if strings.HasSuffix(strings.ToLower(base), ".csv") {
		return base
	}
	return base + ".csv"
}

// PDFFileName stamps base with the export time: base(2006-01-02_15-04-05).pdf.
func PDFFileName(base string, at time.Time) string {
	base = strings.TrimSuffix(base, ".pdf")
	return fmt.Sprintf("%s(%s).pdf", base, at.Format("2006-01-02_15-04-05"))
}

// Document is everything printed in a PDF export.
type Document struct {
	Title      string
	UserName   string
	ExportedAt time.Time
	Location   *time.Location
	Metrics    []string
	Report     []string
	Rows       []Row
}

// DashboardSection renders the generated part of the vault dashboard note.
func DashboardSection(userName string, at time.Time, report []string) string {
	var b strings.Builder
	b.WriteString("## Study report\n\n")
	fmt.Fprintf(&b, "_%s, updated %s_\n\n", userName, at.Format("2006-01-02 15:04"))
	if len(report) == 0 {
		b.WriteString("No sessions logged yet.\n")
		return b.String()
	}
	for _, line := range report {
		b.WriteString("- " + line + "\n")
	}
	return b.String()
}
