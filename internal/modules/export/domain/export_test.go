package domain_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"studylog/internal/modules/export/domain"
)

func rows() []domain.Row {
	return []domain.Row{
		{OwnerID: "u-1", Subject: "Math", Date: time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC), StartTime: "09:00", EndTime: "10:30", DurationHours: 1.5, Notes: "limits"},
		{OwnerID: "u-2", Subject: "Art, History", Date: time.Date(2026, 2, 24, 23, 30, 0, 0, time.UTC), StartTime: "23:30", EndTime: "23:50", DurationHours: 1.0 / 3, Notes: `said "hi"`},
		{OwnerID: "u-2", Subject: "Go", Date: time.Date(2026, 2, 25, 8, 0, 0, 0, time.UTC), StartTime: "08:00", EndTime: "09:00", DurationHours: 1},
	}
}

func TestWriteCSVUserVariant(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := domain.WriteCSV(&buf, rows(), false, time.UTC); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	want := "Date,Subject,StartTime,EndTime,Duration,Notes\n" +
		"2026-02-23,Math,09:00,10:30,1.50,\"limits\"\n" +
		"2026-02-24,\"Art, History\",23:30,23:50,0.33,\"said \"\"hi\"\"\"\n" +
		"2026-02-25,Go,08:00,09:00,1.00,\"\"\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s", buf.String())
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output must be valid csv: %v", err)
	}
	if len(records) != 4 || records[2][5] != `said "hi"` {
		t.Fatalf("unexpected parsed records: %q", records)
	}
}

func TestWriteCSVAdminVariantAndLocalDate(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	loc := time.FixedZone("CET", 3600)
	if err := domain.WriteCSV(&buf, rows()[1:2], true, loc); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	want := "OwnerId,Date,Subject,StartTime,EndTime,Duration,Notes\n" +
		"u-2,2026-02-25,\"Art, History\",23:30,23:50,0.33,\"said \"\"hi\"\"\"\n"
	if buf.String() != want {
		t.Fatalf("unexpected admin csv:\n%s", buf.String())
	}
}

func TestFileNames(t *testing.T) {
	t.Parallel()
	if got := domain.CSVFileName("history"); got != "history.csv" {
		t.Fatalf("expected history.csv, got %s", got)
	}
	if got := domain.CSVFileName("history.CSV"); got != "history.CSV" {
		t.Fatalf("expected unchanged name, got %s", got)
	}
	at := time.Date(2026, 2, 25, 14, 5, 9, 0, time.UTC)
	if got := domain.PDFFileName("report", at); got != "report(2026-02-25_14-05-09).pdf" {
		t.Fatalf("unexpected pdf name %s", got)
	}
}

func TestDashboardSection(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 2, 25, 14, 5, 0, 0, time.UTC)
	got := domain.DashboardSection("Ada", at, []string{"You studied most on Monday.", "Your longest session was 2.00 hours."})
	want := "## Study report\n\n_Ada, updated 2026-02-25 14:05_\n\n- You studied most on Monday.\n- Your longest session was 2.00 hours.\n"
	if got != want {
		t.Fatalf("unexpected section:\n%s", got)
	}
	if empty := domain.DashboardSection("Ada", at, nil); empty != "## Study report\n\n_Ada, updated 2026-02-25 14:05_\n\nNo sessions logged yet.\n" {
		t.Fatalf("unexpected empty section:\n%s", empty)
	}
}
