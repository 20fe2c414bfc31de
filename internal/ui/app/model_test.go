package app

import (
	"testing"
	"time"

	accountdto "studylog/internal/modules/account/dto"
)

func TestParseLogCommand(t *testing.T) {
	t.Parallel()
	input, err := parseLogCommand([]string{"Math", "2026-02-23", "09:00", "10:30", "chapter", "4"}, time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if input.Subject != "Math" || input.StartTime != "09:00" || input.EndTime != "10:30" || input.Notes != "chapter 4" {
		t.Fatalf("unexpected input %+v", input)
	}
	if !input.Date.Equal(time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", input.Date)
	}
	if _, err := parseLogCommand([]string{"Math", "23/02/2026", "09:00", "10:00"}, time.UTC); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if _, err := parseLogCommand([]string{"Math"}, time.UTC); err == nil {
		t.Fatalf("expected usage error")
	}
}

func TestAdminTabOnlyForAdministrators(t *testing.T) {
	t.Parallel()
	student := NewModel(Ports{}, accountdto.UserOutput{ID: "u-1", Name: "Ada", Role: "student"}, time.UTC)
	if student.hasAdmin() || len(student.tabs) != 3 {
		t.Fatalf("students must not see the admin tab: %v", student.tabs)
	}
	admin := NewModel(Ports{}, accountdto.UserOutput{ID: "u-0", Name: "Root", Role: "admin"}, time.UTC)
	if !admin.hasAdmin() || admin.tabs[len(admin.tabs)-1] != tabAdmin {
		t.Fatalf("administrators must see the admin tab: %v", admin.tabs)
	}
}

func TestUnknownPaletteCommand(t *testing.T) {
	t.Parallel()
	m := NewModel(Ports{}, accountdto.UserOutput{ID: "u-1", Name: "Ada"}, time.UTC)
	next, cmd := m.executePalette("teleport now")
	if cmd != nil {
		t.Fatalf("unknown commands must not schedule work")
	}
	if got := next.(Model).status; got != "unknown command: teleport" {
		t.Fatalf("unexpected status %q", got)
	}
}
