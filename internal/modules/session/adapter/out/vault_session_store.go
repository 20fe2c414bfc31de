package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"studylog/internal/modules/session/domain"
	sessionout "studylog/internal/modules/session/port/out"
	"studylog/internal/platform/markdown"
	"studylog/internal/platform/slug"
)

type frontmatter struct {
	SchemaVersion int     `yaml:"schema_version"`
	ID            string  `yaml:"id"`
	OwnerID       string  `yaml:"owner_id"`
	Subject       string  `yaml:"subject"`
	Date          string  `yaml:"date"`
	StartTime     string  `yaml:"start_time"`
	EndTime       string  `yaml:"end_time"`
	DurationHours float64 `yaml:"duration_hours"`
}

type VaultSessionStore struct {
	vaultPath string
}

func NewVaultSessionStore(vaultPath string) sessionout.NoteStore {
	return &VaultSessionStore{vaultPath: vaultPath}
}

func (s *VaultSessionStore) root() string {
	return filepath.Join(s.vaultPath, "sessions")
}

func (s *VaultSessionStore) Save(_ context.Context, session domain.Session) (string, error) {
	date := session.Date
	dir := filepath.Join(s.root(), slug.Make(session.OwnerID), date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	short := session.ID
	if len(short) > 8 {
		short = short[:8]
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s-%s.md", date.Format("1504"), slug.Make(session.Subject), short))

	meta := frontmatter{
		SchemaVersion: domain.SchemaVersion,
		ID:            session.ID,
		OwnerID:       session.OwnerID,
		Subject:       session.Subject,
		Date:          session.Date.Format(time.RFC3339),
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		DurationHours: session.DurationHours,
	}
	body := fmt.Sprintf("# %s\n\n- Date: %s\n- Time: %s - %s\n- Duration: %.2f hours\n\n## Notes\n\n%s\n",
		session.Subject, date.Format("2006-01-02"), session.StartTime, session.EndTime, session.DurationHours, session.Notes)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

func (s *VaultSessionStore) Remove(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session note: %w", err)
	}
	return nil
}

// LoadAll parses every note under sessions/. Notes that fail validation
// are rejected so the index never holds a broken record.
func (s *VaultSessionStore) LoadAll(_ context.Context) ([]domain.Session, error) {
	var paths []string
	err := filepath.WalkDir(s.root(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("walk session notes: %w", err)
	}
	sort.Strings(paths)

	out := make([]domain.Session, 0, len(paths))
	for _, path := range paths {
		session, err := readNote(path)
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	return out, nil
}

func readNote(path string) (domain.Session, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Session{}, fmt.Errorf("read session note: %w", err)
	}
	meta := frontmatter{}
	body, err := markdown.SplitFrontmatter(string(content), &meta)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse %s: %w", path, err)
	}
	date, err := time.Parse(time.RFC3339, meta.Date)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse %s: date %q: %w", path, meta.Date, err)
	}
	session := domain.Session{
		ID:            meta.ID,
		OwnerID:       meta.OwnerID,
		Subject:       meta.Subject,
		Date:          date,
		StartTime:     meta.StartTime,
		EndTime:       meta.EndTime,
		DurationHours: meta.DurationHours,
		Notes:         notesSection(body),
		NotePath:      path,
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return session, nil
}

// notesSection returns the text under the "## Notes" heading.
func notesSection(body string) string {
	_, after, found := strings.Cut(body, "## Notes\n")
	if !found {
		return ""
	}
	return strings.TrimSpace(after)
}
