package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"studylog/internal/modules/session/domain"
	sessionout "studylog/internal/modules/session/port/out"
	apperrors "studylog/internal/platform/errors"
)

type SQLiteSessionIndex struct {
	db *sql.DB
}

func NewSQLiteSessionIndex(db *sql.DB) (sessionout.Index, error) {
	index := &SQLiteSessionIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *SQLiteSessionIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  subject TEXT NOT NULL,
  date TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  duration_hours REAL NOT NULL,
  notes TEXT,
  note_path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_owner_date ON sessions(owner_id, date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionIndex) Upsert(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, owner_id, subject, date, start_time, end_time, duration_hours, notes, note_path)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  owner_id=excluded.owner_id,
  subject=excluded.subject,
  date=excluded.date,
  start_time=excluded.start_time,
  end_time=excluded.end_time,
  duration_hours=excluded.duration_hours,
  notes=excluded.notes,
  note_path=excluded.note_path;
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.OwnerID,
		session.Subject,
		session.Date.UTC().Format(time.RFC3339),
		session.StartTime,
		session.EndTime,
		session.DurationHours,
		session.Notes,
		session.NotePath,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, owner_id, subject, date, start_time, end_time, duration_hours, notes, note_path FROM sessions`

// List returns the sessions of ownerID, or of everyone when ownerID is empty.
func (s *SQLiteSessionIndex) List(ctx context.Context, ownerID string) ([]domain.Session, error) {
	query := selectColumns + ` ORDER BY date DESC, id`
	args := []any{}
	if ownerID != "" {
		query = selectColumns + ` WHERE owner_id = ? ORDER BY date DESC, id`
		args = append(args, ownerID)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := []domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (s *SQLiteSessionIndex) Get(ctx context.Context, id string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("session %s: %w", id, apperrors.ErrNotFound)
	}
	return session, err
}

func (s *SQLiteSessionIndex) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionIndex) Subjects(ctx context.Context, ownerID string) ([]string, error) {
	query := `SELECT DISTINCT subject FROM sessions ORDER BY subject`
	args := []any{}
	if ownerID != "" {
		query = `SELECT DISTINCT subject FROM sessions WHERE owner_id = ? ORDER BY subject`
		args = append(args, ownerID)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, subject)
	}
	return out, rows.Err()
}

func (s *SQLiteSessionIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (domain.Session, error) {
	var (
		session domain.Session
		date    string
		notes   sql.NullString
	)
	if err := row.Scan(&session.ID, &session.OwnerID, &session.Subject, &date, &session.StartTime, &session.EndTime, &session.DurationHours, &notes, &session.NotePath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse session date %q: %w", date, err)
	}
	session.Date = parsed
	session.Notes = notes.String
	return session, nil
}
