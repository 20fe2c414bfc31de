package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studylog/internal/modules/goal/domain"
	goalout "studylog/internal/modules/goal/port/out"
	apperrors "studylog/internal/platform/errors"
)

type SQLiteGoalStore struct {
	db *sql.DB
}

func NewSQLiteGoalStore(db *sql.DB) (goalout.GoalStore, error) {
	store := &SQLiteGoalStore{db: db}
	const ddl = `
CREATE TABLE IF NOT EXISTS goals (
  scope TEXT PRIMARY KEY,
  hours REAL NOT NULL CHECK (hours >= 0),
  updated_at TEXT NOT NULL
);
`
	if _, err := db.ExecContext(context.Background(), ddl); err != nil {
		return nil, fmt.Errorf("create goals table: %w", err)
	}
	return store, nil
}

func (s *SQLiteGoalStore) Upsert(ctx context.Context, goal domain.Goal) error {
	const stmt = `
INSERT INTO goals (scope, hours, updated_at) VALUES (?, ?, ?)
ON CONFLICT(scope) DO UPDATE SET hours=excluded.hours, updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, goal.Scope, goal.Hours, goal.UpdatedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

func (s *SQLiteGoalStore) Find(ctx context.Context, scope string) (domain.Goal, error) {
	var (
		goal    = domain.Goal{Scope: scope}
		updated string
	)
	err := s.db.QueryRowContext(ctx, `SELECT hours, updated_at FROM goals WHERE scope = ?`, scope).Scan(&goal.Hours, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, fmt.Errorf("goal %s: %w", scope, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Goal{}, fmt.Errorf("find goal: %w", err)
	}
	goal.UpdatedAt, err = time.Parse(time.RFC3339, updated)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("parse goal time %q: %w", updated, err)
	}
	return goal, nil
}

// Delete is a no-op for scopes without a goal.
func (s *SQLiteGoalStore) Delete(ctx context.Context, scope string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE scope = ?`, scope); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}
