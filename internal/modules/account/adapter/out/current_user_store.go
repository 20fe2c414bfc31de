package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	accountout "studylog/internal/modules/account/port/out"
	"studylog/internal/platform/clock"
	apperrors "studylog/internal/platform/errors"
)

type currentUser struct {
	UserID     string    `json:"user_id"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

type FileCurrentUserStore struct {
	path  string
	clock clock.Clock
}

func NewFileCurrentUserStore(stateDir string, clock clock.Clock) accountout.CurrentUserStore {
	return &FileCurrentUserStore{path: filepath.Join(stateDir, "current-user.json"), clock: clock}
}

func (s *FileCurrentUserStore) Save(_ context.Context, userID string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(currentUser{UserID: userID, LoggedInAt: s.clock.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal current user: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write current user: %w", err)
	}
	return nil
}

func (s *FileCurrentUserStore) Load(_ context.Context) (string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrUnauthenticated
		}
		return "", fmt.Errorf("read current user: %w", err)
	}
	current := currentUser{}
	if err := json.Unmarshal(payload, &current); err != nil {
		return "", fmt.Errorf("decode current user: %w", err)
	}
	if current.UserID == "" {
		return "", apperrors.ErrUnauthenticated
	}
	return current.UserID, nil
}

func (s *FileCurrentUserStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}
