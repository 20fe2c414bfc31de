package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"studylog/internal/modules/session/domain"
	sessionout "studylog/internal/modules/session/port/out"
	apperrors "studylog/internal/platform/errors"
	"studylog/internal/platform/id"
)

type LogRequest struct {
	OwnerID       string
	Subject       string
	CustomSubject string
	Date          time.Time
	StartTime     string
	EndTime       string
	Notes         string
}

type SessionService struct {
	idGen  id.Generator
	loc    *time.Location
	notes  sessionout.NoteStore
	index  sessionout.Index
	logger hclog.Logger
}

func NewSessionService(idGen id.Generator, loc *time.Location, notes sessionout.NoteStore, index sessionout.Index, logger hclog.Logger) *SessionService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SessionService{idGen: idGen, loc: loc, notes: notes, index: index, logger: logger.Named("session")}
}

func (s *SessionService) Log(ctx context.Context, req LogRequest) (domain.Session, error) {
	if req.OwnerID == "" {
		return domain.Session{}, apperrors.ErrUnauthenticated
	}
	if req.Date.IsZero() {
		return domain.Session{}, fmt.Errorf("%w: date is required", apperrors.ErrInvalidInput)
	}
	subject, err := domain.ResolveSubject(req.Subject, req.CustomSubject)
	if err != nil {
		return domain.Session{}, err
	}
	hours, err := domain.DurationHours(req.StartTime, req.EndTime)
	if err != nil {
		return domain.Session{}, err
	}
	startMin, _ := domain.ParseClock(req.StartTime)
	day := req.Date.In(s.loc)

	session := domain.Session{
		ID:            s.idGen.New(),
		OwnerID:       req.OwnerID,
		Subject:       subject,
		Date:          time.Date(day.Year(), day.Month(), day.Day(), startMin/60, startMin%60, 0, 0, s.loc),
		StartTime:     strings.TrimSpace(req.StartTime),
		EndTime:       strings.TrimSpace(req.EndTime),
		DurationHours: hours,
		Notes:         strings.TrimSpace(req.Notes),
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}
	path, err := s.notes.Save(ctx, session)
	if err != nil {
		return domain.Session{}, err
	}
	session.NotePath = path
	if err := s.index.Upsert(ctx, session); err != nil {
		if rmErr := s.notes.Remove(ctx, path); rmErr != nil {
			s.logger.Warn("note left without index row, run reindex", "path", path, "error", rmErr)
		}
		return domain.Session{}, fmt.Errorf("index session %s: %w", session.ID, err)
	}
	s.logger.Info("session logged", "id", session.ID, "owner", session.OwnerID, "subject", session.Subject, "hours", session.DurationHours)
	return session, nil
}

func (s *SessionService) List(ctx context.Context, ownerID string) ([]domain.Session, error) {
	sessions, err := s.index.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		sessions[i].Date = sessions[i].Date.In(s.loc)
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].Date.After(sessions[j].Date) })
	return sessions, nil
}

func (s *SessionService) Get(ctx context.Context, ownerID, id string) (domain.Session, error) {
	session, err := s.index.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if ownerID != "" && session.OwnerID != ownerID {
		return domain.Session{}, fmt.Errorf("session %s: %w", id, apperrors.ErrNotFound)
	}
	session.Date = session.Date.In(s.loc)
	return session, nil
}

// Delete checks every id before removing anything.
func (s *SessionService) Delete(ctx context.Context, ownerID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one session id is required", apperrors.ErrInvalidInput)
	}
	targets := make([]domain.Session, 0, len(ids))
	seen := map[string]struct{}{}
	for _, sessionID := range ids {
		if _, dup := seen[sessionID]; dup {
			continue
		}
		seen[sessionID] = struct{}{}
		session, err := s.Get(ctx, ownerID, sessionID)
		if err != nil {
			return 0, err
		}
		targets = append(targets, session)
	}
	return s.remove(ctx, targets)
}

func (s *SessionService) DeleteOwner(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("%w: owner id is required", apperrors.ErrInvalidInput)
	}
	sessions, err := s.index.List(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return s.remove(ctx, sessions)
}

func (s *SessionService) remove(ctx context.Context, sessions []domain.Session) (int, error) {
	ids := make([]string, 0, len(sessions))
	for _, session := range sessions {
		if err := s.notes.Remove(ctx, session.NotePath); err != nil {
			return 0, err
		}
		ids = append(ids, session.ID)
	}
	if err := s.index.Delete(ctx, ids...); err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		s.logger.Info("sessions deleted", "count", len(ids))
	}
	return len(ids), nil
}

func (s *SessionService) Subjects(ctx context.Context, ownerID string) ([]string, error) {
	return s.index.Subjects(ctx, ownerID)
}

// Reindex rebuilds the index from the vault notes.
func (s *SessionService) Reindex(ctx context.Context) (int, error) {
	sessions, err := s.notes.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.index.Reset(ctx); err != nil {
		return 0, err
	}
	for _, session := range sessions {
		if err := s.index.Upsert(ctx, session); err != nil {
			return 0, err
		}
	}
	s.logger.Info("index rebuilt", "sessions", len(sessions))
	return len(sessions), nil
}

