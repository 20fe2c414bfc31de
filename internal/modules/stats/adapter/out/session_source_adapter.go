package out

import (
	"context"

	sessiondto "studylog/internal/modules/session/dto"
	sessionin "studylog/internal/modules/session/port/in"
	"studylog/internal/modules/stats/domain"
	statsout "studylog/internal/modules/stats/port/out"
)

type SessionSourceAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionSourceAdapter(sessions sessionin.Usecase) statsout.SessionSource {
	return &SessionSourceAdapter{sessions: sessions}
}

func (a *SessionSourceAdapter) ListSessions(ctx context.Context, ownerID string) ([]domain.Session, error) {
	sessions, err := a.sessions.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toDomain(sessions), nil
}

func (a *SessionSourceAdapter) ListAllSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := a.sessions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDomain(sessions), nil
}

func toDomain(sessions []sessiondto.SessionOutput) []domain.Session {
	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, domain.Session{
			ID:            s.ID,
			OwnerID:       s.OwnerID,
			Subject:       s.Subject,
			Date:          s.Date,
			StartTime:     s.StartTime,
			EndTime:       s.EndTime,
			DurationHours: s.DurationHours,
			Notes:         s.Notes,
		})
	}
	return out
}
