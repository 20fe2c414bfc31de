package usecase

import (
	"context"

	"studylog/internal/modules/session/domain"
	sessiondto "studylog/internal/modules/session/dto"
	sessionin "studylog/internal/modules/session/port/in"
	"studylog/internal/modules/session/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Log(ctx context.Context, input sessiondto.LogInput) (sessiondto.LogOutput, error) {
	session, err := i.svc.Log(ctx, service.LogRequest{
		OwnerID:       input.OwnerID,
		Subject:       input.Subject,
		CustomSubject: input.CustomSubject,
		Date:          input.Date,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Notes:         input.Notes,
	})
	if err != nil {
		return sessiondto.LogOutput{}, err
	}
	return sessiondto.LogOutput{
		ID:            session.ID,
		Subject:       session.Subject,
		Date:          session.Date,
		DurationHours: session.DurationHours,
		Path:          session.NotePath,
	}, nil
}

func (i *Interactor) List(ctx context.Context, ownerID string) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toOutputs(sessions), nil
}

func (i *Interactor) ListAll(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return i.List(ctx, "")
}

func (i *Interactor) Get(ctx context.Context, ownerID, id string) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Get(ctx, ownerID, id)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Delete(ctx context.Context, ownerID string, ids ...string) (sessiondto.DeleteOutput, error) {
	n, err := i.svc.Delete(ctx, ownerID, ids)
	if err != nil {
		return sessiondto.DeleteOutput{}, err
	}
	return sessiondto.DeleteOutput{Deleted: n}, nil
}

func (i *Interactor) DeleteOwner(ctx context.Context, ownerID string) (sessiondto.DeleteOutput, error) {
	n, err := i.svc.DeleteOwner(ctx, ownerID)
	if err != nil {
		return sessiondto.DeleteOutput{}, err
	}
	return sessiondto.DeleteOutput{Deleted: n}, nil
}

func (i *Interactor) Subjects(ctx context.Context, ownerID string) ([]string, error) {
	return i.svc.Subjects(ctx, ownerID)
}

func (i *Interactor) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	n, err := i.svc.Reindex(ctx)
	if err != nil {
		return sessiondto.ReindexOutput{}, err
	}
	return sessiondto.ReindexOutput{Indexed: n}, nil
}

func toOutputs(sessions []domain.Session) []sessiondto.SessionOutput {
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toOutput(session))
	}
	return out
}

func toOutput(session domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:            session.ID,
		OwnerID:       session.OwnerID,
		Subject:       session.Subject,
		Date:          session.Date,
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		DurationHours: session.DurationHours,
		Notes:         session.Notes,
		Path:          session.NotePath,
	}
}
