package out

import (
	"context"

	"studylog/internal/modules/session/domain"
)

// NoteStore keeps one markdown note per session; it is the source of truth.
type NoteStore interface {
	Save(ctx context.Context, session domain.Session) (string, error)
	Remove(ctx context.Context, path string) error
	LoadAll(ctx context.Context) ([]domain.Session, error)
}

// Index is the queryable projection of the notes.
type Index interface {
	Upsert(ctx context.Context, session domain.Session) error
	List(ctx context.Context, ownerID string) ([]domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, ids ...string) error
	Subjects(ctx context.Context, ownerID string) ([]string, error)
	Reset(ctx context.Context) error
}
