package in

import (
	"context"

	"studylog/internal/modules/session/dto"
)

type Usecase interface {
	Log(ctx context.Context, input dto.LogInput) (dto.LogOutput, error)
	List(ctx context.Context, ownerID string) ([]dto.SessionOutput, error)
	ListAll(ctx context.Context) ([]dto.SessionOutput, error)
	// Get with an empty ownerID looks the session up across all owners.
	Get(ctx context.Context, ownerID, id string) (dto.SessionOutput, error)
	// Delete removes every id or none. An empty ownerID matches any owner.
	Delete(ctx context.Context, ownerID string, ids ...string) (dto.DeleteOutput, error)
	DeleteOwner(ctx context.Context, ownerID string) (dto.DeleteOutput, error)
	Subjects(ctx context.Context, ownerID string) ([]string, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
