package service

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"studylog/internal/modules/goal/domain"
	goalout "studylog/internal/modules/goal/port/out"
	"studylog/internal/platform/clock"
)

type GoalService struct {
	clock  clock.Clock
	store  goalout.GoalStore
	logger hclog.Logger
}

func NewGoalService(clock clock.Clock, store goalout.GoalStore, logger hclog.Logger) *GoalService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GoalService{clock: clock, store: store, logger: logger.Named("goal")}
}

// Set overwrites any previous goal of the scope.
func (s *GoalService) Set(ctx context.Context, scope string, hours float64) (domain.Goal, error) {
	if err := domain.ValidateScope(scope); err != nil {
		return domain.Goal{}, err
	}
	if err := domain.ValidateHours(hours); err != nil {
		return domain.Goal{}, err
	}
	goal := domain.Goal{Scope: scope, Hours: hours, UpdatedAt: s.clock.Now()}
	if err := s.store.Upsert(ctx, goal); err != nil {
		return domain.Goal{}, err
	}
	s.logger.Info("goal set", "scope", scope, "hours", hours)
	return goal, nil
}

func (s *GoalService) Get(ctx context.Context, scope string) (domain.Goal, error) {
	if err := domain.ValidateScope(scope); err != nil {
		return domain.Goal{}, err
	}
	return s.store.Find(ctx, scope)
}

func (s *GoalService) Clear(ctx context.Context, scope string) error {
	if err := domain.ValidateScope(scope); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, scope); err != nil {
		return err
	}
	s.logger.Info("goal cleared", "scope", scope)
	return nil
}
