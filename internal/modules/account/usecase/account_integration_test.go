package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	accountout "studylog/internal/modules/account/adapter/out"
	accountdto "studylog/internal/modules/account/dto"
	accountin "studylog/internal/modules/account/port/in"
	accountservice "studylog/internal/modules/account/service"
	accountusecase "studylog/internal/modules/account/usecase"
	goalout "studylog/internal/modules/goal/adapter/out"
	goalin "studylog/internal/modules/goal/port/in"
	goalservice "studylog/internal/modules/goal/service"
	goalusecase "studylog/internal/modules/goal/usecase"
	sessionout "studylog/internal/modules/session/adapter/out"
	sessiondto "studylog/internal/modules/session/dto"
	sessionin "studylog/internal/modules/session/port/in"
	sessionservice "studylog/internal/modules/session/service"
	sessionusecase "studylog/internal/modules/session/usecase"
	statsout "studylog/internal/modules/stats/adapter/out"
	"studylog/internal/modules/stats/domain"
	statsservice "studylog/internal/modules/stats/service"
	statsusecase "studylog/internal/modules/stats/usecase"
	"studylog/internal/platform/clock"
	apperrors "studylog/internal/platform/errors"
	"studylog/internal/platform/logging"
	"studylog/internal/platform/sqlitedb"
)

type seqID struct {
	prefix string
	n      int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("%s-%04d", s.prefix, s.n)
}

type harness struct {
	accounts accountin.Usecase
	sessions sessionin.Usecase
	goals    goalin.Usecase
}

func newHarness(t *testing.T) harness {
	t.Helper()
	vault := t.TempDir()
	stateDir := filepath.Join(vault, ".studylog")
	db, err := sqlitedb.Open(filepath.Join(stateDir, "studylog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	clk := clock.Fixed{At: time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)}
	logger := logging.Discard()

	index, err := sessionout.NewSQLiteSessionIndex(db)
	if err != nil {
		t.Fatalf("session index: %v", err)
	}
	sessions := sessionusecase.NewInteractor(sessionservice.NewSessionService(&seqID{prefix: "sess"}, time.UTC, sessionout.NewVaultSessionStore(vault), index, logger))

	goalStore, err := goalout.NewSQLiteGoalStore(db)
	if err != nil {
		t.Fatalf("goal store: %v", err)
	}
	goals := goalusecase.NewInteractor(goalservice.NewGoalService(clk, goalStore, logger))

	renderer, err := statsout.NewMustacheRenderer("")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	stats := statsusecase.NewInteractor(statsservice.NewStatsService(clk, time.UTC, domain.PeriodMonth,
		statsout.NewSessionSourceAdapter(sessions), statsout.NewGoalSourceAdapter(goals), renderer, nil, logger))

	users, err := accountout.NewSQLiteUserStore(db)
	if err != nil {
		t.Fatalf("user store: %v", err)
	}
	svc := accountservice.NewAccountService(clk, &seqID{prefix: "user"}, users,
		accountout.NewFileCurrentUserStore(stateDir, clk), accountout.NewBcryptHasher(4), logger)
	return harness{
		accounts: accountusecase.NewInteractor(svc, sessions, goals, stats),
		sessions: sessions,
		goals:    goals,
	}
}

func TestRegisterLoginLogoutAndCurrent(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.accounts.Current(ctx); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated before login, got %v", err)
	}
	ada, err := h.accounts.Register(ctx, accountdto.RegisterInput{Name: "Ada", Email: "Ada@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if ada.Role != "student" || ada.Email != "ada@example.com" {
		t.Fatalf("unexpected registered user: %+v", ada)
	}
	current, err := h.accounts.Current(ctx)
	if err != nil || current.ID != ada.ID {
		t.Fatalf("register must log in, got %+v (%v)", current, err)
	}
	if _, err := h.accounts.Register(ctx, accountdto.RegisterInput{Name: "Other", Email: "ada@example.com", Password: "secret2"}); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}

	if err := h.accounts.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := h.accounts.Current(ctx); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated after logout, got %v", err)
	}
	if _, err := h.accounts.Login(ctx, "ada@example.com", "wrong!!"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := h.accounts.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
	if _, err := h.accounts.Login(ctx, "ADA@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestProfileAndPassword(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.accounts.Register(ctx, accountdto.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register bob: %v", err)
	}
	if _, err := h.accounts.Register(ctx, accountdto.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register ada: %v", err)
	}

	if _, err := h.accounts.UpdateProfile(ctx, "", "bob@example.com"); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected taken email error, got %v", err)
	}
	updated, err := h.accounts.UpdateProfile(ctx, "Ada Lovelace", "")
	if err != nil || updated.Name != "Ada Lovelace" || updated.Email != "ada@example.com" {
		t.Fatalf("unexpected profile update %+v (%v)", updated, err)
	}

	if err := h.accounts.ChangePassword(ctx, "wrong", "newsecret"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected old password check, got %v", err)
	}
	if err := h.accounts.ChangePassword(ctx, "secret1", "short"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected short password rejection, got %v", err)
	}
	if err := h.accounts.ChangePassword(ctx, "secret1", "newsecret"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := h.accounts.Login(ctx, "ada@example.com", "newsecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestAdminOperationsAndDeleteCascade(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	seed, err := h.accounts.EnsureAdmin(ctx, "Administrator", "admin@studylog.local", "admin123")
	if err != nil || !seed.Created {
		t.Fatalf("expected admin to be seeded, got %+v (%v)", seed, err)
	}
	again, err := h.accounts.EnsureAdmin(ctx, "Administrator", "admin@studylog.local", "admin123")
	if err != nil || again.Created {
		t.Fatalf("second seed must be a no-op, got %+v (%v)", again, err)
	}

	student, err := h.accounts.Register(ctx, accountdto.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, start := range []string{"09:00", "14:00"} {
		if _, err := h.sessions.Log(ctx, sessiondto.LogInput{OwnerID: student.ID, Subject: "Math", Date: time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), StartTime: start, EndTime: start[:2] + ":45"}); err != nil {
			t.Fatalf("log session: %v", err)
		}
	}
	if _, err := h.goals.Set(ctx, goalin.UserScope(student.ID), 10); err != nil {
		t.Fatalf("set goal: %v", err)
	}

	if _, err := h.accounts.ListUsers(ctx); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("students must not list users, got %v", err)
	}
	if err := h.accounts.DeleteUser(ctx, seed.UserID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("students must not delete users, got %v", err)
	}

	if _, err := h.accounts.Login(ctx, "admin@studylog.local", "admin123"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	users, err := h.accounts.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 || users[1].ID != student.ID || users[1].Sessions != 2 {
		t.Fatalf("unexpected users: %+v", users)
	}
	detail, err := h.accounts.UserDetail(ctx, student.ID)
	if err != nil {
		t.Fatalf("user detail: %v", err)
	}
	if detail.TotalHours != 1.5 || detail.Favorite != "Math" || detail.Sessions != 2 {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	if _, err := h.accounts.SetRole(ctx, seed.UserID, "student"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("last admin must not be demoted, got %v", err)
	}
	promoted, err := h.accounts.SetRole(ctx, student.ID, "admin")
	if err != nil || promoted.Role != "admin" {
		t.Fatalf("promote: %+v (%v)", promoted, err)
	}
	if _, err := h.accounts.SetRole(ctx, student.ID, "student"); err != nil {
		t.Fatalf("demote with another admin left: %v", err)
	}

	if err := h.accounts.DeleteUser(ctx, seed.UserID); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("admin must not delete itself, got %v", err)
	}
	if err := h.accounts.DeleteUser(ctx, "user-9999"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
	if err := h.accounts.DeleteUser(ctx, student.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	left, err := h.sessions.List(ctx, student.ID)
	if err != nil || len(left) != 0 {
		t.Fatalf("expected sessions removed, got %d (%v)", len(left), err)
	}
	if _, err := h.goals.Get(ctx, goalin.UserScope(student.ID)); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected goal removed, got %v", err)
	}
	users, err = h.accounts.ListUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("expected only the admin left, got %+v (%v)", users, err)
	}
}
