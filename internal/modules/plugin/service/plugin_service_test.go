package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studylog/internal/modules/plugin/domain"
	"studylog/internal/modules/plugin/service"
	apperrors "studylog/internal/platform/errors"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	commands []domain.CommandDescriptor
	requests *[]domain.RunRequest
}

func (fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}
func (h fakeHost) ListCommands(context.Context, domain.Manifest) ([]domain.CommandDescriptor, error) {
	return h.commands, nil
}
func (h fakeHost) Run(_ context.Context, _ domain.Manifest, request domain.RunRequest) (domain.RunResult, error) {
	if h.requests != nil {
		*h.requests = append(*h.requests, request)
	}
	return domain.RunResult{Stdout: "ok"}, nil
}

func manifestWithBinary(t *testing.T, enabled bool, capabilities ...domain.Capability) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      enabled,
		Capabilities: capabilities,
	}
}

func TestDoctorReportsEveryManifest(t *testing.T) {
	t.Parallel()
	good := manifestWithBinary(t, true, domain.CapabilityReport)
	tampered := manifestWithBinary(t, true, domain.CapabilityReport)
	tampered.Name = "tampered"
	tampered.SHA256 = strings.Repeat("0", 64)
	missing := manifestWithBinary(t, true, domain.CapabilityReport)
	missing.Name = "missing"
	missing.Binary = filepath.Join(t.TempDir(), "absent")
	invalid := domain.Manifest{Name: "invalid"}

	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{good, tampered, missing, invalid}}, fakeHost{}, nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected four results, got %d", len(results))
	}
	if !results[0].LifecycleOK || results[0].Err != nil {
		t.Fatalf("expected healthy plugin, got %+v", results[0])
	}
	if results[1].ChecksumValid || !errors.Is(results[1].Err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %+v", results[1])
	}
	if results[2].BinaryReachable || results[2].Err == nil {
		t.Fatalf("expected unreachable binary, got %+v", results[2])
	}
	if results[3].Err == nil {
		t.Fatalf("expected validation error, got %+v", results[3])
	}
}

func TestCommandResolution(t *testing.T) {
	t.Parallel()
	commands := []domain.CommandDescriptor{{ID: "digest", Kind: domain.CapabilityReport}, {ID: "echo", Kind: domain.CapabilityCommand}}
	ctx := context.Background()

	disabled := manifestWithBinary(t, false, domain.CapabilityReport)
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{disabled}}, fakeHost{commands: commands}, nil)
	if _, _, err := svc.Command(ctx, "demo", "digest"); !errors.Is(err, domain.ErrPluginDisabled) {
		t.Fatalf("expected ErrPluginDisabled, got %v", err)
	}
	if _, _, err := svc.Command(ctx, "nope", "digest"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	reportOnly := manifestWithBinary(t, true, domain.CapabilityReport)
	svc = service.NewPluginService(fakeStore{manifests: []domain.Manifest{reportOnly}}, fakeHost{commands: commands}, nil)
	if _, _, err := svc.Command(ctx, "demo", "echo"); !errors.Is(err, domain.ErrCapabilityMissing) {
		t.Fatalf("expected ErrCapabilityMissing, got %v", err)
	}
	if _, _, err := svc.Command(ctx, "demo", "summarize"); !errors.Is(err, domain.ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound, got %v", err)
	}
	_, command, err := svc.Command(ctx, "demo", "digest")
	if err != nil || command.ID != "digest" {
		t.Fatalf("expected digest command, got %+v (%v)", command, err)
	}
}

func TestRunValidatesInputAndAppliesTimeout(t *testing.T) {
	t.Parallel()
	var requests []domain.RunRequest
	manifest := manifestWithBinary(t, true, domain.CapabilityCommand)
	command := domain.CommandDescriptor{ID: "echo", Kind: domain.CapabilityCommand, TimeoutMS: 1200}
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{requests: &requests}, nil)
	ctx := context.Background()

	if _, err := svc.Run(ctx, manifest, command, domain.RunRequest{InputJSON: "{", Context: domain.RunContext{VaultPath: "/vault"}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid json error, got %v", err)
	}
	if _, err := svc.Run(ctx, manifest, command, domain.RunRequest{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected missing vault error, got %v", err)
	}
	out, err := svc.Run(ctx, manifest, command, domain.RunRequest{InputJSON: `{"v":1}`, Context: domain.RunContext{VaultPath: "/vault"}})
	if err != nil || out.Stdout != "ok" {
		t.Fatalf("run: %+v (%v)", out, err)
	}
	if len(requests) != 1 || requests[0].CommandID != "echo" || requests[0].Timeout.Milliseconds() != 1200 {
		t.Fatalf("unexpected host requests %+v", requests)
	}
}
