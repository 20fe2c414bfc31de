package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	pluginout "studylog/internal/modules/plugin/adapter/out"
	"studylog/internal/modules/plugin/domain"
)

func TestGRPCHostIntegrationWeeklyDigest(t *testing.T) {
	binPath, checksum := buildWeeklyDigest(t)
	manifest := domain.Manifest{
		Name:         "weekly-digest",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityReport, domain.CapabilityCommand},
	}

	host := pluginout.NewGRPCHost(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "weekly-digest" || len(metadata.Capabilities) != 2 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}
	commands, err := host.ListCommands(ctx, manifest)
	if err != nil {
		t.Fatalf("list commands: %v", err)
	}
	if len(commands) != 2 || commands[0].ID != "digest" || commands[0].Kind != domain.CapabilityReport {
		t.Fatalf("unexpected commands: %+v", commands)
	}

	avg := 1.5
	input, _ := json.Marshal(domain.StatsInput{
		Period:       "week",
		Sessions:     2,
		TotalHours:   3,
		DailyAverage: &avg,
		MostWeekday:  "Monday",
		Favorite:     "Math",
		Subjects:     []domain.NamedHours{{Name: "Math", Hours: 3}},
	})
	result, err := host.Run(ctx, manifest, domain.RunRequest{
		CommandID: "digest",
		InputJSON: string(input),
		Timeout:   commands[0].Timeout(),
		Context:   domain.RunContext{VaultPath: t.TempDir(), OwnerID: "u-1", Period: "week"},
	})
	if err != nil {
		t.Fatalf("run digest: %v", err)
	}
	if result.ExitCode != 0 || !strings.Contains(result.Stdout, "# Study digest (week)") || !strings.Contains(result.Stdout, "- Math: 3.00 h") {
		t.Fatalf("unexpected digest: %+v", result)
	}
	if result.OutputJSON != `{"sessions":2,"total_hours":3}` {
		t.Fatalf("unexpected output json %s", result.OutputJSON)
	}
}

func buildWeeklyDigest(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "weekly-digest")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/weekly-digest")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build weekly-digest plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
