package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	exportout "studylog/internal/modules/export/port/out"
	"studylog/internal/platform/markdown"
)

const dashboardHeading = "# Dashboard\n"

var reportBlock = markdown.Block{
	Start: "<!-- studylog:report:start -->",
	End:   "<!-- studylog:report:end -->",
}

type VaultDashboardStore struct {
	path string
}

func NewVaultDashboardStore(vaultPath string) exportout.DashboardStore {
	return &VaultDashboardStore{path: filepath.Join(vaultPath, "dashboard.md")}
}

func (s *VaultDashboardStore) WriteSection(_ context.Context, section string) (string, error) {
	body := dashboardHeading
	raw, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		body = string(raw)
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("read dashboard: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return "", fmt.Errorf("create vault dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(reportBlock.Replace(body, section)), 0o644); err != nil {
		return "", fmt.Errorf("write dashboard: %w", err)
	}
	return s.path, nil
}
