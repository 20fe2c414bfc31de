package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	exportout "studylog/internal/modules/export/port/out"
)

// LocalFileSink resolves relative paths against dir.
type LocalFileSink struct {
	dir string
}

func NewLocalFileSink(dir string) exportout.FileSink {
	return &LocalFileSink{dir: dir}
}

func (s *LocalFileSink) WriteFile(_ context.Context, path string, data []byte) error {
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
