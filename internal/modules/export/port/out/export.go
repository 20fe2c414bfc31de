package out

import (
	"context"

	"studylog/internal/modules/export/domain"
)

type FileSink interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

type DocumentWriter interface {
	WritePDF(ctx context.Context, path string, doc domain.Document) error
}

// DocumentInspector reads an exported document back.
type DocumentInspector interface {
	PageCount(ctx context.Context, path string) (int, error)
}

type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// DashboardStore replaces the generated section of the dashboard note and
// returns the note path.
type DashboardStore interface {
	WriteSection(ctx context.Context, section string) (string, error)
}
