package out

import (
	"context"
	"fmt"
	"path/filepath"

	"rsc.io/pdf"

	exportout "studylog/internal/modules/export/port/out"
)

type PDFInspector struct {
	dir string
}

func NewPDFInspector(dir string) exportout.DocumentInspector {
	return &PDFInspector{dir: dir}
}

func (i *PDFInspector) PageCount(_ context.Context, path string) (int, error) {
	if !filepath.IsAbs(path) && i.dir != "" {
		path = filepath.Join(i.dir, path)
	}
	doc, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	n := doc.NumPage()
	if n == 0 {
		return 0, fmt.Errorf("pdf %s has no pages", path)
	}
	return n, nil
}
