package out

import (
	"context"

	"github.com/atotto/clipboard"

	exportout "studylog/internal/modules/export/port/out"
)

type SystemClipboard struct{}

// NewSystemClipboard returns nil when the platform has no clipboard tool.
func NewSystemClipboard() exportout.Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return SystemClipboard{}
}

func (SystemClipboard) Copy(_ context.Context, text string) error {
	return clipboard.WriteAll(text)
}
