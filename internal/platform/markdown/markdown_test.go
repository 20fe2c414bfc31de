package markdown_test

import (
	"strings"
	"testing"

	"studylog/internal/platform/markdown"
)

type note struct {
	ID       string  `yaml:"id"`
	Duration float64 `yaml:"duration_hours"`
}

func TestFrontmatterRoundTripKeepsBody(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(note{ID: "s-1", Duration: 1.5}, "# Title\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nid: s-1\n") {
		t.Fatalf("unexpected header: %q", rendered)
	}
	var got note
	body, err := markdown.SplitFrontmatter(strings.ReplaceAll(rendered, "\n", "\r\n"), &got)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got.ID != "s-1" || got.Duration != 1.5 {
		t.Fatalf("unexpected decoded note: %+v", got)
	}
	if strings.TrimSpace(body) != "# Title" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitFrontmatterRejectsUnclosedHeader(t *testing.T) {
	t.Parallel()
	var got note
	if _, err := markdown.SplitFrontmatter("---\nid: x\n# no close", &got); err == nil {
		t.Fatalf("expected error for unclosed frontmatter")
	}
}

func TestBlockReplacePreservesUserText(t *testing.T) {
	t.Parallel()
	block := markdown.Block{Start: "<!-- s -->", End: "<!-- e -->"}

	first := block.Replace("My notes\n", "report v1")
	if first != "My notes\n\n<!-- s -->\nreport v1\n<!-- e -->\n" {
		t.Fatalf("unexpected append: %q", first)
	}
	second := block.Replace(first+"footer\n", "report v2\n")
	if !strings.Contains(second, "My notes") || !strings.Contains(second, "footer") {
		t.Fatalf("user text lost: %q", second)
	}
	if strings.Contains(second, "v1") || strings.Count(second, "<!-- s -->") != 1 {
		t.Fatalf("block not replaced in place: %q", second)
	}
	if got := block.Replace("  ", "x"); got != "<!-- s -->\nx\n<!-- e -->\n" {
		t.Fatalf("unexpected empty-body block: %q", got)
	}
}

func TestSplitFrontmatterEdgeCases(t *testing.T) {
	t.Parallel()
	var got note
	body, err := markdown.SplitFrontmatter("---\nid: eof\n---", &got)
	if err != nil || got.ID != "eof" || body != "" {
		t.Fatalf("closing fence at end of file: id=%q body=%q err=%v", got.ID, body, err)
	}
	var untouched note
	body, err = markdown.SplitFrontmatter("# just a note\n", &untouched)
	if err != nil || body != "# just a note\n" || untouched.ID != "" {
		t.Fatalf("note without header: body=%q err=%v", body, err)
	}
}
