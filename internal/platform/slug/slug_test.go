package slug_test

import (
	"testing"

	"studylog/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Matemáticas":      "matematicas",
		"  Física II  ":    "fisica-ii",
		"C++ / Go":         "c-go",
		"":                 "untitled",
		"¿¡!?":             "untitled",
		"Historia Moderna": "historia-moderna",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("slug.Make(%q): expected %q, got %q", in, want, got)
		}
	}
}
