package markdown

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

var errUnterminated = errors.New("frontmatter: missing closing ---")

// SplitFrontmatter decodes the YAML header of a note into out and returns
// the body. A note without a header is returned whole and out is untouched.
// The closing fence may be the last line of the file.
func SplitFrontmatter(content string, out any) (string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	first, rest, ok := strings.Cut(content, "\n")
	if !ok || strings.TrimRight(first, " \t") != fence {
		return content, nil
	}

	var header []string
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t") == fence {
			if err := yaml.Unmarshal([]byte(strings.Join(header, "\n")), out); err != nil {
				return "", fmt.Errorf("decode frontmatter: %w", err)
			}
			return tail, nil
		}
		if !more {
			return "", errUnterminated
		}
		header = append(header, line)
		rest = tail
	}
}

// RenderFrontmatter writes meta as a YAML header followed by a blank line
// and body.
func RenderFrontmatter(meta any, body string) (string, error) {
	var sb strings.Builder
	sb.WriteString(fence + "\n")
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	sb.WriteString(fence + "\n\n")
	sb.WriteString(strings.TrimLeft(body, "\n"))
	return sb.String(), nil
}
