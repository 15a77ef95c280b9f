package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

var inline = goldmark.New()

// InlineHTML converts a Markdown fragment to HTML on a single line so it can
// sit inside a table cell. Conversion errors fall back to the flattened source.
func InlineHTML(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := inline.Convert([]byte(md), &buf); err != nil {
		return OneLine(md)
	}
	return strings.TrimSpace(strings.ReplaceAll(buf.String(), "\n", " "))
}

// OneLine replaces line breaks with spaces.
func OneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// Cell prepares text for a table cell: one line, pipes escaped.
func Cell(s string) string {
	return strings.ReplaceAll(OneLine(s), "|", `\|`)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Tidy collapses runs of blank lines into one, drops trailing whitespace and
// leading/trailing blank lines, and leaves fenced code blocks untouched.
func Tidy(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	pendingBlank := false

	for _, line := range lines {
		if inFence {
			out = append(out, line)
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				inFence = false
			}
			continue
		}

		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			pendingBlank = len(out) > 0
			continue
		}
		if pendingBlank {
			out = append(out, "")
			pendingBlank = false
		}
		out = append(out, trimmed)
		if strings.HasPrefix(strings.TrimSpace(trimmed), "```") {
			inFence = true
		}
	}

	return strings.Join(out, "\n") + "\n"
}
