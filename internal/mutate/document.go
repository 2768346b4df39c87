package mutate

import (
	"strings"

	"github.com/ja-he/wardmap/internal/syntax"
)

// document is a text split into lines.
//
// The line ending convention is the first ending found in the text; every
// line is joined back with it, so an edited text never has mixed endings.
type document struct {
	lines       []string
	eol         string
	trailingEOL bool
}

func split(text string) document {
	d := document{eol: "\n", lines: syntax.SplitLines(text)}
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		switch {
		case strings.HasPrefix(text[idx:], "\r\n"):
			d.eol = "\r\n"
		case text[idx] == '\r':
			d.eol = "\r"
		}
	}
	d.trailingEOL = strings.HasSuffix(text, "\n") || strings.HasSuffix(text, "\r")
	return d
}

func (d document) join() string {
	s := strings.Join(d.lines, d.eol)
	if d.trailingEOL && len(d.lines) > 0 {
		s += d.eol
	}
	return s
}

// line returns the 1-based line n.
func (d document) line(n int) (string, bool) {
	if n < 1 || n > len(d.lines) {
		return "", false
	}
	return d.lines[n-1], true
}

func (d *document) set(n int, line string) {
	d.lines[n-1] = line
}

// insert places new lines so that the first of them becomes line n.
func (d *document) insert(n int, lines ...string) {
	idx := n - 1
	if idx > len(d.lines) {
		idx = len(d.lines)
	}
	result := make([]string, 0, len(d.lines)+len(lines))
	result = append(result, d.lines[:idx]...)
	result = append(result, lines...)
	result = append(result, d.lines[idx:]...)
	d.lines = result
}

// remove deletes lines first through last (inclusive).
func (d *document) remove(first, last int) {
	d.lines = append(d.lines[:first-1:first-1], d.lines[last:]...)
}

// NormalizeLineEndings rewrites all line endings of a text to the
// convention of its first line ending.
func NormalizeLineEndings(text string) string {
	return split(text).join()
}
