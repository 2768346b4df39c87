// Package syntax provides the primitives of the map text language: splitting
// a statement line into its fields, decoding and encoding (quoted) names, and
// reading and writing coordinate brackets.
package syntax

import (
	"strings"
	"unicode"
)

// Span is a byte range [Start, End) within a line.
type Span struct {
	Start int
	End   int
}

// Empty tells whether the span covers nothing.
func (s Span) Empty() bool { return s.End <= s.Start }

// Line is a tokenized statement line.
//
// All spans refer to the original, untrimmed line so that edits can replace a
// single field and leave everything else (indentation, spacing, trailing
// decorators) as it was.
type Line struct {
	Raw string

	Keyword     string
	KeywordSpan Span

	// Rest is everything after the keyword, trimmed.
	Rest     string
	RestSpan Span

	// Name is the raw name field: quotes and escapes are kept as written.
	Name     string
	NameSpan Span

	HasBracket  bool
	Bracket     string // contents between the brackets
	BracketSpan Span   // including the brackets

	Trailing     string
	TrailingSpan Span
}

// Indent returns the leading whitespace of the line.
func (l Line) Indent() string {
	return l.Raw[:l.KeywordSpan.Start]
}

// IsComment tells whether the trimmed line is a `//` comment.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}

// Keyword returns the first word of a line (after leading whitespace),
// terminated by whitespace or an opening bracket.
func Keyword(line string) string {
	l := Tokenize(line)
	return l.Keyword
}

// Tokenize splits a statement line into keyword, name field, coordinate
// bracket and trailing text.
//
// A name field starting with a double quote runs to the matching unescaped
// closing quote; if there is none it runs to the next opening bracket. A bare
// name runs up to the first opening bracket, or, when the line has no bracket
// at all, up to the first opening parenthesis (a decorator).
func Tokenize(line string) Line {
	result := Line{Raw: line}

	i := skipSpace(line, 0)
	if i >= len(line) {
		result.KeywordSpan = Span{len(line), len(line)}
		result.RestSpan = result.KeywordSpan
		result.NameSpan = result.KeywordSpan
		result.TrailingSpan = result.KeywordSpan
		return result
	}

	j := i
	for j < len(line) && !isSpace(line[j]) && line[j] != '[' {
		j++
	}
	result.Keyword = line[i:j]
	result.KeywordSpan = Span{i, j}

	k := skipSpace(line, j)
	restEnd := trimRightIndex(line, k, len(line))
	result.Rest = line[k:restEnd]
	result.RestSpan = Span{k, restEnd}

	// name field
	var nameEnd int
	switch {
	case k < len(line) && line[k] == '"':
		if end := ScanQuoted(line, k); end >= 0 {
			nameEnd = end
		} else {
			nameEnd = indexFrom(line, k, '[')
			if nameEnd < 0 {
				nameEnd = len(line)
			}
			nameEnd = trimRightIndex(line, k, nameEnd)
		}
	default:
		nameEnd = indexFrom(line, k, '[')
		if nameEnd < 0 {
			nameEnd = indexFrom(line, k, '(')
		}
		if nameEnd < 0 {
			nameEnd = len(line)
		}
		nameEnd = trimRightIndex(line, k, nameEnd)
	}
	result.Name = line[k:nameEnd]
	result.NameSpan = Span{k, nameEnd}

	// coordinate bracket
	p := skipSpace(line, nameEnd)
	if p < len(line) && line[p] == '[' {
		if q := indexFrom(line, p, ']'); q >= 0 {
			result.HasBracket = true
			result.Bracket = line[p+1 : q]
			result.BracketSpan = Span{p, q + 1}
			p = skipSpace(line, q+1)
		}
	}

	trailingEnd := trimRightIndex(line, p, len(line))
	if p > trailingEnd {
		p = trailingEnd
	}
	result.Trailing = line[p:trailingEnd]
	result.TrailingSpan = Span{p, trailingEnd}

	return result
}

// ScanQuoted returns the index just past the closing quote of the quoted
// string starting at s[start], or -1 if the quote is never closed.
// Backslash escapes are skipped.
func ScanQuoted(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}

// Replace returns line with the given span replaced by replacement.
func Replace(line string, span Span, replacement string) string {
	return line[:span.Start] + replacement + line[span.End:]
}

func isSpace(b byte) bool {
	return b < 0x80 && unicode.IsSpace(rune(b))
}

func skipSpace(s string, from int) int {
	for from < len(s) && isSpace(s[from]) {
		from++
	}
	return from
}

func trimRightIndex(s string, lower, end int) int {
	for end > lower && isSpace(s[end-1]) {
		end--
	}
	return end
}

func indexFrom(s string, from int, c byte) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.IndexByte(s[from:], c)
	if idx < 0 {
		return -1
	}
	return from + idx
}
