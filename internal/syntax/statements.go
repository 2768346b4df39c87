package syntax

import (
	"strconv"
	"strings"
)

// Keywords are the statement keywords of the language. A line starting with
// anything else is a link if it contains a link operator.
var Keywords = map[string]bool{
	"title":        true,
	"component":    true,
	"note":         true,
	"anchor":       true,
	"market":       true,
	"ecosystem":    true,
	"buy":          true,
	"build":        true,
	"outsource":    true,
	"pipeline":     true,
	"pioneers":     true,
	"settlers":     true,
	"townplanners": true,
	"evolve":       true,
	// understood by other tools, ignored here
	"evolution":   true,
	"style":       true,
	"annotation":  true,
	"annotations": true,
	"url":         true,
	"submap":      true,
	"size":        true,
}

// SplitLines splits text into lines, accepting LF, CRLF and lone CR endings.
// A trailing line ending does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := []string{}
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// LinkLine is a tokenized link statement.
type LinkLine struct {
	Start     string
	StartSpan Span
	End       string
	EndSpan   Span

	// Operator is one of "->", "->>" and "<->".
	Operator string

	HasValue  bool
	Value     string
	ValueSpan Span
}

// Flow tells whether the link is a flow link (`->>`).
func (l LinkLine) Flow() bool { return l.Operator == "->>" }

// Bidirectional tells whether the link goes both ways (`<->`).
func (l LinkLine) Bidirectional() bool { return l.Operator == "<->" }

// TokenizeLink reads a link statement: `A->B`, `A->>B`, `A->>B:value` or
// `A<->B`, endpoints optionally quoted. It reports false for lines that are
// keyword statements, comments or contain no link operator.
func TokenizeLink(line string) (LinkLine, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || IsComment(trimmed) || Keywords[Keyword(line)] {
		return LinkLine{}, false
	}

	i := skipSpace(line, 0)
	opStart, op := findOperator(line, i)
	if opStart < 0 {
		return LinkLine{}, false
	}
	result := LinkLine{Operator: op}

	startEnd := trimRightIndex(line, i, opStart)
	result.Start = line[i:startEnd]
	result.StartSpan = Span{i, startEnd}

	endStart := skipSpace(line, opStart+len(op))
	endEnd := trimRightIndex(line, endStart, len(line))
	if op == "->>" {
		if colon := indexOutsideQuotes(line, endStart, ':'); colon >= 0 && colon < endEnd {
			result.HasValue = true
			valueStart := skipSpace(line, colon+1)
			result.Value = line[valueStart:endEnd]
			result.ValueSpan = Span{valueStart, endEnd}
			endEnd = trimRightIndex(line, endStart, colon)
		}
	}
	result.End = line[endStart:endEnd]
	result.EndSpan = Span{endStart, endEnd}

	return result, true
}

func findOperator(s string, from int) (int, string) {
	for j := from; j < len(s); j++ {
		if s[j] == '"' {
			if e := ScanQuoted(s, j); e > 0 {
				j = e - 1
				continue
			}
		}
		rest := s[j:]
		switch {
		case strings.HasPrefix(rest, "<->"):
			return j, "<->"
		case strings.HasPrefix(rest, "->>"):
			return j, "->>"
		case strings.HasPrefix(rest, "->"):
			return j, "->"
		}
	}
	return -1, ""
}

func indexOutsideQuotes(s string, from int, c byte) int {
	for j := from; j < len(s); j++ {
		if s[j] == '"' {
			if e := ScanQuoted(s, j); e > 0 {
				j = e - 1
				continue
			}
		}
		if s[j] == c {
			return j
		}
	}
	return -1
}

// EvolveLine is a tokenized `evolve <name> [-> <override>] <maturity>`
// statement.
type EvolveLine struct {
	Name     string
	NameSpan Span

	HasOverride  bool
	Override     string
	OverrideSpan Span

	HasMaturity  bool
	Maturity     string
	MaturitySpan Span
}

// TokenizeEvolve reads an evolve statement. It reports false for lines with
// a different keyword.
func TokenizeEvolve(line string) (EvolveLine, bool) {
	tok := Tokenize(line)
	if tok.Keyword != "evolve" {
		return EvolveLine{}, false
	}
	result := EvolveLine{}

	start, end := tok.RestSpan.Start, tok.RestSpan.End
	if idx := strings.Index(line[start:end], " label ["); idx >= 0 {
		end = trimRightIndex(line, start, start+idx)
	}

	// maturity is the last field
	if sp := strings.LastIndexAny(line[start:end], " \t"); sp >= 0 {
		candidate := line[start+sp+1 : end]
		if _, err := strconv.ParseFloat(candidate, 64); err == nil {
			result.HasMaturity = true
			result.Maturity = candidate
			result.MaturitySpan = Span{start + sp + 1, end}
			end = trimRightIndex(line, start, start+sp)
		}
	}

	// name, possibly quoted, up to the override arrow
	nameEnd := -1
	if start < end && line[start] == '"' {
		if e := ScanQuoted(line[:end], start); e > 0 {
			nameEnd = e
		}
	}
	arrow := -1
	if nameEnd >= 0 {
		if idx := strings.Index(line[nameEnd:end], "->"); idx >= 0 {
			arrow = nameEnd + idx
		}
	} else {
		if idx := strings.Index(line[start:end], "->"); idx >= 0 {
			arrow = start + idx
			nameEnd = trimRightIndex(line, start, arrow)
		} else {
			nameEnd = end
		}
	}
	result.Name = line[start:nameEnd]
	result.NameSpan = Span{start, nameEnd}

	if arrow >= 0 {
		oStart := skipSpace(line, arrow+2)
		if oStart > end {
			oStart = end
		}
		result.HasOverride = true
		result.Override = line[oStart:end]
		result.OverrideSpan = Span{oStart, end}
	}

	return result, true
}
