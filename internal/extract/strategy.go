// Package extract turns map text into typed elements.
//
// Every element kind has its own Strategy. Strategies are pure functions of
// the text: they can be applied on their own, in any order, on the same text,
// and never fail. Malformed input is recovered locally and reported as
// model.RecoveryEvent values next to the elements.
package extract

import (
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/recovery"
	"github.com/ja-he/wardmap/internal/syntax"
)

// Result is what a strategy extracts from a text.
type Result[T any] struct {
	Elements []T
	Events   []model.RecoveryEvent
}

// Strategy extracts the elements of one kind from a text.
type Strategy[T any] interface {
	Apply(text string) Result[T]
}

// Options configure the strategies.
type Options struct {
	Policy *recovery.Policy

	// DefaultPoint is used for elements without (readable) coordinates.
	DefaultPoint model.Point
	// DefaultBounds is used for attitude boxes without (readable) bounds.
	DefaultBounds model.Bounds
	// DefaultMaturity is used for pipeline children without (readable)
	// maturity.
	DefaultMaturity float64
}

// DefaultOptions returns the default options: visibility 0.90 and maturity
// 0.10 for points, [0.90, 0.10, 0.70, 0.30] for attitude bounds and a
// maturity of 0.50 for pipeline children.
func DefaultOptions() Options {
	return Options{
		Policy:          recovery.DefaultPolicy(),
		DefaultPoint:    model.Point{Visibility: 0.9, Maturity: 0.1},
		DefaultBounds:   model.Bounds{Visibility1: 0.9, Maturity1: 0.1, Visibility2: 0.7, Maturity2: 0.3},
		DefaultMaturity: 0.5,
	}
}

func (o Options) policy() *recovery.Policy {
	if o.Policy == nil {
		return recovery.DefaultPolicy()
	}
	return o.Policy
}

// point reads a statement's [visibility, maturity] bracket, falling back to
// the default point when the bracket is missing or unreadable.
func (o Options) point(kind model.Kind, line int, tok syntax.Line, events *[]model.RecoveryEvent) model.Point {
	if !tok.HasBracket {
		return o.DefaultPoint
	}
	p, err := syntax.ParsePoint(tok.Bracket)
	if err != nil {
		*events = append(*events, o.policy().Coordinates(kind, line, tok.Bracket, syntax.FormatPoint(o.DefaultPoint), err))
		return o.DefaultPoint
	}
	return p
}

// name applies the recovery policy to a name field.
func (o Options) name(kind model.Kind, line int, field string, events *[]model.RecoveryEvent) string {
	name, evs := o.policy().Name(kind, line, field)
	*events = append(*events, evs...)
	return name
}

// statements calls fn for every top-level statement with the given
// keywords, skipping comments and the insides of pipeline blocks.
func statements(text string, keywords map[string]bool, fn func(line int, tok syntax.Line)) {
	lines := syntax.SplitLines(text)
	inside := blockLines(scanBlocks(lines))
	for i, raw := range lines {
		n := i + 1
		if inside[n] || syntax.IsComment(raw) {
			continue
		}
		tok := syntax.Tokenize(raw)
		if keywords[tok.Keyword] {
			fn(n, tok)
		}
	}
}

func only(keywords ...string) map[string]bool {
	m := map[string]bool{}
	for _, k := range keywords {
		m[k] = true
	}
	return m
}
