package extract

import (
	"strings"

	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// Components extracts top-level `component` statements.
type Components struct{ Options }

// Apply implements Strategy.
func (s Components) Apply(text string) Result[model.Component] {
	result := Result[model.Component]{}
	statements(text, only("component"), func(n int, tok syntax.Line) {
		c := model.Component{
			Line:  n,
			Name:  s.name(model.KindComponent, n, tok.Name, &result.Events),
			Point: s.point(model.KindComponent, n, tok, &result.Events),
		}
		c.Decorators, c.Label = s.trailing(model.KindComponent, n, tok.Trailing, &result.Events)
		result.Elements = append(result.Elements, c)
	})
	return result
}

// trailing reads decorators (`(buy)`, `(market, inertia)`, `inertia`) and a
// `label [dx, dy]` offset from the text after a statement's bracket.
func (s Options) trailing(kind model.Kind, n int, trailing string, events *[]model.RecoveryEvent) (model.Decorators, *model.Offset) {
	var d model.Decorators
	var label *model.Offset

	rest := trailing
	if idx := strings.Index(rest, "label"); idx >= 0 {
		l := syntax.Tokenize(rest[idx:])
		if l.Keyword == "label" && l.HasBracket {
			o, err := syntax.ParseOffset(l.Bracket)
			if err != nil {
				*events = append(*events, s.policy().Coordinates(kind, n, l.Bracket, "no label offset", err))
			} else {
				label = &o
			}
			rest = rest[:idx] + l.Trailing
		}
	}

	words := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '(' || r == ')' || r == ',' || r == ' ' || r == '\t'
	})
	for _, w := range words {
		switch w {
		case "buy":
			d.Buy = true
		case "build":
			d.Build = true
		case "outsource":
			d.Outsource = true
		case "market":
			d.Market = true
		case "ecosystem":
			d.Ecosystem = true
		case "inertia":
			d.Inertia = true
		}
	}
	return d, label
}
