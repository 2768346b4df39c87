package mutate

import (
	"strings"

	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// Decorator is a component decorator that SetDecorator can toggle.
type Decorator string

const (
	DecoratorBuy       Decorator = "buy"
	DecoratorBuild     Decorator = "build"
	DecoratorOutsource Decorator = "outsource"
	DecoratorMarket    Decorator = "market"
	DecoratorEcosystem Decorator = "ecosystem"
	DecoratorInertia   Decorator = "inertia"
)

// SetDecorator switches a decorator of the referenced component on or off.
//
// Sourcing methods exclude each other, as do market and ecosystem; switching
// one on switches the others off. The decorators are written back in a fixed
// order, a label offset is kept as written.
func (e *Engine) SetDecorator(text string, ref ElementRef, decorator Decorator, on bool) (string, error) {
	if ref.Kind != model.KindComponent {
		return text, reject(ErrInvalidLine, "only components carry decorators, not a %s", ref.Kind)
	}

	doc := split(text)
	m := e.parse(doc.join())
	if _, err := e.resolve(m, ref); err != nil {
		return text, err
	}
	var d model.Decorators
	for _, c := range m.Components {
		if c.Line == ref.Line {
			d = c.Decorators
		}
	}

	switch decorator {
	case DecoratorBuy, DecoratorBuild, DecoratorOutsource:
		if on {
			d.Buy, d.Build, d.Outsource = false, false, false
		}
		switch decorator {
		case DecoratorBuy:
			d.Buy = on
		case DecoratorBuild:
			d.Build = on
		default:
			d.Outsource = on
		}
	case DecoratorMarket, DecoratorEcosystem:
		if on {
			d.Market, d.Ecosystem = false, false
		}
		if decorator == DecoratorMarket {
			d.Market = on
		} else {
			d.Ecosystem = on
		}
	case DecoratorInertia:
		d.Inertia = on
	default:
		return text, reject(ErrInvalidName, "unknown decorator '%s'", decorator)
	}

	raw, _ := doc.line(ref.Line)
	tok := syntax.Tokenize(raw)

	label := ""
	if idx := strings.Index(tok.Trailing, "label"); idx >= 0 {
		if l := syntax.Tokenize(tok.Trailing[idx:]); l.Keyword == "label" && l.HasBracket {
			label = tok.Trailing[idx:]
		}
	}

	trailing := formatDecorators(d)
	if label != "" {
		trailing = strings.TrimSpace(trailing + " " + label)
	}

	from := tok.NameSpan.End
	if tok.HasBracket {
		from = tok.BracketSpan.End
	}
	if trailing != "" {
		trailing = " " + trailing
	}
	doc.set(ref.Line, syntax.Replace(raw, syntax.Span{Start: from, End: tok.TrailingSpan.End}, trailing))
	return doc.join(), nil
}

func formatDecorators(d model.Decorators) string {
	parts := []string{}
	if m, ok := d.Method(); ok {
		parts = append(parts, "("+string(m)+")")
	}
	switch {
	case d.Market:
		parts = append(parts, "(market)")
	case d.Ecosystem:
		parts = append(parts, "(ecosystem)")
	}
	if d.Inertia {
		parts = append(parts, "inertia")
	}
	return strings.Join(parts, " ")
}
