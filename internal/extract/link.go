package extract

import (
	"strconv"

	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// Links extracts link statements (`A->B`, `A->>B`, `A->>B:value`,
// `A<->B`).
type Links struct{ Options }

// Apply implements Strategy.
func (s Links) Apply(text string) Result[model.Link] {
	result := Result[model.Link]{}
	lines := syntax.SplitLines(text)
	inside := BlockLines(text)
	for i, raw := range lines {
		n := i + 1
		if inside[n] {
			continue
		}
		l, ok := syntax.TokenizeLink(raw)
		if !ok {
			continue
		}
		link := model.Link{
			Line:          n,
			Start:         s.name(model.KindLink, n, l.Start, &result.Events),
			End:           s.name(model.KindLink, n, l.End, &result.Events),
			Flow:          l.Flow(),
			Bidirectional: l.Bidirectional(),
		}
		if l.HasValue {
			link.FlowValue = l.Value
		}
		result.Elements = append(result.Elements, link)
	}
	return result
}

// Evolutions extracts `evolve <name> [-> <override>] <maturity>`
// statements.
type Evolutions struct{ Options }

// Apply implements Strategy.
func (s Evolutions) Apply(text string) Result[model.Evolution] {
	result := Result[model.Evolution]{}
	statements(text, only("evolve"), func(n int, tok syntax.Line) {
		l, _ := syntax.TokenizeEvolve(tok.Raw)
		e := model.Evolution{
			Line:     n,
			Name:     s.name(model.KindEvolution, n, l.Name, &result.Events),
			Maturity: s.DefaultPoint.Maturity,
		}
		if l.HasOverride {
			e.Override = s.name(model.KindEvolution, n, l.Override, &result.Events)
		}
		if l.HasMaturity {
			m, _ := strconv.ParseFloat(l.Maturity, 64)
			e.Maturity = syntax.Clamp(m)
		} else {
			result.Events = append(result.Events,
				s.policy().Coordinates(model.KindEvolution, n, "", syntax.FormatValue(e.Maturity), nil))
		}
		result.Elements = append(result.Elements, e)
	})
	return result
}
