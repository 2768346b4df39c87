package extract

import (
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// Pipelines extracts `pipeline` statements together with the child
// components of their blocks.
type Pipelines struct{ Options }

// Apply implements Strategy.
func (s Pipelines) Apply(text string) Result[model.Pipeline] {
	result := Result[model.Pipeline]{}
	lines := syntax.SplitLines(text)

	blocks := map[int]Block{}
	for _, b := range scanBlocks(lines) {
		blocks[b.Pipeline] = b
	}

	statements(text, only("pipeline"), func(n int, _ syntax.Line) {
		raw, _ := StripBlockOpen(lines[n-1])
		tok := syntax.Tokenize(raw)
		p := model.Pipeline{
			Line:  n,
			Name:  s.name(model.KindPipeline, n, tok.Name, &result.Events),
			Point: s.point(model.KindPipeline, n, tok, &result.Events),
		}

		if b, ok := blocks[n]; ok {
			if !b.Terminated() {
				result.Events = append(result.Events, s.policy().Block(n, p.Name, len(b.Children)))
			} else {
				p.BlockStart, p.BlockEnd = b.Open, b.Close
				for _, c := range b.Children {
					p.Components = append(p.Components, s.child(c, lines[c-1], &result.Events))
				}
			}
		}

		result.Elements = append(result.Elements, p)
	})
	return result
}

// child reads `component <name> [<maturity>] [label [dx, dy]]`.
func (s Pipelines) child(n int, raw string, events *[]model.RecoveryEvent) model.PipelineComponent {
	tok := syntax.Tokenize(raw)
	c := model.PipelineComponent{
		Line:     n,
		Name:     s.name(model.KindPipelineComponent, n, tok.Name, events),
		Maturity: s.DefaultMaturity,
	}
	if tok.HasBracket {
		m, err := syntax.ParseSingle(tok.Bracket)
		if err != nil {
			*events = append(*events, s.policy().Coordinates(model.KindPipelineComponent, n, tok.Bracket, syntax.FormatValues(s.DefaultMaturity), err))
		} else {
			c.Maturity = m
		}
	}
	_, c.Label = s.trailing(model.KindPipelineComponent, n, tok.Trailing, events)
	return c
}
