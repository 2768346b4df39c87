package extract

import (
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// Methods extracts sourcing methods: standalone `buy|build|outsource <name>`
// statements and components decorated with `(buy)`, `(build)` or
// `(outsource)`.
type Methods struct{ Options }

// Apply implements Strategy.
func (s Methods) Apply(text string) Result[model.Method] {
	result := Result[model.Method]{}
	statements(text, only("buy", "build", "outsource", "component"), func(n int, tok syntax.Line) {
		if tok.Keyword == "component" {
			// the component's own anomalies are reported by Components
			discard := []model.RecoveryEvent{}
			d, _ := s.trailing(model.KindComponent, n, tok.Trailing, &discard)
			if m, ok := d.Method(); ok {
				result.Elements = append(result.Elements, model.Method{
					Line:          n,
					Name:          s.name(model.KindComponent, n, tok.Name, &discard),
					Decorator:     m,
					FromComponent: true,
				})
			}
			return
		}
		result.Elements = append(result.Elements, model.Method{
			Line:      n,
			Name:      s.name(model.KindMethod, n, tok.Name, &result.Events),
			Decorator: model.MethodDecorator(tok.Keyword),
		})
	})
	return result
}

// Markets extracts `market` statements and components decorated with
// `(market)`.
type Markets struct{ Options }

// Apply implements Strategy.
func (s Markets) Apply(text string) Result[model.Market] {
	result := Result[model.Market]{}
	s.decorated(text, "market", func(d model.Decorators) bool { return d.Market },
		func(n int, name string, p model.Point, fromComponent bool) {
			result.Elements = append(result.Elements, model.Market{Line: n, Name: name, Point: p, FromComponent: fromComponent})
		}, &result.Events)
	return result
}

// Ecosystems extracts `ecosystem` statements and components decorated with
// `(ecosystem)`.
type Ecosystems struct{ Options }

// Apply implements Strategy.
func (s Ecosystems) Apply(text string) Result[model.Ecosystem] {
	result := Result[model.Ecosystem]{}
	s.decorated(text, "ecosystem", func(d model.Decorators) bool { return d.Ecosystem },
		func(n int, name string, p model.Point, fromComponent bool) {
			result.Elements = append(result.Elements, model.Ecosystem{Line: n, Name: name, Point: p, FromComponent: fromComponent})
		}, &result.Events)
	return result
}

func (s Options) decorated(
	text string,
	keyword string,
	flagged func(model.Decorators) bool,
	emit func(n int, name string, p model.Point, fromComponent bool),
	events *[]model.RecoveryEvent,
) {
	kind := model.Kind(keyword)
	statements(text, only(keyword, "component"), func(n int, tok syntax.Line) {
		if tok.Keyword == "component" {
			discard := []model.RecoveryEvent{}
			d, _ := s.trailing(model.KindComponent, n, tok.Trailing, &discard)
			if flagged(d) {
				emit(n, s.name(model.KindComponent, n, tok.Name, &discard), s.point(model.KindComponent, n, tok, &discard), true)
			}
			return
		}
		emit(n, s.name(kind, n, tok.Name, events), s.point(kind, n, tok, events), false)
	})
}
