package extract

import (
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// Notes extracts `note` statements.
type Notes struct{ Options }

// Apply implements Strategy.
func (s Notes) Apply(text string) Result[model.Note] {
	result := Result[model.Note]{}
	statements(text, only("note"), func(n int, tok syntax.Line) {
		result.Elements = append(result.Elements, model.Note{
			Line:  n,
			Text:  s.name(model.KindNote, n, tok.Name, &result.Events),
			Point: s.point(model.KindNote, n, tok, &result.Events),
		})
	})
	return result
}

// Anchors extracts `anchor` statements.
type Anchors struct{ Options }

// Apply implements Strategy.
func (s Anchors) Apply(text string) Result[model.Anchor] {
	result := Result[model.Anchor]{}
	statements(text, only("anchor"), func(n int, tok syntax.Line) {
		result.Elements = append(result.Elements, model.Anchor{
			Line:  n,
			Name:  s.name(model.KindAnchor, n, tok.Name, &result.Events),
			Point: s.point(model.KindAnchor, n, tok, &result.Events),
		})
	})
	return result
}

// Titles extracts `title` statements. The title text is everything after
// the keyword, brackets included.
type Titles struct{ Options }

// Apply implements Strategy.
func (s Titles) Apply(text string) Result[model.Title] {
	result := Result[model.Title]{}
	statements(text, only("title"), func(n int, tok syntax.Line) {
		result.Elements = append(result.Elements, model.Title{
			Line: n,
			Text: s.name(model.KindTitle, n, tok.Rest, &result.Events),
		})
	})
	return result
}

// Attitudes extracts `pioneers`, `settlers` and `townplanners` boxes.
type Attitudes struct{ Options }

// Apply implements Strategy.
func (s Attitudes) Apply(text string) Result[model.Attitude] {
	result := Result[model.Attitude]{}
	statements(text, only("pioneers", "settlers", "townplanners"), func(n int, tok syntax.Line) {
		a := model.Attitude{
			Line:   n,
			Type:   model.AttitudeType(tok.Keyword),
			Bounds: s.DefaultBounds,
		}
		if tok.HasBracket {
			b, err := syntax.ParseBounds(tok.Bracket)
			if err != nil {
				result.Events = append(result.Events,
					s.policy().Coordinates(model.KindAttitude, n, tok.Bracket, syntax.FormatBounds(s.DefaultBounds), err))
			} else {
				a.Bounds = b
			}
		}
		field := tok.Name
		if field == "" {
			field = tok.Trailing
		}
		name, events := s.policy().Optional(model.KindAttitude, n, field)
		a.Name = name
		result.Events = append(result.Events, events...)
		result.Elements = append(result.Elements, a)
	})
	return result
}
