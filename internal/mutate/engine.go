// Package mutate edits map text.
//
// Every operation takes the current text and returns a new one which is
// identical except for the lines the operation is about. Rejected operations
// return the original text together with an *Error; nothing is ever written
// half way.
package mutate

import (
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/wardmap/internal/extract"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// DefaultMinBoxSize is the smallest width and height of an attitude box.
const DefaultMinBoxSize = 0.01

// Engine applies mutations. Its zero value is not usable, see NewEngine.
type Engine struct {
	options    extract.Options
	minBoxSize float64
}

// NewEngine returns an engine parsing with the given options and enforcing
// the given minimum attitude box size.
func NewEngine(options extract.Options, minBoxSize float64) *Engine {
	return &Engine{options: options, minBoxSize: minBoxSize}
}

var defaultEngine = NewEngine(extract.DefaultOptions(), DefaultMinBoxSize)

// ElementRef identifies an element by kind and 1-based line. When Name is
// set it must match the element found there, which guards against stale
// references.
type ElementRef struct {
	Kind model.Kind
	Line int
	Name string
}

// Coords are new coordinates in bracket order: [visibility, maturity] for
// points, [v1, m1, v2, m2] for attitude bounds and [maturity] for pipeline
// children and evolutions.
type Coords []float64

// PointCoords returns the coordinates of a point.
func PointCoords(p model.Point) Coords { return Coords{p.Visibility, p.Maturity} }

// BoundsCoords returns the coordinates of attitude bounds.
func BoundsCoords(b model.Bounds) Coords {
	return Coords{b.Visibility1, b.Maturity1, b.Visibility2, b.Maturity2}
}

// MaturityCoords returns a single maturity.
func MaturityCoords(m float64) Coords { return Coords{m} }

func (e *Engine) parse(text string) *model.Map {
	return extract.ParseWith(e.options, text)
}

// resolve checks that the reference points at an existing element and
// returns its current name.
func (e *Engine) resolve(m *model.Map, ref ElementRef) (string, error) {
	name, ok := elementAt(m, ref.Kind, ref.Line)
	if !ok {
		return "", reject(ErrNotFound, "no %s on line %d", ref.Kind, ref.Line)
	}
	if ref.Name != "" && ref.Name != name {
		return "", reject(ErrNotFound, "%s on line %d is '%s', not '%s'", ref.Kind, ref.Line, name, ref.Name)
	}
	return name, nil
}

func elementAt(m *model.Map, kind model.Kind, line int) (string, bool) {
	switch kind {
	case model.KindComponent:
		for _, c := range m.Components {
			if c.Line == line {
				return c.Name, true
			}
		}
	case model.KindNote:
		for _, n := range m.Notes {
			if n.Line == line {
				return n.Text, true
			}
		}
	case model.KindAnchor:
		for _, a := range m.Anchors {
			if a.Line == line {
				return a.Name, true
			}
		}
	case model.KindMarket:
		for _, mk := range m.Markets {
			if mk.Line == line && !mk.FromComponent {
				return mk.Name, true
			}
		}
	case model.KindEcosystem:
		for _, eco := range m.Ecosystems {
			if eco.Line == line && !eco.FromComponent {
				return eco.Name, true
			}
		}
	case model.KindMethod:
		for _, me := range m.Methods {
			if me.Line == line && !me.FromComponent {
				return me.Name, true
			}
		}
	case model.KindPipeline:
		for _, p := range m.Pipelines {
			if p.Line == line {
				return p.Name, true
			}
		}
	case model.KindPipelineComponent:
		for _, p := range m.Pipelines {
			for _, c := range p.Components {
				if c.Line == line {
					return c.Name, true
				}
			}
		}
	case model.KindAttitude:
		for _, a := range m.Attitudes {
			if a.Line == line {
				return a.Name, true
			}
		}
	case model.KindLink:
		for _, l := range m.Links {
			if l.Line == line {
				return l.Start + "->" + l.End, true
			}
		}
	case model.KindEvolution:
		for _, ev := range m.Evolutions {
			if ev.Line == line {
				return ev.Name, true
			}
		}
	case model.KindTitle:
		if m.Title != nil && m.Title.Line == line {
			return m.Title.Text, true
		}
	}
	return "", false
}

func arity(kind model.Kind) int {
	switch kind {
	case model.KindComponent, model.KindNote, model.KindAnchor, model.KindMarket,
		model.KindEcosystem, model.KindPipeline:
		return 2
	case model.KindAttitude:
		return 4
	case model.KindPipelineComponent, model.KindEvolution:
		return 1
	}
	return 0
}

func (e *Engine) validate(kind model.Kind, coords Coords) error {
	want := arity(kind)
	if want == 0 {
		return reject(ErrInvalidCoordinates, "a %s has no coordinates", kind)
	}
	if len(coords) != want {
		return reject(ErrInvalidCoordinates, "a %s takes %d values, got %d", kind, want, len(coords))
	}
	for _, v := range coords {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
			return reject(ErrInvalidCoordinates, "value %v is outside [0,1]", v)
		}
	}
	if kind == model.KindAttitude {
		v1, m1, v2, m2 := coords[0], coords[1], coords[2], coords[3]
		if v1-v2 < e.minBoxSize {
			return reject(ErrInvalidCoordinates, "visibility %s must exceed end visibility %s by at least %s",
				syntax.FormatValue(v1), syntax.FormatValue(v2), syntax.FormatValue(e.minBoxSize))
		}
		if m2-m1 < e.minBoxSize {
			return reject(ErrInvalidCoordinates, "end maturity %s must exceed maturity %s by at least %s",
				syntax.FormatValue(m2), syntax.FormatValue(m1), syntax.FormatValue(e.minBoxSize))
		}
	}
	return nil
}

// UpdateCoordinates rewrites the coordinates of the referenced element,
// always with two decimals. Only the element's line changes.
func (e *Engine) UpdateCoordinates(text string, ref ElementRef, coords Coords) (string, error) {
	if err := e.validate(ref.Kind, coords); err != nil {
		log.Debug().Err(err).Int("line", ref.Line).Msg("rejected coordinate update")
		return text, err
	}

	doc := split(text)
	m := e.parse(doc.join())
	if _, err := e.resolve(m, ref); err != nil {
		return text, err
	}
	raw, _ := doc.line(ref.Line)

	if ref.Kind == model.KindEvolution {
		l, _ := syntax.TokenizeEvolve(raw)
		value := syntax.FormatValue(coords[0])
		if l.HasMaturity {
			raw = syntax.Replace(raw, l.MaturitySpan, value)
		} else {
			raw = strings.TrimRight(raw, " \t") + " " + value
		}
		doc.set(ref.Line, raw)
		return doc.join(), nil
	}

	stripped, _ := extract.StripBlockOpen(raw)
	tok := syntax.Tokenize(stripped)
	bracket := syntax.FormatValues(coords...)
	switch {
	case tok.HasBracket:
		raw = syntax.Replace(raw, tok.BracketSpan, bracket)
	case ref.Kind == model.KindAttitude:
		raw = syntax.Replace(raw, syntax.Span{Start: tok.KeywordSpan.End, End: tok.KeywordSpan.End}, " "+bracket)
	default:
		raw = syntax.Replace(raw, syntax.Span{Start: tok.NameSpan.End, End: tok.NameSpan.End}, " "+bracket)
	}
	doc.set(ref.Line, raw)
	return doc.join(), nil
}

// DeleteLine removes a single line.
func (e *Engine) DeleteLine(text string, line int) (string, error) {
	doc := split(text)
	if _, ok := doc.line(line); !ok {
		return text, reject(ErrInvalidLine, "line %d does not exist", line)
	}
	doc.remove(line, line)
	return doc.join(), nil
}

// DeleteElement removes the referenced element's line. A pipeline is removed
// together with its block.
func (e *Engine) DeleteElement(text string, ref ElementRef) (string, error) {
	doc := split(text)
	m := e.parse(doc.join())
	if _, err := e.resolve(m, ref); err != nil {
		return text, err
	}
	last := ref.Line
	if ref.Kind == model.KindPipeline {
		for _, b := range extract.Blocks(doc.join()) {
			if b.Pipeline == ref.Line {
				last = b.Last
			}
		}
	}
	doc.remove(ref.Line, last)
	return doc.join(), nil
}
