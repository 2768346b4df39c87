// Package model holds the element types derived from a map's text.
//
// Elements are disposable: they are produced fresh by every parse and are
// never edited in place. Edits go through the text (see package mutate).
package model

// Kind identifies the kind of a parsed element.
type Kind string

const (
	KindComponent         Kind = "component"
	KindNote              Kind = "note"
	KindMethod            Kind = "method"
	KindMarket            Kind = "market"
	KindEcosystem         Kind = "ecosystem"
	KindPipeline          Kind = "pipeline"
	KindPipelineComponent Kind = "pipeline-component"
	KindAttitude          Kind = "attitude"
	KindAnchor            Kind = "anchor"
	KindLink              Kind = "link"
	KindEvolution         Kind = "evolution"
	KindTitle             Kind = "title"
)

// Point is a position on the map, both values normalized to [0,1].
type Point struct {
	Visibility float64 `yaml:"visibility" json:"visibility"`
	Maturity   float64 `yaml:"maturity" json:"maturity"`
}

// Bounds is the area covered by an attitude box, in bracket order.
// Visibility1/Maturity1 is the top left corner, Visibility2/Maturity2 the
// bottom right one.
type Bounds struct {
	Visibility1 float64 `yaml:"visibility1" json:"visibility1"`
	Maturity1   float64 `yaml:"maturity1" json:"maturity1"`
	Visibility2 float64 `yaml:"visibility2" json:"visibility2"`
	Maturity2   float64 `yaml:"maturity2" json:"maturity2"`
}

// Offset is a label offset relative to its element, in screen units.
type Offset struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Decorators are the trailing flags of a component statement.
type Decorators struct {
	Buy       bool `yaml:"buy,omitempty" json:"buy,omitempty"`
	Build     bool `yaml:"build,omitempty" json:"build,omitempty"`
	Outsource bool `yaml:"outsource,omitempty" json:"outsource,omitempty"`
	Market    bool `yaml:"market,omitempty" json:"market,omitempty"`
	Ecosystem bool `yaml:"ecosystem,omitempty" json:"ecosystem,omitempty"`
	Inertia   bool `yaml:"inertia,omitempty" json:"inertia,omitempty"`
}

// Method returns the sourcing method set by the decorators, if any.
func (d Decorators) Method() (MethodDecorator, bool) {
	switch {
	case d.Buy:
		return MethodBuy, true
	case d.Build:
		return MethodBuild, true
	case d.Outsource:
		return MethodOutsource, true
	}
	return "", false
}

// Component is a `component` statement.
type Component struct {
	Line       int        `yaml:"line" json:"line"`
	Name       string     `yaml:"name" json:"name"`
	Point      Point      `yaml:"point" json:"point"`
	Decorators Decorators `yaml:"decorators" json:"decorators"`
	Label      *Offset    `yaml:"label,omitempty" json:"label,omitempty"`
}

// Note is a `note` statement.
type Note struct {
	Line  int    `yaml:"line" json:"line"`
	Text  string `yaml:"text" json:"text"`
	Point Point  `yaml:"point" json:"point"`
}

// MethodDecorator is one of buy, build and outsource.
type MethodDecorator string

const (
	MethodBuy       MethodDecorator = "buy"
	MethodBuild     MethodDecorator = "build"
	MethodOutsource MethodDecorator = "outsource"
)

// Method is a sourcing method applied to a component, either through a
// standalone `buy X` statement or through a component decorator.
type Method struct {
	Line          int             `yaml:"line" json:"line"`
	Name          string          `yaml:"name" json:"name"`
	Decorator     MethodDecorator `yaml:"decorator" json:"decorator"`
	FromComponent bool            `yaml:"from-component,omitempty" json:"fromComponent,omitempty"`
}

// Market is a `market` statement or a component decorated with `(market)`.
type Market struct {
	Line          int    `yaml:"line" json:"line"`
	Name          string `yaml:"name" json:"name"`
	Point         Point  `yaml:"point" json:"point"`
	FromComponent bool   `yaml:"from-component,omitempty" json:"fromComponent,omitempty"`
}

// Ecosystem is an `ecosystem` statement or a component decorated with
// `(ecosystem)`.
type Ecosystem struct {
	Line          int    `yaml:"line" json:"line"`
	Name          string `yaml:"name" json:"name"`
	Point         Point  `yaml:"point" json:"point"`
	FromComponent bool   `yaml:"from-component,omitempty" json:"fromComponent,omitempty"`
}

// Pipeline is a `pipeline` statement with its optional child block.
//
// BlockStart and BlockEnd are the lines of the braces, zero when the
// pipeline has no (well-formed) block.
type Pipeline struct {
	Line       int                 `yaml:"line" json:"line"`
	Name       string              `yaml:"name" json:"name"`
	Point      Point               `yaml:"point" json:"point"`
	BlockStart int                 `yaml:"block-start,omitempty" json:"blockStart,omitempty"`
	BlockEnd   int                 `yaml:"block-end,omitempty" json:"blockEnd,omitempty"`
	Components []PipelineComponent `yaml:"components,omitempty" json:"components,omitempty"`
}

// MaturityRange returns the smallest and largest child maturity.
// Without children it returns the pipeline's own maturity twice.
func (p *Pipeline) MaturityRange() (min, max float64) {
	if len(p.Components) == 0 {
		return p.Point.Maturity, p.Point.Maturity
	}
	min, max = p.Components[0].Maturity, p.Components[0].Maturity
	for _, c := range p.Components[1:] {
		if c.Maturity < min {
			min = c.Maturity
		}
		if c.Maturity > max {
			max = c.Maturity
		}
	}
	return min, max
}

// PipelineComponent is a child of a pipeline block. It shares the
// pipeline's visibility and only carries a maturity.
type PipelineComponent struct {
	Line     int     `yaml:"line" json:"line"`
	Name     string  `yaml:"name" json:"name"`
	Maturity float64 `yaml:"maturity" json:"maturity"`
	Label    *Offset `yaml:"label,omitempty" json:"label,omitempty"`
}

// AttitudeType is one of pioneers, settlers and townplanners.
type AttitudeType string

const (
	AttitudePioneers     AttitudeType = "pioneers"
	AttitudeSettlers     AttitudeType = "settlers"
	AttitudeTownplanners AttitudeType = "townplanners"
)

// Attitude is an attitude box (`pioneers [v1, m1, v2, m2] name`).
type Attitude struct {
	Line   int          `yaml:"line" json:"line"`
	Type   AttitudeType `yaml:"type" json:"type"`
	Bounds Bounds       `yaml:"bounds" json:"bounds"`
	Name   string       `yaml:"name,omitempty" json:"name,omitempty"`
}

// Anchor is an `anchor` statement.
type Anchor struct {
	Line  int    `yaml:"line" json:"line"`
	Name  string `yaml:"name" json:"name"`
	Point Point  `yaml:"point" json:"point"`
}

// Link connects two named elements.
type Link struct {
	Line          int    `yaml:"line" json:"line"`
	Start         string `yaml:"start" json:"start"`
	End           string `yaml:"end" json:"end"`
	Flow          bool   `yaml:"flow,omitempty" json:"flow,omitempty"`
	FlowValue     string `yaml:"flow-value,omitempty" json:"flowValue,omitempty"`
	Bidirectional bool   `yaml:"bidirectional,omitempty" json:"bidirectional,omitempty"`
}

// Evolution is an `evolve` statement.
type Evolution struct {
	Line     int     `yaml:"line" json:"line"`
	Name     string  `yaml:"name" json:"name"`
	Override string  `yaml:"override,omitempty" json:"override,omitempty"`
	Maturity float64 `yaml:"maturity" json:"maturity"`
}

// Title is the `title` statement.
type Title struct {
	Line int    `yaml:"line" json:"line"`
	Text string `yaml:"text" json:"text"`
}
