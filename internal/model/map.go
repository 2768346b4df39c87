package model

// Map is the full parse result of a map's text.
type Map struct {
	Title      *Title      `yaml:"title,omitempty" json:"title,omitempty"`
	Components []Component `yaml:"components,omitempty" json:"components,omitempty"`
	Notes      []Note      `yaml:"notes,omitempty" json:"notes,omitempty"`
	Methods    []Method    `yaml:"methods,omitempty" json:"methods,omitempty"`
	Markets    []Market    `yaml:"markets,omitempty" json:"markets,omitempty"`
	Ecosystems []Ecosystem `yaml:"ecosystems,omitempty" json:"ecosystems,omitempty"`
	Pipelines  []Pipeline  `yaml:"pipelines,omitempty" json:"pipelines,omitempty"`
	Attitudes  []Attitude  `yaml:"attitudes,omitempty" json:"attitudes,omitempty"`
	Anchors    []Anchor    `yaml:"anchors,omitempty" json:"anchors,omitempty"`
	Links      []Link      `yaml:"links,omitempty" json:"links,omitempty"`
	Evolutions []Evolution `yaml:"evolutions,omitempty" json:"evolutions,omitempty"`

	Events []RecoveryEvent `yaml:"events,omitempty" json:"events,omitempty"`
}

// Named is a declared, named element as found by Map.Declarations.
type Named struct {
	Kind Kind
	Line int
	Name string
}

// Declarations lists every element that declares a name that links can
// refer to: components, pipeline children, markets, ecosystems, anchors and
// pipelines. Decorator-derived markets and ecosystems are not repeated.
func (m *Map) Declarations() []Named {
	if m == nil {
		return nil
	}
	result := []Named{}
	for _, c := range m.Components {
		result = append(result, Named{KindComponent, c.Line, c.Name})
	}
	for _, p := range m.Pipelines {
		result = append(result, Named{KindPipeline, p.Line, p.Name})
		for _, c := range p.Components {
			result = append(result, Named{KindPipelineComponent, c.Line, c.Name})
		}
	}
	for _, mk := range m.Markets {
		if !mk.FromComponent {
			result = append(result, Named{KindMarket, mk.Line, mk.Name})
		}
	}
	for _, e := range m.Ecosystems {
		if !e.FromComponent {
			result = append(result, Named{KindEcosystem, e.Line, e.Name})
		}
	}
	for _, a := range m.Anchors {
		result = append(result, Named{KindAnchor, a.Line, a.Name})
	}
	return result
}

// Names returns the set of declared names in the whole document, pipeline
// children included.
func (m *Map) Names() map[string]bool {
	names := map[string]bool{}
	for _, d := range m.Declarations() {
		names[d.Name] = true
	}
	return names
}

// DeclarationAt returns the declaration on the given line, if any.
func (m *Map) DeclarationAt(line int) (Named, bool) {
	for _, d := range m.Declarations() {
		if d.Line == line {
			return d, true
		}
	}
	return Named{}, false
}

// PipelineByName returns the first pipeline with the given name.
func (m *Map) PipelineByName(name string) *Pipeline {
	if m == nil {
		return nil
	}
	for i := range m.Pipelines {
		if m.Pipelines[i].Name == name {
			return &m.Pipelines[i]
		}
	}
	return nil
}
