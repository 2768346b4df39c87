package extract_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/wardmap/internal/extract"
	"github.com/ja-he/wardmap/internal/model"
)

const teaShop = `title Tea Shop
anchor Business [0.95, 0.63]
component Cup of Tea [0.79, 0.61] label [19, -4]
component Tea [0.63, 0.81] (buy)
component Kettle [0.43, 0.35] (build) inertia
market Tea Market [0.5, 0.7]
note Standardising power [0.23, 0.33]
// a comment line -> not a link
Business->Cup of Tea
Cup of Tea->>Tea:5
Tea<->Kettle
pipeline Kettle Types [0.57, 0.5]
{
  component Campfire Kettle [0.35]
  component Electric Kettle [0.53] label [-10, 20]
}
pioneers [0.95, 0.1, 0.6, 0.3] Explorers
evolve Kettle -> Electric Kettle 0.62
buy Power
`

func TestParseFullMap(t *testing.T) {
	m := extract.Parse(teaShop)

	assert.Empty(t, m.Events)
	require.NotNil(t, m.Title)
	assert.Equal(t, model.Title{Line: 1, Text: "Tea Shop"}, *m.Title)

	expectedComponents := []model.Component{
		{Line: 3, Name: "Cup of Tea", Point: model.Point{Visibility: 0.79, Maturity: 0.61}, Label: &model.Offset{X: 19, Y: -4}},
		{Line: 4, Name: "Tea", Point: model.Point{Visibility: 0.63, Maturity: 0.81}, Decorators: model.Decorators{Buy: true}},
		{Line: 5, Name: "Kettle", Point: model.Point{Visibility: 0.43, Maturity: 0.35}, Decorators: model.Decorators{Build: true, Inertia: true}},
	}
	if diff := cmp.Diff(expectedComponents, m.Components); diff != "" {
		t.Errorf("components mismatch (-want +got):\n%s", diff)
	}

	expectedMethods := []model.Method{
		{Line: 4, Name: "Tea", Decorator: model.MethodBuy, FromComponent: true},
		{Line: 5, Name: "Kettle", Decorator: model.MethodBuild, FromComponent: true},
		{Line: 19, Name: "Power", Decorator: model.MethodBuy},
	}
	if diff := cmp.Diff(expectedMethods, m.Methods); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []model.Market{{Line: 6, Name: "Tea Market", Point: model.Point{Visibility: 0.5, Maturity: 0.7}}}, m.Markets)
	assert.Equal(t, []model.Note{{Line: 7, Text: "Standardising power", Point: model.Point{Visibility: 0.23, Maturity: 0.33}}}, m.Notes)
	assert.Equal(t, []model.Anchor{{Line: 2, Name: "Business", Point: model.Point{Visibility: 0.95, Maturity: 0.63}}}, m.Anchors)

	expectedLinks := []model.Link{
		{Line: 9, Start: "Business", End: "Cup of Tea"},
		{Line: 10, Start: "Cup of Tea", End: "Tea", Flow: true, FlowValue: "5"},
		{Line: 11, Start: "Tea", End: "Kettle", Bidirectional: true},
	}
	if diff := cmp.Diff(expectedLinks, m.Links); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}

	expectedPipelines := []model.Pipeline{{
		Line:       12,
		Name:       "Kettle Types",
		Point:      model.Point{Visibility: 0.57, Maturity: 0.5},
		BlockStart: 13,
		BlockEnd:   16,
		Components: []model.PipelineComponent{
			{Line: 14, Name: "Campfire Kettle", Maturity: 0.35},
			{Line: 15, Name: "Electric Kettle", Maturity: 0.53, Label: &model.Offset{X: -10, Y: 20}},
		},
	}}
	if diff := cmp.Diff(expectedPipelines, m.Pipelines); diff != "" {
		t.Errorf("pipelines mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []model.Attitude{{
		Line:   17,
		Type:   model.AttitudePioneers,
		Bounds: model.Bounds{Visibility1: 0.95, Maturity1: 0.1, Visibility2: 0.6, Maturity2: 0.3},
		Name:   "Explorers",
	}}, m.Attitudes)

	assert.Equal(t, []model.Evolution{{Line: 18, Name: "Kettle", Override: "Electric Kettle", Maturity: 0.62}}, m.Evolutions)

	names := m.Names()
	for _, n := range []string{"Business", "Cup of Tea", "Tea", "Kettle", "Tea Market", "Kettle Types", "Campfire Kettle", "Electric Kettle"} {
		assert.True(t, names[n], "missing name %q", n)
	}
}

func TestComponentScenarios(t *testing.T) {
	s := extract.Components{Options: extract.DefaultOptions()}

	t.Run("multi-line quoted name", func(t *testing.T) {
		r := s.Apply(`component "Multi-line\nComponent\nName" [0.3, 0.8]`)
		require.Len(t, r.Elements, 1)
		assert.Equal(t, "Multi-line\nComponent\nName", r.Elements[0].Name)
		assert.Equal(t, model.Point{Visibility: 0.3, Maturity: 0.8}, r.Elements[0].Point)
		assert.Empty(t, r.Events)
	})

	t.Run("missing name", func(t *testing.T) {
		r := s.Apply("component [0.5, 0.5]")
		require.Len(t, r.Elements, 1)
		assert.Equal(t, "Recovered Component Name", r.Elements[0].Name)
		assert.Equal(t, model.Point{Visibility: 0.5, Maturity: 0.5}, r.Elements[0].Point)
		require.Len(t, r.Events, 1)
		assert.Equal(t, model.ReasonEmptyName, r.Events[0].Reason)
		assert.Equal(t, 1, r.Events[0].Line)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		r := s.Apply(`component "Kettle [0.4, 0.5]`)
		require.Len(t, r.Elements, 1)
		assert.Equal(t, "Kettle", r.Elements[0].Name)
		assert.Equal(t, model.Point{Visibility: 0.4, Maturity: 0.5}, r.Elements[0].Point)
		require.Len(t, r.Events, 1)
		assert.Equal(t, model.ReasonUnterminatedQuote, r.Events[0].Reason)
		assert.Equal(t, model.SeverityWarn, r.Events[0].Severity)
	})

	t.Run("invalid escape", func(t *testing.T) {
		r := s.Apply(`component "Ke\xttle" [0.4, 0.5]`)
		require.Len(t, r.Elements, 1)
		assert.Equal(t, "Kexttle", r.Elements[0].Name)
		require.Len(t, r.Events, 1)
		assert.Equal(t, model.ReasonInvalidEscape, r.Events[0].Reason)
		assert.Equal(t, model.SeverityInfo, r.Events[0].Severity)
	})

	t.Run("syntax-breaking name", func(t *testing.T) {
		r := s.Apply("component \"()\" [0.4, 0.5]\ncomponent ) [0.1, 0.2]")
		require.Len(t, r.Elements, 2)
		for _, c := range r.Elements {
			assert.Equal(t, "Component", c.Name)
		}
		require.Len(t, r.Events, 2)
		assert.Equal(t, model.ReasonSyntaxBreakingChars, r.Events[1].Reason)
		assert.Equal(t, 2, r.Events[1].Line)
	})

	t.Run("non-numeric coordinates", func(t *testing.T) {
		r := s.Apply("component X [abc, 0.2]")
		require.Len(t, r.Elements, 1)
		assert.Equal(t, extract.DefaultOptions().DefaultPoint, r.Elements[0].Point)
		require.Len(t, r.Events, 1)
		assert.Equal(t, model.ReasonInvalidCoordinates, r.Events[0].Reason)
	})

	t.Run("no coordinates", func(t *testing.T) {
		r := s.Apply("component X")
		require.Len(t, r.Elements, 1)
		assert.Equal(t, "X", r.Elements[0].Name)
		assert.Equal(t, extract.DefaultOptions().DefaultPoint, r.Elements[0].Point)
		assert.Empty(t, r.Events)
	})

	t.Run("out of range coordinates are clamped", func(t *testing.T) {
		r := s.Apply("component X [1.4, -0.2]")
		require.Len(t, r.Elements, 1)
		assert.Equal(t, model.Point{Visibility: 1, Maturity: 0}, r.Elements[0].Point)
	})

	t.Run("keywords are case-sensitive", func(t *testing.T) {
		assert.Empty(t, s.Apply("Component X [0.1, 0.2]").Elements)
	})
}

func TestUnterminatedPipelineBlock(t *testing.T) {
	text := "pipeline P [0.5, 0.5]\n{\n  component A [0.3]\nnote After [0.1, 0.2]\ncomponent B [0.4, 0.6]\n"
	m := extract.Parse(text)

	require.Len(t, m.Pipelines, 1)
	assert.Equal(t, "P", m.Pipelines[0].Name)
	assert.Empty(t, m.Pipelines[0].Components)
	assert.Zero(t, m.Pipelines[0].BlockStart)

	require.Len(t, m.Events, 1)
	assert.Equal(t, model.ReasonUnterminatedBlock, m.Events[0].Reason)
	assert.Equal(t, 1, m.Events[0].Line)

	require.Len(t, m.Notes, 1)
	assert.Equal(t, 4, m.Notes[0].Line)
	require.Len(t, m.Components, 1)
	assert.Equal(t, "B", m.Components[0].Name)
}

func TestInlinePipelineBlock(t *testing.T) {
	text := "pipeline P [0.5, 0.5] {\n  component A [0.3]\n}\ncomponent A2 [0.1, 0.2]"
	m := extract.Parse(text)
	require.Len(t, m.Pipelines, 1)
	assert.Equal(t, "P", m.Pipelines[0].Name)
	assert.Equal(t, 1, m.Pipelines[0].BlockStart)
	assert.Equal(t, 3, m.Pipelines[0].BlockEnd)
	require.Len(t, m.Pipelines[0].Components, 1)
	assert.Equal(t, 0.3, m.Pipelines[0].Components[0].Maturity)
	require.Len(t, m.Components, 1)
	assert.Equal(t, "A2", m.Components[0].Name)
}

func TestStrategiesArePure(t *testing.T) {
	o := extract.DefaultOptions()
	first := extract.Links{Options: o}.Apply(teaShop)
	_ = extract.Components{Options: o}.Apply(teaShop)
	_ = extract.Pipelines{Options: o}.Apply(teaShop)
	second := extract.Links{Options: o}.Apply(teaShop)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated application differs:\n%s", diff)
	}
}

func TestEmptyInput(t *testing.T) {
	m := extract.Parse("")
	assert.Nil(t, m.Title)
	assert.Empty(t, m.Components)
	assert.Empty(t, m.Links)
	assert.Empty(t, m.Events)
}

func TestQuotedLinkEndpoints(t *testing.T) {
	r := extract.Links{Options: extract.DefaultOptions()}.Apply(`"A->B"->"C\nD"`)
	require.Len(t, r.Elements, 1)
	assert.Equal(t, "A->B", r.Elements[0].Start)
	assert.Equal(t, "C\nD", r.Elements[0].End)
}

func TestParserCache(t *testing.T) {
	p := extract.NewParser(extract.DefaultOptions(), 2)
	a := p.Parse(teaShop)
	b := p.Parse(teaShop)
	assert.Same(t, a, b)
	c := p.Parse(teaShop + "note more [0.1, 0.1]\n")
	assert.NotSame(t, a, c)
	assert.Len(t, c.Notes, 2)
	hits, misses := p.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestPipelineAt(t *testing.T) {
	m := extract.Parse(teaShop)

	assert.NotNil(t, extract.PipelineAt(m, model.Point{Visibility: 0.55, Maturity: 0.4}))
	assert.NotNil(t, extract.PipelineAt(m, model.Point{Visibility: 0.52, Maturity: 0.4}), "below within tolerance")
	assert.Nil(t, extract.PipelineAt(m, model.Point{Visibility: 0.60, Maturity: 0.4}), "above beyond tolerance")
	assert.Nil(t, extract.PipelineAt(m, model.Point{Visibility: 0.50, Maturity: 0.4}), "below beyond tolerance")
	assert.Nil(t, extract.PipelineAt(m, model.Point{Visibility: 0.57, Maturity: 0.9}), "outside maturity range")
}
