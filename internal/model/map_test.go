package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ja-he/wardmap/internal/model"
)

func teaShop() *model.Map {
	return &model.Map{
		Components: []model.Component{
			{Line: 2, Name: "Business", Decorators: model.Decorators{Market: true}},
			{Line: 3, Name: "Cup of Tea"},
		},
		Markets: []model.Market{
			{Line: 2, Name: "Business", FromComponent: true},
			{Line: 9, Name: "Tea Lovers"},
		},
		Pipelines: []model.Pipeline{
			{
				Line: 4, Name: "Kettle", Point: model.Point{Visibility: 0.57, Maturity: 0.5},
				Components: []model.PipelineComponent{
					{Line: 6, Name: "Campfire", Maturity: 0.35},
					{Line: 7, Name: "Electric", Maturity: 0.53},
				},
			},
		},
		Anchors: []model.Anchor{{Line: 10, Name: "Public"}},
		Notes:   []model.Note{{Line: 11, Text: "Standard"}},
	}
}

func TestDeclarations(t *testing.T) {
	m := teaShop()

	want := []model.Named{
		{Kind: model.KindComponent, Line: 2, Name: "Business"},
		{Kind: model.KindComponent, Line: 3, Name: "Cup of Tea"},
		{Kind: model.KindPipeline, Line: 4, Name: "Kettle"},
		{Kind: model.KindPipelineComponent, Line: 6, Name: "Campfire"},
		{Kind: model.KindPipelineComponent, Line: 7, Name: "Electric"},
		{Kind: model.KindMarket, Line: 9, Name: "Tea Lovers"},
		{Kind: model.KindAnchor, Line: 10, Name: "Public"},
	}
	if diff := cmp.Diff(want, m.Declarations()); diff != "" {
		t.Errorf("declarations differ (-want +got):\n%s", diff)
	}

	t.Run("names", func(t *testing.T) {
		names := m.Names()
		for _, n := range []string{"Business", "Campfire", "Tea Lovers", "Public"} {
			if !names[n] {
				t.Errorf("name '%s' missing", n)
			}
		}
		if names["Standard"] {
			t.Error("notes declare no names")
		}
	})

	t.Run("at line", func(t *testing.T) {
		d, ok := m.DeclarationAt(2)
		if !ok || d.Kind != model.KindComponent {
			t.Errorf("expected the component on line 2, got %v (%t)", d, ok)
		}
		if _, ok := m.DeclarationAt(11); ok {
			t.Error("found a declaration on a note's line")
		}
	})

	t.Run("nil map", func(t *testing.T) {
		var m *model.Map
		if len(m.Declarations()) != 0 || m.PipelineByName("Kettle") != nil {
			t.Error("nil map has contents")
		}
	})
}

func TestPipelines(t *testing.T) {
	m := teaShop()

	p := m.PipelineByName("Kettle")
	if p == nil {
		t.Fatal("pipeline not found")
	}
	if min, max := p.MaturityRange(); min != 0.35 || max != 0.53 {
		t.Errorf("unexpected maturity range [%v, %v]", min, max)
	}
	if m.PipelineByName("Teapot") != nil {
		t.Error("found a pipeline that does not exist")
	}

	empty := model.Pipeline{Point: model.Point{Maturity: 0.4}}
	if min, max := empty.MaturityRange(); min != 0.4 || max != 0.4 {
		t.Errorf("unexpected maturity range of an empty pipeline [%v, %v]", min, max)
	}
}

func TestMethod(t *testing.T) {
	if m, ok := (model.Decorators{Outsource: true, Inertia: true}).Method(); !ok || m != model.MethodOutsource {
		t.Errorf("expected outsource, got '%s' (%t)", m, ok)
	}
	if _, ok := (model.Decorators{Inertia: true}).Method(); ok {
		t.Error("inertia is no method")
	}
}
