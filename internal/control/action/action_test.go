package action_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ja-he/wardmap/internal/control/action"
	"github.com/ja-he/wardmap/internal/extract"
	"github.com/ja-he/wardmap/internal/history"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/mutate"
)

func TestSimpleInterface(t *testing.T) {

	t.Run("Do(/Undo)", func(t *testing.T) {
		becomesTrue := false
		a := func() { becomesTrue = true }

		s := action.NewSimple(func() string { return "sets flag to true" }, a)
		s.Do()

		if !becomesTrue {
			t.Error("action was not executed properly (flag unchanged)")
		}

		s.Undo()
		if !becomesTrue {
			t.Error("undo did something?!")
		}
	})

	t.Run("Undoable", func(t *testing.T) {
		s := action.NewSimple(func() string { return "does nothing" }, func() {})
		if s.Undoable() {
			t.Error("simple action claims to be undoable")
		}
	})

	t.Run("Explain", func(t *testing.T) {
		e := "does nothing"
		s := action.NewSimple(func() string { return e }, func() {})
		if s.Explain() != "does nothing" {
			t.Error("initial explanation wrong:", s.Explain())
		}
		e = "does nothing, very well"
		if s.Explain() != "does nothing, very well" {
			t.Error("changed explanation wrong:", s.Explain())
		}
	})

}

func TestEdit(t *testing.T) {
	engine := mutate.NewEngine(extract.DefaultOptions(), mutate.DefaultMinBoxSize)

	t.Run("nudges coalesce into one step", func(t *testing.T) {
		h := history.NewManager("component A [0.50, 0.50]", history.Options{MaxSize: 10, Debounce: time.Hour})
		defer h.Close()

		v := 0.5
		nudge := action.NewEdit(engine, h,
			func() (mutate.Op, bool) {
				v += 0.1
				return mutate.Move{Ref: mutate.ElementRef{Kind: model.KindComponent, Line: 1}, Coords: mutate.Coords{v, 0.5}}, true
			},
			func() string { return "nudge-1" },
			nil,
		)
		if !nudge.Undoable() {
			t.Fatal("edit claims not to be undoable")
		}

		nudge.Do()
		nudge.Do()
		if h.Current() != "component A [0.70, 0.50]" {
			t.Errorf("unexpected text after nudges: '%s'", h.Current())
		}
		h.Flush()
		if undo, _ := h.Depth(); undo != 1 {
			t.Errorf("expected one undo step, got %d", undo)
		}

		nudge.Undo()
		if h.Current() != "component A [0.50, 0.50]" {
			t.Errorf("undo did not restore the text: '%s'", h.Current())
		}
	})

	t.Run("rejections are reported", func(t *testing.T) {
		h := history.NewManager("component A [0.50, 0.50]", history.Options{MaxSize: 10})
		var got error
		rename := action.NewEdit(engine, h,
			func() (mutate.Op, bool) {
				return mutate.Rename{Ref: mutate.ElementRef{Kind: model.KindComponent, Line: 2}, Name: "B"}, true
			},
			nil,
			func(err error) { got = err },
		)
		rename.Do()
		if !errors.Is(got, mutate.ErrNotFound) {
			t.Errorf("expected a not-found error, got %v", got)
		}
		if h.CanUndo() {
			t.Error("rejected edit reached the history")
		}
		if rename.Explain() != "rename component on line 2 to 'B'" {
			t.Error("explanation wrong:", rename.Explain())
		}
	})

	t.Run("nothing to do", func(t *testing.T) {
		h := history.NewManager("", history.Options{MaxSize: 10})
		noop := action.NewEdit(engine, h, func() (mutate.Op, bool) { return nil, false }, nil, nil)
		noop.Do()
		if h.CanUndo() {
			t.Error("no-op edit reached the history")
		}
		if noop.Explain() != "nothing to edit" {
			t.Error("explanation wrong:", noop.Explain())
		}
	})
}
