// Package tui implements the terminal map editor.
//
// The editor never edits elements directly: every key bound to an edit builds
// a mutation, applies it to the current text and hands the result to the
// history. What is shown is always the parse result of the history's current
// text.
package tui

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/wardmap/internal/config"
	"github.com/ja-he/wardmap/internal/control/action"
	"github.com/ja-he/wardmap/internal/extract"
	"github.com/ja-he/wardmap/internal/history"
	"github.com/ja-he/wardmap/internal/input"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/mutate"
	"github.com/ja-he/wardmap/internal/potatolog"
)

// Item is a selectable element of the map.
type Item struct {
	Ref    mutate.ElementRef
	Label  string
	Coords mutate.Coords
	// Point is where the item is drawn; Placed is false if it has no place
	// (e.g. an evolution of an unknown component).
	Point  model.Point
	Placed bool
	// Decorators is set for components only.
	Decorators *model.Decorators
}

// Items returns the selectable elements of the map in line order.
func Items(m *model.Map) []Item {
	result := []Item{}
	add := func(kind model.Kind, line int, name, label string, coords mutate.Coords, p model.Point) *Item {
		result = append(result, Item{
			Ref:    mutate.ElementRef{Kind: kind, Line: line, Name: name},
			Label:  label,
			Coords: coords,
			Point:  p,
			Placed: true,
		})
		return &result[len(result)-1]
	}

	visibilities := map[string]float64{}
	for _, c := range m.Components {
		d := c.Decorators
		add(model.KindComponent, c.Line, c.Name, c.Name, mutate.PointCoords(c.Point), c.Point).Decorators = &d
		visibilities[c.Name] = c.Point.Visibility
	}
	for _, p := range m.Pipelines {
		add(model.KindPipeline, p.Line, p.Name, "pipeline "+p.Name, mutate.PointCoords(p.Point), p.Point)
		for _, c := range p.Components {
			point := model.Point{Visibility: p.Point.Visibility, Maturity: c.Maturity}
			add(model.KindPipelineComponent, c.Line, c.Name, c.Name, mutate.MaturityCoords(c.Maturity), point)
			visibilities[c.Name] = p.Point.Visibility
		}
	}
	for _, n := range m.Notes {
		add(model.KindNote, n.Line, "", n.Text, mutate.PointCoords(n.Point), n.Point)
	}
	for _, a := range m.Anchors {
		add(model.KindAnchor, a.Line, a.Name, a.Name, mutate.PointCoords(a.Point), a.Point)
	}
	for _, mk := range m.Markets {
		if !mk.FromComponent {
			add(model.KindMarket, mk.Line, mk.Name, "market "+mk.Name, mutate.PointCoords(mk.Point), mk.Point)
		}
	}
	for _, eco := range m.Ecosystems {
		if !eco.FromComponent {
			add(model.KindEcosystem, eco.Line, eco.Name, "ecosystem "+eco.Name, mutate.PointCoords(eco.Point), eco.Point)
		}
	}
	for _, a := range m.Attitudes {
		b := a.Bounds
		label := string(a.Type)
		if a.Name != "" {
			label += " " + a.Name
		}
		add(model.KindAttitude, a.Line, "", label, mutate.BoundsCoords(b), model.Point{Visibility: b.Visibility1, Maturity: b.Maturity1})
	}
	for _, ev := range m.Evolutions {
		v, ok := visibilities[ev.Name]
		it := add(model.KindEvolution, ev.Line, "", "evolve "+ev.Name, mutate.MaturityCoords(ev.Maturity), model.Point{Visibility: v, Maturity: ev.Maturity})
		it.Placed = ok
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Ref.Line < result[j].Ref.Line })
	return result
}

// nudged shifts coordinates by dv in visibility and dm in maturity. Attitude
// bounds move as a whole. It fails if the shift does not apply or would
// leave the map.
func nudged(c mutate.Coords, dv, dm float64) (mutate.Coords, bool) {
	result := append(mutate.Coords{}, c...)
	switch len(c) {
	case 1:
		if dm == 0 {
			return nil, false
		}
		result[0] += dm
	case 2:
		result[0] += dv
		result[1] += dm
	case 4:
		result[0] += dv
		result[1] += dm
		result[2] += dv
		result[3] += dm
	default:
		return nil, false
	}
	for i, v := range result {
		v = math.Round(v*1e6) / 1e6
		if v < 0 || v > 1 {
			return nil, false
		}
		result[i] = v
	}
	return result, true
}

// Editor is the state of the terminal editor.
type Editor struct {
	configData config.Config
	parser     *extract.Parser
	engine     *mutate.Engine
	history    *history.Manager
	keys       *input.Tree
	logReader  potatolog.LogReader
	save       func(text string) error

	selected int
	// nudges with the same burst coalesce into one history step
	burst string
	saved string

	showLog  bool
	showHelp bool
	status   string
	done     bool
}

// NewEditor returns an editor for the given text. save is called with the
// text to write.
func NewEditor(text string, configData config.Config, save func(text string) error) (*Editor, error) {
	e := &Editor{
		configData: configData,
		parser:     configData.NewParser(),
		engine:     configData.Engine(),
		history:    history.NewManager(text, configData.HistoryOptions()),
		logReader:  potatolog.GlobalMemoryLogReaderWriter,
		save:       save,
		burst:      uuid.NewString(),
		saved:      text,
	}

	keys, err := input.Bindings(configData.Editor.Keys, e.actions())
	if err != nil {
		e.history.Close()
		return nil, fmt.Errorf("invalid key bindings (%w)", err)
	}
	e.keys = keys

	e.history.OnCommit(func(entry history.Entry) {
		log.Debug().Str("action", string(entry.Action)).Str("description", entry.Description).Msg("committed edit")
	})
	return e, nil
}

func (e *Editor) actions() map[string]action.Action {
	step := *e.configData.Editor.NudgeStep
	nudge := func(dv, dm float64) action.Action {
		return action.NewEdit(e.engine, e.history,
			func() (mutate.Op, bool) {
				it, ok := e.Selected()
				if !ok {
					return nil, false
				}
				coords, ok := nudged(it.Coords, dv*step, dm*step)
				if !ok {
					return nil, false
				}
				return mutate.Move{Ref: it.Ref, Coords: coords}, true
			},
			func() string { return e.burst },
			e.report,
		)
	}
	edit := func(op func() (mutate.Op, bool)) action.Action {
		return action.NewEdit(e.engine, e.history, op, nil, e.report)
	}
	simple := func(explanation string, f func()) action.Action {
		return action.NewSimple(func() string { return explanation }, f)
	}

	return map[string]action.Action{
		"quit":             simple("quit", func() { e.done = true }),
		"write":            simple("write the map file", e.write),
		"undo":             simple("undo", func() { e.step(e.history.Undo, "undo") }),
		"redo":             simple("redo", func() { e.step(e.history.Redo, "redo") }),
		"next-element":     simple("select the next element", func() { e.selectRelative(1) }),
		"previous-element": simple("select the previous element", func() { e.selectRelative(-1) }),
		"nudge-left":       nudge(0, -1),
		"nudge-right":      nudge(0, 1),
		"nudge-up":         nudge(1, 0),
		"nudge-down":       nudge(-1, 0),
		"delete": edit(func() (mutate.Op, bool) {
			it, ok := e.Selected()
			if !ok {
				return nil, false
			}
			return mutate.Delete{Ref: it.Ref}, true
		}),
		"add-component": edit(func() (mutate.Op, bool) {
			return mutate.Add{Element: model.KindComponent, Base: "Component", Point: e.defaultPoint()}, true
		}),
		"add-note": edit(func() (mutate.Op, bool) {
			return mutate.Add{Element: model.KindNote, Base: "Note", Point: e.defaultPoint()}, true
		}),
		"toggle-inertia": edit(e.toggle(mutate.DecoratorInertia, func(d model.Decorators) bool { return d.Inertia })),
		"toggle-buy":     edit(e.toggle(mutate.DecoratorBuy, func(d model.Decorators) bool { return d.Buy })),
		"toggle-log":     simple("show or hide the log", func() { e.showLog = !e.showLog }),
		"toggle-help":    simple("show or hide this help", func() { e.showHelp = !e.showHelp }),
	}
}

func (e *Editor) toggle(d mutate.Decorator, isSet func(model.Decorators) bool) func() (mutate.Op, bool) {
	return func() (mutate.Op, bool) {
		it, ok := e.Selected()
		if !ok || it.Decorators == nil {
			return nil, false
		}
		return mutate.Decorate{Ref: it.Ref, Decorator: d, On: !isSet(*it.Decorators)}, true
	}
}

func (e *Editor) defaultPoint() model.Point {
	p := e.configData.Defaults.Point
	return model.Point{Visibility: p[0], Maturity: p[1]}
}

func (e *Editor) report(err error) {
	e.status = err.Error()
}

func (e *Editor) step(move func() (string, bool), what string) {
	if _, ok := move(); !ok {
		e.status = "nothing to " + what
		return
	}
	e.burst = uuid.NewString()
	undo, redo := e.history.Depth()
	e.status = fmt.Sprintf("%s (%d/%d)", what, undo, redo)
}

func (e *Editor) selectRelative(by int) {
	n := len(Items(e.Map()))
	if n == 0 {
		return
	}
	e.selected = ((e.selected+by)%n + n) % n
	e.burst = uuid.NewString()
}

func (e *Editor) write() {
	e.history.Flush()
	text := e.history.Current()
	if err := e.save(text); err != nil {
		log.Error().Err(err).Msg("could not write map")
		e.status = err.Error()
		return
	}
	e.saved = text
	e.status = "written"
}

// HandleKey processes a key press.
func (e *Editor) HandleKey(k input.Key) {
	if !e.keys.ProcessInput(k) {
		log.Debug().Str("key", k.ToDebugString()).Msg("unbound key")
	}
}

// Text returns the text as currently shown.
func (e *Editor) Text() string {
	return e.history.Current()
}

// Map returns the parse result of the text as currently shown.
func (e *Editor) Map() *model.Map {
	return e.parser.Parse(e.history.Current())
}

// Selected returns the selected element, if there is any.
func (e *Editor) Selected() (Item, bool) {
	items := Items(e.Map())
	if len(items) == 0 {
		return Item{}, false
	}
	e.selected = clampIndex(e.selected, len(items))
	return items[e.selected], true
}

// Modified tells whether the text differs from the one last written.
func (e *Editor) Modified() bool {
	return e.history.Current() != e.saved
}

// Done tells whether the editor was asked to quit.
func (e *Editor) Done() bool {
	return e.done
}

// OnCommit registers a callback for history commits, which may come from
// another goroutine.
func (e *Editor) OnCommit(cb func()) {
	e.history.OnCommit(func(history.Entry) { cb() })
}

// Close commits any pending edit and stops the history.
func (e *Editor) Close() {
	e.history.Close()
}

func clampIndex(i, n int) int {
	switch {
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	}
	return i
}
