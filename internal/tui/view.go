package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/wardmap/internal/input"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/potatolog"
)

var (
	styleDefault  = tcell.StyleDefault
	styleBar      = tcell.StyleDefault.Reverse(true)
	styleSelected = tcell.StyleDefault.Reverse(true).Bold(true)
	styleAxis     = tcell.StyleDefault.Dim(true)
	styleLogTitle = tcell.StyleDefault.Underline(true)
)

var markers = map[model.Kind]rune{
	model.KindComponent:         'o',
	model.KindPipeline:          '=',
	model.KindPipelineComponent: 'o',
	model.KindNote:              '*',
	model.KindAnchor:            '^',
	model.KindMarket:            'm',
	model.KindEcosystem:         'e',
	model.KindAttitude:          '#',
	model.KindEvolution:         '>',
}

// the usual evolution stages along the maturity axis
var stages = []struct {
	at    float64
	label string
}{
	{0, "genesis"},
	{0.25, "custom"},
	{0.5, "product"},
	{0.75, "commodity"},
}

// Draw draws the whole editor.
func (e *Editor) Draw(r Renderer) {
	x, y, w, h := r.Dimensions()
	r.DrawBox(x, y, w, h, styleDefault)
	if w <= 0 || h < 3 {
		return
	}

	m := e.Map()
	items := Items(m)
	selected := -1
	if len(items) > 0 {
		e.selected = clampIndex(e.selected, len(items))
		selected = e.selected
	}

	title := "untitled map"
	if m.Title != nil {
		title = m.Title.Text
	}
	if e.Modified() {
		title += " [+]"
	}
	r.DrawBox(x, y, w, 1, styleBar)
	r.DrawText(x+1, y, w-1, 1, styleBar, title)

	bodyY, bodyH := y+1, h-2
	logH := 0
	if e.showLog {
		logH = bodyH / 3
	}
	listW := min(32, w/3)
	pane := func(x, y, w, h int) Renderer {
		return NewConstrainedRenderer(r, func() (int, int, int, int) { return x, y, w, h })
	}
	e.drawList(pane(x, bodyY, listW, bodyH-logH), items, selected)
	e.drawCanvas(pane(x+listW+1, bodyY, w-listW-1, bodyH-logH), items, selected)
	if e.showLog {
		e.drawLog(pane(x, bodyY+bodyH-logH, w, logH))
	}
	if e.showHelp {
		e.drawHelp(pane(x+listW+1, bodyY, w-listW-1, bodyH))
	}

	undo, redo := e.history.Depth()
	state := fmt.Sprintf("%s %d/%d", e.history.State(), undo, redo)
	r.DrawBox(x, y+h-1, w, 1, styleBar)
	r.DrawText(x+1, y+h-1, w-len(state)-2, 1, styleBar, e.status)
	r.DrawText(x+w-len(state)-1, y+h-1, len(state), 1, styleBar, state)
}

func (e *Editor) drawList(r Renderer, items []Item, selected int) {
	x, y, w, h := r.Dimensions()
	if w <= 0 || h <= 0 {
		return
	}
	offset := 0
	if selected >= h {
		offset = selected - h + 1
	}
	for row := 0; row < h && offset+row < len(items); row++ {
		i := offset + row
		style := styleDefault
		if i == selected {
			style = styleSelected
			r.DrawBox(x, y+row, w, 1, style)
		}
		r.DrawText(x, y+row, w, 1, style, fmt.Sprintf("%3d %s", items[i].Ref.Line, items[i].Label))
	}
}

// drawCanvas places the items with maturity growing to the right and
// visibility growing upwards. The last row carries the stage labels.
func (e *Editor) drawCanvas(r Renderer, items []Item, selected int) {
	x, y, w, h := r.Dimensions()
	if w <= 1 || h <= 2 {
		return
	}
	for _, s := range stages {
		col := x + int(math.Round(s.at*float64(w-1)))
		r.DrawText(col, y+h-1, x+w-col, 1, styleAxis, s.label)
	}

	plotH := h - 1
	for i, it := range items {
		if !it.Placed {
			continue
		}
		col := x + int(math.Round(it.Point.Maturity*float64(w-1)))
		row := y + int(math.Round((1-it.Point.Visibility)*float64(plotH-1)))
		style := styleDefault
		if i == selected {
			style = styleSelected
		}
		r.DrawText(col, row, 1, 1, style, string(markers[it.Ref.Kind]))
		if rest := x + w - col - 1; rest > 1 {
			r.DrawText(col+1, row, rest, 1, style, " "+it.Label)
		}
	}
}

func (e *Editor) drawLog(r Renderer) {
	x, y, w, h := r.Dimensions()
	if h <= 0 {
		return
	}
	r.DrawBox(x, y, w, h, styleDefault)
	r.DrawText(x, y, w, 1, styleLogTitle, "log")
	entries := e.logReader.Tail(h - 1)
	for i := len(entries) - 1; i >= 0; i-- {
		r.DrawText(x, y+len(entries)-i, w, 1, styleDefault, potatolog.Format(entries[i]))
	}
}

func (e *Editor) drawHelp(r Renderer) {
	x, y, w, h := r.Dimensions()
	help := e.keys.GetHelp()
	r.DrawBox(x, y, w, h, styleDefault)
	for row, k := range input.SortedKeys(help) {
		if row >= h {
			return
		}
		r.DrawText(x, y+row, w, 1, styleDefault, fmt.Sprintf("%-8s %s", k, help[k]))
	}
}
