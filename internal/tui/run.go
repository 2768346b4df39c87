package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/wardmap/internal/input"
)

// Screen is what Run needs from a screen handler.
type Screen interface {
	Renderer
	EventPollable
	ScreenSynchronizer
	Show()
	Interrupt()
}

// Run runs the editor on the screen until it is asked to quit or the screen
// is finalized. Debounced commits from the history trigger a redraw.
func Run(screen Screen, editor *Editor) {
	editor.OnCommit(screen.Interrupt)

	for {
		editor.Draw(screen)
		screen.Show()

		ev := screen.PollEvent()
		start := time.Now()

		switch e := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			editor.HandleKey(input.KeyFromEvent(e))
		case *tcell.EventResize:
			screen.NeedsSync()
		case *tcell.EventInterrupt:
			// a commit landed, redraw
		}

		log.Trace().Dur("took", time.Since(start)).Msg("processed event")

		if editor.Done() {
			return
		}
	}
}
