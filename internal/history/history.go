// Package history keeps a bounded undo/redo history of whole-text snapshots.
//
// Edits are requested, not committed: a request waits for a quiet period
// (the debounce window) before it becomes an undo step, and requests with the
// same group arriving inside that window are coalesced into one step. This is
// what keeps a drag from producing an undo step per mouse event.
package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ActionType tags a history entry with the kind of edit that produced it.
type ActionType string

// Entry is a snapshot in the history.
type Entry struct {
	Text        string
	Action      ActionType
	Description string
	Group       string
	Time        time.Time
}

// State is the state of a Manager.
type State int

const (
	// Idle means no edit is waiting to be committed.
	Idle State = iota
	// PendingCommit means an edit is waiting for its debounce window to end.
	PendingCommit
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingCommit:
		return "pending-commit"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrClosed is returned for requests to a closed Manager.
var ErrClosed = errors.New("history is closed")

// Options configure a Manager.
type Options struct {
	// MaxSize caps both the undo and the redo stack; the oldest entries are
	// evicted first. Values below 1 mean 1.
	MaxSize int
	// Debounce is the quiet period after which a requested edit is committed.
	// Zero commits every request immediately.
	Debounce time.Duration
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{MaxSize: 100, Debounce: 300 * time.Millisecond}
}

// Manager is the history of a single document.
//
// It is safe for concurrent use. Commit callbacks are never called with the
// manager's lock held; a Request made from inside a callback is queued and
// applied once the callback has returned.
type Manager struct {
	mtx sync.Mutex

	maxSize   int
	debouncer *Debouncer
	immediate bool

	live    Entry
	past    []Entry
	future  []Entry
	pending *Entry
	// incremented whenever the pending edit is replaced or dropped
	pendingGen uint64

	callbacks   []func(Entry)
	outbox      []Entry
	queued      []Entry
	dispatching bool
	closed      bool
}

// NewManager returns a manager whose live text is initial.
func NewManager(initial string, opts Options) *Manager {
	if opts.MaxSize < 1 {
		opts.MaxSize = 1
	}
	return &Manager{
		maxSize:   opts.MaxSize,
		debouncer: NewDebouncer(opts.Debounce),
		immediate: opts.Debounce <= 0,
		live:      Entry{Text: initial, Time: time.Now()},
	}
}

// OnCommit registers a callback called after every commit with the entry
// that became live. Panics in callbacks are recovered and logged.
func (m *Manager) OnCommit(cb func(Entry)) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

// Request asks for text to become the live text.
//
// A request with a non-empty group that matches the pending edit's group
// replaces the pending edit and restarts the debounce window. Any other
// request first commits the pending edit.
func (m *Manager) Request(text string, action ActionType, description string, group string) error {
	e := Entry{Text: text, Action: action, Description: description, Group: group}

	m.mtx.Lock()
	if m.closed {
		m.mtx.Unlock()
		return ErrClosed
	}
	if m.dispatching {
		m.queued = append(m.queued, e)
		m.mtx.Unlock()
		return nil
	}
	m.request(e)
	m.mtx.Unlock()

	m.dispatch()
	return nil
}

// request must be called with the lock held.
func (m *Manager) request(e Entry) {
	e.Time = time.Now()

	if m.pending != nil && (e.Group == "" || e.Group != m.pending.Group) {
		m.commitPending()
	}
	if m.immediate {
		m.pending = &e
		m.commitPending()
		return
	}

	coalesced := m.pending != nil
	m.pending = &e
	m.pendingGen++
	gen := m.pendingGen
	m.debouncer.Schedule(e.Group, func() { m.fire(gen) })
	log.Trace().Str("action", string(e.Action)).Str("group", e.Group).Bool("coalesced", coalesced).Msg("edit pending")
}

func (m *Manager) fire(gen uint64) {
	m.mtx.Lock()
	if m.closed || m.pending == nil || gen != m.pendingGen {
		m.mtx.Unlock()
		return
	}
	m.commitPending()
	m.mtx.Unlock()

	m.dispatch()
}

// commitPending must be called with the lock held.
func (m *Manager) commitPending() {
	if m.pending == nil {
		return
	}
	e := *m.pending
	m.pending = nil
	m.pendingGen++
	m.debouncer.Cancel()

	if e.Text == m.live.Text {
		log.Trace().Str("action", string(e.Action)).Msg("dropping edit that changes nothing")
		return
	}

	// the snapshot going onto the undo stack is labeled with the edit that
	// replaced it, so that undo can say what it undoes
	previous := m.live
	previous.Action, previous.Description, previous.Group = e.Action, e.Description, e.Group
	m.past = m.push(m.past, previous)
	m.future = nil
	m.live = e
	m.outbox = append(m.outbox, e)

	log.Debug().Str("action", string(e.Action)).Str("description", e.Description).Int("undo-depth", len(m.past)).Msg("committed edit")
}

func (m *Manager) push(stack []Entry, e Entry) []Entry {
	stack = append(stack, e)
	if over := len(stack) - m.maxSize; over > 0 {
		stack = append(stack[:0:0], stack[over:]...)
	}
	return stack
}

// dispatch runs the callbacks for committed entries and then applies the
// requests queued meanwhile, until nothing is left. Only one goroutine
// dispatches at a time.
func (m *Manager) dispatch() {
	m.mtx.Lock()
	if m.dispatching || len(m.outbox) == 0 {
		m.mtx.Unlock()
		return
	}
	m.dispatching = true

	for {
		outbox := m.outbox
		m.outbox = nil
		callbacks := m.callbacks
		m.mtx.Unlock()

		for _, e := range outbox {
			for _, cb := range callbacks {
				m.call(cb, e)
			}
		}

		m.mtx.Lock()
		queued := m.queued
		m.queued = nil
		if !m.closed {
			for _, e := range queued {
				m.request(e)
			}
		}
		if len(m.outbox) == 0 {
			m.dispatching = false
			m.mtx.Unlock()
			return
		}
	}
}

func (m *Manager) call(cb func(Entry), e Entry) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("action", string(e.Action)).Msg("commit callback panicked")
		}
	}()
	cb(e)
}

// Flush commits the pending edit, if any, right away.
func (m *Manager) Flush() {
	m.mtx.Lock()
	m.commitPending()
	m.mtx.Unlock()
	m.dispatch()
}

// Undo flushes the pending edit and then steps back. It returns the live
// text and whether anything was undone.
func (m *Manager) Undo() (string, bool) {
	m.mtx.Lock()
	m.commitPending()
	moved := false
	if n := len(m.past); n > 0 {
		previous := m.past[n-1]
		m.past = m.past[:n-1]
		current := m.live
		current.Action, current.Description, current.Group = previous.Action, previous.Description, previous.Group
		m.future = m.push(m.future, current)
		m.live = previous
		moved = true
		log.Debug().Str("action", string(previous.Action)).Int("undo-depth", len(m.past)).Msg("undid edit")
	}
	text := m.live.Text
	m.mtx.Unlock()

	m.dispatch()
	return text, moved
}

// Redo flushes the pending edit and then steps forward again. Since a flushed
// edit clears the redo stack, Redo with a pending edit never moves.
func (m *Manager) Redo() (string, bool) {
	m.mtx.Lock()
	m.commitPending()
	moved := false
	if n := len(m.future); n > 0 {
		next := m.future[n-1]
		m.future = m.future[:n-1]
		current := m.live
		current.Action, current.Description, current.Group = next.Action, next.Description, next.Group
		m.past = m.push(m.past, current)
		m.live = next
		moved = true
		log.Debug().Str("action", string(next.Action)).Int("redo-depth", len(m.future)).Msg("redid edit")
	}
	text := m.live.Text
	m.mtx.Unlock()

	m.dispatch()
	return text, moved
}

// Reset drops the whole history, including a pending edit, and makes text
// the live text.
func (m *Manager) Reset(text string) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.pending = nil
	m.pendingGen++
	m.debouncer.Cancel()
	m.past, m.future, m.queued = nil, nil, nil
	m.live = Entry{Text: text, Time: time.Now()}
}

// Close commits the pending edit and stops the manager. Later requests fail
// with ErrClosed; Current and the stack queries keep working.
func (m *Manager) Close() {
	m.mtx.Lock()
	if m.closed {
		m.mtx.Unlock()
		return
	}
	m.commitPending()
	m.debouncer.Cancel()
	m.closed = true
	m.mtx.Unlock()

	m.dispatch()
}

// Current returns the text the user sees: the pending edit if there is one,
// the live text otherwise.
func (m *Manager) Current() string {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.pending != nil {
		return m.pending.Text
	}
	return m.live.Text
}

// Committed returns the live text, ignoring a pending edit.
func (m *Manager) Committed() string {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.live.Text
}

// State returns whether an edit is pending.
func (m *Manager) State() State {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.pending != nil {
		return PendingCommit
	}
	return Idle
}

// CanUndo tells whether Undo would move, counting a pending edit.
func (m *Manager) CanUndo() bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.past) > 0 || (m.pending != nil && m.pending.Text != m.live.Text)
}

// CanRedo tells whether Redo would move.
func (m *Manager) CanRedo() bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.future) > 0 && m.pending == nil
}

// Depth returns the sizes of the undo and redo stacks.
func (m *Manager) Depth() (undo, redo int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.past), len(m.future)
}

// Peek returns the entry Undo would return to, without moving.
func (m *Manager) Peek() (Entry, bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if len(m.past) == 0 {
		return Entry{}, false
	}
	return m.past[len(m.past)-1], true
}
