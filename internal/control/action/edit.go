package action

import (
	"github.com/rs/zerolog/log"

	"github.com/ja-he/wardmap/internal/history"
	"github.com/ja-he/wardmap/internal/mutate"
)

// Edit is an undoable action that applies a mutation to the current text of
// a history and requests the result.
//
// The op is produced when the action is done, so that it can depend on the
// state at that time (e.g. the selected element).
type Edit struct {
	engine  *mutate.Engine
	history *history.Manager
	op      func() (mutate.Op, bool)
	group   func() string
	onError func(error)
}

// NewEdit returns an edit action. op may report false when there is nothing
// to do; group may be nil for edits that never coalesce; onError, if set, is
// called with rejected mutations.
func NewEdit(
	engine *mutate.Engine,
	h *history.Manager,
	op func() (mutate.Op, bool),
	group func() string,
	onError func(error),
) *Edit {
	return &Edit{engine: engine, history: h, op: op, group: group, onError: onError}
}

// Do applies the op to the current text.
func (a *Edit) Do() {
	op, ok := a.op()
	if !ok {
		return
	}
	text, err := a.engine.Apply(a.history.Current(), op)
	if err == nil {
		group := ""
		if a.group != nil {
			group = a.group()
		}
		err = a.history.Request(text, history.ActionType(op.Kind()), op.Describe(), group)
	}
	if err != nil {
		log.Warn().Err(err).Str("op", op.Describe()).Msg("edit rejected")
		if a.onError != nil {
			a.onError(err)
		}
	}
}

// Undoable returns true.
func (a *Edit) Undoable() bool { return true }

// Undo steps back in the history. Note that this undoes the most recent step,
// which is this edit only if nothing was committed since.
func (a *Edit) Undo() {
	a.history.Undo()
}

// Explain describes the op the action would apply now.
func (a *Edit) Explain() string {
	op, ok := a.op()
	if !ok {
		return "nothing to edit"
	}
	return op.Describe()
}
