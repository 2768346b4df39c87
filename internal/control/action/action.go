// Package action provides the actions that key bindings and commands
// trigger.
package action

// Action is something that can be done, possibly undone, and explained.
type Action interface {
	Do()

	Undo()
	Undoable() bool

	Explain() string
}
