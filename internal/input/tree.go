package input

import (
	"fmt"

	"github.com/ja-he/wardmap/internal/control/action"
)

// Tree represents an input tree, which can contain various input sequences
// that terminate in an action.
//
// Example:
//
//	tree:                       mapping:
//
//	x
//	+-y
//	| +-z   -> action1          "xyz" -> action1
//	+-z     -> action2          "xz"  -> action2
//	z       -> action3          "z"   -> action3
type Tree struct {
	Root    *Node
	Current *Node
}

// ProcessInput attempts to process the provided input.
// Returns whether the provided input "applied", i.E. the processor performed
// an action based on the input.
func (t *Tree) ProcessInput(k Key) (applied bool) {
	next := t.Current.Child(k)
	switch {
	case next == nil:
		t.Current = t.Root
		return false
	case next.Action != nil:
		next.Action.Do()
		t.Current = t.Root
		return true
	default:
		t.Current = next
		return true
	}
}

// CapturesInput returns whether this processor "captures" input, i.E. whether
// it ought to take priority in processing over other processors.
// This is useful, e.g., for prioritizing processors whith partial input
// sequences or for such overlays, that are to take complete priority by
// completely gobbling all input.
func (t *Tree) CapturesInput() bool {
	return t.Current != t.Root
}

// ConstructInputTree construct a Tree for the given mappings of input
// sequence strings to actions.
// If the given mapping is invalid, this returns an error. Besides malformed
// keyspecs that includes sequences that are a prefix of another one (e.g. "d"
// and "dd"), since the longer one could never be completed.
func ConstructInputTree(
	spec map[Keyspec]action.Action,
) (*Tree, error) {
	root := NewNode()

	for mapping, action := range spec {
		sequence, err := ConfigKeyspecToKeys(mapping)
		if err != nil {
			return nil, fmt.Errorf("error converting config keyspec: '%s'", err.Error())
		}
		if len(sequence) == 0 {
			return nil, fmt.Errorf("empty keyspec mapped to '%s'", action.Explain())
		}

		sequenceCurrent := root
		for i, key := range sequence {
			if sequenceCurrent.Action != nil {
				return nil, fmt.Errorf("keyspec '%s' extends a shorter mapped sequence", mapping)
			}
			sequenceNext, ok := sequenceCurrent.Children[key]
			switch {
			case !ok && i == len(sequence)-1:
				sequenceNext = NewLeaf(action)
			case !ok:
				sequenceNext = NewNode()
			case i == len(sequence)-1:
				return nil, fmt.Errorf("keyspec '%s' is a prefix of another mapped sequence", mapping)
			}
			sequenceCurrent.Children[key] = sequenceNext
			sequenceCurrent = sequenceNext
		}
	}

	return &Tree{
		Root:    root,
		Current: root,
	}, nil
}

// EmptyTree returns a pointer to an empty tree.
func EmptyTree() *Tree {
	root := NewNode()
	return &Tree{
		Root:    root,
		Current: root,
	}
}
