// Package input maps key sequences to actions.
package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key is a single key press.
type Key struct {
	Mod tcell.ModMask
	Key tcell.Key
	Ch  rune
}

// KeyFromEvent returns the key of a tcell key event. Modifiers are only kept
// for non-rune keys, since for runes they are part of the rune already.
func KeyFromEvent(e *tcell.EventKey) Key {
	if e.Key() == tcell.KeyRune {
		return Key{Key: tcell.KeyRune, Ch: e.Rune()}
	}
	return Key{Key: e.Key()}
}

// ToDebugString renders the key for log messages.
func (k *Key) ToDebugString() string {
	return fmt.Sprintf(
		"(%s (%d),'%s'(%d))",
		tcell.KeyNames[k.Key],
		int(k.Key),
		string(k.Ch),
		int(k.Ch),
	)
}
