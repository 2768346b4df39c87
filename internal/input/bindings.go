package input

import (
	"fmt"

	"github.com/ja-he/wardmap/internal/control/action"
)

// Bindings builds a tree from configured key bindings, which map keyspecs to
// action names, and the actions available under those names.
func Bindings(keys map[string]string, actions map[string]action.Action) (*Tree, error) {
	spec := map[Keyspec]action.Action{}
	for keyspec, name := range keys {
		a, ok := actions[name]
		if !ok {
			return nil, fmt.Errorf("key '%s' is bound to unknown action '%s'", keyspec, name)
		}
		spec[Keyspec(keyspec)] = a
	}
	return ConstructInputTree(spec)
}
