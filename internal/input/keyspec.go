package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Keyspec is a key sequence as written in the configuration, e.g. "dd" or
// "<c-r>".
type Keyspec string

// namedKeys lists the names usable between '<' and '>'. Where several
// names denote the same key, the first one is used to describe it.
var namedKeys = []struct {
	name string
	key  Key
}{
	{"space", Key{Key: tcell.KeyRune, Ch: ' '}},
	{"cr", Key{Key: tcell.KeyEnter}},
	{"esc", Key{Key: tcell.KeyESC}},
	{"del", Key{Key: tcell.KeyDelete}},
	{"bs", Key{Key: tcell.KeyBackspace2}},
	{"tab", Key{Key: tcell.KeyTab}},
	{"left", Key{Key: tcell.KeyLeft}},
	{"right", Key{Key: tcell.KeyRight}},
	{"up", Key{Key: tcell.KeyUp}},
	{"down", Key{Key: tcell.KeyDown}},
	{"c-space", Key{Key: tcell.KeyCtrlSpace}},
	{"c-bs", Key{Key: tcell.KeyBackspace}},
}

var (
	identifiers = map[string]Key{}
	names       = map[Key]string{}
)

func init() {
	for c := 'a'; c <= 'z'; c++ {
		// tcell.KeyCtrlA..KeyCtrlZ are contiguous
		namedKeys = append(namedKeys, struct {
			name string
			key  Key
		}{"c-" + string(c), Key{Key: tcell.KeyCtrlA + tcell.Key(c-'a')}})
	}
	for _, nk := range namedKeys {
		identifiers[nk.name] = nk.key
		if _, ok := names[nk.key]; !ok {
			names[nk.key] = nk.name
		}
	}
}

// ConfigKeyspecToKeys converts full key sequence specification strings (e.g.
// "<space>qw" meaning the SPACE key, then the Q key, then the W key) to the
// appropriate sequence of Keys (or an error, if invalid).
func ConfigKeyspecToKeys(spec Keyspec) ([]Key, error) {
	result := []Key{}
	special := -1

	for pos, r := range spec {
		switch {
		case r == '<':
			if special >= 0 {
				return nil, fmt.Errorf("illegal second opening special context ('<') before previous is closed (pos %d)", pos)
			}
			special = pos + 1

		case r == '>':
			if special < 0 {
				return nil, fmt.Errorf("illegal closing of special context ('>') while none open (pos %d)", pos)
			}
			key, err := KeyIdentifierToKey(string(spec[special:pos]))
			if err != nil {
				return nil, fmt.Errorf("error mapping identifier '<%s>' to key: %s", spec[special:pos], err.Error())
			}
			result = append(result, key)
			special = -1

		case special >= 0:
			if !unicode.IsLetter(r) && r != '-' {
				return nil, fmt.Errorf("illegal character '%c' in special context (pos %d)", r, pos)
			}

		default:
			result = append(result, Key{Key: tcell.KeyRune, Ch: r})
		}
	}
	if special >= 0 {
		return nil, fmt.Errorf("special context opened at pos %d is never closed", special-1)
	}

	return result, nil
}

// KeyIdentifierToKey converts the given special identifier to the appropriate
// key (or an error, if invalid).
func KeyIdentifierToKey(identifier string) (Key, error) {
	key, ok := identifiers[strings.ToLower(identifier)]
	if !ok {
		return Key{}, fmt.Errorf("no mapping present for identifier '%s'", identifier)
	}
	return key, nil
}

// ToConfigIdentifierString converts the given key to its configuration
// identifier.
func ToConfigIdentifierString(k Key) string {
	if identifier, ok := names[k]; ok {
		return "<" + identifier + ">"
	}
	if k.Key == tcell.KeyRune {
		return string(k.Ch)
	}
	panic(fmt.Sprintf("undescribable key %s", k.ToDebugString()))
}
