package config

import (
	"github.com/ja-he/wardmap/internal/recovery"
)

// Default returns the default configuration.
func Default() Config {
	return Config{
		History: History{
			MaxSize:  100,
			Debounce: "300ms",
		},
		Recovery: Recovery{
			SyntaxBreaking: recovery.DefaultSyntaxBreaking,
		},
		Parser: Parser{
			CacheSize: 32,
		},
		Defaults: Defaults{
			Point:    []float64{0.9, 0.1},
			Bounds:   []float64{0.9, 0.1, 0.7, 0.3},
			Maturity: float(0.5),
		},
		Editor: Editor{
			MinBoxSize: float(0.01),
			NudgeStep:  float(0.01),
			Keys:       defaultKeys(),
		},
	}
}

func defaultKeys() map[string]string {
	return map[string]string{
		"q":       "quit",
		"<c-s>":   "write",
		"u":       "undo",
		"<c-r>":   "redo",
		"n":       "next-element",
		"N":       "previous-element",
		"h":       "nudge-left",
		"<left>":  "nudge-left",
		"l":       "nudge-right",
		"<right>": "nudge-right",
		"k":       "nudge-up",
		"<up>":    "nudge-up",
		"j":       "nudge-down",
		"<down>":  "nudge-down",
		"dd":      "delete",
		"ac":      "add-component",
		"an":      "add-note",
		"ti":      "toggle-inertia",
		"tb":      "toggle-buy",
		"gl":      "toggle-log",
		"?":       "toggle-help",
	}
}

func float(v float64) *float64 { return &v }
