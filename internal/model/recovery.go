package model

import "fmt"

// Reason names the anomaly behind a recovery event.
type Reason string

const (
	ReasonEmptyName           Reason = "empty-name"
	ReasonUnterminatedQuote   Reason = "unterminated-quote"
	ReasonInvalidEscape       Reason = "invalid-escape"
	ReasonSyntaxBreakingChars Reason = "syntax-breaking-chars"
	ReasonInvalidCoordinates  Reason = "invalid-coordinates"
	ReasonUnterminatedBlock   Reason = "unterminated-block"
)

// Severity tells whether content was lost (warn) or only normalized (info).
type Severity string

const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
)

// RecoveryEvent records one anomaly met while parsing and the fallback that
// was used instead. Recovery events never abort a parse.
type RecoveryEvent struct {
	Line        int      `yaml:"line" json:"line"`
	Kind        Kind     `yaml:"kind" json:"kind"`
	Reason      Reason   `yaml:"reason" json:"reason"`
	Severity    Severity `yaml:"severity" json:"severity"`
	Original    string   `yaml:"original,omitempty" json:"original,omitempty"`
	Replacement string   `yaml:"replacement,omitempty" json:"replacement,omitempty"`
	Message     string   `yaml:"message" json:"message"`
}

func (e RecoveryEvent) String() string {
	return fmt.Sprintf("line %d: %s (%s, %s): %s", e.Line, e.Kind, e.Reason, e.Severity, e.Message)
}
