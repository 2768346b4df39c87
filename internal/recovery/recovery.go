// Package recovery decides what name an element gets when its name field is
// malformed or unusable, and records what was done about it.
package recovery

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// DefaultSyntaxBreaking is the default set of characters that make a name
// unusable when it consists of nothing else.
const DefaultSyntaxBreaking = `[](){}"`

// Policy is the name recovery policy: which characters are syntax-breaking
// and which fallback name replaces an unusable one.
type Policy struct {
	breaking  map[rune]bool
	fallbacks Table
}

// NewPolicy builds a policy from a syntax-breaking character set and a
// fallback table. Entries missing from the table fall back to DefaultTable.
func NewPolicy(syntaxBreaking string, table Table) *Policy {
	p := &Policy{
		breaking:  map[rune]bool{},
		fallbacks: DefaultTable().augmentWith(table),
	}
	for _, r := range syntaxBreaking {
		p.breaking[r] = true
	}

	// fallback names must not need recovery themselves
	defaults := DefaultTable()
	for kind, byReason := range p.fallbacks {
		for reason, e := range byReason {
			if strings.TrimSpace(e.Name) == "" || p.IsSyntaxBreaking(e.Name) {
				e.Name = defaults.lookup(kind, reason).Name
				byReason[reason] = e
			}
		}
	}
	return p
}

// DefaultPolicy returns the policy with the default character set and table.
func DefaultPolicy() *Policy {
	return NewPolicy(DefaultSyntaxBreaking, nil)
}

// IsSyntaxBreaking tells whether a non-blank name consists solely of
// syntax-breaking characters (whitespace aside).
func (p *Policy) IsSyntaxBreaking(name string) bool {
	seen := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		if !p.breaking[r] {
			return false
		}
		seen = true
	}
	return seen
}

// Fallback returns the fallback name for an element kind and failure.
func (p *Policy) Fallback(kind model.Kind, reason model.Reason) string {
	return p.fallbacks.lookup(kind, reason).Name
}

// Name decodes a raw name field and applies the fallback policy.
//
// The returned name is never empty. Events describe every anomaly met, both
// the ones decoding worked around and the ones that required a fallback.
func (p *Policy) Name(kind model.Kind, line int, field string) (string, []model.RecoveryEvent) {
	decoded := syntax.DecodeQuoted(field)
	events := []model.RecoveryEvent{}

	for _, issue := range decoded.Issues {
		severity := model.SeverityInfo
		if issue == model.ReasonUnterminatedQuote {
			severity = model.SeverityWarn
		}
		events = append(events, p.event(kind, line, issue, severity, field, decoded.Value))
	}

	name := decoded.Value
	if !decoded.Quoted {
		name = strings.TrimSpace(name)
	}

	switch {
	case strings.TrimSpace(name) == "":
		fallback := p.Fallback(kind, model.ReasonEmptyName)
		events = append(events, p.event(kind, line, model.ReasonEmptyName, model.SeverityInfo, field, fallback))
		name = fallback
	case p.IsSyntaxBreaking(name):
		fallback := p.Fallback(kind, model.ReasonSyntaxBreakingChars)
		events = append(events, p.event(kind, line, model.ReasonSyntaxBreakingChars, model.SeverityWarn, field, fallback))
		name = fallback
	}

	return name, events
}

// Optional is Name for fields that may legitimately be absent (an attitude
// box's name): a blank field yields an empty name and no event.
func (p *Policy) Optional(kind model.Kind, line int, field string) (string, []model.RecoveryEvent) {
	if strings.TrimSpace(field) == "" {
		return "", nil
	}
	return p.Name(kind, line, field)
}

// Coordinates records that a bracket could not be read and defaults were
// used instead.
func (p *Policy) Coordinates(kind model.Kind, line int, contents string, replacement string, cause error) model.RecoveryEvent {
	e := p.event(kind, line, model.ReasonInvalidCoordinates, model.SeverityWarn, contents, replacement)
	if cause != nil {
		e.Message = fmt.Sprintf("%s (%s)", e.Message, cause.Error())
	}
	return e
}

// Block records that a pipeline block was never closed and its children
// were dropped.
func (p *Policy) Block(line int, pipeline string, dropped int) model.RecoveryEvent {
	e := p.event(model.KindPipeline, line, model.ReasonUnterminatedBlock, model.SeverityWarn, pipeline, "")
	e.Message = fmt.Sprintf("%s (%d child lines dropped)", e.Message, dropped)
	return e
}

func (p *Policy) event(kind model.Kind, line int, reason model.Reason, severity model.Severity, original, replacement string) model.RecoveryEvent {
	return model.RecoveryEvent{
		Line:        line,
		Kind:        kind,
		Reason:      reason,
		Severity:    severity,
		Original:    original,
		Replacement: replacement,
		Message:     p.fallbacks.lookup(kind, reason).Message,
	}
}
