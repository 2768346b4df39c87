package recovery

import "github.com/ja-he/wardmap/internal/model"

// Entry is what the policy uses for one (kind, reason) pair.
type Entry struct {
	Name    string `yaml:"name,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// Table maps element kinds and failure reasons to fallback entries.
type Table map[model.Kind]map[model.Reason]Entry

var messages = map[model.Reason]string{
	model.ReasonEmptyName:           "name is empty, using fallback name",
	model.ReasonUnterminatedQuote:   "quoted name is never closed, taking the rest of the field",
	model.ReasonInvalidEscape:       "unknown escape sequence, backslash dropped",
	model.ReasonSyntaxBreakingChars: "name consists only of syntax-breaking characters, using fallback name",
	model.ReasonInvalidCoordinates:  "coordinates could not be read, using defaults",
	model.ReasonUnterminatedBlock:   "pipeline block is never closed, dropping its children",
}

// kindLabels are used to derive default fallback names.
var kindLabels = map[model.Kind]string{
	model.KindComponent:         "Component",
	model.KindNote:              "Note",
	model.KindMethod:            "Method",
	model.KindMarket:            "Market",
	model.KindEcosystem:         "Ecosystem",
	model.KindPipeline:          "Pipeline",
	model.KindPipelineComponent: "Pipeline Component",
	model.KindAttitude:          "Attitude",
	model.KindAnchor:            "Anchor",
	model.KindLink:              "Endpoint",
	model.KindEvolution:         "Evolution",
	model.KindTitle:             "Untitled Map",
}

// DefaultTable returns the built-in fallback table.
//
// An empty name becomes "Recovered <Kind> Name" (a note gets "Recovered Note
// Text"), a name made only of syntax-breaking characters becomes "<Kind>".
// The title is "Untitled Map" in both cases.
func DefaultTable() Table {
	t := Table{}
	for kind, label := range kindLabels {
		t[kind] = map[model.Reason]Entry{}
		for reason, msg := range messages {
			t[kind][reason] = Entry{Message: msg}
		}
		empty := "Recovered " + label + " Name"
		switch kind {
		case model.KindNote:
			empty = "Recovered Note Text"
		case model.KindTitle:
			empty = label
		}
		t[kind][model.ReasonEmptyName] = Entry{Name: empty, Message: messages[model.ReasonEmptyName]}
		t[kind][model.ReasonSyntaxBreakingChars] = Entry{Name: label, Message: messages[model.ReasonSyntaxBreakingChars]}
	}
	return t
}

func (t Table) lookup(kind model.Kind, reason model.Reason) Entry {
	if byReason, ok := t[kind]; ok {
		if e, ok := byReason[reason]; ok {
			return e
		}
	}
	return Entry{Name: "Recovered Name", Message: messages[reason]}
}

// augmentWith overlays the non-empty fields of another table.
func (t Table) augmentWith(augment Table) Table {
	for kind, byReason := range augment {
		if _, ok := t[kind]; !ok {
			t[kind] = map[model.Reason]Entry{}
		}
		for reason, e := range byReason {
			current := t[kind][reason]
			if e.Name != "" {
				current.Name = e.Name
			}
			if e.Message != "" {
				current.Message = e.Message
			}
			t[kind][reason] = current
		}
	}
	return t
}
