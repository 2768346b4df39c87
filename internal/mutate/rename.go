package mutate

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/wardmap/internal/extract"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// Rename gives the referenced element a new name.
//
// For elements that links can refer to (components, pipelines and their
// children, markets, ecosystems, anchors) every reference is rewritten as
// well: link endpoints, evolve statements and standalone method statements.
// Renaming onto the name of a distinct element fails with ErrNameCollision.
// Notes, methods and the title are renamed on their own line only.
func (e *Engine) Rename(text string, ref ElementRef, newName string) (string, error) {
	switch ref.Kind {
	case model.KindLink, model.KindEvolution, model.KindAttitude:
		return text, reject(ErrInvalidName, "a %s cannot be renamed", ref.Kind)
	case model.KindTitle:
		if strings.ContainsAny(newName, "\r\n") {
			return text, reject(ErrInvalidName, "a title must be a single line")
		}
	}
	if err := e.checkName(newName); err != nil {
		return text, err
	}

	doc := split(text)
	normalized := doc.join()
	m := e.parse(normalized)
	old, err := e.resolve(m, ref)
	if err != nil {
		return text, err
	}
	if old == newName {
		return text, nil
	}

	d, declared := m.DeclarationAt(ref.Line)
	declared = declared && d.Kind == ref.Kind
	if declared {
		for _, other := range m.Declarations() {
			if other.Line != ref.Line && other.Name == newName {
				log.Debug().Str("old", old).Str("new", newName).Int("other-line", other.Line).Msg("rejected rename")
				return text, reject(ErrNameCollision, "a %s named %s already exists", other.Kind, newName)
			}
		}
	}

	raw, _ := doc.line(ref.Line)
	if ref.Kind == model.KindTitle {
		tok := syntax.Tokenize(raw)
		doc.set(ref.Line, syntax.Replace(raw, tok.RestSpan, newName))
		return doc.join(), nil
	}

	stripped, _ := extract.StripBlockOpen(raw)
	tok := syntax.Tokenize(stripped)
	doc.set(ref.Line, syntax.Replace(raw, tok.NameSpan, syntax.EncodeName(newName)))

	if !declared {
		return doc.join(), nil
	}

	inside := extract.BlockLines(normalized)
	renamed := 0
	for i, l := range doc.lines {
		n := i + 1
		if n == ref.Line || inside[n] || syntax.IsComment(l) {
			continue
		}
		if updated, ok := renameReferences(l, old, newName); ok {
			doc.set(n, updated)
			renamed++
		}
	}
	log.Debug().Str("old", old).Str("new", newName).Int("references", renamed).Msg("renamed element")

	return doc.join(), nil
}

// renameReferences rewrites the references to old in a single line. Spans
// are replaced right to left so earlier spans stay valid.
func renameReferences(line string, old, newName string) (string, bool) {
	type edit struct {
		span syntax.Span
		repl string
	}
	var edits []edit
	matches := func(field string) bool {
		return syntax.DecodeQuoted(field).Value == old
	}

	if l, ok := syntax.TokenizeLink(line); ok {
		if matches(l.Start) {
			edits = append(edits, edit{l.StartSpan, syntax.EncodeEndpoint(newName)})
		}
		if matches(l.End) {
			edits = append(edits, edit{l.EndSpan, syntax.EncodeEndpoint(newName)})
		}
	} else if l, ok := syntax.TokenizeEvolve(line); ok {
		if matches(l.Name) {
			edits = append(edits, edit{l.NameSpan, syntax.EncodeEndpoint(newName)})
		}
		if l.HasOverride && matches(l.Override) {
			edits = append(edits, edit{l.OverrideSpan, syntax.EncodeEndpoint(newName)})
		}
	} else {
		tok := syntax.Tokenize(line)
		switch tok.Keyword {
		case "buy", "build", "outsource":
			if matches(tok.Name) {
				edits = append(edits, edit{tok.NameSpan, syntax.EncodeName(newName)})
			}
		}
	}

	if len(edits) == 0 {
		return line, false
	}
	for i := len(edits) - 1; i >= 0; i-- {
		line = syntax.Replace(line, edits[i].span, edits[i].repl)
	}
	return line, true
}
