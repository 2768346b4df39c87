package mutate

import (
	"fmt"
	"strings"

	"github.com/ja-he/wardmap/internal/extract"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/syntax"
)

// PlacementMode decides where an inserted statement goes.
type PlacementMode int

const (
	_ PlacementMode = iota
	// AfterLastKeyword inserts after the last top-level statement with the
	// placement's keyword (the inserted statement's own keyword if unset),
	// falling back to the end of the document.
	AfterLastKeyword
	// EndOfDocument appends the statement.
	EndOfDocument
	// InsidePipeline inserts at the top of the named pipeline's block,
	// creating the block if the pipeline has none.
	InsidePipeline
)

// Placement is an insertion policy.
type Placement struct {
	Mode     PlacementMode
	Keyword  string
	Pipeline string
}

const defaultChildIndent = "  "

// InsertElement inserts a single statement line according to the placement.
func (e *Engine) InsertElement(text string, statement string, placement Placement) (string, error) {
	if strings.ContainsAny(statement, "\r\n") {
		return text, reject(ErrInvalidLine, "a statement must be a single line")
	}
	if strings.TrimSpace(statement) == "" {
		return text, reject(ErrInvalidLine, "a statement must not be blank")
	}

	doc := split(text)
	normalized := doc.join()

	switch placement.Mode {
	case EndOfDocument:
		doc.insert(len(doc.lines)+1, statement)

	case AfterLastKeyword:
		keyword := placement.Keyword
		if keyword == "" {
			keyword = syntax.Keyword(statement)
		}
		doc.insert(afterLastKeyword(doc, normalized, keyword), statement)

	case InsidePipeline:
		m := e.parse(normalized)
		p := m.PipelineByName(placement.Pipeline)
		if p == nil {
			return text, reject(ErrNotFound, "no pipeline named '%s'", placement.Pipeline)
		}
		blocks := extract.Blocks(normalized)
		var block *extract.Block
		for i := range blocks {
			if blocks[i].Pipeline == p.Line {
				block = &blocks[i]
			}
		}
		pipelineLine, _ := doc.line(p.Line)
		indent := syntax.Tokenize(pipelineLine).Indent()

		switch {
		case block == nil:
			doc.insert(p.Line+1, indent+"{", indent+defaultChildIndent+strings.TrimSpace(statement), indent+"}")
		case !block.Terminated():
			return text, reject(ErrInvalidLine, "the block of pipeline '%s' is never closed", p.Name)
		default:
			childIndent := indent + defaultChildIndent
			if len(block.Children) > 0 {
				first, _ := doc.line(block.Children[0])
				childIndent = syntax.Tokenize(first).Indent()
			}
			doc.insert(block.Open+1, childIndent+strings.TrimSpace(statement))
		}

	default:
		return text, reject(ErrInvalidLine, "unknown placement mode %d", placement.Mode)
	}

	return doc.join(), nil
}

// afterLastKeyword returns the line number a statement gets when inserted
// after the last top-level statement with the keyword. Pipelines count
// including their blocks.
func afterLastKeyword(doc document, normalized string, keyword string) int {
	blocks := extract.Blocks(normalized)
	inside := extract.BlockLines(normalized)

	last := 0
	for i, l := range doc.lines {
		n := i + 1
		if inside[n] || syntax.IsComment(l) {
			continue
		}
		if syntax.Keyword(l) == keyword {
			last = n
		}
	}
	if last == 0 {
		return len(doc.lines) + 1
	}
	for _, b := range blocks {
		if b.Pipeline == last && b.Last > last {
			last = b.Last
		}
	}
	return last + 1
}

// UniqueName returns base if no element in the text is named like that,
// otherwise base followed by the smallest positive integer that makes it
// unique. All declarations count, pipeline children included.
func (e *Engine) UniqueName(text string, base string) string {
	names := e.parse(NormalizeLineEndings(text)).Names()
	if !names[base] {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if !names[candidate] {
			return candidate
		}
	}
}

// AddComponent inserts a component with a unique name derived from base
// after the last component. It returns the new text and the name used.
func (e *Engine) AddComponent(text string, base string, p model.Point) (string, string, error) {
	if err := e.checkName(base); err != nil {
		return text, "", err
	}
	if err := e.validate(model.KindComponent, PointCoords(p)); err != nil {
		return text, "", err
	}
	name := e.UniqueName(text, base)
	statement := "component " + syntax.EncodeName(name) + " " + syntax.FormatPoint(p)
	result, err := e.InsertElement(text, statement, Placement{Mode: AfterLastKeyword, Keyword: "component"})
	return result, name, err
}

// AddPipelineComponent inserts a child component with a unique name derived
// from base at the top of the named pipeline's block.
func (e *Engine) AddPipelineComponent(text string, pipeline string, base string, maturity float64) (string, string, error) {
	if err := e.checkName(base); err != nil {
		return text, "", err
	}
	if err := e.validate(model.KindPipelineComponent, MaturityCoords(maturity)); err != nil {
		return text, "", err
	}
	name := e.UniqueName(text, base)
	statement := "component " + syntax.EncodeName(name) + " " + syntax.FormatValues(maturity)
	result, err := e.InsertElement(text, statement, Placement{Mode: InsidePipeline, Pipeline: pipeline})
	return result, name, err
}

// AddNote inserts a note after the last note.
func (e *Engine) AddNote(text string, note string, p model.Point) (string, error) {
	if err := e.checkName(note); err != nil {
		return text, err
	}
	if err := e.validate(model.KindNote, PointCoords(p)); err != nil {
		return text, err
	}
	statement := "note " + syntax.EncodeName(note) + " " + syntax.FormatPoint(p)
	return e.InsertElement(text, statement, Placement{Mode: AfterLastKeyword, Keyword: "note"})
}

// AddAnchor inserts an anchor with a unique name after the last anchor.
func (e *Engine) AddAnchor(text string, base string, p model.Point) (string, string, error) {
	if err := e.checkName(base); err != nil {
		return text, "", err
	}
	if err := e.validate(model.KindAnchor, PointCoords(p)); err != nil {
		return text, "", err
	}
	name := e.UniqueName(text, base)
	statement := "anchor " + syntax.EncodeName(name) + " " + syntax.FormatPoint(p)
	result, err := e.InsertElement(text, statement, Placement{Mode: AfterLastKeyword, Keyword: "anchor"})
	return result, name, err
}

// checkName rejects names the recovery policy would replace.
func (e *Engine) checkName(name string) error {
	p := e.options.Policy
	if strings.TrimSpace(name) == "" {
		return reject(ErrInvalidName, "name must not be empty")
	}
	if p != nil && p.IsSyntaxBreaking(name) {
		return reject(ErrInvalidName, "name '%s' consists only of syntax-breaking characters", name)
	}
	return nil
}
