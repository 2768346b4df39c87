package mutate

import (
	"fmt"

	"github.com/ja-he/wardmap/internal/model"
)

// OpKind names the kind of an Op, e.g. for grouping history entries.
type OpKind string

const (
	OpMove     OpKind = "move"
	OpInsert   OpKind = "insert"
	OpDelete   OpKind = "delete"
	OpRename   OpKind = "rename"
	OpDecorate OpKind = "decorate"
)

// Op is a single structural edit that Apply can perform.
type Op interface {
	Kind() OpKind
	Describe() string

	apply(e *Engine, text string) (string, error)
}

// Move sets new coordinates for an element.
type Move struct {
	Ref    ElementRef
	Coords Coords
}

func (o Move) Kind() OpKind { return OpMove }
func (o Move) Describe() string {
	return fmt.Sprintf("move %s on line %d to %v", o.Ref.Kind, o.Ref.Line, []float64(o.Coords))
}
func (o Move) apply(e *Engine, text string) (string, error) {
	return e.UpdateCoordinates(text, o.Ref, o.Coords)
}

// Insert inserts a statement line.
type Insert struct {
	Statement string
	Placement Placement
}

func (o Insert) Kind() OpKind { return OpInsert }
func (o Insert) Describe() string {
	return fmt.Sprintf("insert '%s'", o.Statement)
}
func (o Insert) apply(e *Engine, text string) (string, error) {
	return e.InsertElement(text, o.Statement, o.Placement)
}

// Add inserts a new element with a unique name derived from Base.
// Components with a Pipeline are added to that pipeline's block at the
// given maturity.
type Add struct {
	Element  model.Kind
	Base     string
	Point    model.Point
	Pipeline string
}

func (o Add) Kind() OpKind { return OpInsert }
func (o Add) Describe() string {
	if o.Pipeline != "" {
		return fmt.Sprintf("add '%s' to pipeline '%s'", o.Base, o.Pipeline)
	}
	return fmt.Sprintf("add %s '%s'", o.Element, o.Base)
}
func (o Add) apply(e *Engine, text string) (string, error) {
	switch {
	case o.Pipeline != "":
		result, _, err := e.AddPipelineComponent(text, o.Pipeline, o.Base, o.Point.Maturity)
		return result, err
	case o.Element == model.KindComponent || o.Element == "":
		result, _, err := e.AddComponent(text, o.Base, o.Point)
		return result, err
	case o.Element == model.KindNote:
		return e.AddNote(text, o.Base, o.Point)
	case o.Element == model.KindAnchor:
		result, _, err := e.AddAnchor(text, o.Base, o.Point)
		return result, err
	}
	return text, reject(ErrInvalidLine, "cannot add a %s", o.Element)
}

// DeleteLine removes a line regardless of its contents.
type DeleteLine struct {
	Line int
}

func (o DeleteLine) Kind() OpKind { return OpDelete }
func (o DeleteLine) Describe() string {
	return fmt.Sprintf("delete line %d", o.Line)
}
func (o DeleteLine) apply(e *Engine, text string) (string, error) {
	return e.DeleteLine(text, o.Line)
}

// Delete removes an element.
type Delete struct {
	Ref ElementRef
}

func (o Delete) Kind() OpKind { return OpDelete }
func (o Delete) Describe() string {
	return fmt.Sprintf("delete %s on line %d", o.Ref.Kind, o.Ref.Line)
}
func (o Delete) apply(e *Engine, text string) (string, error) {
	return e.DeleteElement(text, o.Ref)
}

// Rename renames an element and its references.
type Rename struct {
	Ref  ElementRef
	Name string
}

func (o Rename) Kind() OpKind { return OpRename }
func (o Rename) Describe() string {
	return fmt.Sprintf("rename %s on line %d to '%s'", o.Ref.Kind, o.Ref.Line, o.Name)
}
func (o Rename) apply(e *Engine, text string) (string, error) {
	return e.Rename(text, o.Ref, o.Name)
}

// Decorate switches a component decorator.
type Decorate struct {
	Ref       ElementRef
	Decorator Decorator
	On        bool
}

func (o Decorate) Kind() OpKind { return OpDecorate }
func (o Decorate) Describe() string {
	verb := "unset"
	if o.On {
		verb = "set"
	}
	return fmt.Sprintf("%s %s on line %d", verb, o.Decorator, o.Ref.Line)
}
func (o Decorate) apply(e *Engine, text string) (string, error) {
	return e.SetDecorator(text, o.Ref, o.Decorator, o.On)
}

// Apply performs the op on the text.
func (e *Engine) Apply(text string, op Op) (string, error) {
	return op.apply(e, text)
}

// Apply performs the op on the text with the default engine.
func Apply(text string, op Op) (string, error) {
	return defaultEngine.Apply(text, op)
}

// UpdateCoordinates is Engine.UpdateCoordinates with the default engine.
func UpdateCoordinates(text string, ref ElementRef, coords Coords) (string, error) {
	return defaultEngine.UpdateCoordinates(text, ref, coords)
}

// InsertElement is Engine.InsertElement with the default engine.
func InsertElement(text string, statement string, placement Placement) (string, error) {
	return defaultEngine.InsertElement(text, statement, placement)
}

// DeleteLineAt is Engine.DeleteLine with the default engine.
func DeleteLineAt(text string, line int) (string, error) {
	return defaultEngine.DeleteLine(text, line)
}

// RenameElement is Engine.Rename with the default engine.
func RenameElement(text string, ref ElementRef, newName string) (string, error) {
	return defaultEngine.Rename(text, ref, newName)
}

// UniqueName is Engine.UniqueName with the default engine.
func UniqueName(text string, base string) string {
	return defaultEngine.UniqueName(text, base)
}
