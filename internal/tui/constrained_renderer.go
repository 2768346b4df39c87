package tui

import "github.com/gdamore/tcell/v2"

// CR is a constrained renderer.
// It only allows rendering using the underlying renderer within the set
// dimension constraint, so that e.g. a long label on the canvas cannot spill
// into the element list.
//
// Non-conforming rendering requests are corrected to be within the bounds.
type CR struct {
	renderer Renderer

	constraint func() (x, y, w, h int)
}

// NewConstrainedRenderer returns a renderer drawing through the given one,
// but only within the constraint.
func NewConstrainedRenderer(
	renderer Renderer,
	constraint func() (x, y, w, h int),
) *CR {
	return &CR{
		renderer:   renderer,
		constraint: constraint,
	}
}

// Dimensions returns the constraint.
func (r *CR) Dimensions() (x, y, w, h int) {
	return r.constraint()
}

// DrawText draws the given text, within the given dimensions, constrained by
// the set constraint, in the given style.
func (r *CR) DrawText(x, y, w, h int, style tcell.Style, text string) {
	cx, cy, cw, ch := r.constrain(x, y, w, h)
	if cx != x || cy != y {
		// the text's start is outside, and wrapping would misplace the rest
		return
	}
	r.renderer.DrawText(cx, cy, cw, ch, style, text)
}

// DrawBox draws a box of the given dimensions, constrained by the set
// constraint, in the given style.
func (r *CR) DrawBox(x, y, w, h int, style tcell.Style) {
	cx, cy, cw, ch := r.constrain(x, y, w, h)
	r.renderer.DrawBox(cx, cy, cw, ch, style)
}

func (r *CR) constrain(rawX, rawY, rawW, rawH int) (constrainedX, constrainedY, constrainedW, constrainedH int) {
	xConstraint, yConstraint, wConstraint, hConstraint := r.constraint()

	// ensure x, y in bounds, shorten width,height if x,y needed to be moved
	if rawX < xConstraint {
		constrainedX = xConstraint
		rawW -= xConstraint - rawX
	} else {
		constrainedX = rawX
	}
	if rawY < yConstraint {
		constrainedY = yConstraint
		rawH -= yConstraint - rawY
	} else {
		constrainedY = rawY
	}

	maxAllowableW := wConstraint - (constrainedX - xConstraint)
	maxAllowableH := hConstraint - (constrainedY - yConstraint)

	constrainedW = min(rawW, maxAllowableW)
	constrainedH = min(rawH, maxAllowableH)

	return constrainedX, constrainedY, constrainedW, constrainedH
}
