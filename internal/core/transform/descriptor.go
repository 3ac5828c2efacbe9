package transform

import (
	"math"
)

// Descriptor is the six-number affine matrix handed to the presentation
// layer, in CSS matrix(a,b,c,d,e,f) order: (A,B) is the image of the
// x-axis, (C,D) the image of the y-axis, (E,F) the translation.
type Descriptor struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
	E float64 `json:"e"`
	F float64 `json:"f"`
}

// Boundary carries the scroll and dimension data needed to clamp pan so
// content cannot be dragged past its edges. All values are in CSS pixels
// with the page coordinate convention: origin top-left, Y down, scroll
// offset measured from the top. The clamping arithmetic in Render depends
// on these conventions exactly; flipping a sign breaks it silently.
type Boundary struct {
	ScrollTop      float64 `json:"scrollTop"`
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
	ContentWidth   float64 `json:"contentWidth"`
	ContentHeight  float64 `json:"contentHeight"`
}

// Render converts a transform into a presentation descriptor, flooring
// the diagonal scale factors at 1 (zooming out below native size is
// disallowed) and, when a boundary is given, clamping the translation so
// the content edges stay pinned to the viewport.
//
// A nil result means native scroll mode: the surface should drop its
// transform and scroll normally. That happens only with a boundary, when
// both floored scale factors are exactly 1. Without a boundary the
// scale-floored descriptor is always returned.
func Render(tr Transform, b *Boundary) *Descriptor {
	m, t := tr.M, tr.T
	if m.X.X < 1 {
		m.X.X = 1
	}
	if m.Y.Y < 1 {
		m.Y.Y = 1
	}

	if b == nil {
		return &Descriptor{A: m.X.X, B: m.X.Y, C: m.Y.X, D: m.Y.Y, E: t.X, F: t.Y}
	}

	sx := m.X.X
	dx := b.ContentWidth*sx - b.ContentWidth

	// Vertical overscroll bound: when the viewport is shorter than the
	// scaled content the native scroll position eats into the room left
	// to pan; otherwise only the size difference matters.
	var dy float64
	if b.ViewportHeight < b.ContentHeight*sx {
		dy = b.ContentHeight*sx - b.ViewportHeight - b.ScrollTop*sx
	} else {
		dy = math.Abs(b.ViewportHeight - b.ContentHeight*sx)
	}

	t.X = clamp(t.X, -dx, 0)
	t.Y = clamp(t.Y, -dy, b.ScrollTop*sx)

	if m.X.X == 1 && m.Y.Y == 1 {
		return nil
	}

	// The transform composes on top of the browser's own scroll offset,
	// so the vertical translation compensates for it.
	return &Descriptor{
		A: m.X.X, B: m.X.Y,
		C: m.Y.X, D: m.Y.Y,
		E: t.X, F: t.Y - b.ScrollTop*sx,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
