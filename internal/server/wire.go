package server

import (
	"fmt"

	"github.com/gesturekit/gesturekit/internal/core/geometry"
	"github.com/gesturekit/gesturekit/internal/core/gesture"
	"github.com/gesturekit/gesturekit/internal/core/transform"
)

// Message types on the touch-stream protocol. The client announces its
// surface with hello, refreshes it with surface (scroll/resize), and
// streams touch batches; the server answers each batch with claimed and
// pushes render frames as the engine produces them.
const (
	msgHello   = "hello"
	msgSurface = "surface"
	msgTouch   = "touch"
	msgReset   = "reset"

	msgClaimed = "claimed"
	msgRender  = "render"
)

// surfacePayload is the client's surface geometry snapshot, in CSS
// pixels.
type surfacePayload struct {
	Origin         geometry.Vector `json:"origin"`
	ScrollTop      float64         `json:"scrollTop"`
	ViewportWidth  float64         `json:"viewportWidth"`
	ViewportHeight float64         `json:"viewportHeight"`
	ContentWidth   float64         `json:"contentWidth"`
	ContentHeight  float64         `json:"contentHeight"`
}

func (p surfacePayload) metrics() gesture.SurfaceMetrics {
	return gesture.SurfaceMetrics{
		Origin:         p.Origin,
		ScrollTop:      p.ScrollTop,
		ViewportWidth:  p.ViewportWidth,
		ViewportHeight: p.ViewportHeight,
		ContentWidth:   p.ContentWidth,
		ContentHeight:  p.ContentHeight,
	}
}

// clientMessage is anything the browser sends.
type clientMessage struct {
	Type    string            `json:"type"`
	Surface *surfacePayload   `json:"surface,omitempty"`
	Phase   string            `json:"phase,omitempty"`
	Points  []geometry.Vector `json:"points,omitempty"`
}

// serverMessage is anything the server sends back.
type serverMessage struct {
	Type string `json:"type"`
	// Descriptor is the transform to apply; nil with Native set means
	// drop the transform and scroll natively.
	Descriptor *transform.Descriptor `json:"descriptor,omitempty"`
	Native     bool                  `json:"native,omitempty"`
	Claimed    *bool                 `json:"claimed,omitempty"`
}

func parsePhase(s string) (gesture.Phase, error) {
	switch s {
	case "start":
		return gesture.PhaseStart, nil
	case "move":
		return gesture.PhaseMove, nil
	case "end":
		return gesture.PhaseEnd, nil
	default:
		return 0, fmt.Errorf("unknown touch phase %q", s)
	}
}
