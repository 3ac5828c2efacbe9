package gesture

import (
	"github.com/gesturekit/gesturekit/internal/core/geometry"
)

// Phase tags a touch batch with its position in the contact lifecycle.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// TouchBatch is one delivery of the host's touch state: the phase that
// triggered it and the full set of active contact points, in pixels
// relative to the page.
type TouchBatch struct {
	Phase  Phase
	Points []geometry.Vector
}
