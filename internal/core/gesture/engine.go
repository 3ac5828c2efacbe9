// Package gesture implements the pinch-zoom and pan state machine: it
// consumes raw touch batches, derives incremental similarity transforms
// from them, composes those onto the committed transform and emits
// render descriptors, including an animated return to identity on
// double tap.
package gesture

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gesturekit/gesturekit/internal/core/events/bus"
	"github.com/gesturekit/gesturekit/internal/core/geometry"
	"github.com/gesturekit/gesturekit/internal/core/observability/log"
	"github.com/gesturekit/gesturekit/internal/core/transform"
)

const (
	// tapWindow is how long a single tap stays pending before a second
	// tap no longer counts as a double tap.
	tapWindow = 300 * time.Millisecond
	// resetDuration is the length of the animated return to identity.
	resetDuration = 100 * time.Millisecond
)

// panOffset turns a single contact into a solvable degenerate pair.
var panOffset = geometry.Vector{X: 1, Y: 1}

// Event types published on the bus.
const (
	EventSessionStarted = "gesture.session.started"
	EventSessionEnded   = "gesture.session.ended"
	EventReset          = "gesture.reset"
	EventRender         = "gesture.render"
)

// Deps are the engine's collaborators. Surface and Sink are required;
// the rest have working defaults.
type Deps struct {
	Surface Surface
	Sink    RenderSink
	Clock   Clock          // nil: SystemClock
	Frames  FrameScheduler // nil: reset commits identity instantly
	Logger  log.Log        // nil: no logging
	Events  *bus.Bus       // nil: no notifications
}

// Engine is the gesture state machine for one surface. All state
// mutation happens inside Handle and the timer/frame callbacks, which
// the internal mutex serializes.
type Engine struct {
	mu sync.Mutex

	id     string
	cfg    Config
	surf   Surface
	sink   RenderSink
	clock  Clock
	frames FrameScheduler
	logger log.Log
	events *bus.Bus

	// zooming: a pan/pinch session is in progress. inZoom: the surface
	// currently shows a non-identity transform (vs. native scroll).
	zooming   bool
	inZoom    bool
	active    transform.Transform // committed at gesture finalization only
	resultant transform.Transform // live preview during a session
	srcPair   transform.PointPair
	tapped    bool
	cancelTap func()

	// resetGen invalidates frame callbacks of an abandoned reset
	// animation so they never clobber a newer gesture's transform.
	resetGen uint64
}

// New builds an engine for one surface.
func New(cfg Config, deps Deps) (*Engine, error) {
	if deps.Surface == nil {
		return nil, errors.New("gesture: surface is required")
	}
	if deps.Sink == nil {
		return nil, errors.New("gesture: render sink is required")
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock()
	}
	if deps.Logger == nil {
		deps.Logger = log.Nop()
	}

	id := uuid.NewString()
	return &Engine{
		id:        id,
		cfg:       cfg,
		surf:      deps.Surface,
		sink:      deps.Sink,
		clock:     deps.Clock,
		frames:    deps.Frames,
		logger:    deps.Logger.With(zap.String("engine", id)),
		events:    deps.Events,
		active:    transform.Identity(),
		resultant: transform.Identity(),
	}, nil
}

// ID returns the engine's identifier, used as the event source.
func (e *Engine) ID() string { return e.id }

// Handle processes one touch batch and reports whether the engine
// claimed it. A claimed batch must have its native default handling
// suppressed by the caller; an unclaimed one proceeds natively.
func (e *Engine) Handle(b TouchBatch) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch b.Phase {
	case PhaseStart:
		return e.handleStart(b)
	case PhaseMove:
		return e.handleMove(b)
	case PhaseEnd:
		return e.handleEnd()
	default:
		return false
	}
}

// Reset returns the surface to identity, animated when a frame
// scheduler is available.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// Active returns the last committed transform.
func (e *Engine) Active() transform.Transform {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// InZoom reports whether the surface currently shows a transform.
func (e *Engine) InZoom() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inZoom
}

func (e *Engine) handleStart(b TouchBatch) bool {
	switch len(b.Points) {
	case 2:
		pair, _ := e.currentPair(b.Points)
		e.beginSession(pair, 2)
		return true

	case 1:
		if e.tapped {
			// Second tap inside the window: double tap.
			e.clearTap()
			e.logger.Debug("double tap")
			e.resetLocked()
			return true
		}

		e.tapped = true
		e.cancelTap = e.clock.AfterFunc(tapWindow, func() {
			e.mu.Lock()
			e.tapped = false
			e.cancelTap = nil
			e.mu.Unlock()
		})

		if e.cfg.Pan {
			p := b.Points[0].Sub(e.surf.Metrics().Origin)
			e.beginSession(transform.PointPair{p, p.Add(panOffset)}, 1)
		}
		return true

	default:
		// Zero or three-plus contacts: not a gesture this engine
		// recognizes, let the host handle it natively.
		return false
	}
}

func (e *Engine) handleMove(b TouchBatch) bool {
	if !e.zooming && !e.inZoom {
		return false
	}
	if !e.zooming {
		// Mid-transform without a session: claim the move so native
		// scrolling doesn't fight the applied transform.
		return true
	}

	cur, ok := e.currentPair(b.Points)
	if !ok {
		return true
	}
	if e.srcPair.Delta().IsZero() {
		// Coincident source points cannot be solved; skip the update.
		return true
	}

	inc := transform.Solve(e.srcPair, cur, e.cfg.Rotate)
	e.resultant = transform.Cascade(inc, e.active)
	e.render()
	return true
}

func (e *Engine) handleEnd() bool {
	if e.zooming {
		e.zooming = false
		e.active = e.resultant
		e.logger.Debug("session ended")
		e.publish(EventSessionEnded, e.active)
		return true
	}
	return e.inZoom
}

// currentPair derives the session point pair from a batch, relative to
// the surface origin: two contacts directly, one contact as a
// degenerate pan pair when panning is enabled.
func (e *Engine) currentPair(points []geometry.Vector) (transform.PointPair, bool) {
	origin := e.surf.Metrics().Origin
	switch len(points) {
	case 2:
		return transform.PointPair{points[0].Sub(origin), points[1].Sub(origin)}, true
	case 1:
		if !e.cfg.Pan {
			return transform.PointPair{}, false
		}
		p := points[0].Sub(origin)
		return transform.PointPair{p, p.Add(panOffset)}, true
	default:
		return transform.PointPair{}, false
	}
}

func (e *Engine) beginSession(pair transform.PointPair, contacts int) {
	e.resetGen++ // abandon any in-flight reset animation
	e.zooming = true
	e.srcPair = pair
	e.resultant = e.active
	e.logger.Debug("session started", zap.Int("contacts", contacts))
	e.publish(EventSessionStarted, contacts)
}

func (e *Engine) clearTap() {
	e.tapped = false
	if e.cancelTap != nil {
		e.cancelTap()
		e.cancelTap = nil
	}
}

// resetLocked starts the animated return to identity. Callers hold mu.
func (e *Engine) resetLocked() {
	e.resetGen++
	gen := e.resetGen
	e.zooming = false
	e.publish(EventReset, nil)

	if e.frames == nil {
		e.commit(transform.Identity())
		return
	}

	z := e.active
	start := e.clock.Now()

	var step func(now time.Time)
	step = func(now time.Time) {
		e.mu.Lock()
		defer e.mu.Unlock()
		if gen != e.resetGen {
			return // a newer gesture owns the transform
		}

		progress := float64(now.Sub(start)) / float64(resetDuration)
		if progress >= 1 {
			e.commit(transform.Identity())
			return
		}
		e.commit(transform.Lerp(z, transform.Identity(), progress))
		e.frames.Schedule(step)
	}
	e.frames.Schedule(step)
}

// commit finalizes a transform: it becomes the active one and is
// rendered immediately.
func (e *Engine) commit(tr transform.Transform) {
	e.active = tr
	e.resultant = tr
	e.render()
}

func (e *Engine) render() {
	m := e.surf.Metrics()
	d := transform.Render(e.resultant, m.Boundary())

	if !e.inZoom && d != nil {
		// Entering transformed mode changes how the scroll offset is
		// read; memo the last native value for the surface.
		e.surf.RememberScroll(m.ScrollTop)
	}
	e.inZoom = d != nil

	e.sink.Render(d)
	e.publish(EventRender, d)
}

// publish runs with mu held; bus handlers are synchronous and must not
// call back into the engine.
func (e *Engine) publish(typ string, data any) {
	if e.events == nil {
		return
	}
	e.events.Publish(bus.Event{Type: typ, Source: e.id, Time: e.clock.Now(), Data: data})
}
