package gesture

import (
	"time"

	"github.com/gesturekit/gesturekit/internal/core/geometry"
	"github.com/gesturekit/gesturekit/internal/core/transform"
)

// Clock abstracts wall time and one-shot timers so the tap window and
// reset animation are testable with a fake clock.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules fn after d and returns a cancel func. fn runs
	// on an arbitrary goroutine; the engine serializes it internally.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// FrameScheduler is the request-animation-frame equivalent. It may be
// absent entirely (a nil FrameScheduler degrades the reset animation to
// an instantaneous commit). Schedule registers fn for a later frame and
// must not invoke it synchronously.
type FrameScheduler interface {
	Schedule(fn func(now time.Time))
}

// Surface is the visual surface the gestures act on. It reports the
// geometry needed for pan clamping and accepts a scroll memo, because
// switching into transformed mode changes how the scroll offset is read.
type Surface interface {
	Metrics() SurfaceMetrics
	RememberScroll(top float64)
}

// SurfaceMetrics is a snapshot of the surface geometry in CSS pixels.
type SurfaceMetrics struct {
	Origin         geometry.Vector
	ScrollTop      float64
	ViewportWidth  float64
	ViewportHeight float64
	ContentWidth   float64
	ContentHeight  float64
}

// Boundary converts the snapshot into the clamping context used at
// render time.
func (m SurfaceMetrics) Boundary() *transform.Boundary {
	return &transform.Boundary{
		ScrollTop:      m.ScrollTop,
		ViewportWidth:  m.ViewportWidth,
		ViewportHeight: m.ViewportHeight,
		ContentWidth:   m.ContentWidth,
		ContentHeight:  m.ContentHeight,
	}
}

// RenderSink receives the outcome of every engine render. A nil
// descriptor means native scroll mode: the presentation layer should
// drop its transform and restore normal overflow behavior.
type RenderSink interface {
	Render(d *transform.Descriptor)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }

type intervalFrames struct {
	interval time.Duration
}

func (f intervalFrames) Schedule(fn func(time.Time)) {
	time.AfterFunc(f.interval, func() { fn(time.Now()) })
}

// FramesAt returns a FrameScheduler ticking at the given interval,
// standing in for a display-synchronized frame callback.
func FramesAt(interval time.Duration) FrameScheduler {
	return intervalFrames{interval: interval}
}
