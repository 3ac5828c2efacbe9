package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gesturekit/gesturekit/internal/core/events/bus"
	"github.com/gesturekit/gesturekit/internal/core/gesture"
	"github.com/gesturekit/gesturekit/internal/core/observability/log"
	"github.com/gesturekit/gesturekit/internal/core/transform"
)

// remoteSurface mirrors the client's surface geometry on the server
// side. The read loop updates it from hello/surface messages; the
// engine reads it on every render.
type remoteSurface struct {
	mu         sync.Mutex
	metrics    gesture.SurfaceMetrics
	lastScroll float64
}

func (r *remoteSurface) Metrics() gesture.SurfaceMetrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metrics
}

func (r *remoteSurface) RememberScroll(top float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastScroll = top
}

// LastScroll returns the scroll offset memo taken when the surface
// entered transformed mode.
func (r *remoteSurface) LastScroll() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastScroll
}

func (r *remoteSurface) update(p surfacePayload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = p.metrics()
}

// frameDedup suppresses consecutive identical render frames; the reset
// animation in particular can repeat its final identity frame.
type frameDedup struct {
	seen bool
	last uint64
}

func (f *frameDedup) changed(payload []byte) bool {
	h := xxhash.Sum64(payload)
	if f.seen && h == f.last {
		return false
	}
	f.seen = true
	f.last = h
	return true
}

// session binds one websocket connection to one gesture engine. It is
// the engine's render sink: descriptors stream back on the same
// connection the touches arrive on.
type session struct {
	id      string
	conn    *websocket.Conn
	surface *remoteSurface
	engine  *gesture.Engine
	logger  log.Log

	writeTimeout time.Duration

	// The engine renders from the read loop and from animation frame
	// callbacks; writes must be serialized.
	writeMu sync.Mutex
	dedup   frameDedup
}

func newSession(
	conn *websocket.Conn,
	cfg gesture.Config,
	frames gesture.FrameScheduler,
	events *bus.Bus,
	logger log.Log,
	writeTimeout time.Duration,
) (*session, error) {
	s := &session{
		id:           uuid.NewString(),
		conn:         conn,
		surface:      &remoteSurface{},
		writeTimeout: writeTimeout,
	}
	s.logger = logger.With(zap.String("session", s.id))

	engine, err := gesture.New(cfg, gesture.Deps{
		Surface: s.surface,
		Sink:    s,
		Frames:  frames,
		Logger:  s.logger,
		Events:  events,
	})
	if err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

// run reads client messages until the connection drops.
func (s *session) run() {
	s.logger.Info("session opened", zap.String("remote", s.conn.RemoteAddr().String()))
	defer s.logger.Info("session closed")

	for {
		var msg clientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("read failed", zap.Error(err))
			}
			return
		}
		s.dispatch(msg)
	}
}

func (s *session) dispatch(msg clientMessage) {
	switch msg.Type {
	case msgHello, msgSurface:
		if msg.Surface == nil {
			s.logger.Warn("surface message without payload")
			return
		}
		s.surface.update(*msg.Surface)

	case msgTouch:
		if msg.Surface != nil {
			s.surface.update(*msg.Surface)
		}
		phase, err := parsePhase(msg.Phase)
		if err != nil {
			s.logger.Warn("bad touch batch", zap.Error(err))
			return
		}
		claimed := s.engine.Handle(gesture.TouchBatch{Phase: phase, Points: msg.Points})
		s.send(serverMessage{Type: msgClaimed, Claimed: &claimed})

	case msgReset:
		s.engine.Reset()

	default:
		s.logger.Warn("unknown message type", zap.String("type", msg.Type))
	}
}

// Render implements gesture.RenderSink.
func (s *session) Render(d *transform.Descriptor) {
	s.send(serverMessage{Type: msgRender, Descriptor: d, Native: d == nil})
}

func (s *session) send(msg serverMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("encode message", zap.Error(err))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if msg.Type == msgRender && !s.dedup.changed(payload) {
		return
	}

	if s.writeTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if err = s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.logger.Warn("write failed", zap.Error(err))
	}
}
