// Package server exposes the gesture engine over a websocket touch
// stream: a browser page sends its surface geometry and touch batches,
// and receives transform descriptors to apply.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gesturekit/gesturekit/internal/config"
	"github.com/gesturekit/gesturekit/internal/core/events/bus"
	"github.com/gesturekit/gesturekit/internal/core/gesture"
	"github.com/gesturekit/gesturekit/internal/core/observability/log"
)

// frameInterval approximates a 60Hz display for reset animations.
const frameInterval = 16 * time.Millisecond

// Server accepts touch-stream connections and runs one gesture engine
// per connection.
type Server struct {
	cfg        config.ServerConfig
	gestureCfg gesture.Config
	logger     log.Log
	events     *bus.Bus
	frames     gesture.FrameScheduler
	upgrader   websocket.Upgrader
	http       *http.Server

	sessionsStarted int64
	sessionsEnded   int64
	resets          int64
	renders         int64
}

// New wires a server from the loaded configuration.
func New(cfg config.Config, logger log.Log) *Server {
	s := &Server{
		cfg:        cfg.Server,
		gestureCfg: cfg.Gesture.Resolve(),
		logger:     logger.With(zap.String("component", "server")),
		events:     bus.New(),
		frames:     gesture.FramesAt(frameInterval),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.observeGestures()
	return s
}

// observeGestures counts gesture lifecycle events for the stats
// endpoint.
func (s *Server) observeGestures() {
	s.events.Subscribe(gesture.EventSessionStarted, func(e bus.Event) {
		atomic.AddInt64(&s.sessionsStarted, 1)
	})
	s.events.Subscribe(gesture.EventSessionEnded, func(e bus.Event) {
		atomic.AddInt64(&s.sessionsEnded, 1)
	})
	s.events.Subscribe(gesture.EventReset, func(e bus.Event) {
		atomic.AddInt64(&s.resets, 1)
		s.logger.Debug("reset triggered", zap.String("engine", e.Source))
	})
	s.events.Subscribe(gesture.EventRender, func(e bus.Event) {
		atomic.AddInt64(&s.renders, 1)
	})
}

// Run serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	s.http = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.logger.Info("listening", zap.String("addr", addr))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sess, err := newSession(conn, s.gestureCfg, s.frames, s.events, s.logger, s.cfg.WriteTimeout)
	if err != nil {
		s.logger.Error("session setup failed", zap.Error(err))
		return
	}
	sess.run()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w,
		`{"sessions_started":%d,"sessions_ended":%d,"resets":%d,"renders":%d}`,
		atomic.LoadInt64(&s.sessionsStarted),
		atomic.LoadInt64(&s.sessionsEnded),
		atomic.LoadInt64(&s.resets),
		atomic.LoadInt64(&s.renders),
	)
}
