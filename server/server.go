// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server bridges vsync to engines in other processes over
// WebSocket. Each connection is a remote engine: it sends
//
//	{"type":"request","cookie":7}
//
// and receives exactly one
//
//	{"type":"vsync","delay_ns":120000,"period_ns":16666667,"cookie":7}
//
// per request, plus {"type":"rate","fps":60} whenever the refresh rate
// changes. Cookies are scoped to their connection.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"cogentcore.org/vsync"
	"cogentcore.org/vsync/base/errors"
)

// SendBuffer is the number of outgoing messages buffered per
// connection. A connection that falls further behind is closed.
var SendBuffer = 64

// Pacer is the side of a [vsync.Coordinator] that the server uses.
type Pacer interface {
	RequestVsync(cookie uint64)
	Period() vsync.Period
	RefreshRate() float32
}

// Message is a message exchanged with a remote engine.
// Only the fields of its Type are encoded, and those are
// always present, even when zero.
type Message struct {
	Type     string  `json:"type"`
	Cookie   uint64  `json:"cookie,omitempty"`
	DelayNS  uint64  `json:"delay_ns,omitempty"`
	PeriodNS uint64  `json:"period_ns,omitempty"`
	FPS      float32 `json:"fps,omitempty"`
}

// MarshalJSON encodes the fields that belong to the message type.
func (m Message) MarshalJSON() ([]byte, error) {
	switch m.Type {
	case TypeRequest:
		return json.Marshal(struct {
			Type   string `json:"type"`
			Cookie uint64 `json:"cookie"`
		}{m.Type, m.Cookie})
	case TypeVsync:
		return json.Marshal(struct {
			Type     string `json:"type"`
			DelayNS  uint64 `json:"delay_ns"`
			PeriodNS uint64 `json:"period_ns"`
			Cookie   uint64 `json:"cookie"`
		}{m.Type, m.DelayNS, m.PeriodNS, m.Cookie})
	case TypeRate:
		return json.Marshal(struct {
			Type string  `json:"type"`
			FPS  float32 `json:"fps"`
		}{m.Type, m.FPS})
	}
	type plain Message
	return json.Marshal(plain(m))
}

// Message types.
const (
	TypeRequest = "request"
	TypeVsync   = "vsync"
	TypeRate    = "rate"
)

// pending maps a coordinator cookie back to its connection.
type pending struct {
	conn   *conn
	cookie uint64
}

// Server is a [vsync.Engine] that forwards vsync to remote engines.
type Server struct {
	router   *mux.Router
	upgrader websocket.Upgrader

	pacer atomic.Pointer[Pacer]
	next  atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]pending
	conns   map[*conn]struct{}
}

var _ vsync.Engine = (*Server)(nil)

// New returns a new [Server]. It must be attached to the coordinator
// it is the engine of with [Server.Attach] before serving.
func New() *Server {
	s := &Server{
		pending: map[uint64]pending{},
		conns:   map[*conn]struct{}{},
	}
	s.router = mux.NewRouter()
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/period", s.handlePeriod).Methods(http.MethodGet)
	s.router.HandleFunc("/vsync", s.handleVsync)
	return s
}

// Attach sets the coordinator that requests are sent to.
func (s *Server) Attach(p Pacer) {
	s.pacer.Store(&p)
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// OnVsync implements [vsync.Engine].
func (s *Server) OnVsync(delay, period, cookie uint64) {
	s.mu.Lock()
	p, ok := s.pending[cookie]
	delete(s.pending, cookie)
	s.mu.Unlock()
	if !ok {
		return
	}
	p.conn.send(Message{Type: TypeVsync, Cookie: p.cookie, DelayNS: delay, PeriodNS: period})
}

// SetRefreshRate implements [vsync.Engine].
func (s *Server) SetRefreshRate(fps float32) {
	s.mu.Lock()
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		c.send(Message{Type: TypeRate, FPS: fps})
	}
}

// Connections returns the number of connected remote engines.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) request(c *conn, cookie uint64) {
	p := s.pacer.Load()
	if p == nil {
		slog.Warn("server: vsync requested before attach", "cookie", cookie)
		return
	}
	id := s.next.Add(1)
	s.mu.Lock()
	s.pending[id] = pending{conn: c, cookie: cookie}
	s.mu.Unlock()
	(*p).RequestVsync(id)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// PeriodResponse is the response of GET /period.
type PeriodResponse struct {
	PeriodNS int64   `json:"period_ns"`
	FPS      float32 `json:"fps"`
}

func (s *Server) handlePeriod(w http.ResponseWriter, r *http.Request) {
	p := s.pacer.Load()
	if p == nil {
		http.Error(w, "not attached", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	errors.Log(json.NewEncoder(w).Encode(PeriodResponse{PeriodNS: int64((*p).Period()), FPS: (*p).RefreshRate()}))
}

func (s *Server) handleVsync(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	c := &conn{ws: ws, out: make(chan Message, SendBuffer), done: make(chan struct{})}
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
	slog.Info("server: engine connected", "remote", r.RemoteAddr)

	go c.writeLoop()
	s.readLoop(c)

	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	c.close()
	slog.Info("server: engine disconnected", "remote", r.RemoteAddr)
}

func (s *Server) readLoop(c *conn) {
	for {
		var m Message
		if err := c.ws.ReadJSON(&m); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("server: read", "err", err)
			}
			return
		}
		switch m.Type {
		case TypeRequest:
			s.request(c, m.Cookie)
		default:
			slog.Warn("server: unknown message type", "type", m.Type)
		}
	}
}

// conn is one remote engine. Messages are written by a single
// goroutine, as gorilla/websocket requires.
type conn struct {
	ws   *websocket.Conn
	out  chan Message
	once sync.Once
	done chan struct{}
}

// send queues m without blocking the frame clock. A connection that
// cannot keep up is closed.
func (c *conn) send(m Message) {
	select {
	case <-c.done:
	case c.out <- m:
	default:
		slog.Warn("server: engine too slow, closing connection")
		c.close()
	}
}

func (c *conn) close() {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

func (c *conn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case m := <-c.out:
			if err := c.ws.WriteJSON(m); err != nil {
				c.close()
				return
			}
		}
	}
}
