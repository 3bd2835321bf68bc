// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vsync"
	"cogentcore.org/vsync/driver/offscreen"
)

func newTestServer(t *testing.T, fps float32) (*Server, *httptest.Server, *offscreen.Host) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	host := offscreen.NewHost(offscreen.Screen{Name: "main", RefreshRate: fps})
	s := New()
	c := vsync.New(s, host.Loop())
	require.NoError(t, c.InitDisplay(host.Displays()))
	s.Attach(c)
	go host.Run(ctx)

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return s, ts, host
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/vsync"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func TestPeriod(t *testing.T) {
	_, ts, _ := newTestServer(t, 120)
	resp, err := http.Get(ts.URL + "/period")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var pr PeriodResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pr))
	assert.Equal(t, int64(8_333_333), pr.PeriodNS)
	assert.Equal(t, float32(120), pr.FPS)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPeriodNotAttached(t *testing.T) {
	ts := httptest.NewServer(New())
	defer ts.Close()
	resp, err := http.Get(ts.URL + "/period")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestVsyncRoundTrip(t *testing.T) {
	_, ts, _ := newTestServer(t, 500)
	a := dial(t, ts)
	b := dial(t, ts)

	// both connections use the same cookies; each gets its own answers
	for _, ws := range []*websocket.Conn{a, b} {
		require.NoError(t, ws.WriteJSON(Message{Type: TypeRequest, Cookie: 1}))
		require.NoError(t, ws.WriteJSON(Message{Type: TypeRequest, Cookie: 2}))
	}
	for _, ws := range []*websocket.Conn{a, b} {
		got := map[uint64]int{}
		for range 2 {
			require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
			var m Message
			require.NoError(t, ws.ReadJSON(&m))
			assert.Equal(t, TypeVsync, m.Type)
			assert.Equal(t, uint64(2_000_000), m.PeriodNS)
			got[m.Cookie]++
		}
		assert.Equal(t, map[uint64]int{1: 1, 2: 1}, got)
	}
}

func TestVsyncZeroCookieKeepsFields(t *testing.T) {
	_, ts, _ := newTestServer(t, 500)
	ws := dial(t, ts)
	require.NoError(t, ws.WriteJSON(Message{Type: TypeRequest, Cookie: 0}))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := ws.ReadMessage()
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "vsync", fields["type"])
	assert.Equal(t, float64(0), fields["cookie"])
	assert.Contains(t, fields, "delay_ns")
	assert.Equal(t, float64(2_000_000), fields["period_ns"])
	assert.NotContains(t, fields, "fps")
}

func TestMessageEncoding(t *testing.T) {
	b, err := json.Marshal(Message{Type: TypeVsync})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"vsync","delay_ns":0,"period_ns":0,"cookie":0}`, string(b))

	b, err = json.Marshal(Message{Type: TypeRate, FPS: 90})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"rate","fps":90}`, string(b))

	b, err = json.Marshal(Message{Type: TypeRequest})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"request","cookie":0}`, string(b))
}

func TestRateBroadcast(t *testing.T) {
	s, ts, host := newTestServer(t, 60)
	ws := dial(t, ts)
	require.Eventually(t, func() bool { return s.Connections() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, host.Screens().SetRefreshRate(0, 90))
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Message
	require.NoError(t, ws.ReadJSON(&m))
	assert.Equal(t, Message{Type: TypeRate, FPS: 90}, m)

	ws.Close()
	require.Eventually(t, func() bool { return s.Connections() == 0 }, time.Second, time.Millisecond)
}

func TestVsyncAfterDisconnectIsDropped(t *testing.T) {
	s := New()
	c := &conn{out: make(chan Message, 1), done: make(chan struct{})}
	close(c.done)
	s.pending[5] = pending{conn: c, cookie: 1}
	assert.NotPanics(t, func() { s.OnVsync(0, 0, 5) })
	assert.Empty(t, s.pending)
	// unknown cookies are ignored
	s.OnVsync(0, 0, 99)
}
