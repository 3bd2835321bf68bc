// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd contains the actual command definitions
// for the commands in the vsyncd tool.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cogentcore.org/vsync"
	"cogentcore.org/vsync/base/errors"
	"cogentcore.org/vsync/config"
	"cogentcore.org/vsync/driver"
	"cogentcore.org/vsync/server"
)

// initRate sets the refresh rate of c from the configuration:
// an explicit rate if one is set, and the primary display otherwise.
func initRate(c *vsync.Coordinator, cfg *config.Config, host driver.Host) error {
	if cfg.FPS > 0 {
		return c.Init(cfg.FPS)
	}
	return c.InitDisplay(host.Displays())
}

// Serve runs the vsync bridge on cfg.Listen, paced by the configured
// host, until ctx is done. The frame clock runs on the calling goroutine.
func Serve(ctx context.Context, cfg *config.Config) error {
	host, err := driver.New(cfg)
	if err != nil {
		return err
	}
	srv := server.New()
	c := vsync.New(srv, host.Loop())
	if err := initRate(c, cfg, host); err != nil {
		return err
	}
	srv.Attach(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	hs := &http.Server{Addr: cfg.Listen, Handler: srv}
	errc := make(chan error, 1)
	go func() {
		err := hs.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		cancel()
	}()
	slog.Info("vsyncd: serving", "addr", cfg.Listen, "driver", cfg.Driver, "period", c.Period())

	runErr := host.Run(ctx)

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	errors.Log(hs.Shutdown(sctx))
	select {
	case err := <-errc:
		return err
	default:
	}
	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		return nil
	}
	return runErr
}

// Probe prints the refresh rate and period of the primary display.
func Probe(w io.Writer, cfg *config.Config) error {
	host, err := driver.New(cfg)
	if err != nil {
		return err
	}
	d := host.Displays()
	id := d.Primary()
	fps, err := d.RefreshRate(id)
	if err != nil {
		return err
	}
	p, err := vsync.PeriodOf(fps)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "driver: %s\nprimary display: %d\nrefresh rate: %g fps\nperiod: %d ns (%v)\n", cfg.Driver, id, fps, p, p)
	return nil
}

// PaceStats summarizes the vsyncs received by [Pace].
type PaceStats struct {
	Frames   int
	MinDelay time.Duration
	MaxDelay time.Duration
	AvgDelay time.Duration
	Period   time.Duration
	Elapsed  time.Duration
}

func (s PaceStats) String() string {
	fps := 0.0
	if s.Elapsed > 0 {
		fps = float64(s.Frames) / s.Elapsed.Seconds()
	}
	return fmt.Sprintf("frames: %d in %v (%.2f fps)\nperiod: %v\ndelay: min %v avg %v max %v",
		s.Frames, s.Elapsed.Round(time.Millisecond), fps, s.Period, s.MinDelay, s.AvgDelay, s.MaxDelay)
}

// Pace requests frames vsyncs back to back, the way an animating
// engine does, and returns statistics about the deliveries.
func Pace(ctx context.Context, cfg *config.Config, frames int) (PaceStats, error) {
	if frames <= 0 {
		return PaceStats{}, fmt.Errorf("pace: frames must be positive, got %d", frames)
	}
	host, err := driver.New(cfg)
	if err != nil {
		return PaceStats{}, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var st PaceStats
	var total time.Duration
	var c *vsync.Coordinator
	start := time.Now()
	eng := vsync.EngineFuncs{
		Vsync: func(delay, period, cookie uint64) {
			d := time.Duration(delay)
			if st.Frames == 0 || d < st.MinDelay {
				st.MinDelay = d
			}
			st.MaxDelay = max(st.MaxDelay, d)
			total += d
			st.Period = time.Duration(period)
			st.Frames++
			if st.Frames == frames {
				st.Elapsed = time.Since(start)
				cancel()
				return
			}
			c.RequestVsync(cookie + 1)
		},
	}
	c = vsync.New(eng, host.Loop())
	if err := initRate(c, cfg, host); err != nil {
		return PaceStats{}, err
	}
	c.RequestVsync(0)
	err = host.Run(ctx)
	if st.Frames > 0 {
		st.AvgDelay = total / time.Duration(st.Frames)
	}
	if st.Frames < frames {
		return st, err
	}
	return st, nil
}
