// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package displayfile

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"

	"cogentcore.org/vsync/base/errors"
	"cogentcore.org/vsync/driver/offscreen"
)

// Host is an [offscreen.Host] whose screens follow a display file.
type Host struct {
	*offscreen.Host
	path string
}

// NewHost reads the display file at path and returns a [Host]
// for it. The file is watched while the host runs.
func NewHost(path string) (*Host, error) {
	f, err := Read(path)
	if err != nil {
		return nil, err
	}
	s := offscreen.NewScreens()
	Apply(s, f)
	return &Host{Host: offscreen.NewHostFor(s), path: path}, nil
}

// Path returns the path of the display file.
func (h *Host) Path() string {
	return h.path
}

// Reload reads the display file again and applies any changes.
func (h *Host) Reload() error {
	f, err := Read(h.path)
	if err != nil {
		return err
	}
	Apply(h.Screens(), f)
	return nil
}

// Run watches the display file and runs the frame clock on the
// calling goroutine until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// watch the directory: editors often replace the file instead of writing it
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		return err
	}
	go h.watch(ctx, watcher)
	return h.Host.Run(ctx)
}

func (h *Host) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	name := filepath.Clean(h.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				slog.Debug("displayfile: reloading", "path", h.path, "op", event.Op)
				if err := h.Reload(); err != nil {
					slog.Warn("displayfile: keeping previous displays", "path", h.path, "err", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			errors.Log(err)
		}
	}
}

// Apply updates s to match f, notifying the listeners of s of
// every display that was added, changed, or removed.
func Apply(s *offscreen.Screens, f *File) {
	keep := make([]int, 0, len(f.Displays))
	for _, d := range f.Displays {
		keep = append(keep, d.ID)
		sc := offscreen.Screen{Name: d.Name, RefreshRate: d.RefreshRate}
		old, ok := s.Screen(d.ID)
		switch {
		case !ok:
			s.AddWithID(d.ID, sc)
		case old.Name != sc.Name:
			s.AddWithID(d.ID, sc)
		case old.RefreshRate != sc.RefreshRate:
			errors.Log(s.SetRefreshRate(d.ID, sc.RefreshRate))
		}
	}
	if f.Primary != nil {
		errors.Log(s.SetPrimary(*f.Primary))
	}
	for _, id := range s.IDs() {
		if !slices.Contains(keep, id) {
			s.Remove(id)
		}
	}
}
