// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !(android || ios || js || offscreen) && cgo

package driver

import "cogentcore.org/vsync/driver/desktop"

func newDesktop() (Host, error) {
	h, err := desktop.NewHost()
	if err != nil {
		return nil, err
	}
	return h, nil
}
