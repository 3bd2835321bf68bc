// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build android || ios || js || offscreen || !cgo

package driver

import "errors"

func newDesktop() (Host, error) {
	return nil, errors.New("driver: the desktop driver is not available in this build")
}
