// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import "time"

var epoch = time.Now()

func fallbackNow() int64 {
	return int64(time.Since(epoch))
}
