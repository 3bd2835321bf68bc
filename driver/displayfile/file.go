// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package displayfile provides a host whose displays are described
// by a YAML file that is watched for changes. It suits headless and
// kiosk machines where an external agent knows the display mode, e.g.
//
//	primary: 0
//	displays:
//	  - id: 0
//	    name: HDMI-1
//	    refresh_rate: 60
//	  - id: 1
//	    name: DP-2
//	    refresh_rate: 144
package displayfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the contents of a display file.
type File struct {

	// Primary is the id of the primary display. It defaults to
	// the first display listed.
	Primary *int `yaml:"primary,omitempty"`

	// Displays are the displays, in any order.
	Displays []Display `yaml:"displays"`
}

// Display is one display in a [File].
type Display struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name,omitempty"`
	RefreshRate float32 `yaml:"refresh_rate"`
}

// Parse parses and validates the given display file contents.
func Parse(b []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("displayfile: %w", err)
	}
	if len(f.Displays) == 0 {
		return nil, fmt.Errorf("displayfile: no displays")
	}
	seen := make(map[int]bool, len(f.Displays))
	for _, d := range f.Displays {
		if seen[d.ID] {
			return nil, fmt.Errorf("displayfile: duplicate display id %d", d.ID)
		}
		seen[d.ID] = true
	}
	if f.Primary == nil {
		p := f.Displays[0].ID
		f.Primary = &p
	} else if !seen[*f.Primary] {
		return nil, fmt.Errorf("displayfile: primary display %d is not listed", *f.Primary)
	}
	return f, nil
}

// Read reads and parses the display file at the given path.
func Read(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}
