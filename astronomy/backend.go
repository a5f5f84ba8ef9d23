// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"fmt"
	"slices"
	"strings"

	"cloudeng.io/goldenhour"
)

var backends = map[string]goldenhour.SunTimesFunc{
	"suncalc": SunCalc,
	"sunrise": Sunrise,
}

// DefaultBackend is the name of the backend used when none is specified.
const DefaultBackend = "suncalc"

// Backend returns the goldenhour.SunTimesFunc registered under name,
// an empty name selects DefaultBackend.
func Backend(name string) (goldenhour.SunTimesFunc, error) {
	if len(name) == 0 {
		name = DefaultBackend
	}
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown astronomy backend %q, available: %v", name, strings.Join(BackendNames(), ", "))
	}
	return fn, nil
}

// BackendNames returns the sorted names of the available backends.
func BackendNames() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
