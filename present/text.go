// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package present

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"cloudeng.io/goldenhour/tick"
)

const clearScreen = "\033[H\033[2J"

// Text is a tick.Publisher that writes a plain text display of each
// update.
type Text struct {
	mu    sync.Mutex
	out   io.Writer
	clear bool
}

// NewText returns a Text publisher that writes to out. If clear is set
// the terminal is cleared before each update is written.
func NewText(out io.Writer, clear bool) *Text {
	return &Text{out: out, clear: clear}
}

// Publish implements tick.Publisher.
func (t *Text) Publish(_ context.Context, u tick.Update) error {
	var buf bytes.Buffer
	if t.clear {
		buf.WriteString(clearScreen)
	}
	Render(&buf, NewReport(u))
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.out.Write(buf.Bytes())
	return err
}

// Render writes a text rendering of r to out.
func Render(out io.Writer, r Report) {
	fmt.Fprintf(out, "GOLDEN HOUR\n%s\n\n", r.Time)
	if r.LocationRequired {
		fmt.Fprintf(out, "location_required\n\n")
	}
	if r.Latitude == nil || r.Morning == nil || r.Evening == nil {
		return
	}
	fmt.Fprintf(out, "%-8s %s - %s\n", "morning", r.Morning.Start, r.Morning.End)
	fmt.Fprintf(out, "%-8s %s - %s\n\n", "evening", r.Evening.Start, r.Evening.End)
	switch r.Status {
	case tick.Active.String():
		fmt.Fprintf(out, "%s\n\n", strings.ToUpper(r.Status))
	case tick.Pending.String():
		fmt.Fprintf(out, "%s\n%s:%s:%s\n\n", r.Label, Pad(r.Hours, 2), Pad(r.Minutes, 2), Pad(r.Seconds, 2))
	}
	fmt.Fprintf(out, "%.4f° %.4f°\n%s\n", *r.Latitude, *r.Longitude, r.Timezone)
}
