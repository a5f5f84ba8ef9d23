// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package present

import (
	"context"
	"io"
	"sync"

	"cloudeng.io/errors"
	"cloudeng.io/goldenhour/tick"
	"cloudeng.io/logging"
)

// JSON is a tick.Publisher that writes one JSON encoded Report per line.
type JSON struct {
	mu  sync.Mutex
	enc *logging.JSONFormatter
}

// NewJSON returns a JSON publisher that writes to out.
func NewJSON(out io.Writer) *JSON {
	return &JSON{enc: logging.NewJSONFormatter(out, "", "")}
}

// Publish implements tick.Publisher.
func (j *JSON) Publish(_ context.Context, u tick.Update) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enc.Format(NewReport(u))
}

// Latest is a tick.Publisher that retains the most recent Report. It is
// safe for concurrent use.
type Latest struct {
	mu     sync.RWMutex
	report Report
	ok     bool
}

// Publish implements tick.Publisher.
func (l *Latest) Publish(_ context.Context, u tick.Update) error {
	r := NewReport(u)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.report, l.ok = r, true
	return nil
}

// Report returns the most recent Report, if any.
func (l *Latest) Report() (Report, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.report, l.ok
}

// Tee is a tick.Publisher that publishes to all of its members, every
// member is called even if an earlier one fails.
type Tee []tick.Publisher

// Publish implements tick.Publisher.
func (t Tee) Publish(ctx context.Context, u tick.Update) error {
	errs := &errors.M{}
	for _, p := range t {
		errs.Append(p.Publish(ctx, u))
	}
	return errs.Err()
}
