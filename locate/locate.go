// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package locate provides one-shot location providers. All failures
// returned by the providers in this package wrap
// goldenhour.ErrLocationUnavailable.
package locate

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/goldenhour"
)

// Provider is implemented by anything that can determine the current
// location.
type Provider interface {
	Locate(ctx context.Context) (goldenhour.Coordinate, error)
}

// DefaultTimeout is the timeout used for location requests if none
// is specified.
const DefaultTimeout = 10 * time.Second

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %v", goldenhour.ErrLocationUnavailable, fmt.Sprintf(format, args...))
}

// Static is a Provider that always returns the same coordinate.
type Static goldenhour.Coordinate

// Locate implements Provider.
func (s Static) Locate(ctx context.Context) (goldenhour.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return goldenhour.Coordinate{}, unavailable("%v", err)
	}
	return goldenhour.Coordinate(s), nil
}

// ProviderFunc allows a function to be used as a Provider.
type ProviderFunc func(ctx context.Context) (goldenhour.Coordinate, error)

// Locate implements Provider.
func (fn ProviderFunc) Locate(ctx context.Context) (goldenhour.Coordinate, error) {
	return fn(ctx)
}

type timeout struct {
	p       Provider
	timeout time.Duration
}

// WithTimeout returns a Provider that bounds the time taken by p. A zero
// or negative timeout selects DefaultTimeout.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &timeout{p: p, timeout: d}
}

func (t *timeout) Locate(ctx context.Context) (goldenhour.Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	type result struct {
		coord goldenhour.Coordinate
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := t.p.Locate(ctx)
		ch <- result{c, err}
	}()
	select {
	case r := <-ch:
		if r.err != nil && !errors.Is(r.err, goldenhour.ErrLocationUnavailable) {
			return goldenhour.Coordinate{}, unavailable("%v", r.err)
		}
		return r.coord, r.err
	case <-ctx.Done():
		return goldenhour.Coordinate{}, unavailable("timed out after %v: %v", t.timeout, ctx.Err())
	}
}
