// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package tick drives the golden hour pipeline from a periodic clock
// and publishes the result of each tick.
package tick

import (
	"context"
	"time"

	"cloudeng.io/goldenhour"
	"cloudeng.io/logging/ctxlog"
)

// Phase represents the status published on each tick.
type Phase int

const (
	AwaitingLocation Phase = iota
	Active
	Pending
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case Pending:
		return "pending"
	default:
		return "awaiting_location"
	}
}

// Update is published on every successful tick. Coordinate, Windows and
// Next are only meaningful when Located is true and Countdown only when
// Phase is Pending.
type Update struct {
	Now                 time.Time
	Phase               Phase
	Countdown           goldenhour.Countdown
	Located             bool
	LocationUnavailable bool
	Coordinate          goldenhour.Coordinate
	Windows             goldenhour.DailyWindows
	Next                goldenhour.NextOccurrence
}

// Publisher receives the Update generated by each tick.
type Publisher interface {
	Publish(ctx context.Context, u Update) error
}

// PublisherFunc allows a function to be used as a Publisher.
type PublisherFunc func(ctx context.Context, u Update) error

// Publish implements Publisher.
func (fn PublisherFunc) Publish(ctx context.Context, u Update) error {
	return fn(ctx, u)
}

// Locator is called once to obtain the location to use.
type Locator interface {
	Locate(ctx context.Context) (goldenhour.Coordinate, error)
}

// DefaultInterval is the default tick interval.
const DefaultInterval = time.Second

type options struct {
	interval  time.Duration
	location  *time.Location
	clock     func() time.Time
	publisher Publisher
}

// Option represents an option to New.
type Option func(*options)

// WithInterval sets the interval between ticks.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithLocation sets the time zone used to determine the calendar date
// of each tick, the default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithClock sets the function used to obtain the current time.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithPublisher sets the Publisher for each tick's Update.
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// Orchestrator owns the current coordinate and the most recently published
// Update. It is not safe for concurrent use; Run confines all access to
// a single goroutine.
type Orchestrator struct {
	calc    *goldenhour.Calculator
	opts    options
	coord   goldenhour.Coordinate
	located bool
	locErr  error
	last    Update
	hasLast bool
}

// New returns a new Orchestrator that uses calc for each tick.
func New(calc *goldenhour.Calculator, opts ...Option) *Orchestrator {
	o := &Orchestrator{calc: calc}
	o.opts.interval = DefaultInterval
	o.opts.location = time.Local
	o.opts.clock = time.Now
	for _, fn := range opts {
		fn(&o.opts)
	}
	return o
}

// SetCoordinate replaces the current coordinate.
func (o *Orchestrator) SetCoordinate(c goldenhour.Coordinate) {
	o.coord = c
	o.located = true
	o.locErr = nil
}

// LocationFailed records that the location could not be obtained. The
// orchestrator remains in the AwaitingLocation phase.
func (o *Orchestrator) LocationFailed(err error) {
	if err == nil {
		err = goldenhour.ErrLocationUnavailable
	}
	o.locErr = err
}

// Last returns the most recent successfully computed Update.
func (o *Orchestrator) Last() (Update, bool) {
	return o.last, o.hasLast
}

// Tick computes the Update for now. If the location is not yet known
// the pipeline is not run and the Update is in the AwaitingLocation
// phase. On error, the previous Update is retained and remains
// available via Last.
func (o *Orchestrator) Tick(now time.Time) (Update, error) {
	now = now.In(o.opts.location)
	if !o.located {
		u := Update{Now: now, Phase: AwaitingLocation, LocationUnavailable: o.locErr != nil}
		o.last, o.hasLast = u, true
		return u, nil
	}
	ev, err := o.calc.Evaluate(now, o.coord)
	if err != nil {
		return Update{}, err
	}
	u := Update{
		Now:        now,
		Phase:      Active,
		Located:    true,
		Coordinate: ev.Coordinate,
		Windows:    ev.Windows,
		Next:       ev.Next,
	}
	if !ev.State.Active {
		u.Phase = Pending
		u.Countdown = ev.State.Countdown
	}
	o.last, o.hasLast = u, true
	return u, nil
}

type located struct {
	coord goldenhour.Coordinate
	err   error
}

// Run issues a single request to locator, ticks immediately and then
// at the configured interval until ctx is canceled. The location, when
// it arrives, is applied between ticks. Errors encountered on any one
// tick are logged and do not stop the loop.
func (o *Orchestrator) Run(ctx context.Context, locator Locator) error {
	logger := ctxlog.Logger(ctx)
	locCh := make(chan located, 1)
	if locator == nil {
		locCh <- located{err: goldenhour.ErrLocationUnavailable}
	} else {
		go func() {
			c, err := locator.Locate(ctx)
			locCh <- located{coord: c, err: err}
		}()
	}

	ticker := time.NewTicker(o.opts.interval)
	defer ticker.Stop()

	o.step(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-locCh:
			if r.err != nil {
				logger.Warn("location unavailable", "err", r.err)
				o.LocationFailed(r.err)
			} else {
				logger.Info("location acquired", "latitude", r.coord.Latitude, "longitude", r.coord.Longitude)
				o.SetCoordinate(r.coord)
			}
			o.step(ctx)
		case <-ticker.C:
			o.step(ctx)
		}
	}
}

func (o *Orchestrator) step(ctx context.Context) {
	u, err := o.Tick(o.opts.clock())
	if err != nil {
		last, _ := o.Last()
		ctxlog.Logger(ctx).Error("tick failed, retaining previous status", "err", err, "previous", last.Phase.String())
		return
	}
	if o.opts.publisher == nil {
		return
	}
	if err := o.opts.publisher.Publish(ctx, u); err != nil {
		ctxlog.Logger(ctx).Warn("failed to publish update", "err", err)
	}
}
