// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tick_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloudeng.io/goldenhour"
	"cloudeng.io/goldenhour/tick"
)

var london = goldenhour.Coordinate{Latitude: 51.5074, Longitude: -0.1278}

func fixedSunTimes(date goldenhour.CalendarDate, _, _ float64) (goldenhour.SunTimes, error) {
	return goldenhour.SunTimes{
		Sunrise:                date.Time(6, 0, 0),
		GoldenHourMorningEnd:   date.Time(7, 0, 0),
		GoldenHourEveningStart: date.Time(20, 0, 0),
		Sunset:                 date.Time(21, 0, 0),
	}, nil
}

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, second, 0, time.UTC)
}

func TestTick(t *testing.T) {
	calls := 0
	calc := goldenhour.NewCalculator(func(date goldenhour.CalendarDate, lat, long float64) (goldenhour.SunTimes, error) {
		calls++
		return fixedSunTimes(date, lat, long)
	})
	o := tick.New(calc, tick.WithLocation(time.UTC))

	if _, ok := o.Last(); ok {
		t.Errorf("expected no previous update")
	}

	u, err := o.Tick(at(14, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := u.Phase, tick.AwaitingLocation; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if u.Located || u.LocationUnavailable {
		t.Errorf("unexpected location state: %+v", u)
	}
	if got, want := calls, 0; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	o.LocationFailed(nil)
	u, _ = o.Tick(at(14, 0, 1))
	if got, want := u.Phase, tick.AwaitingLocation; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if !u.LocationUnavailable {
		t.Errorf("expected location to be reported as unavailable")
	}

	o.SetCoordinate(london)
	u, err = o.Tick(at(14, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := u.Phase, tick.Pending; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := u.Countdown, (goldenhour.Countdown{Hours: 6, Label: goldenhour.Evening}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if !u.Located || u.LocationUnavailable || u.Coordinate != london {
		t.Errorf("unexpected location state: %+v", u)
	}

	u, err = o.Tick(at(6, 30, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := u.Phase, tick.Active; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := u.Countdown, (goldenhour.Countdown{}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	last, ok := o.Last()
	if !ok || last != u {
		t.Errorf("got %v, want %v", last, u)
	}
}

func TestTickTimezone(t *testing.T) {
	tz := time.FixedZone("UTC+10", 10*60*60)
	o := tick.New(goldenhour.NewCalculator(fixedSunTimes), tick.WithLocation(tz))
	o.SetCoordinate(london)
	// 22:00 UTC on the 10th is 08:00 on the 11th in UTC+10.
	u, err := o.Tick(at(22, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := u.Now.Location(), tz; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := u.Next.When, time.Date(2024, 6, 11, 20, 0, 0, 0, tz); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := u.Countdown, (goldenhour.Countdown{Hours: 12, Label: goldenhour.Evening}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTickErrorRetainsPrevious(t *testing.T) {
	fail := false
	calc := goldenhour.NewCalculator(func(date goldenhour.CalendarDate, lat, long float64) (goldenhour.SunTimes, error) {
		if fail {
			return goldenhour.SunTimes{}, errors.New("no convergence")
		}
		return fixedSunTimes(date, lat, long)
	})
	o := tick.New(calc, tick.WithLocation(time.UTC))
	o.SetCoordinate(london)
	prev, err := o.Tick(at(14, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	fail = true
	if _, err := o.Tick(at(14, 0, 1)); !errors.Is(err, goldenhour.ErrComputation) {
		t.Errorf("got %v, want %v", err, goldenhour.ErrComputation)
	}
	last, ok := o.Last()
	if !ok || last != prev {
		t.Errorf("got %v, want %v", last, prev)
	}
}

type collector struct {
	sync.Mutex
	updates []tick.Update
	located chan struct{}
	once    sync.Once
}

func (c *collector) Publish(_ context.Context, u tick.Update) error {
	c.Lock()
	defer c.Unlock()
	c.updates = append(c.updates, u)
	if u.Located {
		c.once.Do(func() { close(c.located) })
	}
	return nil
}

func (c *collector) snapshot() []tick.Update {
	c.Lock()
	defer c.Unlock()
	return append([]tick.Update(nil), c.updates...)
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	release := make(chan struct{})
	locator := tick.Locator(locatorFunc(func(ctx context.Context) (goldenhour.Coordinate, error) {
		<-release
		return london, nil
	}))

	pub := &collector{located: make(chan struct{})}
	o := tick.New(goldenhour.NewCalculator(fixedSunTimes),
		tick.WithInterval(time.Millisecond),
		tick.WithLocation(time.UTC),
		tick.WithClock(func() time.Time { return at(14, 0, 0) }),
		tick.WithPublisher(pub))

	errCh := make(chan error, 1)
	go func() {
		errCh <- o.Run(ctx, locator)
	}()

	// Ticks are published while the location is outstanding.
	for len(pub.snapshot()) < 3 {
		time.Sleep(time.Millisecond)
	}
	close(release)
	select {
	case <-pub.located:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for location")
	}
	cancel()
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}

	updates := pub.snapshot()
	if got, want := updates[0].Phase, tick.AwaitingLocation; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	seenLocated := false
	for _, u := range updates {
		if u.Located {
			seenLocated = true
			if got, want := u.Phase, tick.Pending; got != want {
				t.Errorf("got %v, want %v", got, want)
			}
			continue
		}
		if seenLocated {
			t.Errorf("location was lost after being acquired: %+v", u)
		}
	}
}

func TestRunLocationUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	published := make(chan tick.Update, 100)
	pub := tick.PublisherFunc(func(_ context.Context, u tick.Update) error {
		select {
		case published <- u:
		default:
		}
		if u.LocationUnavailable {
			cancel()
		}
		return errors.New("ignored")
	})
	o := tick.New(goldenhour.NewCalculator(fixedSunTimes),
		tick.WithInterval(time.Hour),
		tick.WithPublisher(pub))
	if err := o.Run(ctx, nil); err != nil {
		t.Fatal(err)
	}
	last, ok := o.Last()
	if !ok || !last.LocationUnavailable || last.Phase != tick.AwaitingLocation {
		t.Errorf("unexpected final update: %+v", last)
	}
}

type locatorFunc func(ctx context.Context) (goldenhour.Coordinate, error)

func (fn locatorFunc) Locate(ctx context.Context) (goldenhour.Coordinate, error) {
	return fn(ctx)
}

func TestPhase(t *testing.T) {
	for _, tc := range []struct {
		phase tick.Phase
		want  string
	}{
		{tick.AwaitingLocation, "awaiting_location"},
		{tick.Active, "active"},
		{tick.Pending, "pending"},
	} {
		if got, want := tc.phase.String(), tc.want; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
