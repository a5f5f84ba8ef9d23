// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package goldenhour

import (
	"fmt"
	"time"
)

// Countdown is the time remaining until the next golden hour window,
// broken down into whole hours, minutes and seconds.
type Countdown struct {
	Hours   int
	Minutes int
	Seconds int
	Label   Label
}

// String returns the countdown as HH:MM:SS.
func (c Countdown) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
}

// CountdownState is either Active, when the current instant lies within
// a golden hour window, or pending with a Countdown to the next window.
// The Countdown is zero when Active is true.
type CountdownState struct {
	Active    bool
	Countdown Countdown
}

// NewCountdown decomposes remaining into whole hours, minutes within the
// hour and seconds within the minute, truncating any fractional second.
func NewCountdown(remaining time.Duration, label Label) Countdown {
	return Countdown{
		Hours:   int(remaining / time.Hour),
		Minutes: int(remaining % time.Hour / time.Minute),
		Seconds: int(remaining % time.Minute / time.Second),
		Label:   label,
	}
}

// Status returns the CountdownState for now. Boundary instants are
// considered to be within a window. An InvariantError is returned if now
// is outside of both windows and next is not in the future.
func Status(now time.Time, windows DailyWindows, next NextOccurrence) (CountdownState, error) {
	if windows.Contains(now) {
		return CountdownState{Active: true}, nil
	}
	remaining := next.When.Sub(now)
	if remaining <= 0 {
		return CountdownState{}, &InvariantError{
			Msg: fmt.Sprintf("next %v window at %v is not after %v", next.Label, next.When.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano)),
		}
	}
	return CountdownState{Countdown: NewCountdown(remaining, next.Label)}, nil
}

// Evaluation is the result of running the complete pipeline for
// a single instant.
type Evaluation struct {
	Now        time.Time
	Coordinate Coordinate
	Windows    DailyWindows
	Next       NextOccurrence
	State      CountdownState
}

// Evaluate derives today's windows, resolves the next occurrence and
// computes the countdown state for now at coord. Now is considered to be
// within a golden hour if it lies within the windows of today or of
// either adjacent date, see Calculator.Active.
func (c *Calculator) Evaluate(now time.Time, coord Coordinate) (Evaluation, error) {
	windows, err := c.Derive(now, coord)
	if err != nil {
		return Evaluation{}, err
	}
	next, err := c.ResolveNext(now, windows, coord)
	if err != nil {
		return Evaluation{}, err
	}
	active, err := c.Active(now, windows, coord)
	if err != nil {
		return Evaluation{}, err
	}
	state := CountdownState{Active: true}
	if !active {
		if state, err = Status(now, windows, next); err != nil {
			return Evaluation{}, err
		}
	}
	return Evaluation{
		Now:        now,
		Coordinate: coord,
		Windows:    windows,
		Next:       next,
		State:      state,
	}, nil
}
