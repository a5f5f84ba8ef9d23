// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package goldenhour

import (
	"fmt"
	"time"
)

// Label identifies a golden hour window.
type Label string

const (
	Morning Label = "morning"
	Evening Label = "evening"
)

// NextOccurrence is the start of the next golden hour window.
type NextOccurrence struct {
	When  time.Time
	Label Label
}

// MaxRolloverDays is the number of following calendar dates that
// ResolveNext will consider before giving up.
const MaxRolloverDays = 3

func firstAfter(now time.Time, w DailyWindows) (NextOccurrence, bool) {
	for _, candidate := range []NextOccurrence{
		{When: w.MorningStart, Label: Morning},
		{When: w.EveningStart, Label: Evening},
	} {
		if candidate.When.After(now) {
			return candidate, true
		}
	}
	return NextOccurrence{}, false
}

// ResolveNext returns the first window start that is strictly after now.
// The morning window is considered before the evening one so that
// identical start times resolve deterministically. If both of today's
// windows have already started, the windows for the following calendar
// date are derived and their morning start returned.
//
// When the calendar date is reckoned in a time zone far from the
// coordinate's own solar day, the following date's morning start may
// also lie before now. In that case the following date's evening start,
// and then subsequent dates, are considered, up to MaxRolloverDays.
func (c *Calculator) ResolveNext(now time.Time, today DailyWindows, coord Coordinate) (NextOccurrence, error) {
	if next, ok := firstAfter(now, today); ok {
		return next, nil
	}
	date := CalendarDateOf(now)
	for range MaxRolloverDays {
		date = date.Tomorrow()
		w, err := c.DeriveForDate(date, coord)
		if err != nil {
			return NextOccurrence{}, err
		}
		if next, ok := firstAfter(now, w); ok {
			return next, nil
		}
	}
	return NextOccurrence{}, &InvariantError{
		Msg: fmt.Sprintf("no golden hour window starts within %v days after %v", MaxRolloverDays, now.Format(time.RFC3339Nano)),
	}
}

// Active returns true if now lies within today's windows or within the
// windows of the adjacent calendar dates. The adjacent dates are only
// derived when now is outside of today's windows; they can contain now
// when the calendar date is reckoned in a time zone far from the
// coordinate's own solar day.
func (c *Calculator) Active(now time.Time, today DailyWindows, coord Coordinate) (bool, error) {
	if today.Contains(now) {
		return true, nil
	}
	date := CalendarDateOf(now)
	for _, d := range []CalendarDate{date.Yesterday(), date.Tomorrow()} {
		w, err := c.DeriveForDate(d, coord)
		if err != nil {
			return false, err
		}
		if w.Contains(now) {
			return true, nil
		}
	}
	return false, nil
}
