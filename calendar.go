// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package goldenhour

import (
	"fmt"
	"time"
)

// CalendarDate represents a date with a year, month and day as reckoned
// in Location. A nil Location is interpreted as UTC.
type CalendarDate struct {
	Year     int
	Month    time.Month
	Day      int
	Location *time.Location
}

// NewCalendarDate returns the CalendarDate for the specified year, month
// and day in loc.
func NewCalendarDate(year int, month time.Month, day int, loc *time.Location) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day, Location: loc}
}

// CalendarDateOf returns the calendar date that contains t, as reckoned
// in t's location.
func CalendarDateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d, Location: t.Location()}
}

func (cd CalendarDate) location() *time.Location {
	if cd.Location == nil {
		return time.UTC
	}
	return cd.Location
}

// Time returns the instant at the specified hour, minute and second
// of the date.
func (cd CalendarDate) Time(hour, minute, second int) time.Time {
	return time.Date(cd.Year, cd.Month, cd.Day, hour, minute, second, 0, cd.location())
}

// Noon returns 12:00 on the date. It is the reference instant used
// when an astronomical calculation needs a time rather than a date.
func (cd CalendarDate) Noon() time.Time {
	return cd.Time(12, 0, 0)
}

// Tomorrow returns the following calendar date, crossing month and year
// boundaries as required.
func (cd CalendarDate) Tomorrow() CalendarDate {
	// Normalization by time.Date takes care of month lengths and leap years,
	// noon avoids any DST transition moving the result onto another day.
	return CalendarDateOf(time.Date(cd.Year, cd.Month, cd.Day+1, 12, 0, 0, 0, cd.location()))
}

// Yesterday returns the preceding calendar date.
func (cd CalendarDate) Yesterday() CalendarDate {
	return CalendarDateOf(time.Date(cd.Year, cd.Month, cd.Day-1, 12, 0, 0, 0, cd.location()))
}

func (cd CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", cd.Year, cd.Month, cd.Day)
}
