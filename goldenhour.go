// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package goldenhour derives the daily golden hour windows for a location,
// determines whether an instant falls within one of them and computes the
// countdown to the next window, rolling over to the following day once
// both of the current day's windows have started.
//
// The morning window runs from sunrise until the end of the morning golden
// hour and the evening window from the start of the evening golden hour
// until sunset. All of the functions in this package are pure; the
// astronomical calculation itself is supplied as a SunTimesFunc, see
// cloudeng.io/goldenhour/astronomy.
package goldenhour

import (
	"fmt"
	"time"

	"cloudeng.io/errors"
)

// Coordinate represents a geographic location, latitude is expected to
// be in [-90, 90] and longitude in [-180, 180]. No validation is performed
// by this package.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f° %.4f°", c.Latitude, c.Longitude)
}

// SunTimes represents the instants returned by an astronomical
// calculation for a single day.
type SunTimes struct {
	Sunrise                time.Time
	Sunset                 time.Time
	GoldenHourMorningEnd   time.Time
	GoldenHourEveningStart time.Time
}

// SunTimesFunc computes the SunTimes for the specified date and location.
// Implementations must be deterministic and free of side effects.
type SunTimesFunc func(date CalendarDate, lat, long float64) (SunTimes, error)

// DailyWindows represents the morning and evening golden hour windows for
// a single calendar date and location. Both windows include their end points.
type DailyWindows struct {
	MorningStart time.Time
	MorningEnd   time.Time
	EveningStart time.Time
	EveningEnd   time.Time
}

// InMorning returns true if t lies within the morning window.
func (w DailyWindows) InMorning(t time.Time) bool {
	return !t.Before(w.MorningStart) && !t.After(w.MorningEnd)
}

// InEvening returns true if t lies within the evening window.
func (w DailyWindows) InEvening(t time.Time) bool {
	return !t.Before(w.EveningStart) && !t.After(w.EveningEnd)
}

// Contains returns true if t lies within either window.
func (w DailyWindows) Contains(t time.Time) bool {
	return w.InMorning(t) || w.InEvening(t)
}

// Validate returns an error if any of the window boundaries is missing or
// if they are not in order.
func (w DailyWindows) Validate() error {
	bounds := []struct {
		name string
		t    time.Time
	}{
		{"sunrise", w.MorningStart},
		{"morning golden hour end", w.MorningEnd},
		{"evening golden hour start", w.EveningStart},
		{"sunset", w.EveningEnd},
	}
	for i, b := range bounds {
		if b.t.IsZero() {
			return fmt.Errorf("missing %v", b.name)
		}
		if i > 0 && b.t.Before(bounds[i-1].t) {
			return fmt.Errorf("%v (%v) is before %v (%v)",
				b.name, b.t.Format(time.RFC3339), bounds[i-1].name, bounds[i-1].t.Format(time.RFC3339))
		}
	}
	return nil
}

// Calculator implements the golden hour pipeline using the supplied
// astronomical calculation. It holds no mutable state and is safe
// for concurrent use.
type Calculator struct {
	sunTimes SunTimesFunc
}

// NewCalculator returns a new Calculator that uses fn for all of its
// astronomical calculations.
func NewCalculator(fn SunTimesFunc) *Calculator {
	return &Calculator{sunTimes: fn}
}

// Derive returns the golden hour windows for the calendar date that
// contains now (as reckoned in now's location) at the specified coordinate.
func (c *Calculator) Derive(now time.Time, coord Coordinate) (DailyWindows, error) {
	return c.DeriveForDate(CalendarDateOf(now), coord)
}

// DeriveForDate returns the golden hour windows for date at the specified
// coordinate. Any failure of the astronomical calculation, including a
// panic, a missing value or out of order values, is returned as
// a *ComputationError.
func (c *Calculator) DeriveForDate(date CalendarDate, coord Coordinate) (DailyWindows, error) {
	st, err := c.callSunTimes(date, coord)
	if err != nil {
		return DailyWindows{}, &ComputationError{Date: date, Coordinate: coord, Err: err}
	}
	w := DailyWindows{
		MorningStart: st.Sunrise,
		MorningEnd:   st.GoldenHourMorningEnd,
		EveningStart: st.GoldenHourEveningStart,
		EveningEnd:   st.Sunset,
	}
	if err := w.Validate(); err != nil {
		return DailyWindows{}, &ComputationError{Date: date, Coordinate: coord, Err: err}
	}
	return w, nil
}

func (c *Calculator) callSunTimes(date CalendarDate, coord Coordinate) (st SunTimes, err error) {
	if c.sunTimes == nil {
		return SunTimes{}, errors.New("no astronomical calculation configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.sunTimes(date, coord.Latitude, coord.Longitude)
}
