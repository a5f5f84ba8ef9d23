// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package astronomy provides implementations of goldenhour.SunTimesFunc
// and related solar calendar calculations.
package astronomy

import (
	"fmt"
	"time"

	"cloudeng.io/goldenhour"
	"github.com/sixdouglas/suncalc"
)

// SunCalc implements goldenhour.SunTimesFunc using the SunCalc algorithms.
// The golden hour boundaries are the instants at which the sun's center
// is 6 degrees above the horizon.
func SunCalc(date goldenhour.CalendarDate, lat, long float64) (goldenhour.SunTimes, error) {
	times := suncalc.GetTimes(date.Noon(), lat, long)
	lookup := func(name suncalc.DayTimeName) (time.Time, error) {
		dt, ok := times[name]
		if !ok || dt.Value.IsZero() {
			return time.Time{}, fmt.Errorf("suncalc: no %v for %v at %.4f, %.4f", name, date, lat, long)
		}
		return dt.Value, nil
	}
	var st goldenhour.SunTimes
	var err error
	if st.Sunrise, err = lookup(suncalc.Sunrise); err != nil {
		return goldenhour.SunTimes{}, err
	}
	if st.GoldenHourMorningEnd, err = lookup(suncalc.GoldenHourEnd); err != nil {
		return goldenhour.SunTimes{}, err
	}
	if st.GoldenHourEveningStart, err = lookup(suncalc.GoldenHour); err != nil {
		return goldenhour.SunTimes{}, err
	}
	if st.Sunset, err = lookup(suncalc.Sunset); err != nil {
		return goldenhour.SunTimes{}, err
	}
	return st, nil
}
