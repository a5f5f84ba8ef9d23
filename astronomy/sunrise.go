// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"fmt"
	"time"

	"cloudeng.io/goldenhour"
	"github.com/nathan-osman/go-sunrise"
)

// GoldenHourElevation is the elevation of the sun, in degrees, that
// bounds the golden hour.
const GoldenHourElevation = 6.0

// SunRise returns the time of sunrise and sunset for the specified
// date, latitude and longitude. The returned times are in UTC and
// are zero if the sun does not rise or set on that date.
func SunRise(date goldenhour.CalendarDate, lat, long float64) (rise, set time.Time) {
	rise, set = sunrise.SunriseSunset(lat, long, date.Year, date.Month, date.Day)
	return
}

// Sunrise implements goldenhour.SunTimesFunc using go-sunrise, with the
// golden hour bounded by the instants at which the sun reaches
// GoldenHourElevation.
func Sunrise(date goldenhour.CalendarDate, lat, long float64) (goldenhour.SunTimes, error) {
	rise, set := SunRise(date, lat, long)
	morning, evening := sunrise.TimeOfElevation(lat, long, GoldenHourElevation, date.Year, date.Month, date.Day)
	if rise.IsZero() || set.IsZero() {
		return goldenhour.SunTimes{}, fmt.Errorf("sunrise: the sun does not rise or set on %v at %.4f, %.4f", date, lat, long)
	}
	if morning.IsZero() || evening.IsZero() {
		return goldenhour.SunTimes{}, fmt.Errorf("sunrise: the sun does not reach %v° on %v at %.4f, %.4f", GoldenHourElevation, date, lat, long)
	}
	return goldenhour.SunTimes{
		Sunrise:                rise,
		GoldenHourMorningEnd:   morning,
		GoldenHourEveningStart: evening,
		Sunset:                 set,
	}, nil
}
