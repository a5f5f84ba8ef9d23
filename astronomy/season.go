// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"time"

	"cloudeng.io/goldenhour"
	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
)

// JDEToCalendar returns the UTC calendar date for the supplied julian
// ephemeris day.
func JDEToCalendar(jde float64) goldenhour.CalendarDate {
	y, m, d := julian.JDToCalendar(jde)
	return goldenhour.NewCalendarDate(y, time.Month(m), int(d), time.UTC)
}

// December returns the date of the december solstice.
func December(year int) goldenhour.CalendarDate {
	return JDEToCalendar(solstice.December(year))
}

// March returns the date of the march equinox.
func March(year int) goldenhour.CalendarDate {
	return JDEToCalendar(solstice.March(year))
}

// June returns the date of the june solstice.
func June(year int) goldenhour.CalendarDate {
	return JDEToCalendar(solstice.June(year))
}

// September returns the date of the september equinox.
func September(year int) goldenhour.CalendarDate {
	return JDEToCalendar(solstice.September(year))
}

// Season represents an astronomical season, ie. one bounded by the
// solstices and equinoxes.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Autumn
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	default:
		return "winter"
	}
}

func dayKey(cd goldenhour.CalendarDate) int {
	return cd.Year*10000 + int(cd.Month)*100 + cd.Day
}

// SeasonOf returns the astronomical season for date at the specified
// latitude. Seasons are reversed in the southern hemisphere.
func SeasonOf(date goldenhour.CalendarDate, lat float64) Season {
	day := dayKey(date)
	var season Season
	switch {
	case day < dayKey(March(date.Year)):
		season = Winter
	case day < dayKey(June(date.Year)):
		season = Spring
	case day < dayKey(September(date.Year)):
		season = Summer
	case day < dayKey(December(date.Year)):
		season = Autumn
	default:
		season = Winter
	}
	if lat < 0 {
		return (season + 2) % 4
	}
	return season
}
