// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package present renders the updates generated by cloudeng.io/goldenhour/tick
// as text, JSON or via an http status endpoint.
package present

import (
	"fmt"
	"time"

	"cloudeng.io/goldenhour"
	"cloudeng.io/goldenhour/astronomy"
	"cloudeng.io/goldenhour/tick"
)

// Window is a golden hour window formatted as HH:MM.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Report is a presentation neutral rendering of a tick.Update.
type Report struct {
	Time             string    `json:"time"`
	Status           string    `json:"status"`
	LocationRequired bool      `json:"location_required,omitempty"`
	Label            string    `json:"label,omitempty"`
	Hours            int       `json:"hours"`
	Minutes          int       `json:"minutes"`
	Seconds          int       `json:"seconds"`
	Countdown        string    `json:"countdown,omitempty"`
	Next             time.Time `json:"next,omitzero"`
	Morning          *Window   `json:"morning,omitempty"`
	Evening          *Window   `json:"evening,omitempty"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	Timezone         string    `json:"timezone"`
	Season           string    `json:"season,omitempty"`
}

// NewReport creates a Report for u.
func NewReport(u tick.Update) Report {
	r := Report{
		Time:             FormatClock(u.Now),
		Status:           u.Phase.String(),
		LocationRequired: u.LocationUnavailable,
		Timezone:         u.Now.Location().String(),
	}
	if !u.Located {
		return r
	}
	lat, long := u.Coordinate.Latitude, u.Coordinate.Longitude
	r.Latitude, r.Longitude = &lat, &long
	r.Morning = &Window{Start: FormatShort(u.Windows.MorningStart), End: FormatShort(u.Windows.MorningEnd)}
	r.Evening = &Window{Start: FormatShort(u.Windows.EveningStart), End: FormatShort(u.Windows.EveningEnd)}
	r.Next = u.Next.When
	r.Season = astronomy.SeasonOf(goldenhour.CalendarDateOf(u.Now), lat).String()
	if u.Phase == tick.Pending {
		r.Label = string(u.Countdown.Label)
		r.Hours, r.Minutes, r.Seconds = u.Countdown.Hours, u.Countdown.Minutes, u.Countdown.Seconds
		r.Countdown = u.Countdown.String()
	}
	return r
}

// FormatClock formats t as a 24 hour HH:MM:SS clock in t's location.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatShort formats t as a 24 hour HH:MM clock in t's location.
func FormatShort(t time.Time) string {
	return t.Format("15:04")
}

// Pad formats n with leading zeros to the specified width.
func Pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}
