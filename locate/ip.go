// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package locate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"cloudeng.io/goldenhour"
)

// DefaultIPLookupURL is an ip-api.com compatible endpoint that returns
// the approximate location of the caller's IP address.
const DefaultIPLookupURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

// IPLookup is a Provider that obtains an approximate location from an
// ip-api.com compatible http service, ie. one that returns:
//
//	{"status":"success","lat":51.5074,"lon":-0.1278}
//
// or
//
//	{"status":"fail","message":"reserved range"}
type IPLookup struct {
	URL    string
	Client *http.Client
}

type ipResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// Locate implements Provider.
func (l IPLookup) Locate(ctx context.Context) (goldenhour.Coordinate, error) {
	url := l.URL
	if len(url) == 0 {
		url = DefaultIPLookupURL
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goldenhour.Coordinate{}, unavailable("%v", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return goldenhour.Coordinate{}, unavailable("%v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return goldenhour.Coordinate{}, unavailable("%v: %v", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return goldenhour.Coordinate{}, unavailable("%v: %v", url, err)
	}
	var r ipResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return goldenhour.Coordinate{}, unavailable("%v: %v", url, err)
	}
	if r.Status != "success" {
		return goldenhour.Coordinate{}, unavailable("%v: status %q: %v", url, r.Status, r.Message)
	}
	if r.Lat == nil || r.Lon == nil {
		return goldenhour.Coordinate{}, unavailable("%v: response is missing lat/lon", url)
	}
	return goldenhour.Coordinate{Latitude: *r.Lat, Longitude: *r.Lon}, nil
}
