// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package config provides the configuration for the goldenhour command.
// Configuration is read from an optional YAML file, overridden by
// GOLDENHOUR_ prefixed environment variables and then validated, eg:
//
//	location:
//	  provider: postal
//	  postal:
//	    db: GB_full.txt
//	    admin: ENG
//	    code: BN91 9AA
//	  timeout: 5s
//	astronomy:
//	  backend: suncalc
//	timezone: Europe/London
//	interval: 1s
//	http:
//	  addr: localhost:8080
//	logging:
//	  level: 2
//	  format: json
package config

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/errors"
	"cloudeng.io/goldenhour"
	"cloudeng.io/goldenhour/astronomy"
	"cloudeng.io/goldenhour/locate"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "GOLDENHOUR_"

// Provider names.
const (
	StaticProvider = "static"
	PostalProvider = "postal"
	IPProvider     = "ip"
)

// Postal specifies a postal code lookup in a geonames database.
type Postal struct {
	DB    string `yaml:"db,omitempty" env:"DB"`
	Admin string `yaml:"admin,omitempty" env:"ADMIN"`
	Code  string `yaml:"code,omitempty" env:"CODE"`
}

// IP specifies an ip-api.com compatible location service.
type IP struct {
	URL string `yaml:"url,omitempty" env:"URL" validate:"omitempty,url"`
}

// Location specifies how the location is to be determined. If no
// provider is named, a static location is used when both latitude and
// longitude are set and the ip lookup service otherwise.
type Location struct {
	Provider  string        `yaml:"provider,omitempty" env:"PROVIDER" validate:"omitempty,oneof=static postal ip"`
	Latitude  *float64      `yaml:"latitude,omitempty" env:"LATITUDE" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64      `yaml:"longitude,omitempty" env:"LONGITUDE" validate:"omitempty,gte=-180,lte=180"`
	Postal    Postal        `yaml:"postal,omitempty" envPrefix:"POSTAL_"`
	IP        IP            `yaml:"ip,omitempty" envPrefix:"IP_"`
	Timeout   time.Duration `yaml:"timeout" env:"TIMEOUT" validate:"gte=0"`
}

// Astronomy specifies the astronomical calculation to use.
type Astronomy struct {
	Backend string `yaml:"backend" env:"BACKEND" validate:"omitempty,oneof=suncalc sunrise"`
}

// HTTP specifies the address for the status server.
type HTTP struct {
	Addr string `yaml:"addr" env:"ADDR" validate:"omitempty,hostname_port"`
}

// Config represents the complete configuration.
type Config struct {
	Location  Location              `yaml:"location" envPrefix:"LOCATION_"`
	Astronomy Astronomy             `yaml:"astronomy" envPrefix:"ASTRONOMY_"`
	Timezone  string                `yaml:"timezone,omitempty" env:"TIMEZONE"`
	Interval  time.Duration         `yaml:"interval" env:"INTERVAL" validate:"gt=0"`
	HTTP      HTTP                  `yaml:"http" envPrefix:"HTTP_"`
	Logging   cmdutil.LoggingConfig `yaml:"logging"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Location:  Location{Timeout: locate.DefaultTimeout},
		Astronomy: Astronomy{Backend: astronomy.DefaultBackend},
		Interval:  time.Second,
		HTTP:      HTTP{Addr: "localhost:8080"},
		Logging:   cmdutil.LoggingConfig{Format: "json"},
	}
}

// Load returns the default configuration overridden by the contents of
// file, if not empty, and then by the environment variables in environ.
// If environ is nil the process environment is used. The resulting
// configuration is validated.
func Load(file string, environ map[string]string) (Config, error) {
	cfg := Default()
	if len(file) > 0 {
		if err := cmdyaml.ParseConfigFile(context.Background(), file, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetCoordinate sets a static location.
func (c *Config) SetCoordinate(lat, long float64) {
	c.Location.Provider = StaticProvider
	c.Location.Latitude, c.Location.Longitude = &lat, &long
}

// ProviderName returns the name of the location provider to be used.
func (c Config) ProviderName() string {
	if len(c.Location.Provider) > 0 {
		return c.Location.Provider
	}
	if c.Location.Latitude != nil && c.Location.Longitude != nil {
		return StaticProvider
	}
	return IPProvider
}

// Validate returns all of the problems found with the configuration.
func (c Config) Validate() error {
	errs := &errors.M{}
	errs.Append(validator.New().Struct(c))
	if (c.Location.Latitude == nil) != (c.Location.Longitude == nil) {
		errs.Append(errors.New("location: latitude and longitude must be specified together"))
	}
	switch c.ProviderName() {
	case StaticProvider:
		if c.Location.Latitude == nil || c.Location.Longitude == nil {
			errs.Append(errors.New("location: the static provider requires a latitude and longitude"))
		}
	case PostalProvider:
		if len(c.Location.Postal.DB) == 0 || len(c.Location.Postal.Code) == 0 {
			errs.Append(errors.New("location: the postal provider requires a database and postal code"))
		}
	}
	if _, err := c.TimeLocation(); err != nil {
		errs.Append(err)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		errs.Append(fmt.Errorf("logging: unknown log format %q", c.Logging.Format))
	}
	return errs.Err()
}

// TimeLocation returns the configured time zone, time.Local if none is set.
func (c Config) TimeLocation() (*time.Location, error) {
	if len(c.Timezone) == 0 {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

// Provider returns the configured location provider bounded by the
// configured timeout.
func (c Config) Provider() (locate.Provider, error) {
	var p locate.Provider
	switch name := c.ProviderName(); name {
	case StaticProvider:
		if c.Location.Latitude == nil || c.Location.Longitude == nil {
			return nil, errors.New("location: the static provider requires a latitude and longitude")
		}
		p = locate.Static(goldenhour.Coordinate{Latitude: *c.Location.Latitude, Longitude: *c.Location.Longitude})
	case PostalProvider:
		db := locate.NewPostalDB()
		if err := db.LoadFile(c.Location.Postal.DB); err != nil {
			return nil, err
		}
		p = locate.Postal{DB: db, Admin: c.Location.Postal.Admin, Postal: c.Location.Postal.Code}
	case IPProvider:
		p = locate.IPLookup{URL: c.Location.IP.URL}
	default:
		return nil, fmt.Errorf("location: unknown provider %q", name)
	}
	return locate.WithTimeout(p, c.Location.Timeout), nil
}

// Calculator returns a goldenhour.Calculator that uses the configured
// astronomy backend.
func (c Config) Calculator() (*goldenhour.Calculator, error) {
	fn, err := astronomy.Backend(c.Astronomy.Backend)
	if err != nil {
		return nil, err
	}
	return goldenhour.NewCalculator(fn), nil
}

// WriteYAML writes the configuration to out as YAML.
func (c Config) WriteYAML(out io.Writer) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
