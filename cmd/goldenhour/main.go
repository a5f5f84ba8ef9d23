// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command goldenhour displays the time remaining until the next golden
// hour, the periods shortly after sunrise and before sunset.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/signals"
	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/errors"
	"cloudeng.io/goldenhour/config"
	"cloudeng.io/goldenhour/present"
	"cloudeng.io/goldenhour/tick"
	"cloudeng.io/logging/ctxlog"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const commands = `name: goldenhour
summary: display the time remaining until the next golden hour
commands:
  - name: watch
    summary: display a countdown to the next golden hour, updated every interval, until interrupted
  - name: today
    summary: display today's golden hour windows and the countdown to the next one
  - name: serve
    summary: serve the current golden hour status over http
  - name: config
    summary: display the effective configuration as yaml
`

// CommonFlags are shared by all commands.
type CommonFlags struct {
	Config   string `subcmd:"config,,'yaml configuration file, GOLDENHOUR_ environment variables override its contents'"`
	Location string `subcmd:"location,,'latitude and longitude separated by a comma, eg. 51.5074,-0.1278'"`
	Backend  string `subcmd:"backend,,'astronomy backend: suncalc or sunrise'"`
	Timezone string `subcmd:"timezone,,'IANA time zone used to display times, eg. Europe/London'"`
	LoggingFlags
}

// LoggingFlags override the logging section of the configuration. Flags
// left at their defaults leave the configuration unchanged.
type LoggingFlags struct {
	Level      int    `subcmd:"log-level,-1,'logging level: 0=error, 1=warn, 2=info, 3=debug, -1 uses the configuration'"`
	File       string `subcmd:"log-file,,'log file path, - for stdout, if not specified the configuration is used'"`
	Format     string `subcmd:"log-format,,'log format: text or json, if not specified the configuration is used'"`
	SourceCode bool   `subcmd:"log-source-code,false,'include source code file and line number in logs'"`
}

type watchFlags struct {
	CommonFlags
	NoClear bool `subcmd:"no-clear,false,'do not clear the terminal between updates'"`
}

type todayFlags struct {
	CommonFlags
	JSON bool `subcmd:"json,false,'display the status as json'"`
}

type serveFlags struct {
	CommonFlags
	Addr   string `subcmd:"addr,,'address to listen on, overrides the configuration'"`
	Stream bool   `subcmd:"stream,false,'also write each update to stdout as json'"`
}

type configFlags struct {
	CommonFlags
}

var cmdSet = subcmd.MustFromYAML(commands)

func init() {
	cmdSet.Set("watch").MustRunnerAndFlags(watch, subcmd.MustRegisteredFlagSet(&watchFlags{}))
	cmdSet.Set("today").MustRunnerAndFlags(today, subcmd.MustRegisteredFlagSet(&todayFlags{}))
	cmdSet.Set("serve").MustRunnerAndFlags(serve, subcmd.MustRegisteredFlagSet(&serveFlags{}))
	cmdSet.Set("config").MustRunnerAndFlags(printConfig, subcmd.MustRegisteredFlagSet(&configFlags{}))
}

func main() {
	cmdSet.MustDispatch(context.Background())
}

func parseLocation(loc string) (lat, long float64, err error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid location %q: expected <latitude>,<longitude>", loc)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %v", parts[0], err)
	}
	if long, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %v", parts[1], err)
	}
	return lat, long, nil
}

// mergeLogging overrides cfg with any logging flags that differ from
// their defaults.
func mergeLogging(cfg *cmdutil.LoggingConfig, lf LoggingFlags) {
	if lf.Level >= 0 {
		cfg.Level = lf.Level
	}
	if len(lf.File) > 0 {
		cfg.File = lf.File
	}
	if len(lf.Format) > 0 {
		cfg.Format = lf.Format
	}
	if lf.SourceCode {
		cfg.SourceCode = true
	}
}

// loadConfig reads the configuration file and environment and then
// applies the command line flags.
func loadConfig(cf *CommonFlags) (config.Config, error) {
	cfg, err := config.Load(cf.Config, nil)
	if err != nil {
		return config.Config{}, err
	}
	if len(cf.Location) > 0 {
		lat, long, err := parseLocation(cf.Location)
		if err != nil {
			return config.Config{}, err
		}
		cfg.SetCoordinate(lat, long)
	}
	if len(cf.Backend) > 0 {
		cfg.Astronomy.Backend = cf.Backend
	}
	if len(cf.Timezone) > 0 {
		cfg.Timezone = cf.Timezone
	}
	mergeLogging(&cfg.Logging, cf.LoggingFlags)
	return cfg, cfg.Validate()
}

// setup loads the configuration and returns a context that carries a logger
// tagged with a session id. The returned function must be called to
// release the logger's resources.
func setup(ctx context.Context, cf *CommonFlags) (context.Context, config.Config, func(), error) {
	cfg, err := loadConfig(cf)
	if err != nil {
		return ctx, config.Config{}, nil, err
	}
	logger, err := cfg.Logging.NewLogger()
	if err != nil {
		return ctx, config.Config{}, nil, err
	}
	ctx = ctxlog.WithLogger(ctx, logger.Logger)
	ctx = ctxlog.WithAttributes(ctx, "session", uuid.NewString())
	return ctx, cfg, func() { logger.Close() }, nil
}

// newOrchestrator creates an orchestrator and locator for cfg that
// publishes to pub.
func newOrchestrator(cfg config.Config, pub tick.Publisher) (*tick.Orchestrator, tick.Locator, error) {
	calc, err := cfg.Calculator()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.TimeLocation()
	if err != nil {
		return nil, nil, err
	}
	provider, err := cfg.Provider()
	if err != nil {
		return nil, nil, err
	}
	o := tick.New(calc,
		tick.WithInterval(cfg.Interval),
		tick.WithLocation(loc),
		tick.WithPublisher(pub))
	return o, provider, nil
}

func watch(ctx context.Context, values any, _ []string) error {
	fv := values.(*watchFlags)
	ctx, cfg, done, err := setup(ctx, &fv.CommonFlags)
	if err != nil {
		return err
	}
	defer done()
	ctx, wait := signals.NotifyWithCancel(ctx, signals.Defaults()...)
	o, locator, err := newOrchestrator(cfg, present.NewText(os.Stdout, !fv.NoClear))
	if err != nil {
		return err
	}
	ctxlog.Logger(ctx).Info("watching", "provider", cfg.ProviderName(), "backend", cfg.Astronomy.Backend, "interval", cfg.Interval)
	if err := o.Run(ctx, locator); err != nil {
		return err
	}
	ctxlog.Logger(ctx).Info("exiting", "signal", wait.WaitForSignal().String())
	return nil
}

func today(ctx context.Context, values any, _ []string) error {
	fv := values.(*todayFlags)
	ctx, cfg, done, err := setup(ctx, &fv.CommonFlags)
	if err != nil {
		return err
	}
	defer done()
	return runToday(ctx, cfg, os.Stdout, fv.JSON, time.Now())
}

// runToday evaluates a single tick at now and writes it to out. The
// location error, if any, is returned after the update is written.
func runToday(ctx context.Context, cfg config.Config, out io.Writer, asJSON bool, now time.Time) error {
	var pub tick.Publisher = present.NewText(out, false)
	if asJSON {
		pub = present.NewJSON(out)
	}
	o, locator, err := newOrchestrator(cfg, pub)
	if err != nil {
		return err
	}
	coord, locErr := locator.Locate(ctx)
	if locErr != nil {
		o.LocationFailed(locErr)
	} else {
		o.SetCoordinate(coord)
	}
	u, err := o.Tick(now)
	if err != nil {
		return err
	}
	if err := pub.Publish(ctx, u); err != nil {
		return err
	}
	return locErr
}

func serve(ctx context.Context, values any, _ []string) error {
	fv := values.(*serveFlags)
	ctx, cfg, done, err := setup(ctx, &fv.CommonFlags)
	if err != nil {
		return err
	}
	defer done()
	if len(fv.Addr) > 0 {
		cfg.HTTP.Addr = fv.Addr
	}
	ctx, wait := signals.NotifyWithCancel(ctx, signals.Defaults()...)

	latest := &present.Latest{}
	pub := present.Tee{latest}
	if fv.Stream {
		pub = append(pub, present.NewJSON(os.Stdout))
	}
	o, locator, err := newOrchestrator(cfg, pub)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           present.NewHandler(latest),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger := ctxlog.Logger(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return o.Run(ctx, locator)
	})
	g.Go(func() error {
		logger.Info("serving", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("exiting", "signal", wait.WaitForSignal().String())
	return nil
}

func printConfig(_ context.Context, values any, _ []string) error {
	fv := values.(*configFlags)
	cfg, err := loadConfig(&fv.CommonFlags)
	if err != nil {
		return err
	}
	return cfg.WriteYAML(os.Stdout)
}
