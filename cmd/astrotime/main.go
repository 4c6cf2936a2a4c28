// Package main implements the astrotime command line tool: calendar and
// time-scale conversions and body positions from the command line, with an
// optional Prometheus metrics endpoint.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/c360/astrotime/config"
	"github.com/c360/astrotime/engine"
	"github.com/c360/astrotime/julian"
	"github.com/c360/astrotime/metric"
	"github.com/c360/astrotime/planetary"
	"github.com/c360/astrotime/provider"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "astrotime"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Command failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	cfg, err := loadConfiguration(cliCfg)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	opts := []engine.Option{engine.WithLogger(logger)}

	var registry *metric.MetricsRegistry
	if cliCfg.MetricsPort > 0 {
		registry = metric.NewMetricsRegistry()
		opts = append(opts, engine.WithMetrics(registry))
	}
	if cliCfg.EphemerisDir != "" {
		opts = append(opts, engine.WithProvider(provider.NewDir(cliCfg.EphemerisDir, logger)))
	}

	c, err := engine.NewContext(appName, cfg, opts...)
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}
	defer c.Close()

	if registry != nil {
		server := metric.NewServer(cliCfg.MetricsPort, "/metrics", registry)
		go func() {
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server error", "error", err)
			}
		}()
		defer func() { _ = server.Stop() }()
		logger.Info("Metrics server started", "address", server.Address())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return execute(ctx, c, cliCfg)
}

// execute runs the requested conversion or computation and prints the
// result to stdout.
func execute(ctx context.Context, c *engine.Context, cliCfg *CLIConfig) error {
	switch {
	case cliCfg.JulianDaySet:
		return printCivilDate(c, cliCfg)
	case cliCfg.Date != "":
		return printJulianDay(ctx, c, cliCfg)
	default:
		printHelp()
		return nil
	}
}

func printCivilDate(c *engine.Context, cliCfg *CLIConfig) error {
	jd := julian.JulianDay{Value: cliCfg.JulianDay, System: calendarSystem(cliCfg.Calendar)}
	date, err := c.DateUT(jd)
	if err != nil {
		return fmt.Errorf("convert julian day: %w", err)
	}

	dt, err := c.DeltaTSeconds(jd)
	if err != nil {
		return fmt.Errorf("delta-t: %w", err)
	}

	fmt.Printf("JD %.6f (%s)\n", jd.Value, jd.System)
	fmt.Printf("  civil date: %04d-%02d-%02d %02d:%02d:%02d UT\n",
		date.Year, date.Month, date.Day, date.Hour, date.Minute, date.Second)
	fmt.Printf("  delta-t:    %.3f s\n", dt)
	return nil
}

func printJulianDay(ctx context.Context, c *engine.Context, cliCfg *CLIConfig) error {
	date, err := parseDate(cliCfg.Date, cliCfg.Calendar)
	if err != nil {
		return err
	}

	jd, err := c.JulianDay(date)
	if err != nil {
		return fmt.Errorf("convert date: %w", err)
	}
	et, err := c.EphemerisTime(jd)
	if err != nil {
		return fmt.Errorf("ephemeris time: %w", err)
	}

	fmt.Printf("%04d-%02d-%02d %02d:%02d:%02d UT (%s)\n",
		date.Year, date.Month, date.Day, date.Hour, date.Minute, date.Second, date.System)
	fmt.Printf("  julian day:     %.6f\n", jd.Value)
	fmt.Printf("  ephemeris time: %.6f (delta-t %.3f s)\n", et.Value(), et.DeltaT*86400.0)

	if cliCfg.Body != "" {
		body, err := parseBody(cliCfg.Body)
		if err != nil {
			return err
		}
		pos, err := c.Position(ctx, et, body)
		if err != nil {
			return fmt.Errorf("position of %s: %w", body, err)
		}
		fmt.Printf("  %s: lon %.4f lat %.4f dist %.6f AU (%.4f deg/day)\n",
			body, pos.Longitude, pos.Latitude, pos.Distance, pos.LongitudeSpeed)
	}
	return nil
}

// loadConfiguration reads the YAML configuration file, or falls back to
// defaults when none is given.
func loadConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	if cliCfg.ConfigPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFile(cliCfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

func calendarSystem(name string) julian.CalendarSystem {
	if name == "julian" {
		return julian.Julian
	}
	return julian.Gregorian
}

func parseBody(name string) (planetary.Body, error) {
	bodies := map[string]planetary.Body{
		"sun": planetary.Sun, "moon": planetary.Moon,
		"mercury": planetary.Mercury, "venus": planetary.Venus,
		"mars": planetary.Mars, "jupiter": planetary.Jupiter,
		"saturn": planetary.Saturn, "uranus": planetary.Uranus,
		"neptune": planetary.Neptune, "pluto": planetary.Pluto,
	}
	body, ok := bodies[name]
	if !ok {
		return 0, fmt.Errorf("unknown body: %s", name)
	}
	return body, nil
}
