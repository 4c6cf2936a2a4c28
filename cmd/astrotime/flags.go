package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/c360/astrotime/julian"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath   string
	LogLevel     string
	LogFormat    string
	EphemerisDir string
	MetricsPort  int

	Date         string
	JulianDay    float64
	JulianDaySet bool
	Calendar     string
	Body         string

	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("ASTROTIME_CONFIG", ""),
		"Path to YAML configuration file (env: ASTROTIME_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("ASTROTIME_LOG_LEVEL", "warn"),
		"Log level: debug, info, warn, error (env: ASTROTIME_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("ASTROTIME_LOG_FORMAT", "text"),
		"Log format: json, text (env: ASTROTIME_LOG_FORMAT)")

	flag.StringVar(&cfg.EphemerisDir, "ephe-dir",
		getEnv("ASTROTIME_EPHE_DIR", ""),
		"Directory holding ephemeris coefficient files (env: ASTROTIME_EPHE_DIR)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("ASTROTIME_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: ASTROTIME_METRICS_PORT)")

	flag.StringVar(&cfg.Date, "date", "",
		"Civil date to convert, formatted YYYY-MM-DD[THH:MM:SS]")
	flag.Float64Var(&cfg.JulianDay, "jd", 0,
		"Julian Day number to convert back to a civil date")
	flag.StringVar(&cfg.Calendar, "calendar", "",
		"Calendar system: gregorian, julian (default: by date)")
	flag.StringVar(&cfg.Body, "body", "",
		"Celestial body to compute a position for (sun, moon, mercury, ...)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	flag.Usage = printHelp
	flag.Parse()

	// JD 0 is a valid input (the -4712 epoch), so set-ness is tracked
	// rather than inferred from the value.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "jd" {
			cfg.JulianDaySet = true
		}
	})

	return cfg
}

func initializeCLI() (*CLIConfig, bool, error) {
	cfg := parseFlags()
	if err := validateFlags(cfg); err != nil {
		return nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cfg.ShowVersion {
		fmt.Printf("%s version %s (build %s)\n", appName, Version, BuildTime)
		return nil, true, nil
	}
	if cfg.ShowHelp {
		printHelp()
		return nil, true, nil
	}
	return cfg, false, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.Calendar != "" && cfg.Calendar != "gregorian" && cfg.Calendar != "julian" {
		return fmt.Errorf("invalid calendar: %s", cfg.Calendar)
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	if cfg.Date != "" && cfg.JulianDaySet {
		return fmt.Errorf("use either -date or -jd, not both")
	}

	return nil
}

// parseDate parses YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS into a DateUT. When no
// calendar is forced the historically correct one for the date is used.
func parseDate(s, calendar string) (julian.DateUT, error) {
	var y, mo, d, h, mi, sec int
	if n, err := fmt.Sscanf(s, "%d-%d-%dT%d:%d:%d", &y, &mo, &d, &h, &mi, &sec); err != nil || n < 6 {
		h, mi, sec = 0, 0, 0
		if n, err := fmt.Sscanf(s, "%d-%d-%d", &y, &mo, &d); err != nil || n < 3 {
			return julian.DateUT{}, fmt.Errorf("unparseable date: %s", s)
		}
	}

	var system julian.CalendarSystem
	switch calendar {
	case "julian":
		system = julian.Julian
	case "gregorian":
		system = julian.Gregorian
	default:
		system = julian.DefaultSystem(y, mo, d)
	}

	return julian.NewDateUTClock(y, mo, d, h, mi, sec, system), nil
}

func printHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - astronomical time and calendar conversions

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Julian Day and Ephemeris Time for a date
  %s -date 2000-01-01T12:00:00

  # Civil date for a Julian Day number
  %s -jd 2451545.0

  # Solar position, with ephemeris files from a directory
  %s -date 2026-08-25 -body sun -ephe-dir /data/ephe

  # Validate a configuration file
  %s -config astrotime.yaml -validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
