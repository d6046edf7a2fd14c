// Package config holds gridcaster's runtime settings, layered as defaults,
// then environment (optionally from a .env file), then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/samdwyer/gridcaster/internal/grid"
	"github.com/samdwyer/gridcaster/internal/logging"
)

// EnvPrefix prefixes every environment variable read by LoadEnv.
const EnvPrefix = "GRIDCASTER_"

// Config holds viewer and casting options.
type Config struct {
	// Layout is the name of an embedded layout; LayoutFile, when set, is a
	// YAML layout on disk and takes precedence.
	Layout     string
	LayoutFile string

	// Grid size used when neither layout sets one.
	Width    int
	Height   int
	CellSize float64

	FOV      float64 // Degrees covered by the fan of rays
	Rays     int     // Number of rays in the fan
	Heading  float64 // Initial heading in degrees; NaN keeps the layout's
	MoveStep float64 // World units per movement key press
	TurnStep float64 // Degrees per turn key press
	Workers  int     // Goroutines used to cast the fan; 0 means GOMAXPROCS

	LogLevel string
	LogFile  string

	Telemetry    bool
	OTLPEndpoint string
	OTLPHeaders  string

	SavePath string // Where the viewer writes the edited layout
	Dump     bool   // Print the grid and a fan summary instead of opening the UI
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Layout:   "courtyard",
		Width:    grid.DefaultWidth,
		Height:   grid.DefaultHeight,
		CellSize: grid.DefaultCellSize,
		FOV:      60,
		Rays:     31,
		Heading:  math.NaN(),
		MoveStep: 2.5,
		TurnStep: 5,
		LogLevel: "info",
		LogFile:  "gridcaster.log",
		SavePath: "layout.yaml",
	}
}

// LoadEnv loads the given .env files (".env" when none are named) into the
// process environment and applies any GRIDCASTER_* variables. Missing .env
// files are not an error.
func (c *Config) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	var errs []error
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *float64) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = f
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	str("LAYOUT", &c.Layout)
	str("LAYOUT_FILE", &c.LayoutFile)
	integer("WIDTH", &c.Width)
	integer("HEIGHT", &c.Height)
	num("CELL_SIZE", &c.CellSize)
	num("FOV", &c.FOV)
	integer("RAYS", &c.Rays)
	num("HEADING", &c.Heading)
	num("MOVE_STEP", &c.MoveStep)
	num("TURN_STEP", &c.TurnStep)
	integer("WORKERS", &c.Workers)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)
	boolean("TELEMETRY", &c.Telemetry)
	str("OTLP_ENDPOINT", &c.OTLPEndpoint)
	str("OTLP_HEADERS", &c.OTLPHeaders)
	str("SAVE_PATH", &c.SavePath)

	return errors.Join(errs...)
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Layout, "layout", c.Layout, "embedded layout to load")
	fs.StringVar(&c.LayoutFile, "layout-file", c.LayoutFile, "YAML layout file to load instead of an embedded one")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells when no layout is used")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells when no layout is used")
	fs.Float64Var(&c.CellSize, "cell-size", c.CellSize, "world units per cell when no layout is used")
	fs.Float64Var(&c.FOV, "fov", c.FOV, "degrees covered by the fan of rays")
	fs.IntVar(&c.Rays, "rays", c.Rays, "number of rays in the fan")
	fs.Float64Var(&c.Heading, "heading", c.Heading, "initial heading in degrees (NaN keeps the layout's)")
	fs.Float64Var(&c.MoveStep, "move-step", c.MoveStep, "world units per movement key press")
	fs.Float64Var(&c.TurnStep, "turn-step", c.TurnStep, "degrees per turn key press")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines used to cast the fan (0 = GOMAXPROCS)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "log output path")
	fs.BoolVar(&c.Telemetry, "telemetry", c.Telemetry, "export traces over OTLP/HTTP")
	fs.StringVar(&c.SavePath, "save", c.SavePath, "path the edited layout is saved to")
	fs.BoolVar(&c.Dump, "dump", c.Dump, "print the grid and a fan summary, then exit")
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Layout == "" && c.LayoutFile == "" && (c.Width <= 0 || c.Height <= 0):
		return fmt.Errorf("grid size must be positive, got %dx%d", c.Width, c.Height)
	case !(c.CellSize > 0) || math.IsInf(c.CellSize, 0):
		return fmt.Errorf("cell size must be positive, got %v", c.CellSize)
	case !(c.FOV > 0 && c.FOV <= 360):
		return fmt.Errorf("fov must be in (0, 360], got %v", c.FOV)
	case c.Rays < 1:
		return fmt.Errorf("rays must be at least 1, got %d", c.Rays)
	case math.IsInf(c.Heading, 0):
		return fmt.Errorf("heading must be finite, got %v", c.Heading)
	case !(c.MoveStep > 0) || !(c.TurnStep > 0):
		return fmt.Errorf("move and turn steps must be positive")
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Output: c.LogFile}
}

// ApplyOTelEnv exports the OTLP endpoint and headers to the standard OTEL_*
// variables read by the exporter, without overriding ones already set.
func (c *Config) ApplyOTelEnv() {
	if c.OTLPEndpoint != "" && os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint)
	}
	if c.OTLPHeaders != "" && os.Getenv("OTEL_EXPORTER_OTLP_HEADERS") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS", c.OTLPHeaders)
	}
}
