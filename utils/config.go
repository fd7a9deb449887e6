package utils

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MinGridSize is the smallest accepted side length; smaller values cannot
// hold a glider with a margin around it
const MinGridSize = 9

// Display targets
const (
	DisplayTerminal = "terminal"
	DisplayWindow   = "window"
	DisplayText     = "text"
	DisplayNone     = "none"
)

var displays = []string{DisplayTerminal, DisplayWindow, DisplayText, DisplayNone}

// ErrInvalidConfiguration is returned when a configuration value is rejected
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config holds the configuration for the simulation
type Config struct {
	GridSize            int     `json:"grid_size"`
	IntervalMS          int     `json:"interval_ms"`
	Glider              bool    `json:"glider"`
	MovFile             string  `json:"mov_file"`
	Frames              int     `json:"frames"`
	FPS                 int     `json:"fps"`
	RandomDensity       float64 `json:"random_density"`
	Seed                int64   `json:"seed"`
	Display             string  `json:"display"`
	Scale               int     `json:"scale"`
	MaxGenerations      int     `json:"max_generations"`
	StagnationThreshold int     `json:"stagnation_threshold"`
	UseParallel         bool    `json:"use_parallel"`
	UseMemoryPool       bool    `json:"use_memory_pool"`

	ConfigFile string `json:"-"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		GridSize:            100,
		IntervalMS:          50,
		Frames:              50,
		FPS:                 30,
		RandomDensity:       0.2,
		Display:             DisplayTerminal,
		Scale:               4,
		MaxGenerations:      0, // run until quit
		StagnationThreshold: 0, // never stop on stagnation
		UseParallel:         true,
		UseMemoryPool:       true,
	}
}

// TickInterval returns the delay between two generations
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	config.ConfigFile = filename
	return config, nil
}

// Bind attaches the configuration to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "JSON configuration file, flags override its values")
	fs.IntVar(&c.GridSize, "grid-size", c.GridSize, "side length N of the NxN grid (must be greater than 8)")
	fs.StringVar(&c.MovFile, "mov-file", c.MovFile, "also export the animation to this video file (.gif is encoded in-process, anything else through ffmpeg)")
	fs.IntVar(&c.IntervalMS, "interval", c.IntervalMS, "tick interval in milliseconds")
	fs.BoolVar(&c.Glider, "glider", c.Glider, "seed a single glider at (1,1) instead of a random grid")
	fs.IntVar(&c.Frames, "frames", c.Frames, "number of generations written to the video file")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frame rate of the video file")
	fs.Float64Var(&c.RandomDensity, "density", c.RandomDensity, "probability a cell starts alive in a random grid")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 seeds from the clock")
	fs.StringVar(&c.Display, "display", c.Display, "display sink: "+strings.Join(displays, ", "))
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell for the window and the video file")
	fs.IntVar(&c.MaxGenerations, "max-generations", c.MaxGenerations, "stop after this many generations, 0 runs until quit")
	fs.IntVar(&c.StagnationThreshold, "stagnation", c.StagnationThreshold, "stop after this many consecutive stagnant generations, 0 disables")
	fs.BoolVar(&c.UseParallel, "parallel", c.UseParallel, "split each generation across all CPUs")
	fs.BoolVar(&c.UseMemoryPool, "pool", c.UseMemoryPool, "recycle grid buffers between generations")
}

// ParseArgs builds the configuration from defaults, an optional --config
// file and the remaining flags, then validates it
func ParseArgs(name string, args []string, output io.Writer) (Config, error) {
	// first pass only discovers --config
	probe := DefaultConfig()
	pfs := flag.NewFlagSet(name, flag.ContinueOnError)
	pfs.SetOutput(io.Discard)
	probe.Bind(pfs)
	_ = pfs.Parse(args)

	config := DefaultConfig()
	if probe.ConfigFile != "" {
		loaded, err := LoadConfig(probe.ConfigFile)
		if err != nil {
			return config, errors.Wrap(err, "[ParseArgs] failed to load config file")
		}
		config = loaded
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	config.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate reports the first parameter that cannot be used
func (c Config) Validate() error {
	switch {
	case c.GridSize < MinGridSize:
		return errors.Wrapf(ErrInvalidConfiguration, "grid-size must be at least %d, got %d", MinGridSize, c.GridSize)
	case c.IntervalMS <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "interval must be a positive number of milliseconds, got %d", c.IntervalMS)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfiguration, "density must be within [0, 1], got %v", c.RandomDensity)
	case !slices.Contains(displays, c.Display):
		return errors.Wrapf(ErrInvalidConfiguration, "display must be one of %s, got %q", strings.Join(displays, ", "), c.Display)
	case c.Scale <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "scale must be positive, got %d", c.Scale)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "max-generations must not be negative, got %d", c.MaxGenerations)
	case c.StagnationThreshold < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "stagnation must not be negative, got %d", c.StagnationThreshold)
	}

	if c.MovFile != "" {
		switch {
		case c.Frames <= 0:
			return errors.Wrapf(ErrInvalidConfiguration, "frames must be positive when exporting, got %d", c.Frames)
		case c.FPS <= 0:
			return errors.Wrapf(ErrInvalidConfiguration, "fps must be positive when exporting, got %d", c.FPS)
		case filepath.Ext(c.MovFile) == "":
			return errors.Wrapf(ErrInvalidConfiguration, "mov-file needs an extension to pick a format, got %q", c.MovFile)
		}
	}
	return nil
}
