// internal/config/config.go
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/codr1/svgtint/internal/colors"
	"github.com/codr1/svgtint/internal/palette"
	"github.com/codr1/svgtint/internal/theme"
)

type PaletteConfig struct {
	Levels int    `yaml:"levels"`
	Prefix string `yaml:"prefix"`
	File   string `yaml:"file"`   // relative paths land in the output folder
	Format string `yaml:"format"` // sass or css; empty derives it from File
}

type LogConfig struct {
	Environment string `yaml:"environment"`
	Level       string `yaml:"level"`
}

type Config struct {
	Input        string            `yaml:"input"`
	Output       string            `yaml:"output"`
	PrimaryColor string            `yaml:"primary_color"`
	Tolerance    float64           `yaml:"tolerance"`
	Extensions   []string          `yaml:"extensions"`
	Workers      int               `yaml:"workers"` // 0 uses GOMAXPROCS
	Report       string            `yaml:"report,omitempty"`
	NamedColors  map[string]string `yaml:"named_colors,omitempty"`

	Palette PaletteConfig `yaml:"palette"`
	Log     LogConfig     `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Input:        "svg",
		Output:       "out",
		PrimaryColor: theme.DefaultPrimaryColor,
		Tolerance:    theme.DefaultTolerance,
		Extensions:   []string{".svg"},
		Palette: PaletteConfig{
			Levels: palette.DefaultLevels,
			Prefix: palette.DefaultPrefix,
			File:   "color_map.sass",
		},
		Log: LogConfig{
			Environment: "development",
			Level:       "info",
		},
	}
}

// Load loads both .env and yaml configuration. An empty configPath yields the
// defaults with environment overrides applied.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		// Load .env file if it exists
		envPath := filepath.Join(filepath.Dir(configPath), ".env")
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv("SVGTINT_INPUT"); ok {
		c.Input = value
	}
	if value, ok := os.LookupEnv("SVGTINT_OUTPUT"); ok {
		c.Output = value
	}
	if value, ok := os.LookupEnv("SVGTINT_PRIMARY_COLOR"); ok {
		c.PrimaryColor = value
	}
	if value, ok := os.LookupEnv("SVGTINT_TOLERANCE"); ok {
		tolerance, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("SVGTINT_TOLERANCE: %w", err)
		}
		c.Tolerance = tolerance
	}
	if value, ok := os.LookupEnv("SVGTINT_WORKERS"); ok {
		workers, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("SVGTINT_WORKERS: %w", err)
		}
		c.Workers = workers
	}
	if value, ok := os.LookupEnv("SVGTINT_ENVIRONMENT"); ok {
		c.Log.Environment = value
	}
	if value, ok := os.LookupEnv("SVGTINT_LOG_LEVEL"); ok {
		c.Log.Level = value
	}
	return nil
}

// ApplyArgs overrides input, output, primary color and tolerance, in that order,
// from positional arguments.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) > 4 {
		return fmt.Errorf("expected at most 4 arguments, got %d", len(args))
	}
	if len(args) > 0 {
		c.Input = args[0]
	}
	if len(args) > 1 {
		c.Output = args[1]
	}
	if len(args) > 2 {
		c.PrimaryColor = args[2]
	}
	if len(args) > 3 {
		tolerance, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("tolerance %q is not a number", args[3])
		}
		c.Tolerance = tolerance
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("input folder is required")
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output folder is required")
	}
	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return fmt.Errorf("output folder must differ from input folder")
	}
	if _, err := colors.Parse(c.PrimaryColor); err != nil {
		return fmt.Errorf("primary color: %w", err)
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be a finite number >= 0, got %g", c.Tolerance)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one file extension is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Palette.Levels < 1 {
		return fmt.Errorf("palette levels must be >= 1, got %d", c.Palette.Levels)
	}
	if strings.TrimSpace(c.Palette.File) == "" {
		return fmt.Errorf("palette file is required")
	}
	if c.Palette.Format != "" {
		if _, err := palette.ParseFormat(c.Palette.Format); err != nil {
			return err
		}
	}
	for name, hex := range c.NamedColors {
		if !colors.IsHexColor(hex) {
			return fmt.Errorf("named color %s must be a hex color like #AABBCC", name)
		}
	}

	switch c.Log.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("unsupported log environment: %s", c.Log.Environment)
	}

	return nil
}

// ThemeOptions converts the configuration into theme construction options.
func (c *Config) ThemeOptions() theme.Options {
	return theme.Options{
		PrimaryColor: c.PrimaryColor,
		Tolerance:    c.Tolerance,
		Levels:       c.Palette.Levels,
		Prefix:       c.Palette.Prefix,
		NamedColors:  c.NamedColors,
	}
}

// PaletteFormat resolves the stylesheet format, preferring an explicit setting.
func (c *Config) PaletteFormat() palette.Format {
	if c.Palette.Format != "" {
		if format, err := palette.ParseFormat(c.Palette.Format); err == nil {
			return format
		}
	}
	return palette.FormatForFile(c.Palette.File, palette.FormatSass)
}

// PalettePath is where the stylesheet is written.
func (c *Config) PalettePath() string {
	if filepath.IsAbs(c.Palette.File) {
		return c.Palette.File
	}
	return filepath.Join(c.Output, c.Palette.File)
}
