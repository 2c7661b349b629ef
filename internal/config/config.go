package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "TINYRENDER_"

// Render defaults.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
	DefaultMode   = "flat"
	DefaultFormat = "tga"
)

// Config holds all render and output settings.
type Config struct {
	// Output
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	Format    string `json:"format" yaml:"format"`
	RLE       *bool  `json:"rle" yaml:"rle"`

	// Render settings
	Width  int     `json:"width" yaml:"width"`
	Height int     `json:"height" yaml:"height"`
	Mode   string  `json:"mode" yaml:"mode"`
	Seed   int64   `json:"seed" yaml:"seed"`
	Pitch  float64 `json:"pitch" yaml:"pitch"`
	Yaw    float64 `json:"yaw" yaml:"yaw"`
	Roll   float64 `json:"roll" yaml:"roll"`

	Workers int `json:"workers" yaml:"workers"`

	// Logging
	LogFile     string `json:"log_file" yaml:"log_file"`
	Development bool   `json:"development" yaml:"development"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none)
// into the process environment. Missing files are ignored and variables
// that are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from TINYRENDER_* variables. Values that do not
// parse are ignored.
func (c *Config) ApplyEnv() {
	c.OutputDir = getEnvOrDefault("OUTPUT_DIR", c.OutputDir)
	c.Format = getEnvOrDefault("FORMAT", c.Format)
	c.Mode = getEnvOrDefault("MODE", c.Mode)
	c.LogFile = getEnvOrDefault("LOG_FILE", c.LogFile)
	c.Width = parseIntEnv("WIDTH", c.Width)
	c.Height = parseIntEnv("HEIGHT", c.Height)
	c.Workers = parseIntEnv("WORKERS", c.Workers)
	c.Seed = int64(parseIntEnv("SEED", int(c.Seed)))
	c.Development = parseBoolEnv("DEV", c.Development)
	if v, ok := lookupBoolEnv("RLE"); ok {
		c.RLE = &v
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) int {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseBoolEnv(key string, def bool) bool {
	if v, ok := lookupBoolEnv(key); ok {
		return v
	}
	return def
}

func lookupBoolEnv(key string) (bool, bool) {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// Flags holds CLI flag values that override config file settings.
// Zero values mean "not set".
type Flags struct {
	OutputDir string
	Format    string
	Mode      string
	Width     int
	Height    int
	Workers   int
	Seed      int64
	NoRLE     bool
	LogFile   string
	Dev       bool
}

// Resolve applies flags over the current values and fills what is still
// empty with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.NoRLE {
		off := false
		c.RLE = &off
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.Dev {
		c.Development = true
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if c.RLE == nil {
		on := true
		c.RLE = &on
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// UseRLE reports whether TGA output is run-length encoded.
func (c *Config) UseRLE() bool {
	return c.RLE == nil || *c.RLE
}
