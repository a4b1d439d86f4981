package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-sitedata/internal/dateutil"
	"github.com/alnah/go-sitedata/internal/fileutil"
	"github.com/alnah/go-sitedata/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// AppDir is the directory name searched under the user config directory.
const AppDir = "go-sitedata"

// Resize bounds.
const (
	DefaultMaxWidth = 2000
	DefaultQuality  = 85
	MaxQuality      = 100
)

// labelPattern restricts category labels to JSON-friendly identifiers.
var labelPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var logLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

// Config holds all configuration for site data generation.
// Relative paths are resolved against Root.
type Config struct {
	Root    string        `yaml:"root"`
	Logs    LogsConfig    `yaml:"logs"`
	Info    InfoConfig    `yaml:"info"`
	Slides  SlidesConfig  `yaml:"slides"`
	Resize  ResizeConfig  `yaml:"resize"`
	Logging LoggingConfig `yaml:"logging"`
}

// LogsConfig defines the dated-folder record categories.
type LogsConfig struct {
	DateFormats []string         `yaml:"dateFormats"` // presets or token formats; empty = dateutil defaults
	Categories  []CategoryConfig `yaml:"categories"`
}

// CategoryConfig maps one folder of dated records to one JSON file.
type CategoryConfig struct {
	Label  string `yaml:"label"`  // top-level JSON key, e.g. "activity_logs"
	Dir    string `yaml:"dir"`    // folder holding yyyymmdd_name subfolders
	Output string `yaml:"output"` // JSON file to write
}

// InfoConfig defines the notice page generated from a Markdown file.
type InfoConfig struct {
	Source       string `yaml:"source"`
	Output       string `yaml:"output"`
	DefaultTitle string `yaml:"defaultTitle"`
}

// SlidesConfig defines the gallery image listing.
type SlidesConfig struct {
	Dir        string   `yaml:"dir"`
	Output     string   `yaml:"output"` // empty = <dir>/slides.json
	Extensions []string `yaml:"extensions"`
}

// ResizeConfig defines in-place slide downscaling.
type ResizeConfig struct {
	MaxWidth   int      `yaml:"maxWidth"`
	Quality    int      `yaml:"quality"`    // JPEG quality 1-100
	BackupDir  string   `yaml:"backupDir"`  // relative to slides.dir
	RecordFile string   `yaml:"recordFile"` // relative to slides.dir
	Extensions []string `yaml:"extensions"`
}

// LoggingConfig defines warning output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: warn)
}

// DefaultConfig returns the conventional static-site layout.
func DefaultConfig() *Config {
	return &Config{
		Root: ".",
		Logs: LogsConfig{
			DateFormats: append([]string{}, dateutil.DefaultFormats...),
			Categories: []CategoryConfig{
				{
					Label:  "activity_logs",
					Dir:    filepath.Join("static", "data", "activity_logs"),
					Output: filepath.Join("static", "data", "activity_logs.json"),
				},
				{
					Label:  "training_logs",
					Dir:    filepath.Join("static", "data", "training_logs"),
					Output: filepath.Join("static", "data", "training_logs.json"),
				},
			},
		},
		Info: InfoConfig{
			Source:       "INFO-message.md",
			Output:       filepath.Join("static", "data", "info.json"),
			DefaultTitle: "INFO",
		},
		Slides: SlidesConfig{
			Dir:        filepath.Join("static", "slides"),
			Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		},
		Resize: ResizeConfig{
			MaxWidth:   DefaultMaxWidth,
			Quality:    DefaultQuality,
			BackupDir:  "originals",
			RecordFile: ".processed_images.json",
			Extensions: []string{".jpg", ".jpeg", ".png"},
		},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// Path resolves p against Root. Absolute paths are returned unchanged.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// SlidesOutput returns the resolved slides.json path.
func (c *Config) SlidesOutput() string {
	if c.Slides.Output != "" {
		return c.Path(c.Slides.Output)
	}
	return filepath.Join(c.Path(c.Slides.Dir), "slides.json")
}

// Validate checks the configuration for values the generators cannot use.
// Called automatically by LoadConfig, and again by the CLI after flag and
// environment overrides are applied.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("%w: root: required", ErrInvalidConfig)
	}

	if _, err := dateutil.Layouts(c.Logs.DateFormats); err != nil {
		return fmt.Errorf("%w: logs.dateFormats: %w", ErrInvalidConfig, err)
	}

	seen := make(map[string]bool, len(c.Logs.Categories))
	for i, cat := range c.Logs.Categories {
		field := fmt.Sprintf("logs.categories[%d]", i)
		if !labelPattern.MatchString(cat.Label) {
			return fmt.Errorf("%w: %s.label: invalid value %q (letters, digits, underscore)", ErrInvalidConfig, field, cat.Label)
		}
		if seen[cat.Label] {
			return fmt.Errorf("%w: %s.label: duplicate %q", ErrInvalidConfig, field, cat.Label)
		}
		seen[cat.Label] = true
		if cat.Dir == "" {
			return fmt.Errorf("%w: %s.dir: required", ErrInvalidConfig, field)
		}
		if cat.Output == "" {
			return fmt.Errorf("%w: %s.output: required", ErrInvalidConfig, field)
		}
	}

	if c.Info.Source == "" || c.Info.Output == "" {
		return fmt.Errorf("%w: info.source and info.output: required", ErrInvalidConfig)
	}

	if c.Slides.Dir == "" {
		return fmt.Errorf("%w: slides.dir: required", ErrInvalidConfig)
	}
	if err := validateExtensions("slides.extensions", c.Slides.Extensions); err != nil {
		return err
	}

	if c.Resize.MaxWidth <= 0 {
		return fmt.Errorf("%w: resize.maxWidth: must be positive, got %d", ErrInvalidConfig, c.Resize.MaxWidth)
	}
	if c.Resize.Quality < 1 || c.Resize.Quality > MaxQuality {
		return fmt.Errorf("%w: resize.quality: must be between 1 and %d, got %d", ErrInvalidConfig, MaxQuality, c.Resize.Quality)
	}
	if c.Resize.BackupDir == "" || c.Resize.RecordFile == "" {
		return fmt.Errorf("%w: resize.backupDir and resize.recordFile: required", ErrInvalidConfig)
	}
	if err := validateExtensions("resize.extensions", c.Resize.Extensions); err != nil {
		return err
	}

	if !logLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("%w: logging.level: invalid value %q (must be debug, info, warn, or error)", ErrInvalidConfig, c.Logging.Level)
	}

	return nil
}

func validateExtensions(field string, exts []string) error {
	if len(exts) == 0 {
		return fmt.Errorf("%w: %s: at least one extension required", ErrInvalidConfig, field)
	}
	for i, ext := range exts {
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: %s[%d]: %v", ErrInvalidConfig, field, i, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values missing from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) && !fileutil.FileExists(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Decode(data, cfg, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
