package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for one workspace.
type Config struct {
	Workspace  string `yaml:"-"`
	DBPath     string `yaml:"-"`
	ConfigPath string `yaml:"-"`

	Timezone string         `yaml:"timezone"`
	Log      LogConfig      `yaml:"log"`
	Timeline TimelineConfig `yaml:"timeline"`
	Extract  ExtractConfig  `yaml:"extract"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // console|json
}

type TimelineConfig struct {
	DayWidth    float64 `yaml:"day_width"`     // pixels per day for svg output
	LeftOffset  float64 `yaml:"left_offset"`   // label gutter width in pixels
	MinDayWidth int     `yaml:"min_day_width"` // terminal cells per day in the tui
}

type ExtractConfig struct {
	APIKey        string  `yaml:"-"`
	Model         string  `yaml:"model"`
	BaseURL       string  `yaml:"base_url"`
	MinConfidence float64 `yaml:"min_confidence"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Timeline: TimelineConfig{
			DayWidth:    24,
			LeftOffset:  220,
			MinDayWidth: 2,
		},
		Extract: ExtractConfig{
			Model:         "gpt-4o-mini",
			BaseURL:       "https://api.openai.com/v1",
			MinConfidence: 0.5,
		},
	}
}

// New resolves workspace paths and merges defaults, the workspace config
// file, and environment overrides, in that order.
func New(workspace string) (Config, error) {
	if strings.TrimSpace(workspace) == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	cfg := Default()
	cfg.Workspace = workspace
	cfg.DBPath = filepath.Join(workspace, ".pmhub", "pmhub.db")
	cfg.ConfigPath = filepath.Join(workspace, ".pmhub", "config.yaml")

	if err := cfg.loadFile(); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Extract.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.Extract.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.Extract.Model = v
	}
	if v := os.Getenv("PMHUB_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Timeline.DayWidth <= 0 {
		return fmt.Errorf("timeline.day_width must be positive")
	}
	if c.Timeline.LeftOffset < 0 {
		return fmt.Errorf("timeline.left_offset must not be negative")
	}
	if c.Timeline.MinDayWidth < 1 {
		return fmt.Errorf("timeline.min_day_width must be at least 1")
	}
	if c.Extract.MinConfidence < 0 || c.Extract.MinConfidence > 1 {
		return fmt.Errorf("extract.min_confidence must be within 0..1")
	}
	return nil
}

// Location resolves the configured timezone; empty means the process zone.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
