package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "burndown.yaml"

// Environment overrides.
const (
	EnvAPIKey = "REDMINE_API_KEY"
	EnvURL    = "REDMINE_URL"
)

// Config holds tracker access and team scoping.
type Config struct {
	Redmine RedmineConfig     `yaml:"redmine"`
	Team    TeamConfig        `yaml:"team"`
	Teams   map[string]string `yaml:"teams"`

	// ExcludeRejected drops rejected tickets from the sprint total.
	ExcludeRejected bool `yaml:"exclude_rejected"`
}

type RedmineConfig struct {
	URL         string        `yaml:"url"`
	APIKey      string        `yaml:"api_key"`
	Projects    []string      `yaml:"projects"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
}

type TeamConfig struct {
	// Tag is matched against ticket subjects as "[tag]".
	Tag string `yaml:"tag"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Redmine: RedmineConfig{
			URL:         "https://progress.opensuse.org",
			Projects:    []string{"suseqa", "openqav3", "openqatests"},
			Timeout:     30 * time.Second,
			MaxAttempts: 3,
		},
		Team: TeamConfig{Tag: "y"},
		Teams: map[string]string{
			"y": "YaST",
		},
	}
}

// TeamName returns the display name for the configured tag.
func (c *Config) TeamName() string {
	if name, ok := c.Teams[c.Team.Tag]; ok && name != "" {
		return name
	}
	return "User space"
}

// Load reads path on top of the defaults. A missing file is not an error
// unless the path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	// #nosec G304 -- path comes from the operator
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.Redmine.APIKey = v
	}
	if v := os.Getenv(EnvURL); v != "" {
		c.Redmine.URL = v
	}
}

// Validate checks the settings needed to query the tracker.
func (c *Config) Validate() error {
	if c.Redmine.URL == "" {
		return fmt.Errorf("redmine url is required")
	}
	if len(c.Redmine.Projects) == 0 {
		return fmt.Errorf("at least one redmine project is required")
	}
	if c.Team.Tag == "" {
		return fmt.Errorf("team tag is required")
	}
	if c.Redmine.MaxAttempts < 1 {
		c.Redmine.MaxAttempts = 1
	}
	return nil
}
