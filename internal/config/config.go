// Package config captures the process configuration for a backport run.
//
// Everything the collaborators need from the environment is read exactly once
// at process start and carried in an explicit Config value; nothing reads
// os.Getenv after that.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultAPIURL = "https://api.github.com"

// Config holds the GitHub Actions environment for one invocation.
type Config struct {
	// Repository is the "owner/repo" slug from GITHUB_REPOSITORY.
	Repository string `yaml:"repository"`
	// APIURL is the API base URL from GITHUB_API_URL.
	APIURL string `yaml:"api_url"`
	// Actor is the user the push remote authenticates as, from GITHUB_ACTOR.
	Actor string `yaml:"actor"`
	// EventPath is the webhook payload file from GITHUB_EVENT_PATH.
	EventPath string `yaml:"event_path"`
}

// Load builds the configuration from the environment, with an optional yaml
// file filling fields the environment leaves unset (useful when running the
// tool outside GitHub Actions). A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := &Config{
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		APIURL:     os.Getenv("GITHUB_API_URL"),
		Actor:      os.Getenv("GITHUB_ACTOR"),
		EventPath:  os.Getenv("GITHUB_EVENT_PATH"),
	}

	if filename != "" {
		file, err := loadFile(filename)
		if err != nil {
			return nil, err
		}
		if file != nil {
			cfg.merge(file)
		}
	}

	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile reads a yaml config file, returning nil when the file is absent.
func loadFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename) //nolint:gosec // Config filename is from command-line flag
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// merge fills unset fields from the file config; the environment wins.
func (c *Config) merge(file *Config) {
	if c.Repository == "" {
		c.Repository = file.Repository
	}
	if c.APIURL == "" {
		c.APIURL = file.APIURL
	}
	if c.Actor == "" {
		c.Actor = file.Actor
	}
	if c.EventPath == "" {
		c.EventPath = file.EventPath
	}
}

func (c *Config) validate() error {
	if c.Repository == "" {
		return fmt.Errorf("GITHUB_REPOSITORY environment variable is required")
	}
	if !strings.Contains(c.Repository, "/") {
		return fmt.Errorf("GITHUB_REPOSITORY must be an owner/repo slug, got %q", c.Repository)
	}
	if c.EventPath == "" {
		return fmt.Errorf("GITHUB_EVENT_PATH environment variable is required")
	}
	return nil
}

// Owner returns the owner half of the repository slug.
func (c *Config) Owner() string {
	owner, _, _ := strings.Cut(c.Repository, "/")
	return owner
}

// Repo returns the repository half of the repository slug.
func (c *Config) Repo() string {
	_, repo, _ := strings.Cut(c.Repository, "/")
	return repo
}
