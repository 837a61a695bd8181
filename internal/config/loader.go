package config

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".cyriscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the YAML configuration file.
// Every field is optional. Zero values leave the built-in default in place.
//
// Example:
//
//	crawl:
//	  domain: www.systemrequirementslab.com
//	  max_pages: 500
//	  delay: 1s
//	  ignore_patterns:
//	    - /cyri/ajax/*
//	scrape:
//	  delay: 2s
//	headers:
//	  Accept-Language: en-US
//	scoring:
//	  gpu:
//	    GTX 970: 9650
type File struct {
	Crawl   CrawlSection      `yaml:"crawl"`
	Scrape  ScrapeSection     `yaml:"scrape"`
	Headers map[string]string `yaml:"headers"`
	Scoring ScoringSection    `yaml:"scoring"`
	// Database overrides the SQLite directory.
	Database string `yaml:"database"`
}

// CrawlSection holds crawler overrides.
type CrawlSection struct {
	Domain         string        `yaml:"domain"`
	PathPrefix     string        `yaml:"path_prefix"`
	TargetPrefix   string        `yaml:"target_prefix"`
	AllPaths       *bool         `yaml:"all_paths"`
	Seeds          []string      `yaml:"seeds"`
	IgnorePatterns []string      `yaml:"ignore_patterns"`
	MaxPages       int           `yaml:"max_pages"`
	MaxDepth       *int          `yaml:"max_depth"`
	Delay          time.Duration `yaml:"delay"`
	SaveEvery      int           `yaml:"save_every"`
	StateFile      string        `yaml:"state_file"`
	OutFile        string        `yaml:"out"`
	RespectRobots  *bool         `yaml:"respect_robots"`
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
}

// ScrapeSection holds scraper overrides.
type ScrapeSection struct {
	OutFile     string        `yaml:"out"`
	Delay       time.Duration `yaml:"delay"`
	BatchSize   int           `yaml:"batch_size"`
	MaxFailures *int          `yaml:"max_failures"`
}

// ScoringSection holds benchmark table overrides and unknown-model defaults.
type ScoringSection struct {
	DefaultCPU float64            `yaml:"default_cpu"`
	DefaultGPU float64            `yaml:"default_gpu"`
	CPU        map[string]float64 `yaml:"cpu"`
	GPU        map[string]float64 `yaml:"gpu"`
}

// LoadConfigFile loads a configuration file from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies every non-zero value of the file onto cfg.
// It runs before flags are parsed into cfg, so flags explicitly set by the
// user win over the file.
func (f *File) Apply(cfg *Config) {
	c := f.Crawl
	setString(&cfg.Domain, c.Domain)
	setString(&cfg.PathPrefix, c.PathPrefix)
	setString(&cfg.TargetPrefix, c.TargetPrefix)
	setString(&cfg.StateFile, c.StateFile)
	setString(&cfg.URLsFile, c.OutFile)
	setString(&cfg.UserAgent, c.UserAgent)
	if c.AllPaths != nil {
		cfg.AllPaths = *c.AllPaths
	}
	if c.RespectRobots != nil {
		cfg.RespectRobots = *c.RespectRobots
	}
	if len(c.Seeds) > 0 {
		cfg.Seeds = append([]string(nil), c.Seeds...)
	}
	if len(c.IgnorePatterns) > 0 {
		cfg.IgnorePatterns = append([]string(nil), c.IgnorePatterns...)
	}
	if c.MaxPages > 0 {
		cfg.MaxPages = c.MaxPages
	}
	if c.MaxDepth != nil {
		cfg.MaxDepth = *c.MaxDepth
	}
	if c.Delay > 0 {
		cfg.CrawlDelay = c.Delay
	}
	if c.SaveEvery > 0 {
		cfg.SaveEvery = c.SaveEvery
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}

	s := f.Scrape
	setString(&cfg.DataFile, s.OutFile)
	if s.Delay > 0 {
		cfg.ScrapeDelay = s.Delay
	}
	if s.BatchSize > 0 {
		cfg.BatchSize = s.BatchSize
	}
	if s.MaxFailures != nil {
		cfg.MaxConsecutiveFailures = *s.MaxFailures
	}

	if len(f.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(f.Headers))
		}
		maps.Copy(cfg.Headers, f.Headers)
	}

	sc := f.Scoring
	if sc.DefaultCPU > 0 {
		cfg.DefaultCPUScore = sc.DefaultCPU
	}
	if sc.DefaultGPU > 0 {
		cfg.DefaultGPUScore = sc.DefaultGPU
	}
	if len(sc.CPU) > 0 {
		if cfg.CPUBenchmarks == nil {
			cfg.CPUBenchmarks = make(map[string]float64, len(sc.CPU))
		}
		maps.Copy(cfg.CPUBenchmarks, sc.CPU)
	}
	if len(sc.GPU) > 0 {
		if cfg.GPUBenchmarks == nil {
			cfg.GPUBenchmarks = make(map[string]float64, len(sc.GPU))
		}
		maps.Copy(cfg.GPUBenchmarks, sc.GPU)
	}

	setString(&cfg.DBDir, f.Database)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .cyriscan in the current directory
// 3. Look for .cyriscan in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
