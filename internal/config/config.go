// Package config loads the .fuzzmerge.yaml configuration.
//
// Resolution order: hardcoded defaults, then the YAML file (current
// directory first, then the user config dir), then CLI flags applied
// by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	RepoURL       string `yaml:"repo_url"`
	Remote        string `yaml:"remote"`
	Workdir       string `yaml:"workdir"`
	ReportVersion string `yaml:"report_version"`
	PriorityTeam  string `yaml:"priority_team"`
	ReportPath    string `yaml:"report_path"`
	ReadmePath    string `yaml:"readme_path"`
	MarkerStart   string `yaml:"marker_start"`
	MarkerEnd     string `yaml:"marker_end"`
}

// Default values.
const (
	DefaultRemote        = "origin"
	DefaultReportVersion = "0.7.2"
	DefaultPriorityTeam  = "reference"
	DefaultReportPath    = "fuzz-report.md"
	DefaultReadmePath    = "README.md"
	DefaultMarkerStart   = "<!-- CONFORMANCE_TABLE_START -->"
	DefaultMarkerEnd     = "<!-- CONFORMANCE_TABLE_END -->"
)

const configFileName = ".fuzzmerge.yaml"

// Defaults returns the built-in configuration. The working copy
// defaults to a fuzzmerge subdirectory of the user cache dir, falling
// back to the system temp dir.
func Defaults() Config {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return Config{
		Remote:        DefaultRemote,
		Workdir:       filepath.Join(base, "fuzzmerge", "repo"),
		ReportVersion: DefaultReportVersion,
		PriorityTeam:  DefaultPriorityTeam,
		ReportPath:    DefaultReportPath,
		ReadmePath:    DefaultReadmePath,
		MarkerStart:   DefaultMarkerStart,
		MarkerEnd:     DefaultMarkerEnd,
	}
}

// Load returns the defaults overlaid with the first config file
// found, and the path of that file ("" when running on defaults
// only). A malformed file is an error rather than a silent fallback.
func Load() (Config, string, error) {
	cfg := Defaults()
	path := findConfigFile()
	if path == "" {
		return cfg, "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, path, fmt.Errorf("reading config %s: %w", path, err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, path, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Merge(fileCfg)
	return cfg, path, nil
}

// Merge overlays non-empty fields of other onto c.
func (c *Config) Merge(other Config) {
	if other.RepoURL != "" {
		c.RepoURL = other.RepoURL
	}
	if other.Remote != "" {
		c.Remote = other.Remote
	}
	if other.Workdir != "" {
		c.Workdir = other.Workdir
	}
	if other.ReportVersion != "" {
		c.ReportVersion = other.ReportVersion
	}
	if other.PriorityTeam != "" {
		c.PriorityTeam = other.PriorityTeam
	}
	if other.ReportPath != "" {
		c.ReportPath = other.ReportPath
	}
	if other.ReadmePath != "" {
		c.ReadmePath = other.ReadmePath
	}
	if other.MarkerStart != "" {
		c.MarkerStart = other.MarkerStart
	}
	if other.MarkerEnd != "" {
		c.MarkerEnd = other.MarkerEnd
	}
}

// findConfigFile checks the current directory, then the user config
// dir (<config>/fuzzmerge/.fuzzmerge.yaml).
func findConfigFile() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}
	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "fuzzmerge", configFileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
