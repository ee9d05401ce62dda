package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the global configuration for one extraction run
type Config struct {
	// Input settings
	InputFile string

	// Processing settings
	Workers int

	// Extraction profile (highway classes, default admin levels)
	ProfileFile string
	Profile     *Profile

	// Logging and metrics
	Verbose         bool
	LogFile         string        // Path to log file (empty = no file logging)
	MetricsInterval time.Duration // Interval for system metrics logging (0 = disabled)
}

// Profile defines which way classes qualify as streets and which admin
// levels are extracted by default. It can be overridden with a YAML file.
type Profile struct {
	// StreetClasses lists the highway tag values that qualify a way
	// for street clustering.
	StreetClasses []string `yaml:"street_classes,omitempty"`
	// AdminLevels lists the admin_level values extracted when no explicit
	// levels are requested.
	AdminLevels []uint8 `yaml:"admin_levels,omitempty"`
}

// DefaultProfile returns the built-in extraction profile
func DefaultProfile() *Profile {
	return &Profile{
		StreetClasses: []string{
			"primary",
			"secondary",
			"tertiary",
			"residential",
			"service",
			"living_street",
			"pedestrian",
		},
		AdminLevels: []uint8{4, 6, 8, 9, 10},
	}
}

// LoadProfile reads a profile from a YAML file. Fields left empty in the
// file keep their built-in defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}
	if len(profile.StreetClasses) == 0 {
		profile.StreetClasses = DefaultProfile().StreetClasses
	}
	if len(profile.AdminLevels) == 0 {
		profile.AdminLevels = DefaultProfile().AdminLevels
	}
	return profile, nil
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Workers:         runtime.NumCPU(),
		Profile:         DefaultProfile(),
		MetricsInterval: 0,
	}
}

// ParseLevels parses a comma-separated admin level list such as "4,6,8"
func ParseLevels(s string) ([]uint8, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	levels := make([]uint8, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid admin level %q: %w", p, err)
		}
		levels = append(levels, uint8(v))
	}
	return levels, nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input file is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	return nil
}
