// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Scan    ScanConfig    `toml:"scan"`
	Output  OutputConfig  `toml:"output"`
	Dedupe  DedupeConfig  `toml:"dedupe"`
	Extract ExtractConfig `toml:"extract"`
	Log     LogConfig     `toml:"log"`
}

type ScanConfig struct {
	Root        string   `toml:"root"`
	Extensions  []string `toml:"extensions"`
	ExcludeDirs []string `toml:"exclude_dirs"`
}

type OutputConfig struct {
	Catalog    string `toml:"catalog"`
	Duplicates string `toml:"duplicates"`
}

type DedupeConfig struct {
	Key                 string  `toml:"key"`    // title, title_year
	Policy              string  `toml:"policy"` // first_and_later, later
	Loose               bool    `toml:"loose"`
	SimilarityThreshold float64 `toml:"similarity_threshold"`
}

type ExtractConfig struct {
	ExtraLanguages   []string `toml:"extra_languages"`
	AllowEmptyTitles bool     `toml:"allow_empty_titles"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Scan.Root == "" {
		c.Scan.Root = "."
	}
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = []string{".mkv"}
	}
	if c.Output.Catalog == "" {
		c.Output.Catalog = "Movies.csv"
	}
	if c.Output.Duplicates == "" {
		c.Output.Duplicates = "Duplicates.csv"
	}
	if c.Dedupe.Key == "" {
		c.Dedupe.Key = "title"
	}
	if c.Dedupe.Policy == "" {
		c.Dedupe.Policy = "first_and_later"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Load reads, substitutes, parses, defaults and validates the configuration file.
// Unresolved environment variables and validation failures are returned as *Error.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation parses the configuration file and applies defaults only.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, missing, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} with environment variable values.
// Empty or unset variables fall back to the :- default when one is given,
// otherwise they are left in place and reported as missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		name := sub[1]
		hasDefault := strings.Contains(match, ":-")

		if value, ok := os.LookupEnv(name); ok && (value != "" || !hasDefault) {
			return value
		}
		if hasDefault {
			return sub[2]
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})
	return out, missing
}
