// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/vmunix/mkvcat/pkg/dedupe"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	for i, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Sprintf("scan.extensions[%d]: must start with a dot, got %q", i, ext))
		}
	}

	if c.Output.Catalog != "" && c.Output.Catalog == c.Output.Duplicates {
		errs = append(errs, "output: catalog and duplicates must be different files")
	}

	if _, err := dedupe.ParseKeyMode(c.Dedupe.Key); err != nil {
		errs = append(errs, fmt.Sprintf("dedupe.key: must be one of title, title_year; got %q", c.Dedupe.Key))
	}
	if _, err := dedupe.ParsePolicy(c.Dedupe.Policy); err != nil {
		errs = append(errs, fmt.Sprintf("dedupe.policy: must be one of first_and_later, later; got %q", c.Dedupe.Policy))
	}
	if c.Dedupe.SimilarityThreshold < 0 || c.Dedupe.SimilarityThreshold > 1 {
		errs = append(errs, fmt.Sprintf("dedupe.similarity_threshold: must be between 0 and 1, got %v", c.Dedupe.SimilarityThreshold))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}

// DedupeOptions converts the dedupe section. Call after Validate.
func (c *Config) DedupeOptions() dedupe.Options {
	key, _ := dedupe.ParseKeyMode(c.Dedupe.Key)
	policy, _ := dedupe.ParsePolicy(c.Dedupe.Policy)
	return dedupe.Options{Key: key, Policy: policy, Loose: c.Dedupe.Loose}
}
