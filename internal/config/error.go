// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// Error collects everything wrong with one config file, so `mkvcat config
// test` can report unresolved ${VAR} references and bad field values together
// instead of stopping at the first.
type Error struct {
	Path    string
	Missing []string // ${VAR} references with no value and no :- default
	Errors  []string // field messages from Validate, prefixed with the TOML key
}

// Error renders the file path, then each section. It is empty when nothing
// was collected.
func (e *Error) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		if len(e.Missing) > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "validation failed (%d):", len(e.Errors))
		for _, msg := range e.Errors {
			b.WriteString("\n  - " + msg)
		}
	}
	return b.String()
}

// HasErrors reports whether anything was collected.
func (e *Error) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
