// Package ghoutput publishes results as GitHub Actions step outputs.
package ghoutput

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
)

// EnvVar names the file GitHub Actions reads step outputs from.
const EnvVar = "GITHUB_OUTPUT"

// Write appends values to the file named by GITHUB_OUTPUT. It is a no-op
// outside of Actions.
func Write(values map[string]string) error {
	return WriteFile(strings.TrimSpace(os.Getenv(EnvVar)), values)
}

// WriteFile appends key=value lines to path in key order. Empty path or
// values do nothing.
func WriteFile(path string, values map[string]string) error {
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", EnvVar, err)
	}
	defer func() { _ = f.Close() }()

	for _, key := range slices.Sorted(maps.Keys(values)) {
		if strings.TrimSpace(key) == "" || strings.ContainsAny(key, "=\r\n") {
			continue
		}
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, escape(values[key])); err != nil {
			return fmt.Errorf("write %s: %w", EnvVar, err)
		}
	}
	return nil
}

func escape(value string) string {
	value = strings.ReplaceAll(value, "%", "%25")
	value = strings.ReplaceAll(value, "\r", "%0D")
	return strings.ReplaceAll(value, "\n", "%0A")
}
