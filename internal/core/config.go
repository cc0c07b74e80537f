package core

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// RunKeys are the keys every sim accepts besides its own parameters.
var RunKeys = []string{"w", "h", "seed", "steps", "scale", "fps"}

// RejectUnknown reports every key of cfg that appears neither in RunKeys nor
// in known.
func RejectUnknown(cfg map[string]string, known []string) error {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		if !slices.Contains(RunKeys, k) && !slices.Contains(known, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	errs := make([]error, len(keys))
	for i, k := range keys {
		errs[i] = fmt.Errorf("unknown key %q: %w", k, ErrInvalidConfig)
	}
	return errors.Join(errs...)
}

// The Parse helpers read one key from a flag-style map. A missing key leaves
// dst untouched; a malformed value is a configuration error.

// ParseInt reads an integer value.
func ParseInt(cfg map[string]string, key string, dst *int) error {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s=%q: %w", key, v, ErrInvalidConfig)
	}
	*dst = parsed
	return nil
}

// ParseInt64 reads a 64-bit integer value.
func ParseInt64(cfg map[string]string, key string, dst *int64) error {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return fmt.Errorf("%s=%q: %w", key, v, ErrInvalidConfig)
	}
	*dst = parsed
	return nil
}

// ParseFloat reads a float value.
func ParseFloat(cfg map[string]string, key string, dst *float64) error {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("%s=%q: %w", key, v, ErrInvalidConfig)
	}
	*dst = parsed
	return nil
}

// ParseBool reads a boolean value.
func ParseBool(cfg map[string]string, key string, dst *bool) error {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s=%q: %w", key, v, ErrInvalidConfig)
	}
	*dst = parsed
	return nil
}

// ParsePatternKey reads a neighbourhood pattern name.
func ParsePatternKey(cfg map[string]string, key string, dst *Pattern) error {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	p, err := ParsePattern(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = p
	return nil
}

// ParseList reads a comma separated list, dropping blank entries.
func ParseList(cfg map[string]string, key string, dst *[]string) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

// ValidateDimensions checks the grid size.
func ValidateDimensions(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("grid %dx%d must have positive dimensions: %w", w, h, ErrInvalidConfig)
	}
	return nil
}
