// Package strings holds small list helpers for configuration values and
// command line arguments.
package strings

import (
	"strings"
)

// SplitList splits a comma separated value, trimming each element and
// dropping empties and repeats.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(raw, ","))
}

// DedupeAndTrim trims each element and drops empties and repeats, keeping the
// first occurrence.
func DedupeAndTrim(values []string) []string {
	return dedupe(values, func(s string) string { return s })
}

// DedupeDomains is DedupeAndTrim with repeats compared case-insensitively,
// since domain names are. The first spelling of each name is kept as written.
func DedupeDomains(values []string) []string {
	return dedupe(values, strings.ToLower)
}

// dedupe trims each element and drops empties and elements whose key was
// already seen. Output elements are trimmed but otherwise unchanged.
func dedupe(values []string, key func(string) string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		k := key(trimmed)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
