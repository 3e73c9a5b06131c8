// Package utils holds small helpers shared by config, loaders and services.
package utils

import "strings"

// SplitList splits a comma-separated setting into trimmed, non-empty values.
// Blank input yields nil.
func SplitList(s string) []string {
	var result []string
	for _, v := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
