package cutover

import "strings"

// Excluded reports whether a VM name matches any exclusion pattern.
// Patterns match by prefix, so "vCLS" covers the randomly suffixed
// cluster service VMs ("vCLS-1a2b3c") without listing each one.
func Excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern != "" && strings.HasPrefix(name, pattern) {
			return true
		}
	}
	return false
}
