// Package chunker partitions an assembled blueprint into bounded-size,
// domain-local, auth-annotated work units for the downstream generator.
package chunker

import (
	"strings"

	"surveyor/internal/blueprint"
)

// RootDomain is the reserved key for surfaces with no meaningful segment.
const RootDomain = "root"

// DomainKey derives the grouping key for a path or route: the first segment
// that is neither a generic API/version prefix nor a parameter, lowered and
// reduced to a filesystem-safe token.
func DomainKey(path string) string {
	seg := blueprint.FirstMeaningfulSegment(path)
	if seg == "" {
		return RootDomain
	}
	token := safeToken(strings.ToLower(seg))
	if token == "" {
		return RootDomain
	}
	return token
}

// safeToken keeps letters, digits, '-' and '_'; everything else becomes '-'.
// Runs of replacements collapse and edges are trimmed so the token can name
// a file on any platform.
func safeToken(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			prevDash = false
		case r == '-':
			if !prevDash {
				b.WriteByte('-')
			}
			prevDash = true
		default:
			if !prevDash {
				b.WriteByte('-')
			}
			prevDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
