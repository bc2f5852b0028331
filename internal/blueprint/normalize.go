package blueprint

import (
	"strings"
)

// genericPrefixes are path segments that carry no domain meaning and are
// skipped when deriving the first meaningful segment.
var genericPrefixes = map[string]bool{
	"api":  true,
	"v1":   true,
	"v2":   true,
	"v3":   true,
	"rest": true,
	"trpc": true,
}

// NormalizePath collapses repeated separators and strips trailing ones,
// preserving the leading slash. The normalized form is the merge identity.
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	var b strings.Builder
	prevSlash := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}
	out := b.String()
	if len(out) > 1 {
		out = strings.TrimRight(out, "/")
	}
	if out == "" || out[0] != '/' {
		out = "/" + out
	}
	return out
}

// IsDynamicSegment reports whether a path segment is a parameter in any of
// the producer conventions (:id, [id], {id}, *).
func IsDynamicSegment(seg string) bool {
	if seg == "" {
		return false
	}
	switch {
	case seg[0] == ':':
		return true
	case seg[0] == '[' && seg[len(seg)-1] == ']':
		return true
	case seg[0] == '{' && seg[len(seg)-1] == '}':
		return true
	case seg == "*":
		return true
	}
	return false
}

// Segments splits a normalized path, dropping empties.
func Segments(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// HasDynamicSegments reports whether any segment is a parameter.
func HasDynamicSegments(p string) bool {
	for _, seg := range Segments(p) {
		if IsDynamicSegment(seg) {
			return true
		}
	}
	return false
}

// WildcardEqual compares two paths treating dynamic segments on either side
// as wildcards.
func WildcardEqual(a, b string) bool {
	as, bs := Segments(NormalizePath(a)), Segments(NormalizePath(b))
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if IsDynamicSegment(as[i]) || IsDynamicSegment(bs[i]) {
			continue
		}
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// FirstMeaningfulSegment returns the first segment that is neither a generic
// API/version prefix nor a parameter, or "" when none exists.
func FirstMeaningfulSegment(p string) string {
	for _, seg := range Segments(NormalizePath(p)) {
		if genericPrefixes[strings.ToLower(seg)] {
			continue
		}
		if IsDynamicSegment(seg) {
			continue
		}
		return seg
	}
	return ""
}

// ParamName strips the parameter decoration from a dynamic segment.
func ParamName(seg string) string {
	switch {
	case seg == "":
		return ""
	case seg[0] == ':':
		return seg[1:]
	case seg[0] == '[' && seg[len(seg)-1] == ']':
		return seg[1 : len(seg)-1]
	case seg[0] == '{' && seg[len(seg)-1] == '}':
		return seg[1 : len(seg)-1]
	}
	return seg
}
