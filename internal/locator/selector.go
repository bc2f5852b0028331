package locator

import (
	"fmt"
	"regexp"
	"strings"
)

// Selector expression constructors. The strings are opaque to this pipeline;
// they follow the downstream runner's getBy* vocabulary.

func escapeSingle(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

var regexMeta = regexp.MustCompile(`[.*+?()|\[\]{}^$\\]`)

func escapeRegex(s string) string {
	return regexMeta.ReplaceAllString(s, `\$0`)
}

func selTestID(value string) string {
	return fmt.Sprintf("getByTestId('%s')", escapeSingle(value))
}

func selTestIDPrefix(attr, prefix string) string {
	if prefix == "" {
		return fmt.Sprintf("locator('[%s]')", attr)
	}
	return fmt.Sprintf("locator('[%s^=\"%s\"]')", attr, prefix)
}

func selRole(role string) string {
	return fmt.Sprintf("getByRole('%s')", role)
}

func selRoleNamed(role, name string) string {
	return fmt.Sprintf("getByRole('%s', { name: '%s' })", role, escapeSingle(name))
}

// selRolePrefix emits a prefix-regex name match for text with a suspected
// dynamic suffix.
func selRolePrefix(role, prefix string) string {
	return fmt.Sprintf("getByRole('%s', { name: /^%s/ })", role, escapeRegex(prefix))
}

func selLabel(text string) string {
	return fmt.Sprintf("getByLabel('%s')", escapeSingle(text))
}

func selPlaceholder(text string) string {
	return fmt.Sprintf("getByPlaceholder('%s')", escapeSingle(text))
}

func selAltText(text string) string {
	return fmt.Sprintf("getByAltText('%s')", escapeSingle(text))
}

func selText(text string) string {
	return fmt.Sprintf("getByText('%s')", escapeSingle(text))
}

func selCSS(css string) string {
	return fmt.Sprintf("locator('%s')", escapeSingle(css))
}

// humanize turns attribute-style identifiers into a readable locator name:
// "submit-order_btn" -> "Submit order btn".
func humanize(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
