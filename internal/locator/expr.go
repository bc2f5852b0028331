package locator

import (
	"strings"
	"unicode"
)

// isIdent reports whether s is a plain identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// exprTemplate rewrites an attribute expression into {{prop}} template text
// when every dynamic part references a declared prop. Supported forms: a bare
// prop identifier, and a template literal whose interpolations are all bare
// prop identifiers. Anything else is not templatable.
func exprTemplate(expr string, props map[string]bool) (string, bool) {
	expr = strings.TrimSpace(expr)
	if isIdent(expr) {
		if props[expr] {
			return "{{" + expr + "}}", true
		}
		return "", false
	}
	if len(expr) >= 2 && expr[0] == '`' && expr[len(expr)-1] == '`' {
		return templateLiteral(expr[1:len(expr)-1], props)
	}
	return "", false
}

func templateLiteral(body string, props map[string]bool) (string, bool) {
	var b strings.Builder
	for {
		open := strings.Index(body, "${")
		if open < 0 {
			b.WriteString(body)
			return b.String(), true
		}
		closing := strings.Index(body[open:], "}")
		if closing < 0 {
			return "", false
		}
		inner := strings.TrimSpace(body[open+2 : open+closing])
		if !isIdent(inner) || !props[inner] {
			return "", false
		}
		b.WriteString(body[:open])
		b.WriteString("{{")
		b.WriteString(inner)
		b.WriteString("}}")
		body = body[open+closing+1:]
	}
}

// literalPrefix extracts the static leading text of a computed test-id
// expression, used for prefix-match selectors. Handles template literals and
// string concatenation with a literal left operand; anything else yields "".
func literalPrefix(expr string) string {
	expr = strings.TrimSpace(expr)
	if len(expr) >= 2 && expr[0] == '`' {
		body := expr[1:]
		if end := strings.IndexByte(body, '`'); end >= 0 {
			body = body[:end]
		}
		if cut := strings.Index(body, "${"); cut >= 0 {
			return body[:cut]
		}
		return body
	}
	if len(expr) >= 2 && (expr[0] == '\'' || expr[0] == '"') {
		quote := expr[0]
		if end := strings.IndexByte(expr[1:], quote); end >= 0 {
			return expr[1 : 1+end]
		}
	}
	return ""
}
