package chunker

import (
	"strings"

	"surveyor/internal/facts"
)

// browserSessionTypes are auth mechanisms that require a shared logged-in
// browser session rather than a per-request token.
var browserSessionTypes = map[string]bool{
	"cookie":  true,
	"session": true,
	"sso":     true,
	"oidc":    true,
	"saml":    true,
}

// ClassifyAuth maps the global auth fact to the strategy every chunk of the
// run carries. Classification is a pure function of the fact, never
// per-chunk.
func ClassifyAuth(auth *facts.AuthFact) facts.AuthStrategy {
	if auth == nil || auth.TokenType == "" {
		return facts.AuthNone
	}
	if browserSessionTypes[strings.ToLower(auth.TokenType)] {
		return facts.AuthStorageState
	}
	return facts.AuthBearerInline
}
