package facts

// AuthFact is the single global authentication fact extracted from a target
// application: how tests obtain and present credentials.
type AuthFact struct {
	TokenType         string `json:"tokenType"` // bearer, cookie, session, sso, oidc, saml, ...
	LoginEndpoint     string `json:"loginEndpoint,omitempty"`
	TokenResponsePath string `json:"tokenResponsePath,omitempty"`
	CookieName        string `json:"authCookieName,omitempty"`
	LoginBodyFormat   string `json:"loginBodyFormat,omitempty"` // json or form
	DefaultEmail      string `json:"defaultEmail,omitempty"`
	DefaultPassword   string `json:"defaultPassword,omitempty"`
}

// AuthStrategy selects how a chunk's generated tests authenticate.
type AuthStrategy string

const (
	// AuthStorageState shares one logged-in browser session across tests.
	AuthStorageState AuthStrategy = "storageState"
	// AuthBearerInline sends a stateless token per request.
	AuthBearerInline AuthStrategy = "bearerInline"
	// AuthNone is the unauthenticated strategy.
	AuthNone AuthStrategy = "none"
)
