package facts

import (
	"crypto/sha256"
	"encoding/hex"
)

// IDGen derives content-addressed entity IDs. IDs are a stable function of an
// entity's identity key, so concurrently produced facts get identical IDs in
// every run and merge order cannot leak into output.
type IDGen struct {
	// Salt separates ID spaces of unrelated analysis runs when callers need
	// that; empty for the default space.
	Salt string
}

func (g IDGen) hash8(parts ...string) string {
	h := sha256.New()
	if g.Salt != "" {
		_, _ = h.Write([]byte(g.Salt))
		_, _ = h.Write([]byte{0})
	}
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:8]
}

// Endpoint derives an ID from the merge identity (method, normalized path).
func (g IDGen) Endpoint(method, normalizedPath string) string {
	return "ep-" + g.hash8(method, normalizedPath)
}

// Page derives an ID from the route.
func (g IDGen) Page(route string) string {
	return "pg-" + g.hash8(route)
}

// Locator derives an ID from the owning page route and the selector
// expression, the same key that scopes uniqueness.
func (g IDGen) Locator(route, selector string) string {
	return "loc-" + g.hash8(route, selector)
}

// FormFlow derives an ID from the owning page route and the flow name.
func (g IDGen) FormFlow(route, name string) string {
	return "ff-" + g.hash8(route, name)
}

// Chunk derives an ID from the chunk output name.
func (g IDGen) Chunk(outputName string) string {
	return "ch-" + g.hash8(outputName)
}
