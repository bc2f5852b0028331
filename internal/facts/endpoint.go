package facts

// ValidMethods is the closed set of HTTP methods accepted from producers.
var ValidMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"PATCH":  true,
	"DELETE": true,
}

// BodyKind tags the origin of a request body schema. The kind drives the
// body-source confidence penalty exhaustively.
type BodyKind string

const (
	// BodyNone means no body could be extracted.
	BodyNone BodyKind = "none"
	// BodyInferred means fields were guessed from usage sites.
	BodyInferred BodyKind = "inferred"
	// BodyTyped means fields come from a static type with no runtime
	// validation backing it.
	BodyTyped BodyKind = "typed"
	// BodyValidated means fields come from a validation schema.
	BodyValidated BodyKind = "validated"
)

// BodyField is one field of a request or response schema.
type BodyField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Example  string `json:"example,omitempty"`
	Required bool   `json:"required"`
}

// RequestBody is the tagged body schema of an endpoint.
type RequestBody struct {
	Kind      BodyKind    `json:"kind"`
	SchemaRef string      `json:"schemaRef,omitempty"` // set for validated bodies
	Fields    []BodyField `json:"fields,omitempty"`
}

// ResponseSchema describes what an endpoint returns, when extractable.
type ResponseSchema struct {
	Ref    string      `json:"ref,omitempty"`
	Fields []BodyField `json:"fields,omitempty"`
}

// Param is a declared path or query parameter.
type Param struct {
	Name    string `json:"name"`
	Kind    string `json:"kind,omitempty"` // string, number, uuid, ...
	Example string `json:"example,omitempty"`
}

// Endpoint is a single extracted API surface fact. Merge identity is
// (Method, NormalizedPath); everything else is unioned or maxed on collision.
type Endpoint struct {
	ID             string          `json:"id"`
	Method         string          `json:"method"`
	Path           string          `json:"path"`
	NormalizedPath string          `json:"normalizedPath"`
	PathParams     []Param         `json:"pathParams,omitempty"`
	QueryParams    []Param         `json:"queryParams,omitempty"`
	RequestBody    *RequestBody    `json:"requestBody,omitempty"`
	ResponseSchema *ResponseSchema `json:"responseSchema,omitempty"`
	AuthRequired   bool            `json:"authRequired"`
	AuthType       string          `json:"authType,omitempty"`
	Roles          StrSet          `json:"roles,omitempty"`
	Confidence     float64         `json:"confidence"`
	SourceFile     string          `json:"sourceFile,omitempty"`
	SourceLine     int             `json:"sourceLine,omitempty"`
	Framework      string          `json:"framework,omitempty"`
	Flags          FlagSet         `json:"flags,omitempty"`
}

// BodyKindOf returns the body kind, treating a nil body as BodyNone.
func (e *Endpoint) BodyKindOf() BodyKind {
	if e.RequestBody == nil || e.RequestBody.Kind == "" {
		return BodyNone
	}
	return e.RequestBody.Kind
}

// ExpectsBody reports whether the method conventionally carries a request
// body; the body-source penalty only applies to these.
func (e *Endpoint) ExpectsBody() bool {
	switch e.Method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}
