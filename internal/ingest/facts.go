// Package ingest decodes the fact streams produced by the external
// per-framework extractors. Streams are noisy by contract: malformed lines
// are reported and skipped, never fatal, and decoding always continues.
package ingest

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"surveyor/internal/blueprint"
	"surveyor/internal/diag"
	"surveyor/internal/facts"
	"surveyor/internal/source"
)

// Result is everything one facts file contributed.
type Result struct {
	Endpoints []facts.Endpoint
	Pages     []facts.PageFact
	Auth      *facts.AuthFact
}

// Merge folds other into r. The first auth fact wins; a second one is the
// caller's duplicate to report.
func (r *Result) Merge(other Result) {
	r.Endpoints = append(r.Endpoints, other.Endpoints...)
	r.Pages = append(r.Pages, other.Pages...)
	if r.Auth == nil {
		r.Auth = other.Auth
	}
}

// DecodeFacts parses one JSONL fact stream. Each line is a standalone JSON
// object whose "kind" field selects the fact type: endpoint, page, or auth.
// fileID scopes diagnostic spans to the stream's virtual file.
func DecodeFacts(data []byte, fileID source.FileID, reporter diag.Reporter) Result {
	var res Result
	offset := uint32(0)
	for _, line := range strings.Split(string(data), "\n") {
		span := source.Span{File: fileID, Start: offset, End: offset + uint32(len(line))}
		offset += uint32(len(line)) + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !gjson.Valid(trimmed) {
			diag.ReportWarning(reporter, diag.IngestBadJSON, span, "skipping malformed fact line")
			continue
		}
		v := gjson.Parse(trimmed)
		switch kind := v.Get("kind").String(); kind {
		case "endpoint":
			if e, ok := decodeEndpoint(v, span, reporter); ok {
				res.Endpoints = append(res.Endpoints, e)
			}
		case "page":
			if p, ok := decodePage(v, span, reporter); ok {
				res.Pages = append(res.Pages, p)
			}
		case "auth":
			a := decodeAuth(v)
			if res.Auth != nil {
				diag.ReportWarning(reporter, diag.IngestDuplicateAuth, span,
					"duplicate auth fact; keeping the first")
				continue
			}
			res.Auth = &a
		default:
			diag.ReportWarning(reporter, diag.IngestUnknownKind, span,
				fmt.Sprintf("skipping fact of unknown kind %q", kind))
		}
	}
	return res
}

func decodeEndpoint(v gjson.Result, span source.Span, reporter diag.Reporter) (facts.Endpoint, bool) {
	method := strings.ToUpper(v.Get("method").String())
	if method == "" {
		diag.ReportWarning(reporter, diag.IngestMissingMethod, span, "endpoint fact without method")
		return facts.Endpoint{}, false
	}
	if !facts.ValidMethods[method] {
		diag.ReportWarning(reporter, diag.IngestBadMethod, span,
			fmt.Sprintf("endpoint fact with unsupported method %q", method))
		return facts.Endpoint{}, false
	}
	path := v.Get("path").String()
	if path == "" {
		diag.ReportWarning(reporter, diag.IngestMissingPath, span, "endpoint fact without path")
		return facts.Endpoint{}, false
	}

	e := facts.Endpoint{
		Method:       method,
		Path:         path,
		AuthRequired: v.Get("authRequired").Bool(),
		AuthType:     v.Get("authType").String(),
		Roles:        strSet(v.Get("roles")),
		Confidence:   confidence(v, span, reporter),
		SourceFile:   v.Get("sourceFile").String(),
		SourceLine:   int(v.Get("sourceLine").Int()),
		Framework:    v.Get("framework").String(),
		Flags:        flagSet(v.Get("flags")),
		PathParams:   params(v.Get("pathParams")),
		QueryParams:  params(v.Get("queryParams")),
	}
	if body := v.Get("requestBody"); body.Exists() {
		e.RequestBody = requestBody(body)
	}
	if resp := v.Get("responseSchema"); resp.Exists() {
		e.ResponseSchema = &facts.ResponseSchema{
			Ref:    resp.Get("ref").String(),
			Fields: bodyFields(resp.Get("fields")),
		}
	}
	checkParams(&e, span, reporter)
	return e, true
}

// checkParams cross-checks declared path params against the path's dynamic
// segments. Mismatches are warnings; the fact stays.
func checkParams(e *facts.Endpoint, span source.Span, reporter diag.Reporter) {
	dynamic := make(map[string]bool)
	count := 0
	for _, seg := range blueprint.Segments(blueprint.NormalizePath(e.Path)) {
		if blueprint.IsDynamicSegment(seg) {
			dynamic[blueprint.ParamName(seg)] = true
			count++
		}
	}
	if len(e.PathParams) != count {
		diag.ReportWarning(reporter, diag.IngestParamMismatch, span,
			fmt.Sprintf("%s %s declares %d path params but the path has %d dynamic segments",
				e.Method, e.Path, len(e.PathParams), count))
	}
	for _, p := range e.PathParams {
		if !dynamic[p.Name] {
			diag.ReportInfo(reporter, diag.IngestOrphanParam, span,
				fmt.Sprintf("declared path param %q does not appear in %s", p.Name, e.Path))
		}
	}
}

func decodePage(v gjson.Result, span source.Span, reporter diag.Reporter) (facts.PageFact, bool) {
	route := v.Get("route").String()
	if route == "" {
		diag.ReportWarning(reporter, diag.IngestMissingRoute, span, "page fact without route")
		return facts.PageFact{}, false
	}
	return facts.PageFact{
		Route:        route,
		Title:        v.Get("title").String(),
		FilePath:     v.Get("filePath").String(),
		AuthRequired: v.Get("authRequired").Bool(),
		Roles:        strSet(v.Get("roles")),
		FromRouter:   v.Get("fromRouter").Bool(),
		Confidence:   confidence(v, span, reporter),
		SourceLine:   int(v.Get("sourceLine").Int()),
	}, true
}

func decodeAuth(v gjson.Result) facts.AuthFact {
	return facts.AuthFact{
		TokenType:         v.Get("tokenType").String(),
		LoginEndpoint:     v.Get("loginEndpoint").String(),
		TokenResponsePath: v.Get("tokenResponsePath").String(),
		CookieName:        v.Get("authCookieName").String(),
		LoginBodyFormat:   v.Get("loginBodyFormat").String(),
		DefaultEmail:      v.Get("defaultEmail").String(),
		DefaultPassword:   v.Get("defaultPassword").String(),
	}
}

// confidence reads the confidence field, defaulting to 1.0 when absent and
// clamping with a warning when out of range.
func confidence(v gjson.Result, span source.Span, reporter diag.Reporter) float64 {
	c := v.Get("confidence")
	if !c.Exists() {
		return 1.0
	}
	f := c.Float()
	if f < 0 || f > 1 {
		diag.ReportWarning(reporter, diag.IngestBadConfidence, span,
			fmt.Sprintf("confidence %v out of [0,1], clamping", f))
		return facts.Clamp01(f)
	}
	return f
}

func strSet(v gjson.Result) facts.StrSet {
	var out facts.StrSet
	for _, item := range v.Array() {
		out = out.Add(item.String())
	}
	return out
}

func flagSet(v gjson.Result) facts.FlagSet {
	var out facts.FlagSet
	for _, item := range v.Array() {
		out = out.Add(facts.Flag(item.String()))
	}
	return out
}

func params(v gjson.Result) []facts.Param {
	var out []facts.Param
	for _, item := range v.Array() {
		out = append(out, facts.Param{
			Name:    item.Get("name").String(),
			Kind:    item.Get("kind").String(),
			Example: item.Get("example").String(),
		})
	}
	return out
}

func bodyFields(v gjson.Result) []facts.BodyField {
	var out []facts.BodyField
	for _, item := range v.Array() {
		out = append(out, facts.BodyField{
			Name:     item.Get("name").String(),
			Type:     item.Get("type").String(),
			Example:  item.Get("example").String(),
			Required: item.Get("required").Bool(),
		})
	}
	return out
}

func requestBody(v gjson.Result) *facts.RequestBody {
	kind := facts.BodyKind(v.Get("kind").String())
	switch kind {
	case facts.BodyNone, facts.BodyInferred, facts.BodyTyped, facts.BodyValidated:
	default:
		// Unknown body kinds degrade to inferred rather than dropping the
		// whole endpoint.
		kind = facts.BodyInferred
	}
	return &facts.RequestBody{
		Kind:      kind,
		SchemaRef: v.Get("schemaRef").String(),
		Fields:    bodyFields(v.Get("fields")),
	}
}
