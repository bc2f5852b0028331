package ingest

import (
	"testing"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
	"surveyor/internal/markup"
)

func decode(t *testing.T, data string) (Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	res := DecodeFacts([]byte(data), 0, diag.BagReporter{Bag: bag})
	return res, bag
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestDecodeEndpointFact(t *testing.T) {
	res, bag := decode(t, `{"kind":"endpoint","method":"post","path":"/api/users","authRequired":true,"authType":"bearer","roles":["admin"],"confidence":0.9,"sourceFile":"users.ts","sourceLine":12,"framework":"express","requestBody":{"kind":"validated","schemaRef":"CreateUser","fields":[{"name":"email","type":"string","required":true}]}}`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(res.Endpoints) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(res.Endpoints))
	}
	e := res.Endpoints[0]
	if e.Method != "POST" {
		t.Errorf("method not uppercased: %q", e.Method)
	}
	if e.RequestBody == nil || e.RequestBody.Kind != facts.BodyValidated {
		t.Errorf("body = %+v", e.RequestBody)
	}
	if len(e.RequestBody.Fields) != 1 || !e.RequestBody.Fields[0].Required {
		t.Errorf("fields = %+v", e.RequestBody.Fields)
	}
	if !e.Roles.Has("admin") || e.Confidence != 0.9 {
		t.Errorf("roles/confidence wrong: %+v", e)
	}
}

func TestDecodeSkipsBadLines(t *testing.T) {
	res, bag := decode(t, `not json
{"kind":"mystery"}
{"kind":"endpoint","path":"/x"}
{"kind":"endpoint","method":"FETCH","path":"/x"}
{"kind":"endpoint","method":"GET"}
{"kind":"page"}
{"kind":"endpoint","method":"GET","path":"/api/ok"}`)
	if len(res.Endpoints) != 1 || res.Endpoints[0].Path != "/api/ok" {
		t.Fatalf("only the valid fact should survive: %+v", res.Endpoints)
	}
	for _, code := range []diag.Code{
		diag.IngestBadJSON, diag.IngestUnknownKind, diag.IngestMissingMethod,
		diag.IngestBadMethod, diag.IngestMissingPath, diag.IngestMissingRoute,
	} {
		if !hasCode(bag, code) {
			t.Errorf("missing diagnostic %v", code)
		}
	}
}

func TestDecodeParamMismatch(t *testing.T) {
	_, bag := decode(t, `{"kind":"endpoint","method":"GET","path":"/users/:id","pathParams":[{"name":"id"},{"name":"orphan"}]}`)
	if !hasCode(bag, diag.IngestParamMismatch) {
		t.Error("expected a param count mismatch warning")
	}
	if !hasCode(bag, diag.IngestOrphanParam) {
		t.Error("expected an orphan param note")
	}
}

func TestDecodeConfidenceClamped(t *testing.T) {
	res, bag := decode(t, `{"kind":"endpoint","method":"GET","path":"/x","confidence":1.5}`)
	if !hasCode(bag, diag.IngestBadConfidence) {
		t.Error("expected an out-of-range confidence warning")
	}
	if res.Endpoints[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped 1.0", res.Endpoints[0].Confidence)
	}
}

func TestDecodeConfidenceDefaults(t *testing.T) {
	res, _ := decode(t, `{"kind":"page","route":"/users"}`)
	if res.Pages[0].Confidence != 1.0 {
		t.Errorf("absent confidence should default to 1.0, got %v", res.Pages[0].Confidence)
	}
}

func TestDecodeAuthFirstWins(t *testing.T) {
	res, bag := decode(t, `{"kind":"auth","tokenType":"cookie","authCookieName":"sid"}
{"kind":"auth","tokenType":"bearer"}`)
	if res.Auth == nil || res.Auth.TokenType != "cookie" || res.Auth.CookieName != "sid" {
		t.Fatalf("auth = %+v", res.Auth)
	}
	if !hasCode(bag, diag.IngestDuplicateAuth) {
		t.Error("expected a duplicate auth warning")
	}
}

func TestDecodeTree(t *testing.T) {
	data := `{
		"filePath": "src/components/LoginForm.tsx",
		"component": "LoginForm",
		"props": ["onSubmit"],
		"sourceText": "fetch('/api/login')",
		"root": {
			"kind": "element", "tag": "form",
			"attrs": [{"name": "data-testid", "value": {"kind": "literal", "text": "login-form"}}],
			"children": [
				{"kind": "element", "tag": "input",
				 "attrs": [{"name": "type", "value": {"kind": "literal", "text": "email"}}]},
				{"kind": "expr", "text": "error && <Alert/>"},
				{"kind": "text", "text": "Sign in"}
			]
		}
	}`
	bag := diag.NewBag(64)
	tf, ok := DecodeTree([]byte(data), 0, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("decode failed: %v", bag.Items())
	}
	if tf.Component != "LoginForm" || len(tf.Props) != 1 {
		t.Errorf("header = %+v", tf)
	}
	root := tf.Root
	if root.Tag != "form" || len(root.Children) != 3 {
		t.Fatalf("root = %+v", root)
	}
	if v, ok := root.LiteralAttr("data-testid"); !ok || v != "login-form" {
		t.Errorf("testid attr = %q", v)
	}
	if root.Children[0].Parent != root {
		t.Error("parents not linked")
	}
	if root.Children[1].Kind != markup.NodeExpr || root.Children[2].Kind != markup.NodeText {
		t.Errorf("child kinds wrong: %v %v", root.Children[1].Kind, root.Children[2].Kind)
	}
}

func TestDecodeTreeMalformed(t *testing.T) {
	bag := diag.NewBag(64)
	if _, ok := DecodeTree([]byte("nope"), 0, diag.BagReporter{Bag: bag}); ok {
		t.Fatal("malformed tree must not decode")
	}
	if !hasCode(bag, diag.IngestBadTree) {
		t.Error("expected a bad tree diagnostic")
	}
}

func TestDecodeTreeDropsUnknownNodes(t *testing.T) {
	data := `{"filePath":"a.tsx","root":{"kind":"element","tag":"div","children":[
		{"kind":"wat"},
		{"kind":"element","tag":"button"}
	]}}`
	bag := diag.NewBag(64)
	tf, ok := DecodeTree([]byte(data), 0, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatal("tree with one bad child must still decode")
	}
	if len(tf.Root.Children) != 1 || tf.Root.Children[0].Tag != "button" {
		t.Errorf("siblings of the dropped node must survive: %+v", tf.Root.Children)
	}
	if !hasCode(bag, diag.IngestBadTree) {
		t.Error("expected a diagnostic for the dropped node")
	}
}
