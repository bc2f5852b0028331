package blueprint

import (
	"path/filepath"
	"testing"
	"time"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
)

func fixedNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestAssembleEndpointKeysUnique(t *testing.T) {
	eps := []facts.Endpoint{
		{Method: "GET", Path: "/api/users", SourceFile: "a.ts"},
		{Method: "GET", Path: "/api/users/", SourceFile: "b.ts"},
		{Method: "POST", Path: "/api/users", SourceFile: "a.ts"},
	}
	bp := Assemble(eps, nil, nil, AssembleOptions{Now: fixedNow})
	seen := make(map[string]bool)
	for _, e := range bp.Endpoints {
		k := e.Method + " " + e.NormalizedPath
		if seen[k] {
			t.Errorf("duplicate (method, normalizedPath) %q in blueprint", k)
		}
		seen[k] = true
	}
	if bp.Meta.EndpointCount != 2 {
		t.Errorf("endpoint count = %d, want 2", bp.Meta.EndpointCount)
	}
}

func TestAssembleRouterComponentMerge(t *testing.T) {
	// Router declares the route with no locators; component extraction
	// produced a second page under a filename-derived route.
	router := facts.Page{
		Route:      "/settings",
		FilePath:   "src/App.tsx",
		Confidence: 1.0,
	}
	component := facts.Page{
		Route:      "/SettingsPage",
		Title:      "SettingsPage",
		FilePath:   "src/pages/SettingsPage.tsx",
		Confidence: 0.9,
		Locators: []facts.Locator{
			{Selector: `getByTestId('save-settings')`, Name: "Save Settings"},
		},
		FormFlows: []facts.FormFlow{{Name: "settings"}},
	}
	bp := Assemble(nil, []facts.Page{router, component}, nil, AssembleOptions{Now: fixedNow})
	if len(bp.Pages) != 1 {
		t.Fatalf("got %d pages, want 1 (donor dropped)", len(bp.Pages))
	}
	p := bp.Pages[0]
	if p.NormalizedRoute != "/settings" {
		t.Errorf("surviving route = %q, want the router's", p.NormalizedRoute)
	}
	if len(p.Locators) != 1 || p.Locators[0].Selector != `getByTestId('save-settings')` {
		t.Errorf("locators not folded in: %+v", p.Locators)
	}
	if len(p.FormFlows) != 1 {
		t.Errorf("form flows not folded in: %+v", p.FormFlows)
	}
}

func TestAssembleDropsPhantomWidgetRoutes(t *testing.T) {
	pages := []facts.Page{
		{Route: "/users", FilePath: "a.tsx", Confidence: 1.0,
			Locators: []facts.Locator{{Selector: "x"}}},
		{Route: "/UserCard", Title: "UserCard", FilePath: "b.tsx", Confidence: 0.9,
			Locators: []facts.Locator{{Selector: "y"}}},
	}
	bag := diag.NewBag(64)
	bp := Assemble(nil, pages, nil, AssembleOptions{
		Now:      fixedNow,
		Reporter: diag.BagReporter{Bag: bag},
	})
	if len(bp.Pages) != 1 || bp.Pages[0].NormalizedRoute != "/users" {
		t.Fatalf("phantom widget route should be dropped: %+v", bp.Pages)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.PhantomPageDropped {
			found = true
		}
	}
	if !found {
		t.Error("expected a PhantomPageDropped diagnostic")
	}
}

func TestAssembleLinksByLiteralURL(t *testing.T) {
	eps := []facts.Endpoint{
		{Method: "GET", Path: "/api/v1/widgets/:id", SourceFile: "s.ts"},
	}
	pages := []facts.Page{
		{Route: "/dashboard", FilePath: "src/Dashboard.tsx", Confidence: 1.0,
			Locators: []facts.Locator{{Selector: "x"}}},
	}
	src := map[string]string{
		"src/Dashboard.tsx": "await fetch('/api/v1/widgets/42')",
	}
	bp := Assemble(eps, pages, nil, AssembleOptions{Now: fixedNow, SourceTexts: src})
	if len(bp.Pages[0].LinkedEndpointIDs) != 1 {
		t.Fatalf("literal URL did not link: %+v", bp.Pages[0].LinkedEndpointIDs)
	}
	if bp.Pages[0].LinkedEndpointIDs[0] != bp.Endpoints[0].ID {
		t.Error("linked ID does not match the endpoint")
	}
}

func TestAssembleLinksByConvention(t *testing.T) {
	eps := []facts.Endpoint{
		{Method: "GET", Path: "/api/v1/orders", SourceFile: "s.ts"},
		{Method: "GET", Path: "/api/v1/teams", SourceFile: "s.ts"},
	}
	pages := []facts.Page{
		{Route: "/orders/:id", FilePath: "o.tsx", Confidence: 1.0,
			Locators: []facts.Locator{{Selector: "x"}}},
	}
	bp := Assemble(eps, pages, nil, AssembleOptions{Now: fixedNow})
	ids := bp.Pages[0].LinkedEndpointIDs
	if len(ids) != 1 {
		t.Fatalf("convention match should link exactly one endpoint: %v", ids)
	}
	var orders facts.Endpoint
	for _, e := range bp.Endpoints {
		if e.NormalizedPath == "/api/v1/orders" {
			orders = e
		}
	}
	if ids[0] != orders.ID {
		t.Errorf("linked %q, want the orders endpoint %q", ids[0], orders.ID)
	}
}

func TestAssembleLinksFormTargets(t *testing.T) {
	eps := []facts.Endpoint{
		{Method: "POST", Path: "/api/login", SourceFile: "s.ts"},
	}
	pages := []facts.Page{
		{Route: "/login", FilePath: "l.tsx", Confidence: 1.0,
			Locators: []facts.Locator{{Selector: "x"}},
			FormFlows: []facts.FormFlow{
				{Name: "login", TargetPath: "/api/login"},
			}},
	}
	bp := Assemble(eps, pages, nil, AssembleOptions{Now: fixedNow})
	ff := bp.Pages[0].FormFlows[0]
	if ff.LinkedEndpointID != bp.Endpoints[0].ID {
		t.Errorf("form target not linked: %q", ff.LinkedEndpointID)
	}
	if !bp.Pages[0].LinkedEndpointIDs.Has(bp.Endpoints[0].ID) {
		t.Error("form link must also appear on the page")
	}
}

func TestAssembleUnlinkedFormTargetWarns(t *testing.T) {
	pages := []facts.Page{
		{Route: "/contact", FilePath: "c.tsx", Confidence: 1.0,
			Locators: []facts.Locator{{Selector: "x"}},
			FormFlows: []facts.FormFlow{
				{Name: "contact", TargetPath: "/api/contact"},
			}},
	}
	bag := diag.NewBag(64)
	Assemble(nil, pages, nil, AssembleOptions{
		Now:      fixedNow,
		Reporter: diag.BagReporter{Bag: bag},
	})
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.UnlinkedFormTarget {
			found = true
		}
	}
	if !found {
		t.Error("expected an UnlinkedFormTarget diagnostic")
	}
}

func TestBlueprintRoundTrip(t *testing.T) {
	eps := []facts.Endpoint{
		{Method: "POST", Path: "/api/users", SourceFile: "a.ts",
			RequestBody: &facts.RequestBody{Kind: facts.BodyValidated, SchemaRef: "CreateUser",
				Fields: []facts.BodyField{{Name: "email", Type: "string", Required: true}}}},
	}
	pages := []facts.Page{
		{Route: "/users", FilePath: "u.tsx", Confidence: 1.0,
			Locators: []facts.Locator{{Selector: `getByTestId('add-user')`, Name: "Add User",
				Strategy: facts.StrategyTestID, Confidence: 0.95}}},
	}
	auth := &facts.AuthFact{TokenType: "bearer", LoginEndpoint: "/api/login"}
	bp := Assemble(eps, pages, auth, AssembleOptions{Now: fixedNow})

	path := filepath.Join(t.TempDir(), "blueprint.json")
	if err := bp.WriteJSON(path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Endpoints) != 1 || len(got.Pages) != 1 {
		t.Fatalf("round trip lost entities: %+v", got.Meta)
	}
	e := got.Endpoints[0]
	if e.RequestBody == nil || e.RequestBody.Kind != facts.BodyValidated ||
		len(e.RequestBody.Fields) != 1 || !e.RequestBody.Fields[0].Required {
		t.Errorf("body schema did not round-trip: %+v", e.RequestBody)
	}
	if got.Auth == nil || got.Auth.TokenType != "bearer" {
		t.Errorf("auth did not round-trip: %+v", got.Auth)
	}
	if !got.Meta.GeneratedAt.Equal(fixedNow()) {
		t.Errorf("timestamp did not round-trip: %v", got.Meta.GeneratedAt)
	}
}
