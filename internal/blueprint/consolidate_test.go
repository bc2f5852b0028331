package blueprint

import (
	"testing"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
)

func TestMergeKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"SettingsPage", "settings"},
		{"Settings", "settings"},
		{"ORDERS", "orders"},
		{"profilepage", "profile"},
	}
	for _, c := range cases {
		if got := mergeKey(c.in); got != c.want {
			t.Errorf("mergeKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLastStaticSegment(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/teams/:id", "teams"},
		{"/teams/:id/members", "members"},
		{"/", ""},
		{"/:id", ""},
	}
	for _, c := range cases {
		if got := lastStaticSegment(c.in); got != c.want {
			t.Errorf("lastStaticSegment(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestConsolidateKeepsPagesWithLocators(t *testing.T) {
	pages := []facts.Page{
		{NormalizedRoute: "/users", Locators: []facts.Locator{{Selector: "a"}}},
		{NormalizedRoute: "/teams", Locators: []facts.Locator{{Selector: "b"}}},
	}
	out := ConsolidateSPA(pages, diag.NopReporter{})
	if len(out) != 2 {
		t.Fatalf("pages with locators must survive untouched, got %d", len(out))
	}
}

func TestConsolidateAmbiguousMergeWarns(t *testing.T) {
	pages := []facts.Page{
		{NormalizedRoute: "/settings"},
		{NormalizedRoute: "/SettingsA", Title: "Settings",
			Locators: []facts.Locator{{Selector: "a"}}},
		{NormalizedRoute: "/SettingsB", Title: "SettingsPage",
			Locators: []facts.Locator{{Selector: "b"}}},
	}
	bag := diag.NewBag(64)
	out := ConsolidateSPA(pages, diag.BagReporter{Bag: bag})
	if len(out) != 1 {
		t.Fatalf("got %d pages, want 1 (first donor consumed, second dropped as phantom)", len(out))
	}
	if len(out[0].Locators) != 1 || out[0].Locators[0].Selector != "a" {
		t.Errorf("only the first matching donor folds in: %+v", out[0].Locators)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.AmbiguousPageMerge {
			found = true
		}
	}
	if !found {
		t.Error("expected an AmbiguousPageMerge diagnostic")
	}
}
