package diag

import (
	"testing"

	"surveyor/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := b.Add(Diagnostic{Code: IngestBadJSON, Severity: SevWarning})
		if i < 2 && !ok {
			t.Errorf("Add %d rejected below the limit", i)
		}
		if i == 2 && ok {
			t.Error("Add beyond the limit must return false")
		}
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	mk := func(file source.FileID, start uint32, sev Severity, code Code) Diagnostic {
		return Diagnostic{
			Severity: sev,
			Code:     code,
			Primary:  source.Span{File: file, Start: start, End: start + 1},
		}
	}
	b := NewBag(10)
	b.Add(mk(2, 5, SevWarning, IngestBadJSON))
	b.Add(mk(1, 9, SevError, IngestBadMethod))
	b.Add(mk(1, 3, SevWarning, IngestParamMismatch))
	b.Add(mk(1, 3, SevError, IngestBadJSON))
	b.Sort()

	items := b.Items()
	if items[0].Primary.File != 1 || items[0].Primary.Start != 3 || items[0].Severity != SevError {
		t.Errorf("first diagnostic wrong: %+v", items[0])
	}
	if items[3].Primary.File != 2 {
		t.Errorf("file 2 must sort last, got %+v", items[3])
	}
}

func TestBagDedupAndMerge(t *testing.T) {
	d := Diagnostic{Code: PhantomPageDropped, Severity: SevInfo, Primary: source.Span{File: 1, Start: 0, End: 4}}
	a := NewBag(4)
	a.Add(d)
	other := NewBag(4)
	other.Add(d)
	other.Add(Diagnostic{Code: AmbiguousPageMerge, Severity: SevWarning})

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("merged len = %d, want 3", a.Len())
	}
	a.Dedup()
	if a.Len() != 2 {
		t.Errorf("dedup len = %d, want 2", a.Len())
	}
	if !a.HasWarnings() {
		t.Error("warning lost in merge")
	}
	if a.HasErrors() {
		t.Error("no errors were added")
	}
}

func TestBagReporter(t *testing.T) {
	b := NewBag(4)
	var r Reporter = BagReporter{Bag: b}
	ReportWarning(r, IngestBadMethod, source.Span{}, "method TRACE not allowed")
	if b.Len() != 1 || b.Items()[0].Code != IngestBadMethod {
		t.Errorf("reporter did not store the diagnostic: %+v", b.Items())
	}
	// Nop must not panic and must not store anything.
	ReportError(NopReporter{}, IngestBadJSON, source.Span{}, "x")
}
