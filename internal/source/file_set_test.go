package source

import (
	"testing"
)

func TestFileSetAddAndGet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.facts.jsonl", []byte("one\ntwo\nthree"))

	f := fs.Get(id)
	if f == nil {
		t.Fatal("Get returned nil for a valid id")
	}
	if f.Path != "a.facts.jsonl" {
		t.Errorf("path = %q, want a.facts.jsonl", f.Path)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("virtual file should carry FileVirtual flag")
	}
	if got, ok := fs.GetByPath("a.facts.jsonl"); !ok || got.ID != id {
		t.Errorf("GetByPath = (%v, %v), want id %d", got, ok, id)
	}
}

func TestFileSetLatestWins(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("x.json", []byte("old"))
	id2 := fs.AddVirtual("x.json", []byte("new"))

	f, ok := fs.GetByPath("x.json")
	if !ok || f.ID != id2 {
		t.Errorf("index should point at the latest version, got id=%v ok=%v", f, ok)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("p.json", []byte("ab\ncd\nef"))

	cases := []struct {
		offset uint32
		line   uint32
		col    uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
	}
	for _, c := range cases {
		got := fs.Position(id, c.offset)
		if got.Line != c.line || got.Col != c.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", c.offset, got.Line, got.Col, c.line, c.col)
		}
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Error("expected a replacement")
	}
	if string(out) != "a\nb\rc" {
		t.Errorf("got %q, lone \\r must be preserved", out)
	}

	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Errorf("no-op input modified: %q changed=%v", out, changed)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 2, End: 7}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 10 {
		t.Errorf("Cover = %v, want 1:2-10", c)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files must be a no-op, got %v", got)
	}
}
