package store

import (
	"testing"

	"github.com/corespace/tuplespace/tuple"
)

func tup(t *testing.T, fields tuple.Fields) *tuple.Tuple {
	t.Helper()
	tp, err := tuple.New(fields)
	if err != nil {
		t.Fatal(err)
	}
	return tp
}

func tmpl(t *testing.T, fields tuple.Fields, destructive bool) *tuple.Template {
	t.Helper()
	pt, err := tuple.NewTemplate(fields, destructive)
	if err != nil {
		t.Fatal(err)
	}
	return pt
}

func TestStoreTupleAndGetMatch(t *testing.T) {
	s := NewMemory()
	a := tup(t, tuple.Fields{"name": "v", "age": 22})
	s.StoreTuple(a)

	p := tmpl(t, tuple.Fields{"name": "v", "age": nil}, true)
	got, err := s.GetMatch(p, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatal("expected to match the stored tuple")
	}

	// destructive: gone now
	p2 := tmpl(t, tuple.Fields{"name": "v", "age": nil}, true)
	if got, _ := s.GetMatch(p2, true); got != nil {
		t.Fatal("expected no match after destructive take")
	}
}

func TestGetMatchNonDestructiveLeavesTuple(t *testing.T) {
	s := NewMemory()
	a := tup(t, tuple.Fields{"k": "v"})
	s.StoreTuple(a)

	p1 := tmpl(t, tuple.Fields{"k": nil}, false)
	if got, _ := s.GetMatch(p1, false); got != a {
		t.Fatal("expected first get to match")
	}
	p2 := tmpl(t, tuple.Fields{"k": nil}, false)
	if got, _ := s.GetMatch(p2, false); got != a {
		t.Fatal("expected second get to still match (non-destructive)")
	}
}

func TestGetMatchRemovesTemplateOnSuccess(t *testing.T) {
	s := NewMemory()
	p := tmpl(t, tuple.Fields{"k": nil}, true)
	s.StoreTemplate(p)

	a := tup(t, tuple.Fields{"k": "v"})
	s.StoreTuple(a)

	got, err := s.GetMatch(p, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatal("expected match")
	}

	waiting, err := s.GetWaitingTemplates(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(waiting) != 0 {
		t.Fatal("expected the matched template to have been unregistered")
	}
}

func TestGetWaitingTemplatesStopsAfterFirstDestructive(t *testing.T) {
	s := NewMemory()
	p1 := tmpl(t, tuple.Fields{"k": nil}, false)
	p2 := tmpl(t, tuple.Fields{"k": nil}, true)
	p3 := tmpl(t, tuple.Fields{"k": nil}, false)
	s.StoreTemplate(p1)
	s.StoreTemplate(p2)
	s.StoreTemplate(p3)

	a := tup(t, tuple.Fields{"k": "v"})
	waiting, err := s.GetWaitingTemplates(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(waiting) != 2 || waiting[0] != p1 || waiting[1] != p2 {
		t.Fatalf("expected [p1, p2], got %v", waiting)
	}
}

func TestGetWaitingTemplatesCrossShapeIsolation(t *testing.T) {
	s := NewMemory()
	p := tmpl(t, tuple.Fields{"a": nil, "b": nil}, true)
	s.StoreTemplate(p)

	a := tup(t, tuple.Fields{"a": 1})
	waiting, err := s.GetWaitingTemplates(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(waiting) != 0 {
		t.Fatal("expected no cross-shape signalling")
	}
}

func TestRemoveTupleAndTemplate(t *testing.T) {
	s := NewMemory()
	a := tup(t, tuple.Fields{"k": "v"})
	s.StoreTuple(a)
	s.RemoveTuple(a)
	if all := s.GetAllTuples(); len(all) != 0 {
		t.Fatal("expected tuple removed")
	}

	p := tmpl(t, tuple.Fields{"k": nil}, true)
	s.StoreTemplate(p)
	s.RemoveTemplate(p)
	waiting, _ := s.GetWaitingTemplates(tup(t, tuple.Fields{"k": "x"}))
	if len(waiting) != 0 {
		t.Fatal("expected template removed")
	}
}

func TestDeleteStorage(t *testing.T) {
	s := NewMemory()
	s.StoreTuple(tup(t, tuple.Fields{"k": "v"}))
	s.StoreTemplate(tmpl(t, tuple.Fields{"k": nil}, true))
	s.DeleteStorage()
	if all := s.GetAllTuples(); len(all) != 0 {
		t.Fatal("expected empty store after DeleteStorage")
	}
}

func TestTryMatchTupleLeavesTemplatesAlone(t *testing.T) {
	s := NewMemory()
	p := tmpl(t, tuple.Fields{"k": nil}, true)
	s.StoreTemplate(p)
	a := tup(t, tuple.Fields{"k": "v"})
	s.StoreTuple(a)

	got, err := s.TryMatchTuple(p, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatal("expected match")
	}
	// The template should still be registered: TryMatchTuple has no
	// template side effect.
	a2 := tup(t, tuple.Fields{"k": "w"})
	s.StoreTuple(a2)
	waiting, err := s.GetWaitingTemplates(a2)
	if err != nil {
		t.Fatal(err)
	}
	if len(waiting) != 1 || waiting[0] != p {
		t.Fatal("expected template p to still be registered")
	}
}
