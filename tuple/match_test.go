package tuple

import "testing"

func TestMatchConcrete(t *testing.T) {
	tp, _ := New(Fields{"name": "v", "age": 22})
	pt, _ := NewTemplate(Fields{"name": "v", "age": nil}, true)
	ok, err := Match(tp, pt)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected match")
	}
}

func TestMatchWrongKeys(t *testing.T) {
	tp, _ := New(Fields{"name": "v"})
	pt, _ := NewTemplate(Fields{"name": "v", "age": nil}, true)
	ok, err := Match(tp, pt)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no match on differing key sets")
	}
}

func TestMatchTypeSensitive(t *testing.T) {
	tp, _ := New(Fields{"n": int64(3)})
	pt, _ := NewTemplate(Fields{"n": 3}, true)
	ok, err := Match(tp, pt)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected int64(3) not to match int(3): different dynamic type")
	}
}

func TestMatchPredicate(t *testing.T) {
	tp, _ := New(Fields{"price": 10})
	gt5 := PredicateFunc(func(v interface{}) (bool, error) {
		n, ok := v.(int)
		return ok && n > 5, nil
	})
	pt, _ := NewTemplate(Fields{"price": gt5}, true)
	ok, err := Match(tp, pt)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected predicate match")
	}
}

func TestMatchPredicateError(t *testing.T) {
	tp, _ := New(Fields{"price": 10})
	boom := PredicateFunc(func(v interface{}) (bool, error) {
		return false, errBoom
	})
	pt, _ := NewTemplate(Fields{"price": boom}, true)
	_, err := Match(tp, pt)
	if err != errBoom {
		t.Fatalf("expected predicate error to propagate, got %v", err)
	}
}

var errBoom = fmtErrorf("boom")

func fmtErrorf(s string) error { return &simpleErr{s} }

type simpleErr struct{ s string }

func (e *simpleErr) Error() string { return e.s }
