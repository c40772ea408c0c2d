package registry

import (
	"context"
	"testing"
	"time"

	"github.com/corespace/tuplespace/space"
	"github.com/corespace/tuplespace/tuple"
)

func TestGetCreatesAndReuses(t *testing.T) {
	defer CloseAll()

	a := Get("widgets")
	b := Get("widgets")
	if a != b {
		t.Fatal("expected the same Space instance for the same name")
	}
}

func TestGetEmptyNameIsDefault(t *testing.T) {
	defer CloseAll()

	a := Get("")
	b := Get(DefaultName)
	if a != b {
		t.Fatal("expected \"\" to alias DefaultName")
	}
}

func TestNamesAndClose(t *testing.T) {
	defer CloseAll()

	Get("a")
	Get("b")
	names := Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}

	if err := Close("a"); err != nil {
		t.Fatal(err)
	}
	if len(Names()) != 1 {
		t.Fatalf("expected 1 name after close, got %v", Names())
	}
}

func TestCloseUnknownIsNoop(t *testing.T) {
	if err := Close("never-created"); err != nil {
		t.Fatal(err)
	}
}

func TestRegisteredSpaceIsUsable(t *testing.T) {
	defer CloseAll()

	s := Get("usable")
	if err := s.Put(tuple.Fields{"a": 1}, 0, nil); err != nil {
		t.Fatal(err)
	}
	got, err := s.Take(context.Background(), tuple.Fields{"a": nil}, space.NoWait, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got["a"] != 1 {
		t.Fatalf("expected a=1, got %v", got)
	}
}

func TestCloseAllStopsSpaces(t *testing.T) {
	Get("x")
	Get("y")
	if err := CloseAll(); err != nil {
		t.Fatal(err)
	}
	if len(Names()) != 0 {
		t.Fatal("expected no names after CloseAll")
	}

	// A fresh Get after CloseAll should hand back a brand new, usable Space.
	s := Get("x")
	_, err := s.Take(context.Background(), tuple.Fields{"never": nil}, 10*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
}
