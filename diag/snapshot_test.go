package diag

import (
	"strings"
	"testing"

	"github.com/corespace/tuplespace/space"
	"github.com/corespace/tuplespace/tuple"
)

func TestTakeAndRenderMarkdown(t *testing.T) {
	s := space.New("diagtest")
	defer s.Close()

	s.Put(tuple.Fields{"a": 1}, 0, nil)
	s.Put(tuple.Fields{"a": 2}, 0, nil)
	s.Put(tuple.Fields{"a": 3, "b": "x"}, 0, nil)

	snap := Take(s)
	if snap.SpaceName != "diagtest" {
		t.Fatalf("expected name diagtest, got %q", snap.SpaceName)
	}
	if snap.Total() != 3 {
		t.Fatalf("expected 3 total tuples, got %d", snap.Total())
	}
	if len(snap.Counts) != 2 {
		t.Fatalf("expected 2 distinct shapes, got %d", len(snap.Counts))
	}

	rendered := snap.RenderMarkdown()
	if !strings.Contains(rendered, "diagtest") {
		t.Fatalf("expected markdown to mention the space name, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "3 tuples total") {
		t.Fatalf("expected markdown to report the total, got:\n%s", rendered)
	}
}

func TestRenderHTML(t *testing.T) {
	s := space.New("diaghtml")
	defer s.Close()
	s.Put(tuple.Fields{"a": 1}, 0, nil)

	html := Take(s).RenderHTML()
	if !strings.Contains(html, "<table>") {
		t.Fatalf("expected rendered HTML to contain a table, got:\n%s", html)
	}
	if !strings.Contains(html, "diaghtml") {
		t.Fatalf("expected rendered HTML to mention the space name, got:\n%s", html)
	}
}

func TestEmptySnapshot(t *testing.T) {
	s := space.New("diagempty")
	defer s.Close()

	snap := Take(s)
	if snap.Total() != 0 {
		t.Fatalf("expected 0 total, got %d", snap.Total())
	}
	rendered := snap.RenderMarkdown()
	if !strings.Contains(rendered, "0 tuples total") {
		t.Fatalf("expected markdown to report zero tuples, got:\n%s", rendered)
	}
}
