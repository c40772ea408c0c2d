package config

import "testing"

func TestParseValid(t *testing.T) {
	doc := []byte(`
version: "1.0"
default_ttl: 30s
default_timeout: 5s
spaces:
  - name: orders
    fixtures: ["orders.yaml"]
  - name: widgets
`)
	d, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if d.Version != "1.0" {
		t.Fatalf("expected version 1.0, got %q", d.Version)
	}
	if len(d.Spaces) != 2 {
		t.Fatalf("expected 2 spaces, got %d", len(d.Spaces))
	}
}

func TestParseMissingVersion(t *testing.T) {
	_, err := Parse([]byte(`spaces: []`))
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestParseDuplicateSpaceName(t *testing.T) {
	doc := []byte(`
version: "1.0"
spaces:
  - name: dup
  - name: dup
`)
	_, err := Parse(doc)
	if err == nil {
		t.Fatal("expected error for duplicate space name")
	}
}

func TestParseFixtures(t *testing.T) {
	doc := []byte(`
- fields:
    name: widget
    count: 3
  ttl: 5s
- fields:
    name: gadget
`)
	fixtures, err := ParseFixtures(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}
	if fixtures[0].Fields["name"] != "widget" {
		t.Fatalf("expected name widget, got %v", fixtures[0].Fields["name"])
	}
	if fixtures[0].TTL != "5s" {
		t.Fatalf("expected ttl 5s, got %q", fixtures[0].TTL)
	}
	if fixtures[1].TTL != "" {
		t.Fatalf("expected empty ttl, got %q", fixtures[1].TTL)
	}
}

func TestParseFixturesMissingFields(t *testing.T) {
	doc := []byte(`
- ttl: 1s
`)
	_, err := ParseFixtures(doc)
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
}
