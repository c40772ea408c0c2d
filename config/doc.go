// Package config loads registry-wide defaults from YAML, and offers a
// helper for parsing the free-form field maps that appear in YAML
// fixtures (test seeds, demo scripts) into tuple.Fields.
package config
