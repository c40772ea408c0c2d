package config

import (
	"fmt"

	"github.com/jsccast/yaml"

	"github.com/corespace/tuplespace/tuple"
)

// Fixture is one seed tuple: the fields to Put, and an optional TTL
// string parseable by time.ParseDuration ("" means no expiry).
type Fixture struct {
	Fields tuple.Fields `yaml:"fields"`
	TTL    string       `yaml:"ttl,omitempty"`
}

// ParseFixtures reads a YAML document of the form:
//
//	- fields: {name: widget, count: 3}
//	  ttl: 5s
//	- fields: {name: gadget, count: 1}
//
// into a slice of Fixture. It uses jsccast/yaml rather than
// gopkg.in/yaml.v2 because fixture field maps are free-form (keys and
// value types aren't known ahead of time), and that fork decodes YAML
// mappings straight into map[string]interface{} instead of
// map[interface{}]interface{}, which is what tuple.Fields needs.
func ParseFixtures(data []byte) ([]Fixture, error) {
	var raw []map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse fixtures: %w", err)
	}

	fixtures := make([]Fixture, 0, len(raw))
	for i, entry := range raw {
		fieldsRaw, ok := entry["fields"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("config: fixture %d: missing or malformed \"fields\"", i)
		}
		f := Fixture{Fields: tuple.Fields(fieldsRaw)}
		if ttl, ok := entry["ttl"]; ok {
			s, ok := ttl.(string)
			if !ok {
				return nil, fmt.Errorf("config: fixture %d: \"ttl\" must be a string", i)
			}
			f.TTL = s
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}
