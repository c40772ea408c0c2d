package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Defaults holds the registry-wide knobs a deployment may want to
// override: the TTL new tuples get when a Put doesn't specify one,
// and the timeout a blocking Take/Get falls back to when a caller
// passes none.
type Defaults struct {
	Version        string        `yaml:"version"`
	DefaultTTL     time.Duration `yaml:"default_ttl,omitempty"`
	DefaultTimeout time.Duration `yaml:"default_timeout,omitempty"`
	Spaces         []SpaceConfig `yaml:"spaces,omitempty"`
}

// SpaceConfig is one named Space's startup configuration: which
// fixtures, if any, should be seeded into it when a demo or test
// harness boots.
type SpaceConfig struct {
	Name     string   `yaml:"name"`
	Fixtures []string `yaml:"fixtures,omitempty"`
}

// Validate checks the structural invariants Load relies on: a
// version string, and unique Space names.
func (d *Defaults) Validate() error {
	if d.Version == "" {
		return fmt.Errorf("config: missing version")
	}
	seen := make(map[string]bool, len(d.Spaces))
	for _, sc := range d.Spaces {
		if sc.Name == "" {
			return fmt.Errorf("config: space entry missing a name")
		}
		if seen[sc.Name] {
			return fmt.Errorf("config: duplicate space name %q", sc.Name)
		}
		seen[sc.Name] = true
	}
	return nil
}

// Load reads and validates a Defaults document from path.
func Load(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and unmarshals a Defaults document already in
// memory, so callers that embed config or read it from somewhere
// other than the filesystem don't need a temp file.
func Parse(data []byte) (*Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
