package diag

import (
	"fmt"
	"sort"

	"github.com/corespace/tuplespace/space"
	"github.com/corespace/tuplespace/tuple"
)

// Snapshot is a point-in-time view of a Space's tuple counts, grouped
// by shape. It is a plain copy: taking one does not hold any lock on
// the Space past the call to Stats.
type Snapshot struct {
	SpaceName string
	Counts    map[tuple.Shape]int
}

// Take captures a Snapshot of s.
func Take(s *space.Space) *Snapshot {
	return &Snapshot{
		SpaceName: s.Name,
		Counts:    s.Stats(),
	}
}

// shapes returns the snapshot's shapes in a stable order, so renders
// are reproducible.
func (s *Snapshot) shapes() []tuple.Shape {
	shapes := make([]tuple.Shape, 0, len(s.Counts))
	for shape := range s.Counts {
		shapes = append(shapes, shape)
	}
	sort.Slice(shapes, func(i, j int) bool { return shapes[i] < shapes[j] })
	return shapes
}

// Total returns the sum of every shape's tuple count.
func (s *Snapshot) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// RenderMarkdown renders the snapshot as a Markdown table.
func (s *Snapshot) RenderMarkdown() string {
	out := fmt.Sprintf("# %s\n\n", s.SpaceName)
	out += fmt.Sprintf("%d tuples total.\n\n", s.Total())
	out += "| shape | count |\n|---|---|\n"
	for _, shape := range s.shapes() {
		out += fmt.Sprintf("| %d | %d |\n", shape, s.Counts[shape])
	}
	return out
}
