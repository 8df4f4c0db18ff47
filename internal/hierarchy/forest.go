package hierarchy

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// Forest tracks parent/child links over zone indices while the hierarchy
// is being built. Parent and child maps are kept mutually consistent by
// construction; Validate checks acyclicity over the finished forest.
type Forest struct {
	size     int
	parent   map[zone.Index]zone.Index
	children map[zone.Index][]zone.Index
}

// NewForest creates an empty forest over a collection of the given size.
func NewForest(size int) *Forest {
	return &Forest{
		size:     size,
		parent:   make(map[zone.Index]zone.Index),
		children: make(map[zone.Index][]zone.Index),
	}
}

// SetParent wires child under parent, with the inverse link.
func (f *Forest) SetParent(child, parent zone.Index) error {
	if child == parent {
		return fmt.Errorf("zone %d cannot be its own parent", child)
	}
	if _, exists := f.parent[child]; exists {
		return fmt.Errorf("zone %d already has a parent", child)
	}
	f.parent[child] = parent
	f.children[parent] = append(f.children[parent], child)
	return nil
}

// Parent returns the parent of i, if any.
func (f *Forest) Parent(i zone.Index) (zone.Index, bool) {
	p, ok := f.parent[i]
	return p, ok
}

// Children returns the children of i in insertion order.
func (f *Forest) Children(i zone.Index) []zone.Index {
	return f.children[i]
}

// IsAncestor reports whether a is a transitive ancestor of i. The walk
// is bounded by the collection size as a guard against malformed links.
func (f *Forest) IsAncestor(a, i zone.Index) bool {
	cur := i
	for steps := 0; steps < f.size; steps++ {
		p, ok := f.parent[cur]
		if !ok {
			return false
		}
		if p == a {
			return true
		}
		cur = p
	}
	return false
}

// Roots returns every index without a parent, sorted.
func (f *Forest) Roots() []zone.Index {
	var roots []zone.Index
	for i := 0; i < f.size; i++ {
		if _, ok := f.parent[zone.Index(i)]; !ok {
			roots = append(roots, zone.Index(i))
		}
	}
	return roots
}

// Validate checks that no index is its own transitive ancestor.
func (f *Forest) Validate() error {
	for i := 0; i < f.size; i++ {
		if f.IsAncestor(zone.Index(i), zone.Index(i)) {
			return fmt.Errorf("cycle through zone index %d", i)
		}
	}
	return nil
}

// sortedChildren returns a sorted copy of the children of i; the builder
// uses it to mirror deterministic child lists onto the zones.
func (f *Forest) sortedChildren(i zone.Index) []zone.Index {
	kids := f.children[i]
	if len(kids) == 0 {
		return nil
	}
	out := make([]zone.Index, len(kids))
	copy(out, kids)
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
