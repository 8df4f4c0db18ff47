package zone

import "fmt"

// View is a read-only window over a zone collection with one element
// carved out. It exists for the label pass, which must write exactly one
// zone while reading the already-finalized state of every other zone in
// the same backing slice. At returns copies, so the only mutable alias
// into the collection is the pointer returned by Split.
type View struct {
	zones    []Zone
	excluded Index
}

// Split returns a mutable pointer to zones[i] and a View over the rest.
// The View refuses access to index i: any attempt to read the excluded
// element through it panics, which turns accidental aliasing into an
// immediate failure instead of a silent stale read.
func Split(zones []Zone, i Index) (*Zone, View) {
	if int(i) < 0 || int(i) >= len(zones) {
		panic(fmt.Sprintf("zone.Split: index %d out of range [0, %d)", i, len(zones)))
	}
	return &zones[i], View{zones: zones, excluded: i}
}

// At returns a copy of the zone at idx. It panics when idx is the
// excluded index or out of range.
func (v View) At(idx Index) Zone {
	if idx == v.excluded {
		panic(fmt.Sprintf("zone.View: access to excluded index %d", idx))
	}
	if int(idx) < 0 || int(idx) >= len(v.zones) {
		panic(fmt.Sprintf("zone.View: index %d out of range [0, %d)", idx, len(v.zones)))
	}
	return v.zones[idx]
}

// Len returns the length of the underlying collection, the excluded
// element included.
func (v View) Len() int {
	return len(v.zones)
}
