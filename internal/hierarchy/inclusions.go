// Package hierarchy turns a flat zone collection into a tree: it detects
// geometric inclusions between zones and selects exactly one parent per
// zone from the resulting candidate lists.
package hierarchy

import (
	"sort"

	"github.com/tidwall/rtree"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// FindInclusions computes, for each zone, the ordered list of candidate
// geometric ancestors: tightest-containing boundary first, country-level
// last. A zone never lists itself.
//
// Containment is decided by a representative-point-in-polygon test with
// an area guard (a candidate can only contain a zone at least as small
// as itself). An r-tree over boundary bounding boxes pre-filters the
// candidates, keeping the pass sub-quadratic on large extracts.
func FindInclusions(zones []zone.Zone) [][]zone.Index {
	var tree rtree.RTreeG[zone.Index]
	areas := make([]float64, len(zones))
	for i := range zones {
		areas[i] = zones[i].Area()
		if zones[i].Boundary == nil {
			continue
		}
		b := zones[i].Bound()
		tree.Insert([2]float64{b.Min[0], b.Min[1]}, [2]float64{b.Max[0], b.Max[1]}, zone.Index(i))
	}

	inclusions := make([][]zone.Index, len(zones))
	for i := range zones {
		point, ok := zones[i].RepresentativePoint()
		if !ok {
			continue
		}

		var candidates []zone.Index
		tree.Search([2]float64{point[0], point[1]}, [2]float64{point[0], point[1]},
			func(_, _ [2]float64, ci zone.Index) bool {
				if int(ci) == i {
					return true
				}
				if areas[ci] < areas[i] {
					return true
				}
				if zones[ci].Contains(point) {
					candidates = append(candidates, ci)
				}
				return true
			})

		// Tightest first; duplicate relations of equal area resolve by
		// their stable id so every run orders them identically.
		sort.Slice(candidates, func(a, b int) bool {
			ca, cb := candidates[a], candidates[b]
			if areas[ca] != areas[cb] {
				return areas[ca] < areas[cb]
			}
			return zones[ca].ID < zones[cb].ID
		})
		inclusions[i] = candidates
	}
	return inclusions
}
