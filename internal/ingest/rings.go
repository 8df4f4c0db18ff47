package ingest

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/osm"
)

// assembleBoundary builds a multipolygon from a boundary relation's
// member ways. Ways are joined into closed rings by matching endpoints;
// rings from "inner" members become holes of the outer ring containing
// them. Returns nil when no closed outer ring can be formed.
func assembleBoundary(
	members osm.Members,
	ways map[osm.WayID][]osm.NodeID,
	nodes map[osm.NodeID]orb.Point,
) orb.MultiPolygon {
	var outerSegments, innerSegments [][]orb.Point
	for _, m := range members {
		if m.Type != osm.TypeWay {
			continue
		}
		refs, ok := ways[osm.WayID(m.Ref)]
		if !ok {
			continue
		}
		segment := make([]orb.Point, 0, len(refs))
		for _, ref := range refs {
			p, ok := nodes[ref]
			if !ok {
				// Incomplete way, commonly clipped at the extract edge.
				segment = nil
				break
			}
			segment = append(segment, p)
		}
		if len(segment) < 2 {
			continue
		}
		if m.Role == "inner" {
			innerSegments = append(innerSegments, segment)
		} else {
			outerSegments = append(outerSegments, segment)
		}
	}

	outers := joinRings(outerSegments)
	if len(outers) == 0 {
		return nil
	}
	inners := joinRings(innerSegments)

	polygons := make(orb.MultiPolygon, 0, len(outers))
	for _, outer := range outers {
		if outer.Orientation() != orb.CCW {
			outer.Reverse()
		}
		polygons = append(polygons, orb.Polygon{outer})
	}

	for _, inner := range inners {
		if inner.Orientation() != orb.CW {
			inner.Reverse()
		}
		for i := range polygons {
			if planar.RingContains(polygons[i][0], inner[0]) {
				polygons[i] = append(polygons[i], inner)
				break
			}
		}
	}
	return polygons
}

// joinRings stitches way segments into closed rings. Segments are
// consumed greedily: a ring grows at its tail until it closes or no
// segment matches; unclosed leftovers are dropped.
func joinRings(segments [][]orb.Point) []orb.Ring {
	used := make([]bool, len(segments))
	var rings []orb.Ring

	for i := range segments {
		if used[i] {
			continue
		}
		used[i] = true
		ring := make(orb.Ring, len(segments[i]))
		copy(ring, segments[i])

		for !ringClosed(ring) {
			extended := false
			tail := ring[len(ring)-1]
			for j := range segments {
				if used[j] {
					continue
				}
				seg := segments[j]
				switch tail {
				case seg[0]:
					ring = append(ring, seg[1:]...)
				case seg[len(seg)-1]:
					for k := len(seg) - 2; k >= 0; k-- {
						ring = append(ring, seg[k])
					}
				default:
					continue
				}
				used[j] = true
				extended = true
				break
			}
			if !extended {
				break
			}
		}

		// A valid closed ring needs at least a triangle.
		if ringClosed(ring) && len(ring) >= 4 {
			rings = append(rings, ring)
		}
	}
	return rings
}

func ringClosed(ring orb.Ring) bool {
	return len(ring) >= 3 && ring[0] == ring[len(ring)-1]
}
