package ingest

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds the way/node lookup tables for a set of ways given as
// point sequences.
type fixture struct {
	ways   map[osm.WayID][]osm.NodeID
	nodes  map[osm.NodeID]orb.Point
	nextID osm.NodeID
	byPt   map[orb.Point]osm.NodeID
}

func newFixture() *fixture {
	return &fixture{
		ways:  make(map[osm.WayID][]osm.NodeID),
		nodes: make(map[osm.NodeID]orb.Point),
		byPt:  make(map[orb.Point]osm.NodeID),
	}
}

func (f *fixture) way(id osm.WayID, points ...orb.Point) {
	refs := make([]osm.NodeID, 0, len(points))
	for _, p := range points {
		nid, ok := f.byPt[p]
		if !ok {
			f.nextID++
			nid = f.nextID
			f.byPt[p] = nid
			f.nodes[nid] = p
		}
		refs = append(refs, nid)
	}
	f.ways[id] = refs
}

func wayMember(id osm.WayID, role string) osm.Member {
	return osm.Member{Type: osm.TypeWay, Ref: int64(id), Role: role}
}

func TestAssembleBoundary_SingleClosedWay(t *testing.T) {
	f := newFixture()
	f.way(1, orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{4, 4}, orb.Point{0, 4}, orb.Point{0, 0})

	mp := assembleBoundary(osm.Members{wayMember(1, "outer")}, f.ways, f.nodes)
	require.Len(t, mp, 1)
	require.Len(t, mp[0], 1)
	assert.Equal(t, orb.CCW, mp[0][0].Orientation())
}

func TestAssembleBoundary_JoinsSplitWays(t *testing.T) {
	// The square's perimeter split across three ways, one of them
	// reversed; joining must follow endpoints in both directions.
	f := newFixture()
	f.way(1, orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{4, 4})
	f.way(2, orb.Point{0, 4}, orb.Point{4, 4}) // reversed relative to the ring
	f.way(3, orb.Point{0, 4}, orb.Point{0, 0})

	mp := assembleBoundary(osm.Members{
		wayMember(1, "outer"), wayMember(2, "outer"), wayMember(3, "outer"),
	}, f.ways, f.nodes)
	require.Len(t, mp, 1)
	ring := mp[0][0]
	assert.True(t, ringClosed(ring))
	assert.Len(t, ring, 5)
}

func TestAssembleBoundary_InnerBecomesHole(t *testing.T) {
	f := newFixture()
	f.way(1, orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{10, 10}, orb.Point{0, 10}, orb.Point{0, 0})
	f.way(2, orb.Point{4, 4}, orb.Point{6, 4}, orb.Point{6, 6}, orb.Point{4, 6}, orb.Point{4, 4})

	mp := assembleBoundary(osm.Members{
		wayMember(1, "outer"), wayMember(2, "inner"),
	}, f.ways, f.nodes)
	require.Len(t, mp, 1)
	require.Len(t, mp[0], 2, "outer ring plus one hole")
	assert.Equal(t, orb.CCW, mp[0][0].Orientation())
	assert.Equal(t, orb.CW, mp[0][1].Orientation())
}

func TestAssembleBoundary_MultipleOuters(t *testing.T) {
	// An archipelago: two disjoint outer rings, each its own polygon.
	f := newFixture()
	f.way(1, orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{2, 2}, orb.Point{0, 2}, orb.Point{0, 0})
	f.way(2, orb.Point{5, 5}, orb.Point{7, 5}, orb.Point{7, 7}, orb.Point{5, 7}, orb.Point{5, 5})

	mp := assembleBoundary(osm.Members{
		wayMember(1, "outer"), wayMember(2, "outer"),
	}, f.ways, f.nodes)
	assert.Len(t, mp, 2)
}

func TestAssembleBoundary_UnclosedDropped(t *testing.T) {
	f := newFixture()
	f.way(1, orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{4, 4})

	mp := assembleBoundary(osm.Members{wayMember(1, "outer")}, f.ways, f.nodes)
	assert.Nil(t, mp)
}

func TestAssembleBoundary_MissingWaySkipped(t *testing.T) {
	f := newFixture()
	f.way(1, orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{4, 4}, orb.Point{0, 4}, orb.Point{0, 0})

	// Member 99 was never scanned (clipped extract); the closed ring
	// from way 1 still assembles.
	mp := assembleBoundary(osm.Members{
		wayMember(1, "outer"), wayMember(99, "outer"),
	}, f.ways, f.nodes)
	assert.Len(t, mp, 1)
}

func TestAssembleBoundary_IncompleteWayDropped(t *testing.T) {
	f := newFixture()
	f.way(1, orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{4, 4}, orb.Point{0, 4}, orb.Point{0, 0})
	// A way referencing a node that was never resolved.
	f.ways[2] = append(f.ways[1][:2:2], osm.NodeID(9999))

	mp := assembleBoundary(osm.Members{
		wayMember(2, "outer"), wayMember(1, "outer"),
	}, f.ways, f.nodes)
	assert.Len(t, mp, 1)
}

func TestJoinRings_LeftoverSegmentIgnored(t *testing.T) {
	segments := [][]orb.Point{
		{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}},
		{{10, 10}, {11, 11}}, // dangling, never closes
	}
	rings := joinRings(segments)
	require.Len(t, rings, 1)
	assert.True(t, ringClosed(rings[0]))
}
