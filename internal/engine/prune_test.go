package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

func typed(id int64, t zone.Type, parent *zone.Index) zone.Zone {
	return zone.Zone{ID: id, Type: &t, Parent: parent}
}

func idx(i zone.Index) *zone.Index { return &i }

func TestPrune_DropsUntyped(t *testing.T) {
	zones := []zone.Zone{
		typed(1, zone.Country, nil),
		{ID: 2, Parent: idx(0)}, // untyped, dropped
		typed(3, zone.City, idx(0)),
	}

	kept := prune(zones)
	require.Len(t, kept, 2)
	assert.Equal(t, int64(1), kept[0].ID)
	assert.Equal(t, int64(3), kept[1].ID)
}

func TestPrune_ReattachesThroughPrunedAncestor(t *testing.T) {
	// country <- untyped region <- city: the city re-attaches to the
	// country once the region is gone.
	zones := []zone.Zone{
		typed(1, zone.Country, nil),
		{ID: 2, Parent: idx(0)},
		typed(3, zone.City, idx(1)),
	}

	kept := prune(zones)
	require.Len(t, kept, 2)

	city := kept[1]
	require.NotNil(t, city.Parent)
	assert.Equal(t, zone.Index(0), *city.Parent)
	assert.Equal(t, []zone.Index{1}, kept[0].Children)
}

func TestPrune_OrphanBecomesRoot(t *testing.T) {
	zones := []zone.Zone{
		{ID: 1}, // untyped root, dropped
		typed(2, zone.City, idx(0)),
	}

	kept := prune(zones)
	require.Len(t, kept, 1)
	assert.Nil(t, kept[0].Parent)
	assert.Empty(t, kept[0].Children)
}

func TestPrune_RemapsIndexes(t *testing.T) {
	// Dropping the first element shifts every surviving index down.
	zones := []zone.Zone{
		{ID: 1},
		typed(2, zone.Country, nil),
		typed(3, zone.State, idx(1)),
		typed(4, zone.City, idx(2)),
	}

	kept := prune(zones)
	require.Len(t, kept, 3)
	require.NotNil(t, kept[1].Parent)
	assert.Equal(t, zone.Index(0), *kept[1].Parent)
	require.NotNil(t, kept[2].Parent)
	assert.Equal(t, zone.Index(1), *kept[2].Parent)
	assert.Equal(t, []zone.Index{1}, kept[0].Children)
	assert.Equal(t, []zone.Index{2}, kept[1].Children)
}

func TestPrune_AllUntyped(t *testing.T) {
	kept := prune([]zone.Zone{{ID: 1}, {ID: 2}})
	assert.Empty(t, kept)
}
