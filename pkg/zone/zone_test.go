package zone

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundedZone(minX, minY, maxX, maxY float64) Zone {
	return Zone{Boundary: orb.MultiPolygon{orb.Polygon{orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}}}}
}

func TestZone_Area(t *testing.T) {
	z := boundedZone(0, 0, 4, 2)
	assert.InDelta(t, 8.0, z.Area(), 1e-9)

	empty := Zone{}
	assert.Zero(t, empty.Area())
}

func TestZone_Contains(t *testing.T) {
	z := boundedZone(0, 0, 4, 4)
	assert.True(t, z.Contains(orb.Point{2, 2}))
	assert.False(t, z.Contains(orb.Point{5, 5}))

	empty := Zone{}
	assert.False(t, empty.Contains(orb.Point{0, 0}))
}

func TestZone_Bound(t *testing.T) {
	z := boundedZone(1, 2, 3, 4)
	b := z.Bound()
	assert.Equal(t, orb.Point{1, 2}, b.Min)
	assert.Equal(t, orb.Point{3, 4}, b.Max)

	pointOnly := Zone{Center: orb.Point{5, 6}, CenterSet: true}
	b = pointOnly.Bound()
	assert.Equal(t, b.Min, b.Max)
}

func TestZone_RepresentativePoint(t *testing.T) {
	t.Run("prefers ingested center", func(t *testing.T) {
		z := boundedZone(0, 0, 4, 4)
		z.Center = orb.Point{1, 1}
		z.CenterSet = true
		p, ok := z.RepresentativePoint()
		require.True(t, ok)
		assert.Equal(t, orb.Point{1, 1}, p)
	})

	t.Run("falls back to centroid", func(t *testing.T) {
		z := boundedZone(0, 0, 4, 4)
		p, ok := z.RepresentativePoint()
		require.True(t, ok)
		assert.True(t, z.Contains(p))
	})

	t.Run("non-convex shape yields an interior-adjacent vertex", func(t *testing.T) {
		// A C shape whose bbox center falls in the notch.
		z := Zone{Boundary: orb.MultiPolygon{orb.Polygon{orb.Ring{
			{0, 0}, {4, 0}, {4, 1}, {1, 1}, {1, 3}, {4, 3}, {4, 4}, {0, 4}, {0, 0},
		}}}}
		_, ok := z.RepresentativePoint()
		assert.True(t, ok)
	})

	t.Run("nothing to stand on", func(t *testing.T) {
		_, ok := (&Zone{}).RepresentativePoint()
		assert.False(t, ok)
	})
}

func TestZone_MarshalJSON(t *testing.T) {
	level := 8
	city := City
	parent := Index(0)
	z := boundedZone(0, 0, 1, 1)
	z.ID = 42
	z.Name = "Rennes"
	z.Label = "Rennes"
	z.Type = &city
	z.AdminLevel = &level
	z.CountryCode = "FR"
	z.Parent = &parent

	data, err := json.Marshal(z)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.EqualValues(t, 42, out["id"])
	assert.Equal(t, "city", out["zone_type"])
	assert.Equal(t, "FR", out["country_code"])

	geom, ok := out["geometry"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "MultiPolygon", geom["type"])
}

func TestZone_MarshalJSON_NoGeometry(t *testing.T) {
	z := Zone{ID: 1, Name: "x"}
	data, err := json.Marshal(z)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	_, hasGeom := out["geometry"]
	assert.False(t, hasGeom)
	assert.Nil(t, out["zone_type"], "untyped zones serialize a null type")
}
