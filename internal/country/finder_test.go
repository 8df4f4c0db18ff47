package country

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

func countryZone(id int64, code string, minX, minY, size float64) zone.Zone {
	level := 2
	ring := orb.Ring{
		{minX, minY},
		{minX + size, minY},
		{minX + size, minY + size},
		{minX, minY + size},
		{minX, minY},
	}
	return zone.Zone{
		ID:         id,
		Name:       code,
		AdminLevel: &level,
		Boundary:   orb.MultiPolygon{{ring}},
		Tags:       map[string]string{"ISO3166-1": code},
	}
}

func TestFinder_Empty(t *testing.T) {
	level := 8
	zones := []zone.Zone{
		{ID: 1, Name: "city", AdminLevel: &level, Tags: map[string]string{}},
	}
	f := NewFinder(zones)
	assert.True(t, f.Empty())
}

func TestFinder_Find(t *testing.T) {
	level := 8
	zones := []zone.Zone{
		countryZone(1, "FR", 0, 0, 100),
		countryZone(2, "DE", 200, 0, 100),
		{
			ID: 3, Name: "city", AdminLevel: &level,
			Center: orb.Point{250, 50}, CenterSet: true,
			Tags: map[string]string{},
		},
	}
	f := NewFinder(zones)
	require.False(t, f.Empty())

	code, ok := f.Find(&zones[2])
	require.True(t, ok)
	assert.Equal(t, "DE", code)

	// A country resolves to itself.
	code, ok = f.Find(&zones[0])
	require.True(t, ok)
	assert.Equal(t, "FR", code)
}

func TestFinder_SmallestEnclaveWins(t *testing.T) {
	level := 8
	zones := []zone.Zone{
		countryZone(1, "IT", 0, 0, 100),
		countryZone(2, "SM", 40, 40, 10), // enclave inside IT
		{
			ID: 3, Name: "serravalle", AdminLevel: &level,
			Center: orb.Point{45, 45}, CenterSet: true,
			Tags: map[string]string{},
		},
	}
	f := NewFinder(zones)

	code, ok := f.Find(&zones[2])
	require.True(t, ok)
	assert.Equal(t, "SM", code)
}

func TestFinder_NoLocation(t *testing.T) {
	zones := []zone.Zone{
		countryZone(1, "FR", 0, 0, 100),
		{ID: 2, Name: "nowhere", Tags: map[string]string{}},
	}
	f := NewFinder(zones)

	_, ok := f.Find(&zones[1])
	assert.False(t, ok)
}

func TestCodeOf(t *testing.T) {
	z := countryZone(1, "fr", 0, 0, 10)
	assert.Equal(t, "FR", CodeOf(&z), "codes are normalized upper case")

	level := 4
	z.AdminLevel = &level
	assert.Empty(t, CodeOf(&z), "only admin level 2 counts as a country")
}
