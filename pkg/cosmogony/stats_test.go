package cosmogony

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

func TestStats_Counters(t *testing.T) {
	s := NewStats()

	s.CountMissingCountry()
	s.CountMissingCountry()
	s.CountUnknownCountryRules("ZZ")
	s.CountUnhandledLevel("FR", 3)
	s.CountUnhandledLevel("FR", 3)
	s.CountUnhandledLevel("FR", 0)

	assert.Equal(t, 2, s.ZoneWithoutCountry)
	assert.Equal(t, 1, s.ZoneWithUnknownCountryRules["ZZ"])
	assert.Equal(t, 2, s.UnhandledAdminLevel["FR"][3])
	assert.Equal(t, 1, s.UnhandledAdminLevel["FR"][0])
}

func TestStats_Compute(t *testing.T) {
	country := zone.Country
	city := zone.City

	s := NewStats()
	s.Compute([]zone.Zone{
		{ID: 1, Type: &country},
		{ID: 2, Type: &city},
		{ID: 3, Type: &city},
	})

	assert.Equal(t, 3, s.ZoneCount)
	assert.Equal(t, 1, s.ZoneTypeDistribution["country"])
	assert.Equal(t, 2, s.ZoneTypeDistribution["city"])
}
