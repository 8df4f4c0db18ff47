package cosmogony

import (
	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// Stats accounts for every zone the run dropped or failed to classify.
// The per-zone counters accumulate while classification runs; the type
// distribution is computed once over the pruned set.
type Stats struct {
	// ZoneCount is the number of zones surviving the prune.
	ZoneCount int `json:"zone_count"`
	// ZoneWithoutCountry counts zones skipped because no country could
	// be resolved for them.
	ZoneWithoutCountry int `json:"zone_without_country"`
	// ZoneWithUnknownCountryRules counts zones whose resolved country has
	// no rule table, keyed by country code.
	ZoneWithUnknownCountryRules map[string]int `json:"zone_with_unknown_country_rules,omitempty"`
	// UnhandledAdminLevel counts zones whose admin level has no rule,
	// keyed by country then level (0 stands for a missing level).
	UnhandledAdminLevel map[string]map[int]int `json:"unhandled_admin_level,omitempty"`
	// ZoneTypeDistribution is the final count of zones per type.
	ZoneTypeDistribution map[string]int `json:"zone_type_distribution,omitempty"`
}

// NewStats returns an empty accumulator.
func NewStats() *Stats {
	return &Stats{
		ZoneWithUnknownCountryRules: make(map[string]int),
		UnhandledAdminLevel:         make(map[string]map[int]int),
		ZoneTypeDistribution:        make(map[string]int),
	}
}

// CountMissingCountry records a zone with no resolvable country.
func (s *Stats) CountMissingCountry() {
	s.ZoneWithoutCountry++
}

// CountUnknownCountryRules records a zone whose country has no rules.
func (s *Stats) CountUnknownCountryRules(country string) {
	s.ZoneWithUnknownCountryRules[country]++
}

// CountUnhandledLevel records a zone whose admin level is unmapped for
// its country. A missing level is recorded as 0.
func (s *Stats) CountUnhandledLevel(country string, level int) {
	byLevel, ok := s.UnhandledAdminLevel[country]
	if !ok {
		byLevel = make(map[int]int)
		s.UnhandledAdminLevel[country] = byLevel
	}
	byLevel[level]++
}

// Compute finalizes the stats over the pruned zone set.
func (s *Stats) Compute(zones []zone.Zone) {
	s.ZoneCount = len(zones)
	for i := range zones {
		if zones[i].Type != nil {
			s.ZoneTypeDistribution[zones[i].Type.String()]++
		}
	}
}
