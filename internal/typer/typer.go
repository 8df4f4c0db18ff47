// Package typer classifies zones into semantic types using per-country
// admin-level rules, with ancestor-chain and tag-based fallbacks for
// zones the rules don't cover directly.
package typer

import (
	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// Typer classifies zones against a rule table snapshot. It is stateless
// beyond the immutable table: Classify never mutates anything, so
// re-running it on identical inputs yields identical results.
type Typer struct {
	rules *RuleTable
}

// New creates a typer over a loaded rule table.
func New(rules *RuleTable) *Typer {
	return &Typer{rules: rules}
}

// Classify resolves the type of z within country, consulting the ordered
// candidate-ancestor list when the rules don't cover the zone's admin
// level directly:
//
//  1. no rule table for country → InvalidCountryError;
//  2. a direct rule for the zone's admin level → that type;
//  3. no direct rule → ancestor-chain interpolation: take the nearest
//     candidate with a direct rule and assign one rank finer, but only
//     when the chain is unambiguous (no farther candidate claims a finer
//     type than the nearest); then the tag fallback, mapping recognized
//     non-level-bearing boundary tags to NonAdministrative;
//  4. still unresolved → UnknownLevelError (missing level reported as 0).
//
// Failures are per-zone and recoverable; the caller tallies them.
func (t *Typer) Classify(z *zone.Zone, country string, candidates []zone.Index, zones []zone.Zone) (zone.Type, error) {
	levels := t.rules.LevelsFor(country)
	if levels == nil {
		return zone.NonAdministrative, &InvalidCountryError{Country: country}
	}

	if z.AdminLevel != nil {
		if zt, ok := levels[*z.AdminLevel]; ok {
			return zt, nil
		}
	}

	if zt, ok := fromAncestors(levels, candidates, zones); ok {
		return zt, nil
	}

	if t.rules.matchesFallback(z.Tags) {
		return zone.NonAdministrative, nil
	}

	level := 0
	if z.AdminLevel != nil {
		level = *z.AdminLevel
	}
	return zone.NonAdministrative, &UnknownLevelError{Level: level, Country: country}
}

// fromAncestors interpolates a type from the candidate-ancestor chain.
// Candidates are ordered tightest first, so the first one with a direct
// rule is the nearest typed ancestor; the zone sits one rank finer. A
// farther candidate resolving to a finer type contradicts that ordering
// and marks the chain ambiguous, in which case no type is inferred.
func fromAncestors(levels map[int]zone.Type, candidates []zone.Index, zones []zone.Zone) (zone.Type, bool) {
	var nearest zone.Type
	found := false
	for _, ci := range candidates {
		c := &zones[ci]
		if c.AdminLevel == nil {
			continue
		}
		zt, ok := levels[*c.AdminLevel]
		if !ok || !zt.Rankable() {
			continue
		}
		if !found {
			nearest = zt
			found = true
			continue
		}
		if zt < nearest {
			return zone.NonAdministrative, false
		}
	}
	if !found {
		return zone.NonAdministrative, false
	}
	return nearest.Finer()
}
