// Package country resolves the country a zone belongs to by spatial
// lookup against country-level zones found in the same extract.
package country

import (
	"strings"

	"github.com/tidwall/rtree"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// countryAdminLevel is the admin level of national boundaries in OSM.
const countryAdminLevel = 2

// Finder indexes the country-level zones of a collection by bounding box
// and answers point-in-country queries. Build it once per run, before
// classification; it reads the collection but never mutates it.
type Finder struct {
	tree  rtree.RTreeG[zone.Index]
	zones []zone.Zone
	count int
}

// NewFinder indexes every zone that looks like a country: admin level 2
// with an ISO 3166-1 tag and a boundary.
func NewFinder(zones []zone.Zone) *Finder {
	f := &Finder{zones: zones}
	for i := range zones {
		z := &zones[i]
		if CodeOf(z) == "" || z.Boundary == nil {
			continue
		}
		b := z.Bound()
		f.tree.Insert([2]float64{b.Min[0], b.Min[1]}, [2]float64{b.Max[0], b.Max[1]}, zone.Index(i))
		f.count++
	}
	return f
}

// Empty reports whether no country-level zone was indexed.
func (f *Finder) Empty() bool {
	return f.count == 0
}

// Find returns the country code of the indexed country containing the
// zone's representative point. When overlapping national claims match,
// the smallest boundary wins, ties broken by zone ID, so repeated runs
// resolve identically.
func (f *Finder) Find(z *zone.Zone) (string, bool) {
	point, ok := z.RepresentativePoint()
	if !ok {
		return "", false
	}

	best := zone.Index(-1)
	var bestArea float64
	f.tree.Search([2]float64{point[0], point[1]}, [2]float64{point[0], point[1]},
		func(_, _ [2]float64, idx zone.Index) bool {
			c := &f.zones[idx]
			if !c.Contains(point) {
				return true
			}
			area := c.Area()
			switch {
			case best < 0,
				area < bestArea,
				area == bestArea && c.ID < f.zones[best].ID:
				best = idx
				bestArea = area
			}
			return true
		})

	if best < 0 {
		return "", false
	}
	return CodeOf(&f.zones[best]), true
}

// CodeOf extracts the ISO 3166-1 alpha-2 code of a country-level zone
// from its tags, empty when the zone is not a country.
func CodeOf(z *zone.Zone) string {
	if z.AdminLevel == nil || *z.AdminLevel != countryAdminLevel {
		return ""
	}
	for _, key := range []string{"ISO3166-1:alpha2", "ISO3166-1"} {
		if code, ok := z.Tags[key]; ok && len(code) == 2 {
			return strings.ToUpper(code)
		}
	}
	return ""
}
