// Package zone defines the administrative zone model produced by the
// cosmogony pipeline, along with the label composition pass and the
// split-slice accessor it relies on.
package zone

import (
	"encoding/json"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Index is a position into the active zone collection. Indices are only
// meaningful within one snapshot of the collection: pruning rewrites every
// surviving parent/child reference, so an Index must never be carried
// across the prune boundary.
type Index int

// Zone is one administrative or quasi-administrative area extracted from
// source boundary data. A zone is created by ingestion; its country, type,
// parent/children and label are filled in by later pipeline stages, in
// that order.
type Zone struct {
	// ID is the stable external identifier (OSM relation id).
	ID int64
	// Name is the raw name tag.
	Name string
	// AdminLevel is the country-specific nesting-depth tag, when present
	// and parseable.
	AdminLevel *int
	// Boundary is the assembled multipolygon, nil in lightweight mode or
	// when assembly failed.
	Boundary orb.MultiPolygon
	// Center is a representative point guaranteed (best effort) to lie
	// inside the boundary. Valid only when CenterSet is true.
	Center    orb.Point
	CenterSet bool
	// CountryCode is the resolved ISO 3166-1 alpha-2 code.
	CountryCode string
	// Type is the classified zone type; nil until classification and for
	// zones whose classification failed.
	Type *Type
	// Parent and Children are hierarchy links within the same snapshot.
	Parent   *Index
	Children []Index
	// Label is the disambiguated display label.
	Label string
	// Wikidata is the wikidata tag, when present.
	Wikidata string
	// Tags carries the raw relation tags.
	Tags map[string]string
}

// Bound returns the bounding box of the zone's boundary, or the
// degenerate bound of its center point when no boundary is present.
func (z *Zone) Bound() orb.Bound {
	if z.Boundary != nil {
		return z.Boundary.Bound()
	}
	return orb.Bound{Min: z.Center, Max: z.Center}
}

// Area returns the planar area of the boundary, zero when absent.
func (z *Zone) Area() float64 {
	if z.Boundary == nil {
		return 0
	}
	return math.Abs(planar.Area(z.Boundary))
}

// Contains reports whether the zone's boundary contains the point.
func (z *Zone) Contains(p orb.Point) bool {
	if z.Boundary == nil {
		return false
	}
	return planar.MultiPolygonContains(z.Boundary, p)
}

// RepresentativePoint returns a point interior to the zone. It prefers
// the ingested center (admin_centre/label member), then the boundary
// centroid, then a boundary vertex when the centroid falls outside a
// non-convex shape.
func (z *Zone) RepresentativePoint() (orb.Point, bool) {
	if z.CenterSet {
		return z.Center, true
	}
	if z.Boundary == nil {
		return orb.Point{}, false
	}
	centroid, _ := planar.CentroidArea(z.Boundary)
	if planar.MultiPolygonContains(z.Boundary, centroid) {
		return centroid, true
	}
	for _, poly := range z.Boundary {
		for _, ring := range poly {
			if len(ring) > 0 {
				return ring[0], true
			}
		}
	}
	return orb.Point{}, false
}

// zoneJSON is the serialized form of a zone. The boundary is emitted as
// GeoJSON; hierarchy links are snapshot-relative indices.
type zoneJSON struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Label       string            `json:"label"`
	Type        *Type             `json:"zone_type"`
	AdminLevel  *int              `json:"admin_level,omitempty"`
	CountryCode string            `json:"country_code,omitempty"`
	Parent      *Index            `json:"parent,omitempty"`
	Children    []Index           `json:"children,omitempty"`
	Wikidata    string            `json:"wikidata,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Geometry    *geojson.Geometry `json:"geometry,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (z Zone) MarshalJSON() ([]byte, error) {
	out := zoneJSON{
		ID:          z.ID,
		Name:        z.Name,
		Label:       z.Label,
		Type:        z.Type,
		AdminLevel:  z.AdminLevel,
		CountryCode: z.CountryCode,
		Parent:      z.Parent,
		Children:    z.Children,
		Wikidata:    z.Wikidata,
		Tags:        z.Tags,
	}
	if z.Boundary != nil {
		out.Geometry = geojson.NewGeometry(z.Boundary)
	}
	return json.Marshal(out)
}
