// Package ingest decodes OSM extracts into zone candidates. It is the
// only pipeline stage allowed to parallelize internally; its output is
// consumed by the engine as an already-materialized slice.
package ingest

import (
	"context"
	"strconv"
	"strings"

	"github.com/paulmach/osm"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// Source yields the zone candidates of one extract.
type Source interface {
	Zones(ctx context.Context) ([]zone.Zone, error)
}

// IsAdminRelation reports whether the tags mark an administrative (or
// quasi-administrative) boundary relation. The admin_level tag is not
// required here: relations without one stay in the pipeline and either
// resolve through fallbacks or get pruned with their failure accounted.
func IsAdminRelation(tags map[string]string) bool {
	return tags["boundary"] == "administrative"
}

// zoneFromRelation builds a zone candidate from a relation's tags.
// Geometry is attached separately.
func zoneFromRelation(rel *osm.Relation) zone.Zone {
	tags := make(map[string]string, len(rel.Tags))
	for _, t := range rel.Tags {
		tags[t.Key] = t.Value
	}

	z := zone.Zone{
		ID:       int64(rel.ID),
		Name:     tags["name"],
		Wikidata: tags["wikidata"],
		Tags:     tags,
	}
	if raw, ok := tags["admin_level"]; ok {
		if level, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			z.AdminLevel = &level
		}
	}
	return z
}
