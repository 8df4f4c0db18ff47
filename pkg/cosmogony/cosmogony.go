// Package cosmogony defines the final result document of a pipeline run:
// the ordered, pruned zone list plus source metadata and run statistics.
package cosmogony

import (
	"time"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// Cosmogony is an immutable snapshot of one complete run. Zone indices
// stored in parent/child links are valid within Zones only.
type Cosmogony struct {
	Zones []zone.Zone `json:"zones"`
	Meta  Metadata    `json:"meta"`
}

// Metadata describes the source extract and the run.
type Metadata struct {
	OsmFilename string    `json:"osm_filename"`
	GeneratedAt time.Time `json:"generated_at"`
	Stats       Stats     `json:"stats"`
}
