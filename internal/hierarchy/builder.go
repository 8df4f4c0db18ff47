package hierarchy

import (
	"log/slog"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// BuildHierarchy picks exactly one parent per zone from its ordered
// candidate-ancestor list and mirrors the resulting links onto the
// zones. For each zone the candidates are scanned tightest first; the
// first one that is not the zone itself and not already a descendant of
// it becomes the parent. The descendant check rejects the reciprocal
// containment produced by duplicate or mistagged source relations; a
// rejected candidate is skipped, never fatal. A zone with no qualifying
// candidate is a root.
//
// Parent selection depends only on the zone's own precomputed candidate
// list, so one linear pass suffices.
func BuildHierarchy(zones []zone.Zone, inclusions [][]zone.Index, logger *slog.Logger) *Forest {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	forest := NewForest(len(zones))
	for i := range zones {
		self := zone.Index(i)
		for _, candidate := range inclusions[i] {
			if candidate == self {
				continue
			}
			if forest.IsAncestor(self, candidate) {
				logger.Debug("skipping reciprocal containment",
					"zone", zones[i].ID, "candidate", zones[candidate].ID)
				continue
			}
			if err := forest.SetParent(self, candidate); err != nil {
				logger.Debug("cannot attach zone", "zone", zones[i].ID, "error", err)
				continue
			}
			break
		}
	}

	for i := range zones {
		if p, ok := forest.Parent(zone.Index(i)); ok {
			parent := p
			zones[i].Parent = &parent
		}
		zones[i].Children = forest.sortedChildren(zone.Index(i))
	}
	return forest
}
