package engine

import (
	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// prune drops every zone whose type never resolved and rewrites the
// surviving hierarchy links in one explicit remap pass. Array-offset
// handles go stale on removal, so nothing downstream may reuse an index
// taken before this call.
//
// A surviving zone whose parent was pruned is re-attached to its nearest
// surviving ancestor, or becomes a root when none is left.
func prune(zones []zone.Zone) []zone.Zone {
	remap := make(map[zone.Index]zone.Index, len(zones))
	kept := make([]zone.Zone, 0, len(zones))
	for i := range zones {
		if zones[i].Type == nil {
			continue
		}
		remap[zone.Index(i)] = zone.Index(len(kept))
		kept = append(kept, zones[i])
	}

	for i := range kept {
		kept[i].Parent = remapParent(zones, remap, kept[i].Parent)
		kept[i].Children = nil
	}

	// Children are rebuilt from the remapped parents rather than
	// filtered, so both link directions stay mutually consistent.
	for i := range kept {
		if p := kept[i].Parent; p != nil {
			kept[*p].Children = append(kept[*p].Children, zone.Index(i))
		}
	}
	return kept
}

// remapParent walks the pre-prune ancestor chain to the nearest
// surviving ancestor and translates it to the post-prune index.
func remapParent(zones []zone.Zone, remap map[zone.Index]zone.Index, parent *zone.Index) *zone.Index {
	for steps := 0; parent != nil && steps < len(zones); steps++ {
		if newIdx, ok := remap[*parent]; ok {
			return &newIdx
		}
		parent = zones[*parent].Parent
	}
	return nil
}
