package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// PBFSource reads administrative boundary relations from an OSM PBF
// extract. In geometry mode the file is scanned three times (relations,
// then member ways, then way nodes) because PBF blocks are stream
// ordered; the boundaries are then assembled concurrently.
type PBFSource struct {
	// Path is the extract to read.
	Path string
	// WithGeometry selects boundary assembly; without it zones carry
	// tags and admin levels only.
	WithGeometry bool
	// Logger is optional.
	Logger *slog.Logger
}

// Zones implements Source.
func (s *PBFSource) Zones(ctx context.Context) ([]zone.Zone, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	relations, err := s.scanRelations(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("scanned boundary relations", "path", s.Path, "relations", len(relations))

	if !s.WithGeometry {
		zones := make([]zone.Zone, 0, len(relations))
		for _, rel := range relations {
			zones = append(zones, zoneFromRelation(rel))
		}
		return zones, nil
	}

	wayIDs := make(map[osm.WayID]struct{})
	centerNodeIDs := make(map[osm.NodeID]struct{})
	for _, rel := range relations {
		for _, m := range rel.Members {
			switch m.Type {
			case osm.TypeWay:
				wayIDs[osm.WayID(m.Ref)] = struct{}{}
			case osm.TypeNode:
				if m.Role == "admin_centre" || m.Role == "label" {
					centerNodeIDs[osm.NodeID(m.Ref)] = struct{}{}
				}
			}
		}
	}

	ways, nodeIDs, err := s.scanWays(ctx, wayIDs)
	if err != nil {
		return nil, err
	}
	for id := range centerNodeIDs {
		nodeIDs[id] = struct{}{}
	}

	nodes, err := s.scanNodes(ctx, nodeIDs)
	if err != nil {
		return nil, err
	}
	logger.Info("scanned geometry dependencies", "ways", len(ways), "nodes", len(nodes))

	return s.assemble(ctx, relations, ways, nodes)
}

// assemble builds boundaries for all relations with a bounded worker
// pool. Zones whose boundary cannot be assembled are dropped in
// geometry mode; downstream stages rely on every zone being locatable.
func (s *PBFSource) assemble(
	ctx context.Context,
	relations []*osm.Relation,
	ways map[osm.WayID][]osm.NodeID,
	nodes map[osm.NodeID]orb.Point,
) ([]zone.Zone, error) {
	// Each worker writes its own slot, so no lock is needed.
	results := make([]*zone.Zone, len(relations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rel := range relations {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			boundary := assembleBoundary(rel.Members, ways, nodes)
			if boundary == nil {
				return nil
			}
			z := zoneFromRelation(rel)
			z.Boundary = boundary
			for _, m := range rel.Members {
				if m.Type == osm.TypeNode && (m.Role == "admin_centre" || m.Role == "label") {
					if p, ok := nodes[osm.NodeID(m.Ref)]; ok {
						z.Center = p
						z.CenterSet = true
						break
					}
				}
			}
			results[i] = &z
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zones := make([]zone.Zone, 0, len(relations))
	for _, z := range results {
		if z != nil {
			zones = append(zones, *z)
		}
	}
	return zones, nil
}

func (s *PBFSource) scanRelations(ctx context.Context) ([]*osm.Relation, error) {
	var relations []*osm.Relation
	err := s.scan(ctx, func(sc *osmpbf.Scanner) {
		sc.SkipNodes = true
		sc.SkipWays = true
	}, func(obj osm.Object) {
		rel, ok := obj.(*osm.Relation)
		if !ok {
			return
		}
		tags := make(map[string]string, len(rel.Tags))
		for _, t := range rel.Tags {
			tags[t.Key] = t.Value
		}
		if IsAdminRelation(tags) {
			relations = append(relations, rel)
		}
	})
	return relations, err
}

func (s *PBFSource) scanWays(ctx context.Context, wanted map[osm.WayID]struct{}) (map[osm.WayID][]osm.NodeID, map[osm.NodeID]struct{}, error) {
	ways := make(map[osm.WayID][]osm.NodeID, len(wanted))
	nodeIDs := make(map[osm.NodeID]struct{})
	err := s.scan(ctx, func(sc *osmpbf.Scanner) {
		sc.SkipNodes = true
		sc.SkipRelations = true
	}, func(obj osm.Object) {
		way, ok := obj.(*osm.Way)
		if !ok {
			return
		}
		if _, need := wanted[way.ID]; !need {
			return
		}
		refs := make([]osm.NodeID, 0, len(way.Nodes))
		for _, wn := range way.Nodes {
			refs = append(refs, wn.ID)
			nodeIDs[wn.ID] = struct{}{}
		}
		ways[way.ID] = refs
	})
	return ways, nodeIDs, err
}

func (s *PBFSource) scanNodes(ctx context.Context, wanted map[osm.NodeID]struct{}) (map[osm.NodeID]orb.Point, error) {
	nodes := make(map[osm.NodeID]orb.Point, len(wanted))
	err := s.scan(ctx, func(sc *osmpbf.Scanner) {
		sc.SkipWays = true
		sc.SkipRelations = true
	}, func(obj osm.Object) {
		node, ok := obj.(*osm.Node)
		if !ok {
			return
		}
		if _, need := wanted[node.ID]; need {
			nodes[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	})
	return nodes, err
}

// scan runs one pass over the extract.
func (s *PBFSource) scan(ctx context.Context, configure func(*osmpbf.Scanner), visit func(osm.Object)) error {
	f, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("failed to open extract %s: %w", s.Path, err)
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, runtime.GOMAXPROCS(0))
	defer scanner.Close()
	configure(scanner)

	for scanner.Scan() {
		visit(scanner.Object())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to decode extract %s: %w", s.Path, err)
	}
	return nil
}
