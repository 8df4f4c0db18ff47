// Package engine orchestrates the cosmogony pipeline: ingestion,
// inclusion detection, country resolution, classification, hierarchy
// construction, labeling, pruning and stats aggregation. Stages run
// strictly sequentially over one in-memory extract.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/leapstack-labs/cosmogony/internal/country"
	"github.com/leapstack-labs/cosmogony/internal/hierarchy"
	"github.com/leapstack-labs/cosmogony/internal/ingest"
	"github.com/leapstack-labs/cosmogony/internal/typer"
	"github.com/leapstack-labs/cosmogony/pkg/cosmogony"
	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

// ErrNoCountry is returned before any classification begins when no
// explicit country code was supplied and the extract contains no
// country-level zone: without at least one resolvable country, no rules
// can be looked up.
var ErrNoCountry = errors.New("no country code provided and no country found in the extract")

// Config holds engine configuration.
type Config struct {
	// InputPath is the extract to process (used by the default source
	// and recorded in the result metadata).
	InputPath string
	// RulesPath is the classification rule table; empty selects the
	// embedded default table.
	RulesPath string
	// CountryCode, when set, overrides spatial country inference for
	// every zone.
	CountryCode string
	// WithGeometry selects boundary-bearing ingestion.
	WithGeometry bool
	// Source overrides the default PBF source (used by tests).
	Source ingest.Source
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Engine drives one pipeline run.
type Engine struct {
	cfg    Config
	source ingest.Source
	rules  *typer.RuleTable
	logger *slog.Logger
}

// New validates the configuration and loads the rule table snapshot.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	source := cfg.Source
	if source == nil {
		if cfg.InputPath == "" {
			return nil, fmt.Errorf("no input extract configured")
		}
		source = &ingest.PBFSource{
			Path:         cfg.InputPath,
			WithGeometry: cfg.WithGeometry,
			Logger:       logger,
		}
	}

	var rules *typer.RuleTable
	var err error
	if cfg.RulesPath != "" {
		rules, err = typer.LoadRules(cfg.RulesPath)
	} else {
		rules, err = typer.DefaultRules()
	}
	if err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg, source: source, rules: rules, logger: logger}, nil
}

// Build runs the full pipeline and returns the final snapshot. It either
// fails with a fatal error or returns a Cosmogony whose stats fully
// account for every dropped zone.
func (e *Engine) Build(ctx context.Context) (*cosmogony.Cosmogony, error) {
	start := time.Now()

	zones, err := e.source.Zones(ctx)
	if err != nil {
		return nil, fmt.Errorf("ingestion failed: %w", err)
	}
	e.logger.Info("ingested zones", "count", len(zones))

	stats := cosmogony.NewStats()
	if err := e.buildOntology(zones, stats); err != nil {
		return nil, err
	}

	zones = prune(zones)
	stats.Compute(zones)
	e.logger.Info("cosmogony built", "zones", len(zones), "elapsed", time.Since(start))

	return &cosmogony.Cosmogony{
		Zones: zones,
		Meta: cosmogony.Metadata{
			OsmFilename: filepath.Base(e.cfg.InputPath),
			GeneratedAt: time.Now().UTC(),
			Stats:       *stats,
		},
	}, nil
}

// buildOntology runs the in-memory stages over the shared collection:
// inclusions, typing, hierarchy, labels. Pruning is the caller's last
// step because earlier removal would break ancestor lookups.
func (e *Engine) buildOntology(zones []zone.Zone, stats *cosmogony.Stats) error {
	inclusions := hierarchy.FindInclusions(zones)
	e.logger.Debug("computed inclusions")

	if err := e.typeZones(zones, inclusions, stats); err != nil {
		return err
	}

	hierarchy.BuildHierarchy(zones, inclusions, e.logger)
	e.logger.Debug("built hierarchy")

	zone.ComputeLabels(zones)
	e.logger.Debug("computed labels")
	return nil
}

// typeZones classifies every zone, best effort. Per-zone failures are
// tallied into stats and leave the zone untyped for the prune.
func (e *Engine) typeZones(zones []zone.Zone, inclusions [][]zone.Index, stats *cosmogony.Stats) error {
	zoneTyper := typer.New(e.rules)
	finder := country.NewFinder(zones)
	if e.cfg.CountryCode == "" && finder.Empty() {
		return ErrNoCountry
	}

	for i := range zones {
		code := e.resolveCountry(finder, &zones[i])
		if code == "" {
			e.logger.Debug("no country for zone, skipping", "zone", zones[i].ID, "name", zones[i].Name)
			stats.CountMissingCountry()
			continue
		}
		zones[i].CountryCode = code

		zoneType, err := zoneTyper.Classify(&zones[i], code, inclusions[i], zones)
		if err != nil {
			var invalidCountry *typer.InvalidCountryError
			var unknownLevel *typer.UnknownLevelError
			switch {
			case errors.As(err, &invalidCountry):
				e.logger.Debug("no rules for country", "country", invalidCountry.Country)
				stats.CountUnknownCountryRules(invalidCountry.Country)
			case errors.As(err, &unknownLevel):
				e.logger.Debug("no rule for admin level",
					"level", unknownLevel.Level, "country", unknownLevel.Country)
				stats.CountUnhandledLevel(unknownLevel.Country, unknownLevel.Level)
			default:
				return fmt.Errorf("classification failed for zone %d: %w", zones[i].ID, err)
			}
			continue
		}
		t := zoneType
		zones[i].Type = &t
	}
	return nil
}

// resolveCountry applies the explicit override, then spatial lookup.
func (e *Engine) resolveCountry(finder *country.Finder, z *zone.Zone) string {
	if e.cfg.CountryCode != "" {
		return e.cfg.CountryCode
	}
	if code, ok := finder.Find(z); ok {
		return code
	}
	return ""
}
