package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cosmogony/internal/cli/config"
	"github.com/leapstack-labs/cosmogony/internal/engine"
	"github.com/leapstack-labs/cosmogony/pkg/cosmogony"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Build a cosmogony from an OSM extract",
		Long: `Read the administrative boundary relations of an OSM PBF extract,
classify them with per-country rules, build the containment hierarchy
and write the resulting zone set as JSON.`,
		Example: `  # Build a cosmogony with geometries
  cosmogony generate -i luxembourg.osm.pbf -o luxembourg.json

  # Lightweight mode for a single-country extract
  cosmogony generate -i idf.osm.pbf --no-geometry --country-code FR

  # Custom rule table
  cosmogony generate -i extract.osm.pbf --rules rules.yaml`,
		Aliases: []string{"build"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}
}

func runGenerate(cmd *cobra.Command) error {
	cfg := config.Current()
	if cfg.Input == "" {
		return fmt.Errorf("no input extract: pass --input or set input in cosmogony.yaml")
	}

	logger := newLogger(cfg)
	eng, err := engine.New(engine.Config{
		InputPath:    cfg.Input,
		RulesPath:    cfg.Rules,
		CountryCode:  cfg.CountryCode,
		WithGeometry: cfg.Geometry,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := eng.Build(cmd.Context())
	if err != nil {
		return err
	}

	if err := writeResult(result, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %d zones in %s\n",
		len(result.Zones), time.Since(start).Round(time.Millisecond))
	renderStats(cmd.OutOrStdout(), &result.Meta.Stats)
	return nil
}

func writeResult(result *cosmogony.Cosmogony, cfg *config.Config) error {
	var w io.Writer = os.Stdout
	if cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// renderStats prints the run statistics: type distribution first, then
// everything the run dropped.
func renderStats(w io.Writer, stats *cosmogony.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Zone type", "Count"})

	types := make([]string, 0, len(stats.ZoneTypeDistribution))
	for name := range stats.ZoneTypeDistribution {
		types = append(types, name)
	}
	sort.Strings(types)
	for _, name := range types {
		t.AppendRow(table.Row{name, stats.ZoneTypeDistribution[name]})
	}
	t.AppendFooter(table.Row{"total", stats.ZoneCount})
	t.Render()

	if stats.ZoneWithoutCountry > 0 {
		fmt.Fprintf(w, "Zones without a resolvable country: %d\n", stats.ZoneWithoutCountry)
	}
	for _, country := range sortedKeys(stats.ZoneWithUnknownCountryRules) {
		fmt.Fprintf(w, "Zones in %s (no rule table): %d\n", country, stats.ZoneWithUnknownCountryRules[country])
	}
	for _, country := range sortedKeys(stats.UnhandledAdminLevel) {
		byLevel := stats.UnhandledAdminLevel[country]
		levels := make([]int, 0, len(byLevel))
		for level := range byLevel {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			fmt.Fprintf(w, "Zones in %s with unmapped admin level %d: %d\n", country, level, byLevel[level])
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
