package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cosmogony/internal/cli/config"
	"github.com/leapstack-labs/cosmogony/internal/typer"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Inspect the classification rule table",
		Long: `Load and summarize the classification rule table: one row per
covered country with its mapped admin levels. Useful to validate a
custom table before a long run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Current()

			var rules *typer.RuleTable
			var err error
			if cfg.Rules != "" {
				rules, err = typer.LoadRules(cfg.Rules)
			} else {
				rules, err = typer.DefaultRules()
			}
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Country", "Admin level", "Zone type"})
			for _, country := range rules.Countries() {
				levels := rules.LevelsFor(country)
				sorted := make([]int, 0, len(levels))
				for level := range levels {
					sorted = append(sorted, level)
				}
				sort.Ints(sorted)
				for _, level := range sorted {
					t.AppendRow(table.Row{country, level, levels[level].String()})
				}
			}
			t.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "%d countries covered\n", len(rules.Countries()))
			return nil
		},
	}
}
