package typer

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/cosmogony/pkg/zone"
)

//go:embed rules/default.yaml
var defaultRulesData []byte

// rulesFile is the on-disk shape of a rule table.
type rulesFile struct {
	// NonAdministrative maps tag keys to values recognized as
	// non-administrative boundaries (the tag fallback).
	NonAdministrative map[string][]string `yaml:"non_administrative"`
	// Countries maps ISO 3166-1 alpha-2 codes to their level rules.
	Countries map[string]countryRules `yaml:"countries"`
}

type countryRules struct {
	AdminLevel map[int]string `yaml:"admin_level"`
}

// RuleTable is the immutable country → (admin level → zone type) mapping
// driving classification, plus the tag-based fallback rules. It is
// loaded once and shared read-only across all Classify calls.
type RuleTable struct {
	levels   map[string]map[int]zone.Type
	fallback map[string]map[string]struct{}
}

// LoadRules reads and validates a rule table from a YAML file.
func LoadRules(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule table: %w", err)
	}
	table, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("invalid rule table %s: %w", path, err)
	}
	return table, nil
}

// DefaultRules returns the rule table shipped with the binary.
func DefaultRules() (*RuleTable, error) {
	return ParseRules(defaultRulesData)
}

// ParseRules builds a RuleTable from YAML bytes.
func ParseRules(data []byte) (*RuleTable, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Countries) == 0 {
		return nil, fmt.Errorf("rule table defines no countries")
	}

	table := &RuleTable{
		levels:   make(map[string]map[int]zone.Type, len(f.Countries)),
		fallback: make(map[string]map[string]struct{}, len(f.NonAdministrative)),
	}
	for country, rules := range f.Countries {
		byLevel := make(map[int]zone.Type, len(rules.AdminLevel))
		for level, name := range rules.AdminLevel {
			t, err := zone.ParseType(name)
			if err != nil {
				return nil, fmt.Errorf("country %s, admin level %d: %w", country, level, err)
			}
			byLevel[level] = t
		}
		table.levels[country] = byLevel
	}
	for key, values := range f.NonAdministrative {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		table.fallback[key] = set
	}
	return table, nil
}

// Countries returns the covered country codes, sorted.
func (rt *RuleTable) Countries() []string {
	out := make([]string, 0, len(rt.levels))
	for c := range rt.levels {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// LevelsFor returns the level rules for a country, nil when uncovered.
func (rt *RuleTable) LevelsFor(country string) map[int]zone.Type {
	return rt.levels[country]
}

// matchesFallback reports whether the tags match a non-administrative
// fallback rule.
func (rt *RuleTable) matchesFallback(tags map[string]string) bool {
	for key, values := range rt.fallback {
		if v, ok := tags[key]; ok {
			if _, ok := values[v]; ok {
				return true
			}
		}
	}
	return false
}
