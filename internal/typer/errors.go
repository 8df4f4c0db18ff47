package typer

import "fmt"

// InvalidCountryError reports that no rule table exists for a country.
// It is a recoverable per-zone failure: the caller tallies it and moves on.
type InvalidCountryError struct {
	Country string
}

func (e *InvalidCountryError) Error() string {
	return fmt.Sprintf("no classification rules for country %q", e.Country)
}

// UnknownLevelError reports that a zone's admin level has no rule in its
// country's table and could not be resolved from the ancestor chain or
// the tag fallback. Level is 0 when the zone carries no admin level.
type UnknownLevelError struct {
	Level   int
	Country string
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("no rule for admin level %d in country %q", e.Level, e.Country)
}
