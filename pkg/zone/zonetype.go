package zone

import (
	"encoding/json"
	"fmt"
)

// Type is the semantic type of a zone, ranked by nesting depth:
// finer types have lower rank. NonAdministrative sits outside the
// ranking and marks tag-matched but unrankable relations.
type Type int

// Zone type constants, from finest to coarsest.
const (
	NonAdministrative Type = iota
	Suburb
	CityDistrict
	City
	StateDistrict
	State
	CountryRegion
	Country
)

var typeNames = map[Type]string{
	NonAdministrative: "non_administrative",
	Suburb:            "suburb",
	CityDistrict:      "city_district",
	City:              "city",
	StateDistrict:     "state_district",
	State:             "state",
	CountryRegion:     "country_region",
	Country:           "country",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// ParseType resolves a type name as used in rule tables ("country",
// "state_district", ...).
func ParseType(name string) (Type, error) {
	t, ok := typesByName[name]
	if !ok {
		return NonAdministrative, fmt.Errorf("unknown zone type %q", name)
	}
	return t, nil
}

// Rankable reports whether the type participates in the nesting ranking.
func (t Type) Rankable() bool {
	return t != NonAdministrative
}

// Finer returns the type one rank finer than t, if one exists.
func (t Type) Finer() (Type, bool) {
	if !t.Rankable() || t == Suburb {
		return NonAdministrative, false
	}
	return t - 1, true
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("zone.Type(%d)", int(t))
}

// MarshalJSON encodes the type as its rule-table name.
func (t Type) MarshalJSON() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("cannot marshal unknown zone type %d", int(t))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a rule-table name into a type.
func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
