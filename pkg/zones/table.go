// Package zones holds the static reference data used for zone scoring:
// sanctioned countries, active-conflict countries, high-risk maritime
// corridors and piracy-risk areas.
//
// A Table is immutable once built. It is loaded once at process start
// and injected into the zone calculator, so tests can substitute their
// own classification without touching package state.
package zones

import (
	"slices"
	"strings"
)

// Table is an immutable classification of countries and corridors.
type Table struct {
	sanctions []string
	conflict  []string
	maritime  []string
	piracy    []string
	names     map[string]string

	sanctionSet map[string]struct{}
	conflictSet map[string]struct{}
}

// Spec is the mutable description a Table is built from.
// It doubles as the YAML schema of a table override file.
type Spec struct {
	Sanctions []string          `yaml:"sanctions"`
	Conflict  []string          `yaml:"conflict"`
	Maritime  []string          `yaml:"maritime"`
	Piracy    []string          `yaml:"piracy"`
	Names     map[string]string `yaml:"names"`
}

// New builds a Table from spec. Country codes are normalized to upper
// case; the spec slices are copied so later edits do not leak in.
func New(spec Spec) *Table {
	t := &Table{
		sanctions:   normalizeCodes(spec.Sanctions),
		conflict:    normalizeCodes(spec.Conflict),
		maritime:    slices.Clone(spec.Maritime),
		piracy:      slices.Clone(spec.Piracy),
		names:       make(map[string]string, len(spec.Names)),
		sanctionSet: make(map[string]struct{}),
		conflictSet: make(map[string]struct{}),
	}
	for code, name := range spec.Names {
		t.names[NormalizeCode(code)] = name
	}
	for _, c := range t.sanctions {
		t.sanctionSet[c] = struct{}{}
	}
	for _, c := range t.conflict {
		t.conflictSet[c] = struct{}{}
	}
	return t
}

// NormalizeCode trims and upper-cases an ISO country code.
// Malformed codes are returned as-is and simply match nothing.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if n := NormalizeCode(c); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// IsSanctioned reports whether the country is under primary sanctions.
func (t *Table) IsSanctioned(code string) bool {
	_, ok := t.sanctionSet[NormalizeCode(code)]
	return ok
}

// InConflict reports whether the country is an active conflict zone.
func (t *Table) InConflict(code string) bool {
	_, ok := t.conflictSet[NormalizeCode(code)]
	return ok
}

// MatchCorridor returns the first high-risk corridor whose name appears,
// case-insensitively, inside the transit point label.
func (t *Table) MatchCorridor(transitPoint string) (string, bool) {
	label := strings.ToLower(transitPoint)
	for _, corridor := range t.maritime {
		if strings.Contains(label, strings.ToLower(corridor)) {
			return corridor, true
		}
	}
	return "", false
}

// CountryName renders a country code for display, falling back to the
// raw code when the name is unknown.
func (t *Table) CountryName(code string) string {
	if name, ok := t.names[NormalizeCode(code)]; ok {
		return name
	}
	return code
}

func (t *Table) Sanctions() []string { return slices.Clone(t.sanctions) }
func (t *Table) Conflict() []string  { return slices.Clone(t.conflict) }
func (t *Table) Maritime() []string  { return slices.Clone(t.maritime) }

// Piracy returns the piracy-risk areas. They are published for display
// only and are not consulted by zone scoring.
func (t *Table) Piracy() []string { return slices.Clone(t.piracy) }
