// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package thermo defines the chemical species set and the process Stream.
// Properties are fixed constants looked up from a small table; this is
// deliberately not a thermodynamic property package — no equations of
// state, no phase equilibrium.
package thermo

import (
	"fmt"
	"sort"
	"strings"
)

// Species identifies a chemical in the simulation's fixed species set.
type Species string

const (
	Water      Species = "Water"
	Glucose    Species = "Glucose"
	LacticAcid Species = "LacticAcid"
	Ethanol    Species = "Ethanol"

	// WWTsludge is a pseudo-species standing in for solid biomass and
	// waste cell mass (formula basis CH1.8O0.5N0.2).
	WWTsludge Species = "WWTsludge"
)

// Properties holds the fixed physical constants of one species.
type Properties struct {
	// MolarMass in kg/kmol.
	MolarMass float64

	// LiquidDensity in kg/m³ at process conditions.
	LiquidDensity float64

	// LiquidCp is the liquid heat capacity in kJ/(kmol·K).
	LiquidCp float64
}

// table holds the species property constants (ambient-pressure liquid
// basis; the dissolved solids use their pure-component densities).
var table = map[Species]Properties{
	Water:      {MolarMass: 18.015, LiquidDensity: 997, LiquidCp: 75.3},
	Glucose:    {MolarMass: 180.16, LiquidDensity: 1540, LiquidCp: 219},
	LacticAcid: {MolarMass: 90.08, LiquidDensity: 1206, LiquidCp: 192},
	Ethanol:    {MolarMass: 46.07, LiquidDensity: 789, LiquidCp: 112},
	WWTsludge:  {MolarMass: 25.0, LiquidDensity: 1100, LiquidCp: 35},
}

// All returns the species set in stable (sorted) order.
func All() []Species {
	out := make([]Species, 0, len(table))
	for sp := range table {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup returns the property record for sp.
func Lookup(sp Species) (Properties, error) {
	p, ok := table[sp]
	if !ok {
		return Properties{}, fmt.Errorf("unknown species %q", sp)
	}
	return p, nil
}

// IsKnown reports whether sp is in the species set.
func IsKnown(sp Species) bool {
	_, ok := table[sp]
	return ok
}

// Canonical resolves a species name case-insensitively. Config loaders
// lowercase map keys, so "water" must still resolve to Water.
func Canonical(name string) (Species, bool) {
	if IsKnown(Species(name)) {
		return Species(name), true
	}
	lower := strings.ToLower(name)
	for sp := range table {
		if strings.ToLower(string(sp)) == lower {
			return sp, true
		}
	}
	return "", false
}
