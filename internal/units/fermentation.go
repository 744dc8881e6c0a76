// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package units

import (
	"fmt"
	"math"

	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/pkg/types"
)

// Reaction and costing constants for the fermentation reactor. Molar
// masses are the rounded values the mass-distribution model is defined
// on, not the property-table values.
const (
	glucoseMW = 180 // kg/kmol
	biomassMW = 25  // kg/kmol, assumed for CH1.8O0.5N0.2 sludge
	ethanolMW = 46  // kg/kmol
	lacticMW  = 90  // kg/kmol

	// ethanolFraction is the fixed byproduct share of reacted glucose mass.
	ethanolFraction = 0.02

	reactorUnitVolumeM3  = 100
	reactorBaseCost      = 200_000 // $ for one 100 m³ reactor
	reactorCostExponent  = 0.65
	reactorInstallFactor = 2.8
)

// Fermentation converts a glucose/water feed into lactic acid broth:
// glucose consumed at the configured conversion, its mass distributed to
// biomass, ethanol, and lactic acid by fixed mass fractions.
//
// One inlet (feed), one outlet (broth).
type Fermentation struct {
	unit

	tau          float64
	conversion   float64
	biomassYield float64
	tempK        float64
}

// NewFermentation builds the reactor from its operating parameters.
// Parameters outside their valid ranges are rejected here so the balance
// step can never produce negative product flows.
func NewFermentation(id string, cfg types.FermentationConfig) (*Fermentation, error) {
	if cfg.TauHours <= 0 {
		return nil, fmt.Errorf("fermentation %s: tau %.3g h, must be positive", id, cfg.TauHours)
	}
	if cfg.Conversion < 0 || cfg.Conversion > 1 {
		return nil, fmt.Errorf("fermentation %s: conversion %.3g outside [0,1]", id, cfg.Conversion)
	}
	if cfg.BiomassYield < 0 || cfg.BiomassYield+ethanolFraction > 1 {
		return nil, fmt.Errorf("fermentation %s: biomass yield %.3g outside [0,%.2f]",
			id, cfg.BiomassYield, 1-ethanolFraction)
	}
	return &Fermentation{
		unit:         newUnit(id, "Fermentation", 1, 1),
		tau:          cfg.TauHours,
		conversion:   cfg.Conversion,
		biomassYield: cfg.BiomassYield,
		tempK:        CtoK(cfg.TempC),
	}, nil
}

// RunBalance consumes glucose and distributes the reacted mass across the
// three products. The three mass fractions sum to one, so reacted glucose
// mass equals product mass exactly.
func (f *Fermentation) RunBalance() error {
	if err := f.requireBound(); err != nil {
		return err
	}
	feed := f.ins[0]
	broth := f.outs[0]

	broth.CopyFlow(feed)

	glucoseReacted := feed.Molar(thermo.Glucose) * f.conversion
	massReacted := glucoseReacted * glucoseMW

	biomassMass := massReacted * f.biomassYield
	ethanolMass := massReacted * ethanolFraction
	lacticMass := massReacted * (1 - f.biomassYield - ethanolFraction)

	broth.AddMolar(thermo.Glucose, -glucoseReacted)
	broth.AddMolar(thermo.LacticAcid, lacticMass/lacticMW)
	broth.AddMolar(thermo.WWTsludge, biomassMass/biomassMW)
	broth.AddMolar(thermo.Ethanol, ethanolMass/ethanolMW)

	broth.Phase = thermo.PhaseLiquid
	broth.T = f.tempK
	broth.P = feed.P
	return nil
}

// ComputeDesign sizes a bank of 100 m³ reactors from the broth volumetric
// flow and the batch residence time.
func (f *Fermentation) ComputeDesign() {
	broth := f.outs[0]

	totalVolume := broth.VolumetricFlow() * f.tau
	nReactors := math.Ceil(totalVolume / reactorUnitVolumeM3)

	f.design["Reactor volume"] = totalVolume
	f.design["Number of reactors"] = nReactors
}

// ComputeCost applies six-tenths-rule scaling per reactor. When no
// reactors are needed (zero flow) the per-reactor volume falls back to
// the total volume rather than dividing by zero.
func (f *Fermentation) ComputeCost() {
	volume := f.design["Reactor volume"]
	n := f.design["Number of reactors"]

	perReactor := volume
	if n > 0 {
		perReactor = volume / n
	}

	unitCost := reactorBaseCost * math.Pow(perReactor/reactorUnitVolumeM3, reactorCostExponent)
	totalPurchase := unitCost * n * f.costScale

	f.purchase["Fermentation reactors"] = totalPurchase
	f.installed["Fermentation reactors"] = totalPurchase * reactorInstallFactor
}
