// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package units implements the unit operations of the lactic acid
// flowsheet: feed conditioning heat exchange, fermentation, solids
// separation, and vacuum evaporation.
//
// Every unit implements ProcessUnit: a mass-balance step, a sizing step,
// and a costing step, invoked in that order by the flowsheet runner. The
// steps are pure arithmetic over the bound streams and the parameters
// fixed at construction; rerunning them overwrites the previous results.
package units

import (
	"fmt"

	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/pkg/types"
)

// ProcessUnit is the capability set shared by all unit operations.
type ProcessUnit interface {
	// ID is the flowsheet identifier (e.g. "R201").
	ID() string

	// Kind names the unit type (e.g. "Fermentation").
	Kind() string

	// Bind attaches the inbound and outbound streams. The number of
	// streams must match the unit's fixed arity.
	Bind(ins, outs []*thermo.Stream) error

	// Ins and Outs return the bound streams.
	Ins() []*thermo.Stream
	Outs() []*thermo.Stream

	// RunBalance computes the outbound stream compositions and conditions
	// from the inbound streams.
	RunBalance() error

	// ComputeDesign populates the design results from the balanced streams.
	ComputeDesign()

	// ComputeCost populates purchase/installed costs and utility demands
	// from the design results.
	ComputeCost()

	// SetCostIndex rescales the cost correlations from their quoted
	// CEPCI basis to the given index. Non-positive values are ignored.
	SetCostIndex(cepci float64)

	// DesignResults maps design-metric name to value.
	DesignResults() map[string]float64

	// PurchaseCosts and InstalledCosts map equipment name to USD.
	PurchaseCosts() map[string]float64
	InstalledCosts() map[string]float64

	// UtilityDemands lists the unit's declared utility loads.
	UtilityDemands() []types.UtilityDemand
}

// CtoK converts Celsius to Kelvin.
func CtoK(c float64) float64 { return c + 273.15 }

// costBasisCEPCI is the Chemical Engineering Plant Cost Index the cost
// correlations are quoted at (2019 annual).
const costBasisCEPCI = 607.5

// unit carries the identity, stream slots, and result mappings shared by
// the concrete units.
type unit struct {
	id   string
	kind string

	nIns  int
	nOuts int

	ins  []*thermo.Stream
	outs []*thermo.Stream

	design    map[string]float64
	purchase  map[string]float64
	installed map[string]float64
	utilities []types.UtilityDemand

	// costScale rescales the correlations from costBasisCEPCI to the
	// configured cost index.
	costScale float64
}

func newUnit(id, kind string, nIns, nOuts int) unit {
	return unit{
		id:        id,
		kind:      kind,
		nIns:      nIns,
		nOuts:     nOuts,
		design:    make(map[string]float64),
		purchase:  make(map[string]float64),
		installed: make(map[string]float64),
		costScale: 1,
	}
}

func (u *unit) ID() string   { return u.id }
func (u *unit) Kind() string { return u.kind }

func (u *unit) Bind(ins, outs []*thermo.Stream) error {
	if len(ins) != u.nIns {
		return fmt.Errorf("%s: %d inbound streams bound, want %d", u.id, len(ins), u.nIns)
	}
	if len(outs) != u.nOuts {
		return fmt.Errorf("%s: %d outbound streams bound, want %d", u.id, len(outs), u.nOuts)
	}
	u.ins = ins
	u.outs = outs
	return nil
}

func (u *unit) Ins() []*thermo.Stream  { return u.ins }
func (u *unit) Outs() []*thermo.Stream { return u.outs }

func (u *unit) DesignResults() map[string]float64  { return u.design }
func (u *unit) PurchaseCosts() map[string]float64  { return u.purchase }
func (u *unit) InstalledCosts() map[string]float64 { return u.installed }

func (u *unit) UtilityDemands() []types.UtilityDemand { return u.utilities }

func (u *unit) SetCostIndex(cepci float64) {
	if cepci > 0 {
		u.costScale = cepci / costBasisCEPCI
	}
}

// setUtilities replaces the demand list so repeated costing passes do not
// accumulate duplicates.
func (u *unit) setUtilities(demands ...types.UtilityDemand) {
	u.utilities = demands
}

// requireBound guards the balance step against unbound stream slots.
func (u *unit) requireBound() error {
	if len(u.ins) != u.nIns || len(u.outs) != u.nOuts {
		return fmt.Errorf("%s: streams not bound", u.id)
	}
	return nil
}

// Result flattens a unit's mappings into the persistable record.
func Result(p ProcessUnit) types.UnitResult {
	design := make(map[string]float64, len(p.DesignResults()))
	for k, v := range p.DesignResults() {
		design[k] = v
	}
	var purchase, installed float64
	for _, v := range p.PurchaseCosts() {
		purchase += v
	}
	for _, v := range p.InstalledCosts() {
		installed += v
	}
	return types.UnitResult{
		ID:            p.ID(),
		Kind:          p.Kind(),
		Design:        design,
		PurchaseCost:  purchase,
		InstalledCost: installed,
		Utilities:     append([]types.UtilityDemand(nil), p.UtilityDemands()...),
	}
}
