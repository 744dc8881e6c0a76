// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package units

import (
	"fmt"
	"math"

	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/pkg/types"
)

// Costing constants for the utility heat exchangers.
const (
	hxU    = 0.5 // kW/m²/K
	hxLMTD = 30  // K fixed approach

	hxBaseCost      = 12_000 // $ at 100 m²
	hxBaseArea      = 100
	hxCostExponent  = 0.78
	hxInstallFactor = 2.2

	// coolingWaterTempK is the cooling water supply temperature (32 °C).
	coolingWaterTempK = 305.15
)

// HeatExchange heats or cools a stream to a fixed outlet temperature
// against a utility (the HXutility pattern: one process side, duty met by
// steam or cooling water).
//
// One inlet, one outlet.
type HeatExchange struct {
	unit

	outletK float64

	dutyKW float64
}

// NewHeatExchange builds a utility exchanger with the given outlet
// temperature set point (°C).
func NewHeatExchange(id string, outletTempC float64) (*HeatExchange, error) {
	if outletTempC <= -273.15 {
		return nil, fmt.Errorf("heat exchange %s: outlet temperature %.3g °C below absolute zero", id, outletTempC)
	}
	return &HeatExchange{
		unit:    newUnit(id, "HeatExchange", 1, 1),
		outletK: CtoK(outletTempC),
	}, nil
}

// RunBalance passes the composition through unchanged and sets the outlet
// temperature. Duty is sensible heat only: Σ nᵢ·Cpᵢ·ΔT.
func (h *HeatExchange) RunBalance() error {
	if err := h.requireBound(); err != nil {
		return err
	}
	in := h.ins[0]
	out := h.outs[0]

	out.CopyFlow(in)
	out.Phase = in.Phase
	out.T = h.outletK
	out.P = in.P

	dT := h.outletK - in.T
	var dutyKJH float64
	for _, sp := range in.Species() {
		p, err := thermo.Lookup(sp)
		if err != nil {
			continue
		}
		dutyKJH += in.Molar(sp) * p.LiquidCp * dT
	}
	h.dutyKW = dutyKJH / 3600
	return nil
}

// ComputeDesign sizes the heating surface from the absolute duty.
func (h *HeatExchange) ComputeDesign() {
	area := 0.0
	if hxLMTD > 0 {
		area = math.Abs(h.dutyKW) / (hxU * hxLMTD)
	}
	h.design["Heat transfer area"] = area
	h.design["Duty"] = h.dutyKW
}

// ComputeCost prices the exchanger and declares the utility demand: LP
// steam above ambient set points, cooling water below.
func (h *HeatExchange) ComputeCost() {
	area := h.design["Heat transfer area"]

	cost := 0.0
	if area > 0 {
		cost = hxBaseCost * math.Pow(area/hxBaseArea, hxCostExponent) * h.costScale
	}
	h.purchase["Heat exchanger"] = cost
	h.installed["Heat exchanger"] = cost * hxInstallFactor

	switch {
	case h.dutyKW > 0:
		h.setUtilities(types.UtilityDemand{
			Agent:       types.AgentLPSteam,
			DutyKW:      h.dutyKW,
			SupplyTempK: lpSteamTempK,
		})
	case h.dutyKW < 0:
		h.setUtilities(types.UtilityDemand{
			Agent:       types.AgentCoolingWater,
			DutyKW:      h.dutyKW,
			SupplyTempK: coolingWaterTempK,
		})
	default:
		h.setUtilities()
	}
}
