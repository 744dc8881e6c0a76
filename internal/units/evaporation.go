// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package units

import (
	"fmt"
	"math"

	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/pkg/types"
)

// Sizing and costing constants for the vacuum evaporator.
const (
	evapResidenceHours = 2

	// waterHvapKJMol is the latent heat of vaporization of water.
	waterHvapKJMol = 40.66

	evapU    = 0.5 // kW/m²/K overall heat transfer coefficient
	evapLMTD = 30  // K log-mean temperature difference

	evapVesselBaseCost   = 80_000 // $ at 50 m³
	evapVesselBaseVolume = 50
	evapVesselExponent   = 0.6
	evapHXBaseCost       = 15_000 // $ at 100 m²
	evapHXBaseArea       = 100
	evapHXExponent       = 0.65
	evapInstallFactor    = 3.2

	// lpSteamTempK is the low-pressure steam supply temperature (150 °C).
	lpSteamTempK = 423.15
)

// Evaporation removes a fixed fraction of the inlet water under vacuum,
// splitting the feed into a concentrated liquid and a pure water vapor.
//
// One inlet (feed), two outlets (concentrate, vapor).
type Evaporation struct {
	unit

	v     float64 // fraction of water evaporated
	pOp   float64 // operating pressure, Pa
	tempK float64

	dutyKW float64
}

// NewEvaporation builds the evaporator from its operating parameters.
func NewEvaporation(id string, cfg types.EvaporationConfig) (*Evaporation, error) {
	if cfg.WaterRemovalFraction < 0 || cfg.WaterRemovalFraction > 1 {
		return nil, fmt.Errorf("evaporation %s: water removal fraction %.3g outside [0,1]",
			id, cfg.WaterRemovalFraction)
	}
	if cfg.PressureKPa <= 0 {
		return nil, fmt.Errorf("evaporation %s: pressure %.3g kPa, must be positive", id, cfg.PressureKPa)
	}
	return &Evaporation{
		unit:  newUnit(id, "Evaporation", 1, 2),
		v:     cfg.WaterRemovalFraction,
		pOp:   cfg.PressureKPa * 1000,
		tempK: CtoK(cfg.TempC),
	}, nil
}

// RunBalance splits the inlet water between concentrate and vapor. The
// two outlet water flows sum to the inlet water flow exactly; every other
// species passes through to the concentrate unchanged.
func (e *Evaporation) RunBalance() error {
	if err := e.requireBound(); err != nil {
		return err
	}
	feed := e.ins[0]
	concentrate := e.outs[0]
	vapor := e.outs[1]

	waterEvaporated := feed.Molar(thermo.Water) * e.v

	concentrate.CopyFlow(feed)
	concentrate.AddMolar(thermo.Water, -waterEvaporated)
	concentrate.Phase = thermo.PhaseLiquid
	concentrate.T = e.tempK
	concentrate.P = e.pOp

	vapor.Empty()
	vapor.SetMolar(thermo.Water, waterEvaporated)
	vapor.Phase = thermo.PhaseGas
	vapor.T = e.tempK
	vapor.P = e.pOp
	return nil
}

// ComputeDesign sizes the vessel on a 2-hour hold-up and the heating
// surface from the evaporation duty.
func (e *Evaporation) ComputeDesign() {
	feed := e.ins[0]
	vapor := e.outs[1]

	e.design["Evaporator volume"] = feed.VolumetricFlow() * evapResidenceHours

	// kmol/hr × kJ/mol × 1000 mol/kmol ÷ 3600 s/hr → kW.
	q := vapor.Molar(thermo.Water) * waterHvapKJMol * 1000 / 3600

	area := 0.0
	if evapLMTD > 0 {
		area = q / (evapU * evapLMTD)
	}
	e.design["Heat transfer area"] = area
	e.dutyKW = q
}

// ComputeCost prices the vessel and the heating surface, then declares
// the low-pressure steam demand sized to the evaporation duty. Pricing
// the steam is the utility subsystem's job, not this unit's.
func (e *Evaporation) ComputeCost() {
	volume := e.design["Evaporator volume"]
	area := e.design["Heat transfer area"]

	vesselCost := 0.0
	if volume > 0 {
		vesselCost = evapVesselBaseCost * math.Pow(volume/evapVesselBaseVolume, evapVesselExponent)
	}
	hxCost := 0.0
	if area > 0 {
		hxCost = evapHXBaseCost * math.Pow(area/evapHXBaseArea, evapHXExponent)
	}

	totalPurchase := (vesselCost + hxCost) * e.costScale
	e.purchase["Evaporator"] = totalPurchase
	e.installed["Evaporator"] = totalPurchase * evapInstallFactor

	e.setUtilities(types.UtilityDemand{
		Agent:       types.AgentLPSteam,
		DutyKW:      e.dutyKW,
		SupplyTempK: lpSteamTempK,
	})
}
