// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package utility prices the utility demands declared by process units.
// Units declare loads (agent, duty, supply temperature); this package
// turns them into annual costs and plant-level duty totals.
package utility

import (
	"math"

	"github.com/hadiyati/biorefinery/pkg/types"
)

// Pricer converts utility demands to annual operating cost.
type Pricer struct {
	prices types.UtilityPrices
}

// NewPricer returns a Pricer over the configured agent prices.
func NewPricer(prices types.UtilityPrices) Pricer {
	return Pricer{prices: prices}
}

// AnnualCost prices a single demand over the plant's annual operating
// hours. Steam is priced by mass through the configured latent heat;
// cooling water and electricity are priced per kWh of duty.
func (p Pricer) AnnualCost(d types.UtilityDemand, operatingHours float64) float64 {
	switch d.Agent {
	case types.AgentLPSteam:
		if p.prices.LPSteamLatentKJKg <= 0 {
			return 0
		}
		steamKgH := d.DutyKW * 3600 / p.prices.LPSteamLatentKJKg
		return steamKgH * operatingHours * p.prices.LPSteamPerKg
	case types.AgentCoolingWater:
		return math.Abs(d.DutyKW) * operatingHours * p.prices.CoolingWaterPerKWh
	case types.AgentElectricity:
		return d.DutyKW * operatingHours * p.prices.ElectricityPerKWh
	default:
		return 0
	}
}

// TotalAnnualCost prices a demand list over the annual operating hours.
func (p Pricer) TotalAnnualCost(demands []types.UtilityDemand, operatingHours float64) float64 {
	total := 0.0
	for _, d := range demands {
		total += p.AnnualCost(d, operatingHours)
	}
	return total
}

// Summary aggregates plant-level duties in kW.
type Summary struct {
	// HeatingKW is the total heating duty (steam loads).
	HeatingKW float64

	// CoolingKW is the total cooling duty, reported positive.
	CoolingKW float64

	// PowerKW is the total electricity draw.
	PowerKW float64
}

// Summarize totals the demand list by agent class.
func Summarize(demands []types.UtilityDemand) Summary {
	var s Summary
	for _, d := range demands {
		switch d.Agent {
		case types.AgentLPSteam:
			s.HeatingKW += d.DutyKW
		case types.AgentCoolingWater:
			s.CoolingKW += math.Abs(d.DutyKW)
		case types.AgentElectricity:
			s.PowerKW += d.DutyKW
		}
	}
	return s
}
