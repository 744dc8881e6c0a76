// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hadiyati/biorefinery/pkg/types"
)

func testPrices() types.UtilityPrices {
	return types.UtilityPrices{
		ElectricityPerKWh:  0.0685,
		LPSteamPerKg:       0.018,
		LPSteamLatentKJKg:  2114,
		CoolingWaterPerKWh: 0.0005,
	}
}

func TestAnnualCostSteam(t *testing.T) {
	p := NewPricer(testPrices())
	d := types.UtilityDemand{Agent: types.AgentLPSteam, DutyKW: 1000}

	// 1000 kW × 3600 / 2114 kJ/kg = 1702.93 kg/hr of steam.
	steamKgH := 1000 * 3600 / 2114.0
	want := steamKgH * 7920 * 0.018
	assert.InDelta(t, want, p.AnnualCost(d, 7920), 1e-6)
}

func TestAnnualCostSteamZeroLatentIsZero(t *testing.T) {
	prices := testPrices()
	prices.LPSteamLatentKJKg = 0
	p := NewPricer(prices)
	d := types.UtilityDemand{Agent: types.AgentLPSteam, DutyKW: 1000}
	assert.Zero(t, p.AnnualCost(d, 7920))
}

func TestAnnualCostCoolingWaterUsesAbsoluteDuty(t *testing.T) {
	p := NewPricer(testPrices())
	d := types.UtilityDemand{Agent: types.AgentCoolingWater, DutyKW: -500}
	assert.InDelta(t, 500*7920*0.0005, p.AnnualCost(d, 7920), 1e-9)
}

func TestAnnualCostElectricity(t *testing.T) {
	p := NewPricer(testPrices())
	d := types.UtilityDemand{Agent: types.AgentElectricity, DutyKW: 120}
	assert.InDelta(t, 120*7920*0.0685, p.AnnualCost(d, 7920), 1e-9)
}

func TestAnnualCostUnknownAgentIsZero(t *testing.T) {
	p := NewPricer(testPrices())
	d := types.UtilityDemand{Agent: types.UtilityAgent("chilled_brine"), DutyKW: 100}
	assert.Zero(t, p.AnnualCost(d, 7920))
}

func TestTotalAnnualCostSums(t *testing.T) {
	p := NewPricer(testPrices())
	demands := []types.UtilityDemand{
		{Agent: types.AgentLPSteam, DutyKW: 1000},
		{Agent: types.AgentCoolingWater, DutyKW: -500},
		{Agent: types.AgentElectricity, DutyKW: 120},
	}
	want := p.AnnualCost(demands[0], 7920) +
		p.AnnualCost(demands[1], 7920) +
		p.AnnualCost(demands[2], 7920)
	assert.InDelta(t, want, p.TotalAnnualCost(demands, 7920), 1e-9)
}

func TestSummarize(t *testing.T) {
	demands := []types.UtilityDemand{
		{Agent: types.AgentLPSteam, DutyKW: 7906},
		{Agent: types.AgentLPSteam, DutyKW: 190},
		{Agent: types.AgentCoolingWater, DutyKW: -210},
		{Agent: types.AgentElectricity, DutyKW: 55},
	}
	s := Summarize(demands)
	assert.InDelta(t, 8096.0, s.HeatingKW, 1e-9)
	assert.InDelta(t, 210.0, s.CoolingKW, 1e-9)
	assert.InDelta(t, 55.0, s.PowerKW, 1e-9)
}
