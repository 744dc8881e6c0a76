// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/pkg/types"
)

func evapCfg() types.EvaporationConfig {
	return types.EvaporationConfig{
		WaterRemovalFraction: 0.7,
		PressureKPa:          10,
		TempC:                80,
	}
}

func bindEvaporation(t *testing.T, e *Evaporation) (feed, concentrate, vapor *thermo.Stream) {
	t.Helper()
	feed = thermo.NewStream("feed")
	concentrate = thermo.NewStream("concentrate")
	vapor = thermo.NewStream("vapor")
	require.NoError(t, e.Bind([]*thermo.Stream{feed}, []*thermo.Stream{concentrate, vapor}))
	return feed, concentrate, vapor
}

func TestNewEvaporationRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.EvaporationConfig)
	}{
		{"fraction above one", func(c *types.EvaporationConfig) { c.WaterRemovalFraction = 1.01 }},
		{"negative fraction", func(c *types.EvaporationConfig) { c.WaterRemovalFraction = -0.1 }},
		{"zero pressure", func(c *types.EvaporationConfig) { c.PressureKPa = 0 }},
		{"negative pressure", func(c *types.EvaporationConfig) { c.PressureKPa = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := evapCfg()
			tt.mutate(&cfg)
			_, err := NewEvaporation("E301", cfg)
			require.Error(t, err)
		})
	}
}

func TestEvaporationBalanceScenario(t *testing.T) {
	// 1000 kmol/hr water at V = 0.7.
	e, err := NewEvaporation("E301", evapCfg())
	require.NoError(t, err)
	feed, concentrate, vapor := bindEvaporation(t, e)
	feed.SetMolar(thermo.Water, 1000)
	feed.SetMolar(thermo.LacticAcid, 162)

	require.NoError(t, e.RunBalance())

	assert.InDelta(t, 700.0, vapor.Molar(thermo.Water), 1e-9)
	assert.InDelta(t, 300.0, concentrate.Molar(thermo.Water), 1e-9)
	assert.InDelta(t, 162.0, concentrate.Molar(thermo.LacticAcid), 1e-9)
	assert.Zero(t, vapor.Molar(thermo.LacticAcid))

	assert.Equal(t, thermo.PhaseGas, vapor.Phase)
	assert.Equal(t, thermo.PhaseLiquid, concentrate.Phase)
	assert.InDelta(t, CtoK(80), vapor.T, 1e-12)
	assert.InDelta(t, 10_000.0, concentrate.P, 1e-12)
}

func TestEvaporationWaterConservation(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 0.7, 1} {
		cfg := evapCfg()
		cfg.WaterRemovalFraction = v
		e, err := NewEvaporation("E301", cfg)
		require.NoError(t, err)
		feed, concentrate, vapor := bindEvaporation(t, e)
		feed.SetMolar(thermo.Water, 431.7)

		require.NoError(t, e.RunBalance())
		sum := concentrate.Molar(thermo.Water) + vapor.Molar(thermo.Water)
		assert.InDelta(t, 431.7, sum, 1e-9, "V %v", v)
	}
}

func TestEvaporationZeroRemovalBoundary(t *testing.T) {
	cfg := evapCfg()
	cfg.WaterRemovalFraction = 0
	e, err := NewEvaporation("E301", cfg)
	require.NoError(t, err)
	feed, concentrate, vapor := bindEvaporation(t, e)
	feed.SetMolar(thermo.Water, 1000)

	require.NoError(t, e.RunBalance())
	e.ComputeDesign()
	e.ComputeCost()

	assert.InDelta(t, 1000.0, concentrate.Molar(thermo.Water), 1e-12)
	assert.Zero(t, vapor.MassFlow())
	assert.Zero(t, e.DesignResults()["Heat transfer area"])
}

func TestEvaporationDesignScenario(t *testing.T) {
	e, err := NewEvaporation("E301", evapCfg())
	require.NoError(t, err)
	feed, _, _ := bindEvaporation(t, e)
	feed.SetMolar(thermo.Water, 1000)

	require.NoError(t, e.RunBalance())
	e.ComputeDesign()

	// Q = 700 kmol/hr × 40.66 kJ/mol × 1000 / 3600 = 7906.11 kW.
	q := 700 * 40.66 * 1000 / 3600.0
	assert.InDelta(t, q/(0.5*30), e.DesignResults()["Heat transfer area"], 1e-6)
	assert.InDelta(t, feed.VolumetricFlow()*2, e.DesignResults()["Evaporator volume"], 1e-9)
}

func TestEvaporationCostAndSteamDemand(t *testing.T) {
	e, err := NewEvaporation("E301", evapCfg())
	require.NoError(t, err)
	feed, _, _ := bindEvaporation(t, e)
	feed.SetMolar(thermo.Water, 1000)

	require.NoError(t, e.RunBalance())
	e.ComputeDesign()
	e.ComputeCost()

	volume := e.DesignResults()["Evaporator volume"]
	area := e.DesignResults()["Heat transfer area"]
	want := 80000*math.Pow(volume/50, 0.6) + 15000*math.Pow(area/100, 0.65)
	assert.InDelta(t, want, e.PurchaseCosts()["Evaporator"], 1e-6)
	assert.InDelta(t, want*3.2, e.InstalledCosts()["Evaporator"], 1e-6)

	demands := e.UtilityDemands()
	require.Len(t, demands, 1)
	assert.Equal(t, types.AgentLPSteam, demands[0].Agent)
	assert.InDelta(t, 700*40.66*1000/3600.0, demands[0].DutyKW, 1e-6)
	assert.InDelta(t, 423.15, demands[0].SupplyTempK, 1e-12)
}

func TestEvaporationIdempotent(t *testing.T) {
	e, err := NewEvaporation("E301", evapCfg())
	require.NoError(t, err)
	feed, concentrate, vapor := bindEvaporation(t, e)
	feed.SetMolar(thermo.Water, 1000)

	require.NoError(t, e.RunBalance())
	e.ComputeDesign()
	e.ComputeCost()
	require.NoError(t, e.RunBalance())
	e.ComputeDesign()
	e.ComputeCost()

	assert.InDelta(t, 700.0, vapor.Molar(thermo.Water), 1e-12)
	assert.InDelta(t, 300.0, concentrate.Molar(thermo.Water), 1e-12)
	assert.Len(t, e.UtilityDemands(), 1)
}
