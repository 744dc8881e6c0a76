// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero annual target", func(c *Config) { c.Production.AnnualTargetMT = 0 }},
		{"operating days above 365", func(c *Config) { c.Production.OperatingDays = 400 }},
		{"glucose fraction at one", func(c *Config) { c.Feed.GlucoseMassFraction = 1 }},
		{"conversion above one", func(c *Config) { c.Fermentation.Conversion = 1.1 }},
		{"biomass yield above cap", func(c *Config) { c.Fermentation.BiomassYield = 0.99 }},
		{"negative split", func(c *Config) { c.Centrifuge.Splits["Water"] = -0.5 }},
		{"removal fraction above one", func(c *Config) { c.Evaporation.WaterRemovalFraction = 1.2 }},
		{"zero evaporator pressure", func(c *Config) { c.Evaporation.PressureKPa = 0 }},
		{"end year before start year", func(c *Config) { c.Economics.EndYear = 2020 }},
		{"tax rate at one", func(c *Config) { c.Economics.IncomeTaxRate = 1 }},
		{"zero latent heat", func(c *Config) { c.Economics.Utilities.LPSteamLatentKJKg = 0 }},
		{"schedule does not sum to one", func(c *Config) { c.Economics.ConstructionSchedule = []float64{0.4, 0.4} }},
		{"empty schedule", func(c *Config) { c.Economics.ConstructionSchedule = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestProductionDerivedRates(t *testing.T) {
	p := ProductionConfig{AnnualTargetMT: 50000, OperatingDays: 330}
	assert.InDelta(t, 7920.0, p.OperatingHours(), 1e-12)
	assert.InDelta(t, 50000*1000/7920.0, p.ProductionRateKgH(), 1e-9)
}

func TestDefaultConfigBaseline(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 0.90, cfg.Fermentation.Conversion, 1e-12)
	assert.InDelta(t, 0.70, cfg.Evaporation.WaterRemovalFraction, 1e-12)
	assert.Equal(t, "runs", cfg.Store.Dir)
	assert.Len(t, cfg.Economics.ConstructionSchedule, 2)
}
