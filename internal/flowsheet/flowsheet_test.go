// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flowsheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/internal/units"
	"github.com/hadiyati/biorefinery/pkg/types"
)

func TestBuildLacticAcidDefaultConfig(t *testing.T) {
	f, err := BuildLacticAcid(types.DefaultConfig())
	require.NoError(t, err)

	require.Len(t, f.Units(), 6)
	ids := make([]string, 0, 6)
	for _, u := range f.Units() {
		ids = append(ids, u.ID())
	}
	assert.Equal(t, []string{"H101", "H102", "R201", "S301", "E301", "H301"}, ids)

	require.NotNil(t, f.Stream(StreamGlucoseFeed))
	assert.Nil(t, f.Stream("no_such_stream"))
}

func TestBuildLacticAcidRejectsZeroConversion(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Fermentation.Conversion = 0
	_, err := BuildLacticAcid(cfg)
	require.Error(t, err)
}

func TestBuildLacticAcidFeedSizing(t *testing.T) {
	cfg := types.DefaultConfig()
	f, err := BuildLacticAcid(cfg)
	require.NoError(t, err)

	feed := f.Stream(StreamGlucoseFeed)
	glucoseKgH := cfg.Production.ProductionRateKgH() / cfg.Fermentation.Conversion
	assert.InDelta(t, glucoseKgH, feed.MassOf(thermo.Glucose), 1e-6)

	// Feed is 20% w/w glucose.
	assert.InDelta(t, 0.20, feed.MassFraction(thermo.Glucose), 1e-9)
}

func TestSimulateLacticAcidTrain(t *testing.T) {
	cfg := types.DefaultConfig()
	f, err := BuildLacticAcid(cfg)
	require.NoError(t, err)

	res, err := f.Simulate(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Units, 6)
	require.Len(t, res.Streams, 9)

	// Product lactic acid: feed glucose through conversion, the 0.90
	// lactic mass fraction of reacted glucose, and the centrifuge split.
	glucoseKmol := cfg.Production.ProductionRateKgH() / cfg.Fermentation.Conversion / 180.16
	laKmol := glucoseKmol * cfg.Fermentation.Conversion * 0.90 * 180.0 / 90.0
	wantLA := laKmol * 90.08 * 0.99

	product := f.Stream(StreamLacticAcid)
	assert.InDelta(t, wantLA, product.MassOf(thermo.LacticAcid), 1e-3)

	// Steam at H101 and E301, cooling at H102 and H301, power at S301.
	require.Len(t, res.Demands, 5)
	assert.Positive(t, res.Utilities.HeatingKW)
	assert.Positive(t, res.Utilities.CoolingKW)
	assert.Positive(t, res.Utilities.PowerKW)

	assert.Positive(t, res.TotalPurchaseCost)
	assert.Greater(t, res.TotalInstalledCost, res.TotalPurchaseCost)
}

func TestSimulateAppliesCostIndex(t *testing.T) {
	base, err := BuildLacticAcid(types.DefaultConfig())
	require.NoError(t, err)
	baseRes, err := base.Simulate(context.Background())
	require.NoError(t, err)

	cfg := types.DefaultConfig()
	cfg.Economics.CEPCI = 2 * 607.5
	scaled, err := BuildLacticAcid(cfg)
	require.NoError(t, err)
	scaledRes, err := scaled.Simulate(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 2*baseRes.TotalPurchaseCost, scaledRes.TotalPurchaseCost, 1e-6)
	assert.InDelta(t, 2*baseRes.TotalInstalledCost, scaledRes.TotalInstalledCost, 1e-6)
}

func TestSimulateWaterBalanceAcrossEvaporator(t *testing.T) {
	f, err := BuildLacticAcid(types.DefaultConfig())
	require.NoError(t, err)
	_, err = f.Simulate(context.Background())
	require.NoError(t, err)

	in := f.Stream(StreamClarifiedBroth).Molar(thermo.Water)
	out := f.Stream(StreamConcentratedLA).Molar(thermo.Water) +
		f.Stream(StreamWaterVapor).Molar(thermo.Water)
	assert.InDelta(t, in, out, 1e-9)
}

func TestSimulateIsIdempotent(t *testing.T) {
	f, err := BuildLacticAcid(types.DefaultConfig())
	require.NoError(t, err)

	first, err := f.Simulate(context.Background())
	require.NoError(t, err)
	second, err := f.Simulate(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, first.TotalInstalledCost, second.TotalInstalledCost, 1e-9)
	assert.Len(t, second.Demands, len(first.Demands))

	last := len(first.Streams) - 1
	assert.InDelta(t, first.Streams[last].MassKgH, second.Streams[last].MassKgH, 1e-9)
}

func TestSimulateHonorsContextCancellation(t *testing.T) {
	f, err := BuildLacticAcid(types.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Simulate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSimulateEmptyFlowsheetFails(t *testing.T) {
	f := New("empty")
	_, err := f.Simulate(context.Background())
	require.Error(t, err)
}

func TestConnectRejectsUnproducedInlet(t *testing.T) {
	f := New("test")
	h, err := units.NewHeatExchange("H101", 121)
	require.NoError(t, err)

	orphan := thermo.NewStream("orphan")
	out := thermo.NewStream("out")
	err = f.Connect(h, []*thermo.Stream{orphan}, []*thermo.Stream{out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orphan")
}

func TestConnectRejectsDuplicateStreamName(t *testing.T) {
	f := New("test")
	feed := thermo.NewStream("feed")
	require.NoError(t, f.AddFeed(feed))

	h, err := units.NewHeatExchange("H101", 121)
	require.NoError(t, err)
	duplicate := thermo.NewStream("feed") // distinct object, same name
	err = f.Connect(h, []*thermo.Stream{feed}, []*thermo.Stream{duplicate})
	require.Error(t, err)
}

func TestAddFeedRejectsUnnamedStream(t *testing.T) {
	f := New("test")
	s := thermo.NewStream("")
	require.Error(t, f.AddFeed(s))
}
