// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flowsheet

import (
	"fmt"

	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/internal/units"
	"github.com/hadiyati/biorefinery/pkg/types"
)

// Stream names of the standard lactic acid flowsheet.
const (
	StreamGlucoseFeed    = "glucose_feed"
	StreamSterilizedFeed = "sterilized_feed"
	StreamCooledFeed     = "cooled_feed"
	StreamBroth          = "fermentation_broth"
	StreamClarifiedBroth = "clarified_broth"
	StreamCellWaste      = "cell_waste"
	StreamConcentratedLA = "concentrated_LA"
	StreamWaterVapor     = "water_vapor"
	StreamLacticAcid     = "lactic_acid_product"
)

// BuildLacticAcid assembles the standard glucose-to-lactic-acid train:
// sterilizer, fermentation cooler, fermenter, solids centrifuge, vacuum
// evaporator, product cooler. The glucose feed rate is back-calculated
// from the annual production target and the fermentation conversion.
func BuildLacticAcid(cfg types.Config) (*Flowsheet, error) {
	if cfg.Fermentation.Conversion <= 0 {
		return nil, fmt.Errorf("lactic acid flowsheet: conversion must be positive to size the feed")
	}

	glucoseKgH := cfg.Production.ProductionRateKgH() / cfg.Fermentation.Conversion
	waterKgH := glucoseKgH * (1/cfg.Feed.GlucoseMassFraction - 1)

	feed := thermo.NewStream(StreamGlucoseFeed)
	feed.T = units.CtoK(cfg.Feed.TempC)
	feed.P = 101325
	if err := feed.SetMass(thermo.Glucose, glucoseKgH); err != nil {
		return nil, err
	}
	if err := feed.SetMass(thermo.Water, waterKgH); err != nil {
		return nil, err
	}

	f := New("lactic_acid")
	if err := f.AddFeed(feed); err != nil {
		return nil, err
	}

	h101, err := units.NewHeatExchange("H101", cfg.Feed.SterilizationTempC)
	if err != nil {
		return nil, err
	}
	h102, err := units.NewHeatExchange("H102", cfg.Fermentation.TempC)
	if err != nil {
		return nil, err
	}
	r201, err := units.NewFermentation("R201", cfg.Fermentation)
	if err != nil {
		return nil, err
	}
	s301, err := units.NewCentrifuge("S301", cfg.Centrifuge)
	if err != nil {
		return nil, err
	}
	e301, err := units.NewEvaporation("E301", cfg.Evaporation)
	if err != nil {
		return nil, err
	}
	h301, err := units.NewHeatExchange("H301", cfg.Feed.ProductTempC)
	if err != nil {
		return nil, err
	}

	sterilized := thermo.NewStream(StreamSterilizedFeed)
	cooled := thermo.NewStream(StreamCooledFeed)
	broth := thermo.NewStream(StreamBroth)
	clarified := thermo.NewStream(StreamClarifiedBroth)
	waste := thermo.NewStream(StreamCellWaste)
	concentrated := thermo.NewStream(StreamConcentratedLA)
	vapor := thermo.NewStream(StreamWaterVapor)
	product := thermo.NewStream(StreamLacticAcid)

	steps := []struct {
		u    units.ProcessUnit
		ins  []*thermo.Stream
		outs []*thermo.Stream
	}{
		{h101, []*thermo.Stream{feed}, []*thermo.Stream{sterilized}},
		{h102, []*thermo.Stream{sterilized}, []*thermo.Stream{cooled}},
		{r201, []*thermo.Stream{cooled}, []*thermo.Stream{broth}},
		{s301, []*thermo.Stream{broth}, []*thermo.Stream{clarified, waste}},
		{e301, []*thermo.Stream{clarified}, []*thermo.Stream{concentrated, vapor}},
		{h301, []*thermo.Stream{concentrated}, []*thermo.Stream{product}},
	}
	for _, st := range steps {
		st.u.SetCostIndex(cfg.Economics.CEPCI)
		if err := f.Connect(st.u, st.ins, st.outs); err != nil {
			return nil, err
		}
	}

	return f, nil
}
