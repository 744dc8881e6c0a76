// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package units

import (
	"fmt"
	"math"

	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/pkg/types"
)

// Costing constants for the solids centrifuge.
const (
	centrifugeBaseCost      = 250_000 // $ at 40 m³/hr feed
	centrifugeBaseFlow      = 40
	centrifugeCostExponent  = 0.6
	centrifugeInstallFactor = 2.0
)

// Centrifuge splits the fermentation broth into a clarified liquid and a
// solids-rich waste by per-species split fractions (fraction to liquid).
// A species without a configured split reports entirely to the solids.
//
// One inlet (broth), two outlets (clarified liquid, solids).
type Centrifuge struct {
	unit

	splits        map[thermo.Species]float64
	specificPower float64 // kWh per m³ of feed
}

// NewCentrifuge builds the separator from its split table. Splits must
// name known species and lie in [0,1].
func NewCentrifuge(id string, cfg types.CentrifugeConfig) (*Centrifuge, error) {
	splits := make(map[thermo.Species]float64, len(cfg.Splits))
	for name, frac := range cfg.Splits {
		// Canonical lookup: config loaders lowercase map keys.
		sp, ok := thermo.Canonical(name)
		if !ok {
			return nil, fmt.Errorf("centrifuge %s: split for unknown species %q", id, name)
		}
		if frac < 0 || frac > 1 {
			return nil, fmt.Errorf("centrifuge %s: split %.3g for %s outside [0,1]", id, frac, name)
		}
		splits[sp] = frac
	}
	if cfg.SpecificPowerKWhM3 < 0 {
		return nil, fmt.Errorf("centrifuge %s: specific power %.3g, must be non-negative", id, cfg.SpecificPowerKWhM3)
	}
	return &Centrifuge{
		unit:          newUnit(id, "Centrifuge", 1, 2),
		splits:        splits,
		specificPower: cfg.SpecificPowerKWhM3,
	}, nil
}

// RunBalance partitions every species between the two outlets. The two
// outlet flows of each species sum to the inlet flow exactly.
func (c *Centrifuge) RunBalance() error {
	if err := c.requireBound(); err != nil {
		return err
	}
	feed := c.ins[0]
	liquid := c.outs[0]
	solids := c.outs[1]

	liquid.Empty()
	solids.Empty()
	for _, sp := range feed.Species() {
		n := feed.Molar(sp)
		toLiquid := n * c.splits[sp]
		liquid.SetMolar(sp, toLiquid)
		solids.SetMolar(sp, n-toLiquid)
	}

	liquid.Phase = thermo.PhaseLiquid
	liquid.T = feed.T
	liquid.P = feed.P

	solids.Phase = thermo.PhaseSolid
	solids.T = feed.T
	solids.P = feed.P
	return nil
}

// ComputeDesign records the feed throughput and the motor power drawn
// from it.
func (c *Centrifuge) ComputeDesign() {
	feed := c.ins[0]
	throughput := feed.VolumetricFlow()

	c.design["Throughput"] = throughput
	c.design["Motor power"] = throughput * c.specificPower
}

// ComputeCost applies power-law scaling on feed throughput and declares
// the motor's electricity demand.
func (c *Centrifuge) ComputeCost() {
	throughput := c.design["Throughput"]

	cost := 0.0
	if throughput > 0 {
		cost = centrifugeBaseCost * math.Pow(throughput/centrifugeBaseFlow, centrifugeCostExponent) * c.costScale
	}
	c.purchase["Solids centrifuge"] = cost
	c.installed["Solids centrifuge"] = cost * centrifugeInstallFactor

	if power := c.design["Motor power"]; power > 0 {
		c.setUtilities(types.UtilityDemand{
			Agent:  types.AgentElectricity,
			DutyKW: power,
		})
	} else {
		c.setUtilities()
	}
}
