// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flowsheet sequences unit operations into a simulated process.
// The runner is a straight topological pass over an acyclic unit list —
// no recycle streams, so no convergence loop. Each unit's balance step
// runs only after every one of its inbound streams has been produced by
// an upstream unit or declared as a plant feed.
package flowsheet

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/internal/units"
	"github.com/hadiyati/biorefinery/internal/utility"
	"github.com/hadiyati/biorefinery/pkg/types"
)

// Flowsheet is an ordered chain of bound unit operations and the streams
// joining them.
type Flowsheet struct {
	name string
	log  logrus.FieldLogger

	units   []units.ProcessUnit
	streams map[string]*thermo.Stream
	order   []string

	// produced tracks which streams are feeds or upstream outlets, for
	// the connectivity check in Connect.
	produced map[string]bool
}

// New returns an empty flowsheet.
func New(name string) *Flowsheet {
	return &Flowsheet{
		name:     name,
		log:      logrus.StandardLogger(),
		streams:  make(map[string]*thermo.Stream),
		produced: make(map[string]bool),
	}
}

// SetLogger replaces the progress logger (default: logrus standard).
func (f *Flowsheet) SetLogger(log logrus.FieldLogger) {
	f.log = log
}

// AddFeed registers a plant feed stream.
func (f *Flowsheet) AddFeed(s *thermo.Stream) error {
	if err := f.register(s); err != nil {
		return err
	}
	f.produced[s.Name] = true
	return nil
}

// Connect binds a unit's streams and appends it to the execution order.
// Every inbound stream must already be produced (a feed or an upstream
// outlet); outbound streams are registered as produced for downstream
// units.
func (f *Flowsheet) Connect(u units.ProcessUnit, ins, outs []*thermo.Stream) error {
	for _, in := range ins {
		if !f.produced[in.Name] {
			return fmt.Errorf("flowsheet %s: unit %s inlet %q is not a feed or an upstream outlet",
				f.name, u.ID(), in.Name)
		}
	}
	for _, out := range outs {
		if err := f.register(out); err != nil {
			return fmt.Errorf("flowsheet %s: unit %s: %w", f.name, u.ID(), err)
		}
		f.produced[out.Name] = true
	}
	if err := u.Bind(ins, outs); err != nil {
		return fmt.Errorf("flowsheet %s: %w", f.name, err)
	}
	f.units = append(f.units, u)
	return nil
}

func (f *Flowsheet) register(s *thermo.Stream) error {
	if s.Name == "" {
		return fmt.Errorf("stream has no name")
	}
	if existing, ok := f.streams[s.Name]; ok && existing != s {
		return fmt.Errorf("duplicate stream name %q", s.Name)
	}
	if _, ok := f.streams[s.Name]; !ok {
		f.streams[s.Name] = s
		f.order = append(f.order, s.Name)
	}
	return nil
}

// Name returns the flowsheet identifier.
func (f *Flowsheet) Name() string { return f.name }

// Units returns the execution order.
func (f *Flowsheet) Units() []units.ProcessUnit { return f.units }

// Stream returns a registered stream by name, or nil.
func (f *Flowsheet) Stream(name string) *thermo.Stream { return f.streams[name] }

// Result holds the outcome of one simulation pass.
type Result struct {
	// Units holds per-unit design, cost, and utility results in
	// execution order.
	Units []types.UnitResult

	// TotalPurchaseCost and TotalInstalledCost sum the equipment costs.
	TotalPurchaseCost  float64
	TotalInstalledCost float64

	// Demands lists every declared utility demand.
	Demands []types.UtilityDemand

	// Utilities aggregates the demands by agent class.
	Utilities utility.Summary

	// Streams holds the post-simulation state of every stream, in
	// registration order.
	Streams []types.StreamSnapshot
}

// Simulate runs balance, design, and cost for each unit in order. The
// pass is idempotent: results are overwritten, never accumulated.
func (f *Flowsheet) Simulate(ctx context.Context) (*Result, error) {
	if len(f.units) == 0 {
		return nil, fmt.Errorf("flowsheet %s: no units connected", f.name)
	}

	res := &Result{}
	for _, u := range f.units {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := u.RunBalance(); err != nil {
			return nil, fmt.Errorf("flowsheet %s: unit %s balance: %w", f.name, u.ID(), err)
		}
		u.ComputeDesign()
		u.ComputeCost()

		ur := units.Result(u)
		res.Units = append(res.Units, ur)
		res.TotalPurchaseCost += ur.PurchaseCost
		res.TotalInstalledCost += ur.InstalledCost
		res.Demands = append(res.Demands, ur.Utilities...)

		f.log.WithFields(logrus.Fields{
			"unit":      u.ID(),
			"kind":      u.Kind(),
			"purchase":  ur.PurchaseCost,
			"installed": ur.InstalledCost,
		}).Debug("unit simulated")
	}

	res.Utilities = utility.Summarize(res.Demands)
	for _, name := range f.order {
		res.Streams = append(res.Streams, f.streams[name].Snapshot())
	}

	f.log.WithFields(logrus.Fields{
		"flowsheet": f.name,
		"units":     len(f.units),
		"installed": res.TotalInstalledCost,
	}).Info("simulation complete")
	return res, nil
}
