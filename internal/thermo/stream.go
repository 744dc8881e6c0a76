// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package thermo

import (
	"github.com/hadiyati/biorefinery/pkg/types"
)

// Phase tags a stream as liquid, gas, or solid.
type Phase string

const (
	PhaseLiquid Phase = "l"
	PhaseGas    Phase = "g"
	PhaseSolid  Phase = "s"
)

// Stream is a directed quantity of material: a molar composition plus
// temperature, pressure, and phase. Flows are kmol/hr. A species the
// stream does not carry reads as zero.
type Stream struct {
	Name  string
	Phase Phase

	// T is temperature in K; P is pressure in Pa.
	T float64
	P float64

	mol map[Species]float64
}

// NewStream returns an empty liquid stream at 25 °C and 1 atm.
func NewStream(name string) *Stream {
	return &Stream{
		Name:  name,
		Phase: PhaseLiquid,
		T:     298.15,
		P:     101325,
		mol:   make(map[Species]float64),
	}
}

// Molar returns the molar flow of sp in kmol/hr (zero if absent).
func (s *Stream) Molar(sp Species) float64 {
	return s.mol[sp]
}

// SetMolar sets the molar flow of sp in kmol/hr.
func (s *Stream) SetMolar(sp Species, kmolH float64) {
	if kmolH == 0 {
		delete(s.mol, sp)
		return
	}
	s.mol[sp] = kmolH
}

// AddMolar adds delta (kmol/hr, may be negative) to the flow of sp.
func (s *Stream) AddMolar(sp Species, delta float64) {
	s.SetMolar(sp, s.mol[sp]+delta)
}

// SetMass sets the flow of sp from a mass rate in kg/hr.
func (s *Stream) SetMass(sp Species, kgH float64) error {
	p, err := Lookup(sp)
	if err != nil {
		return err
	}
	s.SetMolar(sp, kgH/p.MolarMass)
	return nil
}

// MassOf returns the mass flow of sp in kg/hr.
func (s *Stream) MassOf(sp Species) float64 {
	p, err := Lookup(sp)
	if err != nil {
		return 0
	}
	return s.mol[sp] * p.MolarMass
}

// MassFlow returns the total mass flow in kg/hr.
func (s *Stream) MassFlow() float64 {
	total := 0.0
	for sp, n := range s.mol {
		p, err := Lookup(sp)
		if err != nil {
			continue
		}
		total += n * p.MolarMass
	}
	return total
}

// MassFraction returns the w/w fraction of sp, or zero for an empty stream.
func (s *Stream) MassFraction(sp Species) float64 {
	total := s.MassFlow()
	if total <= 0 {
		return 0
	}
	return s.MassOf(sp) / total
}

// VolumetricFlow returns the flow in m³/hr using the liquid density table
// and ideal mixing. Vapor streams are not sized by volume anywhere in the
// flowsheet, so the liquid basis is used for all phases.
func (s *Stream) VolumetricFlow() float64 {
	total := 0.0
	for sp, n := range s.mol {
		p, err := Lookup(sp)
		if err != nil || p.LiquidDensity <= 0 {
			continue
		}
		total += n * p.MolarMass / p.LiquidDensity
	}
	return total
}

// Species returns the species present, in stable order.
func (s *Stream) Species() []Species {
	out := make([]Species, 0, len(s.mol))
	for _, sp := range All() {
		if _, ok := s.mol[sp]; ok {
			out = append(out, sp)
		}
	}
	return out
}

// CopyFlow replaces this stream's composition with a copy of src's,
// leaving T, P, and phase untouched.
func (s *Stream) CopyFlow(src *Stream) {
	s.mol = make(map[Species]float64, len(src.mol))
	for sp, n := range src.mol {
		s.mol[sp] = n
	}
}

// Empty removes all material from the stream.
func (s *Stream) Empty() {
	s.mol = make(map[Species]float64)
}

// Snapshot captures the stream state for reporting and persistence.
func (s *Stream) Snapshot() types.StreamSnapshot {
	molar := make(map[string]float64, len(s.mol))
	for sp, n := range s.mol {
		molar[string(sp)] = n
	}
	return types.StreamSnapshot{
		Name:       s.Name,
		Phase:      string(s.Phase),
		TempK:      s.T,
		PressurePa: s.P,
		MolarKmolH: molar,
		MassKgH:    s.MassFlow(),
		VolumeM3H:  s.VolumetricFlow(),
	}
}
