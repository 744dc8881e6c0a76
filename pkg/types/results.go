// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// UtilityAgent identifies a utility supplied by the plant's utility system.
type UtilityAgent string

const (
	AgentLPSteam      UtilityAgent = "low_pressure_steam"
	AgentCoolingWater UtilityAgent = "cooling_water"
	AgentElectricity  UtilityAgent = "electricity"
)

// UtilityDemand is a declared heating/cooling/power load. Units declare
// demands; the utility subsystem prices them.
type UtilityDemand struct {
	// Agent names the utility supplying the demand.
	Agent UtilityAgent `json:"agent" yaml:"agent"`

	// DutyKW is the load in kW. Positive for heating and power,
	// negative for cooling (heat removed from the process).
	DutyKW float64 `json:"duty_kw" yaml:"duty_kw"`

	// SupplyTempK is the agent supply temperature. Zero for electricity.
	SupplyTempK float64 `json:"supply_temp_k" yaml:"supply_temp_k"`
}

// StreamSnapshot records a stream's state after simulation, for reporting
// and persistence.
type StreamSnapshot struct {
	Name       string             `json:"name" yaml:"name"`
	Phase      string             `json:"phase" yaml:"phase"`
	TempK      float64            `json:"temp_k" yaml:"temp_k"`
	PressurePa float64            `json:"pressure_pa" yaml:"pressure_pa"`
	MolarKmolH map[string]float64 `json:"molar_kmol_h" yaml:"molar_kmol_h"`
	MassKgH    float64            `json:"mass_kg_h" yaml:"mass_kg_h"`
	VolumeM3H  float64            `json:"volume_m3_h" yaml:"volume_m3_h"`
}

// UnitResult holds one unit's design metrics, costs, and utility demands
// after a simulation pass.
type UnitResult struct {
	// ID is the flowsheet identifier (e.g. "R201").
	ID string `json:"id" yaml:"id"`

	// Kind is the unit type (e.g. "Fermentation").
	Kind string `json:"kind" yaml:"kind"`

	// Design maps design-metric name to value (e.g. "Reactor volume" in m³).
	Design map[string]float64 `json:"design" yaml:"design"`

	// PurchaseCost and InstalledCost are in USD at the configured CEPCI.
	PurchaseCost  float64 `json:"purchase_cost" yaml:"purchase_cost"`
	InstalledCost float64 `json:"installed_cost" yaml:"installed_cost"`

	// Utilities lists the unit's declared utility demands.
	Utilities []UtilityDemand `json:"utilities,omitempty" yaml:"utilities,omitempty"`
}

// KPISet holds the headline techno-economic indicators of a run.
type KPISet struct {
	LAProductionKgH    float64 `json:"la_production_kg_h" yaml:"la_production_kg_h"`
	AnnualProductionMT float64 `json:"annual_production_mt" yaml:"annual_production_mt"`
	OverallYieldKgKg   float64 `json:"overall_yield_kg_kg" yaml:"overall_yield_kg_kg"`
	ProductPurity      float64 `json:"product_purity" yaml:"product_purity"`
	HeatingDutyMW      float64 `json:"heating_duty_mw" yaml:"heating_duty_mw"`
	CoolingDutyMW      float64 `json:"cooling_duty_mw" yaml:"cooling_duty_mw"`
	PowerMW            float64 `json:"power_mw" yaml:"power_mw"`
	TCI                float64 `json:"tci" yaml:"tci"`
	FCI                float64 `json:"fci" yaml:"fci"`
	WorkingCapital     float64 `json:"working_capital" yaml:"working_capital"`
	AnnualOpex         float64 `json:"annual_opex" yaml:"annual_opex"`
	AnnualRevenue      float64 `json:"annual_revenue" yaml:"annual_revenue"`
	NPV                float64 `json:"npv" yaml:"npv"`
	IRR                float64 `json:"irr" yaml:"irr"`
	MSPPerKg           float64 `json:"msp_per_kg" yaml:"msp_per_kg"`
	PaybackYears       float64 `json:"payback_years" yaml:"payback_years"`
}

// RunRecord is a persisted simulation run.
type RunRecord struct {
	// ID is assigned by the run store.
	ID int64 `json:"id" yaml:"id"`

	// CreatedAt is the run timestamp (UTC).
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// ConfigYAML is the full configuration the run used, for reproducibility.
	ConfigYAML string `json:"config_yaml" yaml:"config_yaml"`

	KPIs KPISet `json:"kpis" yaml:"kpis"`

	// Units holds the per-unit design and cost results.
	Units []UnitResult `json:"units" yaml:"units"`

	// Streams holds the named stream states.
	Streams []StreamSnapshot `json:"streams" yaml:"streams"`
}
