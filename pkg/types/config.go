// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and result records shared across
// the simulator packages and the CLI.
package types

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ProductionConfig sets the plant capacity and availability.
type ProductionConfig struct {
	// AnnualTargetMT is the lactic acid production target in metric tons/year.
	AnnualTargetMT float64 `json:"annual_target_mt" yaml:"annual_target_mt" validate:"gt=0"`

	// OperatingDays is the number of on-stream days per year.
	OperatingDays float64 `json:"operating_days" yaml:"operating_days" validate:"gt=0,lte=365"`
}

// OperatingHours returns the annual on-stream hours.
func (p ProductionConfig) OperatingHours() float64 {
	return p.OperatingDays * 24
}

// ProductionRateKgH returns the lactic acid production rate (kg/hr) implied
// by the annual target.
func (p ProductionConfig) ProductionRateKgH() float64 {
	return p.AnnualTargetMT * 1000 / p.OperatingHours()
}

// FeedConfig describes the glucose feed stream and the temperature set
// points of the conditioning train.
type FeedConfig struct {
	// GlucoseMassFraction is the w/w glucose content of the feed solution.
	GlucoseMassFraction float64 `json:"glucose_mass_fraction" yaml:"glucose_mass_fraction" validate:"gt=0,lt=1"`

	// TempC is the ambient feed temperature.
	TempC float64 `json:"temp_c" yaml:"temp_c"`

	// SterilizationTempC is the autoclave set point upstream of fermentation.
	SterilizationTempC float64 `json:"sterilization_temp_c" yaml:"sterilization_temp_c" validate:"gt=0"`

	// ProductTempC is the final product cooling set point.
	ProductTempC float64 `json:"product_temp_c" yaml:"product_temp_c"`
}

// FermentationConfig holds the operating parameters of the fermentation
// reactor. All are fixed for the life of the unit.
type FermentationConfig struct {
	// TauHours is the batch residence time.
	TauHours float64 `json:"tau_hours" yaml:"tau_hours" validate:"gt=0"`

	// Conversion is the fraction of inlet glucose consumed, in [0,1].
	Conversion float64 `json:"conversion" yaml:"conversion" validate:"gte=0,lte=1"`

	// BiomassYield is the mass of biomass produced per mass of glucose
	// consumed. Bounded at 0.98 so the lactic acid fraction (which also
	// carries a fixed 2% ethanol byproduct) stays non-negative.
	BiomassYield float64 `json:"biomass_yield" yaml:"biomass_yield" validate:"gte=0,lte=0.98"`

	// TempC is the broth temperature set by the reactor.
	TempC float64 `json:"temp_c" yaml:"temp_c" validate:"gt=0"`
}

// CentrifugeConfig holds the per-species split fractions of the solids
// centrifuge (fraction reporting to the clarified liquid outlet) and its
// power draw.
type CentrifugeConfig struct {
	// Splits maps species name to the fraction sent to the liquid outlet.
	Splits map[string]float64 `json:"splits" yaml:"splits" validate:"required,dive,gte=0,lte=1"`

	// SpecificPowerKWhM3 is the electricity demand per m³ of feed processed.
	SpecificPowerKWhM3 float64 `json:"specific_power_kwh_m3" yaml:"specific_power_kwh_m3" validate:"gte=0"`
}

// EvaporationConfig holds the operating parameters of the vacuum evaporator.
type EvaporationConfig struct {
	// WaterRemovalFraction is the fraction of inlet water evaporated, in [0,1].
	WaterRemovalFraction float64 `json:"water_removal_fraction" yaml:"water_removal_fraction" validate:"gte=0,lte=1"`

	// PressureKPa is the vacuum operating pressure.
	PressureKPa float64 `json:"pressure_kpa" yaml:"pressure_kpa" validate:"gt=0"`

	// TempC is the boiling temperature at the reduced pressure.
	TempC float64 `json:"temp_c" yaml:"temp_c" validate:"gt=0"`
}

// UtilityPrices sets the unit prices of the utility agents.
type UtilityPrices struct {
	// ElectricityPerKWh is the electricity price in $/kWh.
	ElectricityPerKWh float64 `json:"electricity_per_kwh" yaml:"electricity_per_kwh" validate:"gte=0"`

	// LPSteamPerKg is the low-pressure steam price in $/kg.
	LPSteamPerKg float64 `json:"lp_steam_per_kg" yaml:"lp_steam_per_kg" validate:"gte=0"`

	// LPSteamLatentKJKg is the latent heat credited per kg of steam,
	// used to convert a heating duty to a steam mass rate.
	LPSteamLatentKJKg float64 `json:"lp_steam_latent_kj_kg" yaml:"lp_steam_latent_kj_kg" validate:"gt=0"`

	// CoolingWaterPerKWh is the cooling water price in $/kWh of duty removed.
	CoolingWaterPerKWh float64 `json:"cooling_water_per_kwh" yaml:"cooling_water_per_kwh" validate:"gte=0"`
}

// StartupConfig holds the plant startup assumptions.
type StartupConfig struct {
	Months        float64 `json:"months" yaml:"months" validate:"gte=0"`
	FOCFraction   float64 `json:"foc_fraction" yaml:"foc_fraction" validate:"gte=0,lte=1"`
	VOCFraction   float64 `json:"voc_fraction" yaml:"voc_fraction" validate:"gte=0,lte=1"`
	SalesFraction float64 `json:"sales_fraction" yaml:"sales_fraction" validate:"gte=0,lte=1"`
}

// FinanceConfig holds the debt financing assumptions.
type FinanceConfig struct {
	InterestRate float64 `json:"interest_rate" yaml:"interest_rate" validate:"gte=0,lte=1"`
	Years        int     `json:"years" yaml:"years" validate:"gte=0"`
	Fraction     float64 `json:"fraction" yaml:"fraction" validate:"gte=0,lte=1"`
}

// EconomicsConfig holds prices and techno-economic analysis settings
// (2019 USD basis).
type EconomicsConfig struct {
	// GlucosePricePerKg is the industrial glucose price.
	GlucosePricePerKg float64 `json:"glucose_price_per_kg" yaml:"glucose_price_per_kg" validate:"gte=0"`

	// LacticAcidPricePerKg is the 80-88% industrial grade selling price.
	LacticAcidPricePerKg float64 `json:"lactic_acid_price_per_kg" yaml:"lactic_acid_price_per_kg" validate:"gte=0"`

	// NutrientsPricePerKg prices yeast extract and minerals. Nutrient
	// demand is taken as 5% of the glucose mass rate.
	NutrientsPricePerKg float64 `json:"nutrients_price_per_kg" yaml:"nutrients_price_per_kg" validate:"gte=0"`

	// IRRTarget is the target internal rate of return.
	IRRTarget float64 `json:"irr_target" yaml:"irr_target" validate:"gt=0,lt=1"`

	// StartYear and EndYear bound the project lifetime.
	StartYear int `json:"start_year" yaml:"start_year" validate:"gt=0"`
	EndYear   int `json:"end_year" yaml:"end_year" validate:"gtfield=StartYear"`

	// IncomeTaxRate is the corporate tax rate.
	IncomeTaxRate float64 `json:"income_tax_rate" yaml:"income_tax_rate" validate:"gte=0,lt=1"`

	// ConstructionSchedule splits FCI spending across construction years.
	// Entries must sum to 1.
	ConstructionSchedule []float64 `json:"construction_schedule" yaml:"construction_schedule" validate:"required,min=1,dive,gte=0,lte=1"`

	// WorkingCapitalFraction is working capital as a fraction of FCI.
	WorkingCapitalFraction float64 `json:"working_capital_fraction" yaml:"working_capital_fraction" validate:"gte=0,lte=1"`

	// LaborCostAnnual is the annual operating labor cost.
	LaborCostAnnual float64 `json:"labor_cost_annual" yaml:"labor_cost_annual" validate:"gte=0"`

	// Fixed-cost fractions per the standard FOC model.
	MaintenanceFraction float64 `json:"maintenance_fraction" yaml:"maintenance_fraction" validate:"gte=0,lte=1"`
	InsuranceFraction   float64 `json:"insurance_fraction" yaml:"insurance_fraction" validate:"gte=0,lte=1"`
	SupervisionFraction float64 `json:"supervision_fraction" yaml:"supervision_fraction" validate:"gte=0,lte=1"`
	LaboratoryFraction  float64 `json:"laboratory_fraction" yaml:"laboratory_fraction" validate:"gte=0,lte=1"`
	OverheadFraction    float64 `json:"overhead_fraction" yaml:"overhead_fraction" validate:"gte=0,lte=1"`

	Startup StartupConfig `json:"startup" yaml:"startup"`
	Finance FinanceConfig `json:"finance" yaml:"finance"`

	Utilities UtilityPrices `json:"utilities" yaml:"utilities"`

	// CEPCI is the cost index equipment costs are rescaled to. The
	// correlations are quoted at the 2019 annual value of 607.5.
	CEPCI float64 `json:"cepci" yaml:"cepci" validate:"gt=0"`
}

// StoreConfig locates the SQLite run store.
type StoreConfig struct {
	// Dir is the base directory for run history (contains runs.db and exports).
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of runs listed.
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config is the full simulation configuration tree.
type Config struct {
	Production   ProductionConfig   `json:"production" yaml:"production"`
	Feed         FeedConfig         `json:"feed" yaml:"feed"`
	Fermentation FermentationConfig `json:"fermentation" yaml:"fermentation"`
	Centrifuge   CentrifugeConfig   `json:"centrifuge" yaml:"centrifuge"`
	Evaporation  EvaporationConfig  `json:"evaporation" yaml:"evaporation"`
	Economics    EconomicsConfig    `json:"economics" yaml:"economics"`
	Store        StoreConfig        `json:"store" yaml:"store"`
}

// DefaultConfig returns the baseline 50 kt/yr scenario.
func DefaultConfig() Config {
	return Config{
		Production: ProductionConfig{
			AnnualTargetMT: 50000,
			OperatingDays:  330,
		},
		Feed: FeedConfig{
			GlucoseMassFraction: 0.20,
			TempC:               30,
			SterilizationTempC:  121,
			ProductTempC:        25,
		},
		Fermentation: FermentationConfig{
			TauHours:     48,
			Conversion:   0.90,
			BiomassYield: 0.08,
			TempC:        37,
		},
		Centrifuge: CentrifugeConfig{
			Splits: map[string]float64{
				"Water":      0.97,
				"LacticAcid": 0.99,
				"Glucose":    0.97,
				"Ethanol":    0.95,
				"WWTsludge":  0.01,
			},
			SpecificPowerKWhM3: 1.2,
		},
		Evaporation: EvaporationConfig{
			WaterRemovalFraction: 0.70,
			PressureKPa:          20,
			TempC:                80,
		},
		Economics: EconomicsConfig{
			GlucosePricePerKg:      0.35,
			LacticAcidPricePerKg:   1.50,
			NutrientsPricePerKg:    0.20,
			IRRTarget:              0.10,
			StartYear:              2026,
			EndYear:                2046,
			IncomeTaxRate:          0.21,
			ConstructionSchedule:   []float64{0.4, 0.6},
			WorkingCapitalFraction: 0.05,
			LaborCostAnnual:        2_500_000,
			MaintenanceFraction:    0.03,
			InsuranceFraction:      0.007,
			SupervisionFraction:    0.20,
			LaboratoryFraction:     0.15,
			OverheadFraction:       0.60,
			Startup: StartupConfig{
				Months:        3,
				FOCFraction:   1.0,
				VOCFraction:   0.75,
				SalesFraction: 0.5,
			},
			Finance: FinanceConfig{
				InterestRate: 0.08,
				Years:        10,
				Fraction:     0.4,
			},
			Utilities: UtilityPrices{
				ElectricityPerKWh:  0.0685,
				LPSteamPerKg:       0.018,
				LPSteamLatentKJKg:  2114,
				CoolingWaterPerKWh: 0.0005,
			},
			CEPCI: 607.5,
		},
		Store: StoreConfig{
			Dir:        "runs",
			MaxResults: 20,
		},
	}
}

// validate is shared across Validate calls; validator instances cache
// struct metadata and are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration tree: struct tags first, then the
// cross-field constraints the tags cannot express. Out-of-range operating
// parameters fail here rather than surfacing later as negative flows.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	sum := 0.0
	for _, f := range c.Economics.ConstructionSchedule {
		sum += f
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("config validation: construction_schedule sums to %.4f, want 1", sum)
	}

	return nil
}
