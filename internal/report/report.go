// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report formats the simulation and analysis results as the
// plant's console report.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/hadiyati/biorefinery/internal/flowsheet"
	"github.com/hadiyati/biorefinery/internal/tea"
	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/pkg/types"
)

// Data bundles everything the report reads.
type Data struct {
	Config   types.Config
	Result   *flowsheet.Result
	Analysis tea.Analysis

	// Feed, Broth, and Product are the key named streams.
	Feed    *thermo.Stream
	Broth   *thermo.Stream
	Product *thermo.Stream
}

// KPIs derives the headline indicators stored with each run.
func KPIs(d Data) types.KPISet {
	hours := d.Config.Production.OperatingHours()
	laKgH := d.Product.MassOf(thermo.LacticAcid)
	annualMT := laKgH * hours / 1000

	glucoseConsumed := d.Feed.MassOf(thermo.Glucose) - d.Broth.MassOf(thermo.Glucose)
	yield := 0.0
	if glucoseConsumed > 0 {
		yield = laKgH / glucoseConsumed
	}

	return types.KPISet{
		LAProductionKgH:    laKgH,
		AnnualProductionMT: annualMT,
		OverallYieldKgKg:   yield,
		ProductPurity:      d.Product.MassFraction(thermo.LacticAcid),
		HeatingDutyMW:      d.Result.Utilities.HeatingKW / 1000,
		CoolingDutyMW:      d.Result.Utilities.CoolingKW / 1000,
		PowerMW:            d.Result.Utilities.PowerKW / 1000,
		TCI:                d.Analysis.TCI,
		FCI:                d.Analysis.FCI,
		WorkingCapital:     d.Analysis.WorkingCapital,
		AnnualOpex:         d.Analysis.AnnualOpex,
		AnnualRevenue:      d.Analysis.AnnualRevenue,
		NPV:                d.Analysis.NPV,
		IRR:                d.Analysis.IRR,
		MSPPerKg:           d.Analysis.MSPPerKg,
		PaybackYears:       d.Analysis.PaybackYears,
	}
}

const ruleWidth = 80

func rule(w io.Writer) { fmt.Fprintln(w, strings.Repeat("=", ruleWidth)) }
func thin(w io.Writer) { fmt.Fprintln(w, strings.Repeat("-", ruleWidth)) }
func header(w io.Writer, title string) {
	rule(w)
	fmt.Fprintln(w, title)
	rule(w)
}

// Write prints the full report: production metrics, energy, capital,
// equipment costs, operating costs, project economics, and the KPI
// summary.
func Write(w io.Writer, d Data) {
	k := KPIs(d)
	cfg := d.Config
	a := d.Analysis

	header(w, "LACTIC ACID BIOREFINERY - SIMULATION REPORT")

	fmt.Fprintf(w, "Production Target:               %s MT/year\n", comma(cfg.Production.AnnualTargetMT))
	fmt.Fprintf(w, "Operating days:                  %.0f days/year\n", cfg.Production.OperatingDays)
	fmt.Fprintf(w, "Required LA production rate:     %.1f kg/hr\n", cfg.Production.ProductionRateKgH())

	header(w, "PRODUCTION METRICS")
	fmt.Fprintf(w, "Lactic Acid Production:          %.2f kg/hr\n", k.LAProductionKgH)
	fmt.Fprintf(w, "Annual Production:               %.2f MT/year\n", k.AnnualProductionMT)
	fmt.Fprintf(w, "Target Achievement:              %.1f%%\n",
		k.AnnualProductionMT/cfg.Production.AnnualTargetMT*100)
	fmt.Fprintf(w, "Product Concentration:           %.1f%% w/w\n", k.ProductPurity*100)
	fmt.Fprintf(w, "Fermentation Broth Conc:         %.1f%% w/w\n",
		d.Broth.MassFraction(thermo.LacticAcid)*100)
	fmt.Fprintf(w, "Overall Yield:                   %.2f kg LA/kg glucose\n", k.OverallYieldKgKg)

	header(w, "ENERGY REQUIREMENTS")
	fmt.Fprintf(w, "Heating Duty:                    %.3f MW\n", k.HeatingDutyMW)
	fmt.Fprintf(w, "Cooling Duty:                    %.3f MW\n", k.CoolingDutyMW)
	fmt.Fprintf(w, "Electric Power:                  %.3f MW\n", k.PowerMW)
	if k.LAProductionKgH > 0 {
		fmt.Fprintf(w, "Energy Intensity:                %.1f kWh/ton LA\n",
			k.PowerMW*1000/(k.LAProductionKgH/1000))
	}

	header(w, "CAPITAL INVESTMENT")
	fmt.Fprintf(w, "Total Capital Investment:        $%.2f million\n", a.TCI/1e6)
	fmt.Fprintf(w, "Fixed Capital Investment:        $%.2f million\n", a.FCI/1e6)
	fmt.Fprintf(w, "Working Capital:                 $%.2f million\n", a.WorkingCapital/1e6)
	if k.AnnualProductionMT > 0 {
		fmt.Fprintf(w, "Specific Investment:             $%.2f/kg annual capacity\n",
			a.TCI/(k.AnnualProductionMT*1000))
	}

	header(w, "EQUIPMENT COSTS")
	fmt.Fprintf(w, "%-10s %-20s %15s %15s\n", "Unit", "Equipment", "Purchase ($k)", "Installed ($k)")
	thin(w)
	for _, u := range d.Result.Units {
		if u.PurchaseCost <= 0 {
			continue
		}
		fmt.Fprintf(w, "%-10s %-20s %15.1f %15.1f\n",
			u.ID, u.Kind, u.PurchaseCost/1e3, u.InstalledCost/1e3)
	}
	thin(w)
	fmt.Fprintf(w, "%-31s %14.2fM %14.2fM\n", "TOTAL",
		d.Result.TotalPurchaseCost/1e6, d.Result.TotalInstalledCost/1e6)

	header(w, "ANNUAL OPERATING COSTS")
	fmt.Fprintf(w, "Raw Materials:\n")
	fmt.Fprintf(w, "  Glucose ($%.2f/kg):            $%.2f million/year\n",
		cfg.Economics.GlucosePricePerKg, a.GlucoseCostAnnual/1e6)
	fmt.Fprintf(w, "  Nutrients & pH control:        $%.2f million/year\n", a.NutrientsCostAnnual/1e6)
	fmt.Fprintf(w, "Utilities (steam, cw, power):    $%.2f million/year\n", a.UtilityCostAnnual/1e6)
	fmt.Fprintf(w, "Fixed costs (labor, maint.):     $%.2f million/year\n", a.FOC/1e6)
	thin(w)
	fmt.Fprintf(w, "Total Annual Operating Cost:     $%.2f million/year\n", a.AnnualOpex/1e6)
	if k.AnnualProductionMT > 0 {
		fmt.Fprintf(w, "Unit Production Cost:            $%.3f/kg\n",
			a.AnnualOpex/(k.AnnualProductionMT*1000))
	}

	header(w, fmt.Sprintf("PROJECT ECONOMICS (LA price: $%.2f/kg)", cfg.Economics.LacticAcidPricePerKg))
	profit := a.AnnualRevenue - a.AnnualOpex
	fmt.Fprintf(w, "Annual Revenue:                  $%.2f million\n", a.AnnualRevenue/1e6)
	fmt.Fprintf(w, "Annual Profit (before tax):      $%.2f million\n", profit/1e6)
	if a.AnnualRevenue > 0 {
		fmt.Fprintf(w, "Gross Margin:                    %.1f%%\n", profit/a.AnnualRevenue*100)
	}
	fmt.Fprintf(w, "\nMinimum Selling Price (MSP):     $%.3f/kg\n", a.MSPPerKg)
	fmt.Fprintf(w, "Net Present Value (NPV @%.0f%%):   $%.2f million\n",
		cfg.Economics.IRRTarget*100, a.NPV/1e6)
	if a.IRRValid {
		fmt.Fprintf(w, "Internal Rate of Return (IRR):   %.2f%%\n", a.IRR*100)
	} else {
		fmt.Fprintf(w, "Internal Rate of Return (IRR):   n/a (cash flows do not bracket a root)\n")
	}
	if !math.IsInf(a.PaybackYears, 1) {
		fmt.Fprintf(w, "Simple Payback Period:           %.2f years\n", a.PaybackYears)
	}

	rule(w)
	fmt.Fprintln(w, "SIMULATION COMPLETE")
	rule(w)
}

// comma formats a round number with thousands separators.
func comma(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
