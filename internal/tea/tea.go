// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tea evaluates the project economics of a simulated flowsheet:
// capital investment, fixed and variable operating costs, a year-by-year
// cash flow with MACRS depreciation and debt service, NPV at the target
// rate, solved IRR, minimum selling price, and simple payback.
package tea

import (
	"math"

	"github.com/hadiyati/biorefinery/pkg/types"
)

// macrs7 is the 7-year MACRS depreciation schedule (half-year convention).
var macrs7 = []float64{0.1429, 0.2449, 0.1749, 0.1249, 0.0893, 0.0892, 0.0893, 0.0446}

// Inputs carries the simulation quantities the analysis prices.
type Inputs struct {
	// InstalledCost is the total installed equipment cost (becomes FCI).
	InstalledCost float64

	// GlucoseFeedKgH is the glucose mass rate entering the plant.
	GlucoseFeedKgH float64

	// LAProductKgH is the lactic acid mass rate in the product stream.
	LAProductKgH float64

	// UtilityAnnualCost is the priced annual utility bill.
	UtilityAnnualCost float64
}

// Analysis holds the evaluated economics.
type Analysis struct {
	FCI            float64
	WorkingCapital float64
	TCI            float64

	FOC                 float64
	GlucoseCostAnnual   float64
	NutrientsCostAnnual float64
	UtilityCostAnnual   float64
	VOC                 float64
	AnnualOpex          float64

	AnnualRevenue float64

	// CashFlows is the project cash-flow series, year 0 = first
	// construction year.
	CashFlows []float64

	// NPV is evaluated at the target IRR.
	NPV float64

	// IRR is the solved internal rate of return; IRRValid is false when
	// the cash-flow series has no sign change to bracket a root.
	IRR      float64
	IRRValid bool

	MSPPerKg     float64
	PaybackYears float64
}

// Evaluate prices the inputs under the configured economic assumptions.
func Evaluate(eco types.EconomicsConfig, prod types.ProductionConfig, in Inputs) Analysis {
	hours := prod.OperatingHours()

	var a Analysis
	a.FCI = in.InstalledCost
	a.WorkingCapital = eco.WorkingCapitalFraction * a.FCI
	a.TCI = a.FCI + a.WorkingCapital

	// Fixed operating costs per the standard FOC model.
	maintenance := eco.MaintenanceFraction * a.FCI
	labor := eco.LaborCostAnnual
	supervision := eco.SupervisionFraction * labor
	laboratory := eco.LaboratoryFraction * labor
	insurance := eco.InsuranceFraction * a.FCI
	overhead := eco.OverheadFraction * (labor + supervision + maintenance)
	a.FOC = maintenance + labor + supervision + laboratory + insurance + overhead

	// Variable operating costs: raw materials plus utilities. Nutrient
	// demand is 5% of the glucose mass rate.
	a.GlucoseCostAnnual = in.GlucoseFeedKgH * hours * eco.GlucosePricePerKg
	a.NutrientsCostAnnual = in.GlucoseFeedKgH * 0.05 * hours * eco.NutrientsPricePerKg
	a.UtilityCostAnnual = in.UtilityAnnualCost
	a.VOC = a.GlucoseCostAnnual + a.NutrientsCostAnnual + a.UtilityCostAnnual
	a.AnnualOpex = a.VOC + a.FOC

	a.AnnualRevenue = in.LAProductKgH * hours * eco.LacticAcidPricePerKg

	a.CashFlows = cashFlows(eco, a)
	a.NPV = npvAt(a.CashFlows, eco.IRRTarget)
	a.IRR, a.IRRValid = solveIRR(a.CashFlows)

	annualKg := in.LAProductKgH * hours
	if annualKg > 0 {
		a.MSPPerKg = (a.AnnualOpex + a.TCI*eco.IRRTarget) / annualKg
	}

	if profit := a.AnnualRevenue - a.AnnualOpex; profit > 0 {
		a.PaybackYears = a.TCI / profit
	} else {
		a.PaybackYears = math.Inf(1)
	}

	return a
}

// cashFlows builds the year-by-year project series: construction outlays
// per the schedule, working capital at startup (recovered in the final
// year), startup-derated first operating year, MACRS-7 depreciation as a
// tax shield, and annuity debt service over the finance term.
func cashFlows(eco types.EconomicsConfig, a Analysis) []float64 {
	duration := eco.EndYear - eco.StartYear
	construction := len(eco.ConstructionSchedule)
	if duration <= construction {
		duration = construction + 1
	}

	cf := make([]float64, duration)
	for i, frac := range eco.ConstructionSchedule {
		cf[i] -= a.FCI * frac
	}

	loan := a.TCI * eco.Finance.Fraction
	payment := annuityPayment(loan, eco.Finance.InterestRate, eco.Finance.Years)

	// The financed share offsets construction outlays; the loan is then
	// serviced out of operating cash.
	for i, frac := range eco.ConstructionSchedule {
		cf[i] += loan * frac
	}

	startupFrac := eco.Startup.Months / 12
	if startupFrac > 1 {
		startupFrac = 1
	}

	opYear := 0
	for y := construction; y < duration; y++ {
		revenue := a.AnnualRevenue
		voc := a.VOC
		foc := a.FOC
		if opYear == 0 {
			cf[y] -= a.WorkingCapital
			revenue = startupFrac*eco.Startup.SalesFraction*a.AnnualRevenue + (1-startupFrac)*a.AnnualRevenue
			voc = startupFrac*eco.Startup.VOCFraction*a.VOC + (1-startupFrac)*a.VOC
			foc = startupFrac*eco.Startup.FOCFraction*a.FOC + (1-startupFrac)*a.FOC
		}

		depreciation := 0.0
		if opYear < len(macrs7) {
			depreciation = macrs7[opYear] * a.FCI
		}

		taxable := revenue - voc - foc - depreciation
		tax := 0.0
		if taxable > 0 {
			tax = taxable * eco.IncomeTaxRate
		}

		cf[y] += revenue - voc - foc - tax
		if opYear < eco.Finance.Years {
			cf[y] -= payment
		}
		opYear++
	}

	// Working capital comes back when the plant winds down.
	cf[duration-1] += a.WorkingCapital
	return cf
}

// annuityPayment returns the constant annual payment amortizing principal
// over n years at rate i.
func annuityPayment(principal, i float64, n int) float64 {
	if principal <= 0 || n <= 0 {
		return 0
	}
	if i == 0 {
		return principal / float64(n)
	}
	f := math.Pow(1+i, float64(n))
	return principal * i * f / (f - 1)
}

// npvAt discounts the series to year zero at the given rate.
func npvAt(cf []float64, rate float64) float64 {
	npv := 0.0
	for y, c := range cf {
		npv += c / math.Pow(1+rate, float64(y))
	}
	return npv
}

// solveIRR finds the discount rate with zero NPV by bisection. Returns
// false when the series has no sign change in (-0.99, 10].
func solveIRR(cf []float64) (float64, bool) {
	lo, hi := -0.99, 10.0
	fLo := npvAt(cf, lo)
	fHi := npvAt(cf, hi)
	if fLo == 0 {
		return lo, true
	}
	if fHi == 0 {
		return hi, true
	}
	if fLo*fHi > 0 {
		return 0, false
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fMid := npvAt(cf, mid)
		if fMid == 0 || hi-lo < 1e-10 {
			return mid, true
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return (lo + hi) / 2, true
}
