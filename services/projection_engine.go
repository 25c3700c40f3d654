package services

import (
	"math"
	"rentvsbuy/types"
	"rentvsbuy/utils/helpers"
)

/*
Rent vs. buy projection engine

Every function below is a pure transformation of a FinancialInputs record into one
year indexed sequence. Project wires them together in a fixed order:

 1. NetYearlyPayments    amortization schedule, returns the gross monthly payment M
 2. YearlyRents          rent escalated by inflation
 3. HouseValues          resale value of the house
 4. StockValues          capital that would have been invested instead
 5. RemainingPrincipal   outstanding principal, re-walks the schedule with M
 6. TotalDebt            nominal obligation (principal and interest) still to be paid
 7. ComputeDelta         value of buying minus its opportunity loss, per year

Monetary values are rounded to cents when a yearly value is produced.
*/

const (
	paymentsPerYear = 12

	// OlderBuyerSurchargeRate is charged on the house value when the buyer is 32
	// or older.
	OlderBuyerSurchargeRate = 0.02
)

func monthlyRate(yearlyRate float64) float64 {
	if yearlyRate == 0 {
		return 0
	}
	return yearlyRate / paymentsPerYear
}

// GrossMonthlyPayment is the constant annuity payment that repays principal over
// termYears at yearlyRate. A zero rate degenerates to straight-line repayment.
func GrossMonthlyPayment(principal, yearlyRate float64, termYears int) float64 {
	n := termYears * paymentsPerYear
	i := monthlyRate(yearlyRate)
	if i == 0 {
		return principal / float64(n)
	}
	factor := math.Pow(1+i, float64(n))
	return principal * (i * factor) / (factor - 1)
}

// NetYearlyPayments walks the amortization schedule month by month and returns,
// for every year, the average net monthly payment (gross payment minus the
// mortgage interest tax deduction) plus the extra monthly costs. The second
// return value is the gross monthly payment used for the schedule.
func NetYearlyPayments(in types.FinancialInputs) ([]float64, float64) {
	n := in.MortgageYears * paymentsPerYear
	i := monthlyRate(in.InterestRate)
	gross := GrossMonthlyPayment(in.Mortgage, in.InterestRate, in.MortgageYears)

	balance := in.Mortgage
	monthly := make([]float64, 0, paymentsPerYear)
	yearly := make([]float64, 0, in.MortgageYears)

	for month := 1; month <= n; month++ {
		interest := balance * i
		principal := gross - interest
		deduction := interest * in.TaxRate

		monthly = append(monthly, helpers.Round2(gross-deduction))
		if len(monthly) == paymentsPerYear {
			// The average is rounded before the extra costs are added.
			yearly = append(yearly, helpers.Round2(helpers.Mean(monthly))+in.ExtraMonthlyCosts)
			monthly = monthly[:0]
		}

		balance -= principal
	}

	return yearly, gross
}

// YearlyRents escalates the monthly rent by inflation; year 0 is today's rent.
func YearlyRents(in types.FinancialInputs) []float64 {
	rents := make([]float64, 0, in.MortgageYears)
	for year := 0; year < in.MortgageYears; year++ {
		rents = append(rents, helpers.Round2(helpers.Compound(in.Rent, in.Inflation, year)))
	}
	return rents
}

// HouseValues projects the resale value of the house. The overbid is part of the
// base only when IncludeOverbidInReselling is set.
func HouseValues(in types.FinancialInputs) []float64 {
	base := in.HouseValue
	if in.IncludeOverbidInReselling {
		base += in.OverbidPrice
	}

	values := make([]float64, 0, in.MortgageYears)
	for year := 0; year < in.MortgageYears; year++ {
		values = append(values, helpers.Round2(helpers.Compound(base, in.YearlyHouseAppreciation, year)))
	}
	return values
}

// StockValues projects the capital a renter would invest instead of putting it
// into the house. The position is negative when the mortgage exceeds the house
// costs and is not clamped.
func StockValues(in types.FinancialInputs) []float64 {
	position := in.HouseValue + in.OverbidPrice + in.RenovationPrice - in.Mortgage

	values := make([]float64, 0, in.MortgageYears)
	for year := 0; year < in.MortgageYears; year++ {
		values = append(values, helpers.Round2(helpers.Compound(position, in.YearlyStocksIncrease, year)))
	}
	return values
}

// RemainingPrincipal returns the outstanding principal after the last payment of
// every year, floored at zero.
func RemainingPrincipal(in types.FinancialInputs, grossMonthlyPayment float64) []float64 {
	n := in.MortgageYears * paymentsPerYear
	i := monthlyRate(in.InterestRate)

	balance := in.Mortgage
	remaining := make([]float64, 0, in.MortgageYears)

	for month := 1; month <= n; month++ {
		interest := balance * i
		balance -= grossMonthlyPayment - interest

		if month%paymentsPerYear == 0 {
			remaining = append(remaining, math.Max(0, helpers.Round2(balance)))
		}
	}
	return remaining
}

// TotalDebt returns, for every year, the gross payments still due over the rest
// of the term. Unlike RemainingPrincipal it includes future interest.
func TotalDebt(in types.FinancialInputs, grossMonthlyPayment float64) []float64 {
	totalToBePaid := grossMonthlyPayment * float64(in.MortgageYears*paymentsPerYear)

	debt := make([]float64, 0, in.MortgageYears)
	paid := 0.0
	for year := 1; year <= in.MortgageYears; year++ {
		paid += grossMonthlyPayment * paymentsPerYear
		debt = append(debt, helpers.Round2(totalToBePaid-paid))
	}
	return debt
}

// ComputeDelta returns the yearly advantage of buying over renting. Positive
// values favour buying.
func ComputeDelta(
	in types.FinancialInputs,
	netYearlyPayments []float64,
	yearlyRents []float64,
	stockValues []float64,
	houseValues []float64,
	totalDebt []float64,
) []float64 {
	delta := make([]float64, 0, in.MortgageYears)
	for year := 0; year < in.MortgageYears; year++ {
		value := houseValues[year] + paymentsPerYear*(netYearlyPayments[year]-yearlyRents[year])
		loss := stockValues[year] + totalDebt[year] + in.OverbidPrice + in.OverheadCosts
		if !in.IsYoungerThan32 {
			loss += in.HouseValue * OlderBuyerSurchargeRate
		}
		delta = append(delta, helpers.Round2(value-loss))
	}
	return delta
}

// Project runs the full pipeline. The amortization schedule is computed once and
// its gross monthly payment is reused for the principal and debt sequences.
func Project(in types.FinancialInputs) types.Projection {
	netYearlyPayments, gross := NetYearlyPayments(in)
	yearlyRents := YearlyRents(in)
	houseValues := HouseValues(in)
	stockValues := StockValues(in)
	remainingPrincipal := RemainingPrincipal(in, gross)
	totalDebt := TotalDebt(in, gross)
	delta := ComputeDelta(in, netYearlyPayments, yearlyRents, stockValues, houseValues, totalDebt)

	return types.Projection{
		Years:               in.MortgageYears,
		GrossMonthlyPayment: helpers.Round2(gross),
		NetYearlyPayments:   netYearlyPayments,
		YearlyRents:         yearlyRents,
		HouseValues:         houseValues,
		StockValues:         stockValues,
		RemainingPrincipal:  remainingPrincipal,
		TotalDebt:           totalDebt,
		Delta:               delta,
	}
}
