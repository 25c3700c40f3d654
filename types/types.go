package types

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInputs is returned when a FinancialInputs record falls outside the
// domain the projection engine is defined on.
var ErrInvalidInputs = errors.New("invalid financial inputs")

// MortgageTerms lists the mortgage lengths, in years, the engine accepts.
var MortgageTerms = []int{10, 15, 20, 25, 30}

// Column titles of the yearly comparison table, in display order.
const (
	ColumnYear               = "Year"
	ColumnNetMonthlyPayment  = "Average Net Monthly Payment (Buying)"
	ColumnYearlyRent         = "Yearly Rent"
	ColumnHouseValue         = "Estimated House Value"
	ColumnStockValue         = "Estimated Stock Value Loss"
	ColumnPrincipalRemaining = "Total Principal Remaining"
	ColumnDelta              = "Delta (Buying − Renting)"
)

// ComparisonColumns is the header row shared by the HTML table and the workbook export.
var ComparisonColumns = []string{
	ColumnYear,
	ColumnNetMonthlyPayment,
	ColumnYearlyRent,
	ColumnHouseValue,
	ColumnStockValue,
	ColumnPrincipalRemaining,
	ColumnDelta,
}

// FinancialInputs is the parameter record consumed by the projection engine.
// Rates are fractional (0.04 means 4%).
type FinancialInputs struct {
	Rent                      float64 `json:"rent"`
	Inflation                 float64 `json:"inflation"`
	HouseValue                float64 `json:"house_value"`
	IsYoungerThan32           bool    `json:"is_younger_than_32"`
	ExtraMonthlyCosts         float64 `json:"extra_monthly_costs"`
	OverbidPrice              float64 `json:"overbid_price"`
	RenovationPrice           float64 `json:"renovation_price"`
	YearlyHouseAppreciation   float64 `json:"yearly_house_appreciation"`
	YearlyStocksIncrease      float64 `json:"yearly_stocks_increase"`
	Mortgage                  float64 `json:"mortgage"`
	InterestRate              float64 `json:"interest_rate"`
	MortgageYears             int     `json:"mortgage_years"`
	TaxRate                   float64 `json:"tax_rate"`
	OverheadCosts             float64 `json:"overhead_costs"`
	IncludeOverbidInReselling bool    `json:"include_overbid_in_reselling"`
}

// Validate checks that every amount and rate is a finite non-negative number and
// that the mortgage term is one of MortgageTerms.
func (in FinancialInputs) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"rent", in.Rent},
		{"inflation", in.Inflation},
		{"house_value", in.HouseValue},
		{"extra_monthly_costs", in.ExtraMonthlyCosts},
		{"overbid_price", in.OverbidPrice},
		{"renovation_price", in.RenovationPrice},
		{"yearly_house_appreciation", in.YearlyHouseAppreciation},
		{"yearly_stocks_increase", in.YearlyStocksIncrease},
		{"mortgage", in.Mortgage},
		{"interest_rate", in.InterestRate},
		{"tax_rate", in.TaxRate},
		{"overhead_costs", in.OverheadCosts},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInputs, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidInputs, f.name, f.value)
		}
	}

	for _, term := range MortgageTerms {
		if in.MortgageYears == term {
			return nil
		}
	}
	return fmt.Errorf("%w: mortgage_years must be one of %v, got %d", ErrInvalidInputs, MortgageTerms, in.MortgageYears)
}

// FormInputs mirrors the HTML form. Percent fields are entered as percentages and
// converted to fractions by ToFinancialInputs. The default tags only seed the
// initial, empty form.
type FormInputs struct {
	Rent                      float64 `form:"rent" default:"1500" binding:"min=0"`
	Inflation                 float64 `form:"inflation" default:"2" binding:"min=0"`
	HouseValue                float64 `form:"house_value" default:"450000" binding:"min=0"`
	IsYoungerThan32           bool    `form:"is_younger_than_32"`
	ExtraMonthlyCosts         float64 `form:"extra_monthly_costs" default:"100" binding:"min=0"`
	OverbidPrice              float64 `form:"overbid_price" default:"20000" binding:"min=0"`
	RenovationPrice           float64 `form:"renovation_price" default:"15000" binding:"min=0"`
	YearlyHouseAppreciation   float64 `form:"yearly_house_appreciation" default:"3" binding:"min=0"`
	YearlyStocksIncrease      float64 `form:"yearly_stocks_increase" default:"6" binding:"min=0"`
	Mortgage                  float64 `form:"mortgage" default:"400000" binding:"min=0"`
	InterestRate              float64 `form:"interest_rate" default:"4" binding:"min=0"`
	MortgageYears             int     `form:"mortgage_years" default:"30" binding:"oneof=10 15 20 25 30"`
	TaxRate                   float64 `form:"tax_rate" default:"37" binding:"min=0"`
	OverheadCosts             float64 `form:"overhead_costs" default:"10000" binding:"min=0"`
	IncludeOverbidInReselling bool    `form:"include_overbid_in_reselling"`
}

// ToFinancialInputs converts the percent based form values into the engine's record.
func (f FormInputs) ToFinancialInputs() FinancialInputs {
	return FinancialInputs{
		Rent:                      f.Rent,
		Inflation:                 f.Inflation / 100,
		HouseValue:                f.HouseValue,
		IsYoungerThan32:           f.IsYoungerThan32,
		ExtraMonthlyCosts:         f.ExtraMonthlyCosts,
		OverbidPrice:              f.OverbidPrice,
		RenovationPrice:           f.RenovationPrice,
		YearlyHouseAppreciation:   f.YearlyHouseAppreciation / 100,
		YearlyStocksIncrease:      f.YearlyStocksIncrease / 100,
		Mortgage:                  f.Mortgage,
		InterestRate:              f.InterestRate / 100,
		MortgageYears:             f.MortgageYears,
		TaxRate:                   f.TaxRate / 100,
		OverheadCosts:             f.OverheadCosts,
		IncludeOverbidInReselling: f.IncludeOverbidInReselling,
	}
}

// Projection holds the parallel, year indexed sequences produced by the engine.
// Index 0 is the first year of the mortgage.
type Projection struct {
	Years               int       `json:"years"`
	GrossMonthlyPayment float64   `json:"gross_monthly_payment"`
	NetYearlyPayments   []float64 `json:"net_yearly_payments"`
	YearlyRents         []float64 `json:"yearly_rents"`
	HouseValues         []float64 `json:"house_values"`
	StockValues         []float64 `json:"stock_values"`
	RemainingPrincipal  []float64 `json:"remaining_principal"`
	TotalDebt           []float64 `json:"total_debt"`
	Delta               []float64 `json:"delta"`
}

// YearRow is one row of the yearly comparison table.
type YearRow struct {
	Year               int     `json:"year"`
	NetMonthlyPayment  float64 `json:"net_monthly_payment"`
	YearlyRent         float64 `json:"yearly_rent"`
	HouseValue         float64 `json:"house_value"`
	StockValue         float64 `json:"stock_value"`
	PrincipalRemaining float64 `json:"principal_remaining"`
	Delta              float64 `json:"delta"`
}

// Rows transposes the projection into table rows, years numbered from 1.
func (p Projection) Rows() []YearRow {
	rows := make([]YearRow, 0, p.Years)
	for y := 0; y < p.Years; y++ {
		rows = append(rows, YearRow{
			Year:               y + 1,
			NetMonthlyPayment:  p.NetYearlyPayments[y],
			YearlyRent:         p.YearlyRents[y],
			HouseValue:         p.HouseValues[y],
			StockValue:         p.StockValues[y],
			PrincipalRemaining: p.RemainingPrincipal[y],
			Delta:              p.Delta[y],
		})
	}
	return rows
}

// ProjectionResponse is the JSON body returned by the projection API.
type ProjectionResponse struct {
	Inputs     FinancialInputs `json:"inputs"`
	Projection Projection      `json:"projection"`
	Rows       []YearRow       `json:"rows"`
}
