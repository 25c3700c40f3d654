package helpers

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// Round2 rounds a monetary amount to cents. Rounding works on the exact binary
// value of the float, with exact ties going to the even cent, so 2.675 becomes
// 2.67 and 0.125 becomes 0.12.
func Round2(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 2, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice. The sum
// is taken exactly and only the quotient is rounded back to a float64.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := new(big.Rat)
	for _, v := range values {
		r := new(big.Rat).SetFloat64(v)
		if r == nil {
			return math.NaN()
		}
		sum.Add(sum, r)
	}
	mean, _ := sum.Quo(sum, new(big.Rat).SetInt64(int64(len(values)))).Float64()
	return mean
}

// Compound grows base by rate for the given number of periods.
func Compound(base, rate float64, periods int) float64 {
	return base * math.Pow(1+rate, float64(periods))
}

// FormatMoney renders an amount with two decimals and thousands separators.
func FormatMoney(value float64) string {
	return moneyPrinter.Sprintf("%.2f", Round2(value))
}

// FormatPercent renders a fractional rate as a percentage, e.g. 0.045 -> "4.50%".
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%s%%", decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).StringFixed(2))
}

// NormalizeString lower-cases and trims s.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
