package export

import (
	"math"

	"github.com/shopspring/decimal"
)

// notAvailable is shown for amounts that cannot be priced, such as the NaN
// a permissive takeoff yields for nonsensical input.
const notAvailable = "n/a"

// FormatMoney renders an amount rounded half away from zero to cents.
// Rounding happens here only; the calculators keep full float precision.
func FormatMoney(symbol string, amount float64) string {
	if !isFinite(amount) {
		return notAvailable
	}
	d := decimal.NewFromFloat(amount).Round(2)
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}

// cellMoney is FormatMoney without the symbol, for spreadsheet cells.
// Non-finite amounts become a text cell.
func cellMoney(amount float64) interface{} {
	if !isFinite(amount) {
		return notAvailable
	}
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// cellNumber passes finite values through and turns the rest into text, so
// a workbook never holds a NaN or infinite number.
func cellNumber(v float64) interface{} {
	if !isFinite(v) {
		return notAvailable
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
