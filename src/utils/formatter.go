package utils

import (
	"math"
	"strconv"
)

type Formatter struct {
}

// FloorToStep floors value down to the closest multiple of step. This is the
// single quantity rounding policy of the bot, decimal truncation is not used.
func (m *Formatter) FloorToStep(value float64, step float64) float64 {
	if step <= 0.00 {
		return value
	}

	floored := math.Floor(value/step) * step

	// Counter float64 artifacts like 0.030000000000000002
	ratio := math.Pow(10, 12)
	return math.Round(floored*ratio) / ratio
}

// FormatQuantityText renders a quantity with a fixed amount of decimals, the
// way ByBit expects qty in order payloads.
func (m *Formatter) FormatQuantityText(quantity float64, precision int) string {
	return strconv.FormatFloat(quantity, 'f', precision, 64)
}

func (m *Formatter) Round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

func (m *Formatter) ToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(m.Round(num*output)) / output
}
