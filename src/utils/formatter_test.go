package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-reversal-bot/src/utils"
)

func TestShouldFloorToStep(t *testing.T) {
	assertion := assert.New(t)

	formatter := utils.Formatter{}

	assertion.Equal(0.030, formatter.FloorToStep(0.0300000003, 0.001))
	assertion.Equal(0.029, formatter.FloorToStep(0.0299999, 0.001))
	assertion.Equal(1.00, formatter.FloorToStep(1.999, 1.00))
	assertion.Equal(0.00, formatter.FloorToStep(0.0009, 0.001))

	// Step zero keeps value untouched
	assertion.Equal(0.12345, formatter.FloorToStep(0.12345, 0.00))
}

func TestShouldFormatQuantityText(t *testing.T) {
	assertion := assert.New(t)

	formatter := utils.Formatter{}

	assertion.Equal("0.030", formatter.FormatQuantityText(0.03, 3))
	assertion.Equal("12.500", formatter.FormatQuantityText(12.5, 3))
	assertion.Equal("3", formatter.FormatQuantityText(3.2, 0))
}

func TestShouldRoundToFixed(t *testing.T) {
	assertion := assert.New(t)

	formatter := utils.Formatter{}

	assertion.Equal(101.75, formatter.ToFixed(101.7499999, 2))
	assertion.Equal(0.003, formatter.ToFixed(0.0030000001, 6))
}
