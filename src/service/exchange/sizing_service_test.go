package exchange_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
	"gitlab.com/open-soft/go-reversal-bot/src/service/exchange"
	"gitlab.com/open-soft/go-reversal-bot/src/utils"
)

func newSizingConfig() model.StrategyConfig {
	return model.StrategyConfig{
		Symbol:               "BTCUSDC",
		Interval:             "60",
		EmaPeriod:            3,
		UpperBandPercent:     0.003,
		LowerBandPercent:     0.003,
		LongLeverage:         10.00,
		ShortLeverage:        5.00,
		MinOrderQty:          0.001,
		QtyPrecision:         3,
		BalanceUsageFraction: 1.00,
		SettlementCoin:       "USDC",
		PollIntervalSeconds:  60,
		SettleTimeoutSeconds: 10,
	}
}

func TestShouldCalculateFlooredQuantity(t *testing.T) {
	assertion := assert.New(t)

	sizingService := exchange.SizingService{Formatter: &utils.Formatter{}}

	// 1000 / 33333.33 = 0.0300000027, floored to the 0.001 step
	intent, err := sizingService.CalculateIntent(newSizingConfig(), model.PositionSideLong, 1.00, 1000.00, 33333.33)
	assertion.Nil(err)
	assertion.Equal(0.030, intent.Quantity)
	assertion.Equal("0.030", intent.QuantityText)
	assertion.Equal(model.PositionSideLong, intent.Side)
	assertion.Equal(1.00, intent.Leverage)
}

func TestShouldApplyLeverageAndUsageFraction(t *testing.T) {
	assertion := assert.New(t)

	config := newSizingConfig()
	config.BalanceUsageFraction = 0.95

	sizingService := exchange.SizingService{Formatter: &utils.Formatter{}}

	// 1000 * 0.95 * 5 = 4750 position value
	intent, err := sizingService.CalculateIntent(config, model.PositionSideShort, 5.00, 1000.00, 25000.00)
	assertion.Nil(err)
	assertion.Equal(0.19, intent.Quantity)
	assertion.Equal("0.190", intent.QuantityText)
}

func TestShouldRejectBalanceBelowTradableMinimum(t *testing.T) {
	assertion := assert.New(t)

	sizingService := exchange.SizingService{Formatter: &utils.Formatter{}}

	_, err := sizingService.CalculateIntent(newSizingConfig(), model.PositionSideLong, 10.00, 5.00, 25000.00)
	assertion.ErrorIs(err, model.ErrInsufficientBalance)

	// The boundary value is tradable
	_, err = sizingService.CalculateIntent(newSizingConfig(), model.PositionSideLong, 10.00, model.MinTradableBalance, 25000.00)
	assertion.Nil(err)
}

func TestShouldRejectQuantityBelowMinimum(t *testing.T) {
	assertion := assert.New(t)

	config := newSizingConfig()
	config.MinOrderQty = 0.01

	sizingService := exchange.SizingService{Formatter: &utils.Formatter{}}

	// 15 / 25000 = 0.0006, floored to zero
	_, err := sizingService.CalculateIntent(config, model.PositionSideLong, 1.00, 15.00, 25000.00)
	assertion.ErrorIs(err, model.ErrQuantityBelowMinimum)
}

func TestShouldRejectUnknownPrice(t *testing.T) {
	assertion := assert.New(t)

	sizingService := exchange.SizingService{Formatter: &utils.Formatter{}}

	_, err := sizingService.CalculateIntent(newSizingConfig(), model.PositionSideLong, 1.00, 1000.00, 0.00)
	assertion.ErrorIs(err, model.ErrDataUnavailable)
}

func TestQuantityNeverExceedsPositionValue(t *testing.T) {
	assertion := assert.New(t)

	sizingService := exchange.SizingService{Formatter: &utils.Formatter{}}
	config := newSizingConfig()
	config.BalanceUsageFraction = 0.95

	balances := []float64{10.00, 57.31, 250.00, 1234.56, 100000.00}
	prices := []float64{101.17, 4021.55, 33333.33, 64000.01}

	for _, balance := range balances {
		for _, price := range prices {
			intent, err := sizingService.CalculateIntent(config, model.PositionSideLong, 5.00, balance, price)
			if err != nil {
				assertion.ErrorIs(err, model.ErrQuantityBelowMinimum)
				continue
			}

			maxQty := balance * config.BalanceUsageFraction * 5.00 / price
			assertion.LessOrEqual(intent.Quantity, maxQty)
			assertion.GreaterOrEqual(intent.Quantity, config.MinOrderQty)

			// The wire text parses back to the same quantity
			parsed, parseErr := strconv.ParseFloat(intent.QuantityText, 64)
			assertion.Nil(parseErr)
			assertion.InDelta(intent.Quantity, parsed, 0.0000001)
		}
	}
}
