package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
	"gitlab.com/open-soft/go-reversal-bot/src/validator"
)

func validConfig() model.StrategyConfig {
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
		BalanceUsageFraction: 0.95,
		SettlementCoin:       "USDC",
		PollIntervalSeconds:  60,
		SettleTimeoutSeconds: 10,
	}
}

func TestShouldAcceptValidConfig(t *testing.T) {
	configValidator := validator.StrategyConfigValidator{}
	assert.Nil(t, configValidator.Validate(validConfig()))
}

func TestShouldRejectInvalidConfig(t *testing.T) {
	assertion := assert.New(t)
	configValidator := validator.StrategyConfigValidator{}

	config := validConfig()
	config.Symbol = ""
	assertion.NotNil(configValidator.Validate(config))

	config = validConfig()
	config.EmaPeriod = 1
	assertion.NotNil(configValidator.Validate(config))

	config = validConfig()
	config.UpperBandPercent = 0.00
	assertion.NotNil(configValidator.Validate(config))

	config = validConfig()
	config.LowerBandPercent = 1.50
	assertion.NotNil(configValidator.Validate(config))

	config = validConfig()
	config.ShortLeverage = 0.50
	assertion.NotNil(configValidator.Validate(config))

	config = validConfig()
	config.MinOrderQty = 0.00
	assertion.NotNil(configValidator.Validate(config))

	config = validConfig()
	config.QtyPrecision = 12
	assertion.NotNil(configValidator.Validate(config))

	config = validConfig()
	config.BalanceUsageFraction = 1.20
	assertion.NotNil(configValidator.Validate(config))

	config = validConfig()
	config.PollIntervalSeconds = 0
	assertion.NotNil(configValidator.Validate(config))

	config = validConfig()
	config.SettleTimeoutSeconds = 0
	assertion.NotNil(configValidator.Validate(config))
}
