package validator

import (
	"errors"
	"fmt"

	"gitlab.com/open-soft/go-reversal-bot/src/model"
)

type StrategyConfigValidator struct {
}

func (v *StrategyConfigValidator) Validate(config model.StrategyConfig) error {
	if len(config.Symbol) == 0 {
		return errors.New("strategy symbol must be set")
	}

	if len(config.Interval) == 0 {
		return errors.New("strategy kline interval must be set")
	}

	if config.EmaPeriod < 2 {
		return errors.New(fmt.Sprintf("EMA period %d is too short", config.EmaPeriod))
	}

	if config.UpperBandPercent <= 0.00 || config.UpperBandPercent >= 1.00 {
		return errors.New(fmt.Sprintf("upper band percent %f is out of range (0, 1)", config.UpperBandPercent))
	}

	if config.LowerBandPercent <= 0.00 || config.LowerBandPercent >= 1.00 {
		return errors.New(fmt.Sprintf("lower band percent %f is out of range (0, 1)", config.LowerBandPercent))
	}

	if config.LongLeverage < 1.00 || config.ShortLeverage < 1.00 {
		return errors.New("leverage must be at least 1")
	}

	if config.MinOrderQty <= 0.00 {
		return errors.New("minimum order quantity must be positive")
	}

	if config.QtyPrecision < 0 || config.QtyPrecision > 8 {
		return errors.New(fmt.Sprintf("quantity precision %d is out of range [0, 8]", config.QtyPrecision))
	}

	if config.BalanceUsageFraction <= 0.00 || config.BalanceUsageFraction > 1.00 {
		return errors.New(fmt.Sprintf("balance usage fraction %f is out of range (0, 1]", config.BalanceUsageFraction))
	}

	if config.PollIntervalSeconds < 1 {
		return errors.New("poll interval must be at least one second")
	}

	if config.SettleTimeoutSeconds < 1 {
		return errors.New("settle timeout must be at least one second")
	}

	return nil
}
