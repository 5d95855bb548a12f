package model

import "fmt"

// MinTradableBalance is the smallest settlement-coin equity the bot is willing
// to trade with. Below this value every cycle is a pure no-op.
const MinTradableBalance = 10.00

type StrategyConfig struct {
	Symbol               string  `json:"symbol"`
	Interval             string  `json:"interval"`
	EmaPeriod            int64   `json:"emaPeriod"`
	UpperBandPercent     float64 `json:"upperBandPercent"`
	LowerBandPercent     float64 `json:"lowerBandPercent"`
	LongLeverage         float64 `json:"longLeverage"`
	ShortLeverage        float64 `json:"shortLeverage"`
	MinOrderQty          float64 `json:"minOrderQty"`
	QtyPrecision         int     `json:"qtyPrecision"`
	BalanceUsageFraction float64 `json:"balanceUsageFraction"`
	SettlementCoin       string  `json:"settlementCoin"`
	PollIntervalSeconds  int64   `json:"pollIntervalSeconds"`
	SettleTimeoutSeconds int64   `json:"settleTimeoutSeconds"`
}

// KLineLimit is the amount of klines requested per cycle, a few extra
// candles on top of the EMA period.
func (c StrategyConfig) KLineLimit() int64 {
	return c.EmaPeriod + 5
}

func (c StrategyConfig) GetSymbol() string {
	return c.Symbol
}

func (c StrategyConfig) Describe() string {
	return fmt.Sprintf(
		"%s EMA(%d) +%.2f%%/-%.2f%% on %s chart, Long: %.0fx, Short: %.0fx",
		c.Symbol,
		c.EmaPeriod,
		c.UpperBandPercent*100,
		c.LowerBandPercent*100,
		c.Interval,
		c.LongLeverage,
		c.ShortLeverage,
	)
}
