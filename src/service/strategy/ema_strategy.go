package strategy

import (
	"time"

	"gitlab.com/open-soft/go-reversal-bot/src/model"
)

// EmaReversalStrategy classifies the live price against an EMA band and
// decides the reversal direction. Pure computation, no side effects.
type EmaReversalStrategy struct {
	Config model.StrategyConfig
}

// CalculateEma seeds with the oldest close and applies the standard
// smoothing factor 2/(period+1) over the rest of the window.
func CalculateEma(closes []float64, period int64) float64 {
	smoothing := 2.00 / (float64(period) + 1.00)

	ema := closes[0]
	for i := 1; i < len(closes); i++ {
		ema = (closes[i]-ema)*smoothing + ema
	}

	return ema
}

func (s *EmaReversalStrategy) ComputeSignal(closes []float64, price float64) (model.Signal, error) {
	if int64(len(closes)) < s.Config.EmaPeriod || price <= 0.00 {
		return model.Signal{}, model.ErrInsufficientData
	}

	ema := CalculateEma(closes, s.Config.EmaPeriod)
	upperBand := ema * (1 + s.Config.UpperBandPercent)
	lowerBand := ema * (1 - s.Config.LowerBandPercent)

	classification := model.SignalNeutral
	if price >= upperBand {
		classification = model.SignalAboveUpper
	} else if price <= lowerBand {
		classification = model.SignalBelowLower
	}

	return model.Signal{
		Symbol:         s.Config.Symbol,
		Price:          price,
		Ema:            ema,
		UpperBand:      upperBand,
		LowerBand:      lowerBand,
		Classification: classification,
	}, nil
}

// Decide applies the trigger rule. Re-signaling the side already held is a
// no-op, the bot never queues or doubles an exposure.
func (s *EmaReversalStrategy) Decide(signal model.Signal, currentSide model.PositionSide) model.Decision {
	decision := model.Decision{
		StrategyName: model.EmaReversalStrategyName,
		Operation:    model.OperationHold,
		TargetSide:   currentSide,
		Price:        signal.Price,
		Timestamp:    time.Now().Unix(),
	}

	if signal.IsAboveUpper() && !currentSide.IsShort() {
		decision.Operation = model.OperationReverseShort
		decision.TargetSide = model.PositionSideShort
		decision.Leverage = s.Config.ShortLeverage

		return decision
	}

	if signal.IsBelowLower() && !currentSide.IsLong() {
		decision.Operation = model.OperationReverseLong
		decision.TargetSide = model.PositionSideLong
		decision.Leverage = s.Config.LongLeverage

		return decision
	}

	return decision
}
