package exchange

import (
	"log"

	"gitlab.com/open-soft/go-reversal-bot/src/model"
	"gitlab.com/open-soft/go-reversal-bot/src/utils"
)

// SizingService converts equity, leverage and price into a venue-compliant
// market order quantity. Quantity is floored to a multiple of the minimum
// order quantity, the only rounding policy in use.
type SizingService struct {
	Formatter *utils.Formatter
}

func (s *SizingService) CalculateIntent(
	config model.StrategyConfig,
	targetSide model.PositionSide,
	leverage float64,
	balance float64,
	price float64,
) (model.OrderIntent, error) {
	if balance < model.MinTradableBalance {
		return model.OrderIntent{}, model.ErrInsufficientBalance
	}

	if price <= 0.00 {
		return model.OrderIntent{}, model.ErrDataUnavailable
	}

	usableBalance := balance * config.BalanceUsageFraction
	positionValue := usableBalance * leverage
	rawQty := positionValue / price

	quantity := s.Formatter.FloorToStep(rawQty, config.MinOrderQty)

	if quantity < config.MinOrderQty {
		log.Printf(
			"[%s] Calculated quantity %.8f is below the minimum %.8f",
			config.Symbol,
			quantity,
			config.MinOrderQty,
		)
		return model.OrderIntent{}, model.ErrQuantityBelowMinimum
	}

	return model.OrderIntent{
		Side:         targetSide,
		Leverage:     leverage,
		Quantity:     quantity,
		QuantityText: s.Formatter.FormatQuantityText(quantity, config.QtyPrecision),
	}, nil
}
