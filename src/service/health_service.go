package service

import (
	"log"

	"gitlab.com/open-soft/go-reversal-bot/src/model"
	"gitlab.com/open-soft/go-reversal-bot/src/service/exchange"
)

// HealthService logs a periodic one-line status of the bot. Log only, there
// is no inbound surface to serve it from.
type HealthService struct {
	Config          model.StrategyConfig
	CurrentBot      *model.Bot
	BalanceService  exchange.BalanceServiceInterface
	PositionService exchange.PositionServiceInterface
}

func (h *HealthService) Report() {
	equity, err := h.BalanceService.GetEquity(h.Config.SettlementCoin, true)
	if err != nil {
		log.Printf("[health] bot %s: equity is unknown: %s", h.CurrentBot.BotUuid, err.Error())
		return
	}

	side := h.PositionService.GetCurrentSide(h.Config.Symbol)

	log.Printf(
		"[health] bot %s: %s side=%s equity=%.2f %s",
		h.CurrentBot.BotUuid,
		h.Config.Symbol,
		side,
		equity,
		h.Config.SettlementCoin,
	)
}
