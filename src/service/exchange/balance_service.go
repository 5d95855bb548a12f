package exchange

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-reversal-bot/src/client"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
)

type BalanceServiceInterface interface {
	GetEquity(coin string, cache bool) (float64, error)
	InvalidateEquityCache(coin string)
}

type BalanceService struct {
	RDB        *redis.Client
	Ctx        *context.Context
	CurrentBot *model.Bot
	ByBit      client.ExchangeAPIInterface
}

func (b *BalanceService) InvalidateEquityCache(coin string) {
	b.RDB.Del(*b.Ctx, b.getEquityCacheKey(coin))
}

func (b *BalanceService) GetEquity(coin string, cache bool) (float64, error) {
	cached := b.RDB.Get(*b.Ctx, b.getEquityCacheKey(coin)).Val()

	if len(cached) > 0 && cache {
		equityCached, err := strconv.ParseFloat(cached, 64)

		if err == nil {
			return equityCached, nil
		}
	}

	equity, err := b.ByBit.GetEquity(coin)

	if err != nil {
		return 0.00, err
	}

	log.Printf("[%s] Equity is: %f", coin, equity)
	b.RDB.Set(*b.Ctx, b.getEquityCacheKey(coin), equity, time.Minute)

	return equity, nil
}

func (b *BalanceService) getEquityCacheKey(coin string) string {
	return fmt.Sprintf("equity-%s-account-%d", coin, b.CurrentBot.Id)
}
