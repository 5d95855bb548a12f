package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-reversal-bot/src/client"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
)

type PriceServiceInterface interface {
	GetLastPrice(symbol string) (float64, error)
}

// PriceService keeps the last trade price in a short-lived redis cache fed by
// the public WS ticker stream, with the REST ticker endpoint as fallback.
type PriceService struct {
	RDB        *redis.Client
	Ctx        *context.Context
	CurrentBot *model.Bot
	ByBit      client.ExchangeAPIInterface
}

func (p *PriceService) GetLastPrice(symbol string) (float64, error) {
	cached := p.RDB.Get(*p.Ctx, p.getLastPriceCacheKey(symbol)).Val()

	if len(cached) > 0 {
		price, err := strconv.ParseFloat(cached, 64)

		if err == nil && price > 0.00 {
			return price, nil
		}
	}

	price, err := p.ByBit.GetLastPrice(symbol)

	if err != nil {
		return 0.00, model.ErrDataUnavailable
	}

	p.SetLastPrice(symbol, price)

	return price, nil
}

func (p *PriceService) SetLastPrice(symbol string, price float64) {
	p.RDB.Set(*p.Ctx, p.getLastPriceCacheKey(symbol), price, time.Second*30)
}

// StartTickerStream connects the public linear WS and keeps the price cache
// warm. REST fallback in GetLastPrice covers stream gaps.
func (p *PriceService) StartTickerStream(wsDsn string, symbol string) {
	eventChannel := make(chan []byte, 1000)
	streams := []string{fmt.Sprintf("tickers.%s", symbol)}

	go func() {
		for {
			message := <-eventChannel

			if !strings.Contains(string(message), "tickers.") {
				continue
			}

			var tickerEvent model.ByBitWsTickerEvent
			err := json.Unmarshal(message, &tickerEvent)
			if err != nil {
				continue
			}

			if tickerEvent.Data.Symbol != symbol {
				continue
			}

			lastPrice, err := strconv.ParseFloat(tickerEvent.Data.LastPrice, 64)
			// Ticker delta frames may omit lastPrice, skip those
			if err != nil || lastPrice <= 0.00 {
				continue
			}

			p.SetLastPrice(symbol, lastPrice)
		}
	}()

	client.ListenByBit(wsDsn, eventChannel, streams, 1)
	log.Printf("[%s] WS ticker stream started", symbol)
}

func (p *PriceService) getLastPriceCacheKey(symbol string) string {
	return fmt.Sprintf("ticker-last-price-%s-bot-%d", symbol, p.CurrentBot.Id)
}
