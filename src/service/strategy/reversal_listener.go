package strategy

import (
	"log"
	"time"

	"gitlab.com/open-soft/go-reversal-bot/src/client"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
	"gitlab.com/open-soft/go-reversal-bot/src/service/exchange"
)

// ReversalTradeListener drives the strategy on a fixed cadence. Every tick
// evaluates and logs the signal, even while an execution is in flight; only
// the mutating sequence is single-flighted inside the executor.
type ReversalTradeListener struct {
	Config          model.StrategyConfig
	Strategy        *EmaReversalStrategy
	ByBit           client.ExchangeAPIInterface
	PriceService    exchange.PriceServiceInterface
	PositionService exchange.PositionServiceInterface
	Executor        exchange.ReversalExecutorInterface
}

func (l *ReversalTradeListener) ListenAll() {
	log.Printf("==> EMA reversal bot started <==")
	log.Printf("   - Strategy: %s", l.Config.Describe())

	// First cycle fires immediately, then on the fixed cadence
	l.CheckStrategy()

	ticker := time.NewTicker(time.Second * time.Duration(l.Config.PollIntervalSeconds))
	defer ticker.Stop()

	for range ticker.C {
		l.CheckStrategy()
	}
}

func (l *ReversalTradeListener) CheckStrategy() {
	symbol := l.Config.Symbol

	kLines := l.ByBit.GetKLinesCached(symbol, l.Config.Interval, l.Config.KLineLimit())
	batch := model.KlineBatch{Items: kLines}
	closes := batch.ClosePrices()

	price, err := l.PriceService.GetLastPrice(symbol)
	if err != nil {
		log.Printf("[%s] Cycle skipped: %s", symbol, err.Error())
		return
	}

	signal, err := l.Strategy.ComputeSignal(closes, price)
	if err != nil {
		log.Printf("[%s] Cycle skipped: %s", symbol, err.Error())
		return
	}

	currentSide := l.PositionService.GetCurrentSide(symbol)

	log.Printf(
		"[%s] Price: %.2f | EMA(%d): %.2f | Upper: %.2f | Lower: %.2f | Side: %s",
		symbol,
		signal.Price,
		l.Config.EmaPeriod,
		signal.Ema,
		signal.UpperBand,
		signal.LowerBand,
		currentSide,
	)

	decision := l.Strategy.Decide(signal, currentSide)

	if !decision.IsReversal() {
		return
	}

	// The executor guard drops the trigger when a reversal is in flight,
	// ticks keep evaluating in the meantime.
	go l.Executor.Execute(decision.TargetSide, decision.Leverage)
}
