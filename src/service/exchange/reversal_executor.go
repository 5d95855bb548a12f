package exchange

import (
	"log"
	"sync"

	"gitlab.com/open-soft/go-reversal-bot/src/client"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
	"gitlab.com/open-soft/go-reversal-bot/src/repository"
	"gitlab.com/open-soft/go-reversal-bot/src/utils"
)

type ReversalExecutorInterface interface {
	Execute(targetSide model.PositionSide, leverage float64) model.ExecutionResult
}

type executionState int

const stateIdle executionState = 0
const stateExecuting executionState = 1

// ReversalExecutor runs the close -> settle -> reopen sequence. At most one
// execution is in flight, triggers arriving while executing are dropped.
type ReversalExecutor struct {
	Config             model.StrategyConfig
	CurrentBot         *model.Bot
	ByBit              client.ExchangeOrderAPIInterface
	BalanceService     BalanceServiceInterface
	PriceService       PriceServiceInterface
	PositionService    PositionServiceInterface
	SizingService      *SizingService
	ReversalRepository repository.ReversalStorageInterface
	TimeService        utils.TimeServiceInterface
	Formatter          *utils.Formatter

	stateMutex sync.Mutex
	state      executionState
}

// begin performs the Idle -> Executing transition. The returned release puts
// the executor back to Idle and must run on every exit path.
func (e *ReversalExecutor) begin() (func(), bool) {
	e.stateMutex.Lock()
	defer e.stateMutex.Unlock()

	if e.state == stateExecuting {
		return nil, false
	}

	e.state = stateExecuting

	return func() {
		e.stateMutex.Lock()
		e.state = stateIdle
		e.stateMutex.Unlock()
	}, true
}

func (e *ReversalExecutor) Execute(targetSide model.PositionSide, leverage float64) model.ExecutionResult {
	symbol := e.Config.Symbol

	release, ok := e.begin()
	if !ok {
		log.Printf("[%s] Reversal to %s dropped, execution is already in flight", symbol, targetSide)
		return model.ExecutionResult{Dropped: true, Side: targetSide}
	}
	defer release()

	// Safety check before any mutating call
	balance, err := e.BalanceService.GetEquity(e.Config.SettlementCoin, false)
	if err != nil {
		log.Printf("[%s] Reversal aborted, equity is unknown: %s", symbol, err.Error())
		return model.ExecutionResult{Side: targetSide, Error: model.ErrDataUnavailable}
	}

	if balance < model.MinTradableBalance {
		log.Printf("[%s] Equity %.2f is below the tradable minimum, reversal aborted", symbol, balance)
		return model.ExecutionResult{Side: targetSide, Error: model.ErrInsufficientBalance}
	}

	log.Printf(">>> [%s] Executing reversal to %s (%.0fx)", symbol, targetSide, leverage)

	reversal := model.Reversal{
		BotId:      e.CurrentBot.Id,
		Symbol:     symbol,
		TargetSide: targetSide,
		Leverage:   leverage,
		Status:     model.ReversalStatusExecuting,
		CreatedAt:  e.TimeService.GetNowDateTimeString(),
	}

	// The audit record must never block trading
	if reversalId, auditErr := e.ReversalRepository.Create(reversal); auditErr == nil {
		reversal.Id = *reversalId
	}

	// Step 1: clear stale resting orders from a prior failed cycle
	if err := e.ByBit.CancelAllOrders(symbol); err != nil {
		return e.fail(reversal, err)
	}

	// Step 2: close the exact open size reduce-only, skip when flat
	position, err := e.PositionService.GetOpenPosition(symbol)
	if err != nil {
		return e.fail(reversal, err)
	}

	if position.IsOpened() {
		closeQty := e.Formatter.FormatQuantityText(position.Size, e.Config.QtyPrecision)
		log.Printf("[%s] Closing %s %s exposure", symbol, closeQty, position.Side)

		closeOrderId, closeErr := e.ByBit.MarketOrder(symbol, position.Side.CloseDirection(), closeQty, true, true)
		if closeErr != nil {
			return e.fail(reversal, closeErr)
		}
		reversal.CloseOrderId = closeOrderId

		// Step 3: the close is a verified precondition, not a blind wait
		if settleErr := e.waitUntilFlat(symbol); settleErr != nil {
			return e.fail(reversal, settleErr)
		}
	}

	// Step 4: fresh post-close balance and price, leverage before sizing
	e.BalanceService.InvalidateEquityCache(e.Config.SettlementCoin)
	balance, err = e.BalanceService.GetEquity(e.Config.SettlementCoin, false)
	if err != nil {
		return e.fail(reversal, err)
	}

	price, err := e.PriceService.GetLastPrice(symbol)
	if err != nil {
		return e.fail(reversal, err)
	}

	if err := e.ByBit.SetLeverage(symbol, leverage, leverage); err != nil {
		return e.fail(reversal, err)
	}

	intent, err := e.SizingService.CalculateIntent(e.Config, targetSide, leverage, balance, price)
	if err != nil {
		return e.fail(reversal, err)
	}

	log.Printf(
		"[%s] Balance: %.2f, Leverage: %.0fx, Position value: %.2f, Qty: %s",
		symbol,
		balance,
		leverage,
		balance*e.Config.BalanceUsageFraction*leverage,
		intent.QuantityText,
	)

	reversal.Quantity = intent.Quantity
	reversal.Price = price

	// Step 5: open the new position
	openOrderId, err := e.ByBit.MarketOrder(symbol, targetSide.OrderDirection(), intent.QuantityText, false, false)
	if err != nil {
		return e.fail(reversal, err)
	}
	reversal.OpenOrderId = openOrderId

	// Step 6: confirmed submission updates the believed side
	e.ReversalRepository.SavePositionSideCache(symbol, targetSide)

	reversal.Status = model.ReversalStatusSuccess
	if reversal.Id > 0 {
		_ = e.ReversalRepository.Update(reversal)
	}

	log.Printf(">>> [%s] Reversal done, %s position is opened", symbol, targetSide)

	return model.ExecutionResult{Success: true, Side: targetSide}
}

// waitUntilFlat polls the position endpoint until the close order settles.
// Timeout counts as a venue rejection.
func (e *ReversalExecutor) waitUntilFlat(symbol string) error {
	deadline := e.TimeService.GetNowUnix() + e.Config.SettleTimeoutSeconds

	for {
		position, err := e.PositionService.GetOpenPosition(symbol)

		if err == nil && !position.IsOpened() {
			return nil
		}

		if e.TimeService.GetNowUnix() >= deadline {
			return model.NewVenueError(
				-1,
				"close order did not settle within the timeout",
			)
		}

		e.TimeService.WaitSeconds(1)
	}
}

// fail aborts the remaining sequence. Exchange state may have diverged, so
// every believed value is dropped and resynced from the exchange.
func (e *ReversalExecutor) fail(reversal model.Reversal, err error) model.ExecutionResult {
	log.Printf("[%s] Reversal to %s failed: %s", reversal.Symbol, reversal.TargetSide, err.Error())

	e.PositionService.Resync(reversal.Symbol)
	e.BalanceService.InvalidateEquityCache(e.Config.SettlementCoin)

	if reversal.Id > 0 {
		reversal.Status = model.ReversalStatusError
		reversal.ErrorMessage = err.Error()
		_ = e.ReversalRepository.Update(reversal)
	}

	return model.ExecutionResult{Side: reversal.TargetSide, Error: err}
}
