package model

// OrderIntent is the sized market order produced by the sizing calculator
// and consumed by the reversal executor.
type OrderIntent struct {
	Side         PositionSide `json:"side"`
	Leverage     float64      `json:"leverage"`
	Quantity     float64      `json:"quantity"`
	QuantityText string       `json:"quantityText"`
}

const ReversalStatusExecuting = "executing"
const ReversalStatusSuccess = "success"
const ReversalStatusError = "error"
const ReversalStatusDropped = "dropped"

// Reversal is the audit record of one execution attempt. It never feeds back
// into the trading decision, the exchange stays the source of truth.
type Reversal struct {
	Id           int64        `json:"id"`
	BotId        int64        `json:"botId"`
	Symbol       string       `json:"symbol"`
	TargetSide   PositionSide `json:"targetSide"`
	Leverage     float64      `json:"leverage"`
	Quantity     float64      `json:"quantity"`
	Price        float64      `json:"price"`
	CloseOrderId string       `json:"closeOrderId"`
	OpenOrderId  string       `json:"openOrderId"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"errorMessage"`
	CreatedAt    string       `json:"createdAt"`
}

type ExecutionResult struct {
	Success bool         `json:"success"`
	Dropped bool         `json:"dropped"`
	Side    PositionSide `json:"side"`
	Error   error        `json:"-"`
}
