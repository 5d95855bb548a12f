package model

const EmaReversalStrategyName = "ema_reversal"

const OperationReverseLong = "REVERSE_LONG"
const OperationReverseShort = "REVERSE_SHORT"
const OperationHold = "HOLD"

type Decision struct {
	StrategyName string       `json:"strategyName"`
	Operation    string       `json:"operation"`
	TargetSide   PositionSide `json:"targetSide"`
	Leverage     float64      `json:"leverage"`
	Price        float64      `json:"price"`
	Timestamp    int64        `json:"timestamp"`
}

func (d *Decision) IsReversal() bool {
	return d.Operation == OperationReverseLong || d.Operation == OperationReverseShort
}
