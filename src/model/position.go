package model

type PositionSide string

const PositionSideNone PositionSide = "None"
const PositionSideLong PositionSide = "Long"
const PositionSideShort PositionSide = "Short"

func (p PositionSide) IsNone() bool {
	return p == PositionSideNone
}

func (p PositionSide) IsLong() bool {
	return p == PositionSideLong
}

func (p PositionSide) IsShort() bool {
	return p == PositionSideShort
}

// OrderDirection is the venue order direction that opens this side.
func (p PositionSide) OrderDirection() string {
	if p.IsShort() {
		return ByBitTradeSideSell
	}

	return ByBitTradeSideBuy
}

// CloseDirection is the venue order direction that flattens this side.
func (p PositionSide) CloseDirection() string {
	if p.IsShort() {
		return ByBitTradeSideBuy
	}

	return ByBitTradeSideSell
}

type Position struct {
	Symbol        string       `json:"symbol"`
	Side          PositionSide `json:"side"`
	Size          float64      `json:"size"`
	AvgPrice      float64      `json:"avgPrice"`
	Leverage      float64      `json:"leverage"`
	UnrealisedPnl float64      `json:"unrealisedPnl"`
	UpdatedAt     int64        `json:"updatedAt"`
}

func (p *Position) IsOpened() bool {
	return p.Size > 0.00 && !p.Side.IsNone()
}
