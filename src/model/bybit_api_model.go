package model

import (
	"encoding/json"
	"strconv"
)

const ByBitCategoryLinear = "linear"

const ByBitTradeSideBuy = "Buy"
const ByBitTradeSideSell = "Sell"

const ByBitAccountTypeUnified = "UNIFIED"

// 110043: leverage not modified. Setting the leverage the position already
// has is rejected by ByBit but is not an error for us.
const ByBitCodeLeverageNotModified = 110043

type ByBitKeyValueResult struct {
	Code    int64          `json:"retCode"`
	Message string         `json:"retMsg"`
	Result  map[string]any `json:"result"`
}

type ByBitKLineHistory struct {
	StartTime string `json:"startTime"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
	Turnover  string `json:"turnover"`
}

// Kline rows come as positional JSON arrays.
func (k *ByBitKLineHistory) UnmarshalJSON(data []byte) error {
	var s []json.RawMessage
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	dest := []interface{}{
		&k.StartTime,
		&k.Open,
		&k.High,
		&k.Low,
		&k.Close,
		&k.Volume,
		&k.Turnover,
	}

	for i := 0; i < len(s) && i < len(dest); i++ {
		if err := json.Unmarshal(s[i], dest[i]); err != nil {
			return err
		}
	}

	return nil
}

type ByBitKLineResultList struct {
	Symbol string              `json:"symbol"`
	List   []ByBitKLineHistory `json:"list"`
}

type ByBitKLineHistoryResponse struct {
	Code    int64                `json:"retCode"`
	Message string               `json:"retMsg"`
	Result  ByBitKLineResultList `json:"result"`
}

type ByBitTicker struct {
	Symbol       string  `json:"symbol"`
	LastPrice    float64 `json:"lastPrice,string"`
	MarkPrice    float64 `json:"markPrice,string"`
	IndexPrice   float64 `json:"indexPrice,string"`
	Bid1Price    string  `json:"bid1Price"`
	Ask1Price    string  `json:"ask1Price"`
	PrevPrice24H string  `json:"prevPrice24h"`
	Price24HPcnt string  `json:"price24hPcnt"`
	Volume24H    string  `json:"volume24h"`
}

type ByBitTickerList struct {
	Category string        `json:"category"`
	List     []ByBitTicker `json:"list"`
}

type ByBitTickerResponse struct {
	Code    int64           `json:"retCode"`
	Message string          `json:"retMsg"`
	Result  ByBitTickerList `json:"result"`
}

type ByBitCoin struct {
	Coin            string  `json:"coin"`
	Equity          float64 `json:"equity,string"`
	WalletBalance   string  `json:"walletBalance"`
	UnrealisedPnl   string  `json:"unrealisedPnl"`
	UsdValue        string  `json:"usdValue"`
	TotalPositionIM string  `json:"totalPositionIM"`
	TotalOrderIM    string  `json:"totalOrderIM"`
}

type ByBitBalance struct {
	AccountType    string      `json:"accountType"`
	TotalEquity    string      `json:"totalEquity"`
	TotalPerpUPL   string      `json:"totalPerpUPL"`
	TotalMarginBal string      `json:"totalMarginBalance"`
	Coin           []ByBitCoin `json:"coin"`
}

type ByBitBalanceList struct {
	List []ByBitBalance `json:"list"`
}

type ByBitBalanceResponse struct {
	Code    int64            `json:"retCode"`
	Message string           `json:"retMsg"`
	Result  ByBitBalanceList `json:"result"`
}

type ByBitPosition struct {
	Symbol        string         `json:"symbol"`
	Side          string         `json:"side"`
	Size          float64        `json:"size,string"`
	AvgPrice      float64        `json:"avgPrice,string"`
	Leverage      float64        `json:"leverage,string"`
	PositionValue string         `json:"positionValue"`
	UnrealisedPnl string         `json:"unrealisedPnl"`
	UpdatedTime   TimestampMilli `json:"updatedTime"`
}

// Flat positions come back with side "None" or "" and size "0".
func (p *ByBitPosition) ToPosition() Position {
	side := PositionSideNone

	if p.Size > 0.00 {
		switch p.Side {
		case ByBitTradeSideBuy:
			side = PositionSideLong
		case ByBitTradeSideSell:
			side = PositionSideShort
		}
	}

	unrealised, _ := strconv.ParseFloat(p.UnrealisedPnl, 64)

	return Position{
		Symbol:        p.Symbol,
		Side:          side,
		Size:          p.Size,
		AvgPrice:      p.AvgPrice,
		Leverage:      p.Leverage,
		UnrealisedPnl: unrealised,
		UpdatedAt:     p.UpdatedTime.Value(),
	}
}

type ByBitPositionList struct {
	Category string          `json:"category"`
	List     []ByBitPosition `json:"list"`
}

type ByBitPositionResponse struct {
	Code    int64             `json:"retCode"`
	Message string            `json:"retMsg"`
	Result  ByBitPositionList `json:"result"`
}

type ByBitLotSizeFilter struct {
	MinOrderQty float64 `json:"minOrderQty,string"`
	MaxOrderQty float64 `json:"maxOrderQty,string"`
	QtyStep     float64 `json:"qtyStep,string"`
}

type ByBitInstrument struct {
	Symbol        string             `json:"symbol"`
	ContractType  string             `json:"contractType"`
	BaseCoin      string             `json:"baseCoin"`
	QuoteCoin     string             `json:"quoteCoin"`
	SettleCoin    string             `json:"settleCoin"`
	Status        string             `json:"status"`
	LotSizeFilter ByBitLotSizeFilter `json:"lotSizeFilter"`
}

type ByBitInstrumentList struct {
	Category string            `json:"category"`
	List     []ByBitInstrument `json:"list"`
}

type ByBitInstrumentInfoResponse struct {
	Code    int64               `json:"retCode"`
	Message string              `json:"retMsg"`
	Result  ByBitInstrumentList `json:"result"`
}

type ByBitWsTicker struct {
	Symbol    string `json:"symbol"`
	LastPrice string `json:"lastPrice"`
	MarkPrice string `json:"markPrice"`
}

type ByBitWsTickerEvent struct {
	Topic string         `json:"topic"`
	Type  string         `json:"type"`
	Ts    TimestampMilli `json:"ts"`
	Data  ByBitWsTicker  `json:"data"`
}

type ByBitSocketStreamsRequest struct {
	Operation string   `json:"op"`
	Arguments []string `json:"args"`
}
