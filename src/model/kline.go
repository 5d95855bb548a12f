package model

type KLine struct {
	Symbol   string         `json:"symbol"`
	Interval string         `json:"interval"`
	Open     float64        `json:"open"`
	High     float64        `json:"high"`
	Low      float64        `json:"low"`
	Close    float64        `json:"close"`
	OpenTime TimestampMilli `json:"openTime"`
}

func (k *KLine) IsPositive() bool {
	return k.Close > k.Open
}

func (k *KLine) IsNegative() bool {
	return k.Close < k.Open
}

// KlineBatch wraps the kline history for the redis cache.
type KlineBatch struct {
	Items []KLine `json:"items"`
}

// ClosePrices returns the closing prices ordered oldest to newest.
func (b *KlineBatch) ClosePrices() []float64 {
	closes := make([]float64, 0)
	for _, kLine := range b.Items {
		closes = append(closes, kLine.Close)
	}

	return closes
}
