package model

type SignalClassification string

const SignalAboveUpper SignalClassification = "AboveUpper"
const SignalBelowLower SignalClassification = "BelowLower"
const SignalNeutral SignalClassification = "Neutral"

// Signal is the per-cycle EMA band classification. It is recomputed from a
// fresh market snapshot every tick and never stored.
type Signal struct {
	Symbol         string               `json:"symbol"`
	Price          float64              `json:"price"`
	Ema            float64              `json:"ema"`
	UpperBand      float64              `json:"upperBand"`
	LowerBand      float64              `json:"lowerBand"`
	Classification SignalClassification `json:"classification"`
}

func (s *Signal) IsAboveUpper() bool {
	return s.Classification == SignalAboveUpper
}

func (s *Signal) IsBelowLower() bool {
	return s.Classification == SignalBelowLower
}

func (s *Signal) IsNeutral() bool {
	return s.Classification == SignalNeutral
}
