package exchange

import (
	"log"

	"gitlab.com/open-soft/go-reversal-bot/src/client"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
	"gitlab.com/open-soft/go-reversal-bot/src/repository"
)

type PositionServiceInterface interface {
	GetCurrentSide(symbol string) model.PositionSide
	GetOpenPosition(symbol string) (*model.Position, error)
	Resync(symbol string)
}

// PositionService resolves the believed exposure side. The exchange position
// endpoint is authoritative and queried every cycle, the cached side only
// serves cycles where that query fails.
type PositionService struct {
	ByBit              client.ExchangeAPIInterface
	ReversalRepository repository.ReversalStorageInterface
}

func (p *PositionService) GetCurrentSide(symbol string) model.PositionSide {
	position, err := p.ByBit.GetPosition(symbol)

	if err == nil {
		p.ReversalRepository.SavePositionSideCache(symbol, position.Side)
		return position.Side
	}

	log.Printf("[%s] GetCurrentSide: %s, fallback to cached side", symbol, err.Error())

	cached := p.ReversalRepository.GetPositionSideCache(symbol)
	if cached != nil {
		return *cached
	}

	return model.PositionSideNone
}

func (p *PositionService) GetOpenPosition(symbol string) (*model.Position, error) {
	return p.ByBit.GetPosition(symbol)
}

// Resync drops the cached side so that the next read hits the exchange.
func (p *PositionService) Resync(symbol string) {
	p.ReversalRepository.InvalidatePositionSideCache(symbol)
}
