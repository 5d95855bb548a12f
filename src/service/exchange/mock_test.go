package exchange_test

import (
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
)

type ExchangeAPIMock struct {
	mock.Mock
}

func (m *ExchangeAPIMock) GetKLines(symbol string, interval string, limit int64) []model.KLine {
	args := m.Called(symbol, interval, limit)
	return args.Get(0).([]model.KLine)
}

func (m *ExchangeAPIMock) GetKLinesCached(symbol string, interval string, limit int64) []model.KLine {
	args := m.Called(symbol, interval, limit)
	return args.Get(0).([]model.KLine)
}

func (m *ExchangeAPIMock) GetLastPrice(symbol string) (float64, error) {
	args := m.Called(symbol)
	return args.Get(0).(float64), args.Error(1)
}

func (m *ExchangeAPIMock) GetEquity(coin string) (float64, error) {
	args := m.Called(coin)
	return args.Get(0).(float64), args.Error(1)
}

func (m *ExchangeAPIMock) GetPosition(symbol string) (*model.Position, error) {
	args := m.Called(symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Position), args.Error(1)
}

func (m *ExchangeAPIMock) GetInstrumentInfo(symbol string) (*model.ByBitInstrument, error) {
	args := m.Called(symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ByBitInstrument), args.Error(1)
}

type ExchangeOrderAPIMock struct {
	mock.Mock
}

func (m *ExchangeOrderAPIMock) SetLeverage(symbol string, buyLeverage float64, sellLeverage float64) error {
	args := m.Called(symbol, buyLeverage, sellLeverage)
	return args.Error(0)
}

func (m *ExchangeOrderAPIMock) CancelAllOrders(symbol string) error {
	args := m.Called(symbol)
	return args.Error(0)
}

func (m *ExchangeOrderAPIMock) MarketOrder(symbol string, side string, qty string, reduceOnly bool, closeOnTrigger bool) (string, error) {
	args := m.Called(symbol, side, qty, reduceOnly, closeOnTrigger)
	return args.Get(0).(string), args.Error(1)
}

type BalanceServiceMock struct {
	mock.Mock
}

func (m *BalanceServiceMock) GetEquity(coin string, cache bool) (float64, error) {
	args := m.Called(coin, cache)
	return args.Get(0).(float64), args.Error(1)
}

func (m *BalanceServiceMock) InvalidateEquityCache(coin string) {
	m.Called(coin)
}

type PriceServiceMock struct {
	mock.Mock
}

func (m *PriceServiceMock) GetLastPrice(symbol string) (float64, error) {
	args := m.Called(symbol)
	return args.Get(0).(float64), args.Error(1)
}

type PositionServiceMock struct {
	mock.Mock
}

func (m *PositionServiceMock) GetCurrentSide(symbol string) model.PositionSide {
	args := m.Called(symbol)
	return args.Get(0).(model.PositionSide)
}

func (m *PositionServiceMock) GetOpenPosition(symbol string) (*model.Position, error) {
	args := m.Called(symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Position), args.Error(1)
}

func (m *PositionServiceMock) Resync(symbol string) {
	m.Called(symbol)
}

type ReversalStorageMock struct {
	mock.Mock
}

func (m *ReversalStorageMock) Create(reversal model.Reversal) (*int64, error) {
	args := m.Called(reversal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *ReversalStorageMock) Update(reversal model.Reversal) error {
	args := m.Called(reversal)
	return args.Error(0)
}

func (m *ReversalStorageMock) GetLast(symbol string) *model.Reversal {
	args := m.Called(symbol)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Reversal)
}

func (m *ReversalStorageMock) SavePositionSideCache(symbol string, side model.PositionSide) {
	m.Called(symbol, side)
}

func (m *ReversalStorageMock) GetPositionSideCache(symbol string) *model.PositionSide {
	args := m.Called(symbol)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.PositionSide)
}

func (m *ReversalStorageMock) InvalidatePositionSideCache(symbol string) {
	m.Called(symbol)
}

type TimeServiceMock struct {
	mock.Mock
}

func (m *TimeServiceMock) WaitSeconds(seconds int64) {
	m.Called(seconds)
}

func (m *TimeServiceMock) WaitMilliseconds(milliseconds int64) {
	m.Called(milliseconds)
}

func (m *TimeServiceMock) GetNowUnix() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *TimeServiceMock) GetNowDateTimeString() string {
	args := m.Called()
	return args.Get(0).(string)
}
