package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
)

type ExchangeAPIInterface interface {
	GetKLines(symbol string, interval string, limit int64) []model.KLine
	GetKLinesCached(symbol string, interval string, limit int64) []model.KLine
	GetLastPrice(symbol string) (float64, error)
	GetEquity(coin string) (float64, error)
	GetPosition(symbol string) (*model.Position, error)
	GetInstrumentInfo(symbol string) (*model.ByBitInstrument, error)
}

type ExchangeOrderAPIInterface interface {
	SetLeverage(symbol string, buyLeverage float64, sellLeverage float64) error
	CancelAllOrders(symbol string) error
	MarketOrder(symbol string, side string, qty string, reduceOnly bool, closeOnTrigger bool) (string, error)
}

type ByBit struct {
	CurrentBot *model.Bot
	HttpClient HttpClientInterface
	DSN        string
	ApiKey     string
	ApiSecret  string

	RDB *redis.Client
	Ctx *context.Context
}

func (b *ByBit) GetKLines(symbol string, interval string, limit int64) []model.KLine {
	kLines := make([]model.KLine, 0)
	queryString := fmt.Sprintf(
		"category=%s&symbol=%s&interval=%s&limit=%d",
		model.ByBitCategoryLinear,
		symbol,
		interval,
		limit,
	)
	result, err := b.HttpClient.Get(fmt.Sprintf(
		"%s/v5/market/kline?%s",
		b.DSN,
		queryString,
	), b.GetHeaders(queryString))

	if err != nil {
		log.Printf("[%s] GetKLines: %s", symbol, err.Error())
		return kLines
	}

	var kLineHistoryResponse model.ByBitKLineHistoryResponse
	err = json.Unmarshal(result, &kLineHistoryResponse)
	if err != nil {
		log.Printf("[%s] GetKLines: %s", symbol, err.Error())
		return kLines
	}

	if kLineHistoryResponse.Code != 0 {
		log.Printf("[%s] GetKLines: %s", symbol, kLineHistoryResponse.Message)
		return kLines
	}

	for _, byBitKLine := range kLineHistoryResponse.Result.List {
		openTime, _ := strconv.ParseInt(byBitKLine.StartTime, 10, 64)
		open, _ := strconv.ParseFloat(byBitKLine.Open, 64)
		high, _ := strconv.ParseFloat(byBitKLine.High, 64)
		low, _ := strconv.ParseFloat(byBitKLine.Low, 64)
		closePrice, _ := strconv.ParseFloat(byBitKLine.Close, 64)

		kLines = append(kLines, model.KLine{
			Symbol:   symbol,
			Interval: interval,
			Open:     open,
			High:     high,
			Low:      low,
			Close:    closePrice,
			OpenTime: model.TimestampMilli(openTime),
		})
	}

	// Doc: sorted in reverse by startTime, flip to oldest -> newest
	slices.Reverse(kLines)

	return kLines
}

func (b *ByBit) GetKLinesCached(symbol string, interval string, limit int64) []model.KLine {
	cacheKey := fmt.Sprintf("interval-klines-history-%s-%s-%d-%d", symbol, interval, limit, b.CurrentBot.Id)

	res := b.RDB.Get(*b.Ctx, cacheKey).Val()
	if len(res) > 0 {
		var batch model.KlineBatch

		err := json.Unmarshal([]byte(res), &batch)
		if err == nil {
			return batch.Items
		}
		log.Printf("[%s] kline[%s] history cache invalid", symbol, interval)
	}

	kLines := b.GetKLines(symbol, interval, limit)

	if len(kLines) == 0 {
		return kLines
	}

	batch := model.KlineBatch{
		Items: kLines,
	}
	encoded, err := json.Marshal(batch)
	if err == nil {
		b.RDB.Set(*b.Ctx, cacheKey, string(encoded), time.Second*15)
	}

	return batch.Items
}

func (b *ByBit) GetLastPrice(symbol string) (float64, error) {
	queryString := fmt.Sprintf("category=%s&symbol=%s", model.ByBitCategoryLinear, symbol)

	result, err := b.HttpClient.Get(fmt.Sprintf(
		"%s/v5/market/tickers?%s",
		b.DSN,
		queryString,
	), b.GetHeaders(queryString))
	if err != nil {
		return 0.00, err
	}

	var tickerResponse model.ByBitTickerResponse
	err = json.Unmarshal(result, &tickerResponse)
	if err != nil {
		log.Printf("[%s] GetLastPrice: %s", symbol, err.Error())
		return 0.00, err
	}

	if tickerResponse.Code != 0 {
		log.Printf("[%s] GetLastPrice: %s", symbol, tickerResponse.Message)
		return 0.00, model.NewVenueError(tickerResponse.Code, tickerResponse.Message)
	}

	for _, ticker := range tickerResponse.Result.List {
		if ticker.Symbol == symbol && ticker.LastPrice > 0.00 {
			return ticker.LastPrice, nil
		}
	}

	return 0.00, errors.New(fmt.Sprintf("[%s] ticker is not found", symbol))
}

func (b *ByBit) GetEquity(coin string) (float64, error) {
	queryString := fmt.Sprintf("accountType=%s&coin=%s", model.ByBitAccountTypeUnified, coin)
	result, err := b.HttpClient.Get(fmt.Sprintf(
		"%s/v5/account/wallet-balance?%s",
		b.DSN,
		queryString,
	), b.GetHeaders(queryString))
	if err != nil {
		return 0.00, err
	}

	var balanceResponse model.ByBitBalanceResponse
	err = json.Unmarshal(result, &balanceResponse)
	if err != nil {
		log.Printf("GetEquity: %s", err.Error())
		return 0.00, err
	}

	if balanceResponse.Code != 0 {
		log.Printf("GetEquity: %s", balanceResponse.Message)
		return 0.00, model.NewVenueError(balanceResponse.Code, balanceResponse.Message)
	}

	for _, byBitBalance := range balanceResponse.Result.List {
		if byBitBalance.AccountType != model.ByBitAccountTypeUnified {
			continue
		}

		for _, balanceCoin := range byBitBalance.Coin {
			if balanceCoin.Coin == coin {
				return balanceCoin.Equity, nil
			}
		}
	}

	return 0.00, errors.New(fmt.Sprintf("[%s] coin balance is not found", coin))
}

func (b *ByBit) GetPosition(symbol string) (*model.Position, error) {
	queryString := fmt.Sprintf("category=%s&symbol=%s", model.ByBitCategoryLinear, symbol)
	result, err := b.HttpClient.Get(fmt.Sprintf(
		"%s/v5/position/list?%s",
		b.DSN,
		queryString,
	), b.GetHeaders(queryString))
	if err != nil {
		return nil, err
	}

	var positionResponse model.ByBitPositionResponse
	err = json.Unmarshal(result, &positionResponse)
	if err != nil {
		log.Printf("[%s] GetPosition: %s", symbol, err.Error())
		return nil, err
	}

	if positionResponse.Code != 0 {
		log.Printf("[%s] GetPosition: %s", symbol, positionResponse.Message)
		return nil, model.NewVenueError(positionResponse.Code, positionResponse.Message)
	}

	for _, byBitPosition := range positionResponse.Result.List {
		if byBitPosition.Symbol == symbol {
			position := byBitPosition.ToPosition()
			return &position, nil
		}
	}

	// No row for the symbol means no exposure
	return &model.Position{
		Symbol: symbol,
		Side:   model.PositionSideNone,
		Size:   0.00,
	}, nil
}

func (b *ByBit) GetInstrumentInfo(symbol string) (*model.ByBitInstrument, error) {
	queryString := fmt.Sprintf("category=%s&symbol=%s", model.ByBitCategoryLinear, symbol)
	result, err := b.HttpClient.Get(fmt.Sprintf(
		"%s/v5/market/instruments-info?%s",
		b.DSN,
		queryString,
	), b.GetHeaders(queryString))
	if err != nil {
		return nil, err
	}

	var instrumentInfoResponse model.ByBitInstrumentInfoResponse
	err = json.Unmarshal(result, &instrumentInfoResponse)
	if err != nil {
		log.Printf("[%s] GetInstrumentInfo: %s", symbol, err.Error())
		return nil, err
	}

	if instrumentInfoResponse.Code != 0 {
		log.Printf("[%s] GetInstrumentInfo: %s", symbol, instrumentInfoResponse.Message)
		return nil, model.NewVenueError(instrumentInfoResponse.Code, instrumentInfoResponse.Message)
	}

	for _, instrument := range instrumentInfoResponse.Result.List {
		if instrument.Symbol == symbol {
			return &instrument, nil
		}
	}

	return nil, errors.New(fmt.Sprintf("[%s] instrument is not found", symbol))
}

func (b *ByBit) SetLeverage(symbol string, buyLeverage float64, sellLeverage float64) error {
	requestBody := map[string]any{
		"category":     model.ByBitCategoryLinear,
		"symbol":       symbol,
		"buyLeverage":  strconv.FormatFloat(buyLeverage, 'f', -1, 64),
		"sellLeverage": strconv.FormatFloat(sellLeverage, 'f', -1, 64),
	}
	encoded, err := json.Marshal(requestBody)
	if err != nil {
		return err
	}

	result, err := b.HttpClient.Post(fmt.Sprintf("%s/v5/position/set-leverage", b.DSN), encoded, b.GetHeaders(string(encoded)))
	if err != nil {
		return err
	}

	var byBitResult model.ByBitKeyValueResult
	err = json.Unmarshal(result, &byBitResult)
	if err != nil {
		log.Printf("[%s] SetLeverage: %s", symbol, err.Error())
		return err
	}

	if byBitResult.Code != 0 && byBitResult.Code != model.ByBitCodeLeverageNotModified {
		log.Printf("[%s] SetLeverage: %s", symbol, byBitResult.Message)
		return model.NewVenueError(byBitResult.Code, byBitResult.Message)
	}

	return nil
}

func (b *ByBit) CancelAllOrders(symbol string) error {
	requestBody := map[string]any{
		"category": model.ByBitCategoryLinear,
		"symbol":   symbol,
	}
	encoded, err := json.Marshal(requestBody)
	if err != nil {
		return err
	}

	result, err := b.HttpClient.Post(fmt.Sprintf("%s/v5/order/cancel-all", b.DSN), encoded, b.GetHeaders(string(encoded)))
	if err != nil {
		return err
	}

	var byBitResult model.ByBitKeyValueResult
	err = json.Unmarshal(result, &byBitResult)
	if err != nil {
		log.Printf("[%s] CancelAllOrders: %s", symbol, err.Error())
		return err
	}

	if byBitResult.Code != 0 {
		log.Printf("[%s] CancelAllOrders: %s", symbol, byBitResult.Message)
		return model.NewVenueError(byBitResult.Code, byBitResult.Message)
	}

	return nil
}

func (b *ByBit) MarketOrder(symbol string, side string, qty string, reduceOnly bool, closeOnTrigger bool) (string, error) {
	requestBody := map[string]any{
		"category":    model.ByBitCategoryLinear,
		"symbol":      symbol,
		"side":        side,
		"orderType":   "Market",
		"qty":         qty,
		"orderLinkId": uuid.New().String(),
	}

	if reduceOnly {
		requestBody["reduceOnly"] = true
	}
	if closeOnTrigger {
		requestBody["closeOnTrigger"] = true
	}

	encoded, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	result, err := b.HttpClient.Post(fmt.Sprintf("%s/v5/order/create", b.DSN), encoded, b.GetHeaders(string(encoded)))
	if err != nil {
		return "", err
	}

	var byBitResult model.ByBitKeyValueResult
	err = json.Unmarshal(result, &byBitResult)
	if err != nil {
		log.Printf("[%s] MarketOrder: %s", symbol, err.Error())
		return "", err
	}

	if byBitResult.Code != 0 {
		log.Printf("[%s] MarketOrder: %s", symbol, byBitResult.Message)
		return "", model.NewVenueError(byBitResult.Code, byBitResult.Message)
	}

	orderIdRaw, ok := byBitResult.Result["orderId"]
	if !ok {
		return "", errors.New("can't get orderId")
	}

	if orderId, ok := orderIdRaw.(string); ok {
		return orderId, nil
	}

	return "", errors.New("orderId is not string")
}

func (b *ByBit) GetHeaders(payload string) map[string]string {
	timestamp := time.Now().UnixMilli()
	val := strconv.FormatInt(timestamp, 10) + b.ApiKey
	val = val + payload
	h := hmac.New(sha256.New, []byte(b.ApiSecret))
	h.Write([]byte(val))

	return map[string]string{
		"X-BAPI-API-KEY":   b.ApiKey,
		"X-BAPI-TIMESTAMP": strconv.FormatInt(timestamp, 10),
		"X-BAPI-SIGN":      hex.EncodeToString(h.Sum(nil)),
	}
}
