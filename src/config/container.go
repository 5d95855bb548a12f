package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-reversal-bot/src/client"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
	"gitlab.com/open-soft/go-reversal-bot/src/repository"
	"gitlab.com/open-soft/go-reversal-bot/src/service"
	"gitlab.com/open-soft/go-reversal-bot/src/service/exchange"
	"gitlab.com/open-soft/go-reversal-bot/src/service/strategy"
	"gitlab.com/open-soft/go-reversal-bot/src/utils"
	"gitlab.com/open-soft/go-reversal-bot/src/validator"
)

func InitServiceContainer() Container {
	db, err := sql.Open("mysql", os.Getenv("DATABASE_DSN"))

	if err != nil {
		log.Fatal(fmt.Sprintf("MySQL can't connect: %s", err.Error()))
	}

	db.SetMaxIdleConns(16)
	db.SetMaxOpenConns(16)
	db.SetConnMaxLifetime(time.Minute)

	var ctx = context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_DSN"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	botRepository := repository.BotRepository{
		DB:  db,
		RDB: rdb,
		Ctx: &ctx,
	}

	currentBot := botRepository.GetCurrentBot()
	if currentBot == nil {
		botUuid := os.Getenv("BOT_UUID")
		err := botRepository.Create(model.Bot{
			BotUuid: botUuid,
		})
		if err != nil {
			panic(err)
		}

		currentBot = botRepository.GetCurrentBot()
		if currentBot == nil {
			panic(fmt.Sprintf("Can't initialize bot: %s", botUuid))
		}
	}

	log.Printf("Bot [%s] is initialized successfully", currentBot.BotUuid)

	strategyConfig := model.StrategyConfig{
		Symbol:               getEnvString("STRATEGY_SYMBOL", "BTCUSDC"),
		Interval:             getEnvString("STRATEGY_INTERVAL", "60"),
		EmaPeriod:            getEnvInt("STRATEGY_EMA_PERIOD", 3),
		UpperBandPercent:     getEnvFloat("STRATEGY_UPPER_BAND_PERCENT", 0.003),
		LowerBandPercent:     getEnvFloat("STRATEGY_LOWER_BAND_PERCENT", 0.003),
		LongLeverage:         getEnvFloat("STRATEGY_LONG_LEVERAGE", 10.00),
		ShortLeverage:        getEnvFloat("STRATEGY_SHORT_LEVERAGE", 5.00),
		MinOrderQty:          getEnvFloat("STRATEGY_MIN_ORDER_QTY", 0.001),
		QtyPrecision:         int(getEnvInt("STRATEGY_QTY_PRECISION", 3)),
		BalanceUsageFraction: getEnvFloat("STRATEGY_BALANCE_USAGE", 0.95),
		SettlementCoin:       getEnvString("STRATEGY_SETTLEMENT_COIN", "USDC"),
		PollIntervalSeconds:  getEnvInt("STRATEGY_POLL_SECONDS", 60),
		SettleTimeoutSeconds: getEnvInt("STRATEGY_SETTLE_TIMEOUT_SECONDS", 10),
	}

	configValidator := validator.StrategyConfigValidator{}
	if violation := configValidator.Validate(strategyConfig); violation != nil {
		log.Fatal(fmt.Sprintf("Invalid strategy config: %s", violation.Error()))
	}

	httpClient := client.HttpClient{}
	byBit := client.ByBit{
		CurrentBot: currentBot,
		HttpClient: &httpClient,
		DSN:        getEnvString("BYBIT_API_DSN", "https://api.bybit.com"),
		ApiKey:     os.Getenv("BYBIT_API_KEY"),
		ApiSecret:  os.Getenv("BYBIT_API_SECRET"),
		RDB:        rdb,
		Ctx:        &ctx,
	}

	reversalRepository := repository.ReversalRepository{
		DB:         db,
		RDB:        rdb,
		Ctx:        &ctx,
		CurrentBot: currentBot,
	}

	formatter := utils.Formatter{}
	timeService := utils.TimeHelper{}

	balanceService := exchange.BalanceService{
		RDB:        rdb,
		Ctx:        &ctx,
		CurrentBot: currentBot,
		ByBit:      &byBit,
	}

	priceService := exchange.PriceService{
		RDB:        rdb,
		Ctx:        &ctx,
		CurrentBot: currentBot,
		ByBit:      &byBit,
	}

	positionService := exchange.PositionService{
		ByBit:              &byBit,
		ReversalRepository: &reversalRepository,
	}

	sizingService := exchange.SizingService{
		Formatter: &formatter,
	}

	reversalExecutor := exchange.ReversalExecutor{
		Config:             strategyConfig,
		CurrentBot:         currentBot,
		ByBit:              &byBit,
		BalanceService:     &balanceService,
		PriceService:       &priceService,
		PositionService:    &positionService,
		SizingService:      &sizingService,
		ReversalRepository: &reversalRepository,
		TimeService:        &timeService,
		Formatter:          &formatter,
	}

	emaStrategy := strategy.EmaReversalStrategy{
		Config: strategyConfig,
	}

	healthService := service.HealthService{
		Config:          strategyConfig,
		CurrentBot:      currentBot,
		BalanceService:  &balanceService,
		PositionService: &positionService,
	}

	return Container{
		Db:                 db,
		CurrentBot:         currentBot,
		StrategyConfig:     strategyConfig,
		ByBit:              &byBit,
		BotRepository:      &botRepository,
		ReversalRepository: &reversalRepository,
		BalanceService:     &balanceService,
		PriceService:       &priceService,
		PositionService:    &positionService,
		SizingService:      &sizingService,
		ReversalExecutor:   &reversalExecutor,
		HealthService:      &healthService,
		TimeService:        &timeService,
		ReversalTradeListener: &strategy.ReversalTradeListener{
			Config:          strategyConfig,
			Strategy:        &emaStrategy,
			ByBit:           &byBit,
			PriceService:    &priceService,
			PositionService: &positionService,
			Executor:        &reversalExecutor,
		},
	}
}

type Container struct {
	Db                    *sql.DB
	CurrentBot            *model.Bot
	StrategyConfig        model.StrategyConfig
	ByBit                 *client.ByBit
	BotRepository         *repository.BotRepository
	ReversalRepository    *repository.ReversalRepository
	BalanceService        *exchange.BalanceService
	PriceService          *exchange.PriceService
	PositionService       *exchange.PositionService
	SizingService         *exchange.SizingService
	ReversalExecutor      *exchange.ReversalExecutor
	HealthService         *service.HealthService
	TimeService           *utils.TimeHelper
	ReversalTradeListener *strategy.ReversalTradeListener
}

// CheckInstrument compares the configured lot size against the venue's
// instrument filter and warns on mismatch before the first cycle runs.
func (c *Container) CheckInstrument() {
	instrument, err := c.ByBit.GetInstrumentInfo(c.StrategyConfig.Symbol)

	if err != nil {
		log.Printf("[%s] Instrument check skipped: %s", c.StrategyConfig.Symbol, err.Error())
		return
	}

	if instrument.LotSizeFilter.MinOrderQty > c.StrategyConfig.MinOrderQty {
		log.Printf(
			"[%s] WARNING: configured min qty %.8f is below the venue minimum %.8f",
			c.StrategyConfig.Symbol,
			c.StrategyConfig.MinOrderQty,
			instrument.LotSizeFilter.MinOrderQty,
		)
	}

	if instrument.Status != "Trading" {
		log.Printf("[%s] WARNING: instrument status is %s", c.StrategyConfig.Symbol, instrument.Status)
	}
}

func (c *Container) StartScheduler() {
	go c.PriceService.StartTickerStream(
		getEnvString("BYBIT_WS_DSN", "wss://stream.bybit.com/v5/public/linear"),
		c.StrategyConfig.Symbol,
	)

	go func() {
		for {
			c.TimeService.WaitSeconds(300)
			c.HealthService.Report()
		}
	}()

	c.ReversalTradeListener.ListenAll()
}

func getEnvString(name string, defaultValue string) string {
	value := os.Getenv(name)
	if len(value) == 0 {
		return defaultValue
	}

	return value
}

func getEnvInt(name string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(name), 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvFloat(name string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(name), 64)
	if err != nil {
		return defaultValue
	}

	return value
}
