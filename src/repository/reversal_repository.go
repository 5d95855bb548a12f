package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
)

type ReversalStorageInterface interface {
	Create(reversal model.Reversal) (*int64, error)
	Update(reversal model.Reversal) error
	GetLast(symbol string) *model.Reversal
	SavePositionSideCache(symbol string, side model.PositionSide)
	GetPositionSideCache(symbol string) *model.PositionSide
	InvalidatePositionSideCache(symbol string)
}

type ReversalRepository struct {
	DB         *sql.DB
	RDB        *redis.Client
	Ctx        *context.Context
	CurrentBot *model.Bot
}

func (repo *ReversalRepository) Create(reversal model.Reversal) (*int64, error) {
	res, err := repo.DB.Exec(`
		INSERT INTO reversals SET
			bot_id = ?,
			symbol = ?,
			target_side = ?,
			leverage = ?,
			quantity = ?,
			price = ?,
			close_order_id = ?,
			open_order_id = ?,
			status = ?,
			error_message = ?,
			created_at = ?
	`,
		repo.CurrentBot.Id,
		reversal.Symbol,
		reversal.TargetSide,
		reversal.Leverage,
		reversal.Quantity,
		reversal.Price,
		reversal.CloseOrderId,
		reversal.OpenOrderId,
		reversal.Status,
		reversal.ErrorMessage,
		reversal.CreatedAt,
	)

	if err != nil {
		log.Printf("[%s] Reversal Create: %s", reversal.Symbol, err.Error())
		return nil, err
	}

	lastId, err := res.LastInsertId()

	if err != nil {
		return nil, err
	}

	return &lastId, nil
}

func (repo *ReversalRepository) Update(reversal model.Reversal) error {
	_, err := repo.DB.Exec(`
		UPDATE reversals r SET
			r.leverage = ?,
			r.quantity = ?,
			r.price = ?,
			r.close_order_id = ?,
			r.open_order_id = ?,
			r.status = ?,
			r.error_message = ?
		WHERE r.id = ? AND r.bot_id = ?
	`,
		reversal.Leverage,
		reversal.Quantity,
		reversal.Price,
		reversal.CloseOrderId,
		reversal.OpenOrderId,
		reversal.Status,
		reversal.ErrorMessage,
		reversal.Id,
		repo.CurrentBot.Id,
	)

	if err != nil {
		log.Printf("[%s] Reversal Update: %s", reversal.Symbol, err.Error())
		return err
	}

	return nil
}

func (repo *ReversalRepository) GetLast(symbol string) *model.Reversal {
	var reversal model.Reversal

	err := repo.DB.QueryRow(`
		SELECT
			r.id as Id,
			r.bot_id as BotId,
			r.symbol as Symbol,
			r.target_side as TargetSide,
			r.leverage as Leverage,
			r.quantity as Quantity,
			r.price as Price,
			r.close_order_id as CloseOrderId,
			r.open_order_id as OpenOrderId,
			r.status as Status,
			r.error_message as ErrorMessage,
			r.created_at as CreatedAt
		FROM reversals r
		WHERE r.symbol = ? AND r.bot_id = ?
		ORDER BY r.id DESC
		LIMIT 1`, symbol, repo.CurrentBot.Id,
	).Scan(
		&reversal.Id,
		&reversal.BotId,
		&reversal.Symbol,
		&reversal.TargetSide,
		&reversal.Leverage,
		&reversal.Quantity,
		&reversal.Price,
		&reversal.CloseOrderId,
		&reversal.OpenOrderId,
		&reversal.Status,
		&reversal.ErrorMessage,
		&reversal.CreatedAt,
	)

	if err != nil {
		return nil
	}

	return &reversal
}

// The side cache is a fallback only. The exchange position endpoint stays the
// source of truth, this value serves cycles where that query fails.
func (repo *ReversalRepository) SavePositionSideCache(symbol string, side model.PositionSide) {
	repo.RDB.Set(*repo.Ctx, repo.getPositionSideCacheKey(symbol), string(side), time.Hour*24)
}

func (repo *ReversalRepository) GetPositionSideCache(symbol string) *model.PositionSide {
	res := repo.RDB.Get(*repo.Ctx, repo.getPositionSideCacheKey(symbol)).Val()

	if len(res) == 0 {
		return nil
	}

	side := model.PositionSide(res)

	switch side {
	case model.PositionSideNone, model.PositionSideLong, model.PositionSideShort:
		return &side
	}

	return nil
}

func (repo *ReversalRepository) InvalidatePositionSideCache(symbol string) {
	repo.RDB.Del(*repo.Ctx, repo.getPositionSideCacheKey(symbol))
}

func (repo *ReversalRepository) getPositionSideCacheKey(symbol string) string {
	return fmt.Sprintf("position-side-%s-bot-%d", symbol, repo.CurrentBot.Id)
}
