// Package store provides data persistence for trade records.
package store

import (
	"context"
	"time"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// TradeStore is the trade data source the analytics engine's callers read
// from. The engine itself never touches the store; callers fetch a trade
// set and the account balance here and hand both to the engine.
type TradeStore interface {
	SaveTrade(ctx context.Context, trade *models.Trade) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	CountTrades(ctx context.Context, filter TradeFilter) (int, error)
	DeleteTrade(ctx context.Context, id string) error

	GetAccountBalance(ctx context.Context, accountID string) (float64, error)
	SetAccountBalance(ctx context.Context, accountID string, balance float64) error

	Close() error
}

// TradeFilter narrows trade queries. Zero values mean "no constraint".
type TradeFilter struct {
	AccountID string
	Market    string
	Year      int
	StartDate time.Time
	EndDate   time.Time
	Executed  *bool
	Limit     int
}
