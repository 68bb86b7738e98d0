package analytics

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// Execution selects trades by their executed flag.
type Execution string

const (
	ExecutionAll         Execution = "all"
	ExecutionExecuted    Execution = "executed"
	ExecutionNonExecuted Execution = "nonExecuted"
)

// MarketAll disables market filtering.
const MarketAll = "all"

// Filter narrows the trade set every calculator in a view operates on.
// Predicates commute, so application order never changes the result. The
// zero value passes every trade through.
type Filter struct {
	Execution Execution
	Market    string
	From      optional.Option[time.Time]
	To        optional.Option[time.Time]
}

// Apply returns the trades matching the filter. The input slice is never
// mutated; the result is a fresh slice sharing no backing array with it.
func Apply(trades []models.Trade, f Filter) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether a single trade passes the filter. Date bounds are
// inclusive; an absent bound is unbounded.
func (f Filter) Matches(t models.Trade) bool {
	switch f.Execution {
	case ExecutionExecuted:
		if !t.Executed {
			return false
		}
	case ExecutionNonExecuted:
		if t.Executed {
			return false
		}
	}
	if f.Market != "" && f.Market != MarketAll && t.Market != f.Market {
		return false
	}
	if from, err := f.From.Take(); err == nil && t.TradeDate.Before(from) {
		return false
	}
	if to, err := f.To.Take(); err == nil && t.TradeDate.After(to) {
		return false
	}
	return true
}

// executedOnly returns the subset of trades that were actually entered.
// Profit, drawdown, streak and macro math operate on this subset only.
func executedOnly(trades []models.Trade) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Executed {
			out = append(out, t)
		}
	}
	return out
}
