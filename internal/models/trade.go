// Package models defines the core domain types for the trading tracker.
package models

import (
	"time"

	"github.com/moznion/go-optional"
)

// Direction indicates whether a trade was long or short.
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// Outcome is the resolved result of a trade.
type Outcome string

const (
	OutcomeWin  Outcome = "Win"
	OutcomeLose Outcome = "Lose"
	// OutcomeNone marks trades without a resolved result, e.g. open or
	// planned trades. They never count toward win/loss buckets.
	OutcomeNone Outcome = ""
)

// Grade is an evaluation grade assigned to a trade after review.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
)

// KnownGrades lists the grades tracked by grade aggregation. Trades carrying
// any other value are dropped from grade breakdowns.
var KnownGrades = []Grade{GradeAPlus, GradeA, GradeB, GradeC}

// IsKnownGrade reports whether g is one of the tracked evaluation grades.
func IsKnownGrade(g Grade) bool {
	for _, known := range KnownGrades {
		if g == known {
			return true
		}
	}
	return false
}

// Trade is one executed or planned trade. Optional classification fields use
// optional.Option so that "never set" is distinguishable from an empty string;
// aggregation falls back to a configured default label for absent values.
type Trade struct {
	ID        string
	AccountID string
	UserID    string

	Market    string
	Direction Direction
	SetupType optional.Option[string]
	Liquidity optional.Option[string]
	MSS       optional.Option[string]
	Grade     optional.Option[Grade]

	Outcome   Outcome
	BreakEven bool
	Executed  bool

	// RiskPerTrade is the percent of the account balance risked.
	RiskPerTrade        float64
	RiskRewardRatio     float64 // realized
	RiskRewardRatioLong float64 // potential
	SLSize              float64

	// CalculatedProfit and PnLPercentage are stored when the upstream
	// system already derived them. When absent they are derived from the
	// risk figures; see Profit.
	CalculatedProfit optional.Option[float64]
	PnLPercentage    optional.Option[float64]

	Reentry       bool
	NewsRelated   bool
	LocalHighLow  bool
	PartialsTaken bool

	// TradeDate is the calendar date of the trade. TradeTime is the
	// time of day in "15:04" form when known.
	TradeDate time.Time
	TradeTime optional.Option[string]
}

// RiskAmount returns the currency amount risked on the trade.
func (t Trade) RiskAmount(balance float64) float64 {
	if balance <= 0 {
		return 0
	}
	return t.RiskPerTrade / 100 * balance
}

// Profit returns the signed profit of the trade in currency units.
//
// A stored CalculatedProfit is the source of truth. Only when no stored
// value exists is the profit derived from the risk figures: risk amount
// times the realized risk/reward ratio for a win, the negated risk amount
// for a loss. Unresolved outcomes derive to zero.
func (t Trade) Profit(balance float64) float64 {
	if profit, err := t.CalculatedProfit.Take(); err == nil {
		return profit
	}
	switch t.Outcome {
	case OutcomeWin:
		return t.RiskAmount(balance) * t.RiskRewardRatio
	case OutcomeLose:
		return -t.RiskAmount(balance)
	default:
		return 0
	}
}

// HasOutcome reports whether the trade resolved to a definite win or loss.
func (t Trade) HasOutcome() bool {
	return t.Outcome == OutcomeWin || t.Outcome == OutcomeLose
}

// Weekday returns the day of week the trade was taken on.
func (t Trade) Weekday() time.Weekday {
	return t.TradeDate.Weekday()
}
