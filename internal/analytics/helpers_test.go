package analytics

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// tradeOpt mutates a test trade under construction.
type tradeOpt func(*models.Trade)

// testTrade builds an executed 1% risk, 2R long on EURUSD by default.
func testTrade(date string, outcome models.Outcome, opts ...tradeOpt) models.Trade {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	t := models.Trade{
		ID:              date + "-" + string(outcome),
		AccountID:       "acc-1",
		Market:          "EURUSD",
		Direction:       models.DirectionLong,
		Outcome:         outcome,
		Executed:        true,
		RiskPerTrade:    1,
		RiskRewardRatio: 2,
		TradeDate:       day,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func breakEven() tradeOpt {
	return func(t *models.Trade) { t.BreakEven = true }
}

func planned() tradeOpt {
	return func(t *models.Trade) { t.Executed = false }
}

func withProfit(profit float64) tradeOpt {
	return func(t *models.Trade) { t.CalculatedProfit = optional.Some(profit) }
}

func withMarket(market string) tradeOpt {
	return func(t *models.Trade) { t.Market = market }
}

func withSetup(setup string) tradeOpt {
	return func(t *models.Trade) { t.SetupType = optional.Some(setup) }
}

func withGrade(grade models.Grade) tradeOpt {
	return func(t *models.Trade) { t.Grade = optional.Some(grade) }
}

func withTime(tod string) tradeOpt {
	return func(t *models.Trade) { t.TradeTime = optional.Some(tod) }
}

func withRisk(risk, rr float64) tradeOpt {
	return func(t *models.Trade) {
		t.RiskPerTrade = risk
		t.RiskRewardRatio = rr
	}
}

func newsRelated() tradeOpt {
	return func(t *models.Trade) { t.NewsRelated = true }
}

func reentry() tradeOpt {
	return func(t *models.Trade) { t.Reentry = true }
}

func localHighLow() tradeOpt {
	return func(t *models.Trade) { t.LocalHighLow = true }
}
