package analytics

import (
	"math"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// MacroStats are the ratio-style statistics derived from a trade subset.
type MacroStats struct {
	// ProfitFactor is gross winning amount over gross losing amount for
	// non-break-even trades, risk-derived; zero when there are no losses.
	ProfitFactor float64
	// ConsistencyScore is the percentage of distinct trading days whose
	// summed P&L was positive, over non-break-even trades. The WithBE
	// variant repeats the computation including break-even trades.
	ConsistencyScore       float64
	ConsistencyScoreWithBE float64
	// SharpeWithBE is mean per-trade profit over its sample standard
	// deviation: a single-period proxy, not an annualized ratio.
	SharpeWithBE float64
}

// Macro computes the macro statistics over the executed subset of trades.
func Macro(trades []models.Trade, balance float64) MacroStats {
	executed := executedOnly(trades)
	return MacroStats{
		ProfitFactor:           profitFactor(executed, balance),
		ConsistencyScore:       consistencyScore(executed, balance, false),
		ConsistencyScoreWithBE: consistencyScore(executed, balance, true),
		SharpeWithBE:           sharpe(executed, balance),
	}
}

// profitFactor uses the risk figures rather than stored profits: a win
// contributes risk amount times realized R:R, a loss contributes the risk
// amount. A zero or negative balance zeroes every risk amount and therefore
// the factor itself.
func profitFactor(executed []models.Trade, balance float64) float64 {
	var grossProfit, grossLoss float64
	for _, t := range executed {
		if t.BreakEven {
			continue
		}
		switch t.Outcome {
		case models.OutcomeWin:
			grossProfit += t.RiskAmount(balance) * t.RiskRewardRatio
		case models.OutcomeLose:
			grossLoss += t.RiskAmount(balance)
		}
	}
	if grossLoss == 0 {
		return 0
	}
	return grossProfit / grossLoss
}

func consistencyScore(executed []models.Trade, balance float64, includeBE bool) float64 {
	daily := make(map[string]float64)
	for _, t := range executed {
		if t.BreakEven && !includeBE {
			continue
		}
		daily[t.TradeDate.Format("2006-01-02")] += t.Profit(balance)
	}
	if len(daily) == 0 {
		return 0
	}
	positive := 0
	for _, pnl := range daily {
		if pnl > 0 {
			positive++
		}
	}
	return float64(positive) / float64(len(daily)) * 100
}

// sharpe treats each trade's profit as one period's return. The ratio is
// scale-invariant, so currency amounts work as well as percentages.
func sharpe(executed []models.Trade, balance float64) float64 {
	returns := make([]float64, 0, len(executed))
	for _, t := range executed {
		returns = append(returns, t.Profit(balance))
	}
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)
	if variance == 0 {
		return 0
	}
	return mean / math.Sqrt(variance)
}
