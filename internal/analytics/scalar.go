package analytics

import (
	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// ScalarStats is a single aggregate snapshot over one trade subset.
type ScalarStats struct {
	TotalTrades int
	Wins        int
	Losses      int
	BEWins      int
	BELosses    int

	TotalProfit   float64
	AverageProfit float64

	// WinRate is a percentage over resolved non-break-even trades;
	// WinRateWithBE counts break-even wins over all trades.
	WinRate       float64
	WinRateWithBE float64

	// AveragePnLPercent is total profit relative to the account balance.
	AveragePnLPercent float64

	// MaxDrawdown is the largest peak-to-trough decline of the running
	// balance, as a percentage of the peak.
	MaxDrawdown float64

	Streak StreakStats

	// AverageDaysBetween is the mean gap in days between consecutive
	// executed trades; zero with fewer than two trades.
	AverageDaysBetween float64
}

// Compute derives the scalar statistics for one trade subset.
//
// TotalTrades counts the whole input, planned trades included. Everything
// touching money or outcomes runs over the executed subset only: win/loss
// buckets, profit sums, drawdown and streaks. Break-even trades are kept in
// the profit sum since a break-even close can still realize a non-zero
// amount.
func Compute(trades []models.Trade, balance float64) ScalarStats {
	stats := ScalarStats{TotalTrades: len(trades)}

	executed := executedOnly(trades)
	for _, t := range executed {
		switch {
		case t.Outcome == models.OutcomeWin && t.BreakEven:
			stats.BEWins++
		case t.Outcome == models.OutcomeLose && t.BreakEven:
			stats.BELosses++
		case t.Outcome == models.OutcomeWin:
			stats.Wins++
		case t.Outcome == models.OutcomeLose:
			stats.Losses++
		}
		stats.TotalProfit += t.Profit(balance)
	}

	if stats.TotalTrades > 0 {
		stats.AverageProfit = stats.TotalProfit / float64(stats.TotalTrades)
	}
	stats.WinRate = percentage(stats.Wins, stats.Wins+stats.Losses)
	stats.WinRateWithBE = percentage(stats.Wins+stats.BEWins, stats.TotalTrades)
	if balance > 0 {
		stats.AveragePnLPercent = stats.TotalProfit / balance * 100
	}

	ordered := chronological(executed)
	stats.MaxDrawdown = maxDrawdown(ordered, balance)
	stats.Streak = streakWalk(ordered)
	stats.AverageDaysBetween = averageDaysBetween(ordered)

	return stats
}

// maxDrawdown replays the trades in date order against a running balance,
// tracking the running peak and the deepest percentage decline from it.
// Trades on equal dates keep their input order (stable sort upstream), so
// the balance path is deterministic.
func maxDrawdown(ordered []models.Trade, balance float64) float64 {
	running := balance
	peak := balance
	var worst float64

	for _, t := range ordered {
		running += t.Profit(balance)
		if running > peak {
			peak = running
			continue
		}
		if peak > 0 {
			dd := (peak - running) / peak * 100
			if dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

func averageDaysBetween(ordered []models.Trade) float64 {
	if len(ordered) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(ordered); i++ {
		total += ordered[i].TradeDate.Sub(ordered[i-1].TradeDate).Hours() / 24
	}
	return total / float64(len(ordered)-1)
}
