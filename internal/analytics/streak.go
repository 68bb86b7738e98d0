package analytics

import (
	"sort"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// StreakStats tracks consecutive-outcome runs over chronologically ordered
// trades. Current is positive while on a winning run, negative while on a
// losing run, and zero when no trade has a definite outcome.
type StreakStats struct {
	Current    int
	MaxWinning int
	MaxLosing  int
}

// Streaks walks the executed trades in date order and tracks winning and
// losing runs. Break-even trades still carry a Win/Lose outcome and extend
// runs like any other resolved trade; unresolved outcomes neither extend
// nor reset a run.
func Streaks(trades []models.Trade) StreakStats {
	return streakWalk(chronological(executedOnly(trades)))
}

// streakWalk runs the streak walk over an already executed-only,
// chronologically ordered slice.
func streakWalk(ordered []models.Trade) StreakStats {
	var stats StreakStats
	var winRun, loseRun int
	var last models.Outcome

	for _, t := range ordered {
		switch t.Outcome {
		case models.OutcomeWin:
			winRun++
			loseRun = 0
			last = models.OutcomeWin
		case models.OutcomeLose:
			loseRun++
			winRun = 0
			last = models.OutcomeLose
		default:
			continue
		}
		if winRun > stats.MaxWinning {
			stats.MaxWinning = winRun
		}
		if loseRun > stats.MaxLosing {
			stats.MaxLosing = loseRun
		}
	}

	switch last {
	case models.OutcomeWin:
		stats.Current = winRun
	case models.OutcomeLose:
		stats.Current = -loseRun
	}
	return stats
}

// chronological returns a copy of trades stably sorted by trade date.
// Trades sharing a date keep their relative input order, which pins down
// the running-balance path used by drawdown as well as streak walks.
func chronological(trades []models.Trade) []models.Trade {
	ordered := make([]models.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TradeDate.Before(ordered[j].TradeDate)
	})
	return ordered
}
