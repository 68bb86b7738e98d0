package analytics

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// MonthlyStat is the aggregate for one calendar month.
type MonthlyStat struct {
	Month    time.Month
	Trades   int
	Wins     int
	Losses   int
	BEWins   int
	BELosses int
	// Profit sums non-break-even trades only; break-even months can show
	// activity with zero profit.
	Profit        float64
	WinRate       float64
	WinRateWithBE float64
}

// MonthlyReport covers one calendar year, with a zero-filled entry for
// every month so charts never need to patch holes.
type MonthlyReport struct {
	Year   int
	Months []MonthlyStat
	// BestMonth and WorstMonth are the months with the highest and lowest
	// profit among months that saw at least one trade; both are None for
	// an empty year.
	BestMonth  optional.Option[MonthlyStat]
	WorstMonth optional.Option[MonthlyStat]
}

// ByMonth aggregates executed trades of one calendar year per month.
//
// Month views are driven by the raw year-scoped set, not the analytics
// filter, so best/worst month reflect the whole year regardless of what the
// rest of the dashboard is currently filtered to.
func ByMonth(trades []models.Trade, year int, balance float64) MonthlyReport {
	report := MonthlyReport{
		Year:       year,
		Months:     make([]MonthlyStat, 12),
		BestMonth:  optional.None[MonthlyStat](),
		WorstMonth: optional.None[MonthlyStat](),
	}
	for i := range report.Months {
		report.Months[i].Month = time.Month(i + 1)
	}

	for _, t := range executedOnly(trades) {
		if t.TradeDate.Year() != year {
			continue
		}
		m := &report.Months[int(t.TradeDate.Month())-1]
		m.Trades++
		switch {
		case t.Outcome == models.OutcomeWin && t.BreakEven:
			m.BEWins++
		case t.Outcome == models.OutcomeLose && t.BreakEven:
			m.BELosses++
		case t.Outcome == models.OutcomeWin:
			m.Wins++
		case t.Outcome == models.OutcomeLose:
			m.Losses++
		}
		if !t.BreakEven {
			m.Profit += t.Profit(balance)
		}
	}

	for i := range report.Months {
		m := &report.Months[i]
		m.WinRate = percentage(m.Wins, m.Wins+m.Losses)
		m.WinRateWithBE = percentage(m.Wins+m.BEWins, m.Trades)

		if m.Trades == 0 {
			continue
		}
		if best, err := report.BestMonth.Take(); err != nil || m.Profit > best.Profit {
			report.BestMonth = optional.Some(*m)
		}
		if worst, err := report.WorstMonth.Take(); err != nil || m.Profit < worst.Profit {
			report.WorstMonth = optional.Some(*m)
		}
	}

	return report
}
