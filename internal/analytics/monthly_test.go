package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

func TestByMonthZeroFillsTwelveMonths(t *testing.T) {
	report := ByMonth(nil, 2024, 10000)

	require.Len(t, report.Months, 12)
	for i, m := range report.Months {
		assert.Equal(t, time.Month(i+1), m.Month)
		assert.Zero(t, m.Trades)
		assert.Zero(t, m.Profit)
	}
	assert.True(t, report.BestMonth.IsNone())
	assert.True(t, report.WorstMonth.IsNone())
}

func TestByMonthAggregates(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-05", models.OutcomeWin),
		testTrade("2024-01-20", models.OutcomeLose),
		testTrade("2024-03-10", models.OutcomeWin),
		testTrade("2023-01-01", models.OutcomeWin), // other year, ignored
	}

	report := ByMonth(trades, 2024, 10000)

	jan := report.Months[0]
	assert.Equal(t, 2, jan.Trades)
	assert.Equal(t, 1, jan.Wins)
	assert.Equal(t, 1, jan.Losses)
	assert.InDelta(t, 100.0, jan.Profit, 1e-9) // +200 win, -100 loss
	assert.InDelta(t, 50.0, jan.WinRate, 1e-9)

	mar := report.Months[2]
	assert.Equal(t, 1, mar.Trades)
	assert.InDelta(t, 200.0, mar.Profit, 1e-9)

	best, err := report.BestMonth.Take()
	require.NoError(t, err)
	assert.Equal(t, time.March, best.Month)

	worst, err := report.WorstMonth.Take()
	require.NoError(t, err)
	assert.Equal(t, time.January, worst.Month)
}

func TestByMonthBreakEvenCountsWithoutProfit(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-06-01", models.OutcomeWin, breakEven(), withProfit(10)),
	}

	report := ByMonth(trades, 2024, 10000)
	jun := report.Months[5]
	assert.Equal(t, 1, jun.Trades)
	assert.Equal(t, 1, jun.BEWins)
	assert.Zero(t, jun.Wins)
	assert.Zero(t, jun.Profit)
	assert.InDelta(t, 100.0, jun.WinRateWithBE, 1e-9)
}

func TestByMonthSkipsPlanned(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-02-01", models.OutcomeWin, planned()),
	}

	report := ByMonth(trades, 2024, 10000)
	assert.Zero(t, report.Months[1].Trades)
	assert.True(t, report.BestMonth.IsNone())
}

func TestByMonthSingleMonthIsBothBestAndWorst(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-07-01", models.OutcomeLose),
	}

	report := ByMonth(trades, 2024, 10000)

	best, err := report.BestMonth.Take()
	require.NoError(t, err)
	worst, err := report.WorstMonth.Take()
	require.NoError(t, err)
	assert.Equal(t, best, worst)
	assert.Equal(t, time.July, best.Month)
}
