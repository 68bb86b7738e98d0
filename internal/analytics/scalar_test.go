package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

func TestComputeWinLoseScenario(t *testing.T) {
	// 1% risk at 2R on a 10k account: wins derive to +200, the loss to -100.
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin),
		testTrade("2024-01-02", models.OutcomeWin),
		testTrade("2024-01-03", models.OutcomeLose),
	}

	stats := Compute(trades, 10000)

	assert.Equal(t, 3, stats.TotalTrades)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.InDelta(t, 66.67, stats.WinRate, 0.01)
	assert.InDelta(t, 300.0, stats.TotalProfit, 1e-9)
	assert.InDelta(t, 100.0, stats.AverageProfit, 1e-9)
	assert.InDelta(t, 3.0, stats.AveragePnLPercent, 1e-9)
}

func TestComputeWinLoseScenarioAtOneToOne(t *testing.T) {
	// At 1R a win and a loss are the same size, so W/W/L nets one win.
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, withRisk(1, 1)),
		testTrade("2024-01-02", models.OutcomeWin, withRisk(1, 1)),
		testTrade("2024-01-03", models.OutcomeLose, withRisk(1, 1)),
	}

	stats := Compute(trades, 10000)
	assert.InDelta(t, 100.0, stats.TotalProfit, 1e-9)
	assert.InDelta(t, 1.0, stats.AveragePnLPercent, 1e-9)
}

func TestComputeDrawdownScenario(t *testing.T) {
	// Peak 1050 after day one, trough 1020 on day two: 30/1050 = 2.857%.
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, withProfit(50)),
		testTrade("2024-01-02", models.OutcomeLose, withProfit(-30)),
		testTrade("2024-01-03", models.OutcomeWin, withProfit(50)),
	}

	stats := Compute(trades, 1000)
	assert.InDelta(t, 2.857, stats.MaxDrawdown, 0.001)
}

func TestComputeStoredProfitWinsOverDerivation(t *testing.T) {
	// Stored -25 beats the derived +200 for this 1% risk 2R win.
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, withProfit(-25)),
	}
	stats := Compute(trades, 10000)
	assert.InDelta(t, -25, stats.TotalProfit, 1e-9)
}

func TestComputeBreakEvenBuckets(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin),
		testTrade("2024-01-02", models.OutcomeWin, breakEven(), withProfit(10)),
		testTrade("2024-01-03", models.OutcomeLose, breakEven(), withProfit(-5)),
	}

	stats := Compute(trades, 10000)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 0, stats.Losses)
	assert.Equal(t, 1, stats.BEWins)
	assert.Equal(t, 1, stats.BELosses)
	assert.InDelta(t, 100.0, stats.WinRate, 1e-9)
	assert.InDelta(t, 66.67, stats.WinRateWithBE, 0.01)
	// BE profit still counts toward the total.
	assert.InDelta(t, 205.0, stats.TotalProfit, 1e-9)
}

func TestComputeExcludesPlannedFromMoneyMath(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin),
		testTrade("2024-01-02", models.OutcomeWin, planned()),
	}

	stats := Compute(trades, 10000)
	assert.Equal(t, 2, stats.TotalTrades)
	assert.Equal(t, 1, stats.Wins)
	assert.InDelta(t, 200.0, stats.TotalProfit, 1e-9)
	// Planned win does not extend the streak either.
	assert.Equal(t, 1, stats.Streak.MaxWinning)
}

func TestComputeEmptyInput(t *testing.T) {
	stats := Compute(nil, 5000)

	assert.Equal(t, 0, stats.TotalTrades)
	assert.Zero(t, stats.Wins)
	assert.Zero(t, stats.TotalProfit)
	assert.Zero(t, stats.AverageProfit)
	assert.Zero(t, stats.WinRate)
	assert.Zero(t, stats.WinRateWithBE)
	assert.Zero(t, stats.AveragePnLPercent)
	assert.Zero(t, stats.MaxDrawdown)
	assert.Zero(t, stats.Streak.Current)
	assert.Zero(t, stats.AverageDaysBetween)
}

func TestComputeZeroBalanceDefinedZero(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin),
		testTrade("2024-01-02", models.OutcomeLose),
	}

	stats := Compute(trades, 0)
	assert.Zero(t, stats.AveragePnLPercent)
	assert.Zero(t, stats.TotalProfit) // risk amounts derive to zero
	assert.Zero(t, stats.MaxDrawdown)
}

func TestComputeAverageDaysBetween(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin),
		testTrade("2024-01-03", models.OutcomeWin),
		testTrade("2024-01-07", models.OutcomeLose),
	}

	stats := Compute(trades, 10000)
	assert.InDelta(t, 3.0, stats.AverageDaysBetween, 1e-9)

	single := Compute(trades[:1], 10000)
	assert.Zero(t, single.AverageDaysBetween)
}

func TestComputeDrawdownStableOnEqualDates(t *testing.T) {
	// Same date: input order decides the balance path. The loss lands
	// before the win, so the trough shows up.
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeLose, withProfit(-100)),
		testTrade("2024-01-01", models.OutcomeWin, withProfit(100)),
	}

	stats := Compute(trades, 1000)
	assert.InDelta(t, 10.0, stats.MaxDrawdown, 1e-9)
}
