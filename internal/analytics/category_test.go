package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

func TestAggregateCountsAndWinRates(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, withSetup("OB")),
		testTrade("2024-01-02", models.OutcomeWin, withSetup("OB")),
		testTrade("2024-01-03", models.OutcomeLose, withSetup("OB")),
		testTrade("2024-01-04", models.OutcomeWin, withSetup("OB"), breakEven()),
		testTrade("2024-01-05", models.OutcomeLose, withSetup("FVG")),
	}

	engine := New(DefaultConfig())
	stats := engine.BySetup(trades)
	require.Len(t, stats, 2)

	ob := stats[0]
	assert.Equal(t, "OB", ob.Label)
	assert.Equal(t, 4, ob.Total)
	assert.Equal(t, 2, ob.Wins)
	assert.Equal(t, 1, ob.Losses)
	assert.Equal(t, 1, ob.BEWins)
	assert.Equal(t, 0, ob.BELosses)
	assert.InDelta(t, 66.67, ob.WinRate, 0.01)
	assert.InDelta(t, 75.0, ob.WinRateWithBE, 0.01)

	fvg := stats[1]
	assert.Equal(t, "FVG", fvg.Label)
	assert.Equal(t, 1, fvg.Total)
	assert.Equal(t, 0.0, fvg.WinRate)
}

func TestAggregateDefaultLabelForMissingField(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin), // no setup
		testTrade("2024-01-02", models.OutcomeLose, withSetup("OB")),
	}

	stats := New(DefaultConfig()).BySetup(trades)
	require.Len(t, stats, 2)

	labels := []string{stats[0].Label, stats[1].Label}
	assert.Contains(t, labels, "Unknown")
	assert.Contains(t, labels, "OB")
}

func TestAggregatePlannedTradesCountTotalsOnly(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeNone, withSetup("OB"), planned()),
		testTrade("2024-01-02", models.OutcomeWin, withSetup("OB")),
	}

	stats := New(DefaultConfig()).BySetup(trades)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, 1, stats[0].Wins)
	assert.Equal(t, 0, stats[0].Losses)
}

func TestAggregateOrderingDescendingTotalStable(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, withSetup("A")),
		testTrade("2024-01-02", models.OutcomeWin, withSetup("B")),
		testTrade("2024-01-03", models.OutcomeWin, withSetup("C")),
		testTrade("2024-01-04", models.OutcomeWin, withSetup("C")),
	}

	stats := New(DefaultConfig()).BySetup(trades)
	require.Len(t, stats, 3)
	assert.Equal(t, "C", stats[0].Label)
	// A and B tie on total; first occurrence order wins.
	assert.Equal(t, "A", stats[1].Label)
	assert.Equal(t, "B", stats[2].Label)
}

func TestByDirection(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin),
		testTrade("2024-01-02", models.OutcomeLose),
	}
	stats := New(DefaultConfig()).ByDirection(trades)
	require.Len(t, stats, 1)
	assert.Equal(t, string(models.DirectionLong), stats[0].Label)
	assert.Equal(t, 2, stats[0].Total)
}

func TestByNewsTwoBucketsZeroFilled(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, newsRelated()),
	}
	stats := New(DefaultConfig()).ByNews(trades)
	require.Len(t, stats, 2)
	assert.Equal(t, LabelNews, stats[0].Label)
	assert.Equal(t, 1, stats[0].Total)
	assert.Equal(t, LabelNoNews, stats[1].Label)
	assert.Equal(t, 0, stats[1].Total)
}

func TestByDayOfWeekZeroFillsDomain(t *testing.T) {
	// 2024-01-01 is a Monday, 2024-01-06 a Saturday.
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin),
		testTrade("2024-01-06", models.OutcomeWin),
	}

	stats := New(DefaultConfig()).ByDayOfWeek(trades)
	require.Len(t, stats, 5)

	totals := make(map[string]int)
	for _, s := range stats {
		totals[s.Label] = s.Total
	}
	assert.Equal(t, 1, totals["Monday"])
	assert.Equal(t, 0, totals["Friday"])
	// Saturday is outside the five-day domain and dropped.
	assert.NotContains(t, totals, "Saturday")
}

func TestByGradeRestrictedToKnownGrades(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, withGrade(models.GradeAPlus)),
		testTrade("2024-01-02", models.OutcomeLose, withGrade(models.Grade("Z"))),
		testTrade("2024-01-03", models.OutcomeWin), // unset grade
	}

	stats := New(DefaultConfig()).ByGrade(trades)
	require.Len(t, stats, 4)

	var counted int
	for _, s := range stats {
		counted += s.Total
	}
	assert.Equal(t, 1, counted)
	assert.Equal(t, "A+", stats[0].Label)
	assert.Equal(t, 1, stats[0].Total)
}

func TestByTimeOfDayBucketsAndFallback(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, withTime("04:30")),  // London
		testTrade("2024-01-02", models.OutcomeWin, withTime("08:00")),  // New York AM boundary
		testTrade("2024-01-03", models.OutcomeWin, withTime("23:00")),  // outside every session
		testTrade("2024-01-04", models.OutcomeWin, withTime("broken")), // malformed
		testTrade("2024-01-05", models.OutcomeWin),                     // absent
	}

	stats := New(DefaultConfig()).ByTimeOfDay(trades)
	totals := make(map[string]int)
	for _, s := range stats {
		totals[s.Label] = s.Total
	}

	assert.Equal(t, 1, totals["London"])
	assert.Equal(t, 1, totals["New York AM"])
	assert.Equal(t, 0, totals["New York PM"])
	assert.Equal(t, 3, totals["Off Hours"])
}

func TestByLocalHighLowExactlyTwoBuckets(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, localHighLow()),
		testTrade("2024-01-02", models.OutcomeLose),
	}
	stats := New(DefaultConfig()).ByLocalHighLow(trades)
	require.Len(t, stats, 2)

	totals := make(map[string]int)
	for _, s := range stats {
		totals[s.Label] = s.Total
	}
	assert.Equal(t, 1, totals[LabelLocalHighLow])
	assert.Equal(t, 1, totals[LabelNoLocalHighLow])
}

func TestByReentrySingleBucket(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, reentry()),
		testTrade("2024-01-02", models.OutcomeLose, reentry()),
		testTrade("2024-01-03", models.OutcomeWin),
	}
	stats := New(DefaultConfig()).ByReentry(trades)
	require.Len(t, stats, 1)
	assert.Equal(t, "Re-entry", stats[0].Label)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, 1, stats[0].Wins)
	assert.Equal(t, 1, stats[0].Losses)
}

func TestByBreakEvenSingleBucket(t *testing.T) {
	trades := []models.Trade{
		testTrade("2024-01-01", models.OutcomeWin, breakEven()),
		testTrade("2024-01-02", models.OutcomeLose, breakEven()),
		testTrade("2024-01-03", models.OutcomeWin),
	}
	stats := New(DefaultConfig()).ByBreakEven(trades)
	require.Len(t, stats, 1)
	assert.Equal(t, "Break Even", stats[0].Label)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, 1, stats[0].BEWins)
	assert.Equal(t, 1, stats[0].BELosses)
	assert.Equal(t, 0, stats[0].Wins)
}

func TestCategoriesUnknownDimension(t *testing.T) {
	_, err := New(DefaultConfig()).Categories(nil, Dimension("bogus"))
	assert.Error(t, err)
}
