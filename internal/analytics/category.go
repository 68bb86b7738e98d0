package analytics

import (
	"sort"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// CategoryStat is the aggregate for one group of trades sharing a
// categorical attribute.
type CategoryStat struct {
	Label    string
	Total    int
	Wins     int
	Losses   int
	BEWins   int
	BELosses int
	// WinRate is a percentage over the non-break-even denominator;
	// WinRateWithBE counts break-even wins over all trades in the group.
	WinRate       float64
	WinRateWithBE float64
}

// KeyFunc derives the category label for a trade. Returning the empty
// string makes the trade fall into the aggregation's default label.
type KeyFunc func(models.Trade) string

// Aggregate groups trades by the key function and tallies win/loss counts
// per group. Every trade counts toward its group total, including planned
// trades that were never executed; only resolved outcomes move the win/loss
// buckets, with break-even closes tracked separately.
//
// The result is ordered by descending total. Ties keep the order in which
// the labels first appeared in the input, so the output is deterministic.
func Aggregate(trades []models.Trade, key KeyFunc, defaultLabel string) []CategoryStat {
	index := make(map[string]int)
	stats := make([]CategoryStat, 0)

	for _, t := range trades {
		label := key(t)
		if label == "" {
			label = defaultLabel
		}
		i, seen := index[label]
		if !seen {
			i = len(stats)
			index[label] = i
			stats = append(stats, CategoryStat{Label: label})
		}
		stats[i].tally(t)
	}

	finalizeCategories(stats)
	return stats
}

// aggregateFixed is Aggregate over a fixed, zero-filled label domain.
// Trades whose key resolves outside the domain are dropped.
func aggregateFixed(trades []models.Trade, domain []string, key KeyFunc) []CategoryStat {
	index := make(map[string]int, len(domain))
	stats := make([]CategoryStat, len(domain))
	for i, label := range domain {
		index[label] = i
		stats[i] = CategoryStat{Label: label}
	}

	for _, t := range trades {
		i, ok := index[key(t)]
		if !ok {
			continue
		}
		stats[i].tally(t)
	}

	finalizeCategories(stats)
	return stats
}

func (s *CategoryStat) tally(t models.Trade) {
	s.Total++
	switch {
	case t.Outcome == models.OutcomeWin && t.BreakEven:
		s.BEWins++
	case t.Outcome == models.OutcomeLose && t.BreakEven:
		s.BELosses++
	case t.Outcome == models.OutcomeWin:
		s.Wins++
	case t.Outcome == models.OutcomeLose:
		s.Losses++
	}
}

func finalizeCategories(stats []CategoryStat) {
	for i := range stats {
		s := &stats[i]
		s.WinRate = percentage(s.Wins, s.Wins+s.Losses)
		s.WinRateWithBE = percentage(s.Wins+s.BEWins, s.Total)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total > stats[j].Total
	})
}

// percentage returns num/den as a percent, with division by zero defined
// as zero.
func percentage(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}
