// Package analytics implements the trade analytics aggregation engine: a
// pure computation layer turning a slice of trade records into the derived
// statistics shown on the dashboard. The engine owns no persistence and no
// rendering; it is a function of (trades, account balance, filter) and holds
// no state between calls beyond its configuration tables.
package analytics

import (
	"fmt"
	"time"

	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// TimeInterval is one time-of-day bucket, matching trade times in
// [Start, End), both in "15:04" form.
type TimeInterval struct {
	Label string
	Start string
	End   string
}

// Config carries the tables that parameterize aggregation. They are
// explicit values rather than package constants so the engine can be
// configured and tested in isolation.
type Config struct {
	// DefaultLabel is the bucket for trades whose categorical field is
	// absent or empty.
	DefaultLabel string
	// TradingDays is the fixed day-of-week domain; days outside it are
	// dropped from day breakdowns.
	TradingDays []time.Weekday
	// Intervals is the time-of-day bucket table. FallbackInterval catches
	// trades whose time is absent, malformed, or outside every interval.
	Intervals        []TimeInterval
	FallbackInterval string
}

// DefaultConfig returns the stock dashboard configuration: an "Unknown"
// default label, a Monday-Friday day domain, and session-based time
// buckets.
func DefaultConfig() Config {
	return Config{
		DefaultLabel: "Unknown",
		TradingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		Intervals: []TimeInterval{
			{Label: "London", Start: "03:00", End: "08:00"},
			{Label: "New York AM", Start: "08:00", End: "12:00"},
			{Label: "New York PM", Start: "12:00", End: "16:00"},
		},
		FallbackInterval: "Off Hours",
	}
}

// Engine computes statistic sets from trade slices. It is safe for
// concurrent use: every method treats its input as immutable and allocates
// fresh result values.
type Engine struct {
	cfg Config
}

// New creates an engine with the given configuration.
func New(cfg Config) *Engine {
	if cfg.DefaultLabel == "" {
		cfg.DefaultLabel = "Unknown"
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine's configuration tables.
func (e *Engine) Config() Config {
	return e.cfg
}

// View is one consistent snapshot of derived statistics. The filtered
// subset is computed exactly once and threaded into every calculator, so a
// win-rate card and a profit card on the same screen can never disagree
// about which trades they describe.
type View struct {
	engine  *Engine
	Trades  []models.Trade
	Balance float64
	Scalar  ScalarStats
	Macro   MacroStats
}

// NewView filters the trades once and computes the scalar and macro
// statistics from that single subset. Category breakdowns are available
// through Categories against the same subset.
func (e *Engine) NewView(trades []models.Trade, balance float64, f Filter) *View {
	filtered := Apply(trades, f)
	return &View{
		engine:  e,
		Trades:  filtered,
		Balance: balance,
		Scalar:  Compute(filtered, balance),
		Macro:   Macro(filtered, balance),
	}
}

// Categories returns the requested breakdown over the view's subset.
func (v *View) Categories(d Dimension) ([]CategoryStat, error) {
	return v.engine.Categories(v.Trades, d)
}

// Monthly aggregates the given trades for one calendar year. Callers pass
// the year-scoped trade set here, not the view's filtered subset; month and
// best-month views reflect the whole year by design.
func (e *Engine) Monthly(trades []models.Trade, year int, balance float64) MonthlyReport {
	return ByMonth(trades, year, balance)
}

// Dimension names a category breakdown the engine can compute.
type Dimension string

const (
	DimensionSetup        Dimension = "setup"
	DimensionLiquidity    Dimension = "liquidity"
	DimensionDirection    Dimension = "direction"
	DimensionMSS          Dimension = "mss"
	DimensionNews         Dimension = "news"
	DimensionDay          Dimension = "day"
	DimensionMarket       Dimension = "market"
	DimensionGrade        Dimension = "grade"
	DimensionTimeOfDay    Dimension = "time"
	DimensionLocalHighLow Dimension = "highlow"
	DimensionReentry      Dimension = "reentry"
	DimensionBreakEven    Dimension = "breakeven"
)

// Dimensions lists every supported breakdown in display order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionSetup, DimensionLiquidity, DimensionDirection,
		DimensionMSS, DimensionNews, DimensionDay, DimensionMarket,
		DimensionGrade, DimensionTimeOfDay, DimensionLocalHighLow,
		DimensionReentry, DimensionBreakEven,
	}
}

// Categories dispatches to the specialization for the named dimension.
func (e *Engine) Categories(trades []models.Trade, d Dimension) ([]CategoryStat, error) {
	switch d {
	case DimensionSetup:
		return e.BySetup(trades), nil
	case DimensionLiquidity:
		return e.ByLiquidity(trades), nil
	case DimensionDirection:
		return e.ByDirection(trades), nil
	case DimensionMSS:
		return e.ByMSS(trades), nil
	case DimensionNews:
		return e.ByNews(trades), nil
	case DimensionDay:
		return e.ByDayOfWeek(trades), nil
	case DimensionMarket:
		return e.ByMarket(trades), nil
	case DimensionGrade:
		return e.ByGrade(trades), nil
	case DimensionTimeOfDay:
		return e.ByTimeOfDay(trades), nil
	case DimensionLocalHighLow:
		return e.ByLocalHighLow(trades), nil
	case DimensionReentry:
		return e.ByReentry(trades), nil
	case DimensionBreakEven:
		return e.ByBreakEven(trades), nil
	default:
		return nil, fmt.Errorf("unknown category dimension %q", d)
	}
}

// BySetup groups trades by setup type.
func (e *Engine) BySetup(trades []models.Trade) []CategoryStat {
	return Aggregate(trades, func(t models.Trade) string {
		return t.SetupType.TakeOr("")
	}, e.cfg.DefaultLabel)
}

// ByLiquidity groups trades by liquidity category.
func (e *Engine) ByLiquidity(trades []models.Trade) []CategoryStat {
	return Aggregate(trades, func(t models.Trade) string {
		return t.Liquidity.TakeOr("")
	}, e.cfg.DefaultLabel)
}

// ByMSS groups trades by market structure shift category.
func (e *Engine) ByMSS(trades []models.Trade) []CategoryStat {
	return Aggregate(trades, func(t models.Trade) string {
		return t.MSS.TakeOr("")
	}, e.cfg.DefaultLabel)
}

// ByDirection groups trades by long/short direction.
func (e *Engine) ByDirection(trades []models.Trade) []CategoryStat {
	return Aggregate(trades, func(t models.Trade) string {
		return string(t.Direction)
	}, e.cfg.DefaultLabel)
}

// ByMarket groups trades by traded market.
func (e *Engine) ByMarket(trades []models.Trade) []CategoryStat {
	return Aggregate(trades, func(t models.Trade) string {
		return t.Market
	}, e.cfg.DefaultLabel)
}

// News bucket labels.
const (
	LabelNews   = "News"
	LabelNoNews = "No News"
)

// ByNews splits trades into news-related and non-news buckets.
func (e *Engine) ByNews(trades []models.Trade) []CategoryStat {
	return aggregateFixed(trades, []string{LabelNews, LabelNoNews}, func(t models.Trade) string {
		if t.NewsRelated {
			return LabelNews
		}
		return LabelNoNews
	})
}

// Local high/low bucket labels.
const (
	LabelLocalHighLow   = "Local High/Low"
	LabelNoLocalHighLow = "No Local High/Low"
)

// ByLocalHighLow splits trades into exactly two buckets on the
// local-high/low flag.
func (e *Engine) ByLocalHighLow(trades []models.Trade) []CategoryStat {
	return aggregateFixed(trades, []string{LabelLocalHighLow, LabelNoLocalHighLow}, func(t models.Trade) string {
		if t.LocalHighLow {
			return LabelLocalHighLow
		}
		return LabelNoLocalHighLow
	})
}

// ByReentry is a single-bucket summary of re-entry trades.
func (e *Engine) ByReentry(trades []models.Trade) []CategoryStat {
	const label = "Re-entry"
	return aggregateFixed(trades, []string{label}, func(t models.Trade) string {
		if t.Reentry {
			return label
		}
		return ""
	})
}

// ByBreakEven is a single-bucket summary of break-even trades.
func (e *Engine) ByBreakEven(trades []models.Trade) []CategoryStat {
	const label = "Break Even"
	return aggregateFixed(trades, []string{label}, func(t models.Trade) string {
		if t.BreakEven {
			return label
		}
		return ""
	})
}

// ByDayOfWeek groups trades over the configured fixed day domain,
// zero-filled so quiet days still render. Trades outside the domain (e.g.
// weekend trades with a five-day table) are dropped.
func (e *Engine) ByDayOfWeek(trades []models.Trade) []CategoryStat {
	domain := make([]string, len(e.cfg.TradingDays))
	for i, d := range e.cfg.TradingDays {
		domain[i] = d.String()
	}
	return aggregateFixed(trades, domain, func(t models.Trade) string {
		return t.Weekday().String()
	})
}

// ByGrade groups trades by evaluation grade, restricted to the known
// grades; unset or unrecognized grades are dropped.
func (e *Engine) ByGrade(trades []models.Trade) []CategoryStat {
	domain := make([]string, len(models.KnownGrades))
	for i, g := range models.KnownGrades {
		domain[i] = string(g)
	}
	return aggregateFixed(trades, domain, func(t models.Trade) string {
		grade, err := t.Grade.Take()
		if err != nil || !models.IsKnownGrade(grade) {
			return ""
		}
		return string(grade)
	})
}

// ByTimeOfDay buckets trades by the configured [start, end) intervals.
// Absent, malformed, or out-of-session times land in the fallback interval
// rather than failing the aggregation.
func (e *Engine) ByTimeOfDay(trades []models.Trade) []CategoryStat {
	domain := make([]string, 0, len(e.cfg.Intervals)+1)
	for _, iv := range e.cfg.Intervals {
		domain = append(domain, iv.Label)
	}
	domain = append(domain, e.cfg.FallbackInterval)

	return aggregateFixed(trades, domain, func(t models.Trade) string {
		raw, err := t.TradeTime.Take()
		if err != nil {
			return e.cfg.FallbackInterval
		}
		minutes, ok := parseMinutes(raw)
		if !ok {
			return e.cfg.FallbackInterval
		}
		for _, iv := range e.cfg.Intervals {
			start, okStart := parseMinutes(iv.Start)
			end, okEnd := parseMinutes(iv.End)
			if okStart && okEnd && minutes >= start && minutes < end {
				return iv.Label
			}
		}
		return e.cfg.FallbackInterval
	})
}

// parseMinutes converts an "HH:MM" string to minutes since midnight.
func parseMinutes(s string) (int, bool) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}
