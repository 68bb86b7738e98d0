// Package cli provides the command-line interface for the trading tracker.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DragosCt10/trading-tracker-sub003/internal/analytics"
	"github.com/DragosCt10/trading-tracker-sub003/internal/logging"
	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
	"github.com/DragosCt10/trading-tracker-sub003/internal/store"
)

// addStatsCommands adds the dashboard statistics commands.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Trade analytics dashboard",
		Long:  "Compute win rates, profit, drawdown, streaks and category breakdowns from the trade journal.",
	}

	cmd.AddCommand(newStatsOverviewCmd(app))
	cmd.AddCommand(newStatsCategoriesCmd(app))
	cmd.AddCommand(newStatsMonthlyCmd(app))

	rootCmd.AddCommand(cmd)
}

func newStatsOverviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Scalar, streak and macro statistics",
		Long: `Compute the headline statistics for the active filter: totals, win
rates, profit, drawdown, streaks, profit factor, consistency score and
Sharpe. Every number comes from the same filtered trade subset.`,
		Example: `  tracker stats overview
  tracker stats overview --market EURUSD --execution executed
  tracker stats overview --from 2024-01-01 --to 2024-06-30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			filter, err := parseFilter(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			trades, err := app.loadTrades(ctx, cmd)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			balance := app.balance(ctx, cmd)
			started := time.Now()
			view := app.Engine.NewView(trades, balance, filter)
			logging.LogViewComputed(app.Logger, len(view.Trades), balance, time.Since(started))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"scalar": view.Scalar,
					"macro":  view.Macro,
				})
			}

			displayOverview(output, view)
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func displayOverview(output *Output, view *analytics.View) {
	scalar := view.Scalar
	macro := view.Macro

	color.Cyan("Trade Statistics")
	output.Printf("  Trades:        %d (%d wins / %d losses, BE %d/%d)\n",
		scalar.TotalTrades, scalar.Wins, scalar.Losses, scalar.BEWins, scalar.BELosses)
	output.Printf("  Win Rate:      %s (with BE: %s)\n",
		FormatWinRate(scalar.WinRate), FormatWinRate(scalar.WinRateWithBE))
	output.Printf("  Total Profit:  %s (avg %s)\n",
		output.FormatPnLColored(scalar.TotalProfit), FormatPnL(scalar.AverageProfit))
	output.Printf("  Avg P&L:       %s\n", FormatPercent(scalar.AveragePnLPercent))
	output.Printf("  Max Drawdown:  %.2f%%\n", scalar.MaxDrawdown)
	output.Printf("  Trade Spacing: %.1f days\n", scalar.AverageDaysBetween)
	output.Println()

	color.Cyan("Streaks")
	current := "none"
	if scalar.Streak.Current > 0 {
		current = fmt.Sprintf("%d wins", scalar.Streak.Current)
	} else if scalar.Streak.Current < 0 {
		current = fmt.Sprintf("%d losses", -scalar.Streak.Current)
	}
	output.Printf("  Current:       %s\n", current)
	output.Printf("  Best Winning:  %d\n", scalar.Streak.MaxWinning)
	output.Printf("  Worst Losing:  %d\n", scalar.Streak.MaxLosing)
	output.Println()

	color.Cyan("Macro")
	output.Printf("  Profit Factor: %.2f\n", macro.ProfitFactor)
	output.Printf("  Consistency:   %s (with BE: %s)\n",
		FormatWinRate(macro.ConsistencyScore), FormatWinRate(macro.ConsistencyScoreWithBE))
	output.Printf("  Sharpe (BE):   %.2f\n", macro.SharpeWithBE)
}

func newStatsCategoriesCmd(app *App) *cobra.Command {
	dimensions := make([]string, 0, len(analytics.Dimensions()))
	for _, d := range analytics.Dimensions() {
		dimensions = append(dimensions, string(d))
	}

	cmd := &cobra.Command{
		Use:   "categories <dimension>",
		Short: "Category breakdown for one dimension",
		Long: "Group trades by a categorical attribute and show win/loss counts per group.\n\n" +
			"Dimensions: " + strings.Join(dimensions, ", "),
		Example: `  tracker stats categories setup
  tracker stats categories day --market EURUSD
  tracker stats categories time --from 2024-01-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			filter, err := parseFilter(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			trades, err := app.loadTrades(ctx, cmd)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			balance := app.balance(ctx, cmd)
			view := app.Engine.NewView(trades, balance, filter)
			stats, err := view.Categories(analytics.Dimension(args[0]))
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(stats)
			}

			color.Cyan("Breakdown by %s", args[0])
			table := NewTable(output, "Category", "Total", "Wins", "Losses", "BE W/L", "Win Rate", "With BE")
			for _, s := range stats {
				table.AddRow(
					s.Label,
					strconv.Itoa(s.Total),
					strconv.Itoa(s.Wins),
					strconv.Itoa(s.Losses),
					fmt.Sprintf("%d/%d", s.BEWins, s.BELosses),
					FormatWinRate(s.WinRate),
					FormatWinRate(s.WinRateWithBE),
				)
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newStatsMonthlyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthly <year>",
		Short: "Monthly breakdown for one year",
		Long: `Aggregate trades of one calendar year per month and pick the best and
worst months. The month view always covers the whole year, regardless of
the filters active elsewhere on the dashboard.`,
		Example: `  tracker stats monthly 2024`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			year, err := strconv.Atoi(args[0])
			if err != nil || year < 1970 || year > 9999 {
				output.Error("Invalid year %q", args[0])
				return fmt.Errorf("invalid year %q", args[0])
			}

			if app.Store == nil {
				output.Error("Store not initialized")
				return fmt.Errorf("store not initialized")
			}
			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				AccountID: app.accountID(cmd),
				Year:      year,
			})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			balance := app.balance(ctx, cmd)
			report := app.Engine.Monthly(trades, year, balance)

			if output.IsJSON() {
				return output.JSON(report)
			}

			color.Cyan("Monthly Breakdown - %d", report.Year)
			table := NewTable(output, "Month", "Trades", "Wins", "Losses", "Profit", "Win Rate")
			for _, m := range report.Months {
				table.AddRow(
					m.Month.String(),
					strconv.Itoa(m.Trades),
					strconv.Itoa(m.Wins),
					strconv.Itoa(m.Losses),
					output.FormatPnLColored(m.Profit),
					FormatWinRate(m.WinRate),
				)
			}
			table.Render()
			output.Println()

			if best, err := report.BestMonth.Take(); err == nil {
				output.Success("Best month:  %s (%s)", best.Month, FormatPnL(best.Profit))
			}
			if worst, err := report.WorstMonth.Take(); err == nil {
				output.Error("Worst month: %s (%s)", worst.Month, FormatPnL(worst.Profit))
			}
			if report.BestMonth.IsNone() {
				output.Dim("No trades recorded in %d.", report.Year)
			}
			return nil
		},
	}

	cmd.Flags().Float64("balance", 0, "Account balance override")
	return cmd
}

// loadTrades fetches the account's trades. The analytics filter is applied
// by the engine, not the query, so one store read feeds every calculator.
func (app *App) loadTrades(ctx context.Context, cmd *cobra.Command) ([]models.Trade, error) {
	if app.Store == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	return app.Store.GetTrades(ctx, store.TradeFilter{
		AccountID: app.accountID(cmd),
	})
}
