// Package cli provides the command-line interface for the trading tracker.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/moznion/go-optional"
	"github.com/spf13/cobra"

	apperrors "github.com/DragosCt10/trading-tracker-sub003/internal/errors"
	"github.com/DragosCt10/trading-tracker-sub003/internal/logging"
	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
	"github.com/DragosCt10/trading-tracker-sub003/internal/store"
)

// addTradeCommands adds journal management commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade journal management",
		Long:  "Record, list and delete trades in the journal.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a trade",
		Long:  "Record an executed or planned trade in the journal.",
		Example: `  tracker trade add --market EURUSD --direction Long --outcome Win --risk 1 --rr 2
  tracker trade add --market NAS100 --direction Short --outcome Lose --risk 0.5 --date 2024-03-08 --time 09:45
  tracker trade add --market EURUSD --direction Long --planned --setup "OB Retest"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized")
				return fmt.Errorf("store not initialized")
			}

			trade, err := tradeFromFlags(cmd, app.accountID(cmd))
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if err := app.Store.SaveTrade(ctx, trade); err != nil {
				output.Error("Failed to save trade: %v", err)
				return err
			}

			logging.LogTradeSaved(app.Logger, trade.ID, trade.Market, string(trade.Outcome), trade.Executed)
			output.Success("Trade %s recorded", trade.ID)
			return nil
		},
	}

	cmd.Flags().String("market", "", "Traded market, e.g. EURUSD (required)")
	cmd.Flags().String("direction", "", "Long or Short (required)")
	cmd.Flags().String("outcome", "", "Win or Lose; empty for open/planned trades")
	cmd.Flags().String("setup", "", "Setup type")
	cmd.Flags().String("liquidity", "", "Liquidity category")
	cmd.Flags().String("mss", "", "Market structure shift category")
	cmd.Flags().String("grade", "", "Evaluation grade: A+, A, B or C")
	cmd.Flags().Float64("risk", 0, "Risk per trade as percent of balance")
	cmd.Flags().Float64("rr", 0, "Realized risk/reward ratio")
	cmd.Flags().Float64("rr-long", 0, "Potential risk/reward ratio")
	cmd.Flags().Float64("sl", 0, "Stop loss size")
	cmd.Flags().Float64("profit", 0, "Stored profit; omit to derive from risk figures")
	cmd.Flags().Float64("pnl-percent", 0, "Stored P&L percent of balance")
	cmd.Flags().String("date", "", "Trade date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().String("time", "", "Trade time of day (HH:MM)")
	cmd.Flags().Bool("break-even", false, "Trade closed at break even")
	cmd.Flags().Bool("planned", false, "Planned trade that was not executed")
	cmd.Flags().Bool("reentry", false, "Re-entry trade")
	cmd.Flags().Bool("news", false, "News-related trade")
	cmd.Flags().Bool("high-low", false, "Taken at a local high/low")
	cmd.Flags().Bool("partials", false, "Partials were taken")
	_ = cmd.MarkFlagRequired("market")
	_ = cmd.MarkFlagRequired("direction")

	return cmd
}

// tradeFromFlags validates the add-command flags and builds the record.
func tradeFromFlags(cmd *cobra.Command, accountID string) (*models.Trade, error) {
	market, _ := cmd.Flags().GetString("market")
	direction, _ := cmd.Flags().GetString("direction")
	outcome, _ := cmd.Flags().GetString("outcome")
	planned, _ := cmd.Flags().GetBool("planned")

	if direction != string(models.DirectionLong) && direction != string(models.DirectionShort) {
		return nil, apperrors.NewValidationError("direction", direction, "must be Long or Short")
	}
	switch models.Outcome(outcome) {
	case models.OutcomeWin, models.OutcomeLose, models.OutcomeNone:
	default:
		return nil, apperrors.NewValidationError("outcome", outcome, "must be Win, Lose or empty")
	}

	trade := &models.Trade{
		AccountID: accountID,
		Market:    market,
		Direction: models.Direction(direction),
		Outcome:   models.Outcome(outcome),
		Executed:  !planned,
		TradeDate: time.Now().Truncate(24 * time.Hour),

		SetupType:        optional.None[string](),
		Liquidity:        optional.None[string](),
		MSS:              optional.None[string](),
		Grade:            optional.None[models.Grade](),
		CalculatedProfit: optional.None[float64](),
		PnLPercentage:    optional.None[float64](),
		TradeTime:        optional.None[string](),
	}

	trade.BreakEven, _ = cmd.Flags().GetBool("break-even")
	trade.Reentry, _ = cmd.Flags().GetBool("reentry")
	trade.NewsRelated, _ = cmd.Flags().GetBool("news")
	trade.LocalHighLow, _ = cmd.Flags().GetBool("high-low")
	trade.PartialsTaken, _ = cmd.Flags().GetBool("partials")
	trade.RiskPerTrade, _ = cmd.Flags().GetFloat64("risk")
	trade.RiskRewardRatio, _ = cmd.Flags().GetFloat64("rr")
	trade.RiskRewardRatioLong, _ = cmd.Flags().GetFloat64("rr-long")
	trade.SLSize, _ = cmd.Flags().GetFloat64("sl")

	if setup, _ := cmd.Flags().GetString("setup"); setup != "" {
		trade.SetupType = optional.Some(setup)
	}
	if liquidity, _ := cmd.Flags().GetString("liquidity"); liquidity != "" {
		trade.Liquidity = optional.Some(liquidity)
	}
	if mss, _ := cmd.Flags().GetString("mss"); mss != "" {
		trade.MSS = optional.Some(mss)
	}
	if grade, _ := cmd.Flags().GetString("grade"); grade != "" {
		if !models.IsKnownGrade(models.Grade(grade)) {
			return nil, apperrors.NewValidationError("grade", grade, "must be one of A+, A, B, C")
		}
		trade.Grade = optional.Some(models.Grade(grade))
	}
	if cmd.Flags().Changed("profit") {
		profit, _ := cmd.Flags().GetFloat64("profit")
		trade.CalculatedProfit = optional.Some(profit)
	}
	if cmd.Flags().Changed("pnl-percent") {
		pnl, _ := cmd.Flags().GetFloat64("pnl-percent")
		trade.PnLPercentage = optional.Some(pnl)
	}
	if date, _ := cmd.Flags().GetString("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, apperrors.NewValidationError("date", date, "must be YYYY-MM-DD")
		}
		trade.TradeDate = parsed
	}
	if tod, _ := cmd.Flags().GetString("time"); tod != "" {
		if _, err := time.Parse("15:04", tod); err != nil {
			return nil, apperrors.NewValidationError("time", tod, "must be HH:MM")
		}
		trade.TradeTime = optional.Some(tod)
	}

	return trade, nil
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded trades",
		Example: `  tracker trade list
  tracker trade list --market EURUSD --limit 20
  tracker trade list --year 2024`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized")
				return fmt.Errorf("store not initialized")
			}

			market, _ := cmd.Flags().GetString("market")
			year, _ := cmd.Flags().GetInt("year")
			limit, _ := cmd.Flags().GetInt("limit")

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				AccountID: app.accountID(cmd),
				Market:    market,
				Year:      year,
				Limit:     limit,
			})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			balance := app.balance(ctx, cmd)
			table := NewTable(output, "ID", "Date", "Market", "Dir", "Outcome", "BE", "Exec", "Profit")
			for _, t := range trades {
				be := ""
				if t.BreakEven {
					be = "BE"
				}
				exec := "yes"
				if !t.Executed {
					exec = "plan"
				}
				table.AddRow(
					TruncateString(t.ID, 8),
					FormatDate(t.TradeDate),
					t.Market,
					string(t.Direction),
					string(t.Outcome),
					be,
					exec,
					output.FormatPnLColored(t.Profit(balance)),
				)
			}
			table.Render()
			output.Println()
			output.Dim("%s trades", strconv.Itoa(len(trades)))
			return nil
		},
	}

	cmd.Flags().String("market", "", "Market filter")
	cmd.Flags().Int("year", 0, "Restrict to one calendar year")
	cmd.Flags().Int("limit", 0, "Maximum number of trades")
	cmd.Flags().Float64("balance", 0, "Account balance override")
	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized")
				return fmt.Errorf("store not initialized")
			}

			if err := app.Store.DeleteTrade(ctx, args[0]); err != nil {
				output.Error("Failed to delete trade: %v", err)
				return err
			}
			output.Success("Trade %s deleted", args[0])
			return nil
		},
	}
}
