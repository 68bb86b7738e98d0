// Package cli provides the command-line interface for the trading tracker.
package cli

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/DragosCt10/trading-tracker-sub003/internal/analytics"
	"github.com/DragosCt10/trading-tracker-sub003/internal/config"
	apperrors "github.com/DragosCt10/trading-tracker-sub003/internal/errors"
	"github.com/DragosCt10/trading-tracker-sub003/internal/logging"
	"github.com/DragosCt10/trading-tracker-sub003/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.TradeStore
	Engine *analytics.Engine
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid analytics config, using defaults")
		engineCfg = analytics.DefaultConfig()
	}
	app.Engine = analytics.New(engineCfg)

	dataStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Database.Path).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Trading Tracker - trade journal analytics CLI",
		Long: `Trading Tracker is a trade journal dashboard for the terminal.

It records trades in a local SQLite journal and computes the derived
statistics shown throughout the dashboard: win rates, profit, drawdown,
streaks, profit factor, consistency score and category breakdowns.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("account", "", "Account ID (defaults to configured account)")

	addStatsCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addAccountCommands(rootCmd, app)

	return rootCmd
}

// accountID resolves the active account from the flag or configuration.
func (app *App) accountID(cmd *cobra.Command) string {
	if id, _ := cmd.Flags().GetString("account"); id != "" {
		return id
	}
	return app.Config.Account.ID
}

// balance resolves the account balance: an explicit --balance flag wins,
// then the stored account balance, then the configured fallback.
func (app *App) balance(ctx context.Context, cmd *cobra.Command) float64 {
	if cmd.Flags().Changed("balance") {
		balance, _ := cmd.Flags().GetFloat64("balance")
		return balance
	}
	if app.Store != nil {
		if balance, err := app.Store.GetAccountBalance(ctx, app.accountID(cmd)); err == nil {
			return balance
		} else if !apperrors.Is(err, apperrors.ErrAccountNotFound) {
			app.Logger.Warn().Err(err).Msg("Failed to read stored balance, using configured fallback")
		}
	}
	return app.Config.Account.Balance
}

// addFilterFlags registers the analytics filter flags shared by the stats
// commands.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("market", analytics.MarketAll, "Market filter (\"all\" disables)")
	cmd.Flags().String("execution", string(analytics.ExecutionAll), "Execution filter: executed, nonExecuted, all")
	cmd.Flags().String("from", "", "Start date (inclusive, YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End date (inclusive, YYYY-MM-DD)")
	cmd.Flags().Float64("balance", 0, "Account balance override")
}

// parseFilter builds the analytics filter from the command flags.
func parseFilter(cmd *cobra.Command) (analytics.Filter, error) {
	market, _ := cmd.Flags().GetString("market")
	execution, _ := cmd.Flags().GetString("execution")

	f := analytics.Filter{
		Market: market,
		From:   optional.None[time.Time](),
		To:     optional.None[time.Time](),
	}

	switch analytics.Execution(execution) {
	case analytics.ExecutionAll, analytics.ExecutionExecuted, analytics.ExecutionNonExecuted:
		f.Execution = analytics.Execution(execution)
	default:
		return f, apperrors.Wrapf(apperrors.ErrInvalidFilter,
			"execution must be executed, nonExecuted or all, got %q", execution)
	}

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return f, apperrors.Wrapf(apperrors.ErrInvalidFilter, "invalid from date %q", from)
		}
		f.From = optional.Some(parsed)
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return f, apperrors.Wrapf(apperrors.ErrInvalidFilter, "invalid to date %q", to)
		}
		f.To = optional.Some(parsed)
	}
	return f, nil
}
