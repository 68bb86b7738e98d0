// Package cli provides the command-line interface for the trading tracker.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// addAccountCommands adds account management commands.
func addAccountCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Long:  "Show and update the account balance used for balance-normalized metrics.",
	}

	cmd.AddCommand(newAccountShowCmd(app))
	cmd.AddCommand(newAccountSetBalanceCmd(app))

	rootCmd.AddCommand(cmd)
}

func newAccountShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active account",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			accountID := app.accountID(cmd)
			balance := app.balance(ctx, cmd)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"account_id": accountID,
					"balance":    balance,
				})
			}

			output.Bold("Account %s", accountID)
			output.Printf("  Balance: %s\n", FormatCurrency(balance))
			return nil
		},
	}
}

func newAccountSetBalanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "set-balance <amount>",
		Short:   "Set the stored account balance",
		Example: `  tracker account set-balance 25000`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			balance, err := strconv.ParseFloat(args[0], 64)
			if err != nil || balance < 0 {
				output.Error("Invalid balance %q", args[0])
				return fmt.Errorf("invalid balance %q", args[0])
			}

			if app.Store == nil {
				output.Error("Store not initialized")
				return fmt.Errorf("store not initialized")
			}

			if err := app.Store.SetAccountBalance(ctx, app.accountID(cmd), balance); err != nil {
				output.Error("Failed to set balance: %v", err)
				return err
			}

			output.Success("Balance set to %s", FormatCurrency(balance))
			return nil
		},
	}
}
