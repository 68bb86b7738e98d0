package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/DragosCt10/trading-tracker-sub003/internal/errors"
	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

func addCmdWithFlags(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := newTradeAddCmd(&App{})
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	return cmd
}

func TestTradeFromFlagsBuildsRecord(t *testing.T) {
	cmd := addCmdWithFlags(t, map[string]string{
		"market":    "EURUSD",
		"direction": "Long",
		"outcome":   "Win",
		"risk":      "1",
		"rr":        "2",
		"grade":     "A+",
		"date":      "2024-03-15",
		"time":      "09:45",
	})

	trade, err := tradeFromFlags(cmd, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", trade.AccountID)
	assert.Equal(t, models.DirectionLong, trade.Direction)
	assert.Equal(t, models.OutcomeWin, trade.Outcome)
	assert.True(t, trade.Executed)
	assert.Equal(t, "2024-03-15", trade.TradeDate.Format("2006-01-02"))

	grade, err := trade.Grade.Take()
	require.NoError(t, err)
	assert.Equal(t, models.GradeAPlus, grade)
	assert.True(t, trade.CalculatedProfit.IsNone())
}

func TestTradeFromFlagsValidation(t *testing.T) {
	cases := []struct {
		name  string
		flags map[string]string
		field string
	}{
		{"bad direction", map[string]string{"market": "EURUSD", "direction": "Sideways"}, "direction"},
		{"bad outcome", map[string]string{"market": "EURUSD", "direction": "Long", "outcome": "Draw"}, "outcome"},
		{"bad grade", map[string]string{"market": "EURUSD", "direction": "Long", "grade": "Z"}, "grade"},
		{"bad date", map[string]string{"market": "EURUSD", "direction": "Long", "date": "15-03-2024"}, "date"},
		{"bad time", map[string]string{"market": "EURUSD", "direction": "Long", "time": "9am"}, "time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := addCmdWithFlags(t, tc.flags)
			_, err := tradeFromFlags(cmd, "acc-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInputValidation)

			var valErr *apperrors.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tc.field, valErr.Field)
		})
	}
}
