package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/moznion/go-optional"

	apperrors "github.com/DragosCt10/trading-tracker-sub003/internal/errors"
	"github.com/DragosCt10/trading-tracker-sub003/internal/models"
)

// dateLayout stores trade dates as plain calendar dates. Comparisons in SQL
// stay correct because the layout sorts lexicographically.
const dateLayout = "2006-01-02"

// SQLiteStore implements TradeStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		user_id TEXT,
		market TEXT NOT NULL,
		direction TEXT NOT NULL,
		setup_type TEXT,
		liquidity TEXT,
		mss TEXT,
		grade TEXT,
		outcome TEXT NOT NULL DEFAULT '',
		break_even INTEGER NOT NULL DEFAULT 0,
		executed INTEGER NOT NULL DEFAULT 1,
		risk_per_trade REAL NOT NULL DEFAULT 0,
		risk_reward REAL NOT NULL DEFAULT 0,
		risk_reward_long REAL NOT NULL DEFAULT 0,
		sl_size REAL NOT NULL DEFAULT 0,
		calculated_profit REAL,
		pnl_percentage REAL,
		reentry INTEGER NOT NULL DEFAULT 0,
		news_related INTEGER NOT NULL DEFAULT 0,
		local_high_low INTEGER NOT NULL DEFAULT 0,
		partials_taken INTEGER NOT NULL DEFAULT 0,
		trade_date TEXT NOT NULL,
		trade_time TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_trades_account_date ON trades(account_id, trade_date);
	CREATE INDEX IF NOT EXISTS idx_trades_market ON trades(market);

	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		balance REAL NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

const tradeColumns = `id, account_id, user_id, market, direction, setup_type, liquidity, mss, grade,
	outcome, break_even, executed, risk_per_trade, risk_reward, risk_reward_long, sl_size,
	calculated_profit, pnl_percentage, reentry, news_related, local_high_low, partials_taken,
	trade_date, trade_time`

// SaveTrade inserts or replaces a trade record. A missing ID is assigned.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		trade.ID, trade.AccountID, trade.UserID, trade.Market, string(trade.Direction),
		nullString(trade.SetupType), nullString(trade.Liquidity), nullString(trade.MSS),
		nullGrade(trade.Grade), string(trade.Outcome),
		boolInt(trade.BreakEven), boolInt(trade.Executed),
		trade.RiskPerTrade, trade.RiskRewardRatio, trade.RiskRewardRatioLong, trade.SLSize,
		nullFloat(trade.CalculatedProfit), nullFloat(trade.PnLPercentage),
		boolInt(trade.Reentry), boolInt(trade.NewsRelated),
		boolInt(trade.LocalHighLow), boolInt(trade.PartialsTaken),
		trade.TradeDate.Format(dateLayout), nullString(trade.TradeTime),
	)
	if err != nil {
		return apperrors.NewStoreError("save_trade", trade.ID, err)
	}
	return nil
}

// GetTrades retrieves trades matching the filter, oldest first.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades"
	where, args := buildTradeWhere(filter)
	query += where + " ORDER BY trade_date ASC, created_at ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("get_trades", filter.AccountID, err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

// CountTrades returns the number of trades matching the filter.
func (s *SQLiteStore) CountTrades(ctx context.Context, filter TradeFilter) (int, error) {
	query := "SELECT COUNT(*) FROM trades"
	where, args := buildTradeWhere(filter)
	query += where

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewStoreError("count_trades", filter.AccountID, err)
	}
	return count, nil
}

// DeleteTrade removes a trade by ID.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return apperrors.NewStoreError("delete_trade", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError("delete_trade", id, err)
	}
	if affected == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}

// GetAccountBalance returns the stored balance for an account.
func (s *SQLiteStore) GetAccountBalance(ctx context.Context, accountID string) (float64, error) {
	var balance float64
	err := s.db.QueryRowContext(ctx,
		"SELECT balance FROM accounts WHERE id = ?", accountID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return 0, apperrors.NewStoreError("get_balance", accountID, err)
	}
	return balance, nil
}

// SetAccountBalance stores the balance for an account, creating the account
// row if needed.
func (s *SQLiteStore) SetAccountBalance(ctx context.Context, accountID string, balance float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, balance, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET balance = excluded.balance, updated_at = CURRENT_TIMESTAMP
	`, accountID, balance)
	if err != nil {
		return apperrors.NewStoreError("set_balance", accountID, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func buildTradeWhere(filter TradeFilter) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.AccountID != "" {
		where += " AND account_id = ?"
		args = append(args, filter.AccountID)
	}
	if filter.Market != "" {
		where += " AND market = ?"
		args = append(args, filter.Market)
	}
	if filter.Year > 0 {
		where += " AND trade_date >= ? AND trade_date <= ?"
		args = append(args, fmt.Sprintf("%04d-01-01", filter.Year), fmt.Sprintf("%04d-12-31", filter.Year))
	}
	if !filter.StartDate.IsZero() {
		where += " AND trade_date >= ?"
		args = append(args, filter.StartDate.Format(dateLayout))
	}
	if !filter.EndDate.IsZero() {
		where += " AND trade_date <= ?"
		args = append(args, filter.EndDate.Format(dateLayout))
	}
	if filter.Executed != nil {
		where += " AND executed = ?"
		args = append(args, boolInt(*filter.Executed))
	}
	return where, args
}

func scanTrade(rows *sql.Rows) (models.Trade, error) {
	var t models.Trade
	var direction, outcome, tradeDate string
	var setupType, liquidity, mss, grade, tradeTime sql.NullString
	var calculatedProfit, pnlPercentage sql.NullFloat64
	var breakEven, executed, reentry, newsRelated, localHighLow, partialsTaken int

	err := rows.Scan(
		&t.ID, &t.AccountID, &t.UserID, &t.Market, &direction,
		&setupType, &liquidity, &mss, &grade, &outcome,
		&breakEven, &executed,
		&t.RiskPerTrade, &t.RiskRewardRatio, &t.RiskRewardRatioLong, &t.SLSize,
		&calculatedProfit, &pnlPercentage,
		&reentry, &newsRelated, &localHighLow, &partialsTaken,
		&tradeDate, &tradeTime,
	)
	if err != nil {
		return t, apperrors.NewStoreError("scan_trade", "", err)
	}

	t.Direction = models.Direction(direction)
	t.Outcome = models.Outcome(outcome)
	t.SetupType = optionString(setupType)
	t.Liquidity = optionString(liquidity)
	t.MSS = optionString(mss)
	t.TradeTime = optionString(tradeTime)
	if grade.Valid {
		t.Grade = optional.Some(models.Grade(grade.String))
	} else {
		t.Grade = optional.None[models.Grade]()
	}
	if calculatedProfit.Valid {
		t.CalculatedProfit = optional.Some(calculatedProfit.Float64)
	} else {
		t.CalculatedProfit = optional.None[float64]()
	}
	if pnlPercentage.Valid {
		t.PnLPercentage = optional.Some(pnlPercentage.Float64)
	} else {
		t.PnLPercentage = optional.None[float64]()
	}
	t.BreakEven = breakEven == 1
	t.Executed = executed == 1
	t.Reentry = reentry == 1
	t.NewsRelated = newsRelated == 1
	t.LocalHighLow = localHighLow == 1
	t.PartialsTaken = partialsTaken == 1

	parsed, err := time.Parse(dateLayout, tradeDate)
	if err != nil {
		return t, apperrors.NewStoreError("scan_trade", t.ID,
			apperrors.Wrapf(err, "malformed trade date %q", tradeDate))
	}
	t.TradeDate = parsed

	return t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(opt optional.Option[string]) interface{} {
	if v, err := opt.Take(); err == nil {
		return v
	}
	return nil
}

func nullGrade(opt optional.Option[models.Grade]) interface{} {
	if v, err := opt.Take(); err == nil {
		return string(v)
	}
	return nil
}

func nullFloat(opt optional.Option[float64]) interface{} {
	if v, err := opt.Take(); err == nil {
		return v
	}
	return nil
}

func optionString(ns sql.NullString) optional.Option[string] {
	if ns.Valid {
		return optional.Some(ns.String)
	}
	return optional.None[string]()
}
