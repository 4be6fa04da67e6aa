package store

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/tradepnl"
	"github.com/etnz/tradepnl/date"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS trades (
	seq           BIGSERIAL PRIMARY KEY,
	external_id   TEXT UNIQUE,
	side          TEXT NOT NULL CHECK (side IN ('BUY', 'SELL')),
	status        TEXT NOT NULL,
	asset         TEXT NOT NULL,
	fiat_currency TEXT NOT NULL,
	amount        NUMERIC(38, 18) NOT NULL,
	price         NUMERIC(38, 18) NOT NULL,
	total_fiat    NUMERIC(38, 18) NOT NULL,
	fee_fiat      NUMERIC(38, 18) NOT NULL DEFAULT 0,
	completed_at  TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS trades_currency_completed_at ON trades (fiat_currency, completed_at)`,
}

const insertTrade = `
INSERT INTO trades (external_id, side, status, asset, fiat_currency, amount, price, total_fiat, fee_fiat, completed_at)
VALUES (NULLIF($1, ''), $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (external_id) DO NOTHING`

// Both window bounds are optional, the upper one is exclusive.
const selectCompleted = `
SELECT coalesce(external_id, ''), side, status, asset, fiat_currency, amount, price, total_fiat, fee_fiat, completed_at
FROM trades
WHERE status = 'COMPLETED'
  AND upper(fiat_currency) = upper($1)
  AND ($2 = '' OR upper(asset) = upper($2))
  AND ($3::timestamptz IS NULL OR completed_at >= $3)
  AND ($4::timestamptz IS NULL OR completed_at < $4)
ORDER BY completed_at, seq`

// PostgresRepository stores trades in a PostgreSQL table.
type PostgresRepository struct {
	Pool   *pgxpool.Pool
	Logger *zap.Logger
}

// NewPostgresRepository connects to the database at url.
func NewPostgresRepository(ctx context.Context, url string, logger *zap.Logger) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("could not reach database: %w", err)
	}
	return &PostgresRepository{Pool: pool, Logger: logger}, nil
}

func (r *PostgresRepository) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Migrate creates the trades table.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("could not create trades table: %w", err)
		}
	}
	r.logger().Info("trades table ready")
	return nil
}

// Insert stores trades in a single batch. Trades whose ID is already stored
// are ignored.
func (r *PostgresRepository) Insert(ctx context.Context, trades ...tradepnl.Trade) (int, error) {
	if len(trades) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, t := range trades {
		status := t.Status
		if status == "" {
			status = tradepnl.Completed
		}
		batch.Queue(insertTrade,
			t.ID, string(t.Side), string(status), t.Asset, t.FiatCurrency,
			t.Amount.String(), t.Price.String(), t.TotalFiat.String(), t.FeeFiat.String(),
			t.CompletedAt,
		)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := range trades {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("could not insert trade #%d %q: %w", i, trades[i].ID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	r.logger().Info("trades inserted", zap.Int("count", inserted), zap.Int("ignored", len(trades)-inserted))
	return inserted, nil
}

// CompletedTrades returns the completed trades selected by q. The date window
// is evaluated in UTC.
func (r *PostgresRepository) CompletedTrades(ctx context.Context, q tradepnl.Query) ([]tradepnl.Trade, error) {
	rows, err := r.Pool.Query(ctx, selectCompleted, q.FiatCurrency, q.Asset, lowerBound(q.Range.From), upperBound(q.Range.To))
	if err != nil {
		return nil, fmt.Errorf("could not query trades: %w", err)
	}
	trades, err := pgx.CollectRows(rows, scanTrade)
	if err != nil {
		return nil, fmt.Errorf("could not read trades: %w", err)
	}
	r.logger().Debug("trades selected", zap.Int("count", len(trades)), zap.String("currency", q.FiatCurrency), zap.String("asset", q.Asset))
	return trades, nil
}

func scanTrade(row pgx.CollectableRow) (tradepnl.Trade, error) {
	var (
		t                         tradepnl.Trade
		side, status              string
		amount, price, total, fee string
	)
	err := row.Scan(&t.ID, &side, &status, &t.Asset, &t.FiatCurrency, &amount, &price, &total, &fee, &t.CompletedAt)
	if err != nil {
		return t, err
	}
	t.Side = tradepnl.Side(side)
	t.Status = tradepnl.Status(status)
	t.CompletedAt = t.CompletedAt.UTC()
	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{{&t.Amount, amount}, {&t.Price, price}, {&t.TotalFiat, total}, {&t.FeeFiat, fee}} {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return t, err
		}
	}
	return t, nil
}

// lowerBound is the first instant of d, nil when d is zero.
func lowerBound(d date.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

// upperBound is the first instant after d, nil when d is zero.
func upperBound(d date.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	return lowerBound(d.Add(1))
}

// Close closes the connection pool.
func (r *PostgresRepository) Close() { r.Pool.Close() }
