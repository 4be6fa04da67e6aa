// Package store persists trades and selects the trade windows handed to the
// profit engine.
//
// All I/O happens here, before the engine runs: a repository returns completed
// trades of one fiat currency, sorted by completion time.
package store

import (
	"context"

	"github.com/etnz/tradepnl"
)

// Repository defines the standard interface for trade storage.
type Repository interface {
	// Migrate prepares the storage.
	Migrate(ctx context.Context) error
	// Insert stores trades and returns how many were new.
	Insert(ctx context.Context, trades ...tradepnl.Trade) (int, error)
	// CompletedTrades returns the completed trades selected by q, sorted
	// ascending by completion time.
	CompletedTrades(ctx context.Context, q tradepnl.Query) ([]tradepnl.Trade, error)
	Close()
}
