package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/tradepnl"
	"go.uber.org/zap"
)

// FileRepository stores trades in a JSONL ledger file.
type FileRepository struct {
	path   string
	logger *zap.Logger
}

// NewFileRepository returns a repository over the ledger file at path.
func NewFileRepository(path string, logger *zap.Logger) *FileRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileRepository{path: path, logger: logger.With(zap.String("ledger", path))}
}

// Migrate creates an empty ledger file if there is none.
func (r *FileRepository) Migrate(ctx context.Context) error {
	f, err := os.OpenFile(r.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("cannot create ledger: %w", err)
	}
	return f.Close()
}

// load reads the ledger, a missing file is an empty ledger.
func (r *FileRepository) load() (*tradepnl.Ledger, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return tradepnl.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger: %w", err)
	}
	defer f.Close()

	ledger, err := tradepnl.DecodeLedger(f)
	if err != nil {
		return nil, err
	}
	for _, rej := range ledger.Rejected() {
		r.logger.Warn("rejected ledger line", zap.Int("line", rej.Line), zap.String("reason", rej.Reason))
	}
	return ledger, nil
}

// Insert appends trades to the ledger. Trades with an ID already in the
// ledger are ignored.
//
// Rejected lines of the existing ledger are not written back.
func (r *FileRepository) Insert(ctx context.Context, trades ...tradepnl.Trade) (int, error) {
	ledger, err := r.load()
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool)
	for _, t := range ledger.Trades() {
		if t.ID != "" {
			known[t.ID] = true
		}
	}
	var fresh []tradepnl.Trade
	for _, t := range trades {
		if t.ID != "" && known[t.ID] {
			continue
		}
		if t.ID != "" {
			known[t.ID] = true
		}
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	ledger.Append(fresh...)

	if err := r.save(ledger); err != nil {
		return 0, err
	}
	r.logger.Info("trades inserted", zap.Int("count", len(fresh)), zap.Int("total", ledger.Len()))
	return len(fresh), nil
}

// save writes the ledger to a temporary file then renames it over the ledger.
func (r *FileRepository) save(ledger *tradepnl.Ledger) error {
	f, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	defer os.Remove(f.Name())

	if err := tradepnl.EncodeLedger(f, ledger); err != nil {
		f.Close()
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	if err := os.Rename(f.Name(), r.path); err != nil {
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	return nil
}

// CompletedTrades returns the completed trades of the ledger selected by q.
func (r *FileRepository) CompletedTrades(ctx context.Context, q tradepnl.Query) ([]tradepnl.Trade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ledger, err := r.load()
	if err != nil {
		return nil, err
	}
	return ledger.Select(q), nil
}

// Close does nothing, the file is opened on every call.
func (r *FileRepository) Close() {}
