package tradepnl

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the root of all configuration errors. Nothing is
	// computed when a call fails with it.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidMethod is returned for an unknown profit method.
	ErrInvalidMethod = fmt.Errorf("%w: unknown profit method", ErrInvalidArgument)
	// ErrInvalidCurrency is returned for an empty or unknown fiat currency code.
	ErrInvalidCurrency = fmt.Errorf("%w: invalid fiat currency", ErrInvalidArgument)
	// ErrInvalidPeriod is returned for an unknown series bucket size.
	ErrInvalidPeriod = fmt.Errorf("%w: invalid period", ErrInvalidArgument)
)
