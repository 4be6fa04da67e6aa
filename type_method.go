package tradepnl

import (
	"fmt"
	"strings"
)

// Method defines the accounting convention used to match sells against buys.
type Method int

const (
	// FIFO (First-In, First-Out) matches every sell against the oldest open buy lots first.
	FIFO Method = iota + 1
	// Average matches every sell against a single weighted average cost basis.
	Average
)

func (m Method) String() string {
	switch m {
	case FIFO:
		return "FIFO"
	case Average:
		return "AVERAGE"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Label is the human readable name of the method.
func (m Method) Label() string {
	switch m {
	case FIFO:
		return "First In, First Out"
	case Average:
		return "Average Cost"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the known methods.
func (m Method) Valid() bool { return m == FIFO || m == Average }

// Methods returns all the supported methods, in display order.
func Methods() []Method { return []Method{FIFO, Average} }

// ParseMethod parses a method name, case insensitive.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIFO":
		return FIFO, nil
	case "AVERAGE", "AVG":
		return Average, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMethod, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
