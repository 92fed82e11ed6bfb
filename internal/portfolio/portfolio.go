package portfolio

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrDuplicateSymbol = errors.New("symbol already held")

// Holding is a position in one symbol, owned by a user. Holdings live in the
// store, never in session state, so every request sees the same portfolio.
type Holding struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Symbol    string
	Shares    decimal.Decimal
	CreatedAt time.Time
}
