package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Well-known provenance tags for the Source field.
const (
	SourceManual       = "N/A"
	SourceOCRScan      = "OCR Scan"
	SourceDistribution = "Goal Distribution"
)

var ErrNotFound = errors.New("transaction not found")

// Transaction is one ledger entry. The ledger is append-only: entries are
// never updated or deleted, and a user's balance is always derived from it.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      int64 // Amount in cents
	Type        Type
	Description string
	Source      string
	CreatedAt   time.Time
}
