package receipt

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pondo-ph/pondo/internal/transaction"
)

// ErrNoTransactions is advisory: the scan found nothing worth recording.
var ErrNoTransactions = errors.New("no transactions detected")

type Service struct {
	extractor    Extractor
	transactions *transaction.Service
}

func NewService(extractor Extractor, txSvc *transaction.Service) *Service {
	return &Service{
		extractor:    extractor,
		transactions: txSvc,
	}
}

// Scan extracts text from a receipt image, parses transaction candidates out
// of it and records them for the user in one batch. An extraction failure is
// downgraded to "no text": the scan itself never fails on bad input.
func (s *Service) Scan(ctx context.Context, userID uuid.UUID, image io.Reader) ([]*transaction.Transaction, error) {
	text, err := s.extractor.Extract(ctx, image)
	if err != nil {
		slog.Warn("ocr extraction failed", "error", err)

		text = ""
	}

	candidates := Parse(text)
	if len(candidates) == 0 {
		return nil, ErrNoTransactions
	}

	params := make([]transaction.CreateParams, len(candidates))
	for i, c := range candidates {
		params[i] = transaction.CreateParams{
			UserID:      userID,
			Amount:      c.Amount,
			Type:        c.Type,
			Description: c.Description,
			Source:      c.Source,
		}
	}

	return s.transactions.CreateBatch(ctx, params)
}
