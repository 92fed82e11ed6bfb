package advice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pondo-ph/pondo/internal/transaction"
)

// ErrNoTransactions is advisory: there is no ledger to summarize yet.
var ErrNoTransactions = errors.New("no transactions yet")

// Generator produces free-form budgeting advice (markdown) for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	transactions *transaction.Service
	generator    Generator
}

func NewService(txSvc *transaction.Service, generator Generator) *Service {
	return &Service{
		transactions: txSvc,
		generator:    generator,
	}
}

// Advise summarizes the user's ledger and asks the generator for short
// budgeting advice. The returned text is markdown, rendered by the client.
func (s *Service) Advise(ctx context.Context, userID uuid.UUID) (string, error) {
	txs, err := s.transactions.List(ctx, userID, transaction.ListFilter{})
	if err != nil {
		return "", fmt.Errorf("listing transactions: %w", err)
	}

	if len(txs) == 0 {
		return "", ErrNoTransactions
	}

	return s.generator.Generate(ctx, buildPrompt(txs))
}

func buildPrompt(txs []*transaction.Transaction) string {
	var sb strings.Builder

	sb.WriteString("Here are my transactions:\n")

	for _, tx := range txs {
		fmt.Fprintf(&sb, "%s - ₱%.2f (%s)\n", tx.Type, float64(tx.Amount)/100.0, tx.Description)
	}

	sb.WriteString("\nPlease give me short budgeting advice.")

	return sb.String()
}
