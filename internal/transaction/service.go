package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)

	BeginBatch(ctx context.Context) (BatchTx, error)
}

type BatchTx interface {
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID      uuid.UUID
	Amount      int64
	Type        Type
	Description string
	Source      string
}

type ListFilter struct {
	Type   *Type
	Source *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", params.Amount)
	}

	source := params.Source
	if source == "" {
		source = SourceManual
	}

	tx := &Transaction{
		UserID:      params.UserID,
		Amount:      params.Amount,
		Type:        params.Type,
		Description: params.Description,
		Source:      source,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch inserts all entries within a single database transaction,
// so a partial failure leaves the ledger untouched.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	btx, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	txs := paramsToTransactions(params)
	if err := btx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return txs, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

// Balance reports sum(income) - sum(expense) in cents for the user.
// It is derived from the ledger on every call, never stored.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.Balance(ctx, userID)
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		source := p.Source
		if source == "" {
			source = SourceManual
		}

		txs[i] = &Transaction{
			UserID:      p.UserID,
			Amount:      p.Amount,
			Type:        p.Type,
			Description: p.Description,
			Source:      source,
		}
	}

	return txs
}
