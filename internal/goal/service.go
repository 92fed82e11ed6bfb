package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pondo-ph/pondo/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*Goal, error)

	BeginDistribution(ctx context.Context) (DistributionTx, error)
}

// DistributionTx applies one distribution pass atomically: every goal update
// and every ledger insert commits together or not at all.
type DistributionTx interface {
	UpdateGoalAmount(ctx context.Context, goalID uuid.UUID, currentAmount int64) error
	CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error
	Commit() error
	Rollback() error
}

// BalanceProvider reports the user's derived ledger balance in cents.
// *transaction.Service satisfies it.
type BalanceProvider interface {
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Service struct {
	repo    Repository
	balance BalanceProvider
}

func NewService(repo Repository, balance BalanceProvider) *Service {
	return &Service{repo: repo, balance: balance}
}

type CreateParams struct {
	UserID       uuid.UUID
	Name         string
	TargetAmount int64
	Priority     int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if params.TargetAmount <= 0 {
		return nil, fmt.Errorf("target amount must be positive, got %d", params.TargetAmount)
	}

	if params.Priority < 0 {
		return nil, fmt.Errorf("priority must be non-negative, got %d", params.Priority)
	}

	g := &Goal{
		UserID:       params.UserID,
		Name:         params.Name,
		TargetAmount: params.TargetAmount,
		Priority:     params.Priority,
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

// DistributeSurplus runs one distribution pass over the user's goals and
// persists the goal updates together with the drafted expense transactions
// in a single store transaction. Advisory outcomes (ErrNothingToDistribute,
// ErrNoWeightedGoals) pass through unwrapped.
func (s *Service) DistributeSurplus(ctx context.Context, userID uuid.UUID) (*Distribution, error) {
	balance, err := s.balance.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("deriving balance: %w", err)
	}

	goals, err := s.repo.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	dist, err := Distribute(balance, goals)
	if err != nil {
		return nil, err
	}

	if dist.Total == 0 {
		// Every weighted goal is already at its cap.
		return dist, nil
	}

	dtx, err := s.repo.BeginDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin distribution: %w", err)
	}
	defer dtx.Rollback()

	byID := make(map[uuid.UUID]*Goal, len(goals))
	for _, g := range goals {
		byID[g.ID] = g
	}

	for _, a := range dist.Allocations {
		if err := dtx.UpdateGoalAmount(ctx, a.GoalID, byID[a.GoalID].CurrentAmount); err != nil {
			return nil, fmt.Errorf("updating goal %s: %w", a.GoalID, err)
		}
	}

	txs := make([]*transaction.Transaction, len(dist.Drafts))
	for i, d := range dist.Drafts {
		txs[i] = &transaction.Transaction{
			UserID:      d.UserID,
			Amount:      d.Amount,
			Type:        d.Type,
			Description: d.Description,
			Source:      d.Source,
		}
	}

	if err := dtx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("recording distribution transactions: %w", err)
	}

	if err := dtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit distribution: %w", err)
	}

	return dist, nil
}
