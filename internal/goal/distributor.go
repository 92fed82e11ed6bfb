package goal

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pondo-ph/pondo/internal/transaction"
)

// Advisory outcomes of Distribute: callers display a message and move on.
var (
	ErrNothingToDistribute = errors.New("nothing to distribute")
	ErrNoWeightedGoals     = errors.New("no weighted goals")
)

// Allocation is the amount granted to a single goal in one distribution pass.
type Allocation struct {
	GoalID uuid.UUID
	Amount int64
}

// Distribution is the outcome of one pass over the goals.
type Distribution struct {
	Allocations []Allocation
	Drafts      []transaction.CreateParams
	Total       int64
}

// Distribute splits a positive balance across the goals proportionally to
// their priorities, clamping each share at the goal's remaining capacity.
//
// Shares are computed with integer floor division on cents, so the allocated
// total can never exceed the balance. This is a single pass: a share clamped
// at a goal's cap is not re-spread over the other goals. Goals that receive
// nothing emit no draft transaction.
//
// Goal mutation happens in memory only; persisting the updated goals together
// with the drafted transactions is the caller's job.
func Distribute(balance int64, goals []*Goal) (*Distribution, error) {
	if balance <= 0 {
		return nil, ErrNothingToDistribute
	}

	var totalPriority int64
	for _, g := range goals {
		totalPriority += int64(g.Priority)
	}

	if totalPriority == 0 {
		return nil, ErrNoWeightedGoals
	}

	dist := &Distribution{}

	for _, g := range goals {
		share := balance * int64(g.Priority) / totalPriority

		allocated := min(share, g.Remaining())
		if allocated <= 0 {
			continue
		}

		g.CurrentAmount += allocated

		dist.Allocations = append(dist.Allocations, Allocation{GoalID: g.ID, Amount: allocated})
		dist.Drafts = append(dist.Drafts, transaction.CreateParams{
			UserID:      g.UserID,
			Amount:      allocated,
			Type:        transaction.TypeExpense,
			Description: fmt.Sprintf("Distributed to goal: %s", g.Name),
			Source:      transaction.SourceDistribution,
		})
		dist.Total += allocated
	}

	return dist, nil
}
