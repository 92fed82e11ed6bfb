package goal_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondo-ph/pondo/internal/goal"
	"github.com/pondo-ph/pondo/internal/transaction"
)

func newGoal(name string, priority int, target, current int64) *goal.Goal {
	return &goal.Goal{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: current,
		Priority:      priority,
	}
}

func TestDistribute_ProportionalWithClamping(t *testing.T) {
	// Balance 400.00: goal A (priority 3) gets its full 300.00 share,
	// goal B (priority 1) has its 100.00 share capped at the remaining 10.00.
	a := newGoal("Emergency Fund", 3, 100000, 0)
	b := newGoal("New Phone", 1, 10000, 9000)

	dist, err := goal.Distribute(40000, []*goal.Goal{a, b})
	require.NoError(t, err)

	assert.Equal(t, int64(30000), a.CurrentAmount)
	assert.Equal(t, int64(10000), b.CurrentAmount)
	assert.Equal(t, int64(31000), dist.Total)

	require.Len(t, dist.Allocations, 2)
	assert.Equal(t, a.ID, dist.Allocations[0].GoalID)
	assert.Equal(t, int64(30000), dist.Allocations[0].Amount)
	assert.Equal(t, b.ID, dist.Allocations[1].GoalID)
	assert.Equal(t, int64(1000), dist.Allocations[1].Amount)

	require.Len(t, dist.Drafts, 2)
	assert.Equal(t, transaction.TypeExpense, dist.Drafts[0].Type)
	assert.Equal(t, "Distributed to goal: Emergency Fund", dist.Drafts[0].Description)
	assert.Equal(t, transaction.SourceDistribution, dist.Drafts[0].Source)
	assert.Equal(t, "Distributed to goal: New Phone", dist.Drafts[1].Description)
}

func TestDistribute_AdvisoryOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		goals   []*goal.Goal
		wantErr error
	}{
		{
			name:    "ZeroBalance",
			balance: 0,
			goals:   []*goal.Goal{newGoal("A", 1, 1000, 0)},
			wantErr: goal.ErrNothingToDistribute,
		},
		{
			name:    "NegativeBalance",
			balance: -500,
			goals:   []*goal.Goal{newGoal("A", 1, 1000, 0)},
			wantErr: goal.ErrNothingToDistribute,
		},
		{
			name:    "NoGoals",
			balance: 10000,
			goals:   nil,
			wantErr: goal.ErrNoWeightedGoals,
		},
		{
			name:    "OnlyZeroPriorityGoals",
			balance: 10000,
			goals:   []*goal.Goal{newGoal("A", 0, 1000, 0), newGoal("B", 0, 2000, 0)},
			wantErr: goal.ErrNoWeightedGoals,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := goal.Distribute(tt.balance, tt.goals)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, dist)

			for _, g := range tt.goals {
				assert.Zero(t, g.CurrentAmount)
			}
		})
	}
}

func TestDistribute_ZeroPriorityGoalReceivesNothing(t *testing.T) {
	weighted := newGoal("Weighted", 2, 100000, 0)
	unweighted := newGoal("Unweighted", 0, 100000, 0)

	dist, err := goal.Distribute(10000, []*goal.Goal{weighted, unweighted})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), weighted.CurrentAmount)
	assert.Zero(t, unweighted.CurrentAmount)

	// No draft for the goal that received nothing.
	require.Len(t, dist.Drafts, 1)
	assert.Equal(t, "Distributed to goal: Weighted", dist.Drafts[0].Description)
}

func TestDistribute_FullGoalSkipped(t *testing.T) {
	full := newGoal("Funded", 5, 5000, 5000)
	open := newGoal("Open", 5, 100000, 0)

	dist, err := goal.Distribute(10000, []*goal.Goal{full, open})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), full.CurrentAmount)
	assert.Equal(t, int64(5000), open.CurrentAmount)

	// Single pass: the clamped half is not re-spread onto the open goal.
	assert.Equal(t, int64(5000), dist.Total)
	require.Len(t, dist.Allocations, 1)
	assert.Equal(t, open.ID, dist.Allocations[0].GoalID)
}

func TestDistribute_ConservationAndCapacity(t *testing.T) {
	cases := []struct {
		balance int64
		goals   []*goal.Goal
	}{
		{
			balance: 40000,
			goals: []*goal.Goal{
				newGoal("A", 3, 100000, 0),
				newGoal("B", 1, 10000, 9000),
			},
		},
		{
			// Odd balance with priorities that do not divide evenly.
			balance: 99999,
			goals: []*goal.Goal{
				newGoal("A", 1, 1000000, 0),
				newGoal("B", 1, 1000000, 0),
				newGoal("C", 1, 1000000, 0),
			},
		},
		{
			balance: 123457,
			goals: []*goal.Goal{
				newGoal("A", 7, 50000, 12345),
				newGoal("B", 2, 30000, 29999),
				newGoal("C", 0, 10000, 0),
				newGoal("D", 11, 200000, 150000),
			},
		},
	}

	for _, tc := range cases {
		var capacity int64
		for _, g := range tc.goals {
			capacity += g.Remaining()
		}

		dist, err := goal.Distribute(tc.balance, tc.goals)
		require.NoError(t, err)

		var allocated int64
		for _, a := range dist.Allocations {
			assert.Positive(t, a.Amount)
			allocated += a.Amount
		}

		assert.Equal(t, dist.Total, allocated)
		assert.LessOrEqual(t, dist.Total, tc.balance)
		assert.LessOrEqual(t, dist.Total, capacity)

		for _, g := range tc.goals {
			assert.LessOrEqual(t, g.CurrentAmount, g.TargetAmount)
			assert.GreaterOrEqual(t, g.CurrentAmount, int64(0))
		}
	}
}
