package goal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pondo-ph/pondo/internal/goal"
	"github.com/pondo-ph/pondo/internal/transaction"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    goal.CreateParams
		setupMock func(m *goal.MockRepository)
		wantErr   bool
	}

	userID := uuid.New()

	tests := []testCase{
		{
			name: "Success",
			params: goal.CreateParams{
				UserID:       userID,
				Name:         "Emergency Fund",
				TargetAmount: 100000,
				Priority:     3,
			},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().
					CreateGoal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, g *goal.Goal) error {
						g.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "NonPositiveTarget",
			params: goal.CreateParams{
				UserID:       userID,
				Name:         "Bad",
				TargetAmount: 0,
			},
			wantErr: true,
		},
		{
			name: "NegativePriority",
			params: goal.CreateParams{
				UserID:       userID,
				Name:         "Bad",
				TargetAmount: 1000,
				Priority:     -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := goal.NewService(repo, goal.NewMockBalanceProvider(ctrl))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.Zero(t, got.CurrentAmount)
		})
	}
}

func TestService_DistributeSurplus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	balance := goal.NewMockBalanceProvider(ctrl)
	dtx := goal.NewMockDistributionTx(ctrl)
	svc := goal.NewService(repo, balance)

	userID := uuid.New()
	a := &goal.Goal{ID: uuid.New(), UserID: userID, Name: "A", TargetAmount: 100000, Priority: 3}
	b := &goal.Goal{ID: uuid.New(), UserID: userID, Name: "B", TargetAmount: 10000, CurrentAmount: 9000, Priority: 1}

	balance.EXPECT().Balance(gomock.Any(), userID).Return(int64(40000), nil)
	repo.EXPECT().ListGoals(gomock.Any(), userID).Return([]*goal.Goal{a, b}, nil)
	repo.EXPECT().BeginDistribution(gomock.Any()).Return(dtx, nil)
	dtx.EXPECT().UpdateGoalAmount(gomock.Any(), a.ID, int64(30000)).Return(nil)
	dtx.EXPECT().UpdateGoalAmount(gomock.Any(), b.ID, int64(10000)).Return(nil)
	dtx.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
			require.Len(t, txs, 2)
			assert.Equal(t, transaction.TypeExpense, txs[0].Type)
			assert.Equal(t, transaction.SourceDistribution, txs[0].Source)
			assert.Equal(t, int64(30000), txs[0].Amount)
			assert.Equal(t, int64(1000), txs[1].Amount)
			return nil
		})
	dtx.EXPECT().Commit().Return(nil)
	dtx.EXPECT().Rollback().Return(nil)

	dist, err := svc.DistributeSurplus(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(31000), dist.Total)
}

func TestService_DistributeSurplus_AdvisoryOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		goals   []*goal.Goal
		wantErr error
	}{
		{
			name:    "NothingToDistribute",
			balance: 0,
			goals:   []*goal.Goal{{ID: uuid.New(), TargetAmount: 1000, Priority: 1}},
			wantErr: goal.ErrNothingToDistribute,
		},
		{
			name:    "NoWeightedGoals",
			balance: 10000,
			goals:   nil,
			wantErr: goal.ErrNoWeightedGoals,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			balance := goal.NewMockBalanceProvider(ctrl)
			svc := goal.NewService(repo, balance)

			userID := uuid.New()
			balance.EXPECT().Balance(gomock.Any(), userID).Return(tt.balance, nil)

			if tt.balance > 0 {
				repo.EXPECT().ListGoals(gomock.Any(), userID).Return(tt.goals, nil)
			}

			dist, err := svc.DistributeSurplus(context.Background(), userID)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, dist)
		})
	}
}

func TestService_DistributeSurplus_RollsBackOnUpdateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	balance := goal.NewMockBalanceProvider(ctrl)
	dtx := goal.NewMockDistributionTx(ctrl)
	svc := goal.NewService(repo, balance)

	userID := uuid.New()
	a := &goal.Goal{ID: uuid.New(), UserID: userID, Name: "A", TargetAmount: 100000, Priority: 1}

	balance.EXPECT().Balance(gomock.Any(), userID).Return(int64(10000), nil)
	repo.EXPECT().ListGoals(gomock.Any(), userID).Return([]*goal.Goal{a}, nil)
	repo.EXPECT().BeginDistribution(gomock.Any()).Return(dtx, nil)
	dtx.EXPECT().UpdateGoalAmount(gomock.Any(), a.ID, int64(10000)).Return(errors.New("update failed"))
	dtx.EXPECT().Rollback().Return(nil)

	dist, err := svc.DistributeSurplus(context.Background(), userID)
	assert.Error(t, err)
	assert.Nil(t, dist)
}

func TestService_DistributeSurplus_AllGoalsAtCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	balance := goal.NewMockBalanceProvider(ctrl)
	svc := goal.NewService(repo, balance)

	userID := uuid.New()
	full := &goal.Goal{ID: uuid.New(), UserID: userID, Name: "Funded", TargetAmount: 5000, CurrentAmount: 5000, Priority: 2}

	balance.EXPECT().Balance(gomock.Any(), userID).Return(int64(10000), nil)
	repo.EXPECT().ListGoals(gomock.Any(), userID).Return([]*goal.Goal{full}, nil)

	// No store transaction is opened when there is nothing to apply.
	dist, err := svc.DistributeSurplus(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, dist.Total)
	assert.Empty(t, dist.Drafts)
}
