package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pondo-ph/pondo/internal/transaction"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m *transaction.MockRepository)
		wantSource string
		wantErr    bool
	}

	userID := uuid.New()

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: transaction.CreateParams{
					UserID:      userID,
					Amount:      1000,
					Type:        transaction.TypeExpense,
					Description: "Groceries",
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
			wantSource: transaction.SourceManual,
			wantErr:    false,
		},
		{
			name: "ExplicitSource",
			args: args{
				params: transaction.CreateParams{
					UserID:      userID,
					Amount:      500,
					Type:        transaction.TypeExpense,
					Description: "Scanned Expense",
					Source:      transaction.SourceOCRScan,
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantSource: transaction.SourceOCRScan,
			wantErr:    false,
		},
		{
			name: "NonPositiveAmount",
			args: args{
				params: transaction.CreateParams{
					UserID: userID,
					Amount: 0,
					Type:   transaction.TypeIncome,
				},
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			args: args{
				params: transaction.CreateParams{
					UserID: userID,
					Amount: 500,
					Type:   transaction.TypeIncome,
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.wantSource, got.Source)
		})
	}
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	btx := transaction.NewMockBatchTx(ctrl)
	svc := transaction.NewService(repo)

	userID := uuid.New()
	params := []transaction.CreateParams{
		{
			UserID:      userID,
			Amount:      10000,
			Type:        transaction.TypeExpense,
			Description: "Scanned Expense",
			Source:      transaction.SourceOCRScan,
		},
		{
			UserID:      userID,
			Amount:      5000,
			Type:        transaction.TypeIncome,
			Description: "Scanned Income",
			Source:      transaction.SourceOCRScan,
		},
	}

	repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
	btx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	txs, err := svc.CreateBatch(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(10000), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.Equal(t, transaction.SourceOCRScan, txs[0].Source)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestService_CreateBatch_RollsBackOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	btx := transaction.NewMockBatchTx(ctrl)
	svc := transaction.NewService(repo)

	params := []transaction.CreateParams{
		{UserID: uuid.New(), Amount: 100, Type: transaction.TypeExpense},
	}

	repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
	btx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	btx.EXPECT().Rollback().Return(nil)

	txs, err := svc.CreateBatch(context.Background(), params)
	assert.Error(t, err)
	assert.Nil(t, txs)
}

func TestService_CreateBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	txs, err := svc.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestService_Balance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	userID := uuid.New()
	repo.EXPECT().Balance(gomock.Any(), userID).Return(int64(31000), nil)

	balance, err := svc.Balance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(31000), balance)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	userID := uuid.New()
	repo.EXPECT().
		ListTransactions(gomock.Any(), userID, transaction.ListFilter{}).
		Return([]*transaction.Transaction{
			{ID: uuid.New(), UserID: userID},
			{ID: uuid.New(), UserID: userID},
		}, nil)

	txs, err := svc.List(context.Background(), userID, transaction.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}
