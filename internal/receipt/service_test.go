package receipt_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pondo-ph/pondo/internal/receipt"
	"github.com/pondo-ph/pondo/internal/transaction"
)

type extractorFunc func(ctx context.Context, image io.Reader) (string, error)

func (f extractorFunc) Extract(ctx context.Context, image io.Reader) (string, error) {
	return f(ctx, image)
}

func fixedText(text string) receipt.Extractor {
	return extractorFunc(func(context.Context, io.Reader) (string, error) {
		return text, nil
	})
}

func TestService_Scan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	btx := transaction.NewMockBatchTx(ctrl)
	txSvc := transaction.NewService(repo)

	userID := uuid.New()

	repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
	btx.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
			require.Len(t, txs, 2)
			assert.Equal(t, userID, txs[0].UserID)
			assert.Equal(t, transaction.TypeExpense, txs[0].Type)
			assert.Equal(t, int64(123456), txs[0].Amount)
			assert.Equal(t, transaction.SourceOCRScan, txs[0].Source)
			assert.Equal(t, transaction.TypeIncome, txs[1].Type)
			assert.Equal(t, int64(50000), txs[1].Amount)
			return nil
		})
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	svc := receipt.NewService(fixedText("expense ₱1,234.56 income 500"), txSvc)

	txs, err := svc.Scan(context.Background(), userID, strings.NewReader("fake image"))
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestService_Scan_NoTextExtracted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txSvc := transaction.NewService(transaction.NewMockRepository(ctrl))
	svc := receipt.NewService(fixedText(""), txSvc)

	txs, err := svc.Scan(context.Background(), uuid.New(), strings.NewReader("fake image"))
	assert.ErrorIs(t, err, receipt.ErrNoTransactions)
	assert.Nil(t, txs)
}

func TestService_Scan_ExtractorFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txSvc := transaction.NewService(transaction.NewMockRepository(ctrl))

	failing := extractorFunc(func(context.Context, io.Reader) (string, error) {
		return "", errors.New("ocr service unavailable")
	})

	svc := receipt.NewService(failing, txSvc)

	txs, err := svc.Scan(context.Background(), uuid.New(), strings.NewReader("fake image"))
	assert.ErrorIs(t, err, receipt.ErrNoTransactions)
	assert.Nil(t, txs)
}

func TestService_Scan_NoCandidatesInText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txSvc := transaction.NewService(transaction.NewMockRepository(ctrl))
	svc := receipt.NewService(fixedText("thank you for shopping"), txSvc)

	txs, err := svc.Scan(context.Background(), uuid.New(), strings.NewReader("fake image"))
	assert.ErrorIs(t, err, receipt.ErrNoTransactions)
	assert.Nil(t, txs)
}
