package portfolio_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pondo-ph/pondo/internal/market"
	"github.com/pondo-ph/pondo/internal/portfolio"
)

func TestService_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := portfolio.NewMockRepository(ctrl)
	svc := portfolio.NewService(repo, portfolio.NewMockMarketData(ctrl), "PHP")

	userID := uuid.New()

	repo.EXPECT().
		CreateHolding(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, h *portfolio.Holding) error {
			h.ID = uuid.New()
			return nil
		})

	h, err := svc.Add(context.Background(), portfolio.AddParams{
		UserID: userID,
		Symbol: " aapl ",
		Shares: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", h.Symbol)
}

func TestService_Add_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := portfolio.NewService(portfolio.NewMockRepository(ctrl), portfolio.NewMockMarketData(ctrl), "PHP")

	_, err := svc.Add(context.Background(), portfolio.AddParams{UserID: uuid.New(), Symbol: "", Shares: decimal.NewFromInt(1)})
	assert.Error(t, err)

	_, err = svc.Add(context.Background(), portfolio.AddParams{UserID: uuid.New(), Symbol: "AAPL", Shares: decimal.Zero})
	assert.Error(t, err)
}

func TestService_Valuate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := portfolio.NewMockRepository(ctrl)
	md := portfolio.NewMockMarketData(ctrl)
	svc := portfolio.NewService(repo, md, "PHP")

	userID := uuid.New()
	holdings := []*portfolio.Holding{
		{ID: uuid.New(), UserID: userID, Symbol: "AAPL", Shares: decimal.NewFromInt(2)},
		{ID: uuid.New(), UserID: userID, Symbol: "MSFT", Shares: decimal.NewFromInt(1)},
	}

	repo.EXPECT().ListHoldings(gomock.Any(), userID).Return(holdings, nil)
	md.EXPECT().FxRate(gomock.Any(), "USD", "PHP").Return(decimal.NewFromInt(56), nil)
	md.EXPECT().Quote(gomock.Any(), "AAPL").Return(&market.Quote{
		Symbol: "AAPL",
		Price:  decimal.NewFromInt(100),
	}, nil)
	md.EXPECT().Quote(gomock.Any(), "MSFT").Return(&market.Quote{
		Symbol: "MSFT",
		Price:  decimal.NewFromInt(300),
	}, nil)

	val, err := svc.Valuate(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "PHP", val.Currency)
	assert.True(t, val.TotalUSD.Equal(decimal.NewFromInt(500)), "got %s", val.TotalUSD)
	assert.True(t, val.TotalDisplay.Equal(decimal.NewFromInt(28000)), "got %s", val.TotalDisplay)

	require.Len(t, val.Items, 2)
	assert.True(t, val.Items[0].ValueUSD.Equal(decimal.NewFromInt(200)))
	assert.True(t, val.Items[0].ValueDisplay.Equal(decimal.NewFromInt(11200)))
}

func TestService_Valuate_QuoteFailureIsWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := portfolio.NewMockRepository(ctrl)
	md := portfolio.NewMockMarketData(ctrl)
	svc := portfolio.NewService(repo, md, "PHP")

	userID := uuid.New()
	holdings := []*portfolio.Holding{
		{ID: uuid.New(), UserID: userID, Symbol: "GOOD", Shares: decimal.NewFromInt(1)},
		{ID: uuid.New(), UserID: userID, Symbol: "BAD", Shares: decimal.NewFromInt(1)},
	}

	repo.EXPECT().ListHoldings(gomock.Any(), userID).Return(holdings, nil)
	md.EXPECT().FxRate(gomock.Any(), "USD", "PHP").Return(decimal.NewFromInt(56), nil)
	md.EXPECT().Quote(gomock.Any(), "GOOD").Return(&market.Quote{Symbol: "GOOD", Price: decimal.NewFromInt(10)}, nil)
	md.EXPECT().Quote(gomock.Any(), "BAD").Return(nil, errors.New("provider down"))

	val, err := svc.Valuate(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, val.Items, 2)
	assert.Empty(t, val.Items[0].Warning)
	assert.NotEmpty(t, val.Items[1].Warning)
	assert.True(t, val.TotalUSD.Equal(decimal.NewFromInt(10)))
}

func TestService_Valuate_FxFailureFallsBackToUSD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := portfolio.NewMockRepository(ctrl)
	md := portfolio.NewMockMarketData(ctrl)
	svc := portfolio.NewService(repo, md, "PHP")

	userID := uuid.New()
	holdings := []*portfolio.Holding{
		{ID: uuid.New(), UserID: userID, Symbol: "AAPL", Shares: decimal.NewFromInt(1)},
	}

	repo.EXPECT().ListHoldings(gomock.Any(), userID).Return(holdings, nil)
	md.EXPECT().FxRate(gomock.Any(), "USD", "PHP").Return(decimal.Zero, errors.New("fx down"))
	md.EXPECT().Quote(gomock.Any(), "AAPL").Return(&market.Quote{Symbol: "AAPL", Price: decimal.NewFromInt(100)}, nil)

	val, err := svc.Valuate(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "USD", val.Currency)
	assert.NotEmpty(t, val.Warning)
	assert.True(t, val.TotalDisplay.Equal(decimal.NewFromInt(100)))
}
