package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pondo-ph/pondo/internal/market"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=portfolio
type Repository interface {
	CreateHolding(ctx context.Context, h *Holding) error
	ListHoldings(ctx context.Context, userID uuid.UUID) ([]*Holding, error)
}

// MarketData is the slice of the market client the valuation needs.
// *market.Client satisfies it.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (*market.Quote, error)
	FxRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

type Service struct {
	repo            Repository
	market          MarketData
	displayCurrency string
}

func NewService(repo Repository, marketData MarketData, displayCurrency string) *Service {
	return &Service{
		repo:            repo,
		market:          marketData,
		displayCurrency: displayCurrency,
	}
}

type AddParams struct {
	UserID uuid.UUID
	Symbol string
	Shares decimal.Decimal
}

func (s *Service) Add(ctx context.Context, params AddParams) (*Holding, error) {
	symbol := strings.ToUpper(strings.TrimSpace(params.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	if !params.Shares.IsPositive() {
		return nil, fmt.Errorf("shares must be positive, got %s", params.Shares)
	}

	h := &Holding{
		UserID: params.UserID,
		Symbol: symbol,
		Shares: params.Shares,
	}
	if err := s.repo.CreateHolding(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Holding, error) {
	return s.repo.ListHoldings(ctx, userID)
}

// Item is one valued holding. Warning is set when the quote could not be
// fetched; the valuation carries on without it.
type Item struct {
	Holding      *Holding
	Quote        *market.Quote
	ValueUSD     decimal.Decimal
	ValueDisplay decimal.Decimal
	Warning      string
}

type Valuation struct {
	Items        []Item
	TotalUSD     decimal.Decimal
	TotalDisplay decimal.Decimal
	Currency     string
	Rate         decimal.Decimal
	Warning      string
}

// Valuate prices every holding at the live quote and converts the totals to
// the display currency. A failed quote degrades that item to a warning; a
// failed FX lookup degrades the whole valuation to USD.
func (s *Service) Valuate(ctx context.Context, userID uuid.UUID) (*Valuation, error) {
	holdings, err := s.repo.ListHoldings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing holdings: %w", err)
	}

	val := &Valuation{
		Currency: s.displayCurrency,
		Rate:     decimal.NewFromInt(1),
	}

	rate, err := s.market.FxRate(ctx, "USD", s.displayCurrency)
	if err != nil {
		slog.Warn("fx rate lookup failed, falling back to USD", "currency", s.displayCurrency, "error", err)

		val.Currency = "USD"
		val.Warning = fmt.Sprintf("no %s rate available, showing USD", s.displayCurrency)
	} else {
		val.Rate = rate
	}

	for _, h := range holdings {
		item := Item{Holding: h}

		quote, err := s.market.Quote(ctx, h.Symbol)
		if err != nil {
			slog.Warn("quote lookup failed", "symbol", h.Symbol, "error", err)

			item.Warning = fmt.Sprintf("no quote for %s", h.Symbol)
			val.Items = append(val.Items, item)

			continue
		}

		item.Quote = quote
		item.ValueUSD = quote.Price.Mul(h.Shares)
		item.ValueDisplay = item.ValueUSD.Mul(val.Rate)

		val.TotalUSD = val.TotalUSD.Add(item.ValueUSD)
		val.TotalDisplay = val.TotalDisplay.Add(item.ValueDisplay)
		val.Items = append(val.Items, item)
	}

	return val, nil
}
