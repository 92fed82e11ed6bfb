package portfolio

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pondo-ph/pondo/internal/http/middleware"
	"github.com/pondo-ph/pondo/internal/portfolio"
)

type Handler struct {
	svc    *portfolio.Service
	market portfolio.MarketData
}

func NewHandler(svc *portfolio.Service, market portfolio.MarketData) *Handler {
	return &Handler{svc: svc, market: market}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.add)
	r.Get("/", h.list)
	r.Get("/value", h.value)
}

type addHoldingRequest struct {
	Symbol string          `json:"symbol"`
	Shares decimal.Decimal `json:"shares"`
}

type holdingResponse struct {
	ID        uuid.UUID       `json:"id"`
	Symbol    string          `json:"symbol"`
	Shares    decimal.Decimal `json:"shares"`
	CreatedAt time.Time       `json:"created_at"`
}

func toResponse(h *portfolio.Holding) holdingResponse {
	return holdingResponse{
		ID:        h.ID,
		Symbol:    h.Symbol,
		Shares:    h.Shares,
		CreatedAt: h.CreatedAt,
	}
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	holding, err := h.svc.Add(r.Context(), portfolio.AddParams{
		UserID: middleware.UserID(r.Context()),
		Symbol: req.Symbol,
		Shares: req.Shares,
	})
	if err != nil {
		if errors.Is(err, portfolio.ErrDuplicateSymbol) {
			http.Error(w, "symbol already held", http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(holding)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.svc.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]holdingResponse, len(holdings))
	for i, holding := range holdings {
		resp[i] = toResponse(holding)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type valuedItemResponse struct {
	Symbol       string          `json:"symbol"`
	Shares       decimal.Decimal `json:"shares"`
	Price        decimal.Decimal `json:"price,omitempty"`
	ValueUSD     decimal.Decimal `json:"value_usd"`
	ValueDisplay decimal.Decimal `json:"value_display"`
	Warning      string          `json:"warning,omitempty"`
}

type valuationResponse struct {
	Items        []valuedItemResponse `json:"items"`
	TotalUSD     decimal.Decimal      `json:"total_usd"`
	TotalDisplay decimal.Decimal      `json:"total_display"`
	Currency     string               `json:"currency"`
	Warning      string               `json:"warning,omitempty"`
}

func (h *Handler) value(w http.ResponseWriter, r *http.Request) {
	val, err := h.svc.Valuate(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		http.Error(w, "valuation failed", http.StatusInternalServerError)
		return
	}

	resp := valuationResponse{
		Items:        make([]valuedItemResponse, len(val.Items)),
		TotalUSD:     val.TotalUSD,
		TotalDisplay: val.TotalDisplay,
		Currency:     val.Currency,
		Warning:      val.Warning,
	}
	for i, item := range val.Items {
		out := valuedItemResponse{
			Symbol:       item.Holding.Symbol,
			Shares:       item.Holding.Shares,
			ValueUSD:     item.ValueUSD,
			ValueDisplay: item.ValueDisplay,
			Warning:      item.Warning,
		}
		if item.Quote != nil {
			out.Price = item.Quote.Price
		}

		resp.Items[i] = out
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type quoteResponse struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// Quote serves a live quote for one symbol, e.g. GET /stocks/AAPL.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	quote, err := h.market.Quote(r.Context(), symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(quoteResponse{
		Symbol:        quote.Symbol,
		Price:         quote.Price,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
