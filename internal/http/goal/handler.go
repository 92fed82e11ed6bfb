package goal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pondo-ph/pondo/internal/goal"
	"github.com/pondo-ph/pondo/internal/http/middleware"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/distribute", h.distribute)
}

type createGoalRequest struct {
	Name         string `json:"name"`
	TargetAmount int64  `json:"target_amount"`
	Priority     int    `json:"priority"`
}

type goalResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	TargetAmount  int64     `json:"target_amount"`
	CurrentAmount int64     `json:"current_amount"`
	Priority      int       `json:"priority"`
	CreatedAt     time.Time `json:"created_at"`
}

func toResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Priority:      g.Priority,
		CreatedAt:     g.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Create(r.Context(), goal.CreateParams{
		UserID:       middleware.UserID(r.Context()),
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Priority:     req.Priority,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(g)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type allocationResponse struct {
	GoalID uuid.UUID `json:"goal_id"`
	Amount int64     `json:"amount"`
}

type distributeResponse struct {
	Distributed  int64                `json:"distributed"`
	Allocations  []allocationResponse `json:"allocations,omitempty"`
	Transactions int                  `json:"transactions"`
	Message      string               `json:"message,omitempty"`
}

func (h *Handler) distribute(w http.ResponseWriter, r *http.Request) {
	dist, err := h.svc.DistributeSurplus(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		// Advisory outcomes are not failures: report them as a message.
		var msg string

		switch {
		case errors.Is(err, goal.ErrNothingToDistribute):
			msg = "Nothing to distribute: balance is not positive."
		case errors.Is(err, goal.ErrNoWeightedGoals):
			msg = "No weighted goals to distribute to."
		default:
			http.Error(w, "distribution failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(distributeResponse{Message: msg}); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	resp := distributeResponse{
		Distributed:  dist.Total,
		Transactions: len(dist.Drafts),
	}
	for _, a := range dist.Allocations {
		resp.Allocations = append(resp.Allocations, allocationResponse{GoalID: a.GoalID, Amount: a.Amount})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
