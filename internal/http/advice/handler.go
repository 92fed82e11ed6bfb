package advice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pondo-ph/pondo/internal/advice"
	"github.com/pondo-ph/pondo/internal/http/middleware"
)

type Handler struct {
	svc *advice.Service
}

func NewHandler(svc *advice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.advise)
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

func (h *Handler) advise(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.Advise(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, advice.ErrNoTransactions) {
			text = "No transactions yet. Add some first!"
		} else {
			http.Error(w, "advice unavailable", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(adviceResponse{Advice: text}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
