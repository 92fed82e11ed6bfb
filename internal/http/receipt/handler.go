package receipt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pondo-ph/pondo/internal/http/middleware"
	"github.com/pondo-ph/pondo/internal/receipt"
)

// Receipt photos are small, but OCR uploads can be padded with metadata.
const maxImageBytes = 10 << 20

type Handler struct {
	svc *receipt.Service
}

func NewHandler(svc *receipt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/scan", h.scan)
}

type scanResponse struct {
	Created int    `json:"created"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	txs, err := h.svc.Scan(r.Context(), middleware.UserID(r.Context()), file)
	if err != nil {
		if errors.Is(err, receipt.ErrNoTransactions) {
			w.Header().Set("Content-Type", "application/json")

			if err := json.NewEncoder(w).Encode(scanResponse{
				Message: "No transactions detected on the receipt.",
			}); err != nil {
				slog.Error("failed to encode response", "error", err)
			}

			return
		}

		http.Error(w, "scan failed", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(scanResponse{Created: len(txs)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
