package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/pondo-ph/pondo/internal/advice"
	"github.com/pondo-ph/pondo/internal/config"
	"github.com/pondo-ph/pondo/internal/database"
	"github.com/pondo-ph/pondo/internal/goal"
	goalStore "github.com/pondo-ph/pondo/internal/goal/store"
	pondoHttp "github.com/pondo-ph/pondo/internal/http"
	adviceHandler "github.com/pondo-ph/pondo/internal/http/advice"
	authHandler "github.com/pondo-ph/pondo/internal/http/auth"
	goalHandler "github.com/pondo-ph/pondo/internal/http/goal"
	portfolioHandler "github.com/pondo-ph/pondo/internal/http/portfolio"
	receiptHandler "github.com/pondo-ph/pondo/internal/http/receipt"
	txHandler "github.com/pondo-ph/pondo/internal/http/transaction"
	"github.com/pondo-ph/pondo/internal/market"
	"github.com/pondo-ph/pondo/internal/portfolio"
	portfolioStore "github.com/pondo-ph/pondo/internal/portfolio/store"
	"github.com/pondo-ph/pondo/internal/receipt"
	"github.com/pondo-ph/pondo/internal/transaction"
	txStore "github.com/pondo-ph/pondo/internal/transaction/store"
	"github.com/pondo-ph/pondo/internal/user"
	userStore "github.com/pondo-ph/pondo/internal/user/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	marketClient := market.NewClient(cfg.Market.BaseURL, cfg.Market.FxURL, cfg.Market.APIKey)

	var (
		userService        = user.NewService(userStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		transactionService = transaction.NewService(txStore.New(db))
		goalService        = goal.NewService(goalStore.New(db), transactionService)
		receiptService     = receipt.NewService(receipt.NewOCRClient(cfg.OCR.URL, cfg.OCR.Token), transactionService)
		adviceService      = advice.NewService(transactionService, advice.NewGeminiClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Model))
		portfolioService   = portfolio.NewService(portfolioStore.New(db), marketClient, cfg.Market.DisplayCurrency)
	)

	var (
		authH        = authHandler.NewHandler(userService)
		transactionH = txHandler.NewHandler(transactionService)
		goalH        = goalHandler.NewHandler(goalService)
		receiptH     = receiptHandler.NewHandler(receiptService)
		adviceH      = adviceHandler.NewHandler(adviceService)
		portfolioH   = portfolioHandler.NewHandler(portfolioService, marketClient)
	)

	router := pondoHttp.New(userService, authH, transactionH, goalH, receiptH, adviceH, portfolioH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
