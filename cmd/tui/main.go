package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pondo-ph/pondo/cmd/tui/internal/view"
	"github.com/pondo-ph/pondo/internal/config"
	"github.com/pondo-ph/pondo/internal/database"
	"github.com/pondo-ph/pondo/internal/goal"
	goalStore "github.com/pondo-ph/pondo/internal/goal/store"
	"github.com/pondo-ph/pondo/internal/transaction"
	txStore "github.com/pondo-ph/pondo/internal/transaction/store"
	"github.com/pondo-ph/pondo/internal/user"
	userStore "github.com/pondo-ph/pondo/internal/user/store"
)

type model struct {
	txService   *transaction.Service
	goalService *goal.Service
	userID      uuid.UUID

	currentView View

	transactionsView view.TransactionsModel
	goalsView        view.GoalsModel
}

type View int

const (
	ViewMenu         View = 0
	ViewTransactions View = 1
	ViewGoals        View = 2
)

func initialModel() model {
	_ = godotenv.Load()

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

	userSvc := user.NewService(userStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	txSvc := transaction.NewService(txStore.New(db))
	goalSvc := goal.NewService(goalStore.New(db), txSvc)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, err := userSvc.FindByUsername(ctx, cfg.TUI.Username)
	if errors.Is(err, user.ErrNotFound) {
		slog.Error("user not found, register it via the API first", "username", cfg.TUI.Username)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		os.Exit(1)
	}

	return model{
		txService:        txSvc,
		goalService:      goalSvc,
		userID:           u.ID,
		currentView:      ViewMenu,
		transactionsView: view.NewTransactionsModel(txSvc, u.ID),
		goalsView:        view.NewGoalsModel(goalSvc, u.ID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.userID)

				return m, m.transactionsView.Init()
			case "2":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.goalService, m.userID)

				return m, m.goalsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Pondo TUI\n\n" +
				"1. Transactions\n" +
				"2. Savings Goals\n\n" +
				"q. Quit",
		)
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewGoals:
		return m.goalsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
