package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pondo-ph/pondo/internal/portfolio"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateHolding(ctx context.Context, h *portfolio.Holding) error {
	query := `
		INSERT INTO holdings (user_id, symbol, shares, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, h.UserID, h.Symbol, h.Shares).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return portfolio.ErrDuplicateSymbol
		}

		return fmt.Errorf("creating holding: %w", err)
	}

	return nil
}

func (s *Store) ListHoldings(ctx context.Context, userID uuid.UUID) ([]*portfolio.Holding, error) {
	query := `
		SELECT id, user_id, symbol, shares, created_at
		FROM holdings
		WHERE user_id = $1
		ORDER BY symbol ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*portfolio.Holding

	for rows.Next() {
		var h portfolio.Holding
		if err := rows.Scan(&h.ID, &h.UserID, &h.Symbol, &h.Shares, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning holding: %w", err)
		}

		holdings = append(holdings, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holding rows: %w", err)
	}

	return holdings, nil
}
