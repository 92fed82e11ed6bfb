package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pondo-ph/pondo/internal/goal"
	"github.com/pondo-ph/pondo/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, target_amount, current_amount, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.UserID,
		g.Name,
		g.TargetAmount,
		g.CurrentAmount,
		g.Priority,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, priority, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		var g goal.Goal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Priority, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal rows: %w", err)
	}

	return goals, nil
}

type distributionTx struct {
	tx *sql.Tx
}

func (s *Store) BeginDistribution(ctx context.Context) (goal.DistributionTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning distribution tx: %w", err)
	}

	return &distributionTx{tx: dbTx}, nil
}

func (dtx *distributionTx) Commit() error   { return dtx.tx.Commit() }
func (dtx *distributionTx) Rollback() error { return dtx.tx.Rollback() }

func (dtx *distributionTx) UpdateGoalAmount(ctx context.Context, goalID uuid.UUID, currentAmount int64) error {
	// The schema check (current_amount <= target_amount) backs up the
	// clamping done by the allocator.
	query := `UPDATE goals SET current_amount = $1 WHERE id = $2`

	res, err := dtx.tx.ExecContext(ctx, query, currentAmount, goalID)
	if err != nil {
		return fmt.Errorf("updating goal amount: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking goal update: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("goal %s not found", goalID)
	}

	return nil
}

func (dtx *distributionTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, amount, type, description, source, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	for _, tx := range txs {
		err := dtx.tx.QueryRowContext(ctx, query,
			tx.UserID,
			tx.Amount,
			tx.Type,
			tx.Description,
			tx.Source,
		).Scan(&tx.ID, &tx.CreatedAt)
		if err != nil {
			return fmt.Errorf("recording distribution transaction: %w", err)
		}
	}

	return nil
}
