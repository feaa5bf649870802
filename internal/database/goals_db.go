package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

// CreateGoal добавляет новую цель в базу данных
func (s *Store) CreateGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO savings_goals (user_id, name, icon, amount, current_amount, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query,
		goal.UserID,
		goal.Name,
		goal.Icon,
		goal.Amount,
		goal.CurrentAmount,
		goal.Currency,
		goal.Status).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении цели: %v", err)
	}
	return nil
}

// GetGoalByID извлекает цель по ID
func (s *Store) GetGoalByID(ctx context.Context, goalID int) (*models.Goal, error) {
	query := `
		SELECT id, user_id, name, icon, amount, current_amount, currency, status, created_at
		FROM savings_goals
		WHERE id = $1`

	goal := &models.Goal{}
	err := s.pool.QueryRow(ctx, query, goalID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.Icon,
		&goal.Amount,
		&goal.CurrentAmount,
		&goal.Currency,
		&goal.Status,
		&goal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("цель с ID %d: %w", goalID, ledger.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении цели: %v", err)
	}
	return goal, nil
}

// ListGoals извлекает все цели пользователя
func (s *Store) ListGoals(ctx context.Context, userID int) ([]models.Goal, error) {
	query := `SELECT id, user_id, name, icon, amount, current_amount, currency, status, created_at FROM savings_goals WHERE user_id = $1 ORDER BY id`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении целей: %v", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.Icon, &goal.Amount, &goal.CurrentAmount, &goal.Currency, &goal.Status, &goal.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// UpdateGoal обновляет информацию о цели
func (s *Store) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		UPDATE savings_goals
		SET name = $1, icon = $2, amount = $3, current_amount = $4, currency = $5, status = $6
		WHERE id = $7`

	result, err := s.pool.Exec(ctx, query,
		goal.Name,
		goal.Icon,
		goal.Amount,
		goal.CurrentAmount,
		goal.Currency,
		goal.Status,
		goal.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d: %w", goal.ID, ledger.ErrNotFound)
	}
	return nil
}

// DeleteGoal удаляет цель по ID
func (s *Store) DeleteGoal(ctx context.Context, goalID int) error {
	query := `
		DELETE FROM savings_goals
		WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, goalID)
	if err != nil {
		return fmt.Errorf("ошибка удаления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d: %w", goalID, ledger.ErrNotFound)
	}
	return nil
}
