package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func (s *Store) CreateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (user_id, month_key, category, limit_amount, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		budget.UserID,
		budget.MonthKey,
		budget.Category,
		budget.Limit,
		budget.Currency).Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении бюджета: %v", err)
	}
	return nil
}

func (s *Store) GetBudgetByID(ctx context.Context, budgetID int) (*models.Budget, error) {
	query := `
		SELECT id, user_id, month_key, category, limit_amount, currency
		FROM budgets
		WHERE id = $1`

	budget := &models.Budget{}
	err := s.pool.QueryRow(ctx, query, budgetID).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.MonthKey,
		&budget.Category,
		&budget.Limit,
		&budget.Currency,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("бюджет с ID %d: %w", budgetID, ledger.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении бюджета: %v", err)
	}

	return budget, nil
}

// ListBudgets возвращает бюджеты пользователя, при непустом monthKey —
// только за указанный месяц.
func (s *Store) ListBudgets(ctx context.Context, userID int, monthKey string) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, month_key, category, limit_amount, currency
		FROM budgets
		WHERE user_id = $1 AND ($2 = '' OR month_key = $2)
		ORDER BY id`
	rows, err := s.pool.Query(ctx, query, userID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении бюджетов: %v", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var budget models.Budget
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.MonthKey, &budget.Category, &budget.Limit, &budget.Currency); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func (s *Store) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET month_key = $1, category = $2, limit_amount = $3, currency = $4
		WHERE id = $5`

	result, err := s.pool.Exec(ctx, query,
		budget.MonthKey,
		budget.Category,
		budget.Limit,
		budget.Currency,
		budget.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %d: %w", budget.ID, ledger.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, budgetID int) error {
	query := `
		DELETE FROM budgets
		WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, budgetID)
	if err != nil {
		return fmt.Errorf("ошибка удаления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %d: %w", budgetID, ledger.ErrNotFound)
	}
	return nil
}
