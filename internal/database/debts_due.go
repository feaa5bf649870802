package database

import (
	"context"
	"fmt"

	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

// ListDebtsDueOn возвращает активные долги, у которых срок наступает
// через offsetDays дней. Используется ежедневной задачей напоминаний.
func (s *Store) ListDebtsDueOn(ctx context.Context, offsetDays int) ([]models.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE status = 'active'
		  AND due_date IS NOT NULL
		  AND due_date::date = (CURRENT_DATE + $1::int)
		ORDER BY id`
	rows, err := s.pool.Query(ctx, query, offsetDays)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении долгов по сроку: %v", err)
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, *debt)
	}
	return debts, rows.Err()
}
