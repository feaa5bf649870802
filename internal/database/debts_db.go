package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

const debtColumns = `id, user_id, person, description, category, amount, current_amount, currency, type, status, date, due_date, initial_transaction_id, linked_user_id, parent_debt_id, created_at, updated_at`

func (s *Store) CreateDebt(ctx context.Context, debt *models.Debt) error {
	query := `
		INSERT INTO debts (user_id, person, description, category, amount, current_amount, currency, type, status, date, due_date, initial_transaction_id, linked_user_id, parent_debt_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		debt.UserID,
		debt.Person,
		debt.Description,
		debt.Category,
		debt.Amount,
		debt.CurrentAmount,
		debt.Currency,
		debt.Type,
		debt.Status,
		debt.Date,
		debt.DueDate,
		debt.InitialTransactionID,
		debt.LinkedUserID,
		debt.ParentDebtID,
		debt.CreatedAt,
		debt.UpdatedAt).Scan(&debt.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении долга: %v", err)
	}
	return nil
}

func scanDebt(row pgx.Row) (*models.Debt, error) {
	debt := &models.Debt{}
	err := row.Scan(
		&debt.ID,
		&debt.UserID,
		&debt.Person,
		&debt.Description,
		&debt.Category,
		&debt.Amount,
		&debt.CurrentAmount,
		&debt.Currency,
		&debt.Type,
		&debt.Status,
		&debt.Date,
		&debt.DueDate,
		&debt.InitialTransactionID,
		&debt.LinkedUserID,
		&debt.ParentDebtID,
		&debt.CreatedAt,
		&debt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return debt, nil
}

func (s *Store) GetDebtByID(ctx context.Context, debtID int) (*models.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1`

	debt, err := scanDebt(s.pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("долг с ID %d: %w", debtID, ledger.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении долга: %v", err)
	}
	return debt, nil
}

func (s *Store) ListDebts(ctx context.Context, userID int) ([]models.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = $1 ORDER BY id`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении долгов: %v", err)
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

func (s *Store) UpdateDebt(ctx context.Context, debt *models.Debt) error {
	query := `
		UPDATE debts
		SET person = $1, description = $2, category = $3, amount = $4, current_amount = $5, currency = $6, type = $7, status = $8, due_date = $9, initial_transaction_id = $10, linked_user_id = $11, parent_debt_id = $12, updated_at = $13
		WHERE id = $14`

	result, err := s.pool.Exec(ctx, query,
		debt.Person,
		debt.Description,
		debt.Category,
		debt.Amount,
		debt.CurrentAmount,
		debt.Currency,
		debt.Type,
		debt.Status,
		debt.DueDate,
		debt.InitialTransactionID,
		debt.LinkedUserID,
		debt.ParentDebtID,
		debt.UpdatedAt,
		debt.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления долга: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("долг с ID %d: %w", debt.ID, ledger.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteDebt(ctx context.Context, debtID int) error {
	query := `
		DELETE FROM debts
		WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, debtID)
	if err != nil {
		return fmt.Errorf("ошибка удаления долга: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("долг с ID %d: %w", debtID, ledger.ErrNotFound)
	}
	return nil
}

// FindLinkedDebt ищет долг пользователя, связанный с отправителем запроса:
// по ссылке на пользователя-контрагента либо по ссылке на родительский долг.
func (s *Store) FindLinkedDebt(ctx context.Context, userID, senderUserID, parentDebtID int) (*models.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1 AND (linked_user_id = $2 OR parent_debt_id = $3)
		ORDER BY id
		LIMIT 1`

	debt, err := scanDebt(s.pool.QueryRow(ctx, query, userID, senderUserID, parentDebtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("связанный долг пользователя %d: %w", userID, ledger.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при поиске связанного долга: %v", err)
	}
	return debt, nil
}
