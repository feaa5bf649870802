package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func (s *Store) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, account_id, to_account_id, name, amount, currency, category, date, type, description, goal_id, debt_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		transaction.UserID,
		transaction.AccountID,
		transaction.ToAccountID,
		transaction.Name,
		transaction.Amount,
		transaction.Currency,
		transaction.Category,
		transaction.Date,
		transaction.Type,
		transaction.Description,
		transaction.GoalID,
		transaction.DebtID,
		transaction.CreatedAt).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении транзакции: %v", err)
	}
	return nil
}

func (s *Store) GetTransactionByID(ctx context.Context, transactionID int) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, to_account_id, name, amount, currency, category, date, type, description, goal_id, debt_id, created_at
		FROM transactions
		WHERE id = $1`

	transaction := &models.Transaction{}
	err := s.pool.QueryRow(ctx, query, transactionID).Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.AccountID,
		&transaction.ToAccountID,
		&transaction.Name,
		&transaction.Amount,
		&transaction.Currency,
		&transaction.Category,
		&transaction.Date,
		&transaction.Type,
		&transaction.Description,
		&transaction.GoalID,
		&transaction.DebtID,
		&transaction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("транзакция с ID %d: %w", transactionID, ledger.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении транзакции: %v", err)
	}

	return transaction, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, to_account_id, name, amount, currency, category, date, type, description, goal_id, debt_id, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date, id`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении транзакций: %v", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.ToAccountID, &t.Name, &t.Amount, &t.Currency, &t.Category, &t.Date, &t.Type, &t.Description, &t.GoalID, &t.DebtID, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *Store) UpdateTransaction(ctx context.Context, transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, to_account_id = $2, name = $3, amount = $4, currency = $5, category = $6, date = $7, type = $8, description = $9, goal_id = $10, debt_id = $11
		WHERE id = $12`

	result, err := s.pool.Exec(ctx, query,
		transaction.AccountID,
		transaction.ToAccountID,
		transaction.Name,
		transaction.Amount,
		transaction.Currency,
		transaction.Category,
		transaction.Date,
		transaction.Type,
		transaction.Description,
		transaction.GoalID,
		transaction.DebtID,
		transaction.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления транзакции: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("транзакция с ID %d: %w", transaction.ID, ledger.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, transactionID int) error {
	query := `
		DELETE FROM transactions
		WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("ошибка удаления транзакции: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("транзакция с ID %d: %w", transactionID, ledger.ErrNotFound)
	}
	return nil
}
