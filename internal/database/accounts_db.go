package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, currency, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		account.UserID,
		account.Name,
		account.Currency,
		account.Type).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении счёта: %v", err)
	}
	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, accountID int) (*models.Account, error) {
	query := `
		SELECT id, user_id, name, currency, type
		FROM accounts
		WHERE id = $1`

	account := &models.Account{}
	err := s.pool.QueryRow(ctx, query, accountID).Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Currency,
		&account.Type,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("счёт с ID %d: %w", accountID, ledger.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении счёта: %v", err)
	}

	return account, nil
}

func (s *Store) ListAccounts(ctx context.Context, userID int) ([]models.Account, error) {
	query := `SELECT id, user_id, name, currency, type FROM accounts WHERE user_id = $1 ORDER BY id`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении счетов: %v", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.UserID, &account.Name, &account.Currency, &account.Type); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *Store) UpdateAccount(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, currency = $2, type = $3
		WHERE id = $4`

	result, err := s.pool.Exec(ctx, query,
		account.Name,
		account.Currency,
		account.Type,
		account.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления счёта: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("счёт с ID %d: %w", account.ID, ledger.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, accountID int) error {
	query := `
		DELETE FROM accounts
		WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, accountID)
	if err != nil {
		return fmt.Errorf("ошибка удаления счёта: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("счёт с ID %d: %w", accountID, ledger.ErrNotFound)
	}
	return nil
}
