package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func (s *Store) CreateRequest(ctx context.Context, request *models.TransactionRequest) error {
	query := `
		INSERT INTO transaction_requests (sender_user_id, receiver_user_id, related_debt_id, origin_transaction_id, amount, currency, transaction_type, category_name, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		request.SenderUserID,
		request.ReceiverUserID,
		request.RelatedDebtID,
		request.OriginTransactionID,
		request.Amount,
		request.Currency,
		request.TransactionType,
		request.CategoryName,
		request.Description,
		request.Status,
		request.CreatedAt).Scan(&request.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении запроса синхронизации: %v", err)
	}
	return nil
}

func (s *Store) GetRequestByID(ctx context.Context, requestID int) (*models.TransactionRequest, error) {
	query := `
		SELECT id, sender_user_id, receiver_user_id, related_debt_id, origin_transaction_id, amount, currency, transaction_type, category_name, description, status, created_at
		FROM transaction_requests
		WHERE id = $1`

	request := &models.TransactionRequest{}
	err := s.pool.QueryRow(ctx, query, requestID).Scan(
		&request.ID,
		&request.SenderUserID,
		&request.ReceiverUserID,
		&request.RelatedDebtID,
		&request.OriginTransactionID,
		&request.Amount,
		&request.Currency,
		&request.TransactionType,
		&request.CategoryName,
		&request.Description,
		&request.Status,
		&request.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("запрос с ID %d: %w", requestID, ledger.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении запроса: %v", err)
	}

	return request, nil
}

// ListRequests — все запросы получателя, включая отклонённые: получатель
// должен видеть, что когда-то уже отказал.
func (s *Store) ListRequests(ctx context.Context, receiverUserID int) ([]models.TransactionRequest, error) {
	query := `
		SELECT id, sender_user_id, receiver_user_id, related_debt_id, origin_transaction_id, amount, currency, transaction_type, category_name, description, status, created_at
		FROM transaction_requests
		WHERE receiver_user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := s.pool.Query(ctx, query, receiverUserID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении запросов: %v", err)
	}
	defer rows.Close()

	var requests []models.TransactionRequest
	for rows.Next() {
		var r models.TransactionRequest
		if err := rows.Scan(&r.ID, &r.SenderUserID, &r.ReceiverUserID, &r.RelatedDebtID, &r.OriginTransactionID, &r.Amount, &r.Currency, &r.TransactionType, &r.CategoryName, &r.Description, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (s *Store) UpdateRequest(ctx context.Context, request *models.TransactionRequest) error {
	query := `
		UPDATE transaction_requests
		SET status = $1
		WHERE id = $2`

	result, err := s.pool.Exec(ctx, query, request.Status, request.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления запроса: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("запрос с ID %d: %w", request.ID, ledger.ErrNotFound)
	}
	return nil
}

func (s *Store) HasCompletedRequest(ctx context.Context, relatedDebtID int, originTransactionID *int, transactionType string, amount float64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM transaction_requests
			WHERE related_debt_id = $1
			  AND origin_transaction_id IS NOT DISTINCT FROM $2
			  AND transaction_type = $3
			  AND amount = $4
			  AND status = 'completed'
		)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, relatedDebtID, originTransactionID, transactionType, amount).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки идемпотентности запроса: %v", err)
	}
	return exists, nil
}
