package models

import "time"

const (
	RequestPending   = "pending"
	RequestCompleted = "completed"
	RequestRejected  = "rejected"
)

// Тип "delete_debt" — маркер удаления: получатель должен удалить
// привязанный долг, транзакция при этом не создаётся.
const RequestDeleteDebt = "delete_debt"

// TransactionRequest — сообщение протокола синхронизации: предложение
// зеркальной операции в леджере контрагента. Отклонённые запросы не
// удаляются и остаются видимыми получателю.
type TransactionRequest struct {
	ID                  int       `json:"id" db:"id"`
	SenderUserID        int       `json:"sender_user_id" db:"sender_user_id"`
	ReceiverUserID      int       `json:"receiver_user_id" db:"receiver_user_id"`
	RelatedDebtID       int       `json:"related_debt_id" db:"related_debt_id"`
	OriginTransactionID *int      `json:"origin_transaction_id,omitempty" db:"origin_transaction_id"` // Ключ идемпотентности вместе с related_debt_id
	Amount              float64   `json:"amount" db:"amount"`
	Currency            string    `json:"currency" db:"currency"`
	TransactionType     string    `json:"transaction_type" db:"transaction_type"` // "income", "expense" или "delete_debt"
	CategoryName        string    `json:"category_name" db:"category_name"`
	Description         string    `json:"description,omitempty" db:"description"`
	Status              string    `json:"status" db:"status"` // "pending", "completed", "rejected"
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}
