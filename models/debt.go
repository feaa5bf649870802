package models

import "time"

const (
	DebtIOwe     = "i_owe"
	DebtOwedToMe = "owed_to_me"
)

const (
	DebtActive    = "active"
	DebtCompleted = "completed"
	DebtArchived  = "archived"
)

// Debt — агрегат "долг": сколько осталось по долгу с одним контрагентом.
// CurrentAmount меняется только через привязанные транзакции, напрямую
// редактируются только метаданные (имя, описание, срок).
type Debt struct {
	ID                   int        `json:"id" db:"id"`
	UserID               int        `json:"user_id" db:"user_id"`
	Person               string     `json:"person" db:"person"`
	Description          string     `json:"description,omitempty" db:"description"`
	Category             string     `json:"category,omitempty" db:"category"`
	Amount               float64    `json:"amount" db:"amount"`
	CurrentAmount        float64    `json:"current_amount" db:"current_amount"`
	Currency             string     `json:"currency" db:"currency"`
	Type                 string     `json:"type" db:"type"`     // "i_owe" или "owed_to_me"
	Status               string     `json:"status" db:"status"` // "active", "completed", "archived"
	Date                 time.Time  `json:"date" db:"date"`
	DueDate              *time.Time `json:"due_date,omitempty" db:"due_date"`
	InitialTransactionID *int       `json:"initial_transaction_id,omitempty" db:"initial_transaction_id"`
	LinkedUserID         *int       `json:"linked_user_id,omitempty" db:"linked_user_id"`         // Контрагент — тоже пользователь системы
	ParentDebtID         *int       `json:"parent_debt_id,omitempty" db:"parent_debt_id"`         // Долг создан из запроса синхронизации
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// Linked сообщает, привязан ли долг к другому пользователю системы.
func (d *Debt) Linked() bool {
	return d.LinkedUserID != nil
}
