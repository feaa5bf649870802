package models

import "time"

const (
	TransactionIncome   = "income"
	TransactionExpense  = "expense"
	TransactionTransfer = "transfer"
)

type Transaction struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	AccountID   int       `json:"account_id" db:"account_id"`
	ToAccountID *int      `json:"to_account_id,omitempty" db:"to_account_id"` // Заполняется только для переводов
	Name        string    `json:"name" db:"name"`
	Amount      float64   `json:"amount" db:"amount"`
	Currency    string    `json:"currency" db:"currency"`
	Category    string    `json:"category" db:"category"`
	Date        time.Time `json:"date" db:"date"`
	Type        string    `json:"type" db:"type"` // Возможные значения: "income", "expense", "transfer"
	Description string    `json:"description,omitempty" db:"description"`
	GoalID      *int      `json:"goal_id,omitempty" db:"goal_id"` // Привязка к цели
	DebtID      *int      `json:"debt_id,omitempty" db:"debt_id"` // Привязка к долгу
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
