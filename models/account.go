package models

const (
	AccountCard = "card"
	AccountCash = "cash"
)

type Account struct {
	ID       int    `json:"id" db:"id"`
	UserID   int    `json:"user_id" db:"user_id"`
	Name     string `json:"name" db:"name"`
	Currency string `json:"currency" db:"currency"`
	Type     string `json:"type" db:"type"` // Возможные значения: "card", "cash"
}
