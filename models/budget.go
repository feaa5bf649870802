package models

type Budget struct {
	ID       int     `json:"id" db:"id"`
	UserID   int     `json:"user_id" db:"user_id"`
	MonthKey string  `json:"month_key" db:"month_key"` // Формат "2006-01"
	Category string  `json:"category" db:"category"`
	Limit    float64 `json:"limit" db:"limit_amount"`
	Currency string  `json:"currency" db:"currency"`
}
