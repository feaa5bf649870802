package models

import "time"

type Goal struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Icon          string    `json:"icon" db:"icon"`
	Amount        float64   `json:"amount" db:"amount"`
	CurrentAmount float64   `json:"current_amount" db:"current_amount"`
	Currency      string    `json:"currency" db:"currency"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (g *Goal) RemainingAmount() float64 {
	return g.Amount - g.CurrentAmount
}

// Обновляет статус цели, если она достигнута
func (g *Goal) RefreshStatus() {
	if g.CurrentAmount >= g.Amount {
		g.Status = "achieved"
	} else {
		g.Status = "active"
	}
}
