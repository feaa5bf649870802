package models

type CurrencyRate struct {
	Code string  `json:"currency"`
	Rate float64 `json:"rate"`
}
