package ledger

import (
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
	"github.com/valeriaulyamaeva/personal-finance-ledger/utils"
)

// Балансы никогда не хранятся — всегда пересчитываются из журнала
// транзакций. Все функции ниже чистые.

// TotalBalance — суммарный баланс по всем счетам в валюте отображения.
// Переводы между своими счетами в сумме дают ноль и пропускаются.
func TotalBalance(transactions []models.Transaction, rates utils.RateTable, displayCurrency string) (float64, error) {
	var total float64
	for _, t := range transactions {
		if t.Type == models.TransactionTransfer {
			continue
		}
		amount, err := utils.Convert(t.Amount, t.Currency, displayCurrency, rates)
		if err != nil {
			return 0, err
		}
		switch t.Type {
		case models.TransactionIncome:
			total += amount
		case models.TransactionExpense:
			total -= amount
		}
	}
	return total, nil
}

// AccountBalance — баланс одного счёта в его собственной валюте.
// Перевод уменьшает счёт-источник и увеличивает счёт-получатель.
func AccountBalance(accountID int, transactions []models.Transaction, rates utils.RateTable, accountCurrency string) (float64, error) {
	var balance float64
	for _, t := range transactions {
		if t.Type == models.TransactionTransfer {
			if t.AccountID == accountID {
				amount, err := utils.Convert(t.Amount, t.Currency, accountCurrency, rates)
				if err != nil {
					return 0, err
				}
				balance -= amount
			}
			if t.ToAccountID != nil && *t.ToAccountID == accountID {
				amount, err := utils.Convert(t.Amount, t.Currency, accountCurrency, rates)
				if err != nil {
					return 0, err
				}
				balance += amount
			}
			continue
		}
		if t.AccountID != accountID {
			continue
		}
		amount, err := utils.Convert(t.Amount, t.Currency, accountCurrency, rates)
		if err != nil {
			return 0, err
		}
		switch t.Type {
		case models.TransactionIncome:
			balance += amount
		case models.TransactionExpense:
			balance -= amount
		}
	}
	return balance, nil
}

type PeriodSummary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// SummaryForPeriod — доходы/расходы за месяц (формат "2006-01") с учётом
// фильтра по счёту. selectedAccountID == nil означает "все счета": в этом
// режиме переводы нейтральны для баланса. Для одного счёта перевод
// учитывается, только когда счёт — источник или получатель.
func SummaryForPeriod(transactions []models.Transaction, month string, rates utils.RateTable, displayCurrency string, selectedAccountID *int) (PeriodSummary, error) {
	var summary PeriodSummary
	for _, t := range transactions {
		if t.Date.Format("2006-01") != month {
			continue
		}
		if t.Type == models.TransactionTransfer {
			if selectedAccountID == nil {
				continue
			}
			if t.AccountID == *selectedAccountID {
				amount, err := utils.Convert(t.Amount, t.Currency, displayCurrency, rates)
				if err != nil {
					return PeriodSummary{}, err
				}
				summary.Balance -= amount
			}
			if t.ToAccountID != nil && *t.ToAccountID == *selectedAccountID {
				amount, err := utils.Convert(t.Amount, t.Currency, displayCurrency, rates)
				if err != nil {
					return PeriodSummary{}, err
				}
				summary.Balance += amount
			}
			continue
		}
		if selectedAccountID != nil && t.AccountID != *selectedAccountID {
			continue
		}
		amount, err := utils.Convert(t.Amount, t.Currency, displayCurrency, rates)
		if err != nil {
			return PeriodSummary{}, err
		}
		switch t.Type {
		case models.TransactionIncome:
			summary.Income += amount
			summary.Balance += amount
		case models.TransactionExpense:
			summary.Expense += amount
			summary.Balance -= amount
		}
	}
	return summary, nil
}
