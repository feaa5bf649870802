package ledger

import (
	"context"

	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
	"github.com/valeriaulyamaeva/personal-finance-ledger/utils"
)

// Бюджет read-only по отношению к леджеру: потраченное не хранится,
// а каждый раз выводится из журнала транзакций.

// BudgetConsumption — сумма расходов по категории бюджета за его месяц,
// в валюте бюджета.
func BudgetConsumption(budget *models.Budget, transactions []models.Transaction, rates utils.RateTable) (float64, error) {
	var spent float64
	for _, t := range transactions {
		if t.Type != models.TransactionExpense {
			continue
		}
		if t.Category != budget.Category {
			continue
		}
		if t.Date.Format("2006-01") != budget.MonthKey {
			continue
		}
		amount, err := utils.Convert(t.Amount, t.Currency, budget.Currency, rates)
		if err != nil {
			return 0, err
		}
		spent += amount
	}
	return spent, nil
}

type BudgetProgress struct {
	Budget models.Budget `json:"budget"`
	Spent  float64       `json:"spent"`
}

// BudgetProgress считает потраченное по бюджету на текущий момент.
func (s *Service) BudgetProgress(ctx context.Context, budgetID int) (*BudgetProgress, error) {
	budget, err := s.store.GetBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.store.ListTransactions(ctx, budget.UserID)
	if err != nil {
		return nil, err
	}
	rates, err := s.rates.Rates()
	if err != nil {
		return nil, err
	}
	spent, err := BudgetConsumption(budget, transactions, rates)
	if err != nil {
		return nil, err
	}
	return &BudgetProgress{Budget: *budget, Spent: spent}, nil
}
