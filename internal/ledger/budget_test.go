package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
	"github.com/valeriaulyamaeva/personal-finance-ledger/utils"
)

func TestBudgetConsumptionDerivedFromLog(t *testing.T) {
	month := time.Now().Format("2006-01")
	budget := &models.Budget{UserID: 1, MonthKey: month, Category: "food", Limit: 500, Currency: "USD"}

	transactions := []models.Transaction{
		{UserID: 1, AccountID: 1, Name: "Продукты", Amount: 100, Currency: "USD", Category: "food", Date: time.Now(), Type: models.TransactionExpense},
		{UserID: 1, AccountID: 1, Name: "Кафе", Amount: 90, Currency: "EUR", Category: "food", Date: time.Now(), Type: models.TransactionExpense},
		// Другая категория — не считается
		{UserID: 1, AccountID: 1, Name: "Кино", Amount: 40, Currency: "USD", Category: "fun", Date: time.Now(), Type: models.TransactionExpense},
		// Доход — не считается
		{UserID: 1, AccountID: 1, Name: "Возврат", Amount: 20, Currency: "USD", Category: "food", Date: time.Now(), Type: models.TransactionIncome},
		// Прошлый месяц — не считается
		{UserID: 1, AccountID: 1, Name: "Старое", Amount: 70, Currency: "USD", Category: "food", Date: time.Now().AddDate(0, -2, 0), Type: models.TransactionExpense},
	}

	rates := utils.RateTable{"USD": 1, "EUR": 0.9}
	spent, err := ledger.BudgetConsumption(budget, transactions, rates)
	if err != nil {
		t.Fatalf("ошибка расчёта потраченного: %v", err)
	}
	// 100 USD + 90 EUR (= 100 USD)
	if !almostEqual(spent, 200) {
		t.Errorf("потрачено: получили %f, хотели 200", spent)
	}
}

func TestBudgetProgressThroughService(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	account := makeAccount(t, store, 1, "USD")

	month := time.Now().Format("2006-01")
	budget := &models.Budget{UserID: 1, MonthKey: month, Category: "food", Limit: 500, Currency: "USD"}
	if err := store.CreateBudget(ctx, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}

	tr := &models.Transaction{UserID: 1, AccountID: account.ID, Name: "Продукты", Amount: 150, Currency: "USD", Category: "food", Type: models.TransactionExpense}
	if err := svc.CreateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	progress, err := svc.BudgetProgress(ctx, budget.ID)
	if err != nil {
		t.Fatalf("ошибка расчёта прогресса бюджета: %v", err)
	}
	if !almostEqual(progress.Spent, 150) {
		t.Errorf("потрачено: получили %f, хотели 150", progress.Spent)
	}
	if progress.Budget.Limit != 500 {
		t.Errorf("лимит: %f", progress.Budget.Limit)
	}
}
