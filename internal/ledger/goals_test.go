package ledger_test

import (
	"context"
	"testing"

	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func makeGoal(t *testing.T, svc *ledger.Service, userID int, target float64, currency string) *models.Goal {
	t.Helper()
	goal := &models.Goal{
		UserID:   userID,
		Name:     "Отпуск",
		Icon:     "beach",
		Amount:   target,
		Currency: currency,
	}
	if err := svc.CreateGoal(context.Background(), goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}
	return goal
}

func contribution(userID, accountID, goalID int, amount float64, currency string) *models.Transaction {
	return &models.Transaction{
		UserID:    userID,
		AccountID: accountID,
		Name:      "Отложил",
		Amount:    amount,
		Currency:  currency,
		Category:  "savings",
		Type:      models.TransactionExpense,
		GoalID:    &goalID,
	}
}

func TestGoalProgressFromLinkedExpenses(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	account := makeAccount(t, store, 1, "USD")
	goal := makeGoal(t, svc, 1, 1000, "USD")

	if err := svc.CreateTransaction(ctx, contribution(1, account.ID, goal.ID, 300, "USD")); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	stored, _ := store.GetGoalByID(ctx, goal.ID)
	if !almostEqual(stored.CurrentAmount, 300) {
		t.Errorf("прогресс цели: получили %f, хотели 300", stored.CurrentAmount)
	}
	if stored.Status != "active" {
		t.Errorf("статус цели: %s", stored.Status)
	}

	// Довнесение в другой валюте конвертируется в валюту цели
	if err := svc.CreateTransaction(ctx, contribution(1, account.ID, goal.ID, 90, "EUR")); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	stored, _ = store.GetGoalByID(ctx, goal.ID)
	if !almostEqual(stored.CurrentAmount, 400) {
		t.Errorf("прогресс цели после 90 EUR: получили %f, хотели 400", stored.CurrentAmount)
	}
}

func TestGoalReachedFlipsStatus(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	account := makeAccount(t, store, 1, "USD")
	goal := makeGoal(t, svc, 1, 500, "USD")

	if err := svc.CreateTransaction(ctx, contribution(1, account.ID, goal.ID, 500, "USD")); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	stored, _ := store.GetGoalByID(ctx, goal.ID)
	if stored.Status != "achieved" {
		t.Errorf("достигнутая цель: статус %s, хотели achieved", stored.Status)
	}
}

func TestDeleteTransactionRevertsGoalExactly(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	account := makeAccount(t, store, 1, "USD")
	goal := makeGoal(t, svc, 1, 1000, "USD")

	tr := contribution(1, account.ID, goal.ID, 300, "USD")
	if err := svc.CreateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	if err := svc.DeleteTransaction(ctx, tr.ID); err != nil {
		t.Fatalf("ошибка удаления транзакции: %v", err)
	}
	stored, _ := store.GetGoalByID(ctx, goal.ID)
	if stored.CurrentAmount != 0 {
		t.Errorf("прогресс после отката: получили %f, хотели ровно 0", stored.CurrentAmount)
	}
}

func TestEditGoalTransactionMatchesRecreate(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	account := makeAccount(t, store, 1, "USD")
	goal := makeGoal(t, svc, 1, 1000, "USD")

	tr := contribution(1, account.ID, goal.ID, 300, "USD")
	if err := svc.CreateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	tr.Amount = 120
	if err := svc.UpdateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка редактирования транзакции: %v", err)
	}
	stored, _ := store.GetGoalByID(ctx, goal.ID)
	if !almostEqual(stored.CurrentAmount, 120) {
		t.Errorf("прогресс после правки: получили %f, хотели 120", stored.CurrentAmount)
	}
}

func TestDanglingGoalReferenceIsSoftFailure(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	account := makeAccount(t, store, 1, "USD")
	goal := makeGoal(t, svc, 1, 1000, "USD")

	tr := contribution(1, account.ID, goal.ID, 300, "USD")
	if err := svc.CreateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	if err := store.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("ошибка удаления цели: %v", err)
	}
	// Цель удалена конкурентно — удаление транзакции всё равно проходит
	if err := svc.DeleteTransaction(ctx, tr.ID); err != nil {
		t.Errorf("повисшая ссылка на цель уронила удаление транзакции: %v", err)
	}
}
