package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func TestCreateAndFindLinkedDebt(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	linked := 2
	now := time.Now()
	debt := &models.Debt{
		UserID:        1,
		Person:        "Test person",
		Amount:        100,
		CurrentAmount: 100,
		Currency:      "USD",
		Type:          models.DebtIOwe,
		Status:        models.DebtActive,
		Date:          now,
		LinkedUserID:  &linked,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := store.CreateDebt(ctx, debt); err != nil {
		t.Fatalf("ошибка создания долга: %v", err)
	}
	t.Cleanup(func() { _ = store.DeleteDebt(ctx, debt.ID) })

	created, err := store.GetDebtByID(ctx, debt.ID)
	if err != nil {
		t.Fatalf("ошибка получения долга: %v", err)
	}
	if created.CurrentAmount != 100 || created.LinkedUserID == nil || *created.LinkedUserID != linked {
		t.Errorf("данные долга не совпадают: %+v", created)
	}

	// Поиск по ссылке на пользователя-контрагента
	found, err := store.FindLinkedDebt(ctx, 1, linked, 0)
	if err != nil {
		t.Fatalf("ошибка поиска связанного долга: %v", err)
	}
	if found.ID != debt.ID {
		t.Errorf("нашли не тот долг: %d, хотели %d", found.ID, debt.ID)
	}

	_, err = store.FindLinkedDebt(ctx, 1, 999, 0)
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("несуществующая связь должна отдавать ErrNotFound, получили: %v", err)
	}
}

func TestRequestIdempotencyLookup(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	origin := 12345
	request := &models.TransactionRequest{
		SenderUserID:        1,
		ReceiverUserID:      2,
		RelatedDebtID:       777,
		OriginTransactionID: &origin,
		Amount:              30,
		Currency:            "USD",
		TransactionType:     models.TransactionExpense,
		CategoryName:        "debt_repayment_sent",
		Status:              models.RequestCompleted,
		CreatedAt:           time.Now(),
	}
	if err := store.CreateRequest(ctx, request); err != nil {
		t.Fatalf("ошибка создания запроса: %v", err)
	}

	exists, err := store.HasCompletedRequest(ctx, 777, &origin, models.TransactionExpense, 30)
	if err != nil {
		t.Fatalf("ошибка проверки идемпотентности: %v", err)
	}
	if !exists {
		t.Errorf("выполненный запрос не найден по ключу идемпотентности")
	}

	exists, err = store.HasCompletedRequest(ctx, 777, &origin, models.TransactionExpense, 31)
	if err != nil {
		t.Fatalf("ошибка проверки идемпотентности: %v", err)
	}
	if exists {
		t.Errorf("другая сумма не должна совпадать по ключу")
	}
}
