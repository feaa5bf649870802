package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

// Обе стороны протокола живут в одном хранилище: у каждого пользователя
// свой независимый леджер, общие только запросы синхронизации.
const (
	sender   = 1
	receiver = 2
)

func makeLinkedDebt(t *testing.T, svc *ledger.Service, amount float64) *models.Debt {
	t.Helper()
	linked := receiver
	debt := &models.Debt{
		UserID:       sender,
		Person:       "Аня",
		Amount:       amount,
		Currency:     "USD",
		Type:         models.DebtOwedToMe,
		LinkedUserID: &linked,
	}
	if err := svc.CreateDebt(context.Background(), debt); err != nil {
		t.Fatalf("ошибка создания связанного долга: %v", err)
	}
	return debt
}

func TestUnlinkedDebtNeverEmitsRequest(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	account := makeAccount(t, store, sender, "USD")
	debt := makeDebt(t, svc, sender, 100, "USD", models.DebtOwedToMe)

	if err := svc.CreateTransaction(ctx, repayment(sender, account.ID, debt.ID, 30, "USD")); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	requests, _ := store.ListRequests(ctx, receiver)
	if len(requests) != 0 {
		t.Errorf("несвязанный долг породил запросы: %d", len(requests))
	}
}

func TestLinkedDebtEmitsExactlyOneRequestPerEvent(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	account := makeAccount(t, store, sender, "USD")
	debt := makeLinkedDebt(t, svc, 100)

	tr := &models.Transaction{
		UserID:    sender,
		AccountID: account.ID,
		Name:      "Мне вернули",
		Amount:    30,
		Currency:  "USD",
		Category:  ledger.CategoryRepaymentReceived,
		Type:      models.TransactionIncome,
		DebtID:    &debt.ID,
	}
	if err := svc.CreateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	requests, _ := store.ListRequests(ctx, receiver)
	if len(requests) != 1 {
		t.Fatalf("после create хотели ровно 1 запрос, получили %d", len(requests))
	}
	request := requests[0]
	// Тип инвертирован: доход отправителя — расход получателя
	if request.TransactionType != models.TransactionExpense {
		t.Errorf("тип запроса: %s, хотели expense", request.TransactionType)
	}
	if request.CategoryName != ledger.CategoryRepaymentSent {
		t.Errorf("категория запроса: %s, хотели зеркальную repayment_sent", request.CategoryName)
	}
	if request.Status != models.RequestPending {
		t.Errorf("статус нового запроса: %s", request.Status)
	}
	if request.OriginTransactionID == nil || *request.OriginTransactionID != tr.ID {
		t.Errorf("запрос не несёт ключ идемпотентности: %+v", request.OriginTransactionID)
	}

	// Удаление — ещё ровно один запрос
	if err := svc.DeleteTransaction(ctx, tr.ID); err != nil {
		t.Fatalf("ошибка удаления транзакции: %v", err)
	}
	requests, _ = store.ListRequests(ctx, receiver)
	if len(requests) != 2 {
		t.Errorf("после delete хотели 2 запроса, получили %d", len(requests))
	}
}

func TestAcceptMaterializesMirroredTransaction(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	senderAccount := makeAccount(t, store, sender, "USD")
	receiverAccount := makeAccount(t, store, receiver, "USD")
	debt := makeLinkedDebt(t, svc, 100)

	// Зеркальный долг получателя, связанный с отправителем
	linkedBack := sender
	receiverDebt := &models.Debt{
		UserID:       receiver,
		Person:       "Боря",
		Amount:       100,
		Currency:     "USD",
		Type:         models.DebtIOwe,
		LinkedUserID: &linkedBack,
	}
	if err := svc.CreateDebt(ctx, receiverDebt); err != nil {
		t.Fatalf("ошибка создания долга получателя: %v", err)
	}

	tr := &models.Transaction{
		UserID:    sender,
		AccountID: senderAccount.ID,
		Name:      "Мне вернули",
		Amount:    30,
		Currency:  "USD",
		Category:  ledger.CategoryRepaymentReceived,
		Type:      models.TransactionIncome,
		DebtID:    &debt.ID,
	}
	if err := svc.CreateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	requests, _ := store.ListRequests(ctx, receiver)
	if err := svc.AcceptRequest(ctx, requests[0].ID, receiverAccount.ID); err != nil {
		t.Fatalf("ошибка принятия запроса: %v", err)
	}

	// У получателя появилась зеркальная транзакция
	mirrored, _ := store.ListTransactions(ctx, receiver)
	if len(mirrored) != 1 {
		t.Fatalf("хотели 1 зеркальную транзакцию, получили %d", len(mirrored))
	}
	if mirrored[0].Type != models.TransactionExpense || !almostEqual(mirrored[0].Amount, 30) {
		t.Errorf("зеркальная транзакция: %+v", mirrored[0])
	}

	// И она прошла обычный конвейер: долг получателя уменьшился
	storedDebt, _ := store.GetDebtByID(ctx, receiverDebt.ID)
	if !almostEqual(storedDebt.CurrentAmount, 70) {
		t.Errorf("остаток долга получателя: %f, хотели 70", storedDebt.CurrentAmount)
	}

	// Запрос закрыт
	request, _ := store.GetRequestByID(ctx, requests[0].ID)
	if request.Status != models.RequestCompleted {
		t.Errorf("статус запроса после принятия: %s", request.Status)
	}

	// Зеркальная транзакция не породила встречный запрос отправителю
	backRequests, _ := store.ListRequests(ctx, sender)
	if len(backRequests) != 0 {
		t.Errorf("возник пинг-понг запросов: %d", len(backRequests))
	}
}

func TestAcceptIsIdempotent(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	senderAccount := makeAccount(t, store, sender, "USD")
	receiverAccount := makeAccount(t, store, receiver, "USD")
	debt := makeLinkedDebt(t, svc, 100)

	tr := &models.Transaction{
		UserID:    sender,
		AccountID: senderAccount.ID,
		Name:      "Мне вернули",
		Amount:    30,
		Currency:  "USD",
		Category:  ledger.CategoryRepaymentReceived,
		Type:      models.TransactionIncome,
		DebtID:    &debt.ID,
	}
	if err := svc.CreateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	// Повторная доставка того же запроса
	requests, _ := store.ListRequests(ctx, receiver)
	duplicate := requests[0]
	duplicate.ID = 0
	if err := store.CreateRequest(ctx, &duplicate); err != nil {
		t.Fatalf("ошибка создания дубликата: %v", err)
	}

	if err := svc.AcceptRequest(ctx, requests[0].ID, receiverAccount.ID); err != nil {
		t.Fatalf("ошибка принятия первого запроса: %v", err)
	}
	err := svc.AcceptRequest(ctx, duplicate.ID, receiverAccount.ID)
	if !errors.Is(err, ledger.ErrDuplicateRequest) {
		t.Errorf("дубликат должен отклоняться по ключу идемпотентности, получили: %v", err)
	}

	mirrored, _ := store.ListTransactions(ctx, receiver)
	if len(mirrored) != 1 {
		t.Errorf("двойное применение: %d зеркальных транзакций", len(mirrored))
	}
}

func TestAcceptDeleteDebtRequest(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	debt := makeLinkedDebt(t, svc, 100)

	// Долг получателя, созданный когда-то из запроса отправителя
	parent := debt.ID
	receiverDebt := &models.Debt{
		UserID:       receiver,
		Person:       "Боря",
		Amount:       100,
		Currency:     "USD",
		Type:         models.DebtIOwe,
		ParentDebtID: &parent,
	}
	if err := svc.CreateDebt(ctx, receiverDebt); err != nil {
		t.Fatalf("ошибка создания долга получателя: %v", err)
	}

	// Отправитель удаляет свой долг: локально сразу, получателю — маркер
	if err := svc.DeleteDebt(ctx, debt.ID); err != nil {
		t.Fatalf("ошибка удаления долга: %v", err)
	}
	if _, err := store.GetDebtByID(ctx, debt.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("долг отправителя должен быть удалён сразу: %v", err)
	}

	requests, _ := store.ListRequests(ctx, receiver)
	if len(requests) != 1 || requests[0].TransactionType != models.RequestDeleteDebt {
		t.Fatalf("хотели один маркер удаления, получили: %+v", requests)
	}

	if err := svc.AcceptRequest(ctx, requests[0].ID, 0); err != nil {
		t.Fatalf("ошибка принятия маркера удаления: %v", err)
	}

	// Долг получателя удалён, транзакция не создана
	if _, err := store.GetDebtByID(ctx, receiverDebt.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("связанный долг получателя должен быть удалён: %v", err)
	}
	transactions, _ := store.ListTransactions(ctx, receiver)
	if len(transactions) != 0 {
		t.Errorf("маркер удаления не должен создавать транзакций: %d", len(transactions))
	}
	request, _ := store.GetRequestByID(ctx, requests[0].ID)
	if request.Status != models.RequestCompleted {
		t.Errorf("статус маркера после принятия: %s", request.Status)
	}
}

// Полный цикл: проводка принята обеими сторонами, затем отменена
// отправителем и отмена принята получателем. Остатки связанных долгов
// обязаны сойтись к исходным — гасящая категория действует на остаток
// противоположно зеркальной, иначе отмена повторила бы эффект.
func TestDeletedTransactionCancelConvergesLedgers(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	senderAccount := makeAccount(t, store, sender, "USD")
	receiverAccount := makeAccount(t, store, receiver, "USD")
	senderDebt := makeLinkedDebt(t, svc, 100)

	linkedBack := sender
	receiverDebt := &models.Debt{
		UserID:       receiver,
		Person:       "Боря",
		Amount:       100,
		Currency:     "USD",
		Type:         models.DebtIOwe,
		LinkedUserID: &linkedBack,
	}
	if err := svc.CreateDebt(ctx, receiverDebt); err != nil {
		t.Fatalf("ошибка создания долга получателя: %v", err)
	}

	// Отправитель даёт ещё 40 в долг
	tr := &models.Transaction{
		UserID:    sender,
		AccountID: senderAccount.ID,
		Name:      "Дал ещё",
		Amount:    40,
		Currency:  "USD",
		Category:  ledger.CategoryLending,
		Type:      models.TransactionExpense,
		DebtID:    &senderDebt.ID,
	}
	if err := svc.CreateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	requests, _ := store.ListRequests(ctx, receiver)
	if err := svc.AcceptRequest(ctx, requests[0].ID, receiverAccount.ID); err != nil {
		t.Fatalf("ошибка принятия запроса: %v", err)
	}
	stored, _ := store.GetDebtByID(ctx, receiverDebt.ID)
	if !almostEqual(stored.CurrentAmount, 140) {
		t.Fatalf("остаток получателя после принятия: %f, хотели 140", stored.CurrentAmount)
	}

	// Отправитель передумал и удалил проводку
	if err := svc.DeleteTransaction(ctx, tr.ID); err != nil {
		t.Fatalf("ошибка удаления транзакции: %v", err)
	}
	senderStored, _ := store.GetDebtByID(ctx, senderDebt.ID)
	if !almostEqual(senderStored.CurrentAmount, 100) {
		t.Fatalf("остаток отправителя после удаления: %f, хотели 100", senderStored.CurrentAmount)
	}

	requests, _ = store.ListRequests(ctx, receiver)
	var cancel *models.TransactionRequest
	for i := range requests {
		if requests[i].Status == models.RequestPending {
			cancel = &requests[i]
		}
	}
	if cancel == nil {
		t.Fatal("запрос-отмена не отправлен")
	}
	// Гасящая проводка: денежный тип отправителя, категория с
	// противоположным действием на остаток
	if cancel.TransactionType != models.TransactionExpense {
		t.Errorf("тип отмены: %s, хотели expense", cancel.TransactionType)
	}
	if cancel.CategoryName != ledger.CategoryRepaymentSent {
		t.Errorf("категория отмены: %s, хотели repayment_sent", cancel.CategoryName)
	}

	if err := svc.AcceptRequest(ctx, cancel.ID, receiverAccount.ID); err != nil {
		t.Fatalf("ошибка принятия отмены: %v", err)
	}
	stored, _ = store.GetDebtByID(ctx, receiverDebt.ID)
	if !almostEqual(stored.CurrentAmount, senderStored.CurrentAmount) {
		t.Errorf("леджеры разошлись: отправитель=%f получатель=%f", senderStored.CurrentAmount, stored.CurrentAmount)
	}
}

func TestRejectKeepsRequestAndLedgersUntouched(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	senderAccount := makeAccount(t, store, sender, "USD")
	debt := makeLinkedDebt(t, svc, 100)

	tr := &models.Transaction{
		UserID:    sender,
		AccountID: senderAccount.ID,
		Name:      "Мне вернули",
		Amount:    30,
		Currency:  "USD",
		Category:  ledger.CategoryRepaymentReceived,
		Type:      models.TransactionIncome,
		DebtID:    &debt.ID,
	}
	if err := svc.CreateTransaction(ctx, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	requests, _ := store.ListRequests(ctx, receiver)
	if err := svc.RejectRequest(ctx, requests[0].ID); err != nil {
		t.Fatalf("ошибка отклонения запроса: %v", err)
	}

	// Запрос остаётся у получателя в статусе rejected
	kept, _ := store.ListRequests(ctx, receiver)
	if len(kept) != 1 || kept[0].Status != models.RequestRejected {
		t.Errorf("отклонённый запрос должен сохраняться: %+v", kept)
	}

	// Ни транзакций у получателя, ни изменений долга отправителя
	transactions, _ := store.ListTransactions(ctx, receiver)
	if len(transactions) != 0 {
		t.Errorf("отклонение породило транзакции: %d", len(transactions))
	}
	storedDebt, _ := store.GetDebtByID(ctx, debt.ID)
	if !almostEqual(storedDebt.CurrentAmount, 70) {
		// 70 — эффект собственной транзакции отправителя, отклонение его не трогает
		t.Errorf("остаток долга отправителя: %f, хотели 70", storedDebt.CurrentAmount)
	}

	// Повторное отклонение — запрос уже закрыт
	if err := svc.RejectRequest(ctx, requests[0].ID); !errors.Is(err, ledger.ErrRequestClosed) {
		t.Errorf("повторное отклонение: %v", err)
	}
}
