package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

// Протокол синхронизации двух независимых леджеров. Координатора нет:
// локальная запись применяется сразу, зеркальная у контрагента — когда-то
// потом, через запрос. Жизненный цикл запроса: pending → completed или
// pending → rejected, оба состояния терминальные.

// invertTransactionType — расход отправителя является доходом получателя
// и наоборот.
func invertTransactionType(transactionType string) string {
	switch transactionType {
	case models.TransactionIncome:
		return models.TransactionExpense
	case models.TransactionExpense:
		return models.TransactionIncome
	default:
		return transactionType
	}
}

// emitSyncForTransaction отправляет запрос синхронизации по долговой
// транзакции, если долг связан с другим пользователем. Сбой отправки
// логируется и не роняет родительскую операцию леджера.
func (s *Service) emitSyncForTransaction(ctx context.Context, transaction *models.Transaction, deleted bool) {
	if transaction.DebtID == nil {
		return
	}
	debt, err := s.store.GetDebtByID(ctx, *transaction.DebtID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("не удалось получить долг %d для синхронизации: %v", *transaction.DebtID, err)
		}
		return
	}
	if !debt.Linked() {
		return
	}
	s.emitTransactionRequest(ctx, debt, transaction, deleted)
}

// emitTransactionRequest строит и записывает запрос контрагенту.
// Для создания/редактирования тип инвертируется, категория зеркалится.
// Для удаления запрос описывает гасящую проводку: тип остаётся как у
// отправителя, а категория берётся с противоположным действием на
// остаток — зеркальная категория сохраняет направление и повторила бы
// прежний эффект вместо его отката.
func (s *Service) emitTransactionRequest(ctx context.Context, debt *models.Debt, transaction *models.Transaction, deleted bool) {
	transactionType := invertTransactionType(transaction.Type)
	category := MirrorCategory(transaction.Category)
	description := transaction.Description
	if deleted {
		transactionType = transaction.Type
		category = CancelCategory(transaction.Category)
		description = "Отмена: " + transaction.Name
	}
	request := &models.TransactionRequest{
		SenderUserID:        debt.UserID,
		ReceiverUserID:      *debt.LinkedUserID,
		RelatedDebtID:       debt.ID,
		OriginTransactionID: &transaction.ID,
		Amount:              transaction.Amount,
		Currency:            transaction.Currency,
		TransactionType:     transactionType,
		CategoryName:        category,
		Description:         description,
		Status:              models.RequestPending,
		CreatedAt:           time.Now(),
	}
	if err := s.store.CreateRequest(ctx, request); err != nil {
		log.Printf("не удалось отправить запрос синхронизации по долгу %d: %v", debt.ID, err)
		return
	}
	s.notifier.ChangeEvent(ctx, request.ReceiverUserID, "transaction_requests")
	s.notifier.Notify(ctx, request.ReceiverUserID,
		fmt.Sprintf("Новый запрос по долгу от %s: %.2f %s", debt.Person, request.Amount, request.Currency))
}

// emitDeleteDebtRequest — маркер удаления долга. Best-effort: долг у
// отправителя уже удалён, отката нет.
func (s *Service) emitDeleteDebtRequest(ctx context.Context, debt *models.Debt) {
	request := &models.TransactionRequest{
		SenderUserID:    debt.UserID,
		ReceiverUserID:  *debt.LinkedUserID,
		RelatedDebtID:   debt.ID,
		Amount:          debt.CurrentAmount,
		Currency:        debt.Currency,
		TransactionType: models.RequestDeleteDebt,
		CategoryName:    debt.Category,
		Description:     debt.Description,
		Status:          models.RequestPending,
		CreatedAt:       time.Now(),
	}
	if err := s.store.CreateRequest(ctx, request); err != nil {
		log.Printf("не удалось отправить маркер удаления долга %d: %v", debt.ID, err)
		return
	}
	s.notifier.ChangeEvent(ctx, request.ReceiverUserID, "transaction_requests")
	s.notifier.Notify(ctx, request.ReceiverUserID,
		fmt.Sprintf("Контрагент %s удалил связанный долг", debt.Person))
}

// AcceptRequest принимает запрос синхронизации. Для обычного запроса
// на выбранном счёте материализуется зеркальная транзакция, которая
// проходит обычный конвейер и обновляет собственный долг получателя,
// если он найден. Для маркера удаления долг, связанный с отправителем,
// удаляется, транзакция не создаётся.
func (s *Service) AcceptRequest(ctx context.Context, requestID, accountID int) error {
	request, err := s.store.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != models.RequestPending {
		return ErrRequestClosed
	}

	if request.TransactionType == models.RequestDeleteDebt {
		return s.acceptDeleteDebt(ctx, request)
	}

	// Защита от повторной доставки: тот же долг, та же исходная
	// транзакция, тот же тип и сумма уже принимались.
	duplicate, err := s.store.HasCompletedRequest(ctx, request.RelatedDebtID, request.OriginTransactionID, request.TransactionType, request.Amount)
	if err != nil {
		return err
	}
	if duplicate {
		return ErrDuplicateRequest
	}

	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.UserID != request.ReceiverUserID {
		return fmt.Errorf("счёт %d не принадлежит получателю запроса", accountID)
	}

	name := request.Description
	if name == "" {
		name = "Синхронизация долга"
	}
	mirrored := &models.Transaction{
		UserID:      request.ReceiverUserID,
		AccountID:   accountID,
		Name:        name,
		Amount:      request.Amount,
		Currency:    request.Currency,
		Category:    request.CategoryName,
		Date:        time.Now(),
		Type:        request.TransactionType,
		Description: request.Description,
	}
	if debt, err := s.store.FindLinkedDebt(ctx, request.ReceiverUserID, request.SenderUserID, request.RelatedDebtID); err == nil {
		mirrored.DebtID = &debt.ID
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	// Зеркальная транзакция не порождает встречный запрос, иначе два
	// леджера зациклятся в пинг-понге.
	if err := s.createTransaction(ctx, mirrored, false); err != nil {
		return err
	}

	request.Status = models.RequestCompleted
	if err := s.store.UpdateRequest(ctx, request); err != nil {
		return fmt.Errorf("ошибка обновления запроса: %w", err)
	}
	s.notifier.ChangeEvent(ctx, request.ReceiverUserID, "transaction_requests")
	return nil
}

func (s *Service) acceptDeleteDebt(ctx context.Context, request *models.TransactionRequest) error {
	debt, err := s.store.FindLinkedDebt(ctx, request.ReceiverUserID, request.SenderUserID, request.RelatedDebtID)
	switch {
	case err == nil:
		if err := s.store.DeleteDebt(ctx, debt.ID); err != nil {
			return fmt.Errorf("ошибка удаления связанного долга: %w", err)
		}
		s.notifier.ChangeEvent(ctx, request.ReceiverUserID, "debts")
	case errors.Is(err, ErrNotFound):
		// Расхождение протокола: долг уже исчез. Фиксируем в логе
		// для ручной сверки, запрос всё равно закрываем.
		log.Printf("маркер удаления %d: связанный долг у пользователя %d не найден", request.ID, request.ReceiverUserID)
	default:
		return err
	}

	request.Status = models.RequestCompleted
	if err := s.store.UpdateRequest(ctx, request); err != nil {
		return fmt.Errorf("ошибка обновления запроса: %w", err)
	}
	s.notifier.ChangeEvent(ctx, request.ReceiverUserID, "transaction_requests")
	return nil
}

// RejectRequest отклоняет запрос. Никаких изменений леджера ни у одной
// из сторон; запрос остаётся у получателя в статусе rejected.
// Отправителю уходит best-effort уведомление об отказе.
func (s *Service) RejectRequest(ctx context.Context, requestID int) error {
	request, err := s.store.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != models.RequestPending {
		return ErrRequestClosed
	}
	request.Status = models.RequestRejected
	if err := s.store.UpdateRequest(ctx, request); err != nil {
		return fmt.Errorf("ошибка обновления запроса: %w", err)
	}
	s.notifier.ChangeEvent(ctx, request.ReceiverUserID, "transaction_requests")
	s.notifier.Notify(ctx, request.SenderUserID,
		fmt.Sprintf("Запрос по долгу на %.2f %s отклонён", request.Amount, request.Currency))
	return nil
}
