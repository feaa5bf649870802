package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

// Service — командный слой леджера: создание/редактирование/удаление
// транзакций и долгов, приём и отклонение запросов синхронизации.
// Вся логика работает поверх инжектированного хранилища и источника
// курсов, без глобального состояния — тестируется без UI и без БД.
//
// Операции одного пользователя сериализует вызывающая сторона; сам
// сервис внутренних блокировок не держит. Частично применённая
// многошаговая операция не компенсируется: ошибка отдаётся наверх,
// вызывающая сторона перечитывает состояние из хранилища.
type Service struct {
	store    Store
	rates    RateSource
	notifier Notifier
}

func NewService(store Store, rates RateSource, notifier Notifier) *Service {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Service{store: store, rates: rates, notifier: notifier}
}

func (s *Service) Store() Store { return s.store }

func (s *Service) validateTransaction(t *models.Transaction) error {
	if t.Name == "" {
		return ErrMissingName
	}
	if t.Amount <= 0 {
		return ErrAmountNotPositive
	}
	if t.AccountID == 0 {
		return ErrMissingAccount
	}
	switch t.Type {
	case models.TransactionIncome, models.TransactionExpense:
	case models.TransactionTransfer:
		if t.ToAccountID == nil {
			return ErrMissingToAccount
		}
		if *t.ToAccountID == t.AccountID {
			return ErrSameAccount
		}
	default:
		return ErrUnknownType
	}
	if t.DebtID != nil && ParseDebtOperation(t.Category) == OpUnknown {
		return ErrUnknownCategory
	}
	return nil
}

// CreateTransaction проводит транзакцию по всему конвейеру: валидация,
// запись в журнал, производные эффекты на цель и долг, best-effort
// запрос синхронизации контрагенту.
func (s *Service) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return s.createTransaction(ctx, transaction, true)
}

func (s *Service) createTransaction(ctx context.Context, transaction *models.Transaction, emitSync bool) error {
	if err := s.validateTransaction(transaction); err != nil {
		return err
	}
	if transaction.Date.IsZero() {
		transaction.Date = time.Now()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	if err := s.store.CreateTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("ошибка при добавлении транзакции: %w", err)
	}
	if err := s.applyGoalEffect(ctx, transaction, false); err != nil {
		return err
	}
	if err := s.applyDebtEffect(ctx, transaction, false); err != nil {
		return err
	}
	if emitSync {
		s.emitSyncForTransaction(ctx, transaction, false)
	}
	s.notifier.ChangeEvent(ctx, transaction.UserID, "transactions")
	return nil
}

// UpdateTransaction заменяет запись целиком. Производные эффекты не
// диффаются: сначала точный откат старой версии, затем применение новой —
// итог совпадает с "удалить старую, создать новую".
func (s *Service) UpdateTransaction(ctx context.Context, transaction *models.Transaction) error {
	old, err := s.store.GetTransactionByID(ctx, transaction.ID)
	if err != nil {
		return err
	}
	if err := s.validateTransaction(transaction); err != nil {
		return err
	}
	if err := s.applyGoalEffect(ctx, old, true); err != nil {
		return err
	}
	if err := s.applyDebtEffect(ctx, old, true); err != nil {
		return err
	}
	transaction.UserID = old.UserID
	transaction.CreatedAt = old.CreatedAt
	if err := s.store.UpdateTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("ошибка обновления транзакции: %w", err)
	}
	if err := s.applyGoalEffect(ctx, transaction, false); err != nil {
		return err
	}
	if err := s.applyDebtEffect(ctx, transaction, false); err != nil {
		return err
	}
	s.emitSyncForTransaction(ctx, transaction, false)
	s.notifier.ChangeEvent(ctx, transaction.UserID, "transactions")
	return nil
}

// DeleteTransaction убирает транзакцию из журнала, предварительно
// откатив её эффекты на цель и долг.
func (s *Service) DeleteTransaction(ctx context.Context, transactionID int) error {
	transaction, err := s.store.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.applyGoalEffect(ctx, transaction, true); err != nil {
		return err
	}
	if err := s.applyDebtEffect(ctx, transaction, true); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("ошибка удаления транзакции: %w", err)
	}
	s.emitSyncForTransaction(ctx, transaction, true)
	s.notifier.ChangeEvent(ctx, transaction.UserID, "transactions")
	return nil
}

// TotalBalance — суммарный баланс пользователя в валюте отображения.
func (s *Service) TotalBalance(ctx context.Context, userID int, displayCurrency string) (float64, error) {
	transactions, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return 0, err
	}
	rates, err := s.rates.Rates()
	if err != nil {
		return 0, err
	}
	return TotalBalance(transactions, rates, displayCurrency)
}

// AccountBalance — баланс счёта в его собственной валюте.
func (s *Service) AccountBalance(ctx context.Context, accountID int) (float64, error) {
	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	transactions, err := s.store.ListTransactions(ctx, account.UserID)
	if err != nil {
		return 0, err
	}
	rates, err := s.rates.Rates()
	if err != nil {
		return 0, err
	}
	return AccountBalance(accountID, transactions, rates, account.Currency)
}

// MonthSummary — сводка за месяц с необязательным фильтром по счёту.
func (s *Service) MonthSummary(ctx context.Context, userID int, month, displayCurrency string, selectedAccountID *int) (PeriodSummary, error) {
	transactions, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return PeriodSummary{}, err
	}
	rates, err := s.rates.Rates()
	if err != nil {
		return PeriodSummary{}, err
	}
	return SummaryForPeriod(transactions, month, rates, displayCurrency, selectedAccountID)
}
