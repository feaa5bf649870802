package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
	"github.com/valeriaulyamaeva/personal-finance-ledger/utils"
)

// Категории долговых транзакций. Закрытый набор: транзакция с debt_id и
// категорией вне этого набора отклоняется валидацией, а не превращается
// в молчаливый no-op.
const (
	CategoryLending           = "debt_lending"            // я дал в долг
	CategoryBorrowing         = "debt_borrowing"          // я взял в долг
	CategoryRepaymentSent     = "debt_repayment_sent"     // я вернул долг
	CategoryRepaymentReceived = "debt_repayment_received" // мне вернули долг
)

type DebtOperation int

const (
	OpUnknown DebtOperation = iota
	OpLending
	OpBorrowing
	OpRepaymentSent
	OpRepaymentReceived
)

func ParseDebtOperation(category string) DebtOperation {
	switch category {
	case CategoryLending:
		return OpLending
	case CategoryBorrowing:
		return OpBorrowing
	case CategoryRepaymentSent:
		return OpRepaymentSent
	case CategoryRepaymentReceived:
		return OpRepaymentReceived
	default:
		return OpUnknown
	}
}

// Increases сообщает, растёт ли остаток долга от операции.
// Выдача и получение долга увеличивают остаток, возвраты уменьшают.
func (op DebtOperation) Increases() bool {
	return op == OpLending || op == OpBorrowing
}

// MirrorCategory — долговая категория с точки зрения контрагента:
// моя выдача долга — его заём, мой возврат — его полученный возврат.
func MirrorCategory(category string) string {
	switch category {
	case CategoryLending:
		return CategoryBorrowing
	case CategoryBorrowing:
		return CategoryLending
	case CategoryRepaymentSent:
		return CategoryRepaymentReceived
	case CategoryRepaymentReceived:
		return CategoryRepaymentSent
	default:
		return category
	}
}

// CancelCategory — категория гасящей проводки у контрагента при отмене
// моей транзакции. Зеркальная категория сохраняет направление эффекта,
// поэтому для отката нужна категория противоположного действия, но того
// же денежного типа: заём контрагента гасится его возвратом, возврат —
// новым заёмом.
func CancelCategory(category string) string {
	switch category {
	case CategoryLending:
		return CategoryRepaymentSent
	case CategoryBorrowing:
		return CategoryRepaymentReceived
	case CategoryRepaymentSent:
		return CategoryLending
	case CategoryRepaymentReceived:
		return CategoryBorrowing
	default:
		return category
	}
}

// CreateDebt создаёт долг. Остаток стартует равным исходной сумме:
// ещё ничего не возвращено.
func (s *Service) CreateDebt(ctx context.Context, debt *models.Debt) error {
	if debt.Person == "" {
		return ErrMissingName
	}
	if debt.Amount <= 0 {
		return ErrAmountNotPositive
	}
	if debt.Type != models.DebtIOwe && debt.Type != models.DebtOwedToMe {
		return fmt.Errorf("неизвестное направление долга: %q", debt.Type)
	}
	now := time.Now()
	debt.CurrentAmount = debt.Amount
	debt.Status = models.DebtActive
	if debt.Date.IsZero() {
		debt.Date = now
	}
	debt.CreatedAt = now
	debt.UpdatedAt = now
	if err := s.store.CreateDebt(ctx, debt); err != nil {
		return fmt.Errorf("ошибка при создании долга: %w", err)
	}
	s.notifier.ChangeEvent(ctx, debt.UserID, "debts")
	return nil
}

// CreateDebtWithTransaction создаёт долг вместе с порождающей транзакцией.
// Эффект транзакции уже воплощён в стартовом остатке, поэтому транзакция
// записывается мимо applyDebtEffect — иначе эффект применился бы дважды.
// Удаление этой транзакции позже откатит остаток обычным revert-ом.
func (s *Service) CreateDebtWithTransaction(ctx context.Context, debt *models.Debt, transaction *models.Transaction) error {
	transaction.UserID = debt.UserID
	transaction.Currency = debt.Currency
	// Указатель на ещё не выданный ID: заполнится при создании долга.
	// Валидация идёт до любой записи, иначе отклонённая транзакция
	// оставила бы долг-сироту.
	transaction.DebtID = &debt.ID
	if err := s.validateTransaction(transaction); err != nil {
		return err
	}
	if err := s.CreateDebt(ctx, debt); err != nil {
		return err
	}
	if transaction.Date.IsZero() {
		transaction.Date = time.Now()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	if err := s.store.CreateTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("ошибка при создании порождающей транзакции: %w", err)
	}
	debt.InitialTransactionID = &transaction.ID
	debt.UpdatedAt = time.Now()
	if err := s.store.UpdateDebt(ctx, debt); err != nil {
		return fmt.Errorf("ошибка при привязке порождающей транзакции: %w", err)
	}
	if debt.Linked() {
		s.emitTransactionRequest(ctx, debt, transaction, false)
	}
	s.notifier.ChangeEvent(ctx, debt.UserID, "transactions")
	return nil
}

// UpdateDebtInfo правит только метаданные долга. Остаток не трогается:
// он меняется исключительно через привязанные транзакции.
func (s *Service) UpdateDebtInfo(ctx context.Context, debt *models.Debt) error {
	stored, err := s.store.GetDebtByID(ctx, debt.ID)
	if err != nil {
		return err
	}
	stored.Person = debt.Person
	stored.Description = debt.Description
	stored.Category = debt.Category
	stored.DueDate = debt.DueDate
	stored.UpdatedAt = time.Now()
	if err := s.store.UpdateDebt(ctx, stored); err != nil {
		return fmt.Errorf("ошибка обновления долга: %w", err)
	}
	s.notifier.ChangeEvent(ctx, stored.UserID, "debts")
	return nil
}

// ArchiveDebt / UnarchiveDebt — только смена статуса, суммы не меняются.
func (s *Service) ArchiveDebt(ctx context.Context, debtID int) error {
	return s.setDebtStatus(ctx, debtID, models.DebtArchived)
}

func (s *Service) UnarchiveDebt(ctx context.Context, debtID int) error {
	return s.setDebtStatus(ctx, debtID, models.DebtActive)
}

func (s *Service) setDebtStatus(ctx context.Context, debtID int, status string) error {
	debt, err := s.store.GetDebtByID(ctx, debtID)
	if err != nil {
		return err
	}
	debt.Status = status
	debt.UpdatedAt = time.Now()
	if err := s.store.UpdateDebt(ctx, debt); err != nil {
		return fmt.Errorf("ошибка обновления статуса долга: %w", err)
	}
	s.notifier.ChangeEvent(ctx, debt.UserID, "debts")
	return nil
}

// DeleteDebt удаляет долг. Для связанного долга удаление оптимистичное и
// асимметричное: локально долг убирается сразу, контрагенту уходит
// запрос-маркер удаления. Отката нет — если запрос не дойдёт или не
// будет принят, леджеры разойдутся; это осознанно сохранённый риск.
func (s *Service) DeleteDebt(ctx context.Context, debtID int) error {
	debt, err := s.store.GetDebtByID(ctx, debtID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDebt(ctx, debtID); err != nil {
		return fmt.Errorf("ошибка удаления долга: %w", err)
	}
	if debt.Linked() {
		s.emitDeleteDebtRequest(ctx, debt)
	}
	s.notifier.ChangeEvent(ctx, debt.UserID, "debts")
	return nil
}

// applyDebtEffect применяет (или откатывает, invert=true) эффект долговой
// транзакции на остаток. Остаток зажимается снизу нулём. Исчезнувший долг
// (удалён конкурентно) — мягкая ошибка: логируем и выходим, операция над
// транзакцией не должна падать из-за повисшей ссылки.
func (s *Service) applyDebtEffect(ctx context.Context, transaction *models.Transaction, invert bool) error {
	if transaction.DebtID == nil {
		return nil
	}
	op := ParseDebtOperation(transaction.Category)
	if op == OpUnknown {
		return ErrUnknownCategory
	}
	debt, err := s.store.GetDebtByID(ctx, *transaction.DebtID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("долг %d не найден, эффект транзакции %d пропущен", *transaction.DebtID, transaction.ID)
			return nil
		}
		return err
	}

	rates, err := s.rates.Rates()
	if err != nil {
		return fmt.Errorf("ошибка получения курсов валют: %w", err)
	}
	converted, err := utils.Convert(transaction.Amount, transaction.Currency, debt.Currency, rates)
	if err != nil {
		return err
	}

	increases := op.Increases()
	if invert {
		increases = !increases
	}
	delta := decimal.NewFromFloat(converted)
	current := decimal.NewFromFloat(debt.CurrentAmount)
	if increases {
		current = current.Add(delta)
	} else {
		current = current.Sub(delta)
	}
	if current.IsNegative() {
		current = decimal.Zero
	}
	debt.CurrentAmount = current.InexactFloat64()
	if debt.Status != models.DebtArchived {
		if current.IsZero() {
			debt.Status = models.DebtCompleted
		} else {
			debt.Status = models.DebtActive
		}
	}
	debt.UpdatedAt = time.Now()
	if err := s.store.UpdateDebt(ctx, debt); err != nil {
		return fmt.Errorf("ошибка обновления остатка долга: %w", err)
	}
	s.notifier.ChangeEvent(ctx, debt.UserID, "debts")
	return nil
}
