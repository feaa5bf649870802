package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
	"github.com/valeriaulyamaeva/personal-finance-ledger/utils"
)

// CreateGoal создаёт цель накопления с нулевым прогрессом.
func (s *Service) CreateGoal(ctx context.Context, goal *models.Goal) error {
	if goal.Name == "" {
		return ErrMissingName
	}
	if goal.Amount <= 0 {
		return ErrAmountNotPositive
	}
	goal.CurrentAmount = 0
	goal.Status = "active"
	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return fmt.Errorf("ошибка при создании цели: %w", err)
	}
	s.notifier.ChangeEvent(ctx, goal.UserID, "savings_goals")
	return nil
}

// applyGoalEffect двигает прогресс цели от привязанной расходной
// транзакции. invert=true — точный откат при удалении/редактировании.
// Исчезнувшая цель — мягкая ошибка, как и с долгами.
func (s *Service) applyGoalEffect(ctx context.Context, transaction *models.Transaction, invert bool) error {
	if transaction.GoalID == nil || transaction.Type != models.TransactionExpense {
		return nil
	}
	goal, err := s.store.GetGoalByID(ctx, *transaction.GoalID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("цель %d не найдена, эффект транзакции %d пропущен", *transaction.GoalID, transaction.ID)
			return nil
		}
		return err
	}

	rates, err := s.rates.Rates()
	if err != nil {
		return fmt.Errorf("ошибка получения курсов валют: %w", err)
	}
	converted, err := utils.Convert(transaction.Amount, transaction.Currency, goal.Currency, rates)
	if err != nil {
		return err
	}

	delta := decimal.NewFromFloat(converted)
	current := decimal.NewFromFloat(goal.CurrentAmount)
	if invert {
		current = current.Sub(delta)
	} else {
		current = current.Add(delta)
	}
	if current.IsNegative() {
		current = decimal.Zero
	}
	goal.CurrentAmount = current.InexactFloat64()
	goal.RefreshStatus()
	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return fmt.Errorf("ошибка обновления прогресса цели: %w", err)
	}
	s.notifier.ChangeEvent(ctx, goal.UserID, "savings_goals")
	return nil
}
