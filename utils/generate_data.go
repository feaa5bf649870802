package utils

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

// Генератор демо-данных. Транзакции проводятся через переданные колбэки
// сервиса, а не пишутся в обход него — иначе производные величины
// (остатки долгов, прогресс целей) разойдутся с журналом.

type Seeder interface {
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	CreateDebt(ctx context.Context, debt *models.Debt) error
}

type AccountCreator interface {
	CreateAccount(ctx context.Context, account *models.Account) error
}

var seedCurrencies = []string{"USD", "EUR", "BYN"}

func GenerateTestAccounts(ctx context.Context, store AccountCreator, userID, numAccounts int) []models.Account {
	accounts := make([]models.Account, 0, numAccounts)
	for i := 0; i < numAccounts; i++ {
		account := models.Account{
			UserID:   userID,
			Name:     gofakeit.BeerName(),
			Currency: seedCurrencies[rand.Intn(len(seedCurrencies))],
			Type:     randomAccountType(),
		}
		if err := store.CreateAccount(ctx, &account); err != nil {
			log.Fatalf("ошибка при добавлении счёта: %v", err)
		}
		accounts = append(accounts, account)
	}
	return accounts
}

func randomAccountType() string {
	if rand.Intn(2) == 0 {
		return models.AccountCard
	}
	return models.AccountCash
}

func GenerateTestTransactions(ctx context.Context, svc Seeder, userID int, accounts []models.Account, numTransactions int) {
	for i := 0; i < numTransactions; i++ {
		account := accounts[rand.Intn(len(accounts))]
		transaction := models.Transaction{
			UserID:    userID,
			AccountID: account.ID,
			Name:      gofakeit.ProductName(),
			Amount:    gofakeit.Price(1, 1000),
			Currency:  account.Currency,
			Category:  gofakeit.Word(),
			Date:      time.Now().AddDate(0, 0, -rand.Intn(30)), // Случайная дата в прошлых 30 днях
			Type:      randomTransactionType(),
		}
		if err := svc.CreateTransaction(ctx, &transaction); err != nil {
			log.Fatalf("ошибка при добавлении транзакции: %v", err)
		}
	}
}

func randomTransactionType() string {
	if rand.Intn(2) == 0 {
		return models.TransactionExpense
	}
	return models.TransactionIncome
}

func GenerateTestDebts(ctx context.Context, svc Seeder, userID, numDebts int) {
	for i := 0; i < numDebts; i++ {
		debt := models.Debt{
			UserID:   userID,
			Person:   gofakeit.Name(),
			Amount:   gofakeit.Price(10, 500),
			Currency: seedCurrencies[rand.Intn(len(seedCurrencies))],
			Type:     randomDebtType(),
			Date:     time.Now().AddDate(0, 0, -rand.Intn(60)),
		}
		if err := svc.CreateDebt(ctx, &debt); err != nil {
			log.Fatalf("ошибка при добавлении долга: %v", err)
		}
	}
}

func randomDebtType() string {
	if rand.Intn(2) == 0 {
		return models.DebtIOwe
	}
	return models.DebtOwedToMe
}
