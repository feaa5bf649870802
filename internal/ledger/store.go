package ledger

import (
	"context"
	"errors"

	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
	"github.com/valeriaulyamaeva/personal-finance-ledger/utils"
)

// Ошибки валидации и доступа. Проверяются через errors.Is,
// хранилище обязано заворачивать "не найдено" в ErrNotFound.
var (
	ErrNotFound          = errors.New("запись не найдена")
	ErrAmountNotPositive = errors.New("сумма должна быть положительной")
	ErrMissingName       = errors.New("не указано название")
	ErrMissingAccount    = errors.New("не указан счёт")
	ErrMissingToAccount  = errors.New("для перевода не указан счёт-получатель")
	ErrSameAccount       = errors.New("счёт-источник и счёт-получатель совпадают")
	ErrUnknownType       = errors.New("неизвестный тип транзакции")
	ErrUnknownCategory   = errors.New("категория не является долговой операцией")
	ErrRequestClosed     = errors.New("запрос уже обработан")
	ErrDuplicateRequest  = errors.New("такой запрос уже был выполнен")
)

type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByID(ctx context.Context, id int) (*models.Account, error)
	ListAccounts(ctx context.Context, userID int) ([]models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id int) error
}

type TransactionStore interface {
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	GetTransactionByID(ctx context.Context, id int) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, transaction *models.Transaction) error
	DeleteTransaction(ctx context.Context, id int) error
}

type GoalStore interface {
	CreateGoal(ctx context.Context, goal *models.Goal) error
	GetGoalByID(ctx context.Context, id int) (*models.Goal, error)
	ListGoals(ctx context.Context, userID int) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, goal *models.Goal) error
	DeleteGoal(ctx context.Context, id int) error
}

type BudgetStore interface {
	CreateBudget(ctx context.Context, budget *models.Budget) error
	GetBudgetByID(ctx context.Context, id int) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID int, monthKey string) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, id int) error
}

type DebtStore interface {
	CreateDebt(ctx context.Context, debt *models.Debt) error
	GetDebtByID(ctx context.Context, id int) (*models.Debt, error)
	ListDebts(ctx context.Context, userID int) ([]models.Debt, error)
	UpdateDebt(ctx context.Context, debt *models.Debt) error
	DeleteDebt(ctx context.Context, id int) error
	// Ищет у пользователя долг, связанный с отправителем запроса:
	// либо по ссылке на пользователя, либо по ссылке на родительский долг.
	FindLinkedDebt(ctx context.Context, userID, senderUserID, parentDebtID int) (*models.Debt, error)
}

type RequestStore interface {
	CreateRequest(ctx context.Context, request *models.TransactionRequest) error
	GetRequestByID(ctx context.Context, id int) (*models.TransactionRequest, error)
	ListRequests(ctx context.Context, receiverUserID int) ([]models.TransactionRequest, error)
	UpdateRequest(ctx context.Context, request *models.TransactionRequest) error
	// Проверка идемпотентности: был ли уже выполнен запрос с таким же
	// долгом, исходной транзакцией, типом и суммой.
	HasCompletedRequest(ctx context.Context, relatedDebtID int, originTransactionID *int, transactionType string, amount float64) (bool, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context, userID int) ([]models.Notification, error)
}

// Store — инжектируемое хранилище леджера. Реализации: pgx-хранилище
// в internal/database и MemoryStore для тестов.
type Store interface {
	AccountStore
	TransactionStore
	GoalStore
	BudgetStore
	DebtStore
	RequestStore
	NotificationStore
}

// RateSource отдаёт таблицу курсов валют. Реализация — utils.RateSource.
type RateSource interface {
	Rates() (utils.RateTable, error)
}

// Notifier — внешний канал оповещений: событие "в таблице X что-то
// поменялось" и пользовательские уведомления. Оба вызова best-effort,
// ошибки доставки не должны ронять операцию леджера.
type Notifier interface {
	ChangeEvent(ctx context.Context, userID int, table string)
	Notify(ctx context.Context, userID int, message string)
}

type noopNotifier struct{}

func (noopNotifier) ChangeEvent(context.Context, int, string) {}
func (noopNotifier) Notify(context.Context, int, string)      {}
