package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

// MemoryStore — хранилище в памяти. Используется юнит-тестами леджера и
// генератором демо-данных; семантика повторяет pgx-хранилище, включая
// ErrNotFound для отсутствующих записей.
type MemoryStore struct {
	mu            sync.Mutex
	nextID        int
	accounts      map[int]models.Account
	transactions  map[int]models.Transaction
	goals         map[int]models.Goal
	budgets       map[int]models.Budget
	debts         map[int]models.Debt
	requests      map[int]models.TransactionRequest
	notifications map[int]models.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:        1,
		accounts:      make(map[int]models.Account),
		transactions:  make(map[int]models.Transaction),
		goals:         make(map[int]models.Goal),
		budgets:       make(map[int]models.Budget),
		debts:         make(map[int]models.Debt),
		requests:      make(map[int]models.TransactionRequest),
		notifications: make(map[int]models.Notification),
	}
}

func (m *MemoryStore) allocID() int {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MemoryStore) CreateAccount(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account.ID = m.allocID()
	m.accounts[account.ID] = *account
	return nil
}

func (m *MemoryStore) GetAccountByID(_ context.Context, id int) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (m *MemoryStore) ListAccounts(_ context.Context, userID int) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateAccount(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return ErrNotFound
	}
	m.accounts[account.ID] = *account
	return nil
}

func (m *MemoryStore) DeleteAccount(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MemoryStore) CreateTransaction(_ context.Context, transaction *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	transaction.ID = m.allocID()
	m.transactions[transaction.ID] = *transaction
	return nil
}

func (m *MemoryStore) GetTransactionByID(_ context.Context, id int) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	transaction, ok := m.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &transaction, nil
}

func (m *MemoryStore) ListTransactions(_ context.Context, userID int) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, t := range m.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateTransaction(_ context.Context, transaction *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[transaction.ID]; !ok {
		return ErrNotFound
	}
	m.transactions[transaction.ID] = *transaction
	return nil
}

func (m *MemoryStore) DeleteTransaction(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return ErrNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MemoryStore) CreateGoal(_ context.Context, goal *models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal.ID = m.allocID()
	m.goals[goal.ID] = *goal
	return nil
}

func (m *MemoryStore) GetGoalByID(_ context.Context, id int) (*models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal, ok := m.goals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &goal, nil
}

func (m *MemoryStore) ListGoals(_ context.Context, userID int) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Goal
	for _, g := range m.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateGoal(_ context.Context, goal *models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[goal.ID]; !ok {
		return ErrNotFound
	}
	m.goals[goal.ID] = *goal
	return nil
}

func (m *MemoryStore) DeleteGoal(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[id]; !ok {
		return ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

func (m *MemoryStore) CreateBudget(_ context.Context, budget *models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	budget.ID = m.allocID()
	m.budgets[budget.ID] = *budget
	return nil
}

func (m *MemoryStore) GetBudgetByID(_ context.Context, id int) (*models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	budget, ok := m.budgets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &budget, nil
}

func (m *MemoryStore) ListBudgets(_ context.Context, userID int, monthKey string) ([]models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Budget
	for _, b := range m.budgets {
		if b.UserID == userID && (monthKey == "" || b.MonthKey == monthKey) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateBudget(_ context.Context, budget *models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.budgets[budget.ID]; !ok {
		return ErrNotFound
	}
	m.budgets[budget.ID] = *budget
	return nil
}

func (m *MemoryStore) DeleteBudget(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.budgets[id]; !ok {
		return ErrNotFound
	}
	delete(m.budgets, id)
	return nil
}

func (m *MemoryStore) CreateDebt(_ context.Context, debt *models.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	debt.ID = m.allocID()
	m.debts[debt.ID] = *debt
	return nil
}

func (m *MemoryStore) GetDebtByID(_ context.Context, id int) (*models.Debt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	debt, ok := m.debts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &debt, nil
}

func (m *MemoryStore) ListDebts(_ context.Context, userID int) ([]models.Debt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Debt
	for _, d := range m.debts {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateDebt(_ context.Context, debt *models.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.debts[debt.ID]; !ok {
		return ErrNotFound
	}
	m.debts[debt.ID] = *debt
	return nil
}

func (m *MemoryStore) DeleteDebt(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.debts[id]; !ok {
		return ErrNotFound
	}
	delete(m.debts, id)
	return nil
}

func (m *MemoryStore) FindLinkedDebt(_ context.Context, userID, senderUserID, parentDebtID int) (*models.Debt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *models.Debt
	for _, d := range m.debts {
		if d.UserID != userID {
			continue
		}
		byUser := d.LinkedUserID != nil && *d.LinkedUserID == senderUserID
		byParent := d.ParentDebtID != nil && *d.ParentDebtID == parentDebtID
		if byUser || byParent {
			d := d
			if found == nil || d.ID < found.ID {
				found = &d
			}
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (m *MemoryStore) CreateRequest(_ context.Context, request *models.TransactionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	request.ID = m.allocID()
	m.requests[request.ID] = *request
	return nil
}

func (m *MemoryStore) GetRequestByID(_ context.Context, id int) (*models.TransactionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	request, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &request, nil
}

func (m *MemoryStore) ListRequests(_ context.Context, receiverUserID int) ([]models.TransactionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.TransactionRequest
	for _, r := range m.requests {
		if r.ReceiverUserID == receiverUserID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateRequest(_ context.Context, request *models.TransactionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[request.ID]; !ok {
		return ErrNotFound
	}
	m.requests[request.ID] = *request
	return nil
}

func (m *MemoryStore) HasCompletedRequest(_ context.Context, relatedDebtID int, originTransactionID *int, transactionType string, amount float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.Status != models.RequestCompleted {
			continue
		}
		if r.RelatedDebtID != relatedDebtID || r.TransactionType != transactionType || r.Amount != amount {
			continue
		}
		sameOrigin := r.OriginTransactionID == nil && originTransactionID == nil ||
			r.OriginTransactionID != nil && originTransactionID != nil && *r.OriginTransactionID == *originTransactionID
		if sameOrigin {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) CreateNotification(_ context.Context, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification.ID = m.allocID()
	m.notifications[notification.ID] = *notification
	return nil
}

func (m *MemoryStore) ListNotifications(_ context.Context, userID int) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
