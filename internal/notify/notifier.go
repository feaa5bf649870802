package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

// Notifier — канал оповещений поверх Postgres. Событие "таблица X
// изменилась" уходит через NOTIFY без полезной нагрузки: клиент в ответ
// перечитывает нужное подмножество из авторитетного хранилища, а не
// мерджит дельты. Пользовательские уведомления пишутся в таблицу
// notifications. Оба пути best-effort: ошибка доставки логируется и
// глотается, родительская операция леджера не падает.
type Notifier struct {
	pool  *pgxpool.Pool
	store ledger.NotificationStore
}

func New(pool *pgxpool.Pool, store ledger.NotificationStore) *Notifier {
	return &Notifier{pool: pool, store: store}
}

// ChangeEvent шлёт NOTIFY в канал пользователя. Полезная нагрузка —
// только имя таблицы, без гарантий по содержимому.
func (n *Notifier) ChangeEvent(ctx context.Context, userID int, table string) {
	channel := fmt.Sprintf("user_changes_%d", userID)
	if _, err := n.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, channel, table); err != nil {
		log.Printf("не удалось отправить событие изменения (%s, %s): %v", channel, table, err)
	}
}

// Notify записывает пользовательское уведомление. Fire-and-forget.
func (n *Notifier) Notify(ctx context.Context, userID int, message string) {
	notification := &models.Notification{UserID: userID, Message: message}
	if err := n.store.CreateNotification(ctx, notification); err != nil {
		log.Printf("не удалось создать уведомление для пользователя %d: %v", userID, err)
	}
}
