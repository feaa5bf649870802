package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Listener — принимающая сторона канала изменений: LISTEN на канале
// пользователя и вызов колбэка на каждое событие. Событие несёт только
// имя таблицы; обработчик должен перечитать данные сам.
type Listener struct {
	pool    *pgxpool.Pool
	userID  int
	handler func(table string)
}

func NewListener(pool *pgxpool.Pool, userID int, handler func(table string)) *Listener {
	return &Listener{pool: pool, userID: userID, handler: handler}
}

// Run держит выделенное соединение и слушает до отмены контекста.
func (l *Listener) Run(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения соединения для LISTEN: %w", err)
	}
	defer conn.Release()

	channel := fmt.Sprintf("user_changes_%d", l.userID)
	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		return fmt.Errorf("ошибка подписки на канал %s: %w", channel, err)
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("ошибка ожидания события: %w", err)
		}
		log.Printf("изменение для пользователя %d: таблица %s", l.userID, notification.Payload)
		l.handler(notification.Payload)
	}
}
