package database_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/database"
)

// Интеграционные тесты: нужна живая БД из .env. Без DATABASE_URL
// пропускаются, чтобы пакет собирался и гонялся в чистом окружении.
func testStore(t *testing.T) (*database.Store, *pgxpool.Pool) {
	t.Helper()
	_ = godotenv.Load()
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		t.Skip("БД не настроена, пропускаем интеграционный тест")
	}
	pool, err := database.ConnectDB(context.Background())
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := database.ApplyMigrations(context.Background(), pool, "../../migrations"); err != nil {
		t.Fatalf("ошибка применения миграций: %v", err)
	}
	return database.NewStore(pool), pool
}
