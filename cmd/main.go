package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/database"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/notify"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/routes"
	"github.com/valeriaulyamaeva/personal-finance-ledger/utils"
)

// Ежедневное напоминание о долгах, срок которых наступает сегодня,
// завтра и через неделю.
func ScheduleDueDebtReminders(store *database.Store, notifier *notify.Notifier) {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		ctx := context.Background()
		for _, offset := range []int{7, 1, 0} {
			debts, err := store.ListDebtsDueOn(ctx, offset)
			if err != nil {
				log.Printf("Ошибка выборки долгов по сроку: %v", err)
				continue
			}
			for _, debt := range debts {
				notifier.Notify(ctx, debt.UserID,
					fmt.Sprintf("Срок долга (%s, %.2f %s) наступает через %d дн.", debt.Person, debt.CurrentAmount, debt.Currency, offset))
			}
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи напоминаний о долгах: %v", err)
	}
	c.Start()
}

// Ежечасное обновление кеша курсов, чтобы первый запрос после простоя
// не ждал похода на API.
func ScheduleRateRefresh(rates *utils.RateSource) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		if _, err := rates.Rates(); err != nil {
			log.Printf("Ошибка обновления курсов валют: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи обновления курсов: %v", err)
	}
	c.Start()
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не найден: %v", err)
	}

	ctx := context.Background()
	pool, err := database.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	if err := database.ApplyMigrations(ctx, pool, "migrations"); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	store := database.NewStore(pool)
	rates := utils.NewRateSource()
	notifier := notify.New(pool, store)
	svc := ledger.NewService(store, rates, notifier)

	ScheduleRateRefresh(rates)
	ScheduleDueDebtReminders(store, notifier)

	r := routes.SetupRouter(svc)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
