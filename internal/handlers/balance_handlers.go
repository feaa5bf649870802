package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
)

// Балансы нигде не хранятся и каждый раз выводятся из журнала транзакций.

func GetTotalBalanceHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDQuery(c)
		if !ok {
			return
		}
		currency := c.DefaultQuery("currency", "USD")
		balance, err := svc.TotalBalance(c.Request.Context(), userID, currency)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"balance": balance, "currency": currency})
	}
}

func GetAccountBalanceHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		balance, err := svc.AccountBalance(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"account_id": id, "balance": balance})
	}
}

// Месячная сводка: ?month=2006-01, опционально ?account_id=N.
func GetMonthSummaryHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDQuery(c)
		if !ok {
			return
		}
		month := c.DefaultQuery("month", time.Now().Format("2006-01"))
		currency := c.DefaultQuery("currency", "USD")
		var selectedAccountID *int
		if raw := c.Query("account_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный account_id"})
				return
			}
			selectedAccountID = &id
		}
		summary, err := svc.MonthSummary(c.Request.Context(), userID, month, currency, selectedAccountID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
