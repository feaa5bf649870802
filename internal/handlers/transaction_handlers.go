package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func CreateTransactionHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var transaction models.Transaction
		if err := c.ShouldBindJSON(&transaction); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат транзакции"})
			return
		}
		if err := svc.CreateTransaction(c.Request.Context(), &transaction); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, transaction)
	}
}

// Получение всех транзакций пользователя
func GetTransactionsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDQuery(c)
		if !ok {
			return
		}
		transactions, err := svc.Store().ListTransactions(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

// Обновление транзакции: запись заменяется целиком, производные эффекты
// откатываются и применяются заново внутри сервиса.
func UpdateTransactionHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var transaction models.Transaction
		if err := c.ShouldBindJSON(&transaction); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат транзакции"})
			return
		}
		transaction.ID = id
		if err := svc.UpdateTransaction(c.Request.Context(), &transaction); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

// Удаление транзакции
func DeleteTransactionHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.DeleteTransaction(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Транзакция удалена"})
	}
}
