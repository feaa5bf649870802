package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func CreateDebtHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload struct {
			Debt        models.Debt         `json:"debt"`
			Transaction *models.Transaction `json:"transaction,omitempty"`
		}
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат долга"})
			return
		}
		var err error
		if payload.Transaction != nil {
			err = svc.CreateDebtWithTransaction(c.Request.Context(), &payload.Debt, payload.Transaction)
		} else {
			err = svc.CreateDebt(c.Request.Context(), &payload.Debt)
		}
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, payload.Debt)
	}
}

func GetDebtsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDQuery(c)
		if !ok {
			return
		}
		debts, err := svc.Store().ListDebts(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, debts)
	}
}

// Обновление метаданных долга. Остаток через этот маршрут не меняется.
func UpdateDebtHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var debt models.Debt
		if err := c.ShouldBindJSON(&debt); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат долга"})
			return
		}
		debt.ID = id
		if err := svc.UpdateDebtInfo(c.Request.Context(), &debt); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Долг обновлён"})
	}
}

func ArchiveDebtHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.ArchiveDebt(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Долг перенесён в архив"})
	}
}

func UnarchiveDebtHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.UnarchiveDebt(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Долг возвращён из архива"})
	}
}

func DeleteDebtHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.DeleteDebt(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Долг удалён"})
	}
}
