package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func CreateBudgetHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var budget models.Budget
		if err := c.ShouldBindJSON(&budget); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат бюджета"})
			return
		}
		if budget.Limit <= 0 {
			abortWithError(c, ledger.ErrAmountNotPositive)
			return
		}
		if err := svc.Store().CreateBudget(c.Request.Context(), &budget); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, budget)
	}
}

func GetBudgetsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDQuery(c)
		if !ok {
			return
		}
		budgets, err := svc.Store().ListBudgets(c.Request.Context(), userID, c.Query("month"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, budgets)
	}
}

// Потраченное по бюджету: считается из журнала на лету, не хранится.
func GetBudgetProgressHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		progress, err := svc.BudgetProgress(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, progress)
	}
}

func DeleteBudgetHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.Store().DeleteBudget(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Бюджет удалён"})
	}
}
