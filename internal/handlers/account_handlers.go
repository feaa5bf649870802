package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func CreateAccountHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var account models.Account
		if err := c.ShouldBindJSON(&account); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат счёта"})
			return
		}
		if account.Name == "" {
			abortWithError(c, ledger.ErrMissingName)
			return
		}
		if err := svc.Store().CreateAccount(c.Request.Context(), &account); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, account)
	}
}

func GetAccountsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDQuery(c)
		if !ok {
			return
		}
		accounts, err := svc.Store().ListAccounts(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, accounts)
	}
}

func UpdateAccountHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var account models.Account
		if err := c.ShouldBindJSON(&account); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат счёта"})
			return
		}
		account.ID = id
		if err := svc.Store().UpdateAccount(c.Request.Context(), &account); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

func DeleteAccountHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.Store().DeleteAccount(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Счёт удалён"})
	}
}
