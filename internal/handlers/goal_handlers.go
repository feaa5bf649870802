package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func CreateGoalHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var goal models.Goal
		if err := c.ShouldBindJSON(&goal); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат цели"})
			return
		}
		if err := svc.CreateGoal(c.Request.Context(), &goal); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, goal)
	}
}

func GetGoalsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDQuery(c)
		if !ok {
			return
		}
		goals, err := svc.Store().ListGoals(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, goals)
	}
}

func DeleteGoalHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.Store().DeleteGoal(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Цель удалена"})
	}
}
