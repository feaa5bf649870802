package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/handlers"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
)

func SetupRouter(svc *ledger.Service) *gin.Engine {
	r := gin.Default()
	r.Use(CORSMiddleware())

	api := r.Group("/api")

	api.POST("/accounts", handlers.CreateAccountHandler(svc))
	api.GET("/accounts", handlers.GetAccountsHandler(svc))
	api.PUT("/accounts/:id", handlers.UpdateAccountHandler(svc))
	api.DELETE("/accounts/:id", handlers.DeleteAccountHandler(svc))
	api.GET("/accounts/:id/balance", handlers.GetAccountBalanceHandler(svc))

	api.POST("/transactions", handlers.CreateTransactionHandler(svc))
	api.GET("/transactions", handlers.GetTransactionsHandler(svc))
	api.PUT("/transactions/:id", handlers.UpdateTransactionHandler(svc))
	api.DELETE("/transactions/:id", handlers.DeleteTransactionHandler(svc))

	api.GET("/balance", handlers.GetTotalBalanceHandler(svc))
	api.GET("/summary", handlers.GetMonthSummaryHandler(svc))

	api.POST("/goals", handlers.CreateGoalHandler(svc))
	api.GET("/goals", handlers.GetGoalsHandler(svc))
	api.DELETE("/goals/:id", handlers.DeleteGoalHandler(svc))

	api.POST("/budgets", handlers.CreateBudgetHandler(svc))
	api.GET("/budgets", handlers.GetBudgetsHandler(svc))
	api.GET("/budgets/:id/progress", handlers.GetBudgetProgressHandler(svc))
	api.DELETE("/budgets/:id", handlers.DeleteBudgetHandler(svc))

	api.POST("/debts", handlers.CreateDebtHandler(svc))
	api.GET("/debts", handlers.GetDebtsHandler(svc))
	api.PUT("/debts/:id", handlers.UpdateDebtHandler(svc))
	api.POST("/debts/:id/archive", handlers.ArchiveDebtHandler(svc))
	api.POST("/debts/:id/unarchive", handlers.UnarchiveDebtHandler(svc))
	api.DELETE("/debts/:id", handlers.DeleteDebtHandler(svc))

	api.GET("/requests", handlers.GetRequestsHandler(svc))
	api.POST("/requests/:id/accept", handlers.AcceptRequestHandler(svc))
	api.POST("/requests/:id/reject", handlers.RejectRequestHandler(svc))

	api.GET("/notifications", handlers.GetNotificationsHandler(svc))

	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}
