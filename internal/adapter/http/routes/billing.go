package routes

import (
	"oficina_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathBudgets  = "/budgets"
	PathPayments = "/payments"
)

func addBillingRoutes(rg *gin.RouterGroup, budgetHandler *handlers.BudgetHandler, paymentHandler *handlers.PaymentHandler) {
	budgets := rg.Group(PathBudgets)
	{
		budgets.POST("", budgetHandler.CreateBudget)
		budgets.GET("", budgetHandler.ListBudgets)
		budgets.GET("/:id", budgetHandler.GetBudget)
		budgets.PATCH("/:id/approve", budgetHandler.ApproveBudget)
		budgets.PATCH("/:id/reject", budgetHandler.RejectBudget)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("", paymentHandler.ListPayments)
		payments.GET("/:id", paymentHandler.GetPayment)
		payments.GET("/:id/qr-code", paymentHandler.GetQRCode)
		payments.POST("/:id/refund", paymentHandler.RefundPayment)
		payments.POST("/webhook", paymentHandler.Webhook)
	}
}
