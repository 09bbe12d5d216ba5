package handlers

import (
	"log"
	"net/http"

	request "oficina_billing/internal/adapter/http/dto/request"
	response "oficina_billing/internal/adapter/http/dto/response"
	"oficina_billing/internal/domain/entities"
	"oficina_billing/internal/usecase"
	"oficina_billing/internal/usecase/interfaces"
	"oficina_billing/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
	webhook usecase.IWebhookUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, webhook usecase.IWebhookUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc, webhook: webhook}
}

// CreatePayment initiates a payment for an approved budget.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.CreatePayment(c.Request.Context(), payload.BudgetID)
	if err != nil {
		log.Printf("[payment][handler] create failed budget_id=%s err=%v", payload.BudgetID, err)
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromPayment(payment))
}

// GetPayment returns a payment by id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// GetQRCode returns the PIX QR code for a processing payment.
func (h *PaymentHandler) GetQRCode(c *gin.Context) {
	payment, err := h.usecase.GetQRCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.QRCodeFromPayment(payment))
}

// ListPayments lists payments with optional budget_id/status/limit/offset
// query filters.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	filters := interfaces.PaymentFilters{
		BudgetID: c.Query("budget_id"),
		Status:   entities.PaymentStatus(c.Query("status")),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	}

	payments, total, err := h.usecase.List(c.Request.Context(), filters)
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments, total))
}

// RefundPayment refunds a completed payment through the gateway.
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	paymentID := c.Param("id")
	payment, err := h.usecase.Refund(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] refund failed payment_id=%s err=%v", paymentID, err)
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// Webhook receives gateway payment notifications. The response is 200
// regardless of whether the notification matched a known payment; the
// gateway retries on anything else.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload request.WebhookRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	notification := usecase.WebhookNotification{Action: payload.Action}
	notification.Data.ID = payload.Data.ID

	if err := h.webhook.Process(c.Request.Context(), notification); err != nil {
		log.Printf("[payment][handler] webhook failed action=%s gateway_payment_id=%s err=%v", payload.Action, payload.Data.ID, err)
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
