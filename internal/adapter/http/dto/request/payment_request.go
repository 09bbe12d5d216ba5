package request

type CreatePaymentRequest struct {
	BudgetID string `json:"budget_id" binding:"required"`
}

// WebhookRequest is the gateway notification envelope. Only
// action == "payment.updated" is routed into reconciliation.
type WebhookRequest struct {
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}
