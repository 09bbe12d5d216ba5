package request

// BudgetItemRequest is one line of a budget creation payload. Validation of
// the business rules (blank description, non-positive quantity, currency
// mix) belongs to the domain; binding only enforces presence.
type BudgetItemRequest struct {
	Description      string `json:"description" binding:"required"`
	Quantity         int    `json:"quantity" binding:"required"`
	UnitPriceInCents int64  `json:"unit_price_in_cents" binding:"required"`
	Currency         string `json:"currency"`
}

type CreateBudgetRequest struct {
	ServiceOrderID string              `json:"service_order_id" binding:"required"`
	Items          []BudgetItemRequest `json:"items" binding:"required"`
}

type RejectBudgetRequest struct {
	Reason string `json:"reason"`
}
