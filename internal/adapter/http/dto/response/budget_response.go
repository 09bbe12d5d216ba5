package response

import (
	"time"

	"oficina_billing/internal/domain/entities"
)

type BudgetItemResponse struct {
	Description       string `json:"description"`
	Quantity          int    `json:"quantity"`
	UnitPriceInCents  int64  `json:"unit_price_in_cents"`
	TotalPriceInCents int64  `json:"total_price_in_cents"`
	Currency          string `json:"currency"`
}

type BudgetResponse struct {
	ID                 string               `json:"id"`
	ServiceOrderID     string               `json:"service_order_id"`
	TotalAmountInCents int64                `json:"total_amount_in_cents"`
	TotalAmount        string               `json:"total_amount"`
	Currency           string               `json:"currency"`
	Status             string               `json:"status"`
	Items              []BudgetItemResponse `json:"items"`
	ApprovedAt         *time.Time           `json:"approved_at,omitempty"`
	RejectedAt         *time.Time           `json:"rejected_at,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
	Total   int              `json:"total"`
}

func FromBudget(b *entities.Budget) BudgetResponse {
	items := make([]BudgetItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, BudgetItemResponse{
			Description:       item.Description,
			Quantity:          item.Quantity,
			UnitPriceInCents:  item.UnitPrice.Amount(),
			TotalPriceInCents: item.TotalPrice.Amount(),
			Currency:          item.UnitPrice.Currency(),
		})
	}

	return BudgetResponse{
		ID:                 b.ID,
		ServiceOrderID:     b.ServiceOrderID,
		TotalAmountInCents: b.TotalAmount.Amount(),
		TotalAmount:        b.TotalAmount.Format(),
		Currency:           b.TotalAmount.Currency(),
		Status:             string(b.Status),
		Items:              items,
		ApprovedAt:         b.ApprovedAt,
		RejectedAt:         b.RejectedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func FromBudgets(budgets []*entities.Budget, total int) BudgetListResponse {
	out := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, FromBudget(b))
	}
	return BudgetListResponse{Budgets: out, Total: total}
}
