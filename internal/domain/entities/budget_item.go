package entities

import (
	"strings"

	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/domain/valueobjects"
)

// BudgetItem is a validated line item inside a Budget. The total price is
// derived from the unit price at construction and never settable on its own.
type BudgetItem struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Quantity    int                `json:"quantity"`
	UnitPrice   valueobjects.Money `json:"unit_price"`
	TotalPrice  valueobjects.Money `json:"total_price"`
}

// NewBudgetItem builds a line item. Blank descriptions and non-positive
// quantities are rejected.
func NewBudgetItem(description string, quantity int, unitPrice valueobjects.Money) (BudgetItem, error) {
	if strings.TrimSpace(description) == "" {
		return BudgetItem{}, errs.NewValidation("description cannot be empty")
	}
	if quantity <= 0 {
		return BudgetItem{}, errs.NewValidation("quantity must be positive")
	}

	total, err := unitPrice.Multiply(float64(quantity))
	if err != nil {
		return BudgetItem{}, err
	}

	return BudgetItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  total,
	}, nil
}

// Equals is structural on description, quantity and unit price; identity is
// ignored.
func (i BudgetItem) Equals(other BudgetItem) bool {
	return i.Description == other.Description &&
		i.Quantity == other.Quantity &&
		i.UnitPrice.Equals(other.UnitPrice)
}
