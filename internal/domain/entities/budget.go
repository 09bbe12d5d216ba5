package entities

import (
	"time"

	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/domain/valueobjects"
)

// BudgetStatus represents the approval lifecycle of a service-order budget.

type BudgetStatus string

const (
	BudgetStatusPending  BudgetStatus = "PENDING"
	BudgetStatusApproved BudgetStatus = "APPROVED"
	BudgetStatusRejected BudgetStatus = "REJECTED"
)

// budgetTransitions is the single source of truth for valid status moves.
// APPROVED and REJECTED are terminal.
var budgetTransitions = map[BudgetStatus][]BudgetStatus{
	BudgetStatusPending:  {BudgetStatusApproved, BudgetStatusRejected},
	BudgetStatusApproved: {},
	BudgetStatusRejected: {},
}

// Budget is the aggregate root for a service-order budget. One budget is
// expected per service order; that uniqueness is enforced at the use-case
// boundary backed by a conditional write, not here.
type Budget struct {
	BaseEntity
	ServiceOrderID string             `json:"service_order_id"`
	TotalAmount    valueobjects.Money `json:"total_amount"`
	Status         BudgetStatus       `json:"status"`
	Items          []BudgetItem       `json:"items"`
	ApprovedAt     *time.Time         `json:"approved_at,omitempty"`
	RejectedAt     *time.Time         `json:"rejected_at,omitempty"`
}

// NewBudget creates a PENDING budget. The total is the fold of each item
// total starting from zero in the first item's currency, so a mixed-currency
// item set fails with a CurrencyMismatchError.
func NewBudget(id, serviceOrderID string, items []BudgetItem) (*Budget, error) {
	if len(items) == 0 {
		return nil, errs.NewValidation("budget must have at least one item")
	}

	total, err := valueobjects.NewMoney(0, items[0].TotalPrice.Currency())
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		total, err = total.Add(item.TotalPrice)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	return &Budget{
		BaseEntity:     newBaseEntity(id, now),
		ServiceOrderID: serviceOrderID,
		TotalAmount:    total,
		Status:         BudgetStatusPending,
		Items:          items,
	}, nil
}

func (b *Budget) validateTransition(next BudgetStatus) error {
	for _, allowed := range budgetTransitions[b.Status] {
		if allowed == next {
			return nil
		}
	}

	allowed := make([]string, 0, len(budgetTransitions[b.Status]))
	for _, s := range budgetTransitions[b.Status] {
		allowed = append(allowed, string(s))
	}
	return &errs.InvalidStatusTransitionError{
		Entity:    "budget",
		Current:   string(b.Status),
		Attempted: string(next),
		Allowed:   allowed,
	}
}

// Approve moves the budget PENDING -> APPROVED.
func (b *Budget) Approve() error {
	if err := b.validateTransition(BudgetStatusApproved); err != nil {
		return err
	}
	now := time.Now().UTC()
	b.Status = BudgetStatusApproved
	b.ApprovedAt = &now
	b.touch(now)
	return nil
}

// Reject moves the budget PENDING -> REJECTED.
func (b *Budget) Reject() error {
	if err := b.validateTransition(BudgetStatusRejected); err != nil {
		return err
	}
	now := time.Now().UTC()
	b.Status = BudgetStatusRejected
	b.RejectedAt = &now
	b.touch(now)
	return nil
}

// IsInFinalState reports whether no further transitions are allowed.
func (b *Budget) IsInFinalState() bool {
	return b.Status != BudgetStatusPending
}

// CanBeModified reports whether the budget still accepts changes.
func (b *Budget) CanBeModified() bool {
	return b.Status == BudgetStatusPending
}
