package interfaces

import (
	"context"
	"time"
)

// Event payloads published to the event bus. Field names follow the
// EventBridge contract consumed by the OS service.

type BudgetGeneratedEvent struct {
	BudgetID           string `json:"budgetId"`
	ServiceOrderID     string `json:"serviceOrderId"`
	TotalAmountInCents int64  `json:"totalAmountInCents"`
	Currency           string `json:"currency"`
}

type BudgetApprovedEvent struct {
	BudgetID       string    `json:"budgetId"`
	ServiceOrderID string    `json:"serviceOrderId"`
	ApprovedAt     time.Time `json:"approvedAt"`
}

type BudgetRejectedEvent struct {
	BudgetID       string    `json:"budgetId"`
	ServiceOrderID string    `json:"serviceOrderId"`
	Reason         string    `json:"reason"`
	RejectedAt     time.Time `json:"rejectedAt"`
}

type PaymentInitiatedEvent struct {
	PaymentID     string `json:"paymentId"`
	BudgetID      string `json:"budgetId"`
	AmountInCents int64  `json:"amountInCents"`
	Currency      string `json:"currency"`
}

type PaymentCompletedEvent struct {
	PaymentID      string    `json:"paymentId"`
	BudgetID       string    `json:"budgetId"`
	ServiceOrderID string    `json:"serviceOrderId"`
	CompletedAt    time.Time `json:"completedAt"`
}

type PaymentFailedEvent struct {
	PaymentID string    `json:"paymentId"`
	BudgetID  string    `json:"budgetId"`
	Reason    string    `json:"reason"`
	FailedAt  time.Time `json:"failedAt"`
}

// IEventPublisher abstracts the event bus. Publishing always happens after a
// successful persist; a publish failure surfaces synchronously as
// errs.PublishError and is never retried here.

type IEventPublisher interface {
	PublishBudgetGenerated(ctx context.Context, event BudgetGeneratedEvent) error
	PublishBudgetApproved(ctx context.Context, event BudgetApprovedEvent) error
	PublishBudgetRejected(ctx context.Context, event BudgetRejectedEvent) error
	PublishPaymentInitiated(ctx context.Context, event PaymentInitiatedEvent) error
	PublishPaymentCompleted(ctx context.Context, event PaymentCompletedEvent) error
	PublishPaymentFailed(ctx context.Context, event PaymentFailedEvent) error
}
