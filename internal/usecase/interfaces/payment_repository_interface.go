package interfaces

import (
	"context"

	"oficina_billing/internal/domain/entities"
)

// PaymentFilters narrows FindAll results. Zero values mean "no filter".
type PaymentFilters struct {
	BudgetID string
	Status   entities.PaymentStatus
	Limit    int
	Offset   int
}

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// Contract mirrors IBudgetRepository: lookups return (nil, nil) on miss and
// Create surfaces duplicates as errs.ConflictError.

type IPaymentRepository interface {
	Create(ctx context.Context, p *entities.Payment) (*entities.Payment, error)
	FindByID(ctx context.Context, id string) (*entities.Payment, error)
	FindByBudgetID(ctx context.Context, budgetID string) (*entities.Payment, error)
	FindByGatewayID(ctx context.Context, gatewayPaymentID string) (*entities.Payment, error)
	FindByStatus(ctx context.Context, status entities.PaymentStatus) ([]*entities.Payment, error)
	FindAll(ctx context.Context, filters PaymentFilters) ([]*entities.Payment, int, error)
	Update(ctx context.Context, p *entities.Payment) (*entities.Payment, error)
}
