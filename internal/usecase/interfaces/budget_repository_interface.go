package interfaces

import (
	"context"

	"oficina_billing/internal/domain/entities"
)

// BudgetFilters narrows FindAll results. Zero values mean "no filter".
type BudgetFilters struct {
	ServiceOrderID string
	Status         entities.BudgetStatus
	Limit          int
	Offset         int
}

// IBudgetRepository abstracts DynamoDB persistence for Budget.
//
// Contract:
//   - lookups return (nil, nil) when nothing matches
//   - Create must fail with errs.ConflictError when the budget id or the
//     service order already has a budget (conditional write, not a read check)

type IBudgetRepository interface {
	Create(ctx context.Context, b *entities.Budget) (*entities.Budget, error)
	FindByID(ctx context.Context, id string) (*entities.Budget, error)
	FindByServiceOrderID(ctx context.Context, serviceOrderID string) (*entities.Budget, error)
	FindByStatus(ctx context.Context, status entities.BudgetStatus) ([]*entities.Budget, error)
	FindAll(ctx context.Context, filters BudgetFilters) ([]*entities.Budget, int, error)
	Update(ctx context.Context, b *entities.Budget) (*entities.Budget, error)
}
