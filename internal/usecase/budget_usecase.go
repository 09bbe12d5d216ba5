package usecase

import (
	"context"
	"log"
	"strings"

	"oficina_billing/internal/domain/entities"
	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/domain/valueobjects"
	"oficina_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// BudgetItemInput is the transport-agnostic line item accepted by
// CreateBudget.
type BudgetItemInput struct {
	Description      string
	Quantity         int
	UnitPriceInCents int64
	Currency         string
}

// IBudgetUseCase exposes the budget approval workflow:
//   - order ingestion / manual request => CreateBudget (one per service order)
//   - decision maker => Approve / Reject
//   - reads => GetByID / GetByServiceOrderID / List

type IBudgetUseCase interface {
	CreateBudget(ctx context.Context, serviceOrderID string, items []BudgetItemInput) (*entities.Budget, error)
	Approve(ctx context.Context, budgetID string) (*entities.Budget, error)
	Reject(ctx context.Context, budgetID, reason string) (*entities.Budget, error)
	GetByID(ctx context.Context, budgetID string) (*entities.Budget, error)
	GetByServiceOrderID(ctx context.Context, serviceOrderID string) (*entities.Budget, error)
	List(ctx context.Context, filters interfaces.BudgetFilters) ([]*entities.Budget, int, error)
}

type BudgetUseCase struct {
	repo      interfaces.IBudgetRepository
	publisher interfaces.IEventPublisher
}

var _ IBudgetUseCase = (*BudgetUseCase)(nil)

func NewBudgetUseCase(repo interfaces.IBudgetRepository, publisher interfaces.IEventPublisher) *BudgetUseCase {
	return &BudgetUseCase{repo: repo, publisher: publisher}
}

// CreateBudget creates a PENDING budget for a service order and publishes
// BudgetGenerated. The read check gives a fast ConflictError for the common
// duplicate; the repository's conditional write closes the remaining race.
func (u *BudgetUseCase) CreateBudget(ctx context.Context, serviceOrderID string, items []BudgetItemInput) (*entities.Budget, error) {
	serviceOrderID = strings.TrimSpace(serviceOrderID)
	if serviceOrderID == "" {
		return nil, errs.NewValidation("service order id is required")
	}

	existing, err := u.repo.FindByServiceOrderID(ctx, serviceOrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &errs.ConflictError{Resource: "budget", Key: "service order " + serviceOrderID}
	}

	domainItems := make([]entities.BudgetItem, 0, len(items))
	for _, in := range items {
		currency := in.Currency
		if currency == "" {
			currency = valueobjects.DefaultCurrency
		}
		unitPrice, err := valueobjects.NewMoney(in.UnitPriceInCents, currency)
		if err != nil {
			return nil, err
		}
		item, err := entities.NewBudgetItem(in.Description, in.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		domainItems = append(domainItems, item)
	}

	budget, err := entities.NewBudget(uuid.NewString(), serviceOrderID, domainItems)
	if err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, budget)
	if err != nil {
		return nil, err
	}
	log.Printf("[budget][usecase] created budget_id=%s service_order_id=%s total=%s", created.ID, created.ServiceOrderID, created.TotalAmount)

	if err := u.publisher.PublishBudgetGenerated(ctx, interfaces.BudgetGeneratedEvent{
		BudgetID:           created.ID,
		ServiceOrderID:     created.ServiceOrderID,
		TotalAmountInCents: created.TotalAmount.Amount(),
		Currency:           created.TotalAmount.Currency(),
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// Approve moves a budget to APPROVED and publishes BudgetApproved.
func (u *BudgetUseCase) Approve(ctx context.Context, budgetID string) (*entities.Budget, error) {
	budget, err := u.findByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	if err := budget.Approve(); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, budget)
	if err != nil {
		return nil, err
	}
	log.Printf("[budget][usecase] approved budget_id=%s service_order_id=%s", updated.ID, updated.ServiceOrderID)

	if err := u.publisher.PublishBudgetApproved(ctx, interfaces.BudgetApprovedEvent{
		BudgetID:       updated.ID,
		ServiceOrderID: updated.ServiceOrderID,
		ApprovedAt:     *updated.ApprovedAt,
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// Reject moves a budget to REJECTED and publishes BudgetRejected with the
// caller-supplied reason.
func (u *BudgetUseCase) Reject(ctx context.Context, budgetID, reason string) (*entities.Budget, error) {
	budget, err := u.findByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	if err := budget.Reject(); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, budget)
	if err != nil {
		return nil, err
	}
	log.Printf("[budget][usecase] rejected budget_id=%s service_order_id=%s reason=%q", updated.ID, updated.ServiceOrderID, reason)

	if err := u.publisher.PublishBudgetRejected(ctx, interfaces.BudgetRejectedEvent{
		BudgetID:       updated.ID,
		ServiceOrderID: updated.ServiceOrderID,
		Reason:         reason,
		RejectedAt:     *updated.RejectedAt,
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

func (u *BudgetUseCase) GetByID(ctx context.Context, budgetID string) (*entities.Budget, error) {
	return u.findByID(ctx, budgetID)
}

func (u *BudgetUseCase) GetByServiceOrderID(ctx context.Context, serviceOrderID string) (*entities.Budget, error) {
	serviceOrderID = strings.TrimSpace(serviceOrderID)
	if serviceOrderID == "" {
		return nil, errs.NewValidation("service order id is required")
	}

	budget, err := u.repo.FindByServiceOrderID(ctx, serviceOrderID)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, &errs.NotFoundError{Resource: "budget for service order", ID: serviceOrderID}
	}
	return budget, nil
}

func (u *BudgetUseCase) List(ctx context.Context, filters interfaces.BudgetFilters) ([]*entities.Budget, int, error) {
	return u.repo.FindAll(ctx, filters)
}

func (u *BudgetUseCase) findByID(ctx context.Context, budgetID string) (*entities.Budget, error) {
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return nil, errs.NewValidation("budget id is required")
	}

	budget, err := u.repo.FindByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, &errs.NotFoundError{Resource: "budget", ID: budgetID}
	}
	return budget, nil
}
