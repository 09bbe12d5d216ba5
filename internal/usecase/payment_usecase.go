package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"oficina_billing/internal/domain/entities"
	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// ErrBudgetNotApproved is the business-rule failure for charging a budget
// that is not APPROVED. Kept distinct from ConflictError on purpose: the
// caller sent a structurally valid request against the wrong budget state.
var ErrBudgetNotApproved = errors.New("budget must be approved before creating payment")

// IPaymentUseCase exposes the payment lifecycle against an approved budget.

type IPaymentUseCase interface {
	CreatePayment(ctx context.Context, budgetID string) (*entities.Payment, error)
	GetByID(ctx context.Context, paymentID string) (*entities.Payment, error)
	GetQRCode(ctx context.Context, paymentID string) (*entities.Payment, error)
	Refund(ctx context.Context, paymentID string) (*entities.Payment, error)
	List(ctx context.Context, filters interfaces.PaymentFilters) ([]*entities.Payment, int, error)
}

type PaymentUseCase struct {
	repo       interfaces.IPaymentRepository
	budgetRepo interfaces.IBudgetRepository
	gateway    interfaces.IPaymentGateway
	publisher  interfaces.IEventPublisher
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	budgetRepo interfaces.IBudgetRepository,
	gateway interfaces.IPaymentGateway,
	publisher interfaces.IEventPublisher,
) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, budgetRepo: budgetRepo, gateway: gateway, publisher: publisher}
}

// CreatePayment charges an approved budget: persists a PENDING payment with
// the budget's amount snapshot, creates the gateway charge, records the
// gateway id + QR data (PENDING -> PROCESSING) and publishes
// PaymentInitiated. Persist always precedes publish.
func (u *PaymentUseCase) CreatePayment(ctx context.Context, budgetID string) (*entities.Payment, error) {
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return nil, errs.NewValidation("budget id is required")
	}
	log.Printf("[payment][usecase] create start budget_id=%s", budgetID)

	budget, err := u.budgetRepo.FindByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, &errs.NotFoundError{Resource: "budget", ID: budgetID}
	}
	if budget.Status != entities.BudgetStatusApproved {
		log.Printf("[payment][usecase] budget not approved budget_id=%s status=%s", budgetID, budget.Status)
		return nil, ErrBudgetNotApproved
	}

	existing, err := u.repo.FindByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &errs.ConflictError{Resource: "payment", Key: "budget " + budgetID}
	}

	payment, err := entities.NewPayment(uuid.NewString(), budgetID, budget.TotalAmount)
	if err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}

	gatewayPayment, err := u.gateway.CreatePayment(ctx, interfaces.CreateGatewayPaymentRequest{
		Amount:            budget.TotalAmount.MajorAmount(),
		Description:       fmt.Sprintf("Payment for budget %s", budget.ID),
		ExternalReference: created.ID,
	})
	if err != nil {
		log.Printf("[payment][usecase] gateway create failed budget_id=%s payment_id=%s err=%v", budgetID, created.ID, err)
		return nil, err
	}

	if err := created.SetGatewayData(gatewayPayment.ID, gatewayPayment.QRCode, gatewayPayment.QRCodeBase64); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, created)
	if err != nil {
		return nil, err
	}
	log.Printf("[payment][usecase] create success budget_id=%s payment_id=%s gateway_payment_id=%s", budgetID, updated.ID, updated.GatewayPaymentID)

	if err := u.publisher.PublishPaymentInitiated(ctx, interfaces.PaymentInitiatedEvent{
		PaymentID:     updated.ID,
		BudgetID:      updated.BudgetID,
		AmountInCents: updated.Amount.Amount(),
		Currency:      updated.Amount.Currency(),
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, paymentID string) (*entities.Payment, error) {
	return u.findByID(ctx, paymentID)
}

// GetQRCode returns the payment holding the QR pair. The handler extracts
// the fields; PENDING payments have no gateway data yet.
func (u *PaymentUseCase) GetQRCode(ctx context.Context, paymentID string) (*entities.Payment, error) {
	return u.findByID(ctx, paymentID)
}

// Refund refunds a COMPLETED payment at the gateway and then transitions the
// aggregate. Gateway first: if the provider refuses there is nothing to
// persist.
func (u *PaymentUseCase) Refund(ctx context.Context, paymentID string) (*entities.Payment, error) {
	payment, err := u.findByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if !payment.CanBeRefunded() {
		return nil, &errs.InvalidStatusTransitionError{
			Entity:    "payment",
			Current:   string(payment.Status),
			Attempted: string(entities.PaymentStatusRefunded),
			Allowed:   []string{},
		}
	}

	if err := u.gateway.RefundPayment(ctx, payment.GatewayPaymentID); err != nil {
		log.Printf("[payment][usecase] gateway refund failed payment_id=%s err=%v", payment.ID, err)
		return nil, err
	}

	if err := payment.Refund(); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, payment)
	if err != nil {
		return nil, err
	}
	log.Printf("[payment][usecase] refunded payment_id=%s budget_id=%s", updated.ID, updated.BudgetID)

	return updated, nil
}

func (u *PaymentUseCase) List(ctx context.Context, filters interfaces.PaymentFilters) ([]*entities.Payment, int, error) {
	return u.repo.FindAll(ctx, filters)
}

func (u *PaymentUseCase) findByID(ctx context.Context, paymentID string) (*entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, errs.NewValidation("payment id is required")
	}

	payment, err := u.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, &errs.NotFoundError{Resource: "payment", ID: paymentID}
	}
	return payment, nil
}
