package usecase

import (
	"context"
	"log"

	"oficina_billing/internal/domain/entities"
	"oficina_billing/internal/usecase/interfaces"
)

// PaymentUpdatedAction is the only webhook action routed into
// reconciliation; everything else is ignored upstream and here.
const PaymentUpdatedAction = "payment.updated"

// WebhookNotification is the gateway's webhook envelope.
type WebhookNotification struct {
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// IWebhookUseCase reconciles asynchronous gateway status reports onto
// payment transitions.

type IWebhookUseCase interface {
	Process(ctx context.Context, notification WebhookNotification) error
}

// WebhookUseCase drives a payment through the transition reported by the
// gateway. Deliveries are at-least-once and unordered; the terminal state of
// the payment is the dedup key, so duplicates, stale reports and unknown ids
// are silent no-ops rather than errors.
type WebhookUseCase struct {
	repo       interfaces.IPaymentRepository
	budgetRepo interfaces.IBudgetRepository
	gateway    interfaces.IPaymentGateway
	publisher  interfaces.IEventPublisher
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(
	repo interfaces.IPaymentRepository,
	budgetRepo interfaces.IBudgetRepository,
	gateway interfaces.IPaymentGateway,
	publisher interfaces.IEventPublisher,
) *WebhookUseCase {
	return &WebhookUseCase{repo: repo, budgetRepo: budgetRepo, gateway: gateway, publisher: publisher}
}

func (u *WebhookUseCase) Process(ctx context.Context, notification WebhookNotification) error {
	log.Printf("[webhook][usecase] processing action=%s gateway_payment_id=%s", notification.Action, notification.Data.ID)

	if notification.Action != PaymentUpdatedAction {
		log.Printf("[webhook][usecase] ignoring action=%s", notification.Action)
		return nil
	}

	gatewayPayment, err := u.gateway.GetPayment(ctx, notification.Data.ID)
	if err != nil {
		return err
	}

	payment, err := u.repo.FindByGatewayID(ctx, gatewayPayment.ID)
	if err != nil {
		return err
	}
	if payment == nil {
		// Unsolicited or stale webhook; nothing to reconcile.
		log.Printf("[webhook][usecase] no payment for gateway_payment_id=%s", gatewayPayment.ID)
		return nil
	}

	if payment.IsInFinalState() {
		log.Printf("[webhook][usecase] payment already final payment_id=%s status=%s", payment.ID, payment.Status)
		return nil
	}

	switch gatewayPayment.Status {
	case interfaces.GatewayStatusApproved:
		return u.completePayment(ctx, payment)
	case interfaces.GatewayStatusRejected, interfaces.GatewayStatusCancelled:
		return u.failPayment(ctx, payment, failureReason(gatewayPayment))
	default:
		log.Printf("[webhook][usecase] ignoring gateway status=%s payment_id=%s", gatewayPayment.Status, payment.ID)
		return nil
	}
}

func (u *WebhookUseCase) completePayment(ctx context.Context, payment *entities.Payment) error {
	if err := payment.Complete(); err != nil {
		return err
	}
	if _, err := u.repo.Update(ctx, payment); err != nil {
		return err
	}

	serviceOrderID := ""
	budget, err := u.budgetRepo.FindByID(ctx, payment.BudgetID)
	if err != nil {
		return err
	}
	if budget == nil {
		// Data-integrity fault; publish a degraded event instead of poisoning
		// the webhook delivery.
		log.Printf("[webhook][usecase] budget missing for completed payment payment_id=%s budget_id=%s", payment.ID, payment.BudgetID)
	} else {
		serviceOrderID = budget.ServiceOrderID
	}

	if err := u.publisher.PublishPaymentCompleted(ctx, interfaces.PaymentCompletedEvent{
		PaymentID:      payment.ID,
		BudgetID:       payment.BudgetID,
		ServiceOrderID: serviceOrderID,
		CompletedAt:    *payment.CompletedAt,
	}); err != nil {
		return err
	}

	log.Printf("[webhook][usecase] payment completed payment_id=%s", payment.ID)
	return nil
}

func (u *WebhookUseCase) failPayment(ctx context.Context, payment *entities.Payment, reason string) error {
	if err := payment.Fail(reason); err != nil {
		return err
	}
	if _, err := u.repo.Update(ctx, payment); err != nil {
		return err
	}

	if err := u.publisher.PublishPaymentFailed(ctx, interfaces.PaymentFailedEvent{
		PaymentID: payment.ID,
		BudgetID:  payment.BudgetID,
		Reason:    reason,
		FailedAt:  *payment.FailedAt,
	}); err != nil {
		return err
	}

	log.Printf("[webhook][usecase] payment failed payment_id=%s reason=%q", payment.ID, reason)
	return nil
}

func failureReason(gatewayPayment interfaces.GatewayPayment) string {
	if gatewayPayment.StatusDetail != "" {
		return gatewayPayment.StatusDetail
	}
	if gatewayPayment.Status == interfaces.GatewayStatusCancelled {
		return "Payment cancelled"
	}
	return "Payment rejected"
}
