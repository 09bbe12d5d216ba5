package entities

import (
	"strings"
	"time"

	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/domain/valueobjects"
)

// PaymentStatus represents the lifecycle of a payment collected against an
// approved budget.

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// paymentTransitions is the single source of truth for valid status moves.
// COMPLETED, FAILED and REFUNDED are terminal except COMPLETED -> REFUNDED.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:    {PaymentStatusProcessing, PaymentStatusFailed},
	PaymentStatusProcessing: {PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusCompleted:  {PaymentStatusRefunded},
	PaymentStatusFailed:     {},
	PaymentStatusRefunded:   {},
}

// Payment is the aggregate root for a gateway payment. Amount is a snapshot
// of the budget total taken at creation and never re-derived. Gateway id and
// QR fields are absent while PENDING and set together exactly once.
type Payment struct {
	BaseEntity
	BudgetID         string             `json:"budget_id"`
	Amount           valueobjects.Money `json:"amount"`
	Status           PaymentStatus      `json:"status"`
	GatewayPaymentID string             `json:"gateway_payment_id,omitempty"`
	QRCode           string             `json:"qr_code,omitempty"`
	QRCodeBase64     string             `json:"qr_code_base64,omitempty"`
	CompletedAt      *time.Time         `json:"completed_at,omitempty"`
	FailedAt         *time.Time         `json:"failed_at,omitempty"`
	RefundedAt       *time.Time         `json:"refunded_at,omitempty"`
	FailureReason    string             `json:"failure_reason,omitempty"`
}

// NewPayment creates a PENDING payment against a budget. Money already
// guarantees the amount is not negative; only zero is rejected here.
func NewPayment(id, budgetID string, amount valueobjects.Money) (*Payment, error) {
	if strings.TrimSpace(budgetID) == "" {
		return nil, errs.NewValidation("budget id is required")
	}
	if amount.IsZero() {
		return nil, errs.NewValidation("payment amount must be positive")
	}

	now := time.Now().UTC()
	return &Payment{
		BaseEntity: newBaseEntity(id, now),
		BudgetID:   budgetID,
		Amount:     amount,
		Status:     PaymentStatusPending,
	}, nil
}

func (p *Payment) validateTransition(next PaymentStatus) error {
	for _, allowed := range paymentTransitions[p.Status] {
		if allowed == next {
			return nil
		}
	}

	allowed := make([]string, 0, len(paymentTransitions[p.Status]))
	for _, s := range paymentTransitions[p.Status] {
		allowed = append(allowed, string(s))
	}
	return &errs.InvalidStatusTransitionError{
		Entity:    "payment",
		Current:   string(p.Status),
		Attempted: string(next),
		Allowed:   allowed,
	}
}

// SetGatewayData records the gateway payment id and QR pair and moves the
// payment to PROCESSING. Gated on the PENDING source state rather than the
// transition table: the same target is reachable nowhere else.
func (p *Payment) SetGatewayData(gatewayPaymentID, qrCode, qrCodeBase64 string) error {
	if p.Status != PaymentStatusPending {
		return &errs.InvalidStatusTransitionError{
			Entity:    "payment",
			Current:   string(p.Status),
			Attempted: string(PaymentStatusProcessing),
			Allowed:   []string{},
		}
	}

	now := time.Now().UTC()
	p.GatewayPaymentID = gatewayPaymentID
	p.QRCode = qrCode
	p.QRCodeBase64 = qrCodeBase64
	p.Status = PaymentStatusProcessing
	p.touch(now)
	return nil
}

// Complete moves the payment PROCESSING -> COMPLETED.
func (p *Payment) Complete() error {
	if err := p.validateTransition(PaymentStatusCompleted); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.Status = PaymentStatusCompleted
	p.CompletedAt = &now
	p.touch(now)
	return nil
}

// Fail moves the payment to FAILED from PENDING or PROCESSING, storing the
// caller-supplied reason as-is.
func (p *Payment) Fail(reason string) error {
	if err := p.validateTransition(PaymentStatusFailed); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.Status = PaymentStatusFailed
	p.FailedAt = &now
	p.FailureReason = reason
	p.touch(now)
	return nil
}

// Refund moves the payment COMPLETED -> REFUNDED.
func (p *Payment) Refund() error {
	if err := p.validateTransition(PaymentStatusRefunded); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.Status = PaymentStatusRefunded
	p.RefundedAt = &now
	p.touch(now)
	return nil
}

// IsInFinalState reports whether the payment reached a terminal status.
// Terminal state doubles as the webhook dedup key.
func (p *Payment) IsInFinalState() bool {
	return p.Status == PaymentStatusCompleted ||
		p.Status == PaymentStatusFailed ||
		p.Status == PaymentStatusRefunded
}

// CanBeRefunded reports whether a refund is currently allowed.
func (p *Payment) CanBeRefunded() bool {
	return p.Status == PaymentStatusCompleted
}
