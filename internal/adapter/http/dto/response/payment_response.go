package response

import (
	"time"

	"oficina_billing/internal/domain/entities"
)

type PaymentResponse struct {
	ID               string     `json:"id"`
	BudgetID         string     `json:"budget_id"`
	AmountInCents    int64      `json:"amount_in_cents"`
	Amount           string     `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	QRCode           string     `json:"qr_code,omitempty"`
	QRCodeBase64     string     `json:"qr_code_base64,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	FailedAt         *time.Time `json:"failed_at,omitempty"`
	RefundedAt       *time.Time `json:"refunded_at,omitempty"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}

type QRCodeResponse struct {
	PaymentID    string `json:"payment_id"`
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
}

func FromPayment(p *entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		BudgetID:         p.BudgetID,
		AmountInCents:    p.Amount.Amount(),
		Amount:           p.Amount.Format(),
		Currency:         p.Amount.Currency(),
		Status:           string(p.Status),
		GatewayPaymentID: p.GatewayPaymentID,
		QRCode:           p.QRCode,
		QRCodeBase64:     p.QRCodeBase64,
		CompletedAt:      p.CompletedAt,
		FailedAt:         p.FailedAt,
		RefundedAt:       p.RefundedAt,
		FailureReason:    p.FailureReason,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func FromPayments(payments []*entities.Payment, total int) PaymentListResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return PaymentListResponse{Payments: out, Total: total}
}

func QRCodeFromPayment(p *entities.Payment) QRCodeResponse {
	return QRCodeResponse{
		PaymentID:    p.ID,
		QRCode:       p.QRCode,
		QRCodeBase64: p.QRCodeBase64,
	}
}
