package interfaces

import "context"

// Gateway status vocabulary. Everything outside this set is treated as
// unrecognized and ignored by the reconciler.
const (
	GatewayStatusPending   = "pending"
	GatewayStatusApproved  = "approved"
	GatewayStatusRejected  = "rejected"
	GatewayStatusCancelled = "cancelled"
	GatewayStatusRefunded  = "refunded"
)

// CreateGatewayPaymentRequest is the charge request sent to the provider.
// Amount is in major units; the provider API works in decimal currency.
type CreateGatewayPaymentRequest struct {
	Amount            float64
	Description       string
	ExternalReference string
}

// GatewayPayment is the provider's view of a payment.
type GatewayPayment struct {
	ID           string
	Status       string
	StatusDetail string
	QRCode       string
	QRCodeBase64 string
}

// IPaymentGateway abstracts the external payment provider (Mercado Pago).

type IPaymentGateway interface {
	CreatePayment(ctx context.Context, req CreateGatewayPaymentRequest) (GatewayPayment, error)
	GetPayment(ctx context.Context, gatewayPaymentID string) (GatewayPayment, error)
	RefundPayment(ctx context.Context, gatewayPaymentID string) error
}
