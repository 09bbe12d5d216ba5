package payments

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

// MercadoPagoGateway implements IPaymentGateway on top of the Mercado Pago
// SDK. Payments are created as PIX charges; the QR pair comes from the
// point_of_interaction block of the provider response.
//
// Mock mode (PAYMENT_GATEWAY_MOCK / MERCADOPAGO_MOCK) fabricates provider
// responses for local runs without credentials.

type MercadoPagoGateway struct {
	payments payment.Client
	refunds  refund.Client
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments: payment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, req interfaces.CreateGatewayPaymentRequest) (interfaces.GatewayPayment, error) {
	if g.mockMode {
		id := fmt.Sprintf("mp_%d", time.Now().UTC().UnixNano())
		qr := fmt.Sprintf("00020101021243650016COM.MERCADOLIBRE020130636%s5204000053039865802BR", id)
		log.Printf("[payment][gateway] mock create success gateway_payment_id=%s", id)
		return interfaces.GatewayPayment{
			ID:           id,
			Status:       interfaces.GatewayStatusPending,
			QRCode:       qr,
			QRCodeBase64: base64.StdEncoding.EncodeToString([]byte(qr)),
		}, nil
	}

	log.Printf("[payment][gateway] create start amount=%.2f external_reference=%s", req.Amount, req.ExternalReference)

	resp, err := g.payments.Create(ctx, payment.Request{
		TransactionAmount: req.Amount,
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.ExternalReference,
		Payer: &payment.PayerRequest{
			Email: getenvDefault("MERCADOPAGO_PAYER_EMAIL", "test_user_br@testuser.com"),
		},
	})
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return interfaces.GatewayPayment{}, &errs.GatewayError{Op: "create", Err: err}
	}
	log.Printf("[payment][gateway] create success gateway_payment_id=%d status=%s", resp.ID, resp.Status)

	return interfaces.GatewayPayment{
		ID:           strconv.Itoa(resp.ID),
		Status:       resp.Status,
		StatusDetail: resp.StatusDetail,
		QRCode:       resp.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: resp.PointOfInteraction.TransactionData.QRCodeBase64,
	}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, gatewayPaymentID string) (interfaces.GatewayPayment, error) {
	if g.mockMode {
		return interfaces.GatewayPayment{
			ID:           gatewayPaymentID,
			Status:       interfaces.GatewayStatusApproved,
			StatusDetail: "accredited",
		}, nil
	}

	id, err := strconv.Atoi(gatewayPaymentID)
	if err != nil {
		return interfaces.GatewayPayment{}, &errs.GatewayError{Op: "get", Err: err}
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk get failed gateway_payment_id=%s err=%v", gatewayPaymentID, err)
		return interfaces.GatewayPayment{}, &errs.GatewayError{Op: "get", Err: err}
	}

	return interfaces.GatewayPayment{
		ID:           strconv.Itoa(resp.ID),
		Status:       resp.Status,
		StatusDetail: resp.StatusDetail,
		QRCode:       resp.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: resp.PointOfInteraction.TransactionData.QRCodeBase64,
	}, nil
}

func (g *MercadoPagoGateway) RefundPayment(ctx context.Context, gatewayPaymentID string) error {
	if g.mockMode {
		log.Printf("[payment][gateway] mock refund success gateway_payment_id=%s", gatewayPaymentID)
		return nil
	}

	id, err := strconv.Atoi(gatewayPaymentID)
	if err != nil {
		return &errs.GatewayError{Op: "refund", Err: err}
	}

	if _, err := g.refunds.Create(ctx, id); err != nil {
		log.Printf("[payment][gateway] sdk refund failed gateway_payment_id=%s err=%v", gatewayPaymentID, err)
		return &errs.GatewayError{Op: "refund", Err: err}
	}

	log.Printf("[payment][gateway] refund success gateway_payment_id=%s", gatewayPaymentID)
	return nil
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
