package entities

import (
	"errors"
	"testing"

	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/domain/valueobjects"
)

func pendingPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment("payment-1", "budget-1", brl(t, 25000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func processingPayment(t *testing.T) *Payment {
	t.Helper()
	p := pendingPayment(t)
	if err := p.SetGatewayData("mp-123", "qr-data", "qr-base64"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("starts pending without gateway data", func(t *testing.T) {
		p := pendingPayment(t)
		if p.Status != PaymentStatusPending {
			t.Fatalf("expected PENDING, got %s", p.Status)
		}
		if p.GatewayPaymentID != "" || p.QRCode != "" || p.QRCodeBase64 != "" {
			t.Fatalf("gateway data must start empty")
		}
	})

	t.Run("blank budget id rejected", func(t *testing.T) {
		_, err := NewPayment("payment-1", "  ", brl(t, 100))
		var validation *errs.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		zero, err := valueobjects.NewBRL(0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = NewPayment("payment-1", "budget-1", zero)
		var validation *errs.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestPayment_SetGatewayData(t *testing.T) {
	t.Run("pending to processing", func(t *testing.T) {
		p := pendingPayment(t)
		if err := p.SetGatewayData("mp-123", "qr-data", "qr-base64"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != PaymentStatusProcessing {
			t.Fatalf("expected PROCESSING, got %s", p.Status)
		}
		if p.GatewayPaymentID != "mp-123" || p.QRCode != "qr-data" || p.QRCodeBase64 != "qr-base64" {
			t.Fatalf("gateway data not recorded: %+v", p)
		}
	})

	t.Run("second call fails", func(t *testing.T) {
		p := processingPayment(t)
		err := p.SetGatewayData("mp-456", "other", "other64")
		var transition *errs.InvalidStatusTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("expected InvalidStatusTransitionError, got %v", err)
		}
		if p.GatewayPaymentID != "mp-123" {
			t.Fatalf("gateway id must not be overwritten")
		}
	})
}

func TestPayment_Complete(t *testing.T) {
	t.Run("processing to completed", func(t *testing.T) {
		p := processingPayment(t)
		if err := p.Complete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != PaymentStatusCompleted {
			t.Fatalf("expected COMPLETED, got %s", p.Status)
		}
		if p.CompletedAt == nil {
			t.Fatalf("expected CompletedAt set")
		}
	})

	t.Run("complete straight from pending fails", func(t *testing.T) {
		p := pendingPayment(t)
		err := p.Complete()
		var transition *errs.InvalidStatusTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("expected InvalidStatusTransitionError, got %v", err)
		}
	})

	t.Run("complete twice fails", func(t *testing.T) {
		p := processingPayment(t)
		if err := p.Complete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := p.Complete()
		var transition *errs.InvalidStatusTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("expected InvalidStatusTransitionError, got %v", err)
		}
	})
}

func TestPayment_Fail(t *testing.T) {
	t.Run("fail from pending", func(t *testing.T) {
		p := pendingPayment(t)
		if err := p.Fail("gateway unavailable"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != PaymentStatusFailed {
			t.Fatalf("expected FAILED, got %s", p.Status)
		}
		if p.FailureReason != "gateway unavailable" {
			t.Fatalf("unexpected reason: %s", p.FailureReason)
		}
		if p.FailedAt == nil {
			t.Fatalf("expected FailedAt set")
		}
	})

	t.Run("fail from processing", func(t *testing.T) {
		p := processingPayment(t)
		if err := p.Fail("Insufficient funds"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != PaymentStatusFailed {
			t.Fatalf("expected FAILED, got %s", p.Status)
		}
	})

	t.Run("fail after completed fails", func(t *testing.T) {
		p := processingPayment(t)
		if err := p.Complete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := p.Fail("late report")
		var transition *errs.InvalidStatusTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("expected InvalidStatusTransitionError, got %v", err)
		}
	})
}

func TestPayment_Refund(t *testing.T) {
	t.Run("completed to refunded", func(t *testing.T) {
		p := processingPayment(t)
		if err := p.Complete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.CanBeRefunded() {
			t.Fatalf("completed payment must be refundable")
		}
		if err := p.Refund(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != PaymentStatusRefunded {
			t.Fatalf("expected REFUNDED, got %s", p.Status)
		}
		if p.RefundedAt == nil {
			t.Fatalf("expected RefundedAt set")
		}
	})

	t.Run("refund before completion fails", func(t *testing.T) {
		p := processingPayment(t)
		if p.CanBeRefunded() {
			t.Fatalf("processing payment must not be refundable")
		}
		err := p.Refund()
		var transition *errs.InvalidStatusTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("expected InvalidStatusTransitionError, got %v", err)
		}
	})

	t.Run("refund twice fails", func(t *testing.T) {
		p := processingPayment(t)
		if err := p.Complete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := p.Refund(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := p.Refund()
		var transition *errs.InvalidStatusTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("expected InvalidStatusTransitionError, got %v", err)
		}
	})
}

func TestPayment_IsInFinalState(t *testing.T) {
	cases := []struct {
		status PaymentStatus
		want   bool
	}{
		{PaymentStatusPending, false},
		{PaymentStatusProcessing, false},
		{PaymentStatusCompleted, true},
		{PaymentStatusFailed, true},
		{PaymentStatusRefunded, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			p := pendingPayment(t)
			p.Status = tc.status
			if p.IsInFinalState() != tc.want {
				t.Fatalf("expected %v for %s", tc.want, tc.status)
			}
		})
	}
}
