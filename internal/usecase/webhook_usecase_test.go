package usecase

import (
	"context"
	"errors"
	"testing"

	"oficina_billing/internal/domain/entities"
	"oficina_billing/internal/usecase/interfaces"
	mock_interfaces "oficina_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func paymentUpdated(id string) WebhookNotification {
	n := WebhookNotification{Action: PaymentUpdatedAction}
	n.Data.ID = id
	return n
}

func processingTestPayment(t *testing.T) *entities.Payment {
	t.Helper()
	p := testPayment(t, "payment-1", "budget-1")
	if err := p.SetGatewayData("mp-1", "qr", "qr64"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestWebhookUseCase_Process_Ignored(t *testing.T) {
	t.Run("non payment.updated action", func(t *testing.T) {
		uc := NewWebhookUseCase(nil, nil, nil, nil)
		if err := uc.Process(context.Background(), WebhookNotification{Action: "payment.created"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown gateway payment id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, nil, gateway, nil)

		gateway.EXPECT().GetPayment(gomock.Any(), "mp-9").Return(interfaces.GatewayPayment{ID: "mp-9", Status: interfaces.GatewayStatusApproved}, nil)
		repo.EXPECT().FindByGatewayID(gomock.Any(), "mp-9").Return(nil, nil)

		if err := uc.Process(context.Background(), paymentUpdated("mp-9")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("non-terminal gateway status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, nil, gateway, nil)

		gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: interfaces.GatewayStatusPending}, nil)
		repo.EXPECT().FindByGatewayID(gomock.Any(), "mp-1").Return(processingTestPayment(t), nil)

		if err := uc.Process(context.Background(), paymentUpdated("mp-1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("gateway lookup error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(nil, nil, gateway, nil)

		gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{}, errors.New("gateway down"))

		if err := uc.Process(context.Background(), paymentUpdated("mp-1")); err == nil {
			t.Fatalf("expected error to propagate for redelivery")
		}
	})
}

func TestWebhookUseCase_Process_Approved(t *testing.T) {
	t.Run("completes the payment and publishes PaymentCompleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		budgetRepo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
		uc := NewWebhookUseCase(repo, budgetRepo, gateway, publisher)

		gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: interfaces.GatewayStatusApproved}, nil)
		repo.EXPECT().FindByGatewayID(gomock.Any(), "mp-1").Return(processingTestPayment(t), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *entities.Payment) (*entities.Payment, error) {
				if p.Status != entities.PaymentStatusCompleted {
					t.Fatalf("expected COMPLETED, got %s", p.Status)
				}
				return p, nil
			},
		)
		budgetRepo.EXPECT().FindByID(gomock.Any(), "budget-1").Return(approvedBudget(t, "budget-1", "order-1"), nil)
		publisher.EXPECT().PublishPaymentCompleted(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event interfaces.PaymentCompletedEvent) error {
				if event.PaymentID != "payment-1" || event.BudgetID != "budget-1" || event.ServiceOrderID != "order-1" {
					t.Fatalf("unexpected event: %+v", event)
				}
				if event.CompletedAt.IsZero() {
					t.Fatalf("expected CompletedAt set")
				}
				return nil
			},
		)

		if err := uc.Process(context.Background(), paymentUpdated("mp-1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing budget publishes degraded event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		budgetRepo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
		uc := NewWebhookUseCase(repo, budgetRepo, gateway, publisher)

		gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: interfaces.GatewayStatusApproved}, nil)
		repo.EXPECT().FindByGatewayID(gomock.Any(), "mp-1").Return(processingTestPayment(t), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *entities.Payment) (*entities.Payment, error) { return p, nil },
		)
		budgetRepo.EXPECT().FindByID(gomock.Any(), "budget-1").Return(nil, nil)
		publisher.EXPECT().PublishPaymentCompleted(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event interfaces.PaymentCompletedEvent) error {
				if event.ServiceOrderID != "" {
					t.Fatalf("expected empty service order id, got %s", event.ServiceOrderID)
				}
				return nil
			},
		)

		if err := uc.Process(context.Background(), paymentUpdated("mp-1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("duplicate delivery is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, nil, gateway, nil)

		completed := processingTestPayment(t)
		if err := completed.Complete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// No Update and no publish may happen on the second delivery.
		gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: interfaces.GatewayStatusApproved}, nil)
		repo.EXPECT().FindByGatewayID(gomock.Any(), "mp-1").Return(completed, nil)

		if err := uc.Process(context.Background(), paymentUpdated("mp-1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestWebhookUseCase_Process_RejectedAndCancelled(t *testing.T) {
	t.Run("rejected with status detail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
		uc := NewWebhookUseCase(repo, nil, gateway, publisher)

		gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: interfaces.GatewayStatusRejected, StatusDetail: "Insufficient funds"}, nil)
		repo.EXPECT().FindByGatewayID(gomock.Any(), "mp-1").Return(processingTestPayment(t), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *entities.Payment) (*entities.Payment, error) {
				if p.Status != entities.PaymentStatusFailed {
					t.Fatalf("expected FAILED, got %s", p.Status)
				}
				if p.FailureReason != "Insufficient funds" {
					t.Fatalf("unexpected reason: %s", p.FailureReason)
				}
				return p, nil
			},
		)
		publisher.EXPECT().PublishPaymentFailed(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event interfaces.PaymentFailedEvent) error {
				if event.Reason != "Insufficient funds" {
					t.Fatalf("unexpected event reason: %s", event.Reason)
				}
				return nil
			},
		)

		if err := uc.Process(context.Background(), paymentUpdated("mp-1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	cases := []struct {
		name   string
		status string
		want   string
	}{
		{name: "rejected without detail", status: interfaces.GatewayStatusRejected, want: "Payment rejected"},
		{name: "cancelled without detail", status: interfaces.GatewayStatusCancelled, want: "Payment cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
			uc := NewWebhookUseCase(repo, nil, gateway, publisher)

			gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: tc.status}, nil)
			repo.EXPECT().FindByGatewayID(gomock.Any(), "mp-1").Return(processingTestPayment(t), nil)
			repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, p *entities.Payment) (*entities.Payment, error) {
					if p.FailureReason != tc.want {
						t.Fatalf("expected reason %q, got %q", tc.want, p.FailureReason)
					}
					return p, nil
				},
			)
			publisher.EXPECT().PublishPaymentFailed(gomock.Any(), gomock.Any()).Return(nil)

			if err := uc.Process(context.Background(), paymentUpdated("mp-1")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	t.Run("update error propagates for redelivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, nil, gateway, nil)

		gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: interfaces.GatewayStatusRejected}, nil)
		repo.EXPECT().FindByGatewayID(gomock.Any(), "mp-1").Return(processingTestPayment(t), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, errors.New("db"))

		if err := uc.Process(context.Background(), paymentUpdated("mp-1")); err == nil {
			t.Fatalf("expected error to propagate")
		}
	})
}
