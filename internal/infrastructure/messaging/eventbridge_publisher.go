package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

const (
	defaultEventBusName = "fiap-tech-challenge-event-bus"

	sourceBudget  = "billing.budget"
	sourcePayment = "billing.payment"
)

// EventBridgePublisher implements IEventPublisher on AWS EventBridge.
//
// Env vars:
//   - AWS_REGION (default: us-east-1)
//   - EVENT_BUS_NAME (default: fiap-tech-challenge-event-bus)
//   - EVENTBRIDGE_ENDPOINT (optional; e.g. http://localstack:4566)

type EventBridgePublisher struct {
	client       *eventbridge.Client
	eventBusName string
}

var _ interfaces.IEventPublisher = (*EventBridgePublisher)(nil)

func NewEventBridgePublisher(ctx context.Context) (*EventBridgePublisher, error) {
	region := getenvDefault("AWS_REGION", "us-east-1")
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	opts := []func(*eventbridge.Options){}
	if endpoint := os.Getenv("EVENTBRIDGE_ENDPOINT"); endpoint != "" {
		opts = append(opts, func(o *eventbridge.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	return &EventBridgePublisher{
		client:       eventbridge.NewFromConfig(cfg, opts...),
		eventBusName: getenvDefault("EVENT_BUS_NAME", defaultEventBusName),
	}, nil
}

func (p *EventBridgePublisher) PublishBudgetGenerated(ctx context.Context, event interfaces.BudgetGeneratedEvent) error {
	return p.publish(ctx, "BudgetGenerated", sourceBudget, event)
}

func (p *EventBridgePublisher) PublishBudgetApproved(ctx context.Context, event interfaces.BudgetApprovedEvent) error {
	return p.publish(ctx, "BudgetApproved", sourceBudget, event)
}

func (p *EventBridgePublisher) PublishBudgetRejected(ctx context.Context, event interfaces.BudgetRejectedEvent) error {
	return p.publish(ctx, "BudgetRejected", sourceBudget, event)
}

func (p *EventBridgePublisher) PublishPaymentInitiated(ctx context.Context, event interfaces.PaymentInitiatedEvent) error {
	return p.publish(ctx, "PaymentInitiated", sourcePayment, event)
}

func (p *EventBridgePublisher) PublishPaymentCompleted(ctx context.Context, event interfaces.PaymentCompletedEvent) error {
	return p.publish(ctx, "PaymentCompleted", sourcePayment, event)
}

func (p *EventBridgePublisher) PublishPaymentFailed(ctx context.Context, event interfaces.PaymentFailedEvent) error {
	return p.publish(ctx, "PaymentFailed", sourcePayment, event)
}

func (p *EventBridgePublisher) publish(ctx context.Context, detailType, source string, detail any) error {
	body, err := json.Marshal(detail)
	if err != nil {
		return &errs.PublishError{Event: detailType, Err: err}
	}

	now := time.Now().UTC()
	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.eventBusName),
				Source:       aws.String(source),
				DetailType:   aws.String(detailType),
				Detail:       aws.String(string(body)),
				Time:         &now,
			},
		},
	})
	if err != nil {
		log.Printf("[events][publisher] publish failed detail_type=%s err=%v", detailType, err)
		return &errs.PublishError{Event: detailType, Err: err}
	}
	if out.FailedEntryCount > 0 {
		log.Printf("[events][publisher] publish rejected detail_type=%s failed_entries=%d", detailType, out.FailedEntryCount)
		return &errs.PublishError{Event: detailType, Err: fmt.Errorf("%d entries failed", out.FailedEntryCount)}
	}

	log.Printf("[events][publisher] published detail_type=%s", detailType)
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
