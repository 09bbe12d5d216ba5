package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/usecase"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const (
	orderCreatedEventType = "OrderCreated"

	pollErrorBackoff = 5 * time.Second

	// Default line used when a budget is auto-generated from an order event;
	// the real items arrive later through the REST API.
	defaultInspectionDescription  = "Service inspection and diagnostics"
	defaultInspectionPriceInCents = 15000
)

// eventEnvelope is the EventBridge wrapper delivered through SQS. Both field
// casings occur depending on the delivery path.
type eventEnvelope struct {
	DetailType      string          `json:"detail-type"`
	DetailTypeUpper string          `json:"DetailType"`
	Detail          json.RawMessage `json:"detail"`
	DetailUpper     json.RawMessage `json:"Detail"`
}

func (e eventEnvelope) detailType() string {
	if e.DetailType != "" {
		return e.DetailType
	}
	return e.DetailTypeUpper
}

func (e eventEnvelope) detail() json.RawMessage {
	if len(e.Detail) > 0 {
		return e.Detail
	}
	return e.DetailUpper
}

// orderCreatedDetail is the payload of the only event type this consumer
// handles.
type orderCreatedDetail struct {
	OrderID     string `json:"orderId"`
	ClientID    string `json:"clientId"`
	VehicleID   string `json:"vehicleId"`
	Status      string `json:"status"`
	RequestDate string `json:"requestDate"`
}

// SQSEventConsumer long-polls the order-event queue and auto-generates a
// budget per OrderCreated. Delivery is at-least-once: an existing budget is
// a benign skip (the message is still deleted), any other failure leaves the
// message on the queue for redelivery.

type SQSEventConsumer struct {
	client   *sqs.Client
	queueURL string
	budgets  usecase.IBudgetUseCase
}

func NewSQSEventConsumer(ctx context.Context, budgets usecase.IBudgetUseCase) (*SQSEventConsumer, error) {
	region := getenvDefault("AWS_REGION", "us-east-1")
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	opts := []func(*sqs.Options){}
	if endpoint := os.Getenv("SQS_ENDPOINT"); endpoint != "" {
		opts = append(opts, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	return &SQSEventConsumer{
		client:   sqs.NewFromConfig(cfg, opts...),
		queueURL: os.Getenv("SQS_QUEUE_URL"),
		budgets:  budgets,
	}, nil
}

// Start runs the polling loop until ctx is cancelled. When no queue is
// configured the consumer is disabled rather than failing startup.
func (c *SQSEventConsumer) Start(ctx context.Context) {
	if c.queueURL == "" {
		log.Printf("[events][consumer] SQS_QUEUE_URL not configured, event consumer disabled")
		return
	}

	log.Printf("[events][consumer] starting queue=%s", c.queueURL)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[events][consumer] stopping")
			return
		default:
		}

		out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			MessageAttributeNames: []string{
				string(types.QueueAttributeNameAll),
			},
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[events][consumer] poll failed err=%v", err)
			time.Sleep(pollErrorBackoff)
			continue
		}

		for _, message := range out.Messages {
			if err := c.handleMessage(ctx, message); err != nil {
				log.Printf("[events][consumer] message failed message_id=%s err=%v", aws.ToString(message.MessageId), err)
				continue
			}
			if _, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(c.queueURL),
				ReceiptHandle: message.ReceiptHandle,
			}); err != nil {
				log.Printf("[events][consumer] delete failed message_id=%s err=%v", aws.ToString(message.MessageId), err)
			}
		}
	}
}

func (c *SQSEventConsumer) handleMessage(ctx context.Context, message types.Message) error {
	var envelope eventEnvelope
	if err := json.Unmarshal([]byte(aws.ToString(message.Body)), &envelope); err != nil {
		return err
	}

	detailType := envelope.detailType()
	log.Printf("[events][consumer] received event detail_type=%s", detailType)

	switch detailType {
	case orderCreatedEventType:
		var detail orderCreatedDetail
		if err := json.Unmarshal(envelope.detail(), &detail); err != nil {
			return err
		}
		return c.handleOrderCreated(ctx, detail)
	default:
		log.Printf("[events][consumer] ignoring event detail_type=%s", detailType)
		return nil
	}
}

func (c *SQSEventConsumer) handleOrderCreated(ctx context.Context, detail orderCreatedDetail) error {
	log.Printf("[events][consumer] processing OrderCreated order_id=%s", detail.OrderID)

	_, err := c.budgets.CreateBudget(ctx, detail.OrderID, []usecase.BudgetItemInput{
		{
			Description:      defaultInspectionDescription,
			Quantity:         1,
			UnitPriceInCents: defaultInspectionPriceInCents,
		},
	})
	if err != nil {
		var conflict *errs.ConflictError
		if errors.As(err, &conflict) {
			log.Printf("[events][consumer] budget already exists order_id=%s, skipping", detail.OrderID)
			return nil
		}
		return err
	}

	log.Printf("[events][consumer] budget auto-generated order_id=%s", detail.OrderID)
	return nil
}
