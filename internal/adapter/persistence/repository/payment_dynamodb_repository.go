package repository

import (
	"context"
	"errors"
	"time"

	"oficina_billing/internal/domain/entities"
	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/domain/valueobjects"
	"oficina_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentBudgetIDIndex     = "budget_id-index"
	paymentGatewayIDIndex    = "gateway_payment_id-index"
	budgetMarkerPrefix       = "budget#"
)

type paymentItem struct {
	ID               string `dynamodbav:"id"`
	BudgetID         string `dynamodbav:"budget_id"`
	AmountInCents    int64  `dynamodbav:"amount_in_cents"`
	Currency         string `dynamodbav:"currency"`
	Status           string `dynamodbav:"status"`
	GatewayPaymentID string `dynamodbav:"gateway_payment_id,omitempty"`
	QRCode           string `dynamodbav:"qr_code,omitempty"`
	QRCodeBase64     string `dynamodbav:"qr_code_base64,omitempty"`
	CompletedAt      string `dynamodbav:"completed_at,omitempty"`
	FailedAt         string `dynamodbav:"failed_at,omitempty"`
	RefundedAt       string `dynamodbav:"refunded_at,omitempty"`
	FailureReason    string `dynamodbav:"failure_reason,omitempty"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: budget_id-index (PK: budget_id)
//   - GSI: gateway_payment_id-index (PK: gateway_payment_id)
//
// One payment per budget is enforced the same way budgets enforce one per
// service order: a "budget#<id>" marker item written transactionally with
// the payment, both guarded by attribute_not_exists.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p *entities.Payment) (*entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return nil, err
	}

	marker := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: budgetMarkerPrefix + p.BudgetID},
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     av,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     marker,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return nil, &errs.ConflictError{Resource: "payment", Key: "budget " + p.BudgetID}
		}
		return nil, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) FindByID(ctx context.Context, id string) (*entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, err
	}
	return fromPaymentItem(it)
}

func (r *PaymentDynamoRepository) FindByBudgetID(ctx context.Context, budgetID string) (*entities.Payment, error) {
	return r.queryOne(ctx, paymentBudgetIDIndex, "budget_id", budgetID)
}

func (r *PaymentDynamoRepository) FindByGatewayID(ctx context.Context, gatewayPaymentID string) (*entities.Payment, error) {
	return r.queryOne(ctx, paymentGatewayIDIndex, "gateway_payment_id", gatewayPaymentID)
}

func (r *PaymentDynamoRepository) queryOne(ctx context.Context, index, attr, value string) (*entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#attr = :value"),
		ExpressionAttributeNames: map[string]string{
			"#attr": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return nil, err
	}
	return fromPaymentItem(it)
}

func (r *PaymentDynamoRepository) FindByStatus(ctx context.Context, status entities.PaymentStatus) ([]*entities.Payment, error) {
	payments, _, err := r.FindAll(ctx, interfaces.PaymentFilters{Status: status})
	return payments, err
}

// FindAll scans the table, skipping the uniqueness marker items, and applies
// limit/offset in memory. Total counts the filtered set before pagination.
func (r *PaymentDynamoRepository) FindAll(ctx context.Context, filters interfaces.PaymentFilters) ([]*entities.Payment, int, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("attribute_exists(#bid)"),
		ExpressionAttributeNames: map[string]string{
			"#bid": "budget_id",
		},
	}

	payments := make([]*entities.Payment, 0)
	paginator := dynamodb.NewScanPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, 0, err
		}
		for _, raw := range page.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, 0, err
			}
			if filters.BudgetID != "" && it.BudgetID != filters.BudgetID {
				continue
			}
			if filters.Status != "" && it.Status != string(filters.Status) {
				continue
			}
			p, err := fromPaymentItem(it)
			if err != nil {
				return nil, 0, err
			}
			payments = append(payments, p)
		}
	}

	total := len(payments)
	return paginate(payments, filters.Limit, filters.Offset), total, nil
}

func (r *PaymentDynamoRepository) Update(ctx context.Context, p *entities.Payment) (*entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return nil, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil, &errs.NotFoundError{Resource: "payment", ID: p.ID}
		}
		return nil, err
	}
	return p, nil
}

func toPaymentItem(p *entities.Payment) paymentItem {
	return paymentItem{
		ID:               p.ID,
		BudgetID:         p.BudgetID,
		AmountInCents:    p.Amount.Amount(),
		Currency:         p.Amount.Currency(),
		Status:           string(p.Status),
		GatewayPaymentID: p.GatewayPaymentID,
		QRCode:           p.QRCode,
		QRCodeBase64:     p.QRCodeBase64,
		CompletedAt:      formatOptionalTime(p.CompletedAt),
		FailedAt:         formatOptionalTime(p.FailedAt),
		RefundedAt:       formatOptionalTime(p.RefundedAt),
		FailureReason:    p.FailureReason,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) (*entities.Payment, error) {
	amount, err := valueobjects.NewMoney(it.AmountInCents, it.Currency)
	if err != nil {
		return nil, err
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	return &entities.Payment{
		BaseEntity: entities.BaseEntity{
			ID:        it.ID,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		BudgetID:         it.BudgetID,
		Amount:           amount,
		Status:           entities.PaymentStatus(it.Status),
		GatewayPaymentID: it.GatewayPaymentID,
		QRCode:           it.QRCode,
		QRCodeBase64:     it.QRCodeBase64,
		CompletedAt:      parseOptionalTime(it.CompletedAt),
		FailedAt:         parseOptionalTime(it.FailedAt),
		RefundedAt:       parseOptionalTime(it.RefundedAt),
		FailureReason:    it.FailureReason,
	}, nil
}
