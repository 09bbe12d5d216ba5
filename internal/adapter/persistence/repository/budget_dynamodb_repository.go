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
	defaultBudgetsTableName  = "budgets"
	budgetServiceOrderIndex  = "service_order_id-index"
	serviceOrderMarkerPrefix = "service-order#"
)

type budgetLineItem struct {
	ID                string `dynamodbav:"id"`
	Description       string `dynamodbav:"description"`
	Quantity          int    `dynamodbav:"quantity"`
	UnitPriceInCents  int64  `dynamodbav:"unit_price_in_cents"`
	TotalPriceInCents int64  `dynamodbav:"total_price_in_cents"`
	Currency          string `dynamodbav:"currency"`
}

type budgetItem struct {
	ID                 string           `dynamodbav:"id"`
	ServiceOrderID     string           `dynamodbav:"service_order_id"`
	TotalAmountInCents int64            `dynamodbav:"total_amount_in_cents"`
	Currency           string           `dynamodbav:"currency"`
	Status             string           `dynamodbav:"status"`
	Items              []budgetLineItem `dynamodbav:"items"`
	ApprovedAt         string           `dynamodbav:"approved_at,omitempty"`
	RejectedAt         string           `dynamodbav:"rejected_at,omitempty"`
	CreatedAt          string           `dynamodbav:"created_at"`
	UpdatedAt          string           `dynamodbav:"updated_at"`
}

// BudgetDynamoRepository persists Budget aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: service_order_id-index (PK: service_order_id)
//
// One budget per service order is enforced by a marker item
// ("service-order#<id>") written in the same transaction as the budget, each
// guarded by attribute_not_exists. A lost race therefore surfaces as a
// ConflictError instead of a second budget.

type BudgetDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBudgetRepository = (*BudgetDynamoRepository)(nil)

func NewBudgetDynamoRepository(ddb *dynamodb.Client) *BudgetDynamoRepository {
	return &BudgetDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BUDGETS_TABLE", defaultBudgetsTableName),
	}
}

func (r *BudgetDynamoRepository) Create(ctx context.Context, b *entities.Budget) (*entities.Budget, error) {
	av, err := attributevalue.MarshalMap(toBudgetItem(b))
	if err != nil {
		return nil, err
	}

	marker := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: serviceOrderMarkerPrefix + b.ServiceOrderID},
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
			return nil, &errs.ConflictError{Resource: "budget", Key: "service order " + b.ServiceOrderID}
		}
		return nil, err
	}
	return b, nil
}

func (r *BudgetDynamoRepository) FindByID(ctx context.Context, id string) (*entities.Budget, error) {
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

	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, err
	}
	return fromBudgetItem(it)
}

func (r *BudgetDynamoRepository) FindByServiceOrderID(ctx context.Context, serviceOrderID string) (*entities.Budget, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(budgetServiceOrderIndex),
		KeyConditionExpression: aws.String("#so = :so"),
		ExpressionAttributeNames: map[string]string{
			"#so": "service_order_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":so": &types.AttributeValueMemberS{Value: serviceOrderID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return nil, err
	}
	return fromBudgetItem(it)
}

func (r *BudgetDynamoRepository) FindByStatus(ctx context.Context, status entities.BudgetStatus) ([]*entities.Budget, error) {
	budgets, _, err := r.FindAll(ctx, interfaces.BudgetFilters{Status: status})
	return budgets, err
}

// FindAll scans the table, skipping the uniqueness marker items, and applies
// limit/offset in memory. Total counts the filtered set before pagination.
func (r *BudgetDynamoRepository) FindAll(ctx context.Context, filters interfaces.BudgetFilters) ([]*entities.Budget, int, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("attribute_exists(#so)"),
		ExpressionAttributeNames: map[string]string{
			"#so": "service_order_id",
		},
	}

	budgets := make([]*entities.Budget, 0)
	paginator := dynamodb.NewScanPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, 0, err
		}
		for _, raw := range page.Items {
			var it budgetItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, 0, err
			}
			if filters.ServiceOrderID != "" && it.ServiceOrderID != filters.ServiceOrderID {
				continue
			}
			if filters.Status != "" && it.Status != string(filters.Status) {
				continue
			}
			b, err := fromBudgetItem(it)
			if err != nil {
				return nil, 0, err
			}
			budgets = append(budgets, b)
		}
	}

	total := len(budgets)
	return paginate(budgets, filters.Limit, filters.Offset), total, nil
}

func (r *BudgetDynamoRepository) Update(ctx context.Context, b *entities.Budget) (*entities.Budget, error) {
	av, err := attributevalue.MarshalMap(toBudgetItem(b))
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
			return nil, &errs.NotFoundError{Resource: "budget", ID: b.ID}
		}
		return nil, err
	}
	return b, nil
}

func toBudgetItem(b *entities.Budget) budgetItem {
	items := make([]budgetLineItem, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, budgetLineItem{
			ID:                item.ID,
			Description:       item.Description,
			Quantity:          item.Quantity,
			UnitPriceInCents:  item.UnitPrice.Amount(),
			TotalPriceInCents: item.TotalPrice.Amount(),
			Currency:          item.UnitPrice.Currency(),
		})
	}

	return budgetItem{
		ID:                 b.ID,
		ServiceOrderID:     b.ServiceOrderID,
		TotalAmountInCents: b.TotalAmount.Amount(),
		Currency:           b.TotalAmount.Currency(),
		Status:             string(b.Status),
		Items:              items,
		ApprovedAt:         formatOptionalTime(b.ApprovedAt),
		RejectedAt:         formatOptionalTime(b.RejectedAt),
		CreatedAt:          b.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:          b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromBudgetItem(it budgetItem) (*entities.Budget, error) {
	total, err := valueobjects.NewMoney(it.TotalAmountInCents, it.Currency)
	if err != nil {
		return nil, err
	}

	items := make([]entities.BudgetItem, 0, len(it.Items))
	for _, raw := range it.Items {
		unitPrice, err := valueobjects.NewMoney(raw.UnitPriceInCents, raw.Currency)
		if err != nil {
			return nil, err
		}
		totalPrice, err := valueobjects.NewMoney(raw.TotalPriceInCents, raw.Currency)
		if err != nil {
			return nil, err
		}
		items = append(items, entities.BudgetItem{
			ID:          raw.ID,
			Description: raw.Description,
			Quantity:    raw.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  totalPrice,
		})
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	return &entities.Budget{
		BaseEntity: entities.BaseEntity{
			ID:        it.ID,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		ServiceOrderID: it.ServiceOrderID,
		TotalAmount:    total,
		Status:         entities.BudgetStatus(it.Status),
		Items:          items,
		ApprovedAt:     parseOptionalTime(it.ApprovedAt),
		RejectedAt:     parseOptionalTime(it.RejectedAt),
	}, nil
}
