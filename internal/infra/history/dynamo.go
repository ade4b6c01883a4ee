// Where: cli/internal/infra/history/dynamo.go
// What: DynamoDB-backed history store.
// Why: Share the deploy ledger between machines deploying the same space.
package history

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/poruru/alicf/cli/internal/domain/deployment"
)

const (
	attrFunction     = "function"
	attrSortKey      = "sk"
	attrID           = "id"
	attrDeploymentID = "deploymentId"
	attrState        = "state"
	attrTriggered    = "triggered"
	attrError        = "error"
	attrStartedAt    = "startedAt"
	attrFinishedAt   = "finishedAt"

	// sortKeyLayout is fixed width so string order matches time order.
	sortKeyLayout = "2006-01-02T15:04:05.000000000Z"
)

// DynamoAPI is the subset of *dynamodb.Client the store uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// DynamoStore keeps entries in a table keyed by function and start time.
type DynamoStore struct {
	client DynamoAPI
	table  string
}

func NewDynamoStore(client DynamoAPI, table string) (*DynamoStore, error) {
	if client == nil {
		return nil, errors.New("dynamodb client is required")
	}
	if table == "" {
		return nil, errors.New("history table is required")
	}
	return &DynamoStore{client: client, table: table}, nil
}

// EnsureTable creates the history table when it does not exist.
func (s *DynamoStore) EnsureTable(ctx context.Context) error {
	var start *string
	for {
		resp, err := s.client.ListTables(ctx, &dynamodb.ListTablesInput{ExclusiveStartTableName: start})
		if err != nil {
			return fmt.Errorf("list tables: %w", err)
		}
		for _, name := range resp.TableNames {
			if name == s.table {
				return nil
			}
		}
		if resp.LastEvaluatedTableName == nil {
			break
		}
		start = resp.LastEvaluatedTableName
	}
	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(s.table),
		BillingMode: types.BillingModePayPerRequest,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrFunction), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(attrSortKey), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(attrFunction), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(attrSortKey), AttributeType: types.ScalarAttributeTypeS},
		},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

func (s *DynamoStore) Record(ctx context.Context, entry Entry) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      toItem(entry),
	})
	if err != nil {
		return fmt.Errorf("put history entry: %w", err)
	}
	return nil
}

func (s *DynamoStore) List(ctx context.Context, function string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var items []map[string]types.AttributeValue
	if function != "" {
		resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                aws.String(s.table),
			KeyConditionExpression:   aws.String("#fn = :fn"),
			ExpressionAttributeNames: map[string]string{"#fn": attrFunction},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":fn": &types.AttributeValueMemberS{Value: function},
			},
			ScanIndexForward: aws.Bool(false),
			Limit:            aws.Int32(int32(limit)),
		})
		if err != nil {
			return nil, fmt.Errorf("query history: %w", err)
		}
		items = resp.Items
	} else {
		var start map[string]types.AttributeValue
		for {
			resp, err := s.client.Scan(ctx, &dynamodb.ScanInput{
				TableName:         aws.String(s.table),
				ExclusiveStartKey: start,
			})
			if err != nil {
				return nil, fmt.Errorf("scan history: %w", err)
			}
			items = append(items, resp.Items...)
			if len(resp.LastEvaluatedKey) == 0 {
				break
			}
			start = resp.LastEvaluatedKey
		}
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, fromItem(item))
	}
	return newestFirst(entries, function, limit), nil
}

func sortKey(entry Entry) string {
	return entry.StartedAt.UTC().Format(sortKeyLayout) + "#" + entry.ID
}

func toItem(entry Entry) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		attrFunction:   &types.AttributeValueMemberS{Value: entry.Function},
		attrSortKey:    &types.AttributeValueMemberS{Value: sortKey(entry)},
		attrID:         &types.AttributeValueMemberS{Value: entry.ID},
		attrState:      &types.AttributeValueMemberS{Value: string(entry.State)},
		attrTriggered:  &types.AttributeValueMemberBOOL{Value: entry.Triggered},
		attrStartedAt:  &types.AttributeValueMemberN{Value: strconv.FormatInt(entry.StartedAt.UnixMilli(), 10)},
		attrFinishedAt: &types.AttributeValueMemberN{Value: strconv.FormatInt(entry.FinishedAt.UnixMilli(), 10)},
	}
	if entry.DeploymentID != "" {
		item[attrDeploymentID] = &types.AttributeValueMemberS{Value: entry.DeploymentID}
	}
	if entry.Error != "" {
		item[attrError] = &types.AttributeValueMemberS{Value: entry.Error}
	}
	return item
}

func fromItem(item map[string]types.AttributeValue) Entry {
	entry := Entry{
		ID:           stringAttr(item, attrID),
		Function:     stringAttr(item, attrFunction),
		DeploymentID: stringAttr(item, attrDeploymentID),
		State:        deployment.State(stringAttr(item, attrState)),
		Error:        stringAttr(item, attrError),
		StartedAt:    millisAttr(item, attrStartedAt),
		FinishedAt:   millisAttr(item, attrFinishedAt),
	}
	if value, ok := item[attrTriggered].(*types.AttributeValueMemberBOOL); ok {
		entry.Triggered = value.Value
	}
	return entry
}

func stringAttr(item map[string]types.AttributeValue, key string) string {
	if value, ok := item[key].(*types.AttributeValueMemberS); ok {
		return value.Value
	}
	return ""
}

func millisAttr(item map[string]types.AttributeValue, key string) time.Time {
	value, ok := item[key].(*types.AttributeValueMemberN)
	if !ok {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(value.Value, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}
