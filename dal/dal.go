package dal

import (
	"context"
	"errors"
	"fmt"
	"fooddonation-backend/models"
	"fooddonation-backend/utils/logger"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI is the subset of the DynamoDB SDK client used by DynamoDBClient
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// UniqueTable is the base name of the table holding uniqueness markers
const UniqueTable = "unique"

type DynamoDBClient struct {
	client DynamoDBAPI
	config *models.Config
	logger logger.Logger
}

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(ctx context.Context, cfg *models.Config, log logger.Logger) (*DynamoDBClient, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Use static credentials if provided
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		))
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		// Local DynamoDB
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	log.Info("DynamoDB client initialized successfully")
	return NewDynamoDBClientWithAPI(client, cfg, log), nil
}

// NewDynamoDBClientWithAPI wraps an existing SDK client
func NewDynamoDBClientWithAPI(api DynamoDBAPI, cfg *models.Config, log logger.Logger) *DynamoDBClient {
	return &DynamoDBClient{
		client: api,
		config: cfg,
		logger: log,
	}
}

func stringKey(key, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		key: &types.AttributeValueMemberS{Value: value},
	}
}

// GetItem retrieves an item by primary key, or the first match of a secondary index
func (db *DynamoDBClient) GetItem(ctx context.Context, cfg models.QueryConfig, result interface{}) error {
	if cfg.IndexName != "" {
		var items []map[string]types.AttributeValue
		if err := db.queryIndex(ctx, cfg.TableName, cfg.IndexName, cfg.KeyName, cfg.KeyValue, &items); err != nil {
			return err
		}
		if len(items) == 0 {
			return models.NewNotFoundError("item", cfg.KeyValue)
		}
		return attributevalue.UnmarshalMap(items[0], result)
	}

	output, err := db.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(cfg.TableName),
		Key:       stringKey(cfg.KeyName, cfg.KeyValue),
	})
	if err != nil {
		db.logger.Errorf("Failed to get item: %v", err)
		return err
	}

	if output.Item == nil {
		return models.NewNotFoundError("item", cfg.KeyValue)
	}

	return attributevalue.UnmarshalMap(output.Item, result)
}

// PutItem stores an item. With constraints the write and the uniqueness markers
// are committed in one transaction.
func (db *DynamoDBClient) PutItem(ctx context.Context, tableName string, item interface{}, constraints ...models.UniqueConstraint) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	if len(constraints) == 0 {
		_, err = db.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(tableName),
			Item:      av,
		})
		return err
	}

	uniqueTable := db.config.TableName(UniqueTable)
	owner := ""
	if id, ok := av["id"].(*types.AttributeValueMemberS); ok {
		owner = id.Value
	}

	writes := []types.TransactWriteItem{{
		Put: &types.Put{TableName: aws.String(tableName), Item: av},
	}}
	// reserved maps the index of each marker write back to its constraint
	reserved := map[int]models.UniqueConstraint{}
	for _, c := range constraints {
		if c.Value == c.Previous {
			continue
		}
		if c.Value != "" {
			reserved[len(writes)] = c
			writes = append(writes, types.TransactWriteItem{
				Put: &types.Put{
					TableName: aws.String(uniqueTable),
					Item: map[string]types.AttributeValue{
						"id":    &types.AttributeValueMemberS{Value: uniqueMarkerKey(tableName, c.Field, c.Value)},
						"owner": &types.AttributeValueMemberS{Value: owner},
					},
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			})
		}
		if c.Previous != "" {
			writes = append(writes, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: aws.String(uniqueTable),
					Key:       stringKey("id", uniqueMarkerKey(tableName, c.Field, c.Previous)),
				},
			})
		}
	}

	if len(writes) == 1 {
		_, err = db.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(tableName),
			Item:      av,
		})
		return err
	}

	_, err = db.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes})
	if err != nil {
		if conflict := conflictingConstraint(err, reserved); conflict != nil {
			return models.NewValidationError(conflict.Field, models.ValidationDuplicate, "")
		}
		db.logger.Errorf("Failed to write item with constraints: %v", err)
		return err
	}
	return nil
}

// conflictingConstraint finds the constraint whose marker condition failed
func conflictingConstraint(err error, reserved map[int]models.UniqueConstraint) *models.UniqueConstraint {
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return nil
	}
	for i, reason := range canceled.CancellationReasons {
		if aws.ToString(reason.Code) != "ConditionalCheckFailed" {
			continue
		}
		if c, ok := reserved[i]; ok {
			return &c
		}
	}
	return nil
}

func uniqueMarkerKey(tableName, field, value string) string {
	return tableName + "#" + field + "#" + value
}

// UpdateItem sets the given attributes on an existing item
func (db *DynamoDBClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	expressionAttributeNames := map[string]string{"#pk": key}
	expressionAttributeValues := make(map[string]types.AttributeValue)
	assignments := make([]string, 0, len(fields))

	for i, field := range fields {
		attrName := fmt.Sprintf("#f%d", i)
		attrValue := fmt.Sprintf(":v%d", i)

		av, err := attributevalue.Marshal(updates[field])
		if err != nil {
			return err
		}
		assignments = append(assignments, attrName+" = "+attrValue)
		expressionAttributeNames[attrName] = field
		expressionAttributeValues[attrValue] = av
	}

	_, err := db.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(tableName),
		Key:                       stringKey(key, keyValue),
		UpdateExpression:          aws.String("SET " + strings.Join(assignments, ", ")),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  expressionAttributeNames,
		ExpressionAttributeValues: expressionAttributeValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return models.NewNotFoundError("item", keyValue)
	}
	return err
}

// DeleteItem deletes an existing item and releases its uniqueness markers
func (db *DynamoDBClient) DeleteItem(ctx context.Context, tableName, key, value string, constraints ...models.UniqueConstraint) error {
	del := &types.Delete{
		TableName:                aws.String(tableName),
		Key:                      stringKey(key, value),
		ConditionExpression:      aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": key},
	}

	var err error
	if len(constraints) == 0 {
		_, err = db.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:                del.TableName,
			Key:                      del.Key,
			ConditionExpression:      del.ConditionExpression,
			ExpressionAttributeNames: del.ExpressionAttributeNames,
		})
	} else {
		writes := []types.TransactWriteItem{{Delete: del}}
		for _, c := range constraints {
			if c.Value == "" {
				continue
			}
			writes = append(writes, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: aws.String(db.config.TableName(UniqueTable)),
					Key:       stringKey("id", uniqueMarkerKey(tableName, c.Field, c.Value)),
				},
			})
		}
		_, err = db.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes})
	}

	if isConditionalCheckFailed(err) {
		return models.NewNotFoundError("item", value)
	}
	return err
}

func isConditionalCheckFailed(err error) bool {
	if err == nil {
		return false
	}
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) && len(canceled.CancellationReasons) > 0 {
		return aws.ToString(canceled.CancellationReasons[0].Code) == "ConditionalCheckFailed"
	}
	return false
}

// QueryByIndex queries items using a global secondary index
func (db *DynamoDBClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	var items []map[string]types.AttributeValue
	if err := db.queryIndex(ctx, tableName, indexName, keyName, keyValue, &items); err != nil {
		return err
	}
	return attributevalue.UnmarshalListOfMaps(items, results)
}

func (db *DynamoDBClient) queryIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, items *[]map[string]types.AttributeValue) error {
	paginator := dynamodb.NewQueryPaginator(db.client, &dynamodb.QueryInput{
		TableName:              aws.String(tableName),
		IndexName:              aws.String(indexName),
		KeyConditionExpression: aws.String("#kn0 = :kv0"),
		ExpressionAttributeNames: map[string]string{
			"#kn0": keyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kv0": &types.AttributeValueMemberS{Value: keyValue},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			db.logger.Errorf("Failed to query %s on %s: %v", indexName, tableName, err)
			return err
		}
		*items = append(*items, page.Items...)
	}
	return nil
}

// Scan reads every page of the table
func (db *DynamoDBClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	paginator := dynamodb.NewScanPaginator(db.client, &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			db.logger.Errorf("Failed to scan %s: %v", tableName, err)
			return err
		}
		items = append(items, page.Items...)
	}

	return attributevalue.UnmarshalListOfMaps(items, results)
}

// CreateTable creates a table
func (db *DynamoDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	_, err := db.client.CreateTable(ctx, input)
	return err
}

// DescribeTable describes a table
func (db *DynamoDBClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	return db.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
}

// Close is a no-op; the SDK client holds no connections that need releasing
func (db *DynamoDBClient) Close(ctx context.Context) error {
	return nil
}
