package dal

import (
	"context"
	"fooddonation-backend/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DatabaseClientInterface defines the contract for database operations.
// GetItem, UpdateItem and DeleteItem return a models.ErrNotFound error when the key is absent.
// Writes carrying unique constraints return a *models.ValidationError of kind duplicate on conflict.
type DatabaseClientInterface interface {
	// Core CRUD operations
	GetItem(ctx context.Context, config models.QueryConfig, result interface{}) error
	PutItem(ctx context.Context, tableName string, item interface{}, constraints ...models.UniqueConstraint) error
	UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error
	DeleteItem(ctx context.Context, tableName, key, value string, constraints ...models.UniqueConstraint) error

	// Query and Scan operations
	QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error
	Scan(ctx context.Context, tableName string, results interface{}) error

	Close(ctx context.Context) error
}

// TableAdmin is implemented by drivers whose tables are provisioned by the worker
type TableAdmin interface {
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error
	DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error)
}
