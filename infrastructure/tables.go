package infrastructure

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tidwall/gjson"
)

type TableSchema struct {
	TableName              string                 `json:"TableName"`
	AttributeDefinitions   []AttributeDefinition  `json:"AttributeDefinitions"`
	KeySchema              []KeySchemaElement     `json:"KeySchema"`
	ProvisionedThroughput  Throughput             `json:"ProvisionedThroughput"`
	GlobalSecondaryIndexes []GlobalSecondaryIndex `json:"GlobalSecondaryIndexes,omitempty"`
}

type AttributeDefinition struct {
	AttributeName string `json:"AttributeName"`
	AttributeType string `json:"AttributeType"`
}

type KeySchemaElement struct {
	AttributeName string `json:"AttributeName"`
	KeyType       string `json:"KeyType"`
}

type Throughput struct {
	ReadCapacityUnits  int64 `json:"ReadCapacityUnits"`
	WriteCapacityUnits int64 `json:"WriteCapacityUnits"`
}

type GlobalSecondaryIndex struct {
	IndexName             string             `json:"IndexName"`
	KeySchema             []KeySchemaElement `json:"KeySchema"`
	Projection            Projection         `json:"Projection"`
	ProvisionedThroughput Throughput         `json:"ProvisionedThroughput"`
}

type Projection struct {
	ProjectionType string `json:"ProjectionType"`
}

//go:embed table_schema.json
var tablesSchema []byte

// GetTables builds the CreateTableInput for a prefixed table name, e.g. "dev_donations"
func GetTables(tableName string) (*dynamodb.CreateTableInput, error) {
	schema, err := GetSchema(tableName)
	if err != nil {
		return nil, err
	}
	return schema.ToDynamoInput(), nil
}

// GetSchema reads the embedded schema for the table's base name
func GetSchema(tableName string) (*TableSchema, error) {
	schemaKey := extractBaseTableName(tableName)

	tableJson := gjson.GetBytes(tablesSchema, schemaKey)
	if !tableJson.Exists() {
		return nil, fmt.Errorf("table schema not found for key: %s", schemaKey)
	}

	var schema TableSchema
	if err := json.Unmarshal([]byte(tableJson.Raw), &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema JSON: %w", err)
	}

	// Keep the prefixed name
	schema.TableName = tableName
	return &schema, nil
}

// TableNames lists every base table declared in the embedded schema
func TableNames() []string {
	var names []string
	gjson.ParseBytes(tablesSchema).ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	return names
}

// extractBaseTableName extracts the base table name from a prefixed table name
// For example, "dev_donations" -> "donations"
func extractBaseTableName(tableName string) string {
	parts := strings.Split(tableName, "_")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return tableName
}

func keySchema(elems []KeySchemaElement) []types.KeySchemaElement {
	out := make([]types.KeySchemaElement, 0, len(elems))
	for _, k := range elems {
		out = append(out, types.KeySchemaElement{
			AttributeName: aws.String(k.AttributeName),
			KeyType:       types.KeyType(k.KeyType),
		})
	}
	return out
}

func throughput(t Throughput) *types.ProvisionedThroughput {
	return &types.ProvisionedThroughput{
		ReadCapacityUnits:  aws.Int64(t.ReadCapacityUnits),
		WriteCapacityUnits: aws.Int64(t.WriteCapacityUnits),
	}
}

// ToDynamoInput converts the schema to a DynamoDB CreateTableInput
func (ts *TableSchema) ToDynamoInput() *dynamodb.CreateTableInput {
	attrDefs := make([]types.AttributeDefinition, 0, len(ts.AttributeDefinitions))
	for _, a := range ts.AttributeDefinitions {
		attrDefs = append(attrDefs, types.AttributeDefinition{
			AttributeName: aws.String(a.AttributeName),
			AttributeType: types.ScalarAttributeType(a.AttributeType),
		})
	}

	var gsis []types.GlobalSecondaryIndex
	for _, g := range ts.GlobalSecondaryIndexes {
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName: aws.String(g.IndexName),
			KeySchema: keySchema(g.KeySchema),
			Projection: &types.Projection{
				ProjectionType: types.ProjectionType(g.Projection.ProjectionType),
			},
			ProvisionedThroughput: throughput(g.ProvisionedThroughput),
		})
	}

	return &dynamodb.CreateTableInput{
		TableName:              aws.String(ts.TableName),
		AttributeDefinitions:   attrDefs,
		KeySchema:              keySchema(ts.KeySchema),
		ProvisionedThroughput:  throughput(ts.ProvisionedThroughput),
		GlobalSecondaryIndexes: gsis,
	}
}
