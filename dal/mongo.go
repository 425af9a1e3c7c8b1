package dal

import (
	"context"
	"errors"
	"fmt"
	"fooddonation-backend/models"
	"fooddonation-backend/utils/logger"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UniqueIndex declares a unique index created when the client connects
type UniqueIndex struct {
	Collection string
	Field      string
}

type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
	logger logger.Logger
}

// NewMongoClient connects, pings and ensures the unique indexes exist
func NewMongoClient(ctx context.Context, cfg *models.Config, log logger.Logger, indexes []UniqueIndex) (*MongoClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m := &MongoClient{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
		logger: log,
	}

	for _, idx := range indexes {
		_, err := m.db.Collection(idx.Collection).Indexes().CreateOne(connectCtx, mongo.IndexModel{
			Keys:    bson.D{{Key: idx.Field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(uniqueIndexName(idx.Field)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create unique index on %s.%s: %w", idx.Collection, idx.Field, err)
		}
	}

	log.Infof("MongoDB client connected to database %s", cfg.MongoDatabase)
	return m, nil
}

func uniqueIndexName(field string) string {
	return field + "_unique"
}

// mongoField maps the primary key attribute onto the document _id
func mongoField(name string) string {
	if name == "id" {
		return "_id"
	}
	return name
}

func (m *MongoClient) GetItem(ctx context.Context, cfg models.QueryConfig, result interface{}) error {
	err := m.db.Collection(cfg.TableName).
		FindOne(ctx, bson.M{mongoField(cfg.KeyName): cfg.KeyValue}).
		Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewNotFoundError("item", cfg.KeyValue)
	}
	return err
}

func (m *MongoClient) PutItem(ctx context.Context, tableName string, item interface{}, constraints ...models.UniqueConstraint) error {
	raw, err := bson.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	id, ok := bson.Raw(raw).Lookup("_id").StringValueOK()
	if !ok || id == "" {
		return errors.New("item has no _id")
	}

	_, err = m.db.Collection(tableName).ReplaceOne(ctx, bson.M{"_id": id}, bson.Raw(raw), options.Replace().SetUpsert(true))
	if err != nil {
		if field := duplicateField(err, constraints); field != "" {
			return models.NewValidationError(field, models.ValidationDuplicate, "")
		}
		m.logger.Errorf("Failed to put item into %s: %v", tableName, err)
		return err
	}
	return nil
}

// duplicateField names the constraint whose unique index rejected the write
func duplicateField(err error, constraints []models.UniqueConstraint) string {
	if !mongo.IsDuplicateKeyError(err) {
		return ""
	}
	for _, c := range constraints {
		if strings.Contains(err.Error(), uniqueIndexName(c.Field)) {
			return c.Field
		}
	}
	if len(constraints) > 0 {
		return constraints[0].Field
	}
	return "_id"
}

func (m *MongoClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res, err := m.db.Collection(tableName).UpdateOne(ctx,
		bson.M{mongoField(key): keyValue},
		bson.M{"$set": updates},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("item", keyValue)
	}
	return nil
}

func (m *MongoClient) DeleteItem(ctx context.Context, tableName, key, value string, constraints ...models.UniqueConstraint) error {
	res, err := m.db.Collection(tableName).DeleteOne(ctx, bson.M{mongoField(key): value})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("item", value)
	}
	return nil
}

func (m *MongoClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	cursor, err := m.db.Collection(tableName).Find(ctx, bson.M{mongoField(keyName): keyValue})
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

func (m *MongoClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	cursor, err := m.db.Collection(tableName).Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

func (m *MongoClient) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
