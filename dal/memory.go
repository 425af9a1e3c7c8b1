package dal

import (
	"context"
	"fmt"
	"fooddonation-backend/models"
	"fooddonation-backend/utils/logger"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// memoryTable keeps documents in insertion order
type memoryTable struct {
	order []string
	items map[string]map[string]types.AttributeValue
}

// MemoryClient is a process-local store encoding documents with the DynamoDB
// attribute codec so every driver sees identical field names.
type MemoryClient struct {
	mu      sync.RWMutex
	keyName string
	tables  map[string]*memoryTable
	logger  logger.Logger
}

// NewMemoryClient creates an empty store keyed on the "id" attribute
func NewMemoryClient(log logger.Logger) *MemoryClient {
	return &MemoryClient{
		keyName: "id",
		tables:  make(map[string]*memoryTable),
		logger:  log,
	}
}

func (m *MemoryClient) table(name string) *memoryTable {
	t, ok := m.tables[name]
	if !ok {
		t = &memoryTable{items: make(map[string]map[string]types.AttributeValue)}
		m.tables[name] = t
	}
	return t
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, bool) {
	s, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func (m *MemoryClient) GetItem(ctx context.Context, cfg models.QueryConfig, result interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[cfg.TableName]
	if !ok {
		return models.NewNotFoundError("item", cfg.KeyValue)
	}

	if cfg.IndexName == "" && cfg.KeyName == m.keyName {
		item, ok := t.items[cfg.KeyValue]
		if !ok {
			return models.NewNotFoundError("item", cfg.KeyValue)
		}
		return attributevalue.UnmarshalMap(item, result)
	}

	for _, id := range t.order {
		item := t.items[id]
		if v, ok := stringAttr(item, cfg.KeyName); ok && v == cfg.KeyValue {
			return attributevalue.UnmarshalMap(item, result)
		}
	}
	return models.NewNotFoundError("item", cfg.KeyValue)
}

func (m *MemoryClient) PutItem(ctx context.Context, tableName string, item interface{}, constraints ...models.UniqueConstraint) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	id, ok := stringAttr(av, m.keyName)
	if !ok || id == "" {
		return fmt.Errorf("item has no %s attribute", m.keyName)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.table(tableName)
	for _, c := range constraints {
		if c.Value == "" {
			continue
		}
		for _, otherID := range t.order {
			if otherID == id {
				continue
			}
			if v, ok := stringAttr(t.items[otherID], c.Field); ok && v == c.Value {
				return models.NewValidationError(c.Field, models.ValidationDuplicate, "")
			}
		}
	}

	if _, exists := t.items[id]; !exists {
		t.order = append(t.order, id)
	}
	t.items[id] = av
	return nil
}

func (m *MemoryClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.table(tableName)
	item, ok := t.items[keyValue]
	if !ok {
		return models.NewNotFoundError("item", keyValue)
	}

	updated := make(map[string]types.AttributeValue, len(item)+len(updates))
	for k, v := range item {
		updated[k] = v
	}
	for field, value := range updates {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return err
		}
		updated[field] = av
	}
	t.items[keyValue] = updated
	return nil
}

func (m *MemoryClient) DeleteItem(ctx context.Context, tableName, key, value string, constraints ...models.UniqueConstraint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.table(tableName)
	if _, ok := t.items[value]; !ok {
		return models.NewNotFoundError("item", value)
	}
	delete(t.items, value)
	for i, id := range t.order {
		if id == value {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := []map[string]types.AttributeValue{}
	if t, ok := m.tables[tableName]; ok {
		for _, id := range t.order {
			if v, ok := stringAttr(t.items[id], keyName); ok && v == keyValue {
				items = append(items, t.items[id])
			}
		}
	}
	return attributevalue.UnmarshalListOfMaps(items, results)
}

func (m *MemoryClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := []map[string]types.AttributeValue{}
	if t, ok := m.tables[tableName]; ok {
		for _, id := range t.order {
			items = append(items, t.items[id])
		}
	}
	return attributevalue.UnmarshalListOfMaps(items, results)
}

func (m *MemoryClient) Close(ctx context.Context) error {
	m.logger.Info("Memory store closed")
	return nil
}
