package dal

import (
	"context"
	"fmt"
	"fooddonation-backend/models"
	"fooddonation-backend/utils/logger"
)

// Base collection names
const (
	DonationsTable      = "donations"
	FoodTable           = "food"
	NGOsTable           = "ngos"
	CommunicationsTable = "communications"
)

// NewDatabaseClient builds the client selected by cfg.StoreDriver
func NewDatabaseClient(ctx context.Context, cfg *models.Config, log logger.Logger) (DatabaseClientInterface, error) {
	switch cfg.StoreDriver {
	case models.DriverMemory, "":
		log.Warn("Using in-memory store; data is lost on restart")
		return NewMemoryClient(log), nil
	case models.DriverDynamoDB:
		return NewDynamoDBClient(ctx, cfg, log)
	case models.DriverMongoDB:
		return NewMongoClient(ctx, cfg, log, []UniqueIndex{
			{Collection: cfg.TableName(NGOsTable), Field: "email"},
			{Collection: cfg.TableName(NGOsTable), Field: "registrationNumber"},
		})
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
