package repository

import (
	"context"
	"errors"
	"fmt"
	"fooddonation-backend/dal"
	"fooddonation-backend/models"
	"fooddonation-backend/utils/logger"
	"time"
)

// Repository groups every entity repository over one store
type Repository struct {
	Donation      *DonationRepository
	Food          *FoodRepository
	NGO           *NGORepository
	Communication *CommunicationRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Donation:      NewDonationRepository(db, cfg, log),
		Food:          NewFoodRepository(db, cfg, log),
		NGO:           NewNGORepository(db, cfg, log),
		Communication: NewCommunicationRepository(db, cfg, log),
	}
}

func (r *Repository) GetDonationRepository() DonationRepositoryInterface {
	return r.Donation
}

func (r *Repository) GetFoodRepository() FoodRepositoryInterface {
	return r.Food
}

func (r *Repository) GetNGORepository() NGORepositoryInterface {
	return r.NGO
}

func (r *Repository) GetCommunicationRepository() CommunicationRepositoryInterface {
	return r.Communication
}

// byID builds the primary key lookup for a table
func byID(table, id string) models.QueryConfig {
	return models.QueryConfig{
		TableName: table,
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}
}

// notFound rewrites a store miss into an entity-named NotFoundError
func notFound(err error, entity, id string) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NewNotFoundError(entity, id)
	}
	return fmt.Errorf("failed to load %s %s: %w", entity, id, err)
}

// statusUpdate is the partial update applied by the PATCH status endpoints
func statusUpdate(status string, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"status":    status,
		"updatedAt": now,
	}
}

// loadAfterUpdate re-reads a document after a partial update
func loadAfterUpdate(ctx context.Context, db dal.DatabaseClientInterface, table, entity, id string, out interface{}) error {
	if err := db.GetItem(ctx, byID(table, id), out); err != nil {
		return notFound(err, entity, id)
	}
	return nil
}
