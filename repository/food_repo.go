package repository

import (
	"context"
	"fmt"
	"fooddonation-backend/dal"
	"fooddonation-backend/models"
	"fooddonation-backend/utils"
	"fooddonation-backend/utils/logger"
	"sort"
	"time"
)

// FoodRepository implements FoodRepositoryInterface
type FoodRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewFoodRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *FoodRepository {
	return &FoodRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *FoodRepository) table() string {
	return r.config.TableName(dal.FoodTable)
}

func (r *FoodRepository) CreateFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	r.logger.Infof("Creating food item: %s", item.Name)

	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = utils.GenerateUUID()
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := r.db.PutItem(ctx, r.table(), item); err != nil {
		r.logger.Errorf("Failed to create food item: %v", err)
		return nil, fmt.Errorf("failed to create food item: %w", err)
	}

	r.logger.Infof("Food item created successfully: %s", item.ID)
	return item, nil
}

func (r *FoodRepository) GetFoodItem(ctx context.Context, id string) (*models.FoodItem, error) {
	item := &models.FoodItem{}
	if err := r.db.GetItem(ctx, byID(r.table(), id), item); err != nil {
		return nil, notFound(err, "Food item", id)
	}
	return item, nil
}

// ListFoodItems returns matching items, soonest expiry first
func (r *FoodRepository) ListFoodItems(ctx context.Context, filter *models.FoodFilter) ([]*models.FoodItem, error) {
	var items []*models.FoodItem
	var err error

	if filter != nil && filter.Category != "" {
		err = r.db.QueryByIndex(ctx, r.table(), "category-index", "category", string(filter.Category), &items)
	} else {
		err = r.db.Scan(ctx, r.table(), &items)
	}
	if err != nil {
		r.logger.Errorf("Failed to list food items: %v", err)
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}

	items = applyAdditionalFilters(items, filter, matchFood)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ExpiryDate.Before(items[j].ExpiryDate)
	})
	return items, nil
}

func (r *FoodRepository) UpdateFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	existing, err := r.GetFoodItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now().UTC()

	if err := r.db.PutItem(ctx, r.table(), item); err != nil {
		r.logger.Errorf("Failed to update food item %s: %v", item.ID, err)
		return nil, fmt.Errorf("failed to update food item: %w", err)
	}

	r.logger.Infof("Food item updated successfully: %s", item.ID)
	return item, nil
}

func (r *FoodRepository) UpdateFoodStatus(ctx context.Context, id string, status models.FoodStatus) (*models.FoodItem, error) {
	if err := r.db.UpdateItem(ctx, r.table(), "id", id, statusUpdate(string(status), time.Now().UTC())); err != nil {
		return nil, notFound(err, "Food item", id)
	}

	item := &models.FoodItem{}
	if err := loadAfterUpdate(ctx, r.db, r.table(), "Food item", id, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *FoodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	if err := r.db.DeleteItem(ctx, r.table(), "id", id); err != nil {
		return notFound(err, "Food item", id)
	}
	r.logger.Infof("Food item deleted: %s", id)
	return nil
}
