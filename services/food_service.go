package services

import (
	"context"
	"fooddonation-backend/aggregation"
	"fooddonation-backend/models"
	"fooddonation-backend/repository"
	"fooddonation-backend/utils/logger"
	"strings"
)

type FoodService struct {
	foodRepo repository.FoodRepositoryInterface
	logger   logger.Logger
}

func NewFoodService(foodRepo repository.FoodRepositoryInterface, logger logger.Logger) *FoodService {
	return &FoodService{
		foodRepo: foodRepo,
		logger:   logger,
	}
}

func (s *FoodService) CreateFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	item.ID = ""
	item.Name = strings.TrimSpace(item.Name)
	if item.Status == "" {
		item.Status = models.FoodAvailable
	}
	if err := validateEntity(item); err != nil {
		return nil, err
	}
	return s.foodRepo.CreateFoodItem(ctx, item)
}

func (s *FoodService) GetFoodItem(ctx context.Context, id string) (*models.FoodItem, error) {
	return s.foodRepo.GetFoodItem(ctx, id)
}

func (s *FoodService) ListFoodItems(ctx context.Context, filter *models.FoodFilter) ([]*models.FoodItem, error) {
	return s.foodRepo.ListFoodItems(ctx, filter)
}

func (s *FoodService) UpdateFoodItem(ctx context.Context, id string, patch []byte) (*models.FoodItem, error) {
	existing, err := s.foodRepo.GetFoodItem(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &models.FoodItem{}
	if err := mergePatch(existing, patch, updated); err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Name = strings.TrimSpace(updated.Name)
	if err := validateEntity(updated); err != nil {
		return nil, err
	}
	return s.foodRepo.UpdateFoodItem(ctx, updated)
}

// UpdateFoodStatus sets the operator-maintained status
func (s *FoodService) UpdateFoodStatus(ctx context.Context, id, status string) (*models.FoodItem, error) {
	next := models.FoodStatus(status)
	if !next.Valid() {
		return nil, invalidStatus(status)
	}
	return s.foodRepo.UpdateFoodStatus(ctx, id, next)
}

func (s *FoodService) DeleteFoodItem(ctx context.Context, id string) error {
	return s.foodRepo.DeleteFoodItem(ctx, id)
}

func (s *FoodService) GetOverview(ctx context.Context) (*models.FoodOverview, error) {
	items, err := s.foodRepo.ListFoodItems(ctx, nil)
	if err != nil {
		return nil, err
	}
	overview := aggregation.FoodOverview(items)
	return &overview, nil
}
