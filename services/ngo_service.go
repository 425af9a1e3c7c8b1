package services

import (
	"context"
	"fooddonation-backend/aggregation"
	"fooddonation-backend/models"
	"fooddonation-backend/repository"
	"fooddonation-backend/utils/logger"
	"strings"
)

type NGOService struct {
	ngoRepo repository.NGORepositoryInterface
	logger  logger.Logger
}

func NewNGOService(ngoRepo repository.NGORepositoryInterface, logger logger.Logger) *NGOService {
	return &NGOService{
		ngoRepo: ngoRepo,
		logger:  logger,
	}
}

func normalizeNGO(ngo *models.NGO) {
	ngo.Name = strings.TrimSpace(ngo.Name)
	ngo.Email = strings.ToLower(strings.TrimSpace(ngo.Email))
	ngo.RegistrationNumber = strings.TrimSpace(ngo.RegistrationNumber)
	ngo.Phone = strings.TrimSpace(ngo.Phone)
}

func (s *NGOService) CreateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error) {
	ngo.ID = ""
	normalizeNGO(ngo)
	if ngo.Status == "" {
		ngo.Status = models.NGOPending
	}
	if err := validateEntity(ngo); err != nil {
		return nil, err
	}
	return s.ngoRepo.CreateNGO(ctx, ngo)
}

func (s *NGOService) GetNGO(ctx context.Context, id string) (*models.NGO, error) {
	return s.ngoRepo.GetNGO(ctx, id)
}

func (s *NGOService) ListNGOs(ctx context.Context, filter *models.NGOFilter) ([]*models.NGO, error) {
	return s.ngoRepo.ListNGOs(ctx, filter)
}

func (s *NGOService) UpdateNGO(ctx context.Context, id string, patch []byte) (*models.NGO, error) {
	existing, err := s.ngoRepo.GetNGO(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &models.NGO{}
	if err := mergePatch(existing, patch, updated); err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	normalizeNGO(updated)
	if err := validateEntity(updated); err != nil {
		return nil, err
	}
	return s.ngoRepo.UpdateNGO(ctx, updated)
}

func (s *NGOService) UpdateNGOStatus(ctx context.Context, id, status string) (*models.NGO, error) {
	next := models.NGOStatus(status)
	if !next.Valid() {
		return nil, invalidStatus(status)
	}
	return s.ngoRepo.UpdateNGOStatus(ctx, id, next)
}

func (s *NGOService) DeleteNGO(ctx context.Context, id string) error {
	return s.ngoRepo.DeleteNGO(ctx, id)
}

func (s *NGOService) GetOverview(ctx context.Context) (*models.NGOOverview, error) {
	ngos, err := s.ngoRepo.ListNGOs(ctx, nil)
	if err != nil {
		return nil, err
	}
	overview := aggregation.NGOOverview(ngos)
	return &overview, nil
}
