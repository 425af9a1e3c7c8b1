package services

import (
	"context"
	"fmt"
	"fooddonation-backend/aggregation"
	"fooddonation-backend/models"
	"fooddonation-backend/repository"
	"fooddonation-backend/utils/logger"
	"strings"
)

type DonationService struct {
	donationRepo repository.DonationRepositoryInterface
	ngoRepo      repository.NGORepositoryInterface
	logger       logger.Logger
}

func NewDonationService(donationRepo repository.DonationRepositoryInterface, ngoRepo repository.NGORepositoryInterface, logger logger.Logger) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		ngoRepo:      ngoRepo,
		logger:       logger,
	}
}

func (s *DonationService) CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	donation.ID = ""
	donation.DonorName = strings.TrimSpace(donation.DonorName)
	if donation.Status == "" {
		donation.Status = models.DonationPending
	}
	if err := validateEntity(donation); err != nil {
		return nil, err
	}
	return s.donationRepo.CreateDonation(ctx, donation)
}

// GetDonation returns the donation with its NGO reference resolved to {_id, name, email}
func (s *DonationService) GetDonation(ctx context.Context, id string) (*models.PopulatedDonation, error) {
	donation, err := s.donationRepo.GetDonation(ctx, id)
	if err != nil {
		return nil, err
	}

	populated := models.PopulatedDonation{Donation: *donation}
	if donation.NGOID != "" {
		ngo, err := s.ngoRepo.GetNGO(ctx, donation.NGOID)
		switch {
		case err == nil:
			populated.NGO = ngo.Summary(true)
		case !isNotFound(err):
			return nil, err
		}
	}
	return &populated, nil
}

func (s *DonationService) ListDonations(ctx context.Context, filter *models.DonationFilter) ([]models.PopulatedDonation, error) {
	donations, err := s.donationRepo.ListDonations(ctx, filter)
	if err != nil {
		return nil, err
	}

	ngos, err := s.ngoRepo.ListNGOs(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve NGO references: %w", err)
	}
	byID := make(map[string]*models.NGO, len(ngos))
	for _, n := range ngos {
		byID[n.ID] = n
	}

	out := make([]models.PopulatedDonation, 0, len(donations))
	for _, d := range donations {
		out = append(out, aggregation.Populate(d, byID, true))
	}
	return out, nil
}

func (s *DonationService) UpdateDonation(ctx context.Context, id string, patch []byte) (*models.Donation, error) {
	existing, err := s.donationRepo.GetDonation(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &models.Donation{}
	if err := mergePatch(existing, patch, updated); err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	if updated.DonationDate.IsZero() {
		updated.DonationDate = existing.DonationDate
	}
	if err := validateEntity(updated); err != nil {
		return nil, err
	}
	return s.donationRepo.UpdateDonation(ctx, updated)
}

func (s *DonationService) UpdateDonationStatus(ctx context.Context, id, status string) (*models.Donation, error) {
	next := models.DonationStatus(status)
	if !next.Valid() {
		return nil, invalidStatus(status)
	}
	return s.donationRepo.UpdateDonationStatus(ctx, id, next)
}

func (s *DonationService) DeleteDonation(ctx context.Context, id string) error {
	return s.donationRepo.DeleteDonation(ctx, id)
}

func (s *DonationService) GetOverview(ctx context.Context) (*models.DonationOverview, error) {
	donations, err := s.donationRepo.ListDonations(ctx, nil)
	if err != nil {
		return nil, err
	}
	overview := aggregation.DonationOverview(donations)
	return &overview, nil
}
