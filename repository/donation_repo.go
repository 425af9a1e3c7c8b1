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

// DonationRepository implements DonationRepositoryInterface
type DonationRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewDonationRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *DonationRepository {
	return &DonationRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *DonationRepository) table() string {
	return r.config.TableName(dal.DonationsTable)
}

func (r *DonationRepository) CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	r.logger.Infof("Creating donation from: %s", donation.DonorName)

	now := time.Now().UTC()
	if donation.ID == "" {
		donation.ID = utils.GenerateUUID()
	}
	donation.CreatedAt = now
	donation.UpdatedAt = now
	if donation.DonationDate.IsZero() {
		donation.DonationDate = now
	}
	normalizeDonation(donation)

	if err := r.db.PutItem(ctx, r.table(), donation); err != nil {
		r.logger.Errorf("Failed to create donation: %v", err)
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	r.logger.Infof("Donation created successfully: %s", donation.ID)
	return donation, nil
}

func (r *DonationRepository) GetDonation(ctx context.Context, id string) (*models.Donation, error) {
	donation := &models.Donation{}
	if err := r.db.GetItem(ctx, byID(r.table(), id), donation); err != nil {
		return nil, notFound(err, "Donation", id)
	}
	normalizeDonation(donation)
	return donation, nil
}

// ListDonations returns matching donations, newest donationDate first
func (r *DonationRepository) ListDonations(ctx context.Context, filter *models.DonationFilter) ([]*models.Donation, error) {
	var donations []*models.Donation
	var err error

	if filter != nil && filter.Status != "" {
		err = r.db.QueryByIndex(ctx, r.table(), "status-index", "status", string(filter.Status), &donations)
	} else {
		err = r.db.Scan(ctx, r.table(), &donations)
	}
	if err != nil {
		r.logger.Errorf("Failed to list donations: %v", err)
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	donations = applyAdditionalFilters(donations, filter, matchDonation)
	for _, d := range donations {
		normalizeDonation(d)
	}
	sort.SliceStable(donations, func(i, j int) bool {
		return donations[i].DonationDate.After(donations[j].DonationDate)
	})
	return donations, nil
}

// UpdateDonation replaces a stored donation, keeping its identity and creation time
func (r *DonationRepository) UpdateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	existing, err := r.GetDonation(ctx, donation.ID)
	if err != nil {
		return nil, err
	}

	donation.CreatedAt = existing.CreatedAt
	donation.UpdatedAt = time.Now().UTC()
	normalizeDonation(donation)

	if err := r.db.PutItem(ctx, r.table(), donation); err != nil {
		r.logger.Errorf("Failed to update donation %s: %v", donation.ID, err)
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}

	r.logger.Infof("Donation updated successfully: %s", donation.ID)
	return donation, nil
}

func (r *DonationRepository) UpdateDonationStatus(ctx context.Context, id string, status models.DonationStatus) (*models.Donation, error) {
	if err := r.db.UpdateItem(ctx, r.table(), "id", id, statusUpdate(string(status), time.Now().UTC())); err != nil {
		return nil, notFound(err, "Donation", id)
	}

	donation := &models.Donation{}
	if err := loadAfterUpdate(ctx, r.db, r.table(), "Donation", id, donation); err != nil {
		return nil, err
	}
	normalizeDonation(donation)
	r.logger.Infof("Donation %s moved to %s", id, status)
	return donation, nil
}

func (r *DonationRepository) DeleteDonation(ctx context.Context, id string) error {
	if err := r.db.DeleteItem(ctx, r.table(), "id", id); err != nil {
		return notFound(err, "Donation", id)
	}
	r.logger.Infof("Donation deleted: %s", id)
	return nil
}

func normalizeDonation(d *models.Donation) {
	if d.FoodItems == nil {
		d.FoodItems = []models.DonationItem{}
	}
}
