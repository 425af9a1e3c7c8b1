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

// NGORepository implements NGORepositoryInterface
type NGORepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewNGORepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *NGORepository {
	return &NGORepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *NGORepository) table() string {
	return r.config.TableName(dal.NGOsTable)
}

// uniqueFields lists the reservations an NGO holds; previous is nil on create
func uniqueFields(ngo, previous *models.NGO) []models.UniqueConstraint {
	email := models.UniqueConstraint{Field: "email", Value: ngo.Email}
	reg := models.UniqueConstraint{Field: "registrationNumber", Value: ngo.RegistrationNumber}
	if previous != nil {
		email.Previous = previous.Email
		reg.Previous = previous.RegistrationNumber
	}
	return []models.UniqueConstraint{email, reg}
}

func (r *NGORepository) CreateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error) {
	r.logger.Infof("Creating NGO: %s", ngo.Name)

	now := time.Now().UTC()
	if ngo.ID == "" {
		ngo.ID = utils.GenerateUUID()
	}
	ngo.CreatedAt = now
	ngo.UpdatedAt = now
	normalizeNGO(ngo)

	if err := r.db.PutItem(ctx, r.table(), ngo, uniqueFields(ngo, nil)...); err != nil {
		r.logger.Errorf("Failed to create NGO: %v", err)
		return nil, fmt.Errorf("failed to create NGO: %w", err)
	}

	r.logger.Infof("NGO created successfully: %s", ngo.ID)
	return ngo, nil
}

func (r *NGORepository) GetNGO(ctx context.Context, id string) (*models.NGO, error) {
	ngo := &models.NGO{}
	if err := r.db.GetItem(ctx, byID(r.table(), id), ngo); err != nil {
		return nil, notFound(err, "NGO", id)
	}
	normalizeNGO(ngo)
	return ngo, nil
}

// ListNGOs returns matching NGOs, most recently created first
func (r *NGORepository) ListNGOs(ctx context.Context, filter *models.NGOFilter) ([]*models.NGO, error) {
	var ngos []*models.NGO
	var err error

	if filter != nil && filter.Status != "" {
		err = r.db.QueryByIndex(ctx, r.table(), "status-index", "status", string(filter.Status), &ngos)
	} else {
		err = r.db.Scan(ctx, r.table(), &ngos)
	}
	if err != nil {
		r.logger.Errorf("Failed to list NGOs: %v", err)
		return nil, fmt.Errorf("failed to list NGOs: %w", err)
	}

	ngos = applyAdditionalFilters(ngos, filter, matchNGO)
	for _, n := range ngos {
		normalizeNGO(n)
	}
	sort.SliceStable(ngos, func(i, j int) bool {
		return ngos[i].CreatedAt.After(ngos[j].CreatedAt)
	})
	return ngos, nil
}

// UpdateNGO replaces a stored NGO, moving its email and registration number reservations
func (r *NGORepository) UpdateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error) {
	existing, err := r.GetNGO(ctx, ngo.ID)
	if err != nil {
		return nil, err
	}

	ngo.CreatedAt = existing.CreatedAt
	ngo.UpdatedAt = time.Now().UTC()
	normalizeNGO(ngo)

	if err := r.db.PutItem(ctx, r.table(), ngo, uniqueFields(ngo, existing)...); err != nil {
		r.logger.Errorf("Failed to update NGO %s: %v", ngo.ID, err)
		return nil, fmt.Errorf("failed to update NGO: %w", err)
	}

	r.logger.Infof("NGO updated successfully: %s", ngo.ID)
	return ngo, nil
}

func (r *NGORepository) UpdateNGOStatus(ctx context.Context, id string, status models.NGOStatus) (*models.NGO, error) {
	if err := r.db.UpdateItem(ctx, r.table(), "id", id, statusUpdate(string(status), time.Now().UTC())); err != nil {
		return nil, notFound(err, "NGO", id)
	}

	ngo := &models.NGO{}
	if err := loadAfterUpdate(ctx, r.db, r.table(), "NGO", id, ngo); err != nil {
		return nil, err
	}
	normalizeNGO(ngo)
	return ngo, nil
}

// DeleteNGO removes the NGO and releases its reservations
func (r *NGORepository) DeleteNGO(ctx context.Context, id string) error {
	existing, err := r.GetNGO(ctx, id)
	if err != nil {
		return err
	}

	if err := r.db.DeleteItem(ctx, r.table(), "id", id, uniqueFields(existing, nil)...); err != nil {
		return notFound(err, "NGO", id)
	}
	r.logger.Infof("NGO deleted: %s", id)
	return nil
}

func normalizeNGO(n *models.NGO) {
	if n.ServiceAreas == nil {
		n.ServiceAreas = []string{}
	}
	if n.VerificationDocuments == nil {
		n.VerificationDocuments = []string{}
	}
}
