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

// CommunicationRepository implements CommunicationRepositoryInterface
type CommunicationRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewCommunicationRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *CommunicationRepository {
	return &CommunicationRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *CommunicationRepository) table() string {
	return r.config.TableName(dal.CommunicationsTable)
}

func (r *CommunicationRepository) CreateCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error) {
	r.logger.Infof("Creating %s communication to: %s", comm.Type, comm.Recipient)

	now := time.Now().UTC()
	if comm.ID == "" {
		comm.ID = utils.GenerateUUID()
	}
	comm.CreatedAt = now
	comm.UpdatedAt = now
	normalizeCommunication(comm)

	if err := r.db.PutItem(ctx, r.table(), comm); err != nil {
		r.logger.Errorf("Failed to create communication: %v", err)
		return nil, fmt.Errorf("failed to create communication: %w", err)
	}

	r.logger.Infof("Communication created successfully: %s", comm.ID)
	return comm, nil
}

func (r *CommunicationRepository) GetCommunication(ctx context.Context, id string) (*models.Communication, error) {
	comm := &models.Communication{}
	if err := r.db.GetItem(ctx, byID(r.table(), id), comm); err != nil {
		return nil, notFound(err, "Communication", id)
	}
	normalizeCommunication(comm)
	return comm, nil
}

// ListCommunications returns matching communications, newest first
func (r *CommunicationRepository) ListCommunications(ctx context.Context, filter *models.CommunicationFilter) ([]*models.Communication, error) {
	var comms []*models.Communication
	var err error

	if filter != nil && filter.Status != "" {
		err = r.db.QueryByIndex(ctx, r.table(), "status-index", "status", string(filter.Status), &comms)
	} else {
		err = r.db.Scan(ctx, r.table(), &comms)
	}
	if err != nil {
		r.logger.Errorf("Failed to list communications: %v", err)
		return nil, fmt.Errorf("failed to list communications: %w", err)
	}

	comms = applyAdditionalFilters(comms, filter, matchCommunication)
	for _, c := range comms {
		normalizeCommunication(c)
	}
	sort.SliceStable(comms, func(i, j int) bool {
		return comms[i].CreatedAt.After(comms[j].CreatedAt)
	})
	return comms, nil
}

// UpdateCommunication replaces a stored communication; used to append attachments
func (r *CommunicationRepository) UpdateCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error) {
	existing, err := r.GetCommunication(ctx, comm.ID)
	if err != nil {
		return nil, err
	}

	comm.CreatedAt = existing.CreatedAt
	comm.UpdatedAt = time.Now().UTC()
	normalizeCommunication(comm)

	if err := r.db.PutItem(ctx, r.table(), comm); err != nil {
		r.logger.Errorf("Failed to update communication %s: %v", comm.ID, err)
		return nil, fmt.Errorf("failed to update communication: %w", err)
	}
	return comm, nil
}

func (r *CommunicationRepository) UpdateCommunicationStatus(ctx context.Context, id string, status models.CommunicationStatus) (*models.Communication, error) {
	if err := r.db.UpdateItem(ctx, r.table(), "id", id, statusUpdate(string(status), time.Now().UTC())); err != nil {
		return nil, notFound(err, "Communication", id)
	}

	comm := &models.Communication{}
	if err := loadAfterUpdate(ctx, r.db, r.table(), "Communication", id, comm); err != nil {
		return nil, err
	}
	normalizeCommunication(comm)
	return comm, nil
}

func (r *CommunicationRepository) DeleteCommunication(ctx context.Context, id string) error {
	if err := r.db.DeleteItem(ctx, r.table(), "id", id); err != nil {
		return notFound(err, "Communication", id)
	}
	r.logger.Infof("Communication deleted: %s", id)
	return nil
}

func normalizeCommunication(c *models.Communication) {
	if c.Attachments == nil {
		c.Attachments = []models.Attachment{}
	}
}
