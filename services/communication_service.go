package services

import (
	"context"
	"errors"
	"fmt"
	"fooddonation-backend/aggregation"
	"fooddonation-backend/models"
	"fooddonation-backend/repository"
	"fooddonation-backend/utils"
	"fooddonation-backend/utils/logger"
	"html"
	"path"
	"strings"
)

// ErrAttachmentsDisabled is returned by AddAttachment when no object store is configured
var ErrAttachmentsDisabled = errors.New("attachment storage is not configured")

type CommunicationService struct {
	commRepo    repository.CommunicationRepositoryInterface
	mailer      Mailer
	objectStore ObjectStore
	logger      logger.Logger
}

// NewCommunicationService wires the optional mailer and object store; either may be nil
func NewCommunicationService(commRepo repository.CommunicationRepositoryInterface, mailer Mailer, objectStore ObjectStore, logger logger.Logger) *CommunicationService {
	return &CommunicationService{
		commRepo:    commRepo,
		mailer:      mailer,
		objectStore: objectStore,
		logger:      logger,
	}
}

func (s *CommunicationService) applyDefaults(comm *models.Communication) {
	comm.Subject = strings.TrimSpace(comm.Subject)
	comm.Sender = strings.TrimSpace(comm.Sender)
	comm.Recipient = strings.TrimSpace(comm.Recipient)
	if comm.Type == "" {
		comm.Type = models.CommunicationNotification
	}
	if comm.Status == "" {
		comm.Status = models.CommunicationSent
	}
	if comm.Priority == "" {
		comm.Priority = models.PriorityMedium
	}
}

// CreateCommunication stores the communication. Email-type messages addressed to an
// email address are delivered first; a failed delivery is stored with status failed.
func (s *CommunicationService) CreateCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error) {
	comm.ID = ""
	s.applyDefaults(comm)
	if err := validateEntity(comm); err != nil {
		return nil, err
	}

	if s.shouldDeliver(comm) {
		if err := s.mailer.Send(ctx, comm.Recipient, comm.Subject, renderMessage(comm.Message)); err != nil {
			s.logger.Errorf("Failed to deliver email to %s: %v", comm.Recipient, err)
			comm.Status = models.CommunicationFailed
		} else {
			s.logger.Infof("Email delivered to %s", comm.Recipient)
		}
	}

	return s.commRepo.CreateCommunication(ctx, comm)
}

func (s *CommunicationService) shouldDeliver(comm *models.Communication) bool {
	if s.mailer == nil || comm.Type != models.CommunicationEmail {
		return false
	}
	return validate.Var(comm.Recipient, "email") == nil
}

func renderMessage(message string) string {
	paragraphs := strings.Split(html.EscapeString(message), "\n")
	return "<p>" + strings.Join(paragraphs, "<br>") + "</p>"
}

func (s *CommunicationService) GetCommunication(ctx context.Context, id string) (*models.Communication, error) {
	return s.commRepo.GetCommunication(ctx, id)
}

func (s *CommunicationService) ListCommunications(ctx context.Context, filter *models.CommunicationFilter) ([]*models.Communication, error) {
	return s.commRepo.ListCommunications(ctx, filter)
}

func (s *CommunicationService) UpdateCommunicationStatus(ctx context.Context, id, status string) (*models.Communication, error) {
	next := models.CommunicationStatus(status)
	if !next.Valid() {
		return nil, invalidStatus(status)
	}
	return s.commRepo.UpdateCommunicationStatus(ctx, id, next)
}

// BulkUpdateStatus sets the status of every listed communication. Unknown ids are
// skipped; only communications whose status changed are counted.
func (s *CommunicationService) BulkUpdateStatus(ctx context.Context, req *models.BulkStatusRequest) (*models.BulkStatusResult, error) {
	if req == nil || len(req.IDs) == 0 {
		return nil, models.NewValidationError("ids", models.ValidationRequired, "ids must be a non-empty list")
	}
	next := models.CommunicationStatus(req.Status)
	if !next.Valid() {
		return nil, invalidStatus(req.Status)
	}

	modified := 0
	seen := make(map[string]bool, len(req.IDs))
	for _, id := range req.IDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		current, err := s.commRepo.GetCommunication(ctx, id)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		if current.Status == next {
			continue
		}
		if _, err := s.commRepo.UpdateCommunicationStatus(ctx, id, next); err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		modified++
	}

	s.logger.Infof("Bulk status %s applied to %d communications", next, modified)
	return &models.BulkStatusResult{
		Message:       fmt.Sprintf("Updated %d communications", modified),
		ModifiedCount: modified,
	}, nil
}

func (s *CommunicationService) DeleteCommunication(ctx context.Context, id string) error {
	return s.commRepo.DeleteCommunication(ctx, id)
}

// AddAttachment uploads the file and appends it to the communication's attachments
func (s *CommunicationService) AddAttachment(ctx context.Context, id string, upload *AttachmentUpload) (*models.Communication, error) {
	if s.objectStore == nil {
		return nil, ErrAttachmentsDisabled
	}
	if upload == nil || upload.Body == nil {
		return nil, models.NewValidationError("file", models.ValidationRequired, "")
	}
	filename := path.Base(strings.ReplaceAll(upload.Filename, "\\", "/"))
	if filename == "" || filename == "." || filename == "/" {
		return nil, models.NewValidationError("file", models.ValidationFormat, "file must have a name")
	}

	comm, err := s.commRepo.GetCommunication(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("communications/%s/%s-%s", id, utils.GenerateUUID(), filename)
	location, err := s.objectStore.Put(ctx, key, upload.Body, upload.Size, upload.ContentType)
	if err != nil {
		s.logger.Errorf("Failed to upload attachment for %s: %v", id, err)
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	comm.Attachments = append(comm.Attachments, models.Attachment{
		Filename: filename,
		Path:     location,
		Type:     upload.ContentType,
	})
	return s.commRepo.UpdateCommunication(ctx, comm)
}

func (s *CommunicationService) GetOverview(ctx context.Context) (*models.CommunicationOverview, error) {
	comms, err := s.commRepo.ListCommunications(ctx, nil)
	if err != nil {
		return nil, err
	}
	overview := aggregation.CommunicationOverview(comms)
	return &overview, nil
}
