package services

import (
	"context"
	"errors"
	"fooddonation-backend/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CommunicationServiceTestSuite struct {
	suite.Suite
	repo    *MockCommunicationRepository
	mailer  *MockMailer
	store   *MockObjectStore
	service *CommunicationService
	ctx     context.Context
}

func (suite *CommunicationServiceTestSuite) SetupTest() {
	suite.repo = new(MockCommunicationRepository)
	suite.mailer = new(MockMailer)
	suite.store = new(MockObjectStore)
	suite.service = NewCommunicationService(suite.repo, suite.mailer, suite.store, newQuietLogger())
	suite.ctx = context.Background()
}

func (suite *CommunicationServiceTestSuite) TearDownTest() {
	suite.repo.AssertExpectations(suite.T())
	suite.mailer.AssertExpectations(suite.T())
	suite.store.AssertExpectations(suite.T())
}

func (suite *CommunicationServiceTestSuite) TestCreateAppliesDefaults() {
	in := &models.Communication{
		Sender: "ops", Recipient: "Harvest Hope", Subject: " Pickup ", Message: "Tomorrow",
	}
	suite.repo.On("CreateCommunication", suite.ctx, in).Return(in, nil)

	_, err := suite.service.CreateCommunication(suite.ctx, in)

	suite.Require().NoError(err)
	suite.Equal(models.CommunicationNotification, in.Type)
	suite.Equal(models.CommunicationSent, in.Status)
	suite.Equal(models.PriorityMedium, in.Priority)
	suite.Equal("Pickup", in.Subject)
	suite.mailer.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommunicationServiceTestSuite) TestCreateEmailDelivers() {
	suite.mailer.On("Send", suite.ctx, "team@feed.org", "Pickup", "<p>a &lt;b&gt;<br>c</p>").Return(nil)
	suite.repo.On("CreateCommunication", suite.ctx, mock.MatchedBy(func(c *models.Communication) bool {
		return c.Status == models.CommunicationSent
	})).Return(&models.Communication{ID: "c1", Status: models.CommunicationSent}, nil)

	_, err := suite.service.CreateCommunication(suite.ctx, &models.Communication{
		Sender: "ops", Recipient: "team@feed.org", Subject: "Pickup", Message: "a <b>\nc", Type: models.CommunicationEmail,
	})

	suite.NoError(err)
}

func (suite *CommunicationServiceTestSuite) TestCreateEmailFailureStoresFailed() {
	suite.mailer.On("Send", suite.ctx, "team@feed.org", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	suite.repo.On("CreateCommunication", suite.ctx, mock.MatchedBy(func(c *models.Communication) bool {
		return c.Status == models.CommunicationFailed
	})).Return(&models.Communication{ID: "c1", Status: models.CommunicationFailed}, nil)

	created, err := suite.service.CreateCommunication(suite.ctx, &models.Communication{
		Sender: "ops", Recipient: "team@feed.org", Subject: "Pickup", Message: "m", Type: models.CommunicationEmail,
	})

	suite.NoError(err)
	suite.Equal(models.CommunicationFailed, created.Status)
}

func (suite *CommunicationServiceTestSuite) TestCreateEmailToNonAddressSkipsDelivery() {
	suite.repo.On("CreateCommunication", suite.ctx, mock.Anything).Return(&models.Communication{ID: "c1"}, nil)

	_, err := suite.service.CreateCommunication(suite.ctx, &models.Communication{
		Sender: "ops", Recipient: "Harvest Hope", Subject: "s", Message: "m", Type: models.CommunicationEmail,
	})

	suite.NoError(err)
	suite.mailer.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommunicationServiceTestSuite) TestCreateValidation() {
	_, err := suite.service.CreateCommunication(suite.ctx, &models.Communication{Sender: "ops", Subject: "s", Message: "m"})

	ve, ok := models.IsValidationError(err)
	suite.Require().True(ok)
	suite.Equal("recipient", ve.Field)
}

func (suite *CommunicationServiceTestSuite) TestBulkCountsOnlyChanges() {
	suite.repo.On("GetCommunication", suite.ctx, "a").Return(&models.Communication{ID: "a", Status: models.CommunicationSent}, nil)
	suite.repo.On("GetCommunication", suite.ctx, "b").Return(&models.Communication{ID: "b", Status: models.CommunicationRead}, nil)
	suite.repo.On("GetCommunication", suite.ctx, "missing").Return(nil, models.NewNotFoundError("Communication", "missing"))
	suite.repo.On("UpdateCommunicationStatus", suite.ctx, "a", models.CommunicationRead).
		Return(&models.Communication{ID: "a", Status: models.CommunicationRead}, nil).Once()

	result, err := suite.service.BulkUpdateStatus(suite.ctx, &models.BulkStatusRequest{
		IDs:    []string{"a", "b", "missing", "a"},
		Status: "read",
	})

	suite.Require().NoError(err)
	suite.Equal(1, result.ModifiedCount)
	suite.Equal("Updated 1 communications", result.Message)
}

func (suite *CommunicationServiceTestSuite) TestBulkRejectsBadRequests() {
	_, err := suite.service.BulkUpdateStatus(suite.ctx, &models.BulkStatusRequest{Status: "read"})
	ve, ok := models.IsValidationError(err)
	suite.Require().True(ok)
	suite.Equal("ids", ve.Field)

	_, err = suite.service.BulkUpdateStatus(suite.ctx, &models.BulkStatusRequest{IDs: []string{"a"}, Status: "archived"})
	ve, ok = models.IsValidationError(err)
	suite.Require().True(ok)
	suite.Equal("status", ve.Field)
}

func (suite *CommunicationServiceTestSuite) TestBulkStoreError() {
	suite.repo.On("GetCommunication", suite.ctx, "a").Return(nil, errors.New("timeout"))

	_, err := suite.service.BulkUpdateStatus(suite.ctx, &models.BulkStatusRequest{IDs: []string{"a"}, Status: "read"})

	suite.Error(err)
	_, ok := models.IsValidationError(err)
	suite.False(ok)
}

func (suite *CommunicationServiceTestSuite) TestAddAttachment() {
	body := strings.NewReader("pdf-bytes")
	suite.repo.On("GetCommunication", suite.ctx, "c1").Return(&models.Communication{ID: "c1", Attachments: []models.Attachment{}}, nil)
	suite.store.On("Put", suite.ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "communications/c1/") && strings.HasSuffix(key, "-report.pdf")
	}), body, int64(9), "application/pdf").Return("https://files.example.org/communications/c1/report.pdf", nil)
	suite.repo.On("UpdateCommunication", suite.ctx, mock.MatchedBy(func(c *models.Communication) bool {
		return len(c.Attachments) == 1 &&
			c.Attachments[0].Filename == "report.pdf" &&
			c.Attachments[0].Type == "application/pdf" &&
			c.Attachments[0].Path == "https://files.example.org/communications/c1/report.pdf"
	})).Return(&models.Communication{ID: "c1"}, nil)

	_, err := suite.service.AddAttachment(suite.ctx, "c1", &AttachmentUpload{
		Filename:    "../../report.pdf",
		ContentType: "application/pdf",
		Size:        9,
		Body:        body,
	})

	suite.NoError(err)
}

func (suite *CommunicationServiceTestSuite) TestAddAttachmentWithoutStore() {
	service := NewCommunicationService(suite.repo, nil, nil, newQuietLogger())

	_, err := service.AddAttachment(suite.ctx, "c1", &AttachmentUpload{Filename: "a.txt", Body: strings.NewReader("x")})

	suite.True(errors.Is(err, ErrAttachmentsDisabled))
}

func (suite *CommunicationServiceTestSuite) TestOverview() {
	suite.repo.On("ListCommunications", suite.ctx, (*models.CommunicationFilter)(nil)).Return([]*models.Communication{
		{Type: models.CommunicationEmail, Status: models.CommunicationSent, Priority: models.PriorityHigh},
	}, nil)

	o, err := suite.service.GetOverview(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(1, o.Unread)
	suite.Equal(1, o.HighPriority)
}

func TestCommunicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommunicationServiceTestSuite))
}
