package services

import (
	"context"
	"fooddonation-backend/models"
	"fooddonation-backend/utils/logger"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockLogger implements logger.Logger; formatted calls record the format only
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{})                 { m.Called(args...) }
func (m *MockLogger) Info(args ...interface{})                  { m.Called(args...) }
func (m *MockLogger) Warn(args ...interface{})                  { m.Called(args...) }
func (m *MockLogger) Error(args ...interface{})                 { m.Called(args...) }
func (m *MockLogger) Fatal(args ...interface{})                 { m.Called(args...) }
func (m *MockLogger) Debugf(format string, args ...interface{}) { m.Called(format) }
func (m *MockLogger) Infof(format string, args ...interface{})  { m.Called(format) }
func (m *MockLogger) Warnf(format string, args ...interface{})  { m.Called(format) }
func (m *MockLogger) Errorf(format string, args ...interface{}) { m.Called(format) }
func (m *MockLogger) Fatalf(format string, args ...interface{}) { m.Called(format) }

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return m
}

func newQuietLogger() *MockLogger {
	log := &MockLogger{}
	for _, method := range []string{"Debugf", "Infof", "Warnf", "Errorf"} {
		log.On(method, mock.Anything).Maybe()
	}
	return log
}

// MockDonationRepository implements repository.DonationRepositoryInterface
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	args := m.Called(ctx, donation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

func (m *MockDonationRepository) GetDonation(ctx context.Context, id string) (*models.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListDonations(ctx context.Context, filter *models.DonationFilter) ([]*models.Donation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Donation), args.Error(1)
}

func (m *MockDonationRepository) UpdateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	args := m.Called(ctx, donation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

func (m *MockDonationRepository) UpdateDonationStatus(ctx context.Context, id string, status models.DonationStatus) (*models.Donation, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

func (m *MockDonationRepository) DeleteDonation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNGORepository implements repository.NGORepositoryInterface
type MockNGORepository struct {
	mock.Mock
}

func (m *MockNGORepository) CreateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error) {
	args := m.Called(ctx, ngo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NGO), args.Error(1)
}

func (m *MockNGORepository) GetNGO(ctx context.Context, id string) (*models.NGO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NGO), args.Error(1)
}

func (m *MockNGORepository) ListNGOs(ctx context.Context, filter *models.NGOFilter) ([]*models.NGO, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NGO), args.Error(1)
}

func (m *MockNGORepository) UpdateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error) {
	args := m.Called(ctx, ngo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NGO), args.Error(1)
}

func (m *MockNGORepository) UpdateNGOStatus(ctx context.Context, id string, status models.NGOStatus) (*models.NGO, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NGO), args.Error(1)
}

func (m *MockNGORepository) DeleteNGO(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommunicationRepository implements repository.CommunicationRepositoryInterface
type MockCommunicationRepository struct {
	mock.Mock
}

func (m *MockCommunicationRepository) CreateCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error) {
	args := m.Called(ctx, comm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) GetCommunication(ctx context.Context, id string) (*models.Communication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) ListCommunications(ctx context.Context, filter *models.CommunicationFilter) ([]*models.Communication, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) UpdateCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error) {
	args := m.Called(ctx, comm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) UpdateCommunicationStatus(ctx context.Context, id string, status models.CommunicationStatus) (*models.Communication, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) DeleteCommunication(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMailer implements Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

// MockObjectStore implements ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, body, size, contentType)
	return args.String(0), args.Error(1)
}
