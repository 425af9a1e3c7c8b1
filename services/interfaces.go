package services

import (
	"context"
	"fooddonation-backend/models"
	"io"
)

// DonationServiceInterface defines the contract for donation service
type DonationServiceInterface interface {
	CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error)
	GetDonation(ctx context.Context, id string) (*models.PopulatedDonation, error)
	ListDonations(ctx context.Context, filter *models.DonationFilter) ([]models.PopulatedDonation, error)
	UpdateDonation(ctx context.Context, id string, patch []byte) (*models.Donation, error)
	UpdateDonationStatus(ctx context.Context, id, status string) (*models.Donation, error)
	DeleteDonation(ctx context.Context, id string) error
	GetOverview(ctx context.Context) (*models.DonationOverview, error)
}

// FoodServiceInterface defines the contract for food inventory service
type FoodServiceInterface interface {
	CreateFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error)
	GetFoodItem(ctx context.Context, id string) (*models.FoodItem, error)
	ListFoodItems(ctx context.Context, filter *models.FoodFilter) ([]*models.FoodItem, error)
	UpdateFoodItem(ctx context.Context, id string, patch []byte) (*models.FoodItem, error)
	UpdateFoodStatus(ctx context.Context, id, status string) (*models.FoodItem, error)
	DeleteFoodItem(ctx context.Context, id string) error
	GetOverview(ctx context.Context) (*models.FoodOverview, error)
}

// NGOServiceInterface defines the contract for NGO service
type NGOServiceInterface interface {
	CreateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error)
	GetNGO(ctx context.Context, id string) (*models.NGO, error)
	ListNGOs(ctx context.Context, filter *models.NGOFilter) ([]*models.NGO, error)
	UpdateNGO(ctx context.Context, id string, patch []byte) (*models.NGO, error)
	UpdateNGOStatus(ctx context.Context, id, status string) (*models.NGO, error)
	DeleteNGO(ctx context.Context, id string) error
	GetOverview(ctx context.Context) (*models.NGOOverview, error)
}

// CommunicationServiceInterface defines the contract for communication service
type CommunicationServiceInterface interface {
	CreateCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error)
	GetCommunication(ctx context.Context, id string) (*models.Communication, error)
	ListCommunications(ctx context.Context, filter *models.CommunicationFilter) ([]*models.Communication, error)
	UpdateCommunicationStatus(ctx context.Context, id, status string) (*models.Communication, error)
	BulkUpdateStatus(ctx context.Context, req *models.BulkStatusRequest) (*models.BulkStatusResult, error)
	DeleteCommunication(ctx context.Context, id string) error
	AddAttachment(ctx context.Context, id string, upload *AttachmentUpload) (*models.Communication, error)
	GetOverview(ctx context.Context) (*models.CommunicationOverview, error)
}

// ReportServiceInterface defines the contract for the dashboard reports
type ReportServiceInterface interface {
	GetDashboardOverview(ctx context.Context) (*models.DashboardKPIs, error)
	GetMonthlyTrends(ctx context.Context) ([]models.MonthlyTrend, error)
	GetFoodDistribution(ctx context.Context) ([]models.CategoryStat, error)
	GetNGOPerformance(ctx context.Context) ([]models.NGOPerformance, error)
	GetExpiryAlerts(ctx context.Context) ([]*models.FoodItem, error)
	GetCustomReport(ctx context.Context, req *models.CustomReportRequest) (*models.CustomReport, error)
	ExportCustomReport(ctx context.Context, req *models.CustomReportRequest, w io.Writer) error
}

// ServiceContainerInterface defines the main service container contract
type ServiceContainerInterface interface {
	GetDonationService() DonationServiceInterface
	GetFoodService() FoodServiceInterface
	GetNGOService() NGOServiceInterface
	GetCommunicationService() CommunicationServiceInterface
	GetReportService() ReportServiceInterface
}

// Mailer delivers an HTML message to one recipient
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ObjectStore persists uploaded files and returns their public location
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// ReportWriter renders a custom report to w
type ReportWriter interface {
	WriteCustomReport(report *models.CustomReport, w io.Writer) error
}

// AttachmentUpload is a file received for a communication
type AttachmentUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
