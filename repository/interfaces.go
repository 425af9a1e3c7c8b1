package repository

import (
	"context"
	"fooddonation-backend/models"
)

// DonationRepositoryInterface defines the contract for donation repository operations
type DonationRepositoryInterface interface {
	CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error)
	GetDonation(ctx context.Context, id string) (*models.Donation, error)
	ListDonations(ctx context.Context, filter *models.DonationFilter) ([]*models.Donation, error)
	UpdateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error)
	UpdateDonationStatus(ctx context.Context, id string, status models.DonationStatus) (*models.Donation, error)
	DeleteDonation(ctx context.Context, id string) error
}

// FoodRepositoryInterface defines the contract for food inventory operations
type FoodRepositoryInterface interface {
	CreateFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error)
	GetFoodItem(ctx context.Context, id string) (*models.FoodItem, error)
	ListFoodItems(ctx context.Context, filter *models.FoodFilter) ([]*models.FoodItem, error)
	UpdateFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error)
	UpdateFoodStatus(ctx context.Context, id string, status models.FoodStatus) (*models.FoodItem, error)
	DeleteFoodItem(ctx context.Context, id string) error
}

// NGORepositoryInterface defines the contract for NGO repository operations.
// Email and registration number are reserved in the store on every write.
type NGORepositoryInterface interface {
	CreateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error)
	GetNGO(ctx context.Context, id string) (*models.NGO, error)
	ListNGOs(ctx context.Context, filter *models.NGOFilter) ([]*models.NGO, error)
	UpdateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error)
	UpdateNGOStatus(ctx context.Context, id string, status models.NGOStatus) (*models.NGO, error)
	DeleteNGO(ctx context.Context, id string) error
}

// CommunicationRepositoryInterface defines the contract for communication repository operations
type CommunicationRepositoryInterface interface {
	CreateCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error)
	GetCommunication(ctx context.Context, id string) (*models.Communication, error)
	ListCommunications(ctx context.Context, filter *models.CommunicationFilter) ([]*models.Communication, error)
	UpdateCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error)
	UpdateCommunicationStatus(ctx context.Context, id string, status models.CommunicationStatus) (*models.Communication, error)
	DeleteCommunication(ctx context.Context, id string) error
}

// RepositoryContainerInterface defines the contract for the repository container
type RepositoryContainerInterface interface {
	GetDonationRepository() DonationRepositoryInterface
	GetFoodRepository() FoodRepositoryInterface
	GetNGORepository() NGORepositoryInterface
	GetCommunicationRepository() CommunicationRepositoryInterface
}
