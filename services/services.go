package services

import (
	"fooddonation-backend/models"
	"fooddonation-backend/repository"
	"fooddonation-backend/utils/logger"
	"time"
)

// Dependencies carries the optional collaborators; nil members disable their feature
type Dependencies struct {
	Mailer       Mailer
	ObjectStore  ObjectStore
	ReportWriter ReportWriter
	Now          func() time.Time
}

// Service implements ServiceContainerInterface
type Service struct {
	donationService      DonationServiceInterface
	foodService          FoodServiceInterface
	ngoService           NGOServiceInterface
	communicationService CommunicationServiceInterface
	reportService        ReportServiceInterface
}

// NewService creates a new service container with all dependencies injected
func NewService(
	repoContainer repository.RepositoryContainerInterface,
	deps Dependencies,
	logger logger.Logger,
	config *models.Config,
) ServiceContainerInterface {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{
		donationService:      NewDonationService(repoContainer.GetDonationRepository(), repoContainer.GetNGORepository(), logger),
		foodService:          NewFoodService(repoContainer.GetFoodRepository(), logger),
		ngoService:           NewNGOService(repoContainer.GetNGORepository(), logger),
		communicationService: NewCommunicationService(repoContainer.GetCommunicationRepository(), deps.Mailer, deps.ObjectStore, logger),
		reportService: NewReportService(
			repoContainer.GetDonationRepository(),
			repoContainer.GetFoodRepository(),
			repoContainer.GetNGORepository(),
			deps.ReportWriter,
			deps.Now,
			logger,
		),
	}
}

func (s *Service) GetDonationService() DonationServiceInterface {
	return s.donationService
}

func (s *Service) GetFoodService() FoodServiceInterface {
	return s.foodService
}

func (s *Service) GetNGOService() NGOServiceInterface {
	return s.ngoService
}

func (s *Service) GetCommunicationService() CommunicationServiceInterface {
	return s.communicationService
}

func (s *Service) GetReportService() ReportServiceInterface {
	return s.reportService
}
