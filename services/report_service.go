package services

import (
	"context"
	"errors"
	"fooddonation-backend/aggregation"
	"fooddonation-backend/models"
	"fooddonation-backend/repository"
	"fooddonation-backend/utils/logger"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrExportDisabled is returned when no report writer is configured
var ErrExportDisabled = errors.New("report export is not configured")

// ReportService loads the collections a report needs and hands them to the aggregation package.
// Collections are loaded independently, so one response may mix pre- and post-write state.
type ReportService struct {
	donationRepo repository.DonationRepositoryInterface
	foodRepo     repository.FoodRepositoryInterface
	ngoRepo      repository.NGORepositoryInterface
	writer       ReportWriter
	now          func() time.Time
	logger       logger.Logger
}

func NewReportService(
	donationRepo repository.DonationRepositoryInterface,
	foodRepo repository.FoodRepositoryInterface,
	ngoRepo repository.NGORepositoryInterface,
	writer ReportWriter,
	now func() time.Time,
	logger logger.Logger,
) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		donationRepo: donationRepo,
		foodRepo:     foodRepo,
		ngoRepo:      ngoRepo,
		writer:       writer,
		now:          now,
		logger:       logger,
	}
}

// collections holds whichever entity lists a report loaded
type collections struct {
	donations []*models.Donation
	food      []*models.FoodItem
	ngos      []*models.NGO
}

// load fetches the requested collections concurrently
func (s *ReportService) load(ctx context.Context, donations, food, ngos bool) (*collections, error) {
	var out collections
	g, gctx := errgroup.WithContext(ctx)

	if donations {
		g.Go(func() error {
			var err error
			out.donations, err = s.donationRepo.ListDonations(gctx, nil)
			return err
		})
	}
	if food {
		g.Go(func() error {
			var err error
			out.food, err = s.foodRepo.ListFoodItems(gctx, nil)
			return err
		})
	}
	if ngos {
		g.Go(func() error {
			var err error
			out.ngos, err = s.ngoRepo.ListNGOs(gctx, nil)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Errorf("Failed to load report data: %v", err)
		return nil, err
	}
	return &out, nil
}

func (s *ReportService) GetDashboardOverview(ctx context.Context) (*models.DashboardKPIs, error) {
	data, err := s.load(ctx, true, false, true)
	if err != nil {
		return nil, err
	}
	kpis := aggregation.DashboardKPIs(data.donations, data.ngos)
	return &kpis, nil
}

func (s *ReportService) GetMonthlyTrends(ctx context.Context) ([]models.MonthlyTrend, error) {
	data, err := s.load(ctx, true, false, false)
	if err != nil {
		return nil, err
	}
	return aggregation.MonthlyTrends(data.donations), nil
}

func (s *ReportService) GetFoodDistribution(ctx context.Context) ([]models.CategoryStat, error) {
	data, err := s.load(ctx, false, true, false)
	if err != nil {
		return nil, err
	}
	return aggregation.FoodDistribution(data.food), nil
}

func (s *ReportService) GetNGOPerformance(ctx context.Context) ([]models.NGOPerformance, error) {
	data, err := s.load(ctx, true, false, true)
	if err != nil {
		return nil, err
	}
	return aggregation.NGOPerformance(data.donations, data.ngos), nil
}

func (s *ReportService) GetExpiryAlerts(ctx context.Context) ([]*models.FoodItem, error) {
	data, err := s.load(ctx, false, true, false)
	if err != nil {
		return nil, err
	}
	return aggregation.ExpiryAlerts(data.food, s.now()), nil
}

func (s *ReportService) GetCustomReport(ctx context.Context, req *models.CustomReportRequest) (*models.CustomReport, error) {
	if err := validateReportRequest(req); err != nil {
		return nil, err
	}

	// NGOs are needed to resolve donation references as well as for their own facet
	wantsDonations := req.Wants(models.MetricDonations)
	data, err := s.load(ctx, wantsDonations, req.Wants(models.MetricFood), wantsDonations || req.Wants(models.MetricNGOs))
	if err != nil {
		return nil, err
	}

	report := aggregation.CustomReport(req, data.donations, data.food, data.ngos)
	return &report, nil
}

// ExportCustomReport renders the custom report with the configured writer
func (s *ReportService) ExportCustomReport(ctx context.Context, req *models.CustomReportRequest, w io.Writer) error {
	if s.writer == nil {
		return ErrExportDisabled
	}
	report, err := s.GetCustomReport(ctx, req)
	if err != nil {
		return err
	}
	return s.writer.WriteCustomReport(report, w)
}

func validateReportRequest(req *models.CustomReportRequest) error {
	if req == nil {
		return models.NewValidationError("body", models.ValidationRequired, "")
	}
	if req.StartDate.IsZero() {
		return models.NewValidationError("startDate", models.ValidationRequired, "")
	}
	if req.EndDate.IsZero() {
		return models.NewValidationError("endDate", models.ValidationRequired, "")
	}
	if req.EndDate.Before(req.StartDate) {
		return models.NewValidationError("endDate", models.ValidationFormat, "endDate must not be before startDate")
	}
	return nil
}
