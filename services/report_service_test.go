package services

import (
	"bytes"
	"context"
	"errors"
	"fooddonation-backend/dal"
	"fooddonation-backend/models"
	"fooddonation-backend/repository"
	"fooddonation-backend/utils/logger"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type stubWriter struct {
	report *models.CustomReport
}

func (w *stubWriter) WriteCustomReport(report *models.CustomReport, out io.Writer) error {
	w.report = report
	_, err := out.Write([]byte("xlsx"))
	return err
}

type ReportServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	repo    *repository.Repository
	writer  *stubWriter
	service *ReportService
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	log := logger.NewLogger("error", "json")
	suite.repo = repository.NewRepository(dal.NewMemoryClient(log), &models.Config{DynamoDBTablePrefix: "test"}, log)
	suite.writer = &stubWriter{}
	suite.service = NewReportService(suite.repo.Donation, suite.repo.Food, suite.repo.NGO, suite.writer,
		func() time.Time { return suite.now }, log)
}

func (suite *ReportServiceTestSuite) addDonation(status models.DonationStatus, ngoID string, quantities ...float64) {
	d := &models.Donation{DonorName: "donor", Status: status, NGOID: ngoID, DonationDate: suite.now}
	for _, q := range quantities {
		d.FoodItems = append(d.FoodItems, models.DonationItem{ItemName: "x", Quantity: f64(q), Unit: "kg"})
	}
	_, err := suite.repo.Donation.CreateDonation(suite.ctx, d)
	suite.Require().NoError(err)
}

func (suite *ReportServiceTestSuite) TestDashboardScenario() {
	suite.addDonation(models.DonationPending, "", 10)
	suite.addDonation(models.DonationDistributed, "", 5, 5)

	kpis, err := suite.service.GetDashboardOverview(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(20.0, kpis.TotalMealsDonated)
	suite.Equal(50.0, kpis.SuccessRate)
}

func (suite *ReportServiceTestSuite) TestDashboardEmptyStore() {
	kpis, err := suite.service.GetDashboardOverview(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(models.DashboardKPIs{}, *kpis)
}

func (suite *ReportServiceTestSuite) TestNGOPerformance() {
	ngo, err := suite.repo.NGO.CreateNGO(suite.ctx, validNGO())
	suite.Require().NoError(err)
	suite.addDonation(models.DonationDistributed, ngo.ID, 4)
	suite.addDonation(models.DonationRejected, ngo.ID, 6)

	perf, err := suite.service.GetNGOPerformance(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(perf, 1)
	suite.Equal(models.NGOPerformance{ID: ngo.ID, NGOName: "Feed", TotalDonations: 2, TotalQuantity: 10, SuccessRate: 50}, perf[0])
}

func (suite *ReportServiceTestSuite) TestExpiryAlertsUseInjectedClock() {
	for name, at := range map[string]time.Time{
		"soon":  suite.now.Add(24 * time.Hour),
		"later": suite.now.Add(8 * 24 * time.Hour),
		"past":  suite.now.Add(-time.Hour),
	} {
		_, err := suite.repo.Food.CreateFoodItem(suite.ctx, &models.FoodItem{
			Name: name, Category: models.CategoryOther, Quantity: f64(1), Unit: "kg", ExpiryDate: at, Status: models.FoodAvailable,
		})
		suite.Require().NoError(err)
	}

	alerts, err := suite.service.GetExpiryAlerts(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 1)
	suite.Equal("soon", alerts[0].Name)
}

func (suite *ReportServiceTestSuite) TestCustomReportFoodOnly() {
	_, err := suite.repo.Food.CreateFoodItem(suite.ctx, &models.FoodItem{
		Name: "Rice", Category: models.CategoryGrains, Quantity: f64(1), Unit: "kg", ExpiryDate: suite.now, Status: models.FoodAvailable,
	})
	suite.Require().NoError(err)

	report, err := suite.service.GetCustomReport(suite.ctx, &models.CustomReportRequest{
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(time.Hour),
		Metrics:   []string{"food", "unknown"},
	})

	suite.Require().NoError(err)
	suite.Nil(report.Donations)
	suite.Nil(report.NGOs)
	suite.Require().NotNil(report.FoodItems)
	suite.Len(*report.FoodItems, 1)
}

func (suite *ReportServiceTestSuite) TestCustomReportWithoutMetricsIsEmpty() {
	suite.addDonation(models.DonationDelivered, "", 2)
	_, err := suite.repo.Food.CreateFoodItem(suite.ctx, &models.FoodItem{
		Name: "Rice", Category: models.CategoryGrains, Quantity: f64(1), Unit: "kg", ExpiryDate: suite.now, Status: models.FoodAvailable,
	})
	suite.Require().NoError(err)

	for _, metrics := range [][]string{nil, {}} {
		report, err := suite.service.GetCustomReport(suite.ctx, &models.CustomReportRequest{
			StartDate: time.Now().Add(-time.Hour),
			EndDate:   time.Now().Add(time.Hour),
			Metrics:   metrics,
		})

		suite.Require().NoError(err)
		suite.Nil(report.Donations)
		suite.Nil(report.FoodItems)
		suite.Nil(report.NGOs)
	}
}

func (suite *ReportServiceTestSuite) TestCustomReportValidation() {
	_, err := suite.service.GetCustomReport(suite.ctx, &models.CustomReportRequest{EndDate: suite.now})
	ve, ok := models.IsValidationError(err)
	suite.Require().True(ok)
	suite.Equal("startDate", ve.Field)

	_, err = suite.service.GetCustomReport(suite.ctx, &models.CustomReportRequest{StartDate: suite.now, EndDate: suite.now.Add(-time.Hour)})
	ve, ok = models.IsValidationError(err)
	suite.Require().True(ok)
	suite.Equal("endDate", ve.Field)
}

func (suite *ReportServiceTestSuite) TestExportUsesWriter() {
	var buf bytes.Buffer
	err := suite.service.ExportCustomReport(suite.ctx, &models.CustomReportRequest{
		StartDate: suite.now, EndDate: suite.now, Metrics: []string{"ngos"},
	}, &buf)

	suite.Require().NoError(err)
	suite.Equal("xlsx", buf.String())
	suite.Require().NotNil(suite.writer.report)
	suite.NotNil(suite.writer.report.NGOs)
}

func (suite *ReportServiceTestSuite) TestExportDisabled() {
	service := NewReportService(suite.repo.Donation, suite.repo.Food, suite.repo.NGO, nil, nil, logger.NewLogger("error", "json"))

	err := service.ExportCustomReport(suite.ctx, &models.CustomReportRequest{StartDate: suite.now, EndDate: suite.now}, io.Discard)

	suite.True(errors.Is(err, ErrExportDisabled))
}

func (suite *ReportServiceTestSuite) TestStoreErrorPropagates() {
	donations := new(MockDonationRepository)
	donations.On("ListDonations", mock.Anything, (*models.DonationFilter)(nil)).Return(nil, errors.New("store offline"))
	service := NewReportService(donations, suite.repo.Food, suite.repo.NGO, nil, nil, newQuietLogger())

	_, err := service.GetMonthlyTrends(suite.ctx)

	suite.EqualError(err, "store offline")
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
