package services

import (
	"context"
	"errors"
	"fooddonation-backend/models"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DonationServiceTestSuite struct {
	suite.Suite
	donationRepo *MockDonationRepository
	ngoRepo      *MockNGORepository
	service      *DonationService
	ctx          context.Context
}

func (suite *DonationServiceTestSuite) SetupTest() {
	suite.donationRepo = new(MockDonationRepository)
	suite.ngoRepo = new(MockNGORepository)
	suite.service = NewDonationService(suite.donationRepo, suite.ngoRepo, newQuietLogger())
	suite.ctx = context.Background()
}

func (suite *DonationServiceTestSuite) TearDownTest() {
	suite.donationRepo.AssertExpectations(suite.T())
	suite.ngoRepo.AssertExpectations(suite.T())
}

func (suite *DonationServiceTestSuite) TestCreateDefaultsToPending() {
	suite.donationRepo.On("CreateDonation", suite.ctx, mock.MatchedBy(func(d *models.Donation) bool {
		return d.Status == models.DonationPending && d.DonorName == "Ana"
	})).Return(&models.Donation{ID: "d1", Status: models.DonationPending}, nil)

	created, err := suite.service.CreateDonation(suite.ctx, &models.Donation{DonorName: "  Ana "})

	suite.NoError(err)
	suite.Equal("d1", created.ID)
}

func (suite *DonationServiceTestSuite) TestCreateRejectsInvalidStatus() {
	_, err := suite.service.CreateDonation(suite.ctx, &models.Donation{DonorName: "Ana", Status: "lost"})

	ve, ok := models.IsValidationError(err)
	suite.Require().True(ok)
	suite.Equal("status", ve.Field)
	suite.donationRepo.AssertNotCalled(suite.T(), "CreateDonation", mock.Anything, mock.Anything)
}

func (suite *DonationServiceTestSuite) TestGetPopulatesNGO() {
	suite.donationRepo.On("GetDonation", suite.ctx, "d1").Return(&models.Donation{ID: "d1", NGOID: "n1"}, nil)
	suite.ngoRepo.On("GetNGO", suite.ctx, "n1").Return(&models.NGO{ID: "n1", Name: "Feed", Email: "a@feed.org"}, nil)

	got, err := suite.service.GetDonation(suite.ctx, "d1")

	suite.Require().NoError(err)
	suite.Equal(&models.NGOSummary{ID: "n1", Name: "Feed", Email: "a@feed.org"}, got.NGO)
}

func (suite *DonationServiceTestSuite) TestGetWithDanglingNGO() {
	suite.donationRepo.On("GetDonation", suite.ctx, "d1").Return(&models.Donation{ID: "d1", NGOID: "gone"}, nil)
	suite.ngoRepo.On("GetNGO", suite.ctx, "gone").Return(nil, models.NewNotFoundError("NGO", "gone"))

	got, err := suite.service.GetDonation(suite.ctx, "d1")

	suite.Require().NoError(err)
	suite.Nil(got.NGO)
}

func (suite *DonationServiceTestSuite) TestGetNotFound() {
	suite.donationRepo.On("GetDonation", suite.ctx, "nope").Return(nil, models.NewNotFoundError("Donation", "nope"))

	_, err := suite.service.GetDonation(suite.ctx, "nope")

	suite.True(errors.Is(err, models.ErrNotFound))
}

func (suite *DonationServiceTestSuite) TestListPopulates() {
	suite.donationRepo.On("ListDonations", suite.ctx, (*models.DonationFilter)(nil)).Return([]*models.Donation{
		{ID: "d1", NGOID: "n1"},
		{ID: "d2"},
	}, nil)
	suite.ngoRepo.On("ListNGOs", suite.ctx, (*models.NGOFilter)(nil)).Return([]*models.NGO{{ID: "n1", Name: "Feed"}}, nil)

	list, err := suite.service.ListDonations(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.Require().Len(list, 2)
	suite.Equal("Feed", list[0].NGO.Name)
	suite.Nil(list[1].NGO)
}

func (suite *DonationServiceTestSuite) TestListStoreError() {
	suite.donationRepo.On("ListDonations", suite.ctx, mock.Anything).Return(nil, errors.New("boom"))

	_, err := suite.service.ListDonations(suite.ctx, &models.DonationFilter{})

	suite.Error(err)
}

func (suite *DonationServiceTestSuite) TestUpdateMergesAndValidates() {
	existing := &models.Donation{ID: "d1", DonorName: "Ana", Status: models.DonationPending, CarbonFootprint: 2}
	suite.donationRepo.On("GetDonation", suite.ctx, "d1").Return(existing, nil)
	suite.donationRepo.On("UpdateDonation", suite.ctx, mock.MatchedBy(func(d *models.Donation) bool {
		return d.ID == "d1" && d.DonorName == "Ana" && d.Notes == "fragile" && d.CarbonFootprint == 2
	})).Return(&models.Donation{ID: "d1"}, nil)

	_, err := suite.service.UpdateDonation(suite.ctx, "d1", []byte(`{"notes":"fragile"}`))

	suite.NoError(err)
}

func (suite *DonationServiceTestSuite) TestUpdateRejectsInvalidMerge() {
	suite.donationRepo.On("GetDonation", suite.ctx, "d1").Return(&models.Donation{ID: "d1", DonorName: "Ana", Status: models.DonationPending}, nil)

	_, err := suite.service.UpdateDonation(suite.ctx, "d1", []byte(`{"donorName":""}`))

	ve, ok := models.IsValidationError(err)
	suite.Require().True(ok)
	suite.Equal("donorName", ve.Field)
}

func (suite *DonationServiceTestSuite) TestUpdateStatus() {
	suite.donationRepo.On("UpdateDonationStatus", suite.ctx, "d1", models.DonationDistributed).
		Return(&models.Donation{ID: "d1", Status: models.DonationDistributed}, nil)

	got, err := suite.service.UpdateDonationStatus(suite.ctx, "d1", "distributed")
	suite.NoError(err)
	suite.Equal(models.DonationDistributed, got.Status)

	_, err = suite.service.UpdateDonationStatus(suite.ctx, "d1", "")
	_, ok := models.IsValidationError(err)
	suite.True(ok)
}

func (suite *DonationServiceTestSuite) TestOverview() {
	suite.donationRepo.On("ListDonations", suite.ctx, (*models.DonationFilter)(nil)).Return([]*models.Donation{
		{Status: models.DonationPending, CarbonFootprint: 1},
		{Status: models.DonationDistributed, CarbonFootprint: 2},
	}, nil)

	o, err := suite.service.GetOverview(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(2, o.Total)
	suite.Equal(1, o.Pending)
	suite.Equal(3.0, o.CarbonFootprint)
}

func TestDonationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DonationServiceTestSuite))
}
