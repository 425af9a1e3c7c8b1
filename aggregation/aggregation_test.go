package aggregation

import (
	"encoding/json"
	"fooddonation-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func q(v float64) *float64 {
	return &v
}

func donation(status models.DonationStatus, quantities ...float64) *models.Donation {
	d := &models.Donation{Status: status}
	for _, v := range quantities {
		d.FoodItems = append(d.FoodItems, models.DonationItem{ItemName: "x", Quantity: q(v), Unit: "kg"})
	}
	return d
}

func TestDashboardKPIsScenario(t *testing.T) {
	donations := []*models.Donation{
		donation(models.DonationPending, 10),
		donation(models.DonationDistributed, 5, 5),
	}

	kpis := DashboardKPIs(donations, nil)

	assert.Equal(t, 20.0, kpis.TotalMealsDonated)
	assert.Equal(t, 50.0, kpis.SuccessRate)
}

func TestDashboardKPIsEmpty(t *testing.T) {
	kpis := DashboardKPIs(nil, nil)

	assert.Equal(t, 0.0, kpis.TotalMealsDonated)
	assert.Equal(t, 0.0, kpis.SuccessRate)
	assert.Equal(t, 0, kpis.ActiveNGOPartners)
	assert.Equal(t, 0.0, kpis.CarbonFootprintReduced)
}

func TestDashboardKPIsCountsActivePartnersAndCarbon(t *testing.T) {
	d1 := donation(models.DonationDistributed, 0.1)
	d1.CarbonFootprint = 0.1
	d2 := donation(models.DonationDistributed, 0.2)
	d2.CarbonFootprint = 0.2
	ngos := []*models.NGO{{Status: models.NGOActive}, {Status: models.NGOPending}, {Status: models.NGOActive}}

	kpis := DashboardKPIs([]*models.Donation{d1, d2}, ngos)

	assert.Equal(t, 0.3, kpis.TotalMealsDonated)
	assert.Equal(t, 0.3, kpis.CarbonFootprintReduced)
	assert.Equal(t, 2, kpis.ActiveNGOPartners)
	assert.Equal(t, 100.0, kpis.SuccessRate)
}

func TestSuccessRateBounded(t *testing.T) {
	statuses := []models.DonationStatus{models.DonationPending, models.DonationAccepted, models.DonationRejected, models.DonationDistributed}
	var donations []*models.Donation
	for i := 0; i < 13; i++ {
		donations = append(donations, donation(statuses[i%len(statuses)], float64(i)))
		rate := DashboardKPIs(donations, nil).SuccessRate
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)
	}
}

func TestDonationOverview(t *testing.T) {
	donations := []*models.Donation{
		donation(models.DonationPending),
		donation(models.DonationPending),
		donation(models.DonationAccepted),
		donation(models.DonationRejected),
		donation(models.DonationDistributed),
	}
	donations[0].CarbonFootprint = 1.5
	donations[4].CarbonFootprint = 2

	o := DonationOverview(donations)

	assert.Equal(t, models.DonationOverview{Total: 5, Pending: 2, Accepted: 1, Distributed: 1, CarbonFootprint: 3.5}, o)
	assert.Equal(t, models.DonationOverview{}, DonationOverview(nil))
}

func TestFoodOverviewBreakdownSumsToTotals(t *testing.T) {
	items := []*models.FoodItem{
		{Category: models.CategoryGrains, Quantity: q(5), Status: models.FoodAvailable},
		{Category: models.CategoryDairy, Quantity: q(2.5), Status: models.FoodLow},
		{Category: models.CategoryGrains, Quantity: q(1), Status: models.FoodExpired},
		{Category: models.CategoryFruits, Quantity: q(0), Status: models.FoodLow},
	}

	o := FoodOverview(items)

	assert.Equal(t, 4, o.Total)
	assert.Equal(t, 2, o.LowStock)
	assert.Equal(t, 1, o.Expired)

	count, total := 0, 0.0
	for _, s := range o.CategoryStats {
		count += s.Count
		total += s.TotalQuantity
	}
	assert.Equal(t, o.Total, count)
	assert.Equal(t, 8.5, total)
}

func TestNGOOverviewEmpty(t *testing.T) {
	o := NGOOverview(nil)

	assert.Equal(t, 0, o.Total)
	assert.Equal(t, 0, o.Active)
	assert.Equal(t, 0, o.Pending)
	assert.Equal(t, 0, o.BeneficiariesServed)
	require.NotNil(t, o.ServiceAreaStats)
	assert.Empty(t, o.ServiceAreaStats)

	raw, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"serviceAreaStats":[]`)
}

func TestNGOOverviewServiceAreas(t *testing.T) {
	ngos := []*models.NGO{
		{Status: models.NGOActive, BeneficiariesCount: 100, ServiceAreas: []string{"north", "south"}},
		{Status: models.NGOPending, BeneficiariesCount: 50, ServiceAreas: []string{"south"}},
		{Status: models.NGOInactive, ServiceAreas: []string{"east", "south", "north"}},
	}

	o := NGOOverview(ngos)

	assert.Equal(t, 3, o.Total)
	assert.Equal(t, 1, o.Active)
	assert.Equal(t, 1, o.Pending)
	assert.Equal(t, 150, o.BeneficiariesServed)
	assert.Equal(t, []models.CountStat{
		{ID: "south", Count: 3},
		{ID: "north", Count: 2},
		{ID: "east", Count: 1},
	}, o.ServiceAreaStats)
}

func TestCommunicationOverview(t *testing.T) {
	comms := []*models.Communication{
		{Type: models.CommunicationEmail, Status: models.CommunicationSent, Priority: models.PriorityHigh},
		{Type: models.CommunicationEmail, Status: models.CommunicationRead, Priority: models.PriorityLow},
		{Type: models.CommunicationMessage, Status: models.CommunicationSent, Priority: models.PriorityHigh},
	}

	o := CommunicationOverview(comms)

	assert.Equal(t, 3, o.Total)
	assert.Equal(t, 2, o.Unread)
	assert.Equal(t, 2, o.HighPriority)
	assert.ElementsMatch(t, []models.CountStat{{ID: "email", Count: 2}, {ID: "message", Count: 1}}, o.TypeStats)
	assert.ElementsMatch(t, []models.CountStat{{ID: "sent", Count: 2}, {ID: "read", Count: 1}}, o.StatusStats)
}

func TestMonthlyTrendsAscendingUTC(t *testing.T) {
	d1 := donation(models.DonationPending, 3)
	d1.DonationDate = time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	d2 := donation(models.DonationPending, 4)
	d2.DonationDate = time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)
	d3 := donation(models.DonationPending, 1, 1)
	d3.DonationDate = time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)
	// 2024-03-01 01:00 in +05:00 is still February in UTC
	d4 := donation(models.DonationPending, 10)
	d4.DonationDate = time.Date(2024, 3, 1, 1, 0, 0, 0, time.FixedZone("x", 5*3600))

	trends := MonthlyTrends([]*models.Donation{d1, d2, d3, d4})

	require.Len(t, trends, 2)
	assert.Equal(t, models.MonthlyTrend{ID: models.MonthKey{Year: 2023, Month: 12}, Donations: 1, TotalQuantity: 4}, trends[0])
	assert.Equal(t, models.MonthlyTrend{ID: models.MonthKey{Year: 2024, Month: 2}, Donations: 3, TotalQuantity: 15}, trends[1])
}

func TestFoodDistributionDescending(t *testing.T) {
	items := []*models.FoodItem{
		{Category: models.CategoryDairy, Quantity: q(2)},
		{Category: models.CategoryGrains, Quantity: q(7)},
		{Category: models.CategoryDairy, Quantity: q(3)},
		{Category: models.CategoryFruits, Quantity: q(5)},
	}

	dist := FoodDistribution(items)

	require.Len(t, dist, 3)
	assert.Equal(t, "grains", dist[0].ID)
	// dairy and fruits tie on 5; category name breaks the tie
	assert.Equal(t, "dairy", dist[1].ID)
	assert.Equal(t, 2, dist[1].Count)
	assert.Equal(t, "fruits", dist[2].ID)
}

func TestNGOPerformance(t *testing.T) {
	ngos := []*models.NGO{{ID: "n1", Name: "One"}, {ID: "n2", Name: "Two"}, {ID: "n3", Name: "Idle"}}
	d := func(ngo string, status models.DonationStatus, qty float64) *models.Donation {
		out := donation(status, qty)
		out.NGOID = ngo
		return out
	}
	donations := []*models.Donation{
		d("n1", models.DonationDistributed, 5),
		d("n1", models.DonationPending, 5),
		d("n2", models.DonationDistributed, 20),
		d("gone", models.DonationDistributed, 100),
		d("", models.DonationDistributed, 50),
	}

	perf := NGOPerformance(donations, ngos)

	require.Len(t, perf, 2)
	assert.Equal(t, models.NGOPerformance{ID: "n2", NGOName: "Two", TotalDonations: 1, TotalQuantity: 20, SuccessRate: 100}, perf[0])
	assert.Equal(t, models.NGOPerformance{ID: "n1", NGOName: "One", TotalDonations: 2, TotalQuantity: 10, SuccessRate: 50}, perf[1])
	for _, p := range perf {
		assert.Greater(t, p.TotalDonations, 0)
	}
}

func TestExpiryAlertsWindowBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	item := func(name string, at time.Time) *models.FoodItem {
		return &models.FoodItem{Name: name, ExpiryDate: at}
	}
	items := []*models.FoodItem{
		item("past", now.Add(-time.Second)),
		item("edge", now.Add(ExpiryWindow)),
		item("beyond", now.Add(ExpiryWindow+time.Second)),
		item("now", now),
		item("mid", now.Add(72*time.Hour)),
	}

	alerts := ExpiryAlerts(items, now)

	names := make([]string, 0, len(alerts))
	for _, a := range alerts {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"now", "mid", "edge"}, names)
	assert.NotNil(t, ExpiryAlerts(nil, now))
}

func TestCustomReportOnlyRequestedFacets(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	items := []*models.FoodItem{
		{Name: "in", CreatedAt: start.Add(time.Hour)},
		{Name: "out", CreatedAt: end.Add(time.Hour)},
	}

	report := CustomReport(&models.CustomReportRequest{StartDate: start, EndDate: end, Metrics: []string{"food"}}, nil, items, nil)

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Len(t, keys, 1)
	assert.Contains(t, keys, "foodItems")

	require.NotNil(t, report.FoodItems)
	require.Len(t, *report.FoodItems, 1)
	assert.Equal(t, "in", (*report.FoodItems)[0].Name)
}

func TestCustomReportEmptyFacetIsEmptyList(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	report := CustomReport(&models.CustomReportRequest{StartDate: start, EndDate: start, Metrics: []string{"ngos"}}, nil, nil, nil)

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ngos":[]}`, string(raw))
}

func TestCustomReportPopulatesNGOName(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	d := donation(models.DonationPending, 1)
	d.DonationDate = start.AddDate(0, 0, 3)
	d.NGOID = "n1"
	ngos := []*models.NGO{{ID: "n1", Name: "Feed", Email: "hidden@feed.org", CreatedAt: start.AddDate(-1, 0, 0)}}

	report := CustomReport(&models.CustomReportRequest{StartDate: start, EndDate: end, Metrics: []string{"donations", "ngos"}}, []*models.Donation{d}, nil, ngos)

	require.NotNil(t, report.Donations)
	require.Len(t, *report.Donations, 1)
	assert.Equal(t, &models.NGOSummary{ID: "n1", Name: "Feed"}, (*report.Donations)[0].NGO)
	require.NotNil(t, report.NGOs)
	assert.Empty(t, *report.NGOs)
	assert.Nil(t, report.FoodItems)
}

func TestPopulateUnresolvedReference(t *testing.T) {
	d := &models.Donation{ID: "d1", NGOID: "missing"}
	p := Populate(d, map[string]*models.NGO{}, true)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ngoId":null`)
}
