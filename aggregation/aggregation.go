// Package aggregation computes the dashboard statistics from entity slices.
// Every function is pure; callers load the collections and supply the clock.
package aggregation

import (
	"fooddonation-backend/models"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryWindow is the lookahead of the expiry alerts
const ExpiryWindow = 7 * 24 * time.Hour

func sum(values ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// rate returns part/total as a percentage, 0 when total is 0
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total)))
	return toFloat(pct)
}

// mealTotal is the summed line-item quantity of a donation
func mealTotal(d *models.Donation) decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.FoodItems {
		total = total.Add(decimal.NewFromFloat(item.Qty()))
	}
	return total
}

// counter tallies string keys in first-seen order
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) stats() []models.CountStat {
	out := make([]models.CountStat, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, models.CountStat{ID: k, Count: c.counts[k]})
	}
	return out
}

func DonationOverview(donations []*models.Donation) models.DonationOverview {
	var o models.DonationOverview
	carbon := decimal.Zero
	for _, d := range donations {
		o.Total++
		switch d.Status {
		case models.DonationPending:
			o.Pending++
		case models.DonationAccepted:
			o.Accepted++
		case models.DonationDistributed:
			o.Distributed++
		}
		carbon = carbon.Add(decimal.NewFromFloat(d.CarbonFootprint))
	}
	o.CarbonFootprint = toFloat(carbon)
	return o
}

// categoryStats groups food items by category in first-seen order
func categoryStats(items []*models.FoodItem) []models.CategoryStat {
	type group struct {
		count int
		qty   decimal.Decimal
	}
	var order []string
	groups := make(map[string]*group)
	for _, item := range items {
		key := string(item.Category)
		g, ok := groups[key]
		if !ok {
			g = &group{qty: decimal.Zero}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
		g.qty = g.qty.Add(decimal.NewFromFloat(item.Qty()))
	}

	out := make([]models.CategoryStat, 0, len(order))
	for _, k := range order {
		out = append(out, models.CategoryStat{ID: k, Count: groups[k].count, TotalQuantity: toFloat(groups[k].qty)})
	}
	return out
}

func FoodOverview(items []*models.FoodItem) models.FoodOverview {
	o := models.FoodOverview{CategoryStats: categoryStats(items)}
	for _, item := range items {
		o.Total++
		switch item.Status {
		case models.FoodLow:
			o.LowStock++
		case models.FoodExpired:
			o.Expired++
		}
	}
	return o
}

// NGOOverview counts each service area once per NGO listing it, most common first
func NGOOverview(ngos []*models.NGO) models.NGOOverview {
	var o models.NGOOverview
	areas := newCounter()
	for _, n := range ngos {
		o.Total++
		switch n.Status {
		case models.NGOActive:
			o.Active++
		case models.NGOPending:
			o.Pending++
		}
		o.BeneficiariesServed += n.BeneficiariesCount
		for _, area := range n.ServiceAreas {
			areas.add(area)
		}
	}

	o.ServiceAreaStats = areas.stats()
	sort.SliceStable(o.ServiceAreaStats, func(i, j int) bool {
		a, b := o.ServiceAreaStats[i], o.ServiceAreaStats[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.ID < b.ID
	})
	return o
}

func CommunicationOverview(comms []*models.Communication) models.CommunicationOverview {
	var o models.CommunicationOverview
	types, statuses := newCounter(), newCounter()
	for _, c := range comms {
		o.Total++
		if c.Status == models.CommunicationSent {
			o.Unread++
		}
		if c.Priority == models.PriorityHigh {
			o.HighPriority++
		}
		types.add(string(c.Type))
		statuses.add(string(c.Status))
	}
	o.TypeStats = types.stats()
	o.StatusStats = statuses.stats()
	return o
}

func DashboardKPIs(donations []*models.Donation, ngos []*models.NGO) models.DashboardKPIs {
	meals := decimal.Zero
	for _, d := range donations {
		meals = meals.Add(mealTotal(d))
	}
	donationStats := DonationOverview(donations)

	return models.DashboardKPIs{
		TotalMealsDonated:      toFloat(meals),
		ActiveNGOPartners:      NGOOverview(ngos).Active,
		CarbonFootprintReduced: donationStats.CarbonFootprint,
		SuccessRate:            rate(donationStats.Distributed, donationStats.Total),
	}
}

// MonthlyTrends buckets donations by UTC calendar month, oldest first
func MonthlyTrends(donations []*models.Donation) []models.MonthlyTrend {
	type bucket struct {
		count int
		qty   decimal.Decimal
	}
	buckets := make(map[models.MonthKey]*bucket)
	for _, d := range donations {
		date := d.DonationDate.UTC()
		key := models.MonthKey{Year: date.Year(), Month: int(date.Month())}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{qty: decimal.Zero}
			buckets[key] = b
		}
		b.count++
		b.qty = b.qty.Add(mealTotal(d))
	}

	out := make([]models.MonthlyTrend, 0, len(buckets))
	for key, b := range buckets {
		out = append(out, models.MonthlyTrend{ID: key, Donations: b.count, TotalQuantity: toFloat(b.qty)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID.Year != out[j].ID.Year {
			return out[i].ID.Year < out[j].ID.Year
		}
		return out[i].ID.Month < out[j].ID.Month
	})
	return out
}

// FoodDistribution is the category breakdown ordered by quantity, largest first
func FoodDistribution(items []*models.FoodItem) []models.CategoryStat {
	stats := categoryStats(items)
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalQuantity != stats[j].TotalQuantity {
			return stats[i].TotalQuantity > stats[j].TotalQuantity
		}
		return stats[i].ID < stats[j].ID
	})
	return stats
}

// NGOPerformance joins donations to their NGO. Donations without an ngoId, or
// whose ngoId no longer resolves, are left out.
func NGOPerformance(donations []*models.Donation, ngos []*models.NGO) []models.NGOPerformance {
	byID := make(map[string]*models.NGO, len(ngos))
	for _, n := range ngos {
		byID[n.ID] = n
	}

	type tally struct {
		total       int
		distributed int
		qty         decimal.Decimal
	}
	tallies := make(map[string]*tally)
	for _, d := range donations {
		if _, ok := byID[d.NGOID]; !ok || d.NGOID == "" {
			continue
		}
		t, ok := tallies[d.NGOID]
		if !ok {
			t = &tally{qty: decimal.Zero}
			tallies[d.NGOID] = t
		}
		t.total++
		if d.Status == models.DonationDistributed {
			t.distributed++
		}
		t.qty = t.qty.Add(mealTotal(d))
	}

	out := make([]models.NGOPerformance, 0, len(tallies))
	for id, t := range tallies {
		out = append(out, models.NGOPerformance{
			ID:             id,
			NGOName:        byID[id].Name,
			TotalDonations: t.total,
			TotalQuantity:  toFloat(t.qty),
			SuccessRate:    rate(t.distributed, t.total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ExpiryAlerts returns items expiring within [now, now+ExpiryWindow], soonest first
func ExpiryAlerts(items []*models.FoodItem, now time.Time) []*models.FoodItem {
	limit := now.Add(ExpiryWindow)
	out := make([]*models.FoodItem, 0)
	for _, item := range items {
		if item.ExpiryDate.Before(now) || item.ExpiryDate.After(limit) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryDate.Before(out[j].ExpiryDate)
	})
	return out
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// CustomReport filters each requested facet to the request's range.
// Donations carry their NGO reference resolved to {_id, name}.
func CustomReport(req *models.CustomReportRequest, donations []*models.Donation, items []*models.FoodItem, ngos []*models.NGO) models.CustomReport {
	var report models.CustomReport

	if req.Wants(models.MetricDonations) {
		byID := make(map[string]*models.NGO, len(ngos))
		for _, n := range ngos {
			byID[n.ID] = n
		}
		facet := make([]models.PopulatedDonation, 0)
		for _, d := range donations {
			if !within(d.DonationDate, req.StartDate, req.EndDate) {
				continue
			}
			facet = append(facet, Populate(d, byID, false))
		}
		report.Donations = &facet
	}

	if req.Wants(models.MetricFood) {
		facet := make([]models.FoodItem, 0)
		for _, item := range items {
			if within(item.CreatedAt, req.StartDate, req.EndDate) {
				facet = append(facet, *item)
			}
		}
		report.FoodItems = &facet
	}

	if req.Wants(models.MetricNGOs) {
		facet := make([]models.NGO, 0)
		for _, n := range ngos {
			if within(n.CreatedAt, req.StartDate, req.EndDate) {
				facet = append(facet, *n)
			}
		}
		report.NGOs = &facet
	}

	return report
}

// Populate resolves a donation's ngoId against the given NGOs. An unresolved
// reference becomes null.
func Populate(d *models.Donation, ngos map[string]*models.NGO, withEmail bool) models.PopulatedDonation {
	p := models.PopulatedDonation{Donation: *d}
	if n, ok := ngos[d.NGOID]; ok && d.NGOID != "" {
		p.NGO = n.Summary(withEmail)
	}
	return p
}
