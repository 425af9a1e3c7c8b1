package repository

import (
	"fooddonation-backend/models"
	"strings"
	"time"
)

// containsFold is a literal, case-insensitive substring match
func containsFold(value, search string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(search))
}

func anyContainsFold(search string, values ...string) bool {
	for _, v := range values {
		if containsFold(v, search) {
			return true
		}
	}
	return false
}

func inRange(t time.Time, start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !t.Before(*start) && !t.After(*end)
}

func matchDonation(d *models.Donation, f *models.DonationFilter) bool {
	if f == nil {
		return true
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	return inRange(d.DonationDate, f.StartDate, f.EndDate)
}

func matchFood(item *models.FoodItem, f *models.FoodFilter) bool {
	if f == nil {
		return true
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.Status != "" && item.Status != f.Status {
		return false
	}
	return f.Search == "" || containsFold(item.Name, f.Search)
}

func matchNGO(n *models.NGO, f *models.NGOFilter) bool {
	if f == nil {
		return true
	}
	if f.Status != "" && n.Status != f.Status {
		return false
	}
	return f.Search == "" || anyContainsFold(f.Search, n.Name, n.Email, n.ContactPerson.Name)
}

func matchCommunication(c *models.Communication, f *models.CommunicationFilter) bool {
	if f == nil {
		return true
	}
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Priority != "" && c.Priority != f.Priority {
		return false
	}
	return f.Search == "" || anyContainsFold(f.Search, c.Subject, c.Message, c.Sender, c.Recipient)
}

// applyAdditionalFilters keeps the items accepted by match, preserving order
func applyAdditionalFilters[T any, F any](items []*T, filter F, match func(*T, F) bool) []*T {
	filtered := make([]*T, 0, len(items))
	for _, item := range items {
		if match(item, filter) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
