package controller

import (
	"fooddonation-backend/models"
	"fooddonation-backend/utils"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// parseDateQuery returns nil when the parameter is absent
func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return nil, models.NewValidationError(name, models.ValidationFormat, name+" must be an RFC3339 timestamp or YYYY-MM-DD date")
	}
	return &t, nil
}

func donationFilter(c *gin.Context) (*models.DonationFilter, error) {
	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		return nil, err
	}
	return &models.DonationFilter{
		Status:    models.DonationStatus(c.Query("status")),
		StartDate: start,
		EndDate:   end,
	}, nil
}

func foodFilter(c *gin.Context) *models.FoodFilter {
	return &models.FoodFilter{
		Category: models.FoodCategory(c.Query("category")),
		Status:   models.FoodStatus(c.Query("status")),
		Search:   c.Query("search"),
	}
}

func ngoFilter(c *gin.Context) *models.NGOFilter {
	return &models.NGOFilter{
		Status: models.NGOStatus(c.Query("status")),
		Search: c.Query("search"),
	}
}

func communicationFilter(c *gin.Context) *models.CommunicationFilter {
	return &models.CommunicationFilter{
		Type:     models.CommunicationType(c.Query("type")),
		Status:   models.CommunicationStatus(c.Query("status")),
		Priority: models.Priority(c.Query("priority")),
		Search:   c.Query("search"),
	}
}
