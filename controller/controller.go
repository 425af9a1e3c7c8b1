package controller

import (
	"fooddonation-backend/models"
	"fooddonation-backend/services"
	"fooddonation-backend/utils/logger"
	"fooddonation-backend/utils/swagger"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Donation      *DonationController
	Food          *FoodController
	NGO           *NGOController
	Communication *CommunicationController
	Report        *ReportController
}

func NewController(svc services.ServiceContainerInterface, log logger.Logger) *Controller {
	return &Controller{
		Donation:      NewDonationController(svc.GetDonationService(), log),
		Food:          NewFoodController(svc.GetFoodService(), log),
		NGO:           NewNGOController(svc.GetNGOService(), log),
		Communication: NewCommunicationController(svc.GetCommunicationService(), log),
		Report:        NewReportController(svc.GetReportService(), log),
	}
}

// RegisterRoutes mounts the API under config.BasePath, plus /health and the Swagger UI
func (c *Controller) RegisterRoutes(r *gin.Engine, config *models.Config) {
	health := func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": config.AppVersion,
			"service": config.AppName,
		})
	}
	r.GET("/health", health)

	swaggerConfig := swagger.SwaggerConfig{
		Title:         config.AppName + " API",
		SwaggerDocURL: "/swagger/doc.json",
	}
	r.GET("/swagger", swagger.ServeSwaggerUI(swaggerConfig))
	r.GET("/swagger/index.html", swagger.ServeSwaggerUI(swaggerConfig))
	r.GET("/swagger/doc.json", swagger.ServeDoc())

	api := r.Group(config.BasePath)
	if strings.Trim(config.BasePath, "/") != "" {
		api.GET("/health", health)
	}

	donations := api.Group("/donations")
	donations.GET("", c.Donation.ListDonations)
	donations.POST("", c.Donation.CreateDonation)
	donations.GET("/stats/overview", c.Donation.GetOverview)
	donations.GET("/:id", c.Donation.GetDonation)
	donations.PUT("/:id", c.Donation.UpdateDonation)
	donations.PATCH("/:id/status", c.Donation.UpdateDonationStatus)
	donations.DELETE("/:id", c.Donation.DeleteDonation)

	food := api.Group("/food")
	food.GET("", c.Food.ListFoodItems)
	food.POST("", c.Food.CreateFoodItem)
	food.GET("/stats/overview", c.Food.GetOverview)
	food.GET("/stats/inventory", c.Food.GetOverview)
	food.GET("/:id", c.Food.GetFoodItem)
	food.PUT("/:id", c.Food.UpdateFoodItem)
	food.PATCH("/:id/status", c.Food.UpdateFoodStatus)
	food.DELETE("/:id", c.Food.DeleteFoodItem)

	ngos := api.Group("/ngos")
	ngos.GET("", c.NGO.ListNGOs)
	ngos.POST("", c.NGO.CreateNGO)
	ngos.GET("/stats/overview", c.NGO.GetOverview)
	ngos.GET("/:id", c.NGO.GetNGO)
	ngos.PUT("/:id", c.NGO.UpdateNGO)
	ngos.PATCH("/:id/status", c.NGO.UpdateNGOStatus)
	ngos.DELETE("/:id", c.NGO.DeleteNGO)

	comms := api.Group("/communications")
	comms.GET("", c.Communication.ListCommunications)
	comms.POST("", c.Communication.CreateCommunication)
	comms.GET("/stats/overview", c.Communication.GetOverview)
	comms.POST("/bulk/status", c.Communication.BulkUpdateStatus)
	comms.GET("/:id", c.Communication.GetCommunication)
	comms.PATCH("/:id/status", c.Communication.UpdateCommunicationStatus)
	comms.POST("/:id/attachments", c.Communication.AddAttachment)
	comms.DELETE("/:id", c.Communication.DeleteCommunication)

	reports := api.Group("/reports")
	reports.GET("/dashboard/overview", c.Report.GetDashboardOverview)
	reports.GET("/trends/monthly", c.Report.GetMonthlyTrends)
	reports.GET("/distribution/food-category", c.Report.GetFoodDistribution)
	reports.GET("/ngo/performance", c.Report.GetNGOPerformance)
	reports.GET("/alerts/expiry", c.Report.GetExpiryAlerts)
	reports.POST("/custom", c.Report.GetCustomReport)
	reports.POST("/custom/export", c.Report.ExportCustomReport)
}
