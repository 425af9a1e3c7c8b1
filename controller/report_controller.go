package controller

import (
	"bytes"
	"fooddonation-backend/models"
	"fooddonation-backend/services"
	"fooddonation-backend/utils"
	"fooddonation-backend/utils/export"
	"fooddonation-backend/utils/logger"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        logger.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger logger.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// CustomReportBody is the request body of the custom report endpoints
type CustomReportBody struct {
	StartDate string   `json:"startDate" example:"2024-01-01"`
	EndDate   string   `json:"endDate" example:"2024-03-31"`
	Metrics   []string `json:"metrics" example:"donations,food,ngos"`
}

func (b *CustomReportBody) toRequest() (*models.CustomReportRequest, error) {
	req := &models.CustomReportRequest{Metrics: b.Metrics}
	var err error
	if req.StartDate, err = parseBodyDate("startDate", b.StartDate); err != nil {
		return nil, err
	}
	if req.EndDate, err = parseBodyDate("endDate", b.EndDate); err != nil {
		return nil, err
	}
	return req, nil
}

// parseBodyDate leaves a missing date zero for the service to reject
func parseBodyDate(field, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, models.NewValidationError(field, models.ValidationFormat, field+" must be an RFC3339 timestamp or YYYY-MM-DD date")
	}
	return t, nil
}

func (h *ReportController) bindCustomReport(c *gin.Context) (*models.CustomReportRequest, bool) {
	var body CustomReportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "body", err)
		return nil, false
	}
	req, err := body.toRequest()
	if err != nil {
		handleError(c, h.logger, err, "build report")
		return nil, false
	}
	return req, true
}

// GetDashboardOverview handles GET /reports/dashboard/overview
// @Summary Headline dashboard KPIs
// @Tags Reports
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DashboardKPIs}
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /reports/dashboard/overview [get]
func (h *ReportController) GetDashboardOverview(c *gin.Context) {
	kpis, err := h.reportService.GetDashboardOverview(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, "load dashboard")
		return
	}

	respond(c, http.StatusOK, "Dashboard retrieved successfully", kpis)
}

// GetMonthlyTrends handles GET /reports/trends/monthly
// @Summary Donations and quantity per calendar month (UTC)
// @Tags Reports
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.MonthlyTrend}
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /reports/trends/monthly [get]
func (h *ReportController) GetMonthlyTrends(c *gin.Context) {
	trends, err := h.reportService.GetMonthlyTrends(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, "load monthly trends")
		return
	}

	respond(c, http.StatusOK, "Monthly trends retrieved successfully", trends)
}

// GetFoodDistribution handles GET /reports/distribution/food-category
// @Summary Inventory quantity per food category
// @Tags Reports
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.CategoryStat}
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /reports/distribution/food-category [get]
func (h *ReportController) GetFoodDistribution(c *gin.Context) {
	distribution, err := h.reportService.GetFoodDistribution(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, "load food distribution")
		return
	}

	respond(c, http.StatusOK, "Food distribution retrieved successfully", distribution)
}

// GetNGOPerformance handles GET /reports/ngo/performance
// @Summary Donation volume and success rate per NGO
// @Tags Reports
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.NGOPerformance}
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /reports/ngo/performance [get]
func (h *ReportController) GetNGOPerformance(c *gin.Context) {
	performance, err := h.reportService.GetNGOPerformance(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, "load NGO performance")
		return
	}

	respond(c, http.StatusOK, "NGO performance retrieved successfully", performance)
}

// GetExpiryAlerts handles GET /reports/alerts/expiry
// @Summary Items expiring within the next 7 days
// @Tags Reports
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.FoodItem}
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /reports/alerts/expiry [get]
func (h *ReportController) GetExpiryAlerts(c *gin.Context) {
	alerts, err := h.reportService.GetExpiryAlerts(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, "load expiry alerts")
		return
	}

	respond(c, http.StatusOK, "Expiry alerts retrieved successfully", alerts)
}

// GetCustomReport handles POST /reports/custom
// @Summary Entities created in a date range
// @Description Only the requested metrics (donations, food, ngos) appear in the result
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body CustomReportBody true "Range and metrics"
// @Success 200 {object} models.APIResponse{data=models.CustomReport}
// @Failure 400 {object} models.APIResponse "Bad Request - Missing or inverted range"
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /reports/custom [post]
func (h *ReportController) GetCustomReport(c *gin.Context) {
	req, ok := h.bindCustomReport(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetCustomReport(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.logger, err, "build report")
		return
	}

	respond(c, http.StatusOK, "Report generated successfully", report)
}

// ExportCustomReport handles POST /reports/custom/export
// @Summary Custom report as an Excel workbook
// @Tags Reports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body CustomReportBody true "Range and metrics"
// @Success 200 {file} file "report.xlsx"
// @Failure 400 {object} models.APIResponse "Bad Request - Missing or inverted range"
// @Failure 503 {object} models.APIResponse "Export is not configured"
// @Router /reports/custom/export [post]
func (h *ReportController) ExportCustomReport(c *gin.Context) {
	req, ok := h.bindCustomReport(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportCustomReport(c.Request.Context(), req, &buf); err != nil {
		handleError(c, h.logger, err, "export report")
		return
	}

	filename := "report-" + req.StartDate.UTC().Format("20060102") + "-" + req.EndDate.UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
