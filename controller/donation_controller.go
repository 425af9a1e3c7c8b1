package controller

import (
	"fooddonation-backend/models"
	"fooddonation-backend/services"
	"fooddonation-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DonationController struct {
	donationService services.DonationServiceInterface
	logger          logger.Logger
}

func NewDonationController(donationService services.DonationServiceInterface, logger logger.Logger) *DonationController {
	return &DonationController{
		donationService: donationService,
		logger:          logger,
	}
}

// ListDonations handles GET /donations
// @Summary List donations
// @Description Donations sorted by donation date, newest first. The date range applies only when both bounds are given.
// @Tags Donations
// @Produce json
// @Param status query string false "Filter by status (pending, accepted, rejected, distributed)"
// @Param startDate query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param endDate query string false "Range end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} models.APIResponse "Donations retrieved successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Malformed date"
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /donations [get]
func (h *DonationController) ListDonations(c *gin.Context) {
	filter, err := donationFilter(c)
	if err != nil {
		handleError(c, h.logger, err, "list donations")
		return
	}

	donations, err := h.donationService.ListDonations(c.Request.Context(), filter)
	if err != nil {
		handleError(c, h.logger, err, "list donations")
		return
	}

	respond(c, http.StatusOK, "Donations retrieved successfully", donations)
}

// CreateDonation handles POST /donations
// @Summary Record a donation
// @Tags Donations
// @Accept json
// @Produce json
// @Param request body models.Donation true "Donation"
// @Success 201 {object} models.APIResponse "Donation created successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Validation failed"
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /donations [post]
func (h *DonationController) CreateDonation(c *gin.Context) {
	var req models.Donation
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("Failed to bind donation: %v", err)
		badRequest(c, "body", err)
		return
	}

	donation, err := h.donationService.CreateDonation(c.Request.Context(), &req)
	if err != nil {
		handleError(c, h.logger, err, "create donation")
		return
	}

	respond(c, http.StatusCreated, "Donation created successfully", donation)
}

// GetDonation handles GET /donations/:id
// @Summary Get a donation
// @Description The ngoId reference is resolved to {_id, name, email}
// @Tags Donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} models.APIResponse "Donation retrieved successfully"
// @Failure 404 {object} models.APIResponse "Donation not found"
// @Router /donations/{id} [get]
func (h *DonationController) GetDonation(c *gin.Context) {
	donation, err := h.donationService.GetDonation(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.logger, err, "get donation")
		return
	}

	respond(c, http.StatusOK, "Donation retrieved successfully", donation)
}

// UpdateDonation handles PUT /donations/:id
// @Summary Update a donation
// @Description Fields present in the body replace the stored ones
// @Tags Donations
// @Accept json
// @Produce json
// @Param id path string true "Donation ID"
// @Param request body models.Donation true "Fields to change"
// @Success 200 {object} models.APIResponse "Donation updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Validation failed"
// @Failure 404 {object} models.APIResponse "Donation not found"
// @Router /donations/{id} [put]
func (h *DonationController) UpdateDonation(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		badRequest(c, "body", err)
		return
	}

	donation, err := h.donationService.UpdateDonation(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		handleError(c, h.logger, err, "update donation")
		return
	}

	respond(c, http.StatusOK, "Donation updated successfully", donation)
}

// UpdateDonationStatus handles PATCH /donations/:id/status
// @Summary Change a donation's status
// @Tags Donations
// @Accept json
// @Produce json
// @Param id path string true "Donation ID"
// @Param request body models.StatusUpdateRequest true "New status"
// @Success 200 {object} models.APIResponse "Donation status updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid status"
// @Failure 404 {object} models.APIResponse "Donation not found"
// @Router /donations/{id}/status [patch]
func (h *DonationController) UpdateDonationStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status", err)
		return
	}

	donation, err := h.donationService.UpdateDonationStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, h.logger, err, "update donation status")
		return
	}

	respond(c, http.StatusOK, "Donation status updated successfully", donation)
}

// DeleteDonation handles DELETE /donations/:id
// @Summary Delete a donation
// @Tags Donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} models.APIResponse "Donation deleted successfully"
// @Failure 404 {object} models.APIResponse "Donation not found"
// @Router /donations/{id} [delete]
func (h *DonationController) DeleteDonation(c *gin.Context) {
	if err := h.donationService.DeleteDonation(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, h.logger, err, "delete donation")
		return
	}

	respond(c, http.StatusOK, "Donation deleted successfully", nil)
}

// GetOverview handles GET /donations/stats/overview
// @Summary Donation counts by status and total carbon footprint
// @Tags Donations
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DonationOverview}
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /donations/stats/overview [get]
func (h *DonationController) GetOverview(c *gin.Context) {
	overview, err := h.donationService.GetOverview(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, "load donation statistics")
		return
	}

	respond(c, http.StatusOK, "Donation statistics retrieved successfully", overview)
}
