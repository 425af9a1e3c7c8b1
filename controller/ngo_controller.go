package controller

import (
	"fooddonation-backend/models"
	"fooddonation-backend/services"
	"fooddonation-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NGOController struct {
	ngoService services.NGOServiceInterface
	logger     logger.Logger
}

func NewNGOController(ngoService services.NGOServiceInterface, logger logger.Logger) *NGOController {
	return &NGOController{
		ngoService: ngoService,
		logger:     logger,
	}
}

// ListNGOs handles GET /ngos
// @Summary List partner NGOs
// @Tags NGOs
// @Produce json
// @Param status query string false "active, inactive or pending"
// @Param search query string false "Case-insensitive match on name, email or contact person"
// @Success 200 {object} models.APIResponse "NGOs retrieved successfully"
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /ngos [get]
func (h *NGOController) ListNGOs(c *gin.Context) {
	ngos, err := h.ngoService.ListNGOs(c.Request.Context(), ngoFilter(c))
	if err != nil {
		handleError(c, h.logger, err, "list NGOs")
		return
	}

	respond(c, http.StatusOK, "NGOs retrieved successfully", ngos)
}

// CreateNGO handles POST /ngos
// @Summary Register an NGO
// @Description Email and registration number must be unique
// @Tags NGOs
// @Accept json
// @Produce json
// @Param request body models.NGO true "NGO"
// @Success 201 {object} models.APIResponse "NGO created successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Validation failed or duplicate"
// @Router /ngos [post]
func (h *NGOController) CreateNGO(c *gin.Context) {
	var req models.NGO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("Failed to bind NGO: %v", err)
		badRequest(c, "body", err)
		return
	}

	ngo, err := h.ngoService.CreateNGO(c.Request.Context(), &req)
	if err != nil {
		handleError(c, h.logger, err, "create NGO")
		return
	}

	respond(c, http.StatusCreated, "NGO created successfully", ngo)
}

// GetNGO handles GET /ngos/:id
// @Summary Get an NGO
// @Tags NGOs
// @Produce json
// @Param id path string true "NGO ID"
// @Success 200 {object} models.APIResponse "NGO retrieved successfully"
// @Failure 404 {object} models.APIResponse "NGO not found"
// @Router /ngos/{id} [get]
func (h *NGOController) GetNGO(c *gin.Context) {
	ngo, err := h.ngoService.GetNGO(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.logger, err, "get NGO")
		return
	}

	respond(c, http.StatusOK, "NGO retrieved successfully", ngo)
}

// UpdateNGO handles PUT /ngos/:id
// @Summary Update an NGO
// @Tags NGOs
// @Accept json
// @Produce json
// @Param id path string true "NGO ID"
// @Param request body models.NGO true "Fields to change"
// @Success 200 {object} models.APIResponse "NGO updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Validation failed or duplicate"
// @Failure 404 {object} models.APIResponse "NGO not found"
// @Router /ngos/{id} [put]
func (h *NGOController) UpdateNGO(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		badRequest(c, "body", err)
		return
	}

	ngo, err := h.ngoService.UpdateNGO(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		handleError(c, h.logger, err, "update NGO")
		return
	}

	respond(c, http.StatusOK, "NGO updated successfully", ngo)
}

// UpdateNGOStatus handles PATCH /ngos/:id/status
// @Summary Change an NGO's status
// @Tags NGOs
// @Accept json
// @Produce json
// @Param id path string true "NGO ID"
// @Param request body models.StatusUpdateRequest true "New status"
// @Success 200 {object} models.APIResponse "NGO status updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid status"
// @Failure 404 {object} models.APIResponse "NGO not found"
// @Router /ngos/{id}/status [patch]
func (h *NGOController) UpdateNGOStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status", err)
		return
	}

	ngo, err := h.ngoService.UpdateNGOStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, h.logger, err, "update NGO status")
		return
	}

	respond(c, http.StatusOK, "NGO status updated successfully", ngo)
}

// DeleteNGO handles DELETE /ngos/:id
// @Summary Delete an NGO
// @Tags NGOs
// @Produce json
// @Param id path string true "NGO ID"
// @Success 200 {object} models.APIResponse "NGO deleted successfully"
// @Failure 404 {object} models.APIResponse "NGO not found"
// @Router /ngos/{id} [delete]
func (h *NGOController) DeleteNGO(c *gin.Context) {
	if err := h.ngoService.DeleteNGO(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, h.logger, err, "delete NGO")
		return
	}

	respond(c, http.StatusOK, "NGO deleted successfully", nil)
}

// GetOverview handles GET /ngos/stats/overview
// @Summary NGO counts, beneficiaries served and service area coverage
// @Tags NGOs
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.NGOOverview}
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /ngos/stats/overview [get]
func (h *NGOController) GetOverview(c *gin.Context) {
	overview, err := h.ngoService.GetOverview(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, "load NGO statistics")
		return
	}

	respond(c, http.StatusOK, "NGO statistics retrieved successfully", overview)
}
