package controller

import (
	"fooddonation-backend/models"
	"fooddonation-backend/services"
	"fooddonation-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommunicationController struct {
	communicationService services.CommunicationServiceInterface
	logger               logger.Logger
}

func NewCommunicationController(communicationService services.CommunicationServiceInterface, logger logger.Logger) *CommunicationController {
	return &CommunicationController{
		communicationService: communicationService,
		logger:               logger,
	}
}

// ListCommunications handles GET /communications
// @Summary List communications
// @Description Newest first. search matches subject, message, sender or recipient.
// @Tags Communications
// @Produce json
// @Param type query string false "email, notification or message"
// @Param status query string false "sent, delivered, read or failed"
// @Param priority query string false "low, medium or high"
// @Param search query string false "Case-insensitive substring"
// @Success 200 {object} models.APIResponse "Communications retrieved successfully"
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /communications [get]
func (h *CommunicationController) ListCommunications(c *gin.Context) {
	comms, err := h.communicationService.ListCommunications(c.Request.Context(), communicationFilter(c))
	if err != nil {
		handleError(c, h.logger, err, "list communications")
		return
	}

	respond(c, http.StatusOK, "Communications retrieved successfully", comms)
}

// CreateCommunication handles POST /communications
// @Summary Send a communication
// @Description Email communications addressed to an email recipient are delivered over SMTP when configured
// @Tags Communications
// @Accept json
// @Produce json
// @Param request body models.Communication true "Communication"
// @Success 201 {object} models.APIResponse "Communication created successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Validation failed"
// @Router /communications [post]
func (h *CommunicationController) CreateCommunication(c *gin.Context) {
	var req models.Communication
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("Failed to bind communication: %v", err)
		badRequest(c, "body", err)
		return
	}
	if req.Metadata == nil {
		req.Metadata = &models.CommunicationMetadata{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
	}

	comm, err := h.communicationService.CreateCommunication(c.Request.Context(), &req)
	if err != nil {
		handleError(c, h.logger, err, "create communication")
		return
	}

	respond(c, http.StatusCreated, "Communication created successfully", comm)
}

// GetCommunication handles GET /communications/:id
// @Summary Get a communication
// @Tags Communications
// @Produce json
// @Param id path string true "Communication ID"
// @Success 200 {object} models.APIResponse "Communication retrieved successfully"
// @Failure 404 {object} models.APIResponse "Communication not found"
// @Router /communications/{id} [get]
func (h *CommunicationController) GetCommunication(c *gin.Context) {
	comm, err := h.communicationService.GetCommunication(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.logger, err, "get communication")
		return
	}

	respond(c, http.StatusOK, "Communication retrieved successfully", comm)
}

// UpdateCommunicationStatus handles PATCH /communications/:id/status
// @Summary Change a communication's status
// @Tags Communications
// @Accept json
// @Produce json
// @Param id path string true "Communication ID"
// @Param request body models.StatusUpdateRequest true "New status"
// @Success 200 {object} models.APIResponse "Communication status updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid status"
// @Failure 404 {object} models.APIResponse "Communication not found"
// @Router /communications/{id}/status [patch]
func (h *CommunicationController) UpdateCommunicationStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status", err)
		return
	}

	comm, err := h.communicationService.UpdateCommunicationStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, h.logger, err, "update communication status")
		return
	}

	respond(c, http.StatusOK, "Communication status updated successfully", comm)
}

// BulkUpdateStatus handles POST /communications/bulk/status
// @Summary Set the status of several communications
// @Description modifiedCount counts only communications whose status changed; unknown ids are skipped
// @Tags Communications
// @Accept json
// @Produce json
// @Param request body models.BulkStatusRequest true "IDs and status"
// @Success 200 {object} models.APIResponse{data=models.BulkStatusResult}
// @Failure 400 {object} models.APIResponse "Bad Request - Empty ids or invalid status"
// @Router /communications/bulk/status [post]
func (h *CommunicationController) BulkUpdateStatus(c *gin.Context) {
	var req models.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", err)
		return
	}

	result, err := h.communicationService.BulkUpdateStatus(c.Request.Context(), &req)
	if err != nil {
		handleError(c, h.logger, err, "update communications")
		return
	}

	respond(c, http.StatusOK, result.Message, result)
}

// DeleteCommunication handles DELETE /communications/:id
// @Summary Delete a communication
// @Tags Communications
// @Produce json
// @Param id path string true "Communication ID"
// @Success 200 {object} models.APIResponse "Communication deleted successfully"
// @Failure 404 {object} models.APIResponse "Communication not found"
// @Router /communications/{id} [delete]
func (h *CommunicationController) DeleteCommunication(c *gin.Context) {
	if err := h.communicationService.DeleteCommunication(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, h.logger, err, "delete communication")
		return
	}

	respond(c, http.StatusOK, "Communication deleted successfully", nil)
}

// AddAttachment handles POST /communications/:id/attachments
// @Summary Upload an attachment
// @Tags Communications
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Communication ID"
// @Param file formData file true "Attachment"
// @Success 200 {object} models.APIResponse "Attachment uploaded successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Missing file"
// @Failure 404 {object} models.APIResponse "Communication not found"
// @Failure 503 {object} models.APIResponse "Attachment storage is not configured"
// @Router /communications/{id}/attachments [post]
func (h *CommunicationController) AddAttachment(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "file", err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	comm, err := h.communicationService.AddAttachment(c.Request.Context(), c.Param("id"), &services.AttachmentUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		handleError(c, h.logger, err, "upload attachment")
		return
	}

	respond(c, http.StatusOK, "Attachment uploaded successfully", comm)
}

// GetOverview handles GET /communications/stats/overview
// @Summary Communication counts by type and status
// @Tags Communications
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CommunicationOverview}
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /communications/stats/overview [get]
func (h *CommunicationController) GetOverview(c *gin.Context) {
	overview, err := h.communicationService.GetOverview(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, "load communication statistics")
		return
	}

	respond(c, http.StatusOK, "Communication statistics retrieved successfully", overview)
}
