package controller

import (
	"fooddonation-backend/models"
	"fooddonation-backend/services"
	"fooddonation-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	foodService services.FoodServiceInterface
	logger      logger.Logger
}

func NewFoodController(foodService services.FoodServiceInterface, logger logger.Logger) *FoodController {
	return &FoodController{
		foodService: foodService,
		logger:      logger,
	}
}

// ListFoodItems handles GET /food
// @Summary List inventory items
// @Description Items sorted by expiry date, soonest first
// @Tags Food Inventory
// @Produce json
// @Param category query string false "grains, vegetables, fruits, dairy, protein or other"
// @Param status query string false "available, low or expired"
// @Param search query string false "Case-insensitive match on the item name"
// @Success 200 {object} models.APIResponse "Food items retrieved successfully"
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /food [get]
func (h *FoodController) ListFoodItems(c *gin.Context) {
	items, err := h.foodService.ListFoodItems(c.Request.Context(), foodFilter(c))
	if err != nil {
		handleError(c, h.logger, err, "list food items")
		return
	}

	respond(c, http.StatusOK, "Food items retrieved successfully", items)
}

// CreateFoodItem handles POST /food
// @Summary Add an inventory item
// @Tags Food Inventory
// @Accept json
// @Produce json
// @Param request body models.FoodItem true "Food item"
// @Success 201 {object} models.APIResponse "Food item created successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Validation failed"
// @Router /food [post]
func (h *FoodController) CreateFoodItem(c *gin.Context) {
	var req models.FoodItem
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("Failed to bind food item: %v", err)
		badRequest(c, "body", err)
		return
	}

	item, err := h.foodService.CreateFoodItem(c.Request.Context(), &req)
	if err != nil {
		handleError(c, h.logger, err, "create food item")
		return
	}

	respond(c, http.StatusCreated, "Food item created successfully", item)
}

// GetFoodItem handles GET /food/:id
// @Summary Get an inventory item
// @Tags Food Inventory
// @Produce json
// @Param id path string true "Food item ID"
// @Success 200 {object} models.APIResponse "Food item retrieved successfully"
// @Failure 404 {object} models.APIResponse "Food item not found"
// @Router /food/{id} [get]
func (h *FoodController) GetFoodItem(c *gin.Context) {
	item, err := h.foodService.GetFoodItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.logger, err, "get food item")
		return
	}

	respond(c, http.StatusOK, "Food item retrieved successfully", item)
}

// UpdateFoodItem handles PUT /food/:id
// @Summary Update an inventory item
// @Tags Food Inventory
// @Accept json
// @Produce json
// @Param id path string true "Food item ID"
// @Param request body models.FoodItem true "Fields to change"
// @Success 200 {object} models.APIResponse "Food item updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Validation failed"
// @Failure 404 {object} models.APIResponse "Food item not found"
// @Router /food/{id} [put]
func (h *FoodController) UpdateFoodItem(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		badRequest(c, "body", err)
		return
	}

	item, err := h.foodService.UpdateFoodItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		handleError(c, h.logger, err, "update food item")
		return
	}

	respond(c, http.StatusOK, "Food item updated successfully", item)
}

// UpdateFoodStatus handles PATCH /food/:id/status
// @Summary Change an inventory item's status
// @Tags Food Inventory
// @Accept json
// @Produce json
// @Param id path string true "Food item ID"
// @Param request body models.StatusUpdateRequest true "New status"
// @Success 200 {object} models.APIResponse "Food item status updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid status"
// @Failure 404 {object} models.APIResponse "Food item not found"
// @Router /food/{id}/status [patch]
func (h *FoodController) UpdateFoodStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status", err)
		return
	}

	item, err := h.foodService.UpdateFoodStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, h.logger, err, "update food item status")
		return
	}

	respond(c, http.StatusOK, "Food item status updated successfully", item)
}

// DeleteFoodItem handles DELETE /food/:id
// @Summary Delete an inventory item
// @Tags Food Inventory
// @Produce json
// @Param id path string true "Food item ID"
// @Success 200 {object} models.APIResponse "Food item deleted successfully"
// @Failure 404 {object} models.APIResponse "Food item not found"
// @Router /food/{id} [delete]
func (h *FoodController) DeleteFoodItem(c *gin.Context) {
	if err := h.foodService.DeleteFoodItem(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, h.logger, err, "delete food item")
		return
	}

	respond(c, http.StatusOK, "Food item deleted successfully", nil)
}

// GetOverview handles GET /food/stats/overview and GET /food/stats/inventory
// @Summary Inventory totals and per-category quantities
// @Tags Food Inventory
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.FoodOverview}
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /food/stats/overview [get]
// @Router /food/stats/inventory [get]
func (h *FoodController) GetOverview(c *gin.Context) {
	overview, err := h.foodService.GetOverview(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, "load inventory statistics")
		return
	}

	respond(c, http.StatusOK, "Inventory statistics retrieved successfully", overview)
}
