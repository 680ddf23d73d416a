package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/renteq/rentalcrm/internal/middleware"
)

// inventoryHandler handles HTTP requests for the stock ledger.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(inventoryService portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
	}
}

// adjustStock applies one stock movement and returns the updated counters.
func (h *inventoryHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	adjustReq := dto.AdjustStockRequest{}
	if err := c.ShouldBindJSON(&adjustReq); err != nil {
		logger.Error("Failed to bind JSON for AdjustStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.inventoryService.Adjust(c.Request.Context(), adjustReq, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to adjust stock")
		return
	}

	logger.Info("Stock adjusted",
		slog.String("accessory_id", adjustReq.AccessoryID),
		slog.String("type", adjustReq.Type),
		slog.Int64("qty", adjustReq.Qty),
	)
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// getLevels returns the per-location counters of one accessory.
func (h *inventoryHandler) getLevels(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accessoryID := c.Param("accessoryID")

	items, err := h.inventoryService.Levels(c.Request.Context(), accessoryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve stock levels")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": dto.ToInventoryItemResponses(items)})
}

// listMovements returns the movement log of one accessory, newest first.
func (h *inventoryHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accessoryID := c.Param("accessoryID")
	limit, offset := paginationParams(c)

	movements, err := h.inventoryService.Movements(c.Request.Context(), accessoryID, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve movements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": dto.ToMovementResponses(movements)})
}

// registerInventoryRoutes wires the stock ledger routes.
func registerInventoryRoutes(group *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := group.Group("/inventory")
	inventory.POST("/adjust", h.adjustStock)
	inventory.GET("/:accessoryID/levels", h.getLevels)
	inventory.GET("/:accessoryID/movements", h.listMovements)
}
