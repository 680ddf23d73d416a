package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/renteq/rentalcrm/internal/middleware"
)

// accessoryHandler handles HTTP requests for stock-keeping units.
type accessoryHandler struct {
	accessoryService portssvc.AccessorySvcFacade
}

// newAccessoryHandler creates a new accessoryHandler.
func newAccessoryHandler(accessoryService portssvc.AccessorySvcFacade) *accessoryHandler {
	return &accessoryHandler{
		accessoryService: accessoryService,
	}
}

func (h *accessoryHandler) createAccessory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateAccessoryRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateAccessory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accessory, err := h.accessoryService.CreateAccessory(c.Request.Context(), createReq, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create accessory")
		return
	}

	logger.Info("Accessory created", slog.String("accessory_id", accessory.AccessoryID))
	c.JSON(http.StatusCreated, dto.ToAccessoryResponse(accessory))
}

func (h *accessoryHandler) getAccessory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accessoryID := c.Param("accessoryID")

	accessory, err := h.accessoryService.GetAccessory(c.Request.Context(), accessoryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve accessory")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccessoryResponse(accessory))
}

func (h *accessoryHandler) listAccessories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := paginationParams(c)

	accessories, err := h.accessoryService.ListAccessories(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accessories")
		return
	}

	responses := make([]dto.AccessoryResponse, len(accessories))
	for i := range accessories {
		responses[i] = dto.ToAccessoryResponse(&accessories[i])
	}
	c.JSON(http.StatusOK, gin.H{"accessories": responses})
}

// registerAccessoryRoutes wires the accessory routes.
func registerAccessoryRoutes(group *gin.RouterGroup, accessoryService portssvc.AccessorySvcFacade) {
	h := newAccessoryHandler(accessoryService)

	accessories := group.Group("/accessories")
	accessories.POST("", h.createAccessory)
	accessories.GET("", h.listAccessories)
	accessories.GET("/:accessoryID", h.getAccessory)
}
