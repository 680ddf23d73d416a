package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/renteq/rentalcrm/internal/middleware"
)

// assetHandler handles HTTP requests for rentable units.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

// newAssetHandler creates a new assetHandler.
func newAssetHandler(assetService portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{
		assetService: assetService,
	}
}

func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateAssetRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), createReq, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create asset")
		return
	}

	logger.Info("Asset created", slog.String("asset_id", asset.AssetID), slog.String("code", asset.Code))
	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

func (h *assetHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("assetID")

	asset, err := h.assetService.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve asset")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status *domain.AssetStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.AssetStatus(raw)
		status = &s
	}
	limit, offset := paginationParams(c)

	assets, err := h.assetService.ListAssets(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list assets")
		return
	}

	responses := make([]dto.AssetResponse, len(assets))
	for i := range assets {
		responses[i] = dto.ToAssetResponse(&assets[i])
	}
	c.JSON(http.StatusOK, gin.H{"assets": responses})
}

// registerAssetRoutes wires the asset routes.
func registerAssetRoutes(group *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := group.Group("/assets")
	assets.POST("", h.createAsset)
	assets.GET("", h.listAssets)
	assets.GET("/:assetID", h.getAsset)
}
