package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/renteq/rentalcrm/internal/middleware"
)

// dealHandler handles HTTP requests for the deal and rental lifecycle.
type dealHandler struct {
	dealService portssvc.DealSvcFacade
}

// newDealHandler creates a new dealHandler.
func newDealHandler(dealService portssvc.DealSvcFacade) *dealHandler {
	return &dealHandler{
		dealService: dealService,
	}
}

// createDeal creates a deal together with its rental, reserving stock and the asset.
func (h *dealHandler) createDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateDealRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateDeal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deal, err := h.dealService.CreateDealWithRental(c.Request.Context(), createReq, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create deal")
		return
	}

	logger.Info("Deal created", slog.String("deal_id", deal.DealID))
	c.JSON(http.StatusCreated, dto.ToDealResponse(deal))
}

// getDeal retrieves a deal by ID.
func (h *dealHandler) getDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dealID := c.Param("dealID")

	deal, err := h.dealService.GetDeal(c.Request.Context(), dealID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve deal")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// listDeals lists deals, optionally filtered by status.
func (h *dealHandler) listDeals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status *domain.DealStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.DealStatus(raw)
		if !s.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown deal status " + raw})
			return
		}
		status = &s
	}
	limit, offset := paginationParams(c)

	deals, err := h.dealService.ListDeals(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list deals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": dto.ToDealResponses(deals)})
}

// activateDeal moves a booked deal to active once the equipment is with the client.
func (h *dealHandler) activateDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dealID := c.Param("dealID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deal, err := h.dealService.ActivateDeal(c.Request.Context(), dealID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to activate deal")
		return
	}

	logger.Info("Deal activated", slog.String("deal_id", dealID))
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// cancelDeal cancels a non-terminal deal and releases its reservations.
func (h *dealHandler) cancelDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dealID := c.Param("dealID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.dealService.CancelDeal(c.Request.Context(), dealID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to cancel deal")
		return
	}

	logger.Info("Deal canceled", slog.String("deal_id", dealID))
	c.JSON(http.StatusOK, gin.H{"dealID": dealID, "status": string(domain.DealCanceled)})
}

// getRental retrieves a rental with its accessory lines.
func (h *dealHandler) getRental(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rentalID := c.Param("rentalID")

	rental, err := h.dealService.GetRental(c.Request.Context(), rentalID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve rental")
		return
	}
	c.JSON(http.StatusOK, dto.ToRentalResponse(rental))
}

// extendRental renews a rental under a new linked deal.
func (h *dealHandler) extendRental(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	extendReq := dto.ExtendRentalRequest{}
	if err := c.ShouldBindJSON(&extendReq); err != nil {
		logger.Error("Failed to bind JSON for ExtendRental", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	extendReq.RentalID = c.Param("rentalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	extension, err := h.dealService.ExtendRental(c.Request.Context(), extendReq, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to extend rental")
		return
	}

	logger.Info("Rental extended",
		slog.String("rental_id", extendReq.RentalID),
		slog.String("extension_deal_id", extension.DealID),
	)
	c.JSON(http.StatusCreated, dto.ToDealResponse(extension))
}

// closeRentalByReturn ends a rental with the equipment coming back.
func (h *dealHandler) closeRentalByReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rentalID := c.Param("rentalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.dealService.CloseRentalByReturn(c.Request.Context(), rentalID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to close rental")
		return
	}

	logger.Info("Rental closed by return", slog.String("rental_id", rentalID))
	c.JSON(http.StatusOK, gin.H{"rentalID": rentalID, "outcome": string(domain.OutcomeClosedReturn)})
}

// closeRentalByBuyout ends a rental with the client keeping the equipment.
func (h *dealHandler) closeRentalByBuyout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rentalID := c.Param("rentalID")

	buyoutReq := dto.CloseBuyoutRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&buyoutReq); err != nil {
			logger.Error("Failed to bind JSON for CloseRentalByBuyout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.dealService.CloseRentalByBuyout(c.Request.Context(), rentalID, buyoutReq.PurchaseAmountCents, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to close rental")
		return
	}

	logger.Info("Rental closed by buyout", slog.String("rental_id", rentalID))
	c.JSON(http.StatusOK, gin.H{"rentalID": rentalID, "outcome": string(domain.OutcomeClosedPurchase)})
}

// registerDealRoutes wires the deal and rental lifecycle routes.
func registerDealRoutes(group *gin.RouterGroup, dealService portssvc.DealSvcFacade) {
	h := newDealHandler(dealService)

	deals := group.Group("/deals")
	deals.POST("", h.createDeal)
	deals.GET("", h.listDeals)
	deals.GET("/:dealID", h.getDeal)
	deals.POST("/:dealID/activate", h.activateDeal)
	deals.POST("/:dealID/cancel", h.cancelDeal)

	rentals := group.Group("/rentals")
	rentals.GET("/:rentalID", h.getRental)
	rentals.POST("/:rentalID/extend", h.extendRental)
	rentals.POST("/:rentalID/close/return", h.closeRentalByReturn)
	rentals.POST("/:rentalID/close/buyout", h.closeRentalByBuyout)
}

// paginationParams reads limit/offset query params with sane defaults.
func paginationParams(c *gin.Context) (int, int) {
	limit := 50
	offset := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
