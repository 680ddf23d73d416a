package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/renteq/rentalcrm/internal/middleware"
)

// clientHandler handles HTTP requests for clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

// newClientHandler creates a new clientHandler.
func newClientHandler(clientService portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{
		clientService: clientService,
	}
}

func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateClientRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), createReq, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create client")
		return
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	client, err := h.clientService.GetClient(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := paginationParams(c)

	clients, err := h.clientService.ListClients(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list clients")
		return
	}

	responses := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		responses[i] = dto.ToClientResponse(&clients[i])
	}
	c.JSON(http.StatusOK, gin.H{"clients": responses})
}

// registerClientRoutes wires the client routes.
func registerClientRoutes(group *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := group.Group("/clients")
	clients.POST("", h.createClient)
	clients.GET("", h.listClients)
	clients.GET("/:clientID", h.getClient)
}
