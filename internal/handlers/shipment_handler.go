package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cargo-entry-service/internal/events"
	"cargo-entry-service/internal/gateway"
	"cargo-entry-service/internal/models"
	"cargo-entry-service/internal/party"
	"cargo-entry-service/internal/services"
)

// ShipmentHandler proxies shipment queries and commands to the backend and
// serves the party reference endpoints.
type ShipmentHandler struct {
	gateway      *gateway.Client
	partyService *services.PartyService
	publisher    *events.Publisher
}

// NewShipmentHandler creates a new shipment handler. publisher may be nil.
func NewShipmentHandler(gw *gateway.Client, partyService *services.PartyService, publisher *events.Publisher) *ShipmentHandler {
	return &ShipmentHandler{
		gateway:      gw,
		partyService: partyService,
		publisher:    publisher,
	}
}

// HealthCheck handles GET /health
func (h *ShipmentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "cargo-entry-service"})
}

// ListShipments handles GET /api/shipments
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	statusID, _ := strconv.Atoi(c.DefaultQuery("statusId", "0"))
	branchID, _ := strconv.Atoi(c.DefaultQuery("branchId", "0"))

	records, err := h.gateway.List(c.Request.Context(), models.ListShipmentsFilters{
		StatusID: statusID,
		BranchID: branchID,
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
	})
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: records})
}

// GetShipment handles GET /api/shipments/:id
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid shipment ID",
			Message: "Shipment ID must be a positive integer",
		})
		return
	}
	record, err := h.gateway.GetByID(c.Request.Context(), id)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: record})
}

// MarkCargoIn handles PATCH /api/cargo/:cargoId/mark-in
func (h *ShipmentHandler) MarkCargoIn(c *gin.Context) {
	h.markCargo(c, h.gateway.MarkCargoIn, func(cargoID int) {
		if h.publisher != nil {
			_ = h.publisher.PublishCargoMarkedIn(cargoID)
		}
	})
}

// MarkCargoOut handles PATCH /api/cargo/:cargoId/mark-out
func (h *ShipmentHandler) MarkCargoOut(c *gin.Context) {
	h.markCargo(c, h.gateway.MarkCargoOut, func(cargoID int) {
		if h.publisher != nil {
			_ = h.publisher.PublishCargoMarkedOut(cargoID)
		}
	})
}

// markCargo validates the cargo id locally (the gateway rejects a
// non-positive id before any request), forwards the optional body, and
// emits the lifecycle event on success.
func (h *ShipmentHandler) markCargo(c *gin.Context, mark func(ctx context.Context, cargoID interface{}, body map[string]interface{}) error, onSuccess func(int)) {
	cargoParam := c.Param("cargoId")

	body := map[string]interface{}{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Message: err.Error(),
			})
			return
		}
	}

	if err := mark(c.Request.Context(), cargoParam, body); err != nil {
		respondGatewayError(c, err)
		return
	}

	if id, err := strconv.Atoi(cargoParam); err == nil {
		onSuccess(id)
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Cargo status updated"),
	})
}

// ListParties handles GET /api/parties?role=sender|receiver
func (h *ShipmentHandler) ListParties(c *gin.Context) {
	roleParam := c.Query("role")
	var records []party.Record
	var err error
	if roleParam == "" {
		records, err = h.partyService.List(c.Request.Context())
	} else {
		role, ok := party.ParseRole(roleParam)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid role",
				Message: "role must be 'sender' or 'receiver'",
			})
			return
		}
		records, err = h.partyService.ListByRole(c.Request.Context(), role)
	}
	if err != nil {
		respondGatewayError(c, err)
		return
	}

	displays := make([]services.PartyDisplay, 0, len(records))
	for _, rec := range records {
		displays = append(displays, h.partyService.Display(rec))
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: gin.H{
		"parties": records,
		"display": displays,
	}})
}

// collectorLabelRequest resolves a collected-by selection into a label.
type collectorLabelRequest struct {
	RoleName   string         `json:"roleName" binding:"required"`
	PersonID   string         `json:"personId"`
	Candidates []party.Record `json:"candidates"`
}

// ResolveCollectorLabel handles POST /api/collectors/label
func (h *ShipmentHandler) ResolveCollectorLabel(c *gin.Context) {
	var req collectorLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}
	label := party.ResolveCollector(req.RoleName, req.PersonID, req.Candidates)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: gin.H{"label": label}})
}

// respondGatewayError surfaces backend request errors with their original
// status and field breakdown; anything else is a plain upstream failure.
func respondGatewayError(c *gin.Context, err error) {
	var reqErr *gateway.RequestError
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &reqErr):
		c.JSON(reqErr.Status, models.ErrorResponse{
			Error:   "Backend request failed",
			Message: reqErr.Message,
			Fields:  reqErr.FieldErrors,
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "Validation failed",
			Message: validationErr.Error(),
			Fields:  validationErr.FieldErrors,
		})
	default:
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "Upstream request failed",
			Message: err.Error(),
		})
	}
}
