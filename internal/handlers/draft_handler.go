package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cargo-entry-service/internal/draft"
	"cargo-entry-service/internal/models"
	"cargo-entry-service/internal/services"
)

// DraftHandler handles HTTP requests for shipment entry drafts
type DraftHandler struct {
	draftService *services.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *services.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// valueBody carries a single raw form value; the engine does the coercion.
type valueBody struct {
	Value interface{} `json:"value"`
}

// chargeBody carries charge line edits; either field may be present.
type chargeBody struct {
	Qty  interface{} `json:"qty"`
	Rate interface{} `json:"rate"`
}

type itemFieldBody struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

// CreateDraft handles POST /api/drafts
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	_, resp := h.draftService.CreateDraft()
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    resp,
	})
}

// GetDraft handles GET /api/drafts/:id
func (h *DraftHandler) GetDraft(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	resp, err := h.draftService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: resp})
}

// DiscardDraft handles DELETE /api/drafts/:id
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	if err := h.draftService.Discard(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Draft discarded"),
	})
}

// AddBox handles POST /api/drafts/:id/boxes
func (h *DraftHandler) AddBox(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	resp, err := h.draftService.AddBox(id)
	h.respond(c, resp, err)
}

// RemoveBox handles DELETE /api/drafts/:id/boxes/:index
func (h *DraftHandler) RemoveBox(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	index, ok := h.indexParam(c, "index")
	if !ok {
		return
	}
	resp, err := h.draftService.RemoveBox(id, index)
	h.respond(c, resp, err)
}

// SetBoxWeight handles PUT /api/drafts/:id/boxes/:index/weight
func (h *DraftHandler) SetBoxWeight(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	index, ok := h.indexParam(c, "index")
	if !ok {
		return
	}
	var body valueBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.draftService.SetBoxWeight(id, index, body.Value)
	h.respond(c, resp, err)
}

// AddItem handles POST /api/drafts/:id/boxes/:index/items
func (h *DraftHandler) AddItem(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	index, ok := h.indexParam(c, "index")
	if !ok {
		return
	}
	resp, err := h.draftService.AddItem(id, index)
	h.respond(c, resp, err)
}

// RemoveItem handles DELETE /api/drafts/:id/boxes/:index/items/:itemIndex
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	index, ok := h.indexParam(c, "index")
	if !ok {
		return
	}
	itemIndex, ok := h.indexParam(c, "itemIndex")
	if !ok {
		return
	}
	resp, err := h.draftService.RemoveItem(id, index, itemIndex)
	h.respond(c, resp, err)
}

// SetItem handles PUT /api/drafts/:id/boxes/:index/items/:itemIndex
func (h *DraftHandler) SetItem(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	index, ok := h.indexParam(c, "index")
	if !ok {
		return
	}
	itemIndex, ok := h.indexParam(c, "itemIndex")
	if !ok {
		return
	}
	var body itemFieldBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "Invalid request body", err.Error())
		return
	}

	var resp models.DraftResponse
	var err error
	switch body.Field {
	case "name":
		name, _ := body.Value.(string)
		resp, err = h.draftService.SetItemName(id, index, itemIndex, name)
	case "pieces":
		resp, err = h.draftService.SetItemPieces(id, index, itemIndex, body.Value)
	default:
		h.badRequest(c, "Invalid item field", "field must be 'name' or 'pieces'")
		return
	}
	h.respond(c, resp, err)
}

// SetCharge handles PUT /api/drafts/:id/charges/:key
func (h *DraftHandler) SetCharge(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	key, ok := models.ParseChargeKey(c.Param("key"))
	if !ok {
		h.badRequest(c, "Invalid charge key", "unknown charge line: "+c.Param("key"))
		return
	}
	var body chargeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "Invalid request body", err.Error())
		return
	}

	var resp models.DraftResponse
	var err error
	if body.Qty != nil {
		resp, err = h.draftService.SetChargeQty(id, key, body.Qty)
		if err != nil {
			h.respondError(c, err)
			return
		}
	}
	if body.Rate != nil {
		resp, err = h.draftService.SetChargeRate(id, key, body.Rate)
	}
	if body.Qty == nil && body.Rate == nil {
		resp, err = h.draftService.Get(id)
	}
	h.respond(c, resp, err)
}

// SetVAT handles PUT /api/drafts/:id/vat
func (h *DraftHandler) SetVAT(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	var body valueBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.draftService.SetVATPercentage(id, body.Value)
	h.respond(c, resp, err)
}

// UpdateDetails handles PUT /api/drafts/:id/details
func (h *DraftHandler) UpdateDetails(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	var update services.DetailsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.badRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.draftService.UpdateDetails(id, update)
	h.respond(c, resp, err)
}

// GetTotals handles GET /api/drafts/:id/totals
func (h *DraftHandler) GetTotals(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	resp, err := h.draftService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: resp.Totals})
}

// SubmitDraft handles POST /api/drafts/:id/submit
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	fields := map[string]interface{}{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&fields); err != nil {
			h.badRequest(c, "Invalid request body", err.Error())
			return
		}
	}
	record, err := h.draftService.Submit(c.Request.Context(), id, fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    record,
		Message: stringPtr("Shipment created successfully"),
	})
}

func (h *DraftHandler) respond(c *gin.Context, resp models.DraftResponse, err error) {
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: resp})
}

func (h *DraftHandler) respondError(c *gin.Context, err error) {
	respondError(c, err)
}

func (h *DraftHandler) badRequest(c *gin.Context, title, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   title,
		Message: message,
	})
}

func (h *DraftHandler) draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.badRequest(c, "Invalid draft ID", "Draft ID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *DraftHandler) indexParam(c *gin.Context, name string) (int, bool) {
	index, err := strconv.Atoi(c.Param(name))
	if err != nil || index < 0 {
		h.badRequest(c, "Invalid index", name+" must be a non-negative integer")
		return 0, false
	}
	return index, true
}

// respondError maps the error taxonomy onto HTTP statuses: draft/index
// errors are client errors, the last-box invariant is a conflict, and
// validation failures carry their field breakdown.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, services.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Draft not found",
			Message: err.Error(),
		})
	case errors.Is(err, draft.ErrLastBox):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "Cannot remove box",
			Message: err.Error(),
		})
	case errors.Is(err, draft.ErrBoxIndex), errors.Is(err, draft.ErrItemIndex), errors.Is(err, draft.ErrUnknownCharge):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid draft operation",
			Message: err.Error(),
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "Validation failed",
			Message: validationErr.Error(),
			Fields:  validationErr.FieldErrors,
		})
	default:
		respondGatewayError(c, err)
	}
}

func stringPtr(s string) *string {
	return &s
}
