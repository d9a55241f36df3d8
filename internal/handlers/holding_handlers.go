package handlers

import (
	"net/http"

	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/services"
	"github.com/gin-gonic/gin"
)

// HoldingHandler handles holding CRUD and import endpoints
type HoldingHandler struct {
	holdingSvc *services.HoldingService
}

// NewHoldingHandler creates a new HoldingHandler
func NewHoldingHandler(holdingSvc *services.HoldingService) *HoldingHandler {
	return &HoldingHandler{
		holdingSvc: holdingSvc,
	}
}

// Create handles POST /holdings
// @Summary Add a holding
// @Description Create a holding. Category defaults from kind, cost basis is quantity times cost per unit.
// @Tags holdings
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Param request body models.CreateHoldingRequest true "Holding"
// @Success 201 {object} models.HoldingListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /holdings [post]
func (h *HoldingHandler) Create(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	var req models.CreateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	holding, err := h.holdingSvc.CreateHolding(ctx, ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.HoldingListResponse{
		Holdings: []models.Holding{*holding},
		Warnings: wc.GetWarnings(),
	})
}

// List handles GET /holdings
// @Summary List holdings
// @Tags holdings
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Success 200 {object} models.HoldingListResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /holdings [get]
func (h *HoldingHandler) List(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	holdings, err := h.holdingSvc.ListHoldings(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HoldingListResponse{Holdings: holdings})
}

// Get handles GET /holdings/:id
// @Summary Get a holding
// @Tags holdings
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Param id path int true "Holding ID"
// @Success 200 {object} models.Holding
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /holdings/{id} [get]
func (h *HoldingHandler) Get(c *gin.Context) {
	ownerID, id, ok := ownerAndID(c, "holding")
	if !ok {
		return
	}

	holding, err := h.holdingSvc.GetHolding(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, holding)
}

// Update handles PUT /holdings/:id
// @Summary Update a holding
// @Description Overwrite the given fields. Zero manual_price clears the price override. A zero tax_rate marks the holding exempt and a negative one clears the override.
// @Tags holdings
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Param id path int true "Holding ID"
// @Param request body models.UpdateHoldingRequest true "Fields to change"
// @Success 200 {object} models.HoldingListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /holdings/{id} [put]
func (h *HoldingHandler) Update(c *gin.Context) {
	ownerID, id, ok := ownerAndID(c, "holding")
	if !ok {
		return
	}

	var req models.UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	holding, err := h.holdingSvc.UpdateHolding(ctx, id, ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HoldingListResponse{
		Holdings: []models.Holding{*holding},
		Warnings: wc.GetWarnings(),
	})
}

// Delete handles DELETE /holdings/:id
// @Summary Delete a holding
// @Tags holdings
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Param id path int true "Holding ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /holdings/{id} [delete]
func (h *HoldingHandler) Delete(c *gin.Context) {
	ownerID, id, ok := ownerAndID(c, "holding")
	if !ok {
		return
	}

	if err := h.holdingSvc.DeleteHolding(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "holding deleted"})
}

// Import handles POST /holdings/import
// @Summary Import holdings from CSV
// @Description Multipart upload with a "holdings" file part. All rows are validated before any is stored.
// @Tags holdings
// @Accept multipart/form-data
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Param holdings formData file true "Holdings CSV"
// @Success 201 {object} models.ImportHoldingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /holdings/import [post]
func (h *HoldingHandler) Import(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("holdings")
	if err != nil {
		badRequest(c, "holdings file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "failed to open holdings file: "+err.Error())
		return
	}
	defer f.Close()

	reqs, err := ParseHoldingsCSV(f)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	holdings, err := h.holdingSvc.ImportHoldings(ctx, ownerID, reqs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ImportHoldingsResponse{
		Imported: len(holdings),
		Holdings: holdings,
		Warnings: wc.GetWarnings(),
	})
}
