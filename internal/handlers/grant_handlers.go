package handlers

import (
	"net/http"

	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/services"
	"github.com/gin-gonic/gin"
)

// GrantHandler handles stock grant tranche endpoints
type GrantHandler struct {
	grantSvc *services.GrantService
}

// NewGrantHandler creates a new GrantHandler
func NewGrantHandler(grantSvc *services.GrantService) *GrantHandler {
	return &GrantHandler{
		grantSvc: grantSvc,
	}
}

// Create handles POST /grants
// @Summary Add a grant tranche
// @Description A partially vested grant is entered as two tranches, one vested and one not.
// @Tags grants
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Param request body models.CreateGrantRequest true "Tranche"
// @Success 201 {object} models.StockGrant
// @Failure 400 {object} models.ErrorResponse
// @Router /grants [post]
func (h *GrantHandler) Create(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	var req models.CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	grant, err := h.grantSvc.CreateGrant(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, grant)
}

// List handles GET /grants
// @Summary List grant tranches
// @Tags grants
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Success 200 {array} models.StockGrant
// @Router /grants [get]
func (h *GrantHandler) List(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	grants, err := h.grantSvc.ListGrants(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grants)
}

// Delete handles DELETE /grants/:id
// @Summary Delete a grant tranche
// @Tags grants
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Param id path int true "Grant ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /grants/{id} [delete]
func (h *GrantHandler) Delete(c *gin.Context) {
	ownerID, id, ok := ownerAndID(c, "grant")
	if !ok {
		return
	}

	if err := h.grantSvc.DeleteGrant(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "grant deleted"})
}
