package handlers

import (
	"net/http"

	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/services"
	"github.com/gin-gonic/gin"
)

// PortfolioHandler serves the aggregated valuation views
type PortfolioHandler struct {
	valuationSvc *services.ValuationService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(valuationSvc *services.ValuationService) *PortfolioHandler {
	return &PortfolioHandler{
		valuationSvc: valuationSvc,
	}
}

// Summary handles GET /portfolio/summary
// @Summary Portfolio summary
// @Description Net worth, after-tax value, allocation, liquidity and projections in the base currency.
// @Description Unpriced symbols and FX fallbacks are reported as warnings.
// @Tags portfolio
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Success 200 {object} models.SummaryResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /portfolio/summary [get]
func (h *PortfolioHandler) Summary(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	summary, err := h.valuationSvc.Summary(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	rounded := summary.Rounded()
	c.JSON(http.StatusOK, models.SummaryResponse{
		Summary:  rounded,
		Display:  services.DisplayTotals(rounded),
		Warnings: wc.GetWarnings(),
	})
}

// Grants handles GET /portfolio/grants
// @Summary Employee equity grants
// @Description Tranches grouped by grant date and price, with the unvested remainder valued net of tax.
// @Tags portfolio
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Success 200 {object} models.GrantsResponse
// @Router /portfolio/grants [get]
func (h *PortfolioHandler) Grants(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.valuationSvc.Grants(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}

// Rebalance handles GET /portfolio/rebalance
// @Summary Rebalancing drift
// @Description Per-bucket actual versus target percentage and the amount to buy (positive) or sell (negative).
// @Tags portfolio
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Success 200 {object} models.RebalanceResponse
// @Router /portfolio/rebalance [get]
func (h *PortfolioHandler) Rebalance(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.valuationSvc.Rebalance(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}
