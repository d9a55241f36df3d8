package handlers

import (
	"net/http"

	"github.com/epeers/networth/internal/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles the route handlers served by the API
type Handlers struct {
	Holdings  *HoldingHandler
	Grants    *GrantHandler
	Settings  *SettingsHandler
	Portfolio *PortfolioHandler
}

// NewRouter registers every route on a new gin engine. Everything except
// /health and /swagger requires an owner id.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.ValidateOwner())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	scoped := router.Group("/", middleware.RequireOwner())

	scoped.POST("/holdings", h.Holdings.Create)
	scoped.GET("/holdings", h.Holdings.List)
	scoped.POST("/holdings/import", h.Holdings.Import)
	scoped.GET("/holdings/:id", h.Holdings.Get)
	scoped.PUT("/holdings/:id", h.Holdings.Update)
	scoped.DELETE("/holdings/:id", h.Holdings.Delete)

	scoped.POST("/grants", h.Grants.Create)
	scoped.GET("/grants", h.Grants.List)
	scoped.DELETE("/grants/:id", h.Grants.Delete)

	scoped.GET("/settings", h.Settings.Get)
	scoped.PUT("/settings", h.Settings.Update)

	scoped.GET("/portfolio/summary", h.Portfolio.Summary)
	scoped.GET("/portfolio/grants", h.Portfolio.Grants)
	scoped.GET("/portfolio/rebalance", h.Portfolio.Rebalance)

	return router
}
