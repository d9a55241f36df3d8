package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/epeers/networth/internal/middleware"
	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHoldingNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "holding not found",
		})
	case errors.Is(err, services.ErrGrantNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "grant not found",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidHolding),
		errors.Is(err, services.ErrInvalidGrant),
		errors.Is(err, services.ErrInvalidSettings):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "bad_request",
		Message: msg,
	})
}

// ownerAndID reads the owner from the context and the :id path parameter.
// It writes the error response itself and reports false on failure.
func ownerAndID(c *gin.Context, what string) (ownerID, id int64, ok bool) {
	ownerID, ok = requireOwner(c)
	if !ok {
		return 0, 0, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+what+" ID")
		return 0, 0, false
	}
	return ownerID, id, true
}

func requireOwner(c *gin.Context) (int64, bool) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return 0, false
	}
	return ownerID, true
}
