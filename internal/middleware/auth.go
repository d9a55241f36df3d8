package middleware

import (
	"net/http"
	"strconv"

	"github.com/epeers/networth/internal/models"
	"github.com/gin-gonic/gin"
)

const OwnerIDKey = "owner_id"

// OwnerHeader carries the household owner id. There is no real authentication;
// the header only scopes records.
const OwnerHeader = "X-User-ID"

// ValidateOwner extracts a positive owner id from the X-User-ID header.
// Requests without a usable header pass through unscoped.
func ValidateOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerStr := c.GetHeader(OwnerHeader)
		if ownerStr == "" {
			c.Next()
			return
		}

		ownerID, err := strconv.ParseInt(ownerStr, 10, 64)
		if err != nil || ownerID <= 0 {
			c.Next()
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}

// GetOwnerID retrieves the owner id from the context
func GetOwnerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(OwnerIDKey)
	if !exists {
		return 0, false
	}
	ownerID, ok := v.(int64)
	return ownerID, ok
}

// RequireOwner rejects requests that carry no owner id
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetOwnerID(c); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "X-User-ID header with a positive owner id is required",
			})
			return
		}
		c.Next()
	}
}
