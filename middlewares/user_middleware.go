// middlewares/user_middleware.go
package middlewares

import (
	"net/http"
	"strconv"

	"dietcraft/config"
	"dietcraft/models"

	"github.com/gin-gonic/gin"
)

// UserMiddleware resolves the calling user from the X-User-ID header and
// stores the id and email on the context. Identity verification happens
// upstream of this service.
func UserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header required"})
			return
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-User-ID must be numeric"})
			return
		}

		var user models.User
		if err := config.DB.First(&user, uint(id)).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.Set("userID", uint(user.ID))
		c.Set("email", user.Email)

		c.Next()
	}
}
