package middleware

import (
	"cinelog/src/config"
	users "cinelog/src/modules/users/models"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// CurrentUser resolves the caller identity from a Bearer token when one is
// supplied. Requests without an Authorization header pass through anonymously;
// a malformed or expired token is rejected outright.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header format"})
			return
		}

		claims, err := ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// Mirror the external identity so review foreign keys resolve.
		user := users.User{ID: claims.UserID}
		if err := config.DB.Attrs(users.User{Username: claims.Username}).FirstOrCreate(&user, users.User{ID: claims.UserID}).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAuth aborts unauthenticated requests before any mutation happens.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated caller set by CurrentUser, if any.
func UserFrom(c *gin.Context) (users.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return users.User{}, false
	}
	user, ok := v.(users.User)
	return user, ok
}
