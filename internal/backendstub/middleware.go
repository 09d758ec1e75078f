package backendstub

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// requireAuth verifies the bearer access token and stores its owner.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			s.authRejected.Add(1)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			s.authRejected.Add(1)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header must contain two space-delimited values"})
			return
		}

		user, err := GetUserIDFromToken(token, tokenTypeAccess, s.secret, s.now())
		if err != nil {
			s.authRejected.Add(1)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Given token not valid for any token type",
				"code":   "token_not_valid",
			})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userKey)
}
