package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/satriadivo/goshop/pkg/helpers"
	"github.com/satriadivo/goshop/pkg/response"
)

func unauthorized(c *gin.Context, msg string) {
	response.Error[any](c, http.StatusUnauthorized, msg, nil)
	c.Abort()
}

// Auth validates the access token cookie and requires a live Redis session
// whose sid matches the token's. On success the user's id, name, and email
// land in the Gin context for the handlers.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.AccessCookie)
		if err != nil || token == "" {
			unauthorized(c, "missing access token")
			return
		}

		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			unauthorized(c, "invalid access token")
			return
		}

		sess, err := rdb.HGetAll(c.Request.Context(), "user:session:"+claims.UserID).Result()
		if err != nil || len(sess) == 0 || sess["sid"] != claims.SessionID {
			unauthorized(c, "session not found")
			return
		}

		c.Set("userID", sess["user_id"])
		c.Set("userName", sess["name"])
		c.Set("userEmail", sess["email"])
		c.Next()
	}
}
