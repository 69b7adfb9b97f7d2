package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-hrms/pkg/helpers"
	"github.com/oksasatya/go-hrms/pkg/response"
)

const (
	CtxUserID   = "userID"
	CtxUserKind = "userKind"
)

// Auth validates the access token cookie and requires the token's session to
// be the one currently stored in Redis. On success it sets userID (int64),
// userKind, userName and userEmail in the Gin context.
func Auth(rdb redis.Cmdable, jwt *helpers.JWTManager) gin.HandlerFunc {
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
		uid, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			unauthorized(c, "invalid access token")
			return
		}

		data, err := rdb.HGetAll(c.Request.Context(), helpers.SessionKey(claims.UserID)).Result()
		if err != nil || len(data) == 0 {
			unauthorized(c, "session not found")
			return
		}
		if data["sid"] != claims.SessionID {
			unauthorized(c, "session expired")
			return
		}

		c.Set(CtxUserID, uid)
		c.Set(CtxUserKind, data["kind"])
		c.Set("userName", data["name"])
		c.Set("userEmail", data["email"])
		c.Next()
	}
}

// RequireKind lets only users of the given kind through. Must run after Auth.
func RequireKind(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserKind) != kind {
			response.Error[any](c, http.StatusForbidden, "forbidden", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func unauthorized(c *gin.Context, msg string) {
	response.Error[any](c, http.StatusUnauthorized, msg, nil)
	c.Abort()
}
