package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-hrms/pkg/response"
)

// KeyFunc names the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true for requests that skip limiting.
type AllowFunc func(*gin.Context) bool

func clientOrUnknown(c *gin.Context) string {
	if ip := ClientIP(c); ip != "" {
		return ip
	}
	return "unknown"
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + clientOrUnknown(c) }
}

// KeyByIPAndPath gives every route its own budget per client, so hammering
// /auth/verify does not lock the same client out of /auth/login.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		return "rl:path:" + route + ":ip:" + clientOrUnknown(c)
	}
}

// KeyByUserID counts authenticated users by id and everyone else by IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid, ok := UserID(c); ok {
			return "rl:user:" + strconv.FormatInt(uid, 10)
		}
		return "rl:user:anon:ip:" + clientOrUnknown(c)
	}
}

// The first hit in a window sets the expiry, in the same round trip as INCR.
var fixedWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// Limiter is a fixed-window counter kept in Redis.
type Limiter struct {
	RDB    redis.Scripter
	Max    int
	Window time.Duration
}

// Decision is the outcome of one Take.
type Decision struct {
	Allowed   bool
	Remaining int
	Reset     time.Duration // until the window closes
}

// Take counts one hit against key.
func (l Limiter) Take(ctx context.Context, key string) (Decision, error) {
	res, err := fixedWindow.Run(ctx, l.RDB, []string{key}, l.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, err
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	count := int(res[0])
	return Decision{
		Allowed:   count <= l.Max,
		Remaining: max(l.Max-count, 0),
		Reset:     time.Duration(res[1]) * time.Millisecond,
	}, nil
}

// RateLimit answers 429 once a key exceeds limit hits per window and always
// reports X-RateLimit-* headers. Redis errors let the request through.
func RateLimit(rdb redis.Scripter, limit int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || limit <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	l := Limiter{RDB: rdb, Max: limit, Window: window}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		d, err := l.Take(c.Request.Context(), keyFn(c))
		if err != nil {
			c.Next()
			return
		}

		resetSec := strconv.Itoa(int((d.Reset + time.Second - 1) / time.Second))
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", resetSec)

		if !d.Allowed {
			c.Header("Retry-After", resetSec)
			response.Error[any](c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
