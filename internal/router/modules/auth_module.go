package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-hrms/internal/interface/http"
	"github.com/oksasatya/go-hrms/internal/interface/middleware"
	"github.com/oksasatya/go-hrms/pkg/helpers"
)

// AuthModule serves registration, verification and session endpoints under /api/auth.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	resendLimiter := middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIP(), nil)
	lookupLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/auth")
	g.POST("/register/employer", registerLimiter, m.Handler.RegisterEmployer)
	g.POST("/register/candidate", registerLimiter, m.Handler.RegisterCandidate)
	g.POST("/verify", verifyLimiter, m.Handler.Verify)
	g.POST("/verify/resend", resendLimiter, m.Handler.ResendVerification)
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	g.GET("/exists", lookupLimiter, m.Handler.Exists)

	g.POST("/logout", middleware.Auth(m.RDB, m.JWT), m.Handler.Logout)
}
