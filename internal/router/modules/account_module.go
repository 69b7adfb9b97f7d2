package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	handlers "github.com/oksasatya/go-hrms/internal/interface/http"
	"github.com/oksasatya/go-hrms/internal/interface/middleware"
	"github.com/oksasatya/go-hrms/pkg/helpers"
)

type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager, rdb *redis.Client) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/candidates/:id", readLimiter, m.Handler.GetCandidate)
	rg.GET("/employers/:id", readLimiter, m.Handler.GetEmployer)

	me := rg.Group("/candidates/me")
	me.Use(
		middleware.Auth(m.RDB, m.JWT),
		middleware.RequireKind(string(entity.KindJobCandidate)),
		middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByUserID(), nil),
	)
	me.POST("/avatar", m.Handler.UploadAvatar)
}
