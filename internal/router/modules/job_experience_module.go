package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-hrms/internal/interface/http"
	"github.com/oksasatya/go-hrms/internal/interface/middleware"
)

// JobExperienceModule keeps the legacy /api/auth/{add,findById,findAll} paths
// next to the search and per-candidate listings.
type JobExperienceModule struct {
	Handler *handlers.JobExperienceHandler
	RDB     *redis.Client
}

func NewJobExperienceModule(h *handlers.JobExperienceHandler, rdb *redis.Client) *JobExperienceModule {
	return &JobExperienceModule{Handler: h, RDB: rdb}
}

func (m *JobExperienceModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	readLimiter := middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/add", writeLimiter, m.Handler.Add)
	rg.GET("/auth/findById", readLimiter, m.Handler.FindByID)
	rg.GET("/auth/findAll", readLimiter, m.Handler.FindAll)
	rg.GET("/job-experiences/search", readLimiter, m.Handler.Search)
	rg.GET("/candidates/:id/experiences", readLimiter, m.Handler.ListByCandidate)
}
