package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-hrms/pkg/response"
)

// Module is a feature that registers its routes on the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use adds middleware applied to every /api route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// Health mounts GET path on the engine root. Every check runs with a short
// timeout; any failure turns the answer into 503.
func (r *Registry) Health(path string, checks map[string]Check) {
	r.Engine.GET(path, func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				continue
			}
			result[name] = "ok"
		}
		if status != http.StatusOK {
			response.Error[any](c, status, "unhealthy", result)
			return
		}
		response.Success[any](c, status, result, "healthy", nil)
	})
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
