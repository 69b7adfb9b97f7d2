package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/go-hrms/internal/interface/middleware"
)

// DebugModule exposes expvar and Prometheus metrics to private networks only.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	private := middleware.Only(middleware.AllowPrivateIP())
	rg.GET("/debug/vars", private, gin.WrapH(expvar.Handler()))
	rg.GET("/metrics", private, gin.WrapH(promhttp.Handler()))
}
