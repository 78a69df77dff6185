package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"photorelay/internal/config"
	"photorelay/internal/handler"
	"photorelay/internal/metrics"
	"photorelay/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsCfg config.CORSConfig,
	uploadH *handler.UploadHandler,
	healthH *handler.HealthHandler,
	m *metrics.Metrics,
	log logrus.FieldLogger,
) *gin.Engine {
	r := gin.New()

	// Global middleware. The origin filter runs before any handler.
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.OriginFilter(corsCfg))
	r.Use(middleware.CORS(corsCfg))

	r.GET("/", healthH.Liveness)
	r.POST("/upload", uploadH.Upload)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}
