package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"photorelay/internal/config"
)

// CORS emits CORS response headers and answers preflight requests for the
// allowed origins. It expects OriginFilter to have run first.
func CORS(origins config.CORSConfig) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	if origins.AllowsAll() {
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}
	// cors.New refuses a config that allows nothing; OriginFilter already
	// rejects every browser origin in that case.
	if len(origins.AllowedOrigins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	cfg.AllowOrigins = origins.AllowedOrigins
	return cors.New(cfg)
}
