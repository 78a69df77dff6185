package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photorelay/internal/config"
	"photorelay/internal/domain"
)

// OriginFilter rejects browser requests whose Origin is not allowed. Requests
// without an Origin header are not from a browser and always pass.
func OriginFilter(cfg config.CORSConfig) gin.HandlerFunc {
	wildcard := cfg.AllowsAll()
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || wildcard || allowed[origin] {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrOriginNotAllowed.Error()})
	}
}
