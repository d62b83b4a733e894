package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/logger"
)

// NewEngine wires the route API with recovery, access logging and CORS.
// An empty origins list allows every origin.
func NewEngine(h *RoutingHandler, l *slog.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.AccessMiddleware(l))

	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.MaxAge = 12 * time.Hour
	r.Use(cors.New(config))

	h.RegisterRoutes(r)
	return r
}
