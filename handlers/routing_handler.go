package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geolocate"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/graphs"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/metrics"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/routing"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/store"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
	maxTileZoom         = 22
)

// RouteCache is satisfied by *store.RedisCache.
type RouteCache interface {
	Get(ctx context.Context, origin, destination geo.Coordinate, mode routing.Mode) (routing.RouteResult, bool, error)
	Put(ctx context.Context, res routing.RouteResult) error
}

// RouteStore is satisfied by *store.Postgres.
type RouteStore interface {
	Save(ctx context.Context, res routing.RouteResult, at time.Time) (int64, error)
	Recent(ctx context.Context, limit int) ([]store.RouteRecord, error)
}

type RouteRequest struct {
	Origin      *geo.Coordinate `json:"origin"`
	Destination *geo.Coordinate `json:"destination" binding:"required"`
	Direct      bool            `json:"direct,omitempty"`
}

// RoutingHandler serves the route API. Graph, Cache, Store and Locator are
// optional.
type RoutingHandler struct {
	service *routing.Service
	logger  *slog.Logger

	Graph   *graphs.Graph
	Cache   RouteCache
	Store   RouteStore
	Locator geolocate.Locator
	Now     func() time.Time
}

func NewRoutingHandler(service *routing.Service, logger *slog.Logger) *RoutingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoutingHandler{
		service: service,
		logger:  logger,
		Now:     time.Now,
	}
}

func (h *RoutingHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/routes", h.CalculateRoute)
	r.POST("/api/routes/direct", h.DirectRoute)
	r.GET("/api/routes/history", h.History)
	r.GET("/api/tiles", h.Tile)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}

func (h *RoutingHandler) CalculateRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, req, req.Direct)
}

func (h *RoutingHandler) DirectRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, req, true)
}

func (h *RoutingHandler) respond(c *gin.Context, req RouteRequest, direct bool) {
	ctx := c.Request.Context()

	origin, ok := h.origin(c, req)
	if !ok {
		return
	}
	destination := *req.Destination
	if !origin.Valid() || !destination.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat must be within [-90, 90] and lng within [-180, 180]"})
		return
	}

	mode := routing.ModeGrid
	if direct {
		mode = routing.ModeDirect
	}

	// Only grid searches are cached.
	useCache := h.Cache != nil && !direct

	if useCache {
		cached, hit, err := h.Cache.Get(ctx, origin, destination, mode)
		switch {
		case err != nil:
			metrics.StoreErrorsTotal.WithLabelValues("cache").Inc()
			h.logger.Warn("route_cache_get_failed", "error", err)
		case hit:
			metrics.CacheHitsTotal.Inc()
			// Keys are H3 cells; report the endpoints this request asked for.
			cached.Origin, cached.Destination = origin, destination
			c.JSON(http.StatusOK, cached)
			return
		default:
			metrics.CacheMissesTotal.Inc()
		}
	}

	var res routing.RouteResult
	if direct {
		res = h.service.CreateDirectPath(origin, destination)
	} else {
		res = h.service.CalculateRoute(ctx, origin, destination, h.Graph)
	}

	if !res.Success {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}

	if useCache {
		if err := h.Cache.Put(ctx, res); err != nil {
			metrics.StoreErrorsTotal.WithLabelValues("cache").Inc()
			h.logger.Warn("route_cache_put_failed", "error", err)
		}
	}
	if h.Store != nil {
		if id, err := h.Store.Save(ctx, res, h.Now()); err != nil {
			metrics.StoreErrorsTotal.WithLabelValues("store").Inc()
			h.logger.Warn("route_save_failed", "error", err)
		} else {
			h.logger.Debug("route_saved", "id", id)
		}
	}

	c.JSON(http.StatusOK, res)
}

// origin returns the requested origin, falling back to the client address
// when a locator is configured.
func (h *RoutingHandler) origin(c *gin.Context, req RouteRequest) (geo.Coordinate, bool) {
	if req.Origin != nil {
		return *req.Origin, true
	}
	if h.Locator == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin is required"})
		return geo.Coordinate{}, false
	}
	origin, err := h.Locator.Locate(c.ClientIP())
	if err != nil {
		h.logger.Info("origin_lookup_failed", "ip", c.ClientIP(), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin is required: could not locate client"})
		return geo.Coordinate{}, false
	}
	return origin, true
}

func (h *RoutingHandler) History(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "route history is not configured"})
		return
	}

	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.Store.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("route_history_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load route history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"routes": records,
		"count":  len(records),
	})
}

func (h *RoutingHandler) Tile(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	zoom, errZoom := strconv.Atoi(c.Query("zoom"))
	if errLat != nil || errLng != nil || errZoom != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat, lng and zoom are required numbers"})
		return
	}
	if zoom < 0 || zoom > maxTileZoom || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat, lng or zoom out of range"})
		return
	}

	x, y := geo.TileXY(geo.Coordinate{Lat: lat, Lng: lng}, zoom)
	c.JSON(http.StatusOK, geo.Tile{X: x, Y: y, Z: zoom})
}
