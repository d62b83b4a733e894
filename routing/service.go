package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/graphs"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/metrics"
)

const (
	DefaultAverageSpeedKmh = 50.0
	DefaultGridSize        = 15
	DefaultMinRadiusKm     = 5.0
	DefaultRadiusFactor    = 1.5
)

var ErrNoRouteNodes = errors.New("no route nodes")

type Config struct {
	AverageSpeedKmh float64
	GridSize        int
	MinRadiusKm     float64
	RadiusFactor    float64
	MaxIterations   int
}

func DefaultConfig() Config {
	return Config{
		AverageSpeedKmh: DefaultAverageSpeedKmh,
		GridSize:        DefaultGridSize,
		MinRadiusKm:     DefaultMinRadiusKm,
		RadiusFactor:    DefaultRadiusFactor,
	}
}

type Service struct {
	cfg    Config
	logger *slog.Logger
}

func NewService(cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, logger: logger}
}

func (s *Service) Config() Config { return s.cfg }

// GridRadiusKm is the half-extent of the lattice built for a request.
func (s *Service) GridRadiusKm(origin, destination geo.Coordinate) float64 {
	return math.Max(s.cfg.RadiusFactor*geo.Distance(origin, destination), s.cfg.MinRadiusKm)
}

// CalculateRoute plans a route over graph, or over a lattice built around
// the two points when graph is nil. A caller-supplied graph stays owned by
// the caller and is only read. Failures come back as a RouteResult with
// Success false.
func (s *Service) CalculateRoute(ctx context.Context, origin, destination geo.Coordinate, graph *graphs.Graph) RouteResult {
	started := time.Now()
	defer func() {
		metrics.RouteDurationMs.Observe(float64(time.Since(started).Microseconds()) / 1000)
	}()

	if graph == nil {
		radius := s.GridRadiusKm(origin, destination)
		graph = graphs.BuildGrid(geo.Midpoint(origin, destination), radius, s.cfg.GridSize)
		s.logger.Debug("grid_built", "nodes", graph.Len(), "radius_km", radius)
	}

	startNode := graph.FindClosestNode(origin)
	goalNode := graph.FindClosestNode(destination)
	if startNode == nil || goalNode == nil {
		metrics.RoutesTotal.WithLabelValues(string(ModeGrid), "no_nodes").Inc()
		s.logger.Warn("route_failed", "reason", ErrNoRouteNodes, "origin", origin, "destination", destination)
		return failedResult(origin, destination, ModeGrid, ErrNoRouteNodes)
	}

	nodes, err := AStar(ctx, startNode, goalNode, SearchOptions{MaxIterations: s.cfg.MaxIterations})
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrNoPath) {
			outcome = "no_path"
		}
		metrics.RoutesTotal.WithLabelValues(string(ModeGrid), outcome).Inc()
		s.logger.Warn("route_failed", "reason", err, "start", startNode.ID, "goal", goalNode.ID)
		return failedResult(origin, destination, ModeGrid, fmt.Errorf("route from %s to %s: %w", startNode.ID, goalNode.ID, err))
	}

	result := s.measure(origin, destination, ModeGrid, Positions(nodes))
	metrics.RoutesTotal.WithLabelValues(string(ModeGrid), "ok").Inc()
	s.logger.Info("route_found",
		"nodes", len(nodes),
		"distance_km", result.DistanceKm,
		"duration_min", result.DurationMinutes,
		"elapsed", time.Since(started),
	)
	return result
}

// CreateDirectPath returns the straight segment between the two points.
// It never fails.
func (s *Service) CreateDirectPath(origin, destination geo.Coordinate) RouteResult {
	metrics.RoutesTotal.WithLabelValues(string(ModeDirect), "ok").Inc()
	return s.measure(origin, destination, ModeDirect, []geo.Coordinate{origin, destination})
}

func (s *Service) measure(origin, destination geo.Coordinate, mode Mode, path []geo.Coordinate) RouteResult {
	distance := geo.PathLength(path)
	minutes := EstimateMinutes(distance, s.cfg.AverageSpeedKmh)
	return RouteResult{
		Origin:          origin,
		Destination:     destination,
		Mode:            mode,
		Path:            path,
		DistanceKm:      distance,
		DurationMinutes: minutes,
		DistanceText:    FormatDistance(distance),
		DurationText:    FormatDuration(minutes),
		Success:         true,
	}
}
