package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/routing"
)

type Config struct {
	Port        string
	AdminAddr   string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	Routing   routing.Config
	GraphFile string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	GeoIPDB       string
}

// LoadDotEnv reads .env files into the environment. Missing files are not
// an error; variables already set win.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	e := env{getenv: getenv}
	cfg := &Config{
		Port:          e.str("PORT", "8080"),
		AdminAddr:     e.str("ADMIN_ADDR", ":9090"),
		LogLevel:      e.str("LOG_LEVEL", "info"),
		LogFormat:     e.str("LOG_FORMAT", "text"),
		CORSOrigins:   e.list("CORS_ORIGINS"),
		GraphFile:     e.str("GRAPH_FILE", ""),
		DatabaseURL:   e.str("DATABASE_URL", ""),
		RedisAddr:     e.str("REDIS_ADDR", ""),
		RedisPassword: e.str("REDIS_PASSWORD", ""),
		GeoIPDB:       e.str("GEOIP_DB", ""),
	}
	if cfg.DatabaseURL == "" && getenv("PG_HOST") != "" {
		cfg.DatabaseURL = postgresDSN(e)
	}

	defaults := routing.DefaultConfig()
	cfg.Routing = routing.Config{
		AverageSpeedKmh: e.float("ROUTE_AVG_SPEED_KMH", defaults.AverageSpeedKmh),
		GridSize:        e.int("ROUTE_GRID_SIZE", defaults.GridSize),
		MinRadiusKm:     e.float("ROUTE_MIN_RADIUS_KM", defaults.MinRadiusKm),
		RadiusFactor:    e.float("ROUTE_RADIUS_FACTOR", defaults.RadiusFactor),
		MaxIterations:   e.int("ROUTE_MAX_ITERATIONS", defaults.MaxIterations),
	}
	cfg.RedisDB = e.int("REDIS_DB", 0)
	cfg.CacheTTL = e.duration("ROUTE_CACHE_TTL", 10*time.Minute)

	if e.err != nil {
		return nil, e.err
	}
	if cfg.Routing.AverageSpeedKmh <= 0 {
		return nil, fmt.Errorf("ROUTE_AVG_SPEED_KMH must be positive, got %v", cfg.Routing.AverageSpeedKmh)
	}
	if cfg.Routing.GridSize <= 0 {
		return nil, fmt.Errorf("ROUTE_GRID_SIZE must be positive, got %d", cfg.Routing.GridSize)
	}
	return cfg, nil
}

func postgresDSN(e env) string {
	dsn := "postgres://" + e.str("PG_USER", "postgres")
	if pass := e.str("PG_PASSWORD", ""); pass != "" {
		dsn += ":" + pass
	}
	dsn += "@" + e.str("PG_HOST", "localhost") + ":" + e.str("PG_PORT", "5432") +
		"/" + e.str("PG_DB", "navigator") + "?sslmode=" + e.str("PG_SSLMODE", "disable")
	return dsn
}

// env collects the first parse error so Load reports it once.
type env struct {
	getenv func(string) string
	err    error
}

func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *env) list(key string) []string {
	var out []string
	for _, part := range strings.Split(e.getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (e *env) int(key string, def int) int {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *env) float(key string, def float64) float64 {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return f
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}

func (e *env) fail(key, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}
