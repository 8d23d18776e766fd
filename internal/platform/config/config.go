package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "propsearch/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr         string
	DatabaseURL  string
	Redis        RedisConfig
	KafkaBrokers []string

	Grid     GridConfig
	Matching MatchingConfig
}

// GridConfig fixes the spatial grid for the whole process. Resolution 9 is
// ~174m hexagons, fine enough to separate adjacent estates without splitting
// a single neighborhood across too many cells.
type GridConfig struct {
	Resolution int
}

// MatchingConfig tunes name matching without redeploying matcher logic.
type MatchingConfig struct {
	EditSimilarityThreshold float64
	TrigramThreshold        float64
	MinResultsBeforeExpand  int
	VariantCap              int
	Stoplist                []string
}

// RedisConfig holds connection settings for the optional centroid cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PROPSEARCH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = platformstrings.DedupeAndTrim(strings.Split(raw, ","))
	}

	stoplist := []string{"lagos", "nigeria", "ng", "lga", "state", "area"}
	if raw := os.Getenv("LOCATION_STOPLIST"); raw != "" {
		stoplist = platformstrings.DedupeAndTrimLower(strings.Split(raw, ","))
	}

	return Server{
		Addr:         addr,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		KafkaBrokers: brokers,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			CacheTTL:     time.Duration(envInt("CENTROID_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Grid: GridConfig{
			Resolution: envInt("GRID_RESOLUTION", 9),
		},
		Matching: MatchingConfig{
			EditSimilarityThreshold: envFloat("EDIT_SIMILARITY_THRESHOLD", 0.8),
			TrigramThreshold:        envFloat("TRIGRAM_THRESHOLD", 0.6),
			MinResultsBeforeExpand:  envInt("MIN_RESULTS_BEFORE_EXPAND", 5),
			VariantCap:              envInt("VARIANT_CAP", 20),
			Stoplist:                stoplist,
		},
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
