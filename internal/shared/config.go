package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Hosted object-storage backend for gallery/fleet imagery.
	StorageBase   string
	StorageKey    string
	StorageBucket string

	AdminKey string

	// Early-bird promotional window.
	PromoDeadline    time.Time
	PromoDiscountPct float64

	SeedFile string
	Workers  int
	CacheTTL time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/charter?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		StorageBase:   env("STORAGE_BASE_URL", "https://storage.balearic-charter.com/v1"),
		StorageKey:    env("STORAGE_API_KEY", ""),
		StorageBucket: env("STORAGE_BUCKET", "site-media"),
		AdminKey:      env("ADMIN_API_KEY", ""),
		SeedFile:      env("SEED_FILE", "seed/content.json"),
		Workers:       atoi("SEED_WORKERS", 8),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	c.PromoDeadline = loadDeadline()
	c.PromoDiscountPct = loadDiscountPct()
	if c.StorageKey == "" {
		log.Warn().Msg("STORAGE_API_KEY is empty")
	}
	if c.AdminKey == "" {
		log.Warn().Msg("ADMIN_API_KEY is empty; admin routes are open")
	}
	return c
}

// loadDeadline parses PROMO_DEADLINE (RFC3339). The default is the
// 2026 early-bird cutoff the marketing site launched with.
func loadDeadline() time.Time {
	def := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	v := os.Getenv("PROMO_DEADLINE")
	if v == "" {
		return def
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		log.Warn().Str("value", v).Msg("PROMO_DEADLINE not RFC3339; using default")
		return def
	}
	return t
}

func loadDiscountPct() float64 {
	v := os.Getenv("PROMO_DISCOUNT_PCT")
	if v == "" {
		return 10
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 100 {
		log.Warn().Str("value", v).Msg("PROMO_DISCOUNT_PCT invalid; using 10")
		return 10
	}
	return f
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
