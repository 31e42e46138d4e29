package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIBaseURL = "https://cove-coding-challenge-api.herokuapp.com"
	ReservationsPath  = "/reservations"
)

type Config struct {
	HTTPAddr string `validate:"required"`

	APIBaseURL       string        `validate:"required,url"`
	APITimeout       time.Duration `validate:"gt=0"`
	MaxRetryAttempts int           `validate:"gte=1"`
	RetryDelay       time.Duration `validate:"gte=0"`
	CacheTTL         time.Duration `validate:"gte=0"`
	StrictValidation bool

	// Zone used for calendar-day matching and for display.
	Location *time.Location `validate:"required"`

	RedisAddr       string
	RefreshInterval time.Duration `validate:"gte=0"`

	CookieHashKey  []byte
	CookieBlockKey []byte
}

// ReservationsURL is the request target, also used as the cache key.
func (c Config) ReservationsURL() string {
	return strings.TrimRight(c.APIBaseURL, "/") + ReservationsPath
}

// HasCookieKeys reports whether filter preferences can be persisted.
func (c Config) HasCookieKeys() bool {
	return len(c.CookieHashKey) > 0
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:         envDefault("HTTP_ADDR", ":8080"),
		APIBaseURL:       envDefault("API_BASE_URL", DefaultAPIBaseURL),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		StrictValidation: envDefault("STRICT_VALIDATION", "1") == "1",
	}

	var err error
	if cfg.APITimeout, err = envMillis("API_TIMEOUT_MS", 10000); err != nil {
		return cfg, err
	}
	if cfg.RetryDelay, err = envMillis("RETRY_DELAY_MS", 1000); err != nil {
		return cfg, err
	}
	if cfg.MaxRetryAttempts, err = envInt("MAX_RETRY_ATTEMPTS", 3); err != nil {
		return cfg, err
	}
	cacheSec, err := envInt("CACHE_TTL_SECONDS", 300)
	if err != nil {
		return cfg, err
	}
	cfg.CacheTTL = time.Duration(cacheSec) * time.Second
	refreshSec, err := envInt("REFRESH_INTERVAL_SECONDS", 0)
	if err != nil {
		return cfg, err
	}
	cfg.RefreshInterval = time.Duration(refreshSec) * time.Second

	tz := envDefault("CANONICAL_TZ", "UTC")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("invalid CANONICAL_TZ: %w", err)
	}

	hashKey := strings.TrimSpace(os.Getenv("COOKIE_HASH_KEY"))
	blockKey := strings.TrimSpace(os.Getenv("COOKIE_BLOCK_KEY"))
	if hashKey != "" || blockKey != "" {
		if cfg.CookieHashKey, err = decodeB64("COOKIE_HASH_KEY", hashKey); err != nil {
			return cfg, err
		}
		if cfg.CookieBlockKey, err = decodeB64("COOKIE_BLOCK_KEY", blockKey); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	switch len(c.CookieBlockKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes (got %d)", len(c.CookieBlockKey))
	}
	return nil
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}

func envInt(k string, d int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func envMillis(k string, d int) (time.Duration, error) {
	n, err := envInt(k, d)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Millisecond, nil
}

func decodeB64(k, v string) ([]byte, error) {
	if v == "" {
		return nil, fmt.Errorf("%s is required when the other cookie key is set (base64)", k)
	}
	if b, err := base64.StdEncoding.DecodeString(v); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
