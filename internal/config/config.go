package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port, BaseURL string }
type DBCfg struct{ DSN string }

type RedisCfg struct {
	Addr string // empty disables the list cache
	TTL  time.Duration
}

// ListCfg holds the paging settings of list endpoints
type ListCfg struct {
	PageSize      int
	MaxPageSize   int
	PageSizeParam string
}

type Cfg struct {
	App            AppCfg
	DB             DBCfg
	Redis          RedisCfg
	List           ListCfg
	ConnectTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_BASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("MAX_PAGE_SIZE", 100)
	v.SetDefault("PAGE_SIZE_PARAM", "perpage")
	v.SetDefault("CONNECT_TIMEOUT", "30s")
}

// FromViper builds and validates a Cfg from v.
func FromViper(v *viper.Viper) (Cfg, error) {
	setDefaults(v)

	cfg := Cfg{
		App: AppCfg{
			Env:     v.GetString("APP_ENV"),
			Port:    v.GetString("APP_PORT"),
			BaseURL: strings.TrimSpace(v.GetString("APP_BASE_URL")),
		},
		DB: DBCfg{DSN: v.GetString("DB_DSN")},
		Redis: RedisCfg{
			Addr: strings.TrimSpace(v.GetString("REDIS_ADDR")),
			TTL:  v.GetDuration("CACHE_TTL"),
		},
		List: ListCfg{
			PageSize:      v.GetInt("PAGE_SIZE"),
			MaxPageSize:   v.GetInt("MAX_PAGE_SIZE"),
			PageSizeParam: strings.TrimSpace(v.GetString("PAGE_SIZE_PARAM")),
		},
		ConnectTimeout: v.GetDuration("CONNECT_TIMEOUT"),
	}

	// Fail fast on required settings
	if cfg.DB.DSN == "" {
		return cfg, errors.New("DB_DSN is required")
	}
	if cfg.List.PageSize <= 0 || cfg.List.MaxPageSize <= 0 {
		return cfg, fmt.Errorf("PAGE_SIZE and MAX_PAGE_SIZE must be positive, got %d and %d",
			cfg.List.PageSize, cfg.List.MaxPageSize)
	}
	if cfg.List.PageSize > cfg.List.MaxPageSize {
		return cfg, fmt.Errorf("PAGE_SIZE %d exceeds MAX_PAGE_SIZE %d", cfg.List.PageSize, cfg.List.MaxPageSize)
	}
	if cfg.Redis.Addr != "" && cfg.Redis.TTL <= 0 {
		return cfg, errors.New("CACHE_TTL must be positive when REDIS_ADDR is set")
	}
	return cfg, nil
}

func Load() Cfg {
	// .env is optional; real env vars take precedence
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	v := viper.New()
	v.AutomaticEnv()
	cfg, err := FromViper(v)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}
