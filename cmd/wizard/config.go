package main

import (
	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/formwizard"
	"github.com/dmitrymomot/formwizard/pkg/cookie"
	"github.com/dmitrymomot/formwizard/pkg/db"
	"github.com/dmitrymomot/formwizard/pkg/logger"
	"github.com/dmitrymomot/formwizard/pkg/redis"
)

const (
	storeMemory   = "memory"
	storeRedis    = "redis"
	storePostgres = "postgres"
)

type config struct {
	Server  formwizard.ServerConfig
	Session formwizard.SessionConfig
	Log     logger.Config
	Sentry  logger.SentryConfig
	Cookie  cookie.Config

	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	CleanupSchedule string `env:"SESSION_CLEANUP_SCHEDULE" envDefault:"*/15 * * * *"`

	// Set when DATABASE_URL is present or the session store needs them.
	DB    *db.Config    `env:"-"`
	Redis *redis.Config `env:"-"`
}

// loadConfig reads the environment. Postgres is optional unless sessions
// live there; it also enables the job queue.
func loadConfig(getenv func(string) string) (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	if cfg.Session.Store == storePostgres || getenv("DATABASE_URL") != "" {
		dbCfg, err := env.ParseAs[db.Config]()
		if err != nil {
			return cfg, err
		}
		cfg.DB = &dbCfg
	}
	if cfg.Session.Store == storeRedis {
		redisCfg, err := env.ParseAs[redis.Config]()
		if err != nil {
			return cfg, err
		}
		cfg.Redis = &redisCfg
	}
	return cfg, nil
}
