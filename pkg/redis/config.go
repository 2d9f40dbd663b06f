package redis

import "time"

// Config holds the Redis connection settings.
type Config struct {
	URL string `env:"REDIS_URL,required"`

	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	ConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE" envDefault:"10m"`
	ConnMaxLifetime time.Duration `env:"REDIS_CONN_MAX_LIFE" envDefault:"30m"`

	// Startup retries wait RetryInterval, then twice as long, and so on.
	RetryAttempts int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`

	Timeout time.Duration `env:"REDIS_TIMEOUT" envDefault:"3s"`
}

// DefaultConfig returns the defaults of Config for url.
func DefaultConfig(url string) Config {
	return Config{
		URL:             url,
		PoolSize:        10,
		MinIdleConns:    2,
		ConnMaxIdleTime: 10 * time.Minute,
		ConnMaxLifetime: 30 * time.Minute,
		RetryAttempts:   3,
		RetryInterval:   2 * time.Second,
		Timeout:         3 * time.Second,
	}
}
