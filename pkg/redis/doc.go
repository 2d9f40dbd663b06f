// Package redis opens the go-redis client used by the Redis session store.
//
// Settings come from a [Config] that can be filled from the environment with
// caarlos0/env:
//
//	REDIS_URL             - redis:// or rediss:// URL (required)
//	REDIS_POOL_SIZE       - maximum connections (default: 10)
//	REDIS_MIN_IDLE_CONNS  - idle connections kept open (default: 2)
//	REDIS_CONN_MAX_IDLE   - idle connection lifetime (default: 10m)
//	REDIS_CONN_MAX_LIFE   - connection lifetime (default: 30m)
//	REDIS_RETRY_ATTEMPTS  - connection attempts at startup (default: 3)
//	REDIS_RETRY_INTERVAL  - base wait between attempts (default: 2s)
//	REDIS_TIMEOUT         - read and write timeout (default: 3s)
//
// Usage:
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil { ... }
//	client, err := redis.Open(ctx, cfg)
//	store := session.NewRedisStore(client)
//
// [Healthcheck] and [Shutdown] plug into the application's health endpoint
// and shutdown hooks.
package redis
