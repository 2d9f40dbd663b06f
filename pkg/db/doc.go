// Package db opens the PostgreSQL pool used by the wizard session store and
// the job queue, and applies goose migrations.
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, session.Migrations(), cfg.MigrationsTable, logger); err != nil {
//	    return err
//	}
//
// Configuration is read from the environment:
//
//	DATABASE_URL                - connection URL (required)
//	DATABASE_MIGRATIONS_TABLE   - goose version table (default: wizard_migrations)
//	DATABASE_MAX_OPEN_CONNS     - pool size (default: 10)
//	DATABASE_MIN_CONNS          - idle connections kept open (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD - (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - (default: 3)
//	DATABASE_RETRY_INTERVAL     - (default: 5s)
package db
