package db

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrMigrationStore           = errors.New("db migrator: failed to create version store")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
)
