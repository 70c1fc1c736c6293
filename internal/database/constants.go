package database

import "time"

const (
	// DefaultMinConnections is kept warm unless the pool is smaller
	DefaultMinConnections int32 = 2

	// ConnectTimeout bounds the initial connect and ping
	ConnectTimeout = 10 * time.Second
)

const sqlDatabaseExists = `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`

// Error messages
const (
	ErrMsgFailedToParseConnString    = "failed to parse connection string"
	ErrMsgFailedToCreatePool         = "failed to create connection pool"
	ErrMsgFailedToPingDatabase       = "failed to ping database"
	ErrMsgFailedToConnectMaintenance = "failed to connect to maintenance database"
	ErrMsgFailedToCheckDatabase      = "failed to check for database"
	ErrMsgFailedToCreateDatabase     = "failed to create database"
	ErrMsgFailedToLoadMigrations     = "failed to load migrations"
	ErrMsgFailedToApplyMigrations    = "failed to apply migrations"
	ErrMsgFailedToReadMigrationState = "failed to read migration state"
)

// Log messages
const (
	LogMsgConnected        = "Connected to database"
	LogMsgMigrationApplied = "Migration applied"
	LogMsgSchemaUpToDate   = "Schema is up to date"
)
