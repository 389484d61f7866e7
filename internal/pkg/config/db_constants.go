package config

// PostgresDbType selects the PostgreSQL driver
const PostgresDbType = "postgres"

// SqliteDbType selects the SQLite driver
const SqliteDbType = "sqlite"
