package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./book-catalog.db"

	// DefaultEnvFile is loaded into the environment before reading config, if present
	DefaultEnvFile = ".env"
)
