package config

const (
	EnvPrefix = "MARKETLINK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "MARKETLINK_DB_DSN"
	EnvDBHost = "MARKETLINK_DB_HOST"
	EnvDBUser = "MARKETLINK_DB_USER"
	EnvDBName = "MARKETLINK_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
