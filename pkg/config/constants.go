package config

const (
	EnvPrefix = "ombor"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "OMBOR_DB_DSN"
	EnvDBHost = "OMBOR_DB_HOST"
	EnvDBUser = "OMBOR_DB_USER"
	EnvDBName = "OMBOR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
