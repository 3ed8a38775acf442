package config

const (
	EnvPrefix = "ECHNAVI"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ECHNAVI_DB_DSN"
	EnvDBHost = "ECHNAVI_DB_HOST"
	EnvDBUser = "ECHNAVI_DB_USER"
	EnvDBName = "ECHNAVI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
