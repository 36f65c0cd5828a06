package config

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = "SARTOR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "SARTOR_APP_ENV"
	EnvPort      = "SARTOR_APP_PORT"
	EnvDBDSN     = "SARTOR_DB_DSN"
	EnvDBHost    = "SARTOR_DB_HOST"
	EnvDBUser    = "SARTOR_DB_USER"
	EnvDBName    = "SARTOR_DB_NAME"
	EnvRedisURL  = "SARTOR_REDIS_URL"
	EnvJWTSecret = "SARTOR_JWT_SECRET"
	EnvJWTIssuer = "SARTOR_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
