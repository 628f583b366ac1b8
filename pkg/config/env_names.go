package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for unannotated additions.
const EnvPrefix = "SAHAJ"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	CartStoreSQLite = "sqlite"
	CartStoreRedis  = "redis"
)

const (
	EnvAppEnv          = "SAHAJ_APP_ENV"
	EnvPort            = "SAHAJ_APP_PORT"
	EnvUpstreamBaseURL = "SAHAJ_UPSTREAM_BASE_URL"
	EnvCartStore       = "SAHAJ_CART_STORE"
	EnvRedisURL        = "SAHAJ_REDIS_URL"
	EnvJWTSecret       = "SAHAJ_JWT_SECRET"
	EnvJWTIssuer       = "SAHAJ_JWT_ISSUER"
)
