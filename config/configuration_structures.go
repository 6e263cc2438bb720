package config

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig описывает параметры выпуска и проверки токенов.
// Все интервалы задаются в секундах
type JWTConfig struct {
	SecretKey                 string `yaml:"secret_key"`
	ExpireAccessTokenSeconds  int64  `yaml:"expire_access_token_seconds"`
	ExpireRefreshTokenSeconds int64  `yaml:"expire_refresh_token_seconds"`
	ValidationLeewaySeconds   int64  `yaml:"validation_leeway_seconds"`
	// EnableRevokedTokens включает учёт отозванных токенов в Redis.
	// При выключенном флаге проверки отзыва пропускаются целиком,
	// а logout/cleanup возвращают ошибку
	EnableRevokedTokens bool `yaml:"enable_revoked_tokens"`
}
