package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DotEnvFile is loaded into the process environment before env overlays are
// read. A missing file is not an error. Variables already set win.
const DotEnvFile = ".env"

// EnvConfig maps environment variables onto Config. Unset or empty variables
// leave the current value alone.
type EnvConfig struct {
	EndpointAddrHTTP      string        `env:"HTTP_ADDRESS"`
	EndpointAddrGRPC      string        `env:"GRPC_ADDRESS"`
	StorageBackend        string        `env:"STORAGE_BACKEND"`
	DatabaseDSN           string        `env:"DATABASE_URL"`
	SecretKey             string        `env:"JWT_SECRET"`
	TokenValidityDuration time.Duration `env:"TOKEN_TTL"`
	PasswordHasher        string        `env:"PASSWORD_HASHER"`
	BcryptCost            int           `env:"BCRYPT_COST"`
	RedisAddr             string        `env:"REDIS_ADDR"`
	RedisPassword         string        `env:"REDIS_PASSWORD"`
	RedisDB               int           `env:"REDIS_DB"`
	CacheTTL              time.Duration `env:"CACHE_TTL"`
	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT"`
	ShutdownTimeout       time.Duration `env:"SHUTDOWN_TIMEOUT"`
	HealthCheckInterval   time.Duration `env:"HEALTH_CHECK_INTERVAL"`
	LogLevel              string        `env:"LOG_LEVEL"`
	LogFormat             string        `env:"LOG_FORMAT"`
}

// parseEnv loads dotEnvPath (if present) and overlays environment variables
// onto config. Malformed values panic, like the other loaders.
func parseEnv(config *Config, dotEnvPath string) {
	if dotEnvPath != "" {
		if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	var e EnvConfig
	if err := cleanenv.ReadEnv(&e); err != nil {
		panic(err)
	}

	e.apply(config)
}

func (e *EnvConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, e.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, e.EndpointAddrGRPC)
	setString(&config.StorageBackend, e.StorageBackend)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.PasswordHasher, e.PasswordHasher)
	setString(&config.RedisAddr, e.RedisAddr)
	setString(&config.RedisPassword, e.RedisPassword)
	setString(&config.LogLevel, e.LogLevel)
	setString(&config.LogFormat, e.LogFormat)

	if e.BcryptCost != 0 {
		config.BcryptCost = e.BcryptCost
	}
	if e.RedisDB != 0 {
		config.RedisDB = e.RedisDB
	}
	setDuration(&config.TokenValidityDuration, e.TokenValidityDuration)
	setDuration(&config.CacheTTL, e.CacheTTL)
	setDuration(&config.RequestTimeout, e.RequestTimeout)
	setDuration(&config.ShutdownTimeout, e.ShutdownTimeout)
	setDuration(&config.HealthCheckInterval, e.HealthCheckInterval)
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
