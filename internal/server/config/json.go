package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
	"github.com/dmitrijs2005/todokeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations use
// timex.Duration so they can be written as "24h" or as nanoseconds. Pointer
// and zero-value fields that are absent from the file leave Config untouched.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC      *string         `json:"endpoint_addr_grpc"`
	StorageBackend        string          `json:"storage_backend"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	PasswordHasher        string          `json:"password_hasher"`
	BcryptCost            int             `json:"bcrypt_cost"`
	RedisAddr             string          `json:"redis_addr"`
	RedisPassword         string          `json:"redis_password"`
	RedisDB               int             `json:"redis_db"`
	CacheTTL              *timex.Duration `json:"cache_ttl"`
	RequestTimeout        *timex.Duration `json:"request_timeout"`
	ShutdownTimeout       *timex.Duration `json:"shutdown_timeout"`
	HealthCheckInterval   *timex.Duration `json:"health_check_interval"`
	LogLevel              string          `json:"log_level"`
	LogFormat             string          `json:"log_format"`
}

// parseJson loads the file named by -c/-config (or $CONFIG) into config.
// Nothing happens when no file is named. Read and decode errors panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.PasswordHasher, c.PasswordHasher)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)

	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.RedisDB != 0 {
		config.RedisDB = c.RedisDB
	}

	durations := []struct {
		src *timex.Duration
		dst *time.Duration
	}{
		{c.TokenValidityDuration, &config.TokenValidityDuration},
		{c.CacheTTL, &config.CacheTTL},
		{c.RequestTimeout, &config.RequestTimeout},
		{c.ShutdownTimeout, &config.ShutdownTimeout},
		{c.HealthCheckInterval, &config.HealthCheckInterval},
	}
	for _, d := range durations {
		if d.src != nil {
			*d.dst = d.src.Duration
		}
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
