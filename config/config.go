// Package config loads the application configuration from environment
// variables once at startup.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting. It is constructed once in main
// and passed by reference into the modules; there is no ambient mutable
// global state.
type Config struct {
	JWTSecretKey string
	JWTTTL       time.Duration

	RedisHost string
	RedisPort int
	RedisDB   int
	CacheTTL  time.Duration

	MySQLUser     string
	MySQLPassword string
	MySQLDB       string
	MySQLHost     string

	// InstanceConnectionName identifies the Cloud SQL instance used in
	// managed-deployment socket mode.
	InstanceConnectionName string
	// GAEEnv selects the store connection mode; values starting with
	// "standard" switch to the unix socket.
	GAEEnv string

	HTTPPort int

	AdminUsername string
	AdminPassword string
}

// Load reads the configuration from the environment. A missing required
// value aborts startup.
func Load() (*Config, error) {
	cfg := &Config{
		JWTSecretKey:           os.Getenv("JWT_SECRET_KEY"),
		JWTTTL:                 getEnvDuration("JWT_TTL", 15*time.Minute),
		RedisHost:              os.Getenv("REDIS_HOST"),
		RedisPort:              getEnvInt("REDIS_PORT", 6379),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		CacheTTL:               getEnvDuration("CACHE_TTL", 60*time.Second),
		MySQLUser:              getEnv("MYSQL_USER", "root"),
		MySQLPassword:          os.Getenv("MYSQL_PASSWORD"),
		MySQLDB:                getEnv("MYSQL_DB", "gerenciador_tarefas"),
		MySQLHost:              getEnv("MYSQL_HOST", "localhost"),
		InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		GAEEnv:                 os.Getenv("GAE_ENV"),
		HTTPPort:               getEnvInt("HTTP_PORT", 3000),
		AdminUsername:          getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:          getEnv("ADMIN_PASSWORD", "senha123"),
	}

	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if cfg.RedisHost == "" {
		return nil, fmt.Errorf("REDIS_HOST is required")
	}
	if cfg.SocketMode() && cfg.InstanceConnectionName == "" {
		return nil, fmt.Errorf("INSTANCE_CONNECTION_NAME is required when GAE_ENV=%s", cfg.GAEEnv)
	}

	return cfg, nil
}

// SocketMode reports whether the store is reached through the
// managed-deployment unix socket instead of TCP.
func (c *Config) SocketMode() bool {
	return strings.HasPrefix(c.GAEEnv, "standard")
}

// RedisAddr returns the host:port address of the Redis server.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// MySQLDSN builds the database DSN for the selected connection mode.
func (c *Config) MySQLDSN() string {
	if c.SocketMode() {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?parseTime=true",
			c.MySQLUser, c.MySQLPassword, c.InstanceConnectionName, c.MySQLDB)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:3306)/%s?parseTime=true",
		c.MySQLUser, c.MySQLPassword, c.MySQLHost, c.MySQLDB)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
