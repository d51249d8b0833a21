// File: internal/config/config.go

// Package config reads the service settings from the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvDBUsername      = "DB_USERNAME"
	EnvDBPassword      = "DB_PASSWORD"
	EnvDBHost          = "DB_HOST"
	EnvDBPort          = "DB_PORT"
	EnvDBName          = "DB_NAME"
	EnvDBSSLMode       = "DB_SSLMODE"
	EnvDBAdminDatabase = "DB_ADMIN_DATABASE"
	EnvJWTSecret       = "JWT_SECRET"
	EnvTokenTTL        = "TOKEN_TTL"
	EnvHTTPAddr        = "HTTP_ADDR"
	EnvDataDir         = "DATA_DIR"
	EnvImportWorkers   = "IMPORT_WORKERS"
	EnvLogLevel        = "LOG_LEVEL"
	EnvRedisAddr       = "REDIS_ADDR"
	EnvRedisPassword   = "REDIS_PASSWORD"
	EnvRedisDB         = "REDIS_DB"
	EnvCacheTTL        = "CACHE_TTL"
)

// Config holds every runtime setting of the service.
type Config struct {
	DBUsername      string `env:"DB_USERNAME,required,notEmpty"`
	DBPassword      string `env:"DB_PASSWORD,required,notEmpty"`
	DBHost          string `env:"DB_HOST,required,notEmpty"`
	DBPort          int    `env:"DB_PORT,required,notEmpty"`
	DBName          string `env:"DB_NAME,required,notEmpty"`
	DBSSLMode       string `env:"DB_SSLMODE" envDefault:"disable"`
	DBAdminDatabase string `env:"DB_ADMIN_DATABASE" envDefault:"postgres"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	// TokenTTL <= 0 issues tokens without an exp claim.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir  string `env:"DATA_DIR" envDefault:"data"`
	// ImportWorkers 0 means one per CPU.
	ImportWorkers int    `env:"IMPORT_WORKERS" envDefault:"0"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// RedisAddr empty disables the lookup cache.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

// MissingError lists the required environment variables that were not set.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Keys, ", "))
}

var (
	loadDotEnv = func() error { return godotenv.Load() }
	parseEnv   = env.ParseAs[Config]
	numCPU     = runtime.NumCPU
)

// Load reads the configuration. A .env file in the working directory, when
// present, seeds variables that are not already set.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := parseEnv()
	if err != nil {
		if missing := missingKeys(err); len(missing) > 0 {
			return nil, &MissingError{Keys: missing}
		}
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DBPort < 1 || cfg.DBPort > 65535 {
		return nil, fmt.Errorf("invalid %s: %d", EnvDBPort, cfg.DBPort)
	}
	if cfg.DBName == cfg.DBAdminDatabase {
		return nil, fmt.Errorf("%s must differ from %s (%q)", EnvDBName, EnvDBAdminDatabase, cfg.DBName)
	}
	switch {
	case cfg.ImportWorkers < 0:
		return nil, fmt.Errorf("invalid %s: %d", EnvImportWorkers, cfg.ImportWorkers)
	case cfg.ImportWorkers == 0:
		cfg.ImportWorkers = numCPU()
	}
	if cfg.RedisDB < 0 {
		return nil, fmt.Errorf("invalid %s: %d", EnvRedisDB, cfg.RedisDB)
	}
	return &cfg, nil
}

// missingKeys extracts the unset or empty required keys from an env error.
func missingKeys(err error) []string {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return nil
	}
	var keys []string
	for _, e := range agg.Errors {
		var notSet env.VarIsNotSetError
		var empty env.EmptyVarError
		switch {
		case errors.As(e, &notSet):
			keys = append(keys, notSet.Key)
		case errors.As(e, &empty):
			keys = append(keys, empty.Key)
		}
	}
	return keys
}

// DatabaseURL is the pgx connection string of the service database.
func (c *Config) DatabaseURL() string {
	return c.url(c.DBName)
}

// AdminDatabaseURL points at the maintenance database used to drop and
// recreate the service database.
func (c *Config) AdminDatabaseURL() string {
	return c.url(c.DBAdminDatabase)
}

func (c *Config) url(dbName string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUsername, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:     "/" + dbName,
		RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
	}
	return u.String()
}
