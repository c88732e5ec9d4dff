// internal/config/config.go
// Configuration loaded from environment variables (and an optional .env file).
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultPlaceholderURN is returned by the upload stub until the real APS
// upload pipeline exists.
const DefaultPlaceholderURN = "urn:adsk.objects:os.object:your-bucket:your-file.ipt"

// CORSConfig is the Origin Gate policy. It is read once at startup.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int // seconds, 0 = header not sent
}

type UploadConfig struct {
	PlaceholderURN string
	MaxBodyBytes   int64
}

type Config struct {
	AppName   string
	AppEnv    string
	Host      string
	Port      string
	Debug     bool
	LogLevel  string
	LogFormat string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	CORS   CORSConfig
	Upload UploadConfig
}

// Load reads .env (if present) and then the process environment.
// Variables already set in the environment are never overridden by .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	c := &Config{}
	c.AppName = getEnv("APP_NAME", "aps-bridge")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.Host = getEnv("APP_HOST", "0.0.0.0")
	c.Port = getEnv("APP_PORT", "3001")
	c.Debug = getEnvBool("APP_DEBUG", true)
	c.LogLevel = getEnv("LOG_LEVEL", "debug")
	c.LogFormat = getEnv("LOG_FORMAT", "json")

	c.ReadTimeout = getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	c.WriteTimeout = getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	c.IdleTimeout = getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	c.ShutdownTimeout = getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)

	c.CORS.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS",
		"http://localhost:5173", "http://localhost:3000", "http://localhost:4173")
	c.CORS.AllowedMethods = getEnvList("CORS_ALLOWED_METHODS",
		"GET", "POST", "PUT", "DELETE", "OPTIONS")
	c.CORS.AllowedHeaders = getEnvList("CORS_ALLOWED_HEADERS",
		"Content-Type", "Accept", "Authorization")
	c.CORS.AllowCredentials = false
	c.CORS.MaxAge = getEnvInt("CORS_MAX_AGE", 0)

	c.Upload.PlaceholderURN = getEnv("APS_PLACEHOLDER_URN", DefaultPlaceholderURN)
	c.Upload.MaxBodyBytes = int64(getEnvInt("UPLOAD_MAX_BODY_BYTES", 1<<20))

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values a running server cannot do without.
func (c *Config) Validate() error {
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must not be empty")
	}
	if c.CORS.AllowCredentials {
		return fmt.Errorf("cross-origin credentials are not supported")
	}
	if c.Upload.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid UPLOAD_MAX_BODY_BYTES %d", c.Upload.MaxBodyBytes)
	}
	return nil
}

// Addr is the listen address, e.g. "0.0.0.0:3001".
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, def ...string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
