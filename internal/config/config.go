// Package config carga la configuración del servicio: YAML + overrides por
// variables de entorno. El archivo .env (si existe) lo carga main con godotenv
// antes de llamar a Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Storage struct {
		// postgres | memory
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MinConns        int    `yaml:"min_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind   string `yaml:"kind"`
		Prefix string `yaml:"prefix"`
		Redis  struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Auth struct {
		// Secreto HS256 compartido con el servicio de auth que emite los
		// access tokens. Vacío desactiva el source JWT.
		JWTSecret string `yaml:"jwt_secret"`
		JWTIssuer string `yaml:"jwt_issuer"`
		Session   struct {
			CookieName string `yaml:"cookie_name"`
			TTL        string `yaml:"ttl"`
		} `yaml:"session"`
	} `yaml:"auth"`

	Email struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"email"`

	Dashboard struct {
		// TTL del cache del summary; "0" desactiva el cache
		SummaryTTL string `yaml:"summary_ttl"`
	} `yaml:"dashboard"`
}

// Load lee el YAML, aplica defaults y overrides de entorno.
// Si el archivo no existe, parte de la configuración vacía (sólo env).
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "acmedash"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Auth.Session.CookieName == "" {
		c.Auth.Session.CookieName = "acme_session"
	}
	if c.Auth.Session.TTL == "" {
		c.Auth.Session.TTL = "24h"
	}
	if c.Dashboard.SummaryTTL == "" {
		c.Dashboard.SummaryTTL = "60s"
	}

	c.applyEnvOverrides()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = v
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("DATABASE_URL"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("AUTH_JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := getEnvStr("AUTH_JWT_ISSUER"); ok {
		c.Auth.JWTIssuer = v
	}
	if v, ok := getEnvStr("SESSION_COOKIE_NAME"); ok {
		c.Auth.Session.CookieName = v
	}
	if v, ok := getEnvStr("SESSION_TTL"); ok {
		c.Auth.Session.TTL = v
	}
	if v, ok := getEnvBool("EMAIL_ENABLED"); ok {
		c.Email.Enabled = v
	}
	if v, ok := getEnvStr("EMAIL_HOST"); ok {
		c.Email.Host = v
	}
	if v, ok := getEnvInt("EMAIL_PORT"); ok {
		c.Email.Port = v
	}
	if v, ok := getEnvStr("EMAIL_USERNAME"); ok {
		c.Email.Username = v
	}
	if v, ok := getEnvStr("EMAIL_PASSWORD"); ok {
		c.Email.Password = v
	}
	if v, ok := getEnvStr("EMAIL_FROM"); ok {
		c.Email.From = v
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("config: storage.driver=postgres requiere storage.dsn (o DATABASE_URL)")
		}
	default:
		return fmt.Errorf("config: storage.driver desconocido %q", c.Storage.Driver)
	}
	switch c.Cache.Kind {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: cache.kind desconocido %q", c.Cache.Kind)
	}
	return nil
}

// SessionTTL parsea auth.session.ttl; default 24h.
func (c *Config) SessionTTL() time.Duration {
	return parseDur(c.Auth.Session.TTL, 24*time.Hour)
}

// SummaryTTL parsea dashboard.summary_ttl; default 60s.
func (c *Config) SummaryTTL() time.Duration {
	return parseDur(c.Dashboard.SummaryTTL, 60*time.Second)
}

// CacheDefaultTTL parsea cache.memory.default_ttl; default 2m.
func (c *Config) CacheDefaultTTL() time.Duration {
	return parseDur(c.Cache.Memory.DefaultTTL, 2*time.Minute)
}

func parseDur(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil && d >= 0 {
		return d
	}
	return def
}

func getEnvStr(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	v, ok := getEnvStr(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func getEnvBool(key string) (bool, bool) {
	v, ok := getEnvStr(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	return b, err == nil
}
