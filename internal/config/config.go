package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env      string `yaml:"env"`
		Name     string `yaml:"name"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		Driver   string `yaml:"driver"` // memory | postgres
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns        int    `yaml:"max_conns"`
			MinConns        int    `yaml:"min_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
		AutoMigrate bool `yaml:"auto_migrate"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr     string `yaml:"addr"`
			DB       int    `yaml:"db"`
			Password string `yaml:"password"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		TenantTTL string `yaml:"tenant_ttl"`
	} `yaml:"cache"`

	JWT struct {
		Issuer     string `yaml:"issuer"`
		AccessTTL  string `yaml:"access_ttl"`
		RefreshTTL string `yaml:"refresh_ttl"`
		// KeyFile: clave Ed25519 privada (PEM PKCS#8). Vacío => clave efímera (solo dev).
		KeyFile string `yaml:"key_file"`
	} `yaml:"jwt"`

	Auth struct {
		ResetTTL      string `yaml:"reset_ttl"`
		VerifyTTL     string `yaml:"verify_ttl"`
		PublicBaseURL string `yaml:"public_base_url"`
	} `yaml:"auth"`

	Rate struct {
		Enabled     bool   `yaml:"enabled"`
		Window      string `yaml:"window"`
		MaxRequests int    `yaml:"max_requests"`
	} `yaml:"rate"`

	SMTP struct {
		Host               string `yaml:"host"`
		Port               int    `yaml:"port"`
		Username           string `yaml:"username"`
		Password           string `yaml:"password"`
		From               string `yaml:"from"`
		TLS                string `yaml:"tls"`                  // auto | starttls | ssl | none
		InsecureSkipVerify bool   `yaml:"insecure_skip_verify"` // sólo dev
	} `yaml:"smtp"`

	Uploads struct {
		Driver     string `yaml:"driver"` // local | s3
		Dir        string `yaml:"dir"`
		PublicBase string `yaml:"public_base"`
		MaxBytes   int64  `yaml:"max_bytes"`
		S3         struct {
			Bucket     string `yaml:"bucket"`
			Region     string `yaml:"region"`
			Endpoint   string `yaml:"endpoint"`
			AccessKey  string `yaml:"access_key"`
			SecretKey  string `yaml:"secret_key"`
			PathStyle  bool   `yaml:"path_style"`
			PublicBase string `yaml:"public_base"`
		} `yaml:"s3"`
	} `yaml:"uploads"`

	Security struct {
		PasswordPolicy struct {
			MinLength     int  `yaml:"min_length"`
			RequireUpper  bool `yaml:"require_upper"`
			RequireLower  bool `yaml:"require_lower"`
			RequireDigit  bool `yaml:"require_digit"`
			RequireSymbol bool `yaml:"require_symbol"`
		} `yaml:"password_policy"`
	} `yaml:"security"`

	Bootstrap struct {
		SuperAdmin struct {
			Email    string `yaml:"email"`
			Password string `yaml:"password"`
			Name     string `yaml:"name"`
		} `yaml:"super_admin"`
	} `yaml:"bootstrap"`
}

// Load lee el YAML (si path no es vacío), aplica defaults y overrides GYM_*.
// Un .env en el directorio actual se carga antes de leer el entorno.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.Name == "" {
		c.App.Name = "gymcore"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "15s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "15s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "gymcore:"
	}
	if c.Cache.TenantTTL == "" {
		c.Cache.TenantTTL = "30s"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "gymcore"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "15m"
	}
	if c.JWT.RefreshTTL == "" {
		c.JWT.RefreshTTL = "720h" // 30d
	}
	if c.Auth.ResetTTL == "" {
		c.Auth.ResetTTL = "10m"
	}
	if c.Auth.VerifyTTL == "" {
		c.Auth.VerifyTTL = "24h"
	}
	if c.Auth.PublicBaseURL == "" {
		c.Auth.PublicBaseURL = "http://localhost:8080"
	}
	if c.Rate.Window == "" {
		c.Rate.Window = "1m"
	}
	if c.Rate.MaxRequests == 0 {
		c.Rate.MaxRequests = 20
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}
	if c.Uploads.Driver == "" {
		c.Uploads.Driver = "local"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "./data/uploads"
	}
	if c.Uploads.PublicBase == "" {
		c.Uploads.PublicBase = "/uploads"
	}
	if c.Uploads.MaxBytes == 0 {
		c.Uploads.MaxBytes = 5 << 20
	}
	if c.Security.PasswordPolicy.MinLength == 0 {
		c.Security.PasswordPolicy.MinLength = 8
	}
	if c.Bootstrap.SuperAdmin.Name == "" {
		c.Bootstrap.SuperAdmin.Name = "Super Admin"
	}
}

// Validate reporta valores faltantes o mal formados.
func (c *Config) Validate() error {
	var errs []error

	durations := map[string]string{
		"server.read_timeout":                c.Server.ReadTimeout,
		"server.write_timeout":               c.Server.WriteTimeout,
		"server.shutdown_timeout":            c.Server.ShutdownTimeout,
		"cache.tenant_ttl":                   c.Cache.TenantTTL,
		"jwt.access_ttl":                     c.JWT.AccessTTL,
		"jwt.refresh_ttl":                    c.JWT.RefreshTTL,
		"auth.reset_ttl":                     c.Auth.ResetTTL,
		"auth.verify_ttl":                    c.Auth.VerifyTTL,
		"rate.window":                        c.Rate.Window,
		"storage.postgres.conn_max_lifetime": c.Storage.Postgres.ConnMaxLifetime,
	}
	for key, v := range durations {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			errs = append(errs, errors.New("storage.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q not supported", c.Storage.Driver))
	}

	switch c.Cache.Kind {
	case "memory":
	case "redis":
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			errs = append(errs, errors.New("cache.redis.addr is required for redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.kind %q not supported", c.Cache.Kind))
	}

	switch c.Uploads.Driver {
	case "local":
	case "s3":
		if c.Uploads.S3.Bucket == "" || c.Uploads.S3.Region == "" {
			errs = append(errs, errors.New("uploads.s3.bucket and uploads.s3.region are required for s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("uploads.driver %q not supported", c.Uploads.Driver))
	}

	if c.IsProd() && c.JWT.KeyFile == "" {
		errs = append(errs, errors.New("jwt.key_file is required in prod"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProd() bool { return strings.EqualFold(c.App.Env, "prod") }

// Duration parsea un valor ya validado. Vacío => 0.
func Duration(s string) time.Duration {
	d, _ := time.ParseDuration(strings.TrimSpace(s))
	return d
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	s, ok := getEnvStr(key)
	if !ok {
		return nil, false
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, true
}

func setStr(dst *string, key string) {
	if v, ok := getEnvStr(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := getEnvInt(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := getEnvBool(key); ok {
		*dst = v
	}
}

// applyEnvOverrides: pisa el YAML con variables GYM_*.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("GYM_APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	setStr(&c.App.LogLevel, "GYM_LOG_LEVEL")

	// SERVER
	setStr(&c.Server.Addr, "GYM_SERVER_ADDR")
	if v, ok := getEnvCSV("GYM_SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// STORAGE
	setStr(&c.Storage.Driver, "GYM_STORAGE_DRIVER")
	setStr(&c.Storage.DSN, "GYM_STORAGE_DSN")
	setInt(&c.Storage.Postgres.MaxConns, "GYM_POSTGRES_MAX_CONNS")
	setInt(&c.Storage.Postgres.MinConns, "GYM_POSTGRES_MIN_CONNS")
	setStr(&c.Storage.Postgres.ConnMaxLifetime, "GYM_POSTGRES_CONN_MAX_LIFETIME")
	setBool(&c.Storage.AutoMigrate, "GYM_STORAGE_AUTO_MIGRATE")

	// CACHE
	setStr(&c.Cache.Kind, "GYM_CACHE_KIND")
	setStr(&c.Cache.Redis.Addr, "GYM_REDIS_ADDR")
	setInt(&c.Cache.Redis.DB, "GYM_REDIS_DB")
	setStr(&c.Cache.Redis.Password, "GYM_REDIS_PASSWORD")
	setStr(&c.Cache.Redis.Prefix, "GYM_REDIS_PREFIX")

	// JWT
	setStr(&c.JWT.Issuer, "GYM_JWT_ISSUER")
	setStr(&c.JWT.AccessTTL, "GYM_JWT_ACCESS_TTL")
	setStr(&c.JWT.RefreshTTL, "GYM_JWT_REFRESH_TTL")
	setStr(&c.JWT.KeyFile, "GYM_JWT_KEY_FILE")

	// AUTH
	setStr(&c.Auth.ResetTTL, "GYM_AUTH_RESET_TTL")
	setStr(&c.Auth.VerifyTTL, "GYM_AUTH_VERIFY_TTL")
	setStr(&c.Auth.PublicBaseURL, "GYM_AUTH_PUBLIC_BASE_URL")

	// RATE
	setBool(&c.Rate.Enabled, "GYM_RATE_ENABLED")
	setStr(&c.Rate.Window, "GYM_RATE_WINDOW")
	setInt(&c.Rate.MaxRequests, "GYM_RATE_MAX_REQUESTS")

	// SMTP
	setStr(&c.SMTP.Host, "GYM_SMTP_HOST")
	setInt(&c.SMTP.Port, "GYM_SMTP_PORT")
	setStr(&c.SMTP.Username, "GYM_SMTP_USERNAME")
	setStr(&c.SMTP.Password, "GYM_SMTP_PASSWORD")
	setStr(&c.SMTP.From, "GYM_SMTP_FROM")
	setStr(&c.SMTP.TLS, "GYM_SMTP_TLS")

	// UPLOADS
	setStr(&c.Uploads.Driver, "GYM_UPLOADS_DRIVER")
	setStr(&c.Uploads.Dir, "GYM_UPLOADS_DIR")
	setStr(&c.Uploads.PublicBase, "GYM_UPLOADS_PUBLIC_BASE")
	setStr(&c.Uploads.S3.Bucket, "GYM_S3_BUCKET")
	setStr(&c.Uploads.S3.Region, "GYM_S3_REGION")
	setStr(&c.Uploads.S3.Endpoint, "GYM_S3_ENDPOINT")
	setStr(&c.Uploads.S3.AccessKey, "GYM_S3_ACCESS_KEY")
	setStr(&c.Uploads.S3.SecretKey, "GYM_S3_SECRET_KEY")
	setBool(&c.Uploads.S3.PathStyle, "GYM_S3_PATH_STYLE")
	setStr(&c.Uploads.S3.PublicBase, "GYM_S3_PUBLIC_BASE")

	// SECURITY
	setInt(&c.Security.PasswordPolicy.MinLength, "GYM_PASSWORD_MIN_LENGTH")

	// BOOTSTRAP
	setStr(&c.Bootstrap.SuperAdmin.Email, "GYM_SUPERADMIN_EMAIL")
	setStr(&c.Bootstrap.SuperAdmin.Password, "GYM_SUPERADMIN_PASSWORD")
	setStr(&c.Bootstrap.SuperAdmin.Name, "GYM_SUPERADMIN_NAME")
}
