package folio

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/media"
)

// Config holds all configuration for a folio server.
type Config struct {
	SiteName string `yaml:"site_name"` // Site name for feeds (default "Portfolio")
	SiteURL  string `yaml:"site_url"`  // Canonical URL (default "http://localhost:3001")

	Addr         string `yaml:"addr"`          // Listen address (default ":3001")
	DatabasePath string `yaml:"database_path"` // SQLite path (default "data/folio.db")

	MediaDriver         string `yaml:"media_driver"` // "local" (default) or "cloudinary"
	UploadDir           string `yaml:"upload_dir"`   // local driver directory (default "data/uploads")
	UploadURL           string `yaml:"upload_url"`   // public prefix for local uploads (default "/uploads")
	CloudinaryCloudName string `yaml:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `yaml:"cloudinary_api_key"`
	CloudinaryAPISecret string `yaml:"cloudinary_api_secret"`

	JWTSecret     string        `yaml:"jwt_secret"` // Required: token signing secret
	TokenTTL      time.Duration `yaml:"token_ttl"`  // default 1h
	AdminUsername string        `yaml:"admin_username"`
	AdminPassword string        `yaml:"admin_password"`

	CORSOrigins []string      `yaml:"cors_origins"` // default ["*"]
	CacheTTL    time.Duration `yaml:"cache_ttl"`    // public list cache TTL (default 1m)

	LogLevel  string `yaml:"log_level"`  // default "info"
	LogFormat string `yaml:"log_format"` // "json" (default) or "text"
}

func (c *Config) setDefaults() {
	if c.SiteName == "" {
		c.SiteName = "Portfolio"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3001"
	}
	if c.Addr == "" {
		c.Addr = ":3001"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.MediaDriver == "" {
		c.MediaDriver = media.DriverLocal
	}
	if c.UploadDir == "" {
		c.UploadDir = "data/uploads"
	}
	if c.UploadURL == "" {
		c.UploadURL = "/uploads"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = time.Hour
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("folio: jwt_secret is required")
	}
	switch c.MediaDriver {
	case media.DriverLocal, media.DriverCloudinary:
	default:
		return fmt.Errorf("folio: unknown media driver %q", c.MediaDriver)
	}
	return nil
}

// LoadConfig reads a YAML config file when path is non-empty, applies
// FOLIO_* environment overrides and fills every unset field with its default.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"FOLIO_SITE_NAME":             &c.SiteName,
		"FOLIO_SITE_URL":              &c.SiteURL,
		"FOLIO_ADDR":                  &c.Addr,
		"FOLIO_DATABASE_PATH":         &c.DatabasePath,
		"FOLIO_MEDIA_DRIVER":          &c.MediaDriver,
		"FOLIO_UPLOAD_DIR":            &c.UploadDir,
		"FOLIO_UPLOAD_URL":            &c.UploadURL,
		"FOLIO_CLOUDINARY_CLOUD_NAME": &c.CloudinaryCloudName,
		"FOLIO_CLOUDINARY_API_KEY":    &c.CloudinaryAPIKey,
		"FOLIO_CLOUDINARY_API_SECRET": &c.CloudinaryAPISecret,
		"FOLIO_JWT_SECRET":            &c.JWTSecret,
		"FOLIO_ADMIN_USERNAME":        &c.AdminUsername,
		"FOLIO_ADMIN_PASSWORD":        &c.AdminPassword,
		"FOLIO_LOG_LEVEL":             &c.LogLevel,
		"FOLIO_LOG_FORMAT":            &c.LogFormat,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	durations := map[string]*time.Duration{
		"FOLIO_TOKEN_TTL": &c.TokenTTL,
		"FOLIO_CACHE_TTL": &c.CacheTTL,
	}
	for key, dst := range durations {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		*dst = d
	}
	if v := os.Getenv("FOLIO_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = FilterEmpty(strings.Split(v, ","))
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithMediaStore replaces the media store built from Config.
func WithMediaStore(m media.Store) Option {
	return func(a *App) {
		a.Media = m
	}
}

// WithLogger sets the application logger.
func WithLogger(l *logrus.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

func newLogger(cfg Config) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	if cfg.LogFormat == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
