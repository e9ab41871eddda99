package folio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	yaml := `site_name: Quiet Light
site_url: https://photos.example.com
addr: ":8080"
jwt_secret: from-file
token_ttl: 2h
cors_origins:
  - https://photos.example.com
media_driver: local
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_JWT_SECRET", "from-env")
	t.Setenv("FOLIO_CACHE_TTL", "30s")
	t.Setenv("FOLIO_CORS_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SiteName != "Quiet Light" || cfg.Addr != ":8080" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("JWTSecret = %q, env should win", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.TokenTTL)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	if strings.Join(cfg.CORSOrigins, ",") != "https://a.example.com,https://b.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	t.Setenv("FOLIO_DATABASE_PATH", "")
	t.Setenv("FOLIO_ADDR", "")
	t.Setenv("FOLIO_MEDIA_DRIVER", "")
	t.Setenv("FOLIO_TOKEN_TTL", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DatabasePath != "data/folio.db" {
		t.Errorf("DatabasePath = %q, want data/folio.db", cfg.DatabasePath)
	}
	if cfg.Addr != ":3001" || cfg.MediaDriver != "local" || cfg.TokenTTL != time.Hour {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	t.Setenv("FOLIO_DATABASE_PATH", "/srv/folio/site.db")
	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DatabasePath != "/srv/folio/site.db" {
		t.Errorf("DatabasePath = %q, env should win over the default", cfg.DatabasePath)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("addr: [unclosed"), 0o644)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("invalid yaml should fail")
	}

	t.Setenv("FOLIO_TOKEN_TTL", "soon")
	if _, err := LoadConfig(""); err == nil {
		t.Error("invalid duration should fail")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.setDefaults()
	if cfg.Addr != ":3001" || cfg.DatabasePath != "data/folio.db" || cfg.MediaDriver != "local" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.TokenTTL != time.Hour || cfg.CacheTTL != time.Minute {
		t.Errorf("duration defaults = %v, %v", cfg.TokenTTL, cfg.CacheTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.setDefaults()
	if err := cfg.validate(); err == nil {
		t.Error("missing jwt secret should fail")
	}
	cfg.JWTSecret = "s"
	if err := cfg.validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
	cfg.MediaDriver = "s3"
	if err := cfg.validate(); err == nil {
		t.Error("unknown media driver should fail")
	}
}
