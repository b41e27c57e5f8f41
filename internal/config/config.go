package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	OIDC struct {
		Issuer       string
		ClientID     string
		ClientSecret string
		RedirectURL  string
	}
	AdminEmail      string
	FrontendURL     string
	CORSOrigins     []string
	SessionLifetime time.Duration
	InsecureCookies bool
}

// Load reads config from environment (RECLAIM_ prefix) and optional reclaim.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RECLAIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("reclaim")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("session.lifetime", "720h")
	v.SetDefault("oidc.issuer", "https://accounts.google.com")
	v.SetDefault("frontend_url", "/")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.OIDC.Issuer = v.GetString("oidc.issuer")
	cfg.OIDC.ClientID = v.GetString("oidc.client_id")
	cfg.OIDC.ClientSecret = v.GetString("oidc.client_secret")
	cfg.OIDC.RedirectURL = v.GetString("oidc.redirect_url")
	cfg.AdminEmail = v.GetString("admin_email")
	cfg.FrontendURL = v.GetString("frontend_url")
	cfg.CORSOrigins = splitOrigins(v.GetString("cors_origins"))
	cfg.InsecureCookies = v.GetBool("insecure_cookies")

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECLAIM_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("RECLAIM_DB_DSN is required")
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = InferDriver(cfg.DB.DSN)
	}
	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("RECLAIM_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.OIDC.ClientID == "" {
		return nil, fmt.Errorf("RECLAIM_OIDC_CLIENT_ID is required")
	}
	if cfg.OIDC.ClientSecret == "" {
		return nil, fmt.Errorf("RECLAIM_OIDC_CLIENT_SECRET is required")
	}
	if cfg.OIDC.RedirectURL == "" {
		return nil, fmt.Errorf("RECLAIM_OIDC_REDIRECT_URL is required")
	}

	return cfg, nil
}

// InferDriver guesses the DB driver from the DSN shape. Hosted platforms hand
// out postgres:// URLs with no separate driver setting, so a bare DSN is
// enough to run against Postgres.
func InferDriver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(dsn, "mysql://"):
		return "mysql"
	case strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"), dsn == ":memory:":
		return "sqlite3"
	default:
		return ""
	}
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
