// Package config は起動時に一度だけ読み込まれるアプリケーション設定を提供します。
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config はアプリケーション全体の設定です。Load の後は変更しません。
type Config struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	Schema   string
	SSLMode  string

	// AutoMigrate が true の場合、起動時にスキーマとテーブルを作成します。
	AutoMigrate bool

	Addr            string
	BackgroundImage string
	AllowOrigins    []string
}

var (
	ErrMissingSetting = errors.New("missing required setting")
	ErrUnknownDriver  = errors.New("unknown database driver")
)

// Load は .env ファイル(任意)と環境変数から Config を構築します。
// files が存在しない場合は警告のみで続行します。
func Load(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			log.Printf("Warning: Could not load %s: %v", f, err)
		}
	}
	return FromEnv("")
}

// FromEnv は prefix 付きの環境変数から Config を構築します。
// テストでは "TEST_" を渡して TEST_DB_HOST などを読みます。
func FromEnv(prefix string) (*Config, error) {
	get := func(key string, fallbacks ...string) string {
		if v := os.Getenv(prefix + key); v != "" {
			return v
		}
		for _, k := range fallbacks {
			if v := os.Getenv(prefix + k); v != "" {
				return v
			}
		}
		return ""
	}

	cfg := &Config{
		Driver:          strings.ToLower(get("DB_DRIVER")),
		Host:            get("DB_HOST", "AIVEN_HOST"),
		Port:            get("DB_PORT", "AIVEN_PORT"),
		Name:            get("DB_NAME", "AIVEN_DB"),
		User:            get("DB_USER", "AIVEN_USER"),
		Password:        get("DB_PASS", "AIVEN_PASSWORD"),
		Schema:          get("DB_SCHEMA"),
		SSLMode:         get("DB_SSLMODE"),
		Addr:            get("HTTP_ADDR"),
		BackgroundImage: get("BACKGROUND_IMAGE"),
	}

	if cfg.Driver == "" {
		cfg.Driver = DriverPostgres
	}
	if cfg.Schema == "" {
		cfg.Schema = "pledgegtd"
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.BackgroundImage == "" {
		cfg.BackgroundImage = "beekeeper.png"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "require"
	}
	if cfg.Port == "" {
		switch cfg.Driver {
		case DriverMySQL:
			cfg.Port = "3306"
		default:
			cfg.Port = "5432"
		}
	}

	if v := get("DB_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE %q: %w", v, err)
		}
		cfg.AutoMigrate = b
	}

	origins := get("CORS_ALLOW_ORIGINS")
	if origins == "" {
		origins = "http://localhost:8080"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は必須項目とドライバー名を検証します。
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
	if c.Host == "" {
		return fmt.Errorf("%w: DB_HOST", ErrMissingSetting)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: DB_NAME", ErrMissingSetting)
	}
	if c.User == "" {
		return fmt.Errorf("%w: DB_USER", ErrMissingSetting)
	}
	return nil
}

// DSN はドライバーに応じた接続文字列を返します。
// 例: user:pass@tcp(db:3306)/dbname?parseTime=true
func (c *Config) DSN() string {
	if c.Driver == DriverMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", c.User, c.Password, c.Host, c.Port, c.Name)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}
