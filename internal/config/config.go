// Package config 載入服務的環境設定。
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	// DefaultAdminPassword 是公開文件中的預設密碼，部署時應覆寫
	DefaultAdminPassword = "admin123"
)

type Config struct {
	Port           string        `env:"PORT"`
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	SessionSecret  string        `env:"SESSION_SECRET"`
	SessionTTL     time.Duration `env:"SESSION_TTL"`
	SessionStore   string        `env:"SESSION_STORE"`
	CookieSecure   bool          `env:"COOKIE_SECURE"`
	WorkerCount    int           `env:"WORKER_COUNT"`
	LogLevel       string        `env:"LOG_LEVEL"`
	SwaggerEnabled bool          `env:"SWAGGER_ENABLED"`
	Admin          Admin         `envPrefix:"ADMIN_"`
	Redis          Redis         `envPrefix:"REDIS_"`

	// MigrateDown 只能由 -migrate-down 指定：退回所有 migration 後結束
	MigrateDown bool
}

type Admin struct {
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
}

// Defaults 回傳未設定環境變數時使用的值
func Defaults() Config {
	return Config{
		Port:           "3000",
		SessionSecret:  "dev-session-secret",
		SessionTTL:     2 * time.Hour,
		SessionStore:   SessionStoreMemory,
		WorkerCount:    2,
		LogLevel:       "info",
		SwaggerEnabled: true,
		Admin: Admin{
			Username: "admin",
			Password: DefaultAdminPassword,
		},
	}
}

var (
	loadDotenv  = godotenv.Load
	parseEnv    = env.Parse
	commandLine = func() []string { return os.Args[1:] }
)

// Load 依序套用：預設值、.env (若存在) 與環境變數、命令列參數，最後驗證。
// 環境變數只覆寫有設定的欄位，所以 SWAGGER_ENABLED=false、WORKER_COUNT=0 會保留原值
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()
	if err := parseEnv(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	flags, err := ParseFlags(commandLine())
	if err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	// 只有指定的 flag 是非零值，其餘欄位保留環境變數的結果
	if err := mergo.Merge(&cfg, flags, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseFlags 解析命令列參數，未指定的欄位保持零值。
//
// Flags:
//
//	-port          覆寫 PORT
//	-log-level     覆寫 LOG_LEVEL
//	-migrate-down  退回所有 migration 後結束，不啟動 server
func ParseFlags(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("travel-registrations", flag.ContinueOnError)
	fs.StringVar(&cfg.Port, "port", "", "HTTP port")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.MigrateDown, "migrate-down", false, "roll back every migration and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid PORT %q", c.Port))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid SESSION_TTL %s", c.SessionTTL))
	}
	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when SESSION_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid SESSION_STORE %q", c.SessionStore))
	}
	if c.WorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("invalid WORKER_COUNT %d", c.WorkerCount))
	}
	if c.Admin.Username == "" {
		errs = append(errs, errors.New("ADMIN_USERNAME must not be empty"))
	}
	return errors.Join(errs...)
}

// Addr 回傳 echo 監聽位址
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) Swagger() bool {
	return c.SwaggerEnabled
}

// UsesDefaultPassword 密碼仍是公開的預設值
func (a Admin) UsesDefaultPassword() bool {
	return a.Password == DefaultAdminPassword
}
