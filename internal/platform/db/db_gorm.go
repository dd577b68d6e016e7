// Package db はgorm接続（SQLite / PostgreSQL）の生成とマイグレーションを提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	listingadapters "stock_market/internal/feature/listings/adapters"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLitePath = "stock_market.db"
	retryInterval     = 3 * time.Second
)

// Config はデータベース接続設定を保持します。
type Config struct {
	Driver        string // "sqlite"（デフォルト） または "postgres"
	DSN           string // 指定時は他の接続項目より優先
	SQLitePath    string
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	RunMigrations bool
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
// RUN_MIGRATIONS が未設定の場合、SQLiteでは有効、PostgreSQLでは無効になります。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:     strings.ToLower(os.Getenv("DB_DRIVER")),
		DSN:        os.Getenv("DB_DSN"),
		SQLitePath: os.Getenv("SQLITE_PATH"),
		Host:       os.Getenv("DB_HOST"),
		Port:       os.Getenv("DB_PORT"),
		User:       os.Getenv("DB_USER"),
		Password:   os.Getenv("DB_PASSWORD"),
		Name:       os.Getenv("DB_NAME"),
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	switch os.Getenv("RUN_MIGRATIONS") {
	case "true":
		cfg.RunMigrations = true
	case "false":
		cfg.RunMigrations = false
	default:
		cfg.RunMigrations = cfg.Driver == DriverSQLite
	}
	return cfg
}

// BuildDSN は設定から接続文字列を組み立てます。
func BuildDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
	}
	if cfg.SQLitePath != "" {
		return cfg.SQLitePath
	}
	return defaultSQLitePath
}

// Opener はDSNからgorm接続を開く関数です。
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor はドライバーに対応するOpenerを返します。
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}, nil
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ValidateDSN は接続を試みる前にDSNの書式を検証します。
// リトライ待ちに入る前に設定ミスを検出するためのものです。
func ValidateDSN(driver, dsn string) error {
	switch driver {
	case DriverPostgres:
		if _, err := pgx.ParseConfig(dsn); err != nil {
			return fmt.Errorf("invalid postgres DSN: %w", err)
		}
	case DriverSQLite:
		if strings.TrimSpace(dsn) == "" {
			return errors.New("empty sqlite path")
		}
	}
	return nil
}

// ConnectWithRetry は timeout に達するまで一定間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// Migrate はアプリケーションのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&listingadapters.ListingModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// OpenDB は設定に従って接続し、必要ならマイグレーションを実行します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	open, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn := BuildDSN(cfg)
	if err := ValidateDSN(cfg.Driver, dsn); err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(dsn, 60*time.Second, open)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	slog.Info("database ready", "driver", cfg.Driver, "migrated", cfg.RunMigrations)
	return db, nil
}
