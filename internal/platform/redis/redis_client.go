// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured は REDIS_HOST が未設定の場合に返されます。
var ErrNotConfigured = errors.New("redis: REDIS_HOST is not set")

// Config はRedis接続設定を保持します。
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LoadConfig は環境変数からRedis設定を読み込みます。REDIS_PORT のデフォルトは6379です。
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	if v, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.DB = v
	}
	return cfg
}

// NewRedisClient は環境変数の設定で接続し、疎通を確認したクライアントを返します。
func NewRedisClient() (*redis.Client, error) {
	return Connect(LoadConfig())
}

// Connect は cfg で接続し、Pingで疎通を確認します。
func Connect(cfg Config) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, ErrNotConfigured
	}
	addr := cfg.Host + ":" + cfg.Port

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
