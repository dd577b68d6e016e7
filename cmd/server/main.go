package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_market/internal/app/di"
	"stock_market/internal/app/router"
	listinghandler "stock_market/internal/feature/listings/transport/handler"
	stockinfohandler "stock_market/internal/feature/stockinfo/transport/handler"
	infradb "stock_market/internal/platform/db"
	"stock_market/internal/platform/http/handler"
	"stock_market/internal/platform/logging"
	infraredis "stock_market/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis（未設定・接続不可ならSQLのみで動作）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		slog.Warn("Redis unavailable. Using SQL listing store.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Remote
	client := di.NewAlphaVantageClient()

	// Usecase
	listingsUC := di.NewListingsUsecase(di.NewListingRepository(rdb, db), client)
	stockInfoUC := di.NewStockInfoUsecase(client)

	// Handler
	listingsH := listinghandler.NewListingHandler(listingsUC)
	stocksH := stockinfohandler.NewStockInfoHandler(stockInfoUC)

	// ルータ生成
	checks := map[string]handler.Checker{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	r := router.NewRouter(listingsH, stocksH, router.Config{
		AllowOrigins: splitOrigins(os.Getenv("CORS_ALLOW_ORIGINS")),
		HealthChecks: checks,
	})

	if os.Getenv("ALPHA_VANTAGE_API_KEY") == "" {
		slog.Warn("ALPHA_VANTAGE_API_KEY is not set. Remote calls will be rejected.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
