// Command sync は銘柄一覧キャッシュを同期し、各ステージを標準出力に表示します。
//
//	sync [-refresh] [-query q] [-timeout 5m]
//
// 最後のステージがエラーの場合は終了コード1で終了します。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_market/internal/app/di"
	"stock_market/internal/feature/listings/usecase"
	infradb "stock_market/internal/platform/db"
	"stock_market/internal/platform/logging"
	infraredis "stock_market/internal/platform/redis"
)

func main() {
	refresh := flag.Bool("refresh", false, "always fetch from the remote source")
	query := flag.String("query", "", "filter listings by name or symbol")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	var rdb *redisv9.Client
	if os.Getenv("REDIS_HOST") != "" {
		rdb = openRedis(slog.Default(), infraredis.NewRedisClient)
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	uc := di.NewListingsUsecase(di.NewListingRepository(rdb, db), di.NewAlphaVantageClient())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	ok := run(ctx, uc, os.Stdout, *refresh, *query)
	if !ok {
		stop()
		cancel()
		os.Exit(1)
	}
}

// openRedis はRedisへ接続します。失敗した場合は警告を出してnilを返し、SQLのみで動作します。
func openRedis(log *slog.Logger, connect func() (*redisv9.Client, error)) *redisv9.Client {
	rdb, err := connect()
	if err != nil {
		log.Warn("Redis unavailable. Using SQL listing store.", "error", err)
		return nil
	}
	return rdb
}

// listingSyncer は同期ストリームを返すユースケースです。
type listingSyncer interface {
	SyncListings(ctx context.Context, forceRemote bool, query string) <-chan usecase.Stage
}

// run はストリームを最後まで読み、各ステージを1行ずつ出力します。
// ストリームがエラーで終わった場合、またはLoading(false)に到達しなかった場合はfalseを返します。
func run(ctx context.Context, uc listingSyncer, w io.Writer, refresh bool, query string) bool {
	var (
		last usecase.Stage
		seen bool
	)
	for s := range uc.SyncListings(ctx, refresh, query) {
		last, seen = s, true
		_, _ = fmt.Fprintln(w, formatStage(s))
	}
	return seen && last.Terminal() && !last.IsError()
}

func formatStage(s usecase.Stage) string {
	switch {
	case s.IsError():
		return "error: " + s.Message
	case s.IsSuccess():
		return fmt.Sprintf("success: %d listings", len(s.Data))
	default:
		return fmt.Sprintf("loading: %t", s.IsLoading)
	}
}
