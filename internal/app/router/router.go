package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	listinghandler "stock_market/internal/feature/listings/transport/handler"
	stockinfohandler "stock_market/internal/feature/stockinfo/transport/handler"
	"stock_market/internal/platform/http/handler"
)

// Config はルーター全体の設定です。
type Config struct {
	AllowOrigins []string                   // 空の場合はCORSミドルウェアを追加しない
	HealthChecks map[string]handler.Checker // /healthz で確認する依存先
}

// NewRouter はAPIのルーティングを組み立てます。
func NewRouter(listings *listinghandler.ListingHandler, stocks *stockinfohandler.StockInfoHandler,
	cfg Config) *gin.Engine {
	r := gin.Default()

	if len(cfg.AllowOrigins) > 0 {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = cfg.AllowOrigins
		r.Use(cors.New(cc))
	}

	// 導通確認用
	health := handler.Health(cfg.HealthChecks)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	// 銘柄一覧（SSEで同期ステージを配信）
	r.GET("/listings", listings.Stream)

	// 銘柄ごとの情報
	sg := r.Group("/stocks/:symbol")
	{
		sg.GET("", stocks.GetCompanyInfo)
		sg.GET("/intraday", stocks.GetIntraday)
		sg.GET("/company", stocks.GetCompany)
	}

	return r
}
