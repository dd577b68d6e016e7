// Package handler はstockinfoフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_market/internal/feature/stockinfo/domain/entity"
	"stock_market/internal/feature/stockinfo/transport/http/dto"
	"stock_market/internal/shared/resource"
)

// StockInfoUsecase は銘柄ごとの情報取得ユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StockInfoUsecase interface {
	FetchIntraday(ctx context.Context, symbol string) resource.Resource[[]entity.IntradayPoint]
	FetchCompanyProfile(ctx context.Context, symbol string) resource.Resource[entity.CompanyProfile]
	GetCompanyInfo(ctx context.Context, symbol string) entity.CompanyInfo
}

// StockInfoHandler は日中足・企業概要のHTTPリクエストを処理します。
type StockInfoHandler struct {
	uc StockInfoUsecase
}

// NewStockInfoHandler は新しい StockInfoHandler を作成します。
func NewStockInfoHandler(uc StockInfoUsecase) *StockInfoHandler {
	return &StockInfoHandler{uc: uc}
}

// GetIntraday は日中足の終値系列を返します。
//
// エンドポイント例:
// GET /stocks/AAPL/intraday
func (h *StockInfoHandler) GetIntraday(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}

	res := h.uc.FetchIntraday(c.Request.Context(), symbol)
	if res.IsError() {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: res.Message})
		return
	}
	c.JSON(http.StatusOK, dto.ToIntradayResponse(res.Data))
}

// GetCompany は企業概要を返します。
//
// エンドポイント例:
// GET /stocks/AAPL/company
func (h *StockInfoHandler) GetCompany(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}

	res := h.uc.FetchCompanyProfile(c.Request.Context(), symbol)
	if res.IsError() {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: res.Message})
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyProfileResponse(res.Data))
}

// GetCompanyInfo は企業概要と日中足をまとめて返します。部分的な失敗は error に入り、ステータスは200のままです。
//
// エンドポイント例:
// GET /stocks/AAPL
func (h *StockInfoHandler) GetCompanyInfo(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	info := h.uc.GetCompanyInfo(c.Request.Context(), symbol)
	c.JSON(http.StatusOK, dto.ToCompanyInfoResponse(info))
}

// symbolParam は銘柄コードを大文字に正規化します。空なら400を返します。
func symbolParam(c *gin.Context) (string, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol is required"})
		return "", false
	}
	return symbol, true
}
