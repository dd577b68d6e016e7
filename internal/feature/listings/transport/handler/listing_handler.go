// Package handler はlistingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_market/internal/feature/listings/transport/http/dto"
	"stock_market/internal/feature/listings/usecase"
)

// ListingsUsecase は銘柄一覧同期のユースケースインターフェースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ListingsUsecase interface {
	SyncListings(ctx context.Context, forceRemote bool, query string) <-chan usecase.Stage
}

// ListingHandler は銘柄一覧に関するHTTPリクエストを処理します。
type ListingHandler struct {
	uc ListingsUsecase
}

// NewListingHandler は新しい ListingHandler を作成します。
func NewListingHandler(uc ListingsUsecase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

// Stream は同期処理の各ステージをServer-Sent Eventsとして順に送信します。
// イベント名は loading / success / error です。
//
// エンドポイント例:
// GET /listings?query=app&refresh=true
func (h *ListingHandler) Stream(c *gin.Context) {
	refresh, err := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh must be a boolean"})
		return
	}
	query := c.Query("query")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-store")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	// クライアントが切断するとリクエストのcontextがキャンセルされ、ストリームも閉じられる
	for s := range h.uc.SyncListings(c.Request.Context(), refresh, query) {
		c.SSEvent(s.Kind.String(), dto.FromStage(s))
		c.Writer.Flush()
	}
}
