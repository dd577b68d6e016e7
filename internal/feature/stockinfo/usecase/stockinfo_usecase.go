// Package usecase implements the non-cached stock info operations.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"stock_market/internal/feature/stockinfo/domain/entity"
	"stock_market/internal/shared/resource"
)

// StockInfoSource は銘柄ごとのリモートデータ取得を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StockInfoSource interface {
	FetchIntraday(ctx context.Context, symbol string) (io.ReadCloser, error)
	FetchCompanyProfile(ctx context.Context, symbol string) (*entity.RawCompanyProfile, error)
}

// IntradayDecoder は日中足CSVをデコードします。
type IntradayDecoder interface {
	Decode(r io.Reader) ([]entity.IntradayPoint, error)
}

// StockInfoUsecase は日中足と企業概要をキャッシュせずに取得します。
// 失敗は Http / Connection / Unknown に分類したメッセージで返し、errorは返しません。
type StockInfoUsecase struct {
	source  StockInfoSource
	decoder IntradayDecoder
}

// NewStockInfoUsecase はStockInfoUsecaseの新しいインスタンスを生成します。
func NewStockInfoUsecase(source StockInfoSource, decoder IntradayDecoder) *StockInfoUsecase {
	return &StockInfoUsecase{source: source, decoder: decoder}
}

// FetchIntraday は指定銘柄の日中足を取得します。
func (u *StockInfoUsecase) FetchIntraday(ctx context.Context, symbol string) resource.Resource[[]entity.IntradayPoint] {
	points, err := u.intraday(ctx, symbol)
	if err != nil {
		slog.Warn("failed to fetch intraday", "symbol", symbol, "error", err)
		return resource.Error[[]entity.IntradayPoint](classify(err))
	}
	return resource.Success(points)
}

// FetchCompanyProfile は指定銘柄の企業概要を取得します。
func (u *StockInfoUsecase) FetchCompanyProfile(ctx context.Context, symbol string) resource.Resource[entity.CompanyProfile] {
	raw, err := u.source.FetchCompanyProfile(ctx, symbol)
	if err != nil {
		slog.Warn("failed to fetch company profile", "symbol", symbol, "error", err)
		return resource.Error[entity.CompanyProfile](classify(err))
	}
	return resource.Success(toCompanyProfile(raw))
}

// GetCompanyInfo は企業概要と日中足を並行して取得し、1つの結果にまとめます。
// 片方が失敗してももう片方の結果は保持し、Errorには企業概要側のメッセージを優先して入れます。
func (u *StockInfoUsecase) GetCompanyInfo(ctx context.Context, symbol string) entity.CompanyInfo {
	var (
		company  resource.Resource[entity.CompanyProfile]
		intraday resource.Resource[[]entity.IntradayPoint]
	)

	var g errgroup.Group
	g.Go(func() error {
		company = u.FetchCompanyProfile(ctx, symbol)
		return nil
	})
	g.Go(func() error {
		intraday = u.FetchIntraday(ctx, symbol)
		return nil
	})
	_ = g.Wait() // 両方とも error を返さない

	var info entity.CompanyInfo
	if company.IsSuccess() {
		c := company.Data
		info.Company = &c
	} else {
		info.Error = company.Message
	}
	if intraday.IsSuccess() {
		info.Intraday = intraday.Data
	} else if info.Error == "" {
		info.Error = intraday.Message
	}
	return info
}

func (u *StockInfoUsecase) intraday(ctx context.Context, symbol string) ([]entity.IntradayPoint, error) {
	body, err := u.source.FetchIntraday(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch intraday: %w", err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			slog.Warn("failed to close intraday stream", "symbol", symbol, "error", err)
		}
	}()

	points, err := u.decoder.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode intraday: %w", err)
	}
	return points, nil
}
