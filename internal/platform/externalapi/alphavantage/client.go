package alphavantage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	listingsusecase "stock_market/internal/feature/listings/usecase"
	"stock_market/internal/feature/stockinfo/domain/entity"
	stockinfousecase "stock_market/internal/feature/stockinfo/usecase"
	"stock_market/internal/platform/externalapi/alphavantage/dto"
	"stock_market/internal/shared/ratelimiter"
	"stock_market/internal/shared/remote"
)

// Client はAlpha Vantage外部APIから銘柄一覧・日中足・企業概要を取得するクライアントです。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// Clientが各ユースケースのリモートソースを実装していることをコンパイル時に検証します。
var (
	_ listingsusecase.ListingSource    = (*Client)(nil)
	_ stockinfousecase.StockInfoSource = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
// limiter が nil の場合はスロットリングしません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// FetchListings はLISTING_STATUSのCSVストリームを返します。呼び出し側でCloseしてください。
func (c *Client) FetchListings(ctx context.Context) (io.ReadCloser, error) {
	q := url.Values{}
	q.Set("function", "LISTING_STATUS")
	return c.openCSV(ctx, q)
}

// FetchIntraday は指定銘柄のTIME_SERIES_INTRADAYをCSVストリームで返します。
func (c *Client) FetchIntraday(ctx context.Context, symbol string) (io.ReadCloser, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("symbol", symbol)
	q.Set("interval", c.cfg.IntradayInterval)
	q.Set("datatype", "csv")
	return c.openCSV(ctx, q)
}

// FetchCompanyProfile は指定銘柄のOVERVIEWを取得します。欠けている項目はnilのまま返します。
func (c *Client) FetchCompanyProfile(ctx context.Context, symbol string) (*entity.RawCompanyProfile, error) {
	q := url.Values{}
	q.Set("function", "OVERVIEW")
	q.Set("symbol", symbol)

	res, err := c.do(ctx, q)
	if err != nil {
		return nil, err
	}
	defer closeBody(res.Body)

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read overview: %w", err)
	}
	var msg dto.APIMessage
	if err := json.Unmarshal(b, &msg); err == nil && msg.Text() != "" {
		return nil, &remote.HTTPError{StatusCode: res.StatusCode, Message: msg.Text()}
	}
	var body dto.CompanyOverviewResponse
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, fmt.Errorf("decode overview: %w", err)
	}
	return &entity.RawCompanyProfile{
		Symbol:      body.Symbol,
		Description: body.Description,
		Name:        body.Name,
		Country:     body.Country,
		Industry:    body.Industry,
	}, nil
}

// openCSV はCSVを返すエンドポイントを呼び出します。
// Alpha VantageはCSVを要求してもエラー時はHTTP 200でJSONを返すため、先頭バイトで判別します。
func (c *Client) openCSV(ctx context.Context, q url.Values) (io.ReadCloser, error) {
	res, err := c.do(ctx, q)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(res.Body)
	if first, err := br.Peek(1); err == nil && first[0] == '{' {
		defer closeBody(res.Body)
		var msg dto.APIMessage
		if err := json.NewDecoder(br).Decode(&msg); err != nil {
			return nil, fmt.Errorf("decode api message: %w", err)
		}
		text := msg.Text()
		if text == "" {
			text = "unexpected JSON response"
		}
		return nil, &remote.HTTPError{StatusCode: res.StatusCode, Message: text}
	}
	return &csvBody{Reader: br, closer: res.Body}, nil
}

// do はスロットリング後にリクエストを実行し、ステータスが400以上の場合はHTTPErrorを返します。
func (c *Client) do(ctx context.Context, q url.Values) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", remote.ErrConnection, err)
		}
	}

	// クエリパラメータにAPIキーを追加
	q.Set("apikey", c.cfg.APIKey)
	u := fmt.Sprintf("%s/query?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	// Doが返すエラーはレスポンス受信前の失敗（*url.Error）のみ
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", remote.ErrConnection, err)
	}

	if res.StatusCode >= 400 {
		closeBody(res.Body)
		return nil, remote.NewHTTPError(res.StatusCode)
	}
	return res, nil
}

func closeBody(rc io.Closer) {
	if err := rc.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err)
	}
}

// csvBody reads through the peeked buffer but closes the underlying response body.
type csvBody struct {
	io.Reader
	closer io.Closer
}

func (b *csvBody) Close() error { return b.closer.Close() }
