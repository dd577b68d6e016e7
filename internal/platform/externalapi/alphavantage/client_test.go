package alphavantage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_market/internal/shared/remote"
)

const listingCSV = "symbol,name,exchange,assetType,ipoDate,delistingDate,status\r\n" +
	"A,Agilent Technologies Inc,NYSE,Stock,1999-11-18,null,Active\r\n"

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	cfg := Config{APIKey: "test-key", BaseURL: server.URL, IntradayInterval: "60min"}
	return NewClient(cfg, server.Client(), nil), server
}

func TestClient_FetchListings(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "LISTING_STATUS", r.URL.Query().Get("function"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/x-download")
		_, _ = w.Write([]byte(listingCSV))
	})

	body, err := c.FetchListings(context.Background())
	require.NoError(t, err)
	defer body.Close()

	b, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, listingCSV, string(b))
}

func TestClient_FetchIntraday_Params(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "TIME_SERIES_INTRADAY", q.Get("function"))
		assert.Equal(t, "IBM", q.Get("symbol"))
		assert.Equal(t, "60min", q.Get("interval"))
		assert.Equal(t, "csv", q.Get("datatype"))
		assert.Equal(t, "test-key", q.Get("apikey"))
		_, _ = w.Write([]byte("timestamp,open,high,low,close,volume\n"))
	})

	body, err := c.FetchIntraday(context.Background(), "IBM")
	require.NoError(t, err)
	require.NoError(t, body.Close())
}

func TestClient_CSVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    int
		wantMessage string
	}{
		{
			name:        "HTTPステータスエラー",
			status:      http.StatusNotFound,
			body:        "not found",
			wantCode:    http.StatusNotFound,
			wantMessage: "HTTP 404 Not Found",
		},
		{
			name:        "HTTP 200のError Message",
			status:      http.StatusOK,
			body:        `{"Error Message": "Invalid API call."}`,
			wantCode:    http.StatusOK,
			wantMessage: "Invalid API call.",
		},
		{
			name:        "HTTP 200のレート制限Note",
			status:      http.StatusOK,
			body:        `{"Note": "Thank you for using Alpha Vantage!"}`,
			wantCode:    http.StatusOK,
			wantMessage: "Thank you for using Alpha Vantage!",
		},
		{
			name:        "未知のJSON",
			status:      http.StatusOK,
			body:        `{}`,
			wantCode:    http.StatusOK,
			wantMessage: "unexpected JSON response",
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			body, err := c.FetchIntraday(context.Background(), "IBM")
			require.Error(t, err)
			assert.Nil(t, body)

			var httpErr *remote.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.wantCode, httpErr.StatusCode)
			assert.Equal(t, tt.wantMessage, httpErr.Message)
			assert.NotErrorIs(t, err, remote.ErrConnection)
		})
	}
}

func TestClient_FetchCompanyProfile(t *testing.T) {
	t.Parallel()

	t.Run("正常系: 欠けた項目はnil", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "OVERVIEW", r.URL.Query().Get("function"))
			assert.Equal(t, "IBM", r.URL.Query().Get("symbol"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"Symbol":"IBM","Name":"International Business Machines","Country":"USA","MarketCapitalization":"1"}`))
		})

		got, err := c.FetchCompanyProfile(context.Background(), "IBM")
		require.NoError(t, err)
		require.NotNil(t, got.Symbol)
		assert.Equal(t, "IBM", *got.Symbol)
		require.NotNil(t, got.Name)
		assert.Equal(t, "International Business Machines", *got.Name)
		require.NotNil(t, got.Country)
		assert.Equal(t, "USA", *got.Country)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.Industry)
	})

	t.Run("異常系: Information", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"Information":"premium endpoint"}`))
		})

		_, err := c.FetchCompanyProfile(context.Background(), "IBM")
		var httpErr *remote.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "premium endpoint", httpErr.Message)
	})

	t.Run("異常系: 500", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.FetchCompanyProfile(context.Background(), "IBM")
		var httpErr *remote.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	})
}

func TestClient_ConnectionError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: base}, &http.Client{Timeout: time.Second}, nil)

	_, err := c.FetchListings(context.Background())
	require.ErrorIs(t, err, remote.ErrConnection)

	var httpErr *remote.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

// deniedLimiter は常に待機に失敗するリミッターです。
type deniedLimiter struct{}

func (deniedLimiter) Wait(ctx context.Context) error { return context.Canceled }

func TestClient_LimiterFailureIsConnectionError(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL}, server.Client(), deniedLimiter{})
	_, err := c.FetchCompanyProfile(context.Background(), "IBM")

	require.ErrorIs(t, err, remote.ErrConnection)
	assert.False(t, called)
}

func TestLoadConfig(t *testing.T) {
	t.Run("デフォルト値", func(t *testing.T) {
		t.Setenv("ALPHA_VANTAGE_API_KEY", "abc")
		t.Setenv("ALPHA_VANTAGE_BASE_URL", "")
		t.Setenv("ALPHA_VANTAGE_INTRADAY_INTERVAL", "")
		t.Setenv("ALPHA_VANTAGE_CALLS_PER_MINUTE", "")

		cfg := LoadConfig()
		assert.Equal(t, "abc", cfg.APIKey)
		assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, DefaultIntradayInterval, cfg.IntradayInterval)
		assert.Equal(t, DefaultCallsPerMinute, cfg.CallsPerMinute)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("上書き", func(t *testing.T) {
		t.Setenv("ALPHA_VANTAGE_BASE_URL", "http://localhost:9999")
		t.Setenv("ALPHA_VANTAGE_INTRADAY_INTERVAL", "5min")
		t.Setenv("ALPHA_VANTAGE_CALLS_PER_MINUTE", "0")

		cfg := LoadConfig()
		assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
		assert.Equal(t, "5min", cfg.IntradayInterval)
		assert.Equal(t, 0, cfg.CallsPerMinute)
	})
}
